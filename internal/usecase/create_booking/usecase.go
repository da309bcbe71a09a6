package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

var tracer = otel.Tracer("salon.usecase.create_booking")

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	events       EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Слот перепроверяется внутри сериализуемой транзакции; уникальный индекс
// по активным бронированиям является последней линией защиты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "CreateBooking")
	defer span.End()

	uc.logger.Info("CreateBooking: customer=%s, professional=%s, service=%s, date=%s, time=%s",
		req.CustomerID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	result, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create booking failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("salon.booking_id", result.ID.String()))
	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("salon.professional_id", req.ProfessionalID.String()),
		attribute.String("salon.date", date.Format(domain.DateFormat)),
		attribute.String("salon.start_time", req.StartTime.String()),
	)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(date, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем мастера
	professional, err := uc.catalogRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.IsActive {
		uc.logger.Warn("CreateBooking: professional id=%s is inactive", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	var result *domain.Booking

	// 5. Выполняем проверку слота и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Расписание дня
		day, err := uc.scheduleRepo.GetByDay(txCtx, int(date.Weekday()))
		if err != nil && !errors.Is(err, scheduleRepo.ErrDayNotFound) {
			uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		if day == nil || !day.IsOpen {
			uc.logger.Warn("CreateBooking: salon is closed on %s", date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s", domain.ErrScheduleClosed, date.Format(domain.DateFormat))
		}

		// 5.2. Слот должен быть среди сгенерированных на этот момент
		candidates := scheduling.GenerateSlots(day, date, now)
		if !scheduling.ContainsSlot(candidates, req.StartTime) {
			uc.logger.Warn("CreateBooking: time %s is not an offered slot on %s", req.StartTime, date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s is not offered", domain.ErrSlotConflict, req.StartTime)
		}

		// 5.3. Активные бронирования мастера на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			ProfessionalID: &req.ProfessionalID,
			StartDate:      &date,
			EndDate:        &date,
			Statuses:       domain.ActiveStatuses,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.4. Проверяем доступность слота
		available := scheduling.AvailableSlots(candidates, bookings, req.ProfessionalID, date)
		if !scheduling.ContainsSlot(available, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s already taken", req.StartTime, date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s %s", domain.ErrSlotConflict, date.Format(domain.DateFormat), req.StartTime)
		}

		// 5.5. Создаем бронирование с денормализованной ценой
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			ProfessionalID:  req.ProfessionalID,
			ServiceID:       req.ServiceID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: service.EffectiveDuration(),
			Status:          domain.StatusPending,
			TotalPrice:      service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: store rejected slot %s on %s: %v", req.StartTime, date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
		}
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.metrics.IncSlotConflicts()
		}
		if !isKnownError(err) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncBookingsCreated()
	uc.events.BookingCreated(ctx, result)

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return result, nil
}

func isKnownError(err error) bool {
	return errors.Is(err, domain.ErrSlotConflict) ||
		errors.Is(err, domain.ErrScheduleClosed) ||
		errors.Is(err, ErrInternal)
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		ServiceID:       b.ServiceID,
		ProfessionalID:  b.ProfessionalID,
		Date:            b.Date,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		TotalPrice:      b.TotalPrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
