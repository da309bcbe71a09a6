package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var tracer = otel.Tracer("salon.usecase.update_booking")

// UseCase use case для переноса бронирования (дата, время, услуга, мастер)
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	access       AccessChecker
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
	access AccessChecker,
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
		access:       access,
		txManager:    txManager,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Execute выполняет перенос бронирования
// При любой ошибке бронирование остается без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "UpdateBooking")
	defer span.End()

	span.SetAttributes(
		attribute.String("salon.booking_id", req.BookingID.String()),
		attribute.String("salon.professional_id", req.ProfessionalID.String()),
		attribute.String("salon.date", req.Date.Format(domain.DateFormat)),
	)

	uc.logger.Info("UpdateBooking: booking=%s by user=%s -> professional=%s, service=%s, date=%s, time=%s",
		req.BookingID, req.UserID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	result, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update booking failed")
		return nil, err
	}

	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права сотрудника
	if err := uc.checkStaff(ctx, req.UserID); err != nil {
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	if err := validateDate(date, now); err != nil {
		uc.logger.Warn("UpdateBooking: %v", err)
		return nil, err
	}

	// 3. Загружаем услугу и мастера цели
	service, err := uc.loadService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkProfessional(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}

	var updated *domain.Booking

	// 4. Проверка и обновление в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Текущее состояние бронирования (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: UpdateBooking - get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeEdited() {
			uc.logger.Warn("UpdateBooking: booking id=%s cannot be edited in status=%s", booking.ID, booking.Status)
			return fmt.Errorf("%w: cannot edit booking in status %s", domain.ErrInvalidTransition, booking.Status)
		}

		// 4.2. Расписание целевого дня
		day, err := uc.scheduleRepo.GetByDay(txCtx, int(date.Weekday()))
		if err != nil && !errors.Is(err, scheduleRepo.ErrDayNotFound) {
			uc.logger.Error("UpdateBooking: failed to get schedule: %v", err)
			return fmt.Errorf("%w: UpdateBooking - get schedule: %v", ErrInternal, err)
		}
		if day == nil || !day.IsOpen {
			uc.logger.Warn("UpdateBooking: salon is closed on %s", date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s", domain.ErrScheduleClosed, date.Format(domain.DateFormat))
		}

		// 4.3. Целевой слот должен быть предложен расписанием
		// Текущий слот самого бронирования остается допустимым, даже если уже наступил
		sameSlot := booking.Occupies(req.ProfessionalID, date, req.StartTime)
		candidates := scheduling.GenerateSlots(day, date, now)
		if !sameSlot && !scheduling.ContainsSlot(candidates, req.StartTime) {
			uc.logger.Warn("UpdateBooking: time %s is not an offered slot on %s", req.StartTime, date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s is not offered", domain.ErrSlotConflict, req.StartTime)
		}

		// 4.4. Конфликты на цели, исключая само бронирование
		existing, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			ProfessionalID: &req.ProfessionalID,
			StartDate:      &date,
			EndDate:        &date,
			Statuses:       domain.ActiveStatuses,
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: UpdateBooking - get bookings: %v", ErrInternal, err)
		}

		others := excludeBooking(existing, booking.ID)
		if !scheduling.ContainsSlot(scheduling.AvailableSlots([]types.TimeString{req.StartTime}, others, req.ProfessionalID, date), req.StartTime) {
			uc.logger.Warn("UpdateBooking: slot %s on %s already taken", req.StartTime, date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s %s", domain.ErrSlotConflict, date.Format(domain.DateFormat), req.StartTime)
		}

		// 4.5. Обновляем детали
		details := domain.BookingDetails{
			ServiceID:       req.ServiceID,
			ProfessionalID:  req.ProfessionalID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: service.EffectiveDuration(),
			TotalPrice:      service.Price,
		}

		if err := uc.bookingRepo.UpdateDetails(txCtx, booking.ID, details); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("UpdateBooking: store rejected slot %s on %s: %v", req.StartTime, date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: UpdateBooking - update details: %v", ErrInternal, err)
		}

		booking.ServiceID = details.ServiceID
		booking.ProfessionalID = details.ProfessionalID
		booking.Date = details.Date
		booking.StartTime = details.StartTime
		booking.DurationMinutes = details.DurationMinutes
		booking.TotalPrice = details.TotalPrice
		booking.UpdatedAt = now
		updated = booking
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
			uc.logger.Error("UpdateBooking: transaction failed: %v", err)
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.events.BookingUpdated(ctx, updated)

	uc.logger.Info("UpdateBooking: successfully updated booking id=%s", updated.ID)
	return updated, nil
}

func (uc *UseCase) checkStaff(ctx context.Context, userID uuid.UUID) error {
	isStaff, err := uc.access.IsStaff(ctx, userID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to check role for user=%s: %v", userID, err)
		return fmt.Errorf("%w: UpdateBooking - check role: %v", ErrInternal, err)
	}
	if !isStaff {
		uc.logger.Warn("UpdateBooking: user=%s is not staff", userID)
		return ErrAccessDenied
	}
	return nil
}

func (uc *UseCase) loadService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	service, err := uc.catalogRepo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("UpdateBooking: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateBooking - get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("UpdateBooking: service id=%s is inactive", id)
		return nil, ErrServiceNotFound
	}
	return service, nil
}

func (uc *UseCase) checkProfessional(ctx context.Context, id uuid.UUID) error {
	professional, err := uc.catalogRepo.GetProfessional(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("UpdateBooking: professional id=%s not found", id)
			return ErrProfessionalNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get professional id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateBooking - get professional: %v", ErrInternal, err)
	}
	if !professional.IsActive {
		uc.logger.Warn("UpdateBooking: professional id=%s is inactive", id)
		return ErrProfessionalNotFound
	}
	return nil
}

func excludeBooking(bookings []*domain.Booking, id uuid.UUID) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			result = append(result, b)
		}
	}
	return result
}

func isKnownError(err error) bool {
	return errors.Is(err, domain.ErrSlotConflict) ||
		errors.Is(err, domain.ErrScheduleClosed) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, ErrBookingNotFound) ||
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
