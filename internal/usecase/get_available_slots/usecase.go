package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения доступных слотов мастера на дату
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// loc часовой пояс салона, в котором определяется "сейчас"
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%s, date=%s",
		req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	response := &Response{
		Date:           date,
		ProfessionalID: req.ProfessionalID,
		Slots:          []types.TimeString{},
	}

	// 2. Текущее время фиксируется один раз на весь расчет
	now := uc.timeProvider.Now()

	// 3. Проверяем мастера
	professional, err := uc.catalogRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.IsActive {
		uc.logger.Warn("GetAvailableSlots: professional id=%s is inactive", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 4. Прошедшие даты не предлагаются
	if date.Before(domain.DateOnly(now)) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Получаем расписание дня недели
	day, err := uc.scheduleRepo.GetByDay(ctx, int(date.Weekday()))
	if err != nil && !errors.Is(err, scheduleRepo.ErrDayNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for %s: %v", date.Weekday(), err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if day == nil || !day.IsOpen {
		uc.logger.Info("GetAvailableSlots: %v on %s", domain.ErrScheduleClosed, date.Format(domain.DateFormat))
		response.Closed = true
		return response, nil
	}

	// 6. Генерируем кандидатов
	candidates := scheduling.GenerateSlots(day, date, now)
	if len(candidates) == 0 {
		return response, nil
	}

	// 7. Получаем активные бронирования мастера на дату
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		ProfessionalID: &req.ProfessionalID,
		StartDate:      &date,
		EndDate:        &date,
		Statuses:       domain.ActiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Исключаем занятые слоты
	response.Slots = scheduling.AvailableSlots(candidates, bookings, req.ProfessionalID, date)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for professional=%s, date=%s",
		len(response.Slots), len(candidates), req.ProfessionalID, date.Format(domain.DateFormat))

	return response, nil
}
