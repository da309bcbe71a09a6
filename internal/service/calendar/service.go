package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar/models"
)

// Service сервис недельного календаря администратора
type Service struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	access      AccessChecker
	grid        scheduling.Grid
	logger      Logger
}

// NewService создает сервис календаря с заданной сеткой
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	access AccessChecker,
	grid scheduling.Grid,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		access:      access,
		grid:        grid,
		logger:      logger,
	}
}

// Week возвращает 7 дней начиная с weekStart с размещением бронирований в сетке
// Отменённые бронирования не отображаются
func (s *Service) Week(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.WeekResponse, error) {
	start := domain.DateOnly(weekStart)
	end := start.AddDate(0, 0, domain.DaysInWeek-1)

	s.logger.Info("Week: user=%s, period=%s..%s", userID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	isStaff, err := s.access.IsStaff(ctx, userID)
	if err != nil {
		s.logger.Error("Week: failed to check role for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Week - check role: %v", ErrInternal, err)
	}
	if !isStaff {
		s.logger.Warn("Week: user=%s is not staff", userID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StartDate: &start,
		EndDate:   &end,
		Statuses:  []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted},
	})
	if err != nil {
		s.logger.Error("Week: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: Week - get bookings: %v", ErrInternal, err)
	}

	labels := s.loadLabels(ctx, bookings)

	cells := s.grid.Cells()
	resp := &models.WeekResponse{
		WeekStart:   start.Format(domain.DateFormat),
		CellMinutes: s.grid.CellMinutes,
		Cells:       timesToStrings(cells),
		Days:        make([]models.DayDTO, 0, domain.DaysInWeek),
	}

	for i := 0; i < domain.DaysInWeek; i++ {
		date := start.AddDate(0, 0, i)

		dayBookings := make([]*domain.Booking, 0)
		for _, b := range bookings {
			if domain.SameDate(b.Date, date) {
				dayBookings = append(dayBookings, b)
			}
		}

		day := models.DayDTO{
			Date:     date.Format(domain.DateFormat),
			Bookings: make([]models.PlacementDTO, 0, len(dayBookings)),
		}
		for _, p := range scheduling.Project(dayBookings, s.grid) {
			day.Bookings = append(day.Bookings, labels.placement(p))
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}
