package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/internal/service/stats/models"
)

// Service сервис статистики для администратора
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	access       AccessChecker
	txManager    TxManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	access AccessChecker,
	txManager TxManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		access:       access,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{Location: loc},
		location:     loc,
		logger:       logger,
	}
}

// Dashboard возвращает сводные показатели
// Выручка считается только по завершённым бронированиям;
// месячная выручка относится к месяцу создания бронирования.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*models.DashboardResponse, error) {
	s.logger.Info("Dashboard: requested by user=%s", userID)

	if err := s.checkStaff(ctx, "Dashboard", userID); err != nil {
		return nil, err
	}

	now := s.timeProvider.Now().In(s.location)

	var (
		bookings  []*domain.Booking
		prices    map[uuid.UUID]float64
		customers int
	)
	// все показатели считаются по одному снимку
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{})
		if err != nil {
			s.logger.Error("Dashboard: failed to get bookings: %v", err)
			return fmt.Errorf("%w: Dashboard - get bookings: %v", ErrInternal, err)
		}

		prices, err = s.prices(txCtx, "Dashboard")
		if err != nil {
			return err
		}

		customers, err = s.catalogRepo.CountCustomers(txCtx)
		if err != nil {
			s.logger.Error("Dashboard: failed to count customers: %v", err)
			return fmt.Errorf("%w: Dashboard - count customers: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.internal("Dashboard", err)
	}

	resp := &models.DashboardResponse{
		TotalBookings:  len(bookings),
		TotalRevenue:   scheduling.TotalRevenue(bookings, prices),
		MonthRevenue:   scheduling.PeriodRevenue(bookings, prices, now.Year(), now.Month(), s.location),
		TotalCustomers: customers,
	}
	for _, b := range bookings {
		if b.Status == domain.StatusPending {
			resp.PendingBookings++
		}
		if domain.SameDate(b.Date, now) {
			resp.TodayBookings++
		}
	}

	return resp, nil
}

// CustomerStats возвращает статистику по всем клиентам
func (s *Service) CustomerStats(ctx context.Context, userID uuid.UUID) (*models.CustomerStatsResponse, error) {
	s.logger.Info("CustomerStats: requested by user=%s", userID)

	if err := s.checkStaff(ctx, "CustomerStats", userID); err != nil {
		return nil, err
	}

	var (
		profiles []*domain.CustomerProfile
		bookings []*domain.Booking
		prices   map[uuid.UUID]float64
	)
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		profiles, err = s.catalogRepo.GetCustomerProfiles(txCtx, nil)
		if err != nil {
			s.logger.Error("CustomerStats: failed to get profiles: %v", err)
			return fmt.Errorf("%w: CustomerStats - get profiles: %v", ErrInternal, err)
		}

		bookings, err = s.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{})
		if err != nil {
			s.logger.Error("CustomerStats: failed to get bookings: %v", err)
			return fmt.Errorf("%w: CustomerStats - get bookings: %v", ErrInternal, err)
		}

		prices, err = s.prices(txCtx, "CustomerStats")
		return err
	})
	if err != nil {
		return nil, s.internal("CustomerStats", err)
	}

	return &models.CustomerStatsResponse{Customers: aggregateCustomers(profiles, bookings, prices)}, nil
}

func (s *Service) prices(ctx context.Context, op string) (map[uuid.UUID]float64, error) {
	services, err := s.catalogRepo.GetServices(ctx, false)
	if err != nil {
		s.logger.Error("%s: failed to get services: %v", op, err)
		return nil, fmt.Errorf("%w: %s - get services: %v", ErrInternal, op, err)
	}
	return scheduling.ServicePrices(services), nil
}

// internal оборачивает ошибки транзакции, не относящиеся к репозиториям
func (s *Service) internal(op string, err error) error {
	if errors.Is(err, ErrInternal) {
		return err
	}
	s.logger.Error("%s: read snapshot failed: %v", op, err)
	return fmt.Errorf("%w: %s - snapshot: %v", ErrInternal, op, err)
}

func (s *Service) checkStaff(ctx context.Context, op string, userID uuid.UUID) error {
	isStaff, err := s.access.IsStaff(ctx, userID)
	if err != nil {
		s.logger.Error("%s: failed to check role for user=%s: %v", op, userID, err)
		return fmt.Errorf("%w: %s - check role: %v", ErrInternal, op, err)
	}
	if !isStaff {
		s.logger.Warn("%s: user=%s is not staff", op, userID)
		return ErrAccessDenied
	}
	return nil
}
