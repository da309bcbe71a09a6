package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	access      AccessChecker
	txManager   TransactionManager
	events      EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	access AccessChecker,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		access:      access,
		txManager:   txManager,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, сотрудник любое
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID {
		if err := s.checkStaff(ctx, "GetByID", userID); err != nil {
			return nil, err
		}
	}

	dir := s.loadDirectory(ctx, []*domain.Booking{booking}, true)
	resp := dir.enrich(booking, true)

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return &resp, nil
}

// GetUserBookings получает историю бронирований клиента, новые первыми
func (s *Service) GetUserBookings(ctx context.Context, userID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", userID)

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{CustomerID: &userID})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	scheduling.SortNewestFirst(bookings)

	dir := s.loadDirectory(ctx, bookings, false)
	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, dir.enrich(b, false))
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return resp, nil
}

// ListForAdmin список бронирований для админки с фильтрацией и поиском
// Сортировка: pending, confirmed, completed, cancelled; внутри статуса новые даты первыми
func (s *Service) ListForAdmin(ctx context.Context, req *models.AdminBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForAdmin: user=%s, status=%v, customer=%v, search=%q", req.UserID, req.Status, req.CustomerID, req.Search)

	if err := s.checkStaff(ctx, "ListForAdmin", req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForAdmin: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForAdmin - repository error: %v", ErrInternal, err)
	}

	scheduling.SortByStatusPriority(bookings)

	dir := s.loadDirectory(ctx, bookings, true)
	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		item := dir.enrich(b, true)
		if !item.MatchesSearch(req.Search) {
			continue
		}
		resp.Bookings = append(resp.Bookings, item)
	}

	s.logger.Info("ListForAdmin: returning %d of %d bookings", len(resp.Bookings), len(bookings))
	return resp, nil
}

// Cancel отменяет бронирование
// Клиент может отменить своё бронирование, сотрудник любое.
// Повторная отмена уже отменённого бронирования ничего не делает.
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, userID)

	var (
		changed  *domain.Booking
		previous domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if booking.CustomerID != userID {
			if err := s.checkStaff(txCtx, "Cancel", userID); err != nil {
				return err
			}
		}

		if booking.Status == domain.StatusCancelled {
			s.logger.Info("Cancel: booking id=%s already cancelled", bookingID)
			return nil
		}

		previous = booking.Status
		if err := s.applyStatus(txCtx, "Cancel", booking, domain.StatusCancelled); err != nil {
			return err
		}
		changed = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.afterTransition(ctx, changed, previous)
	return nil
}

// UpdateStatus меняет статус бронирования по таблице переходов
// Доступно только сотрудникам
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s", bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.checkStaff(ctx, "UpdateStatus", req.UserID); err != nil {
		return nil, err
	}

	var (
		result   *domain.Booking
		changed  bool
		previous domain.BookingStatus
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}
		result = booking

		// Отмена идемпотентна
		if booking.Status == domain.StatusCancelled && newStatus == domain.StatusCancelled {
			return nil
		}

		previous = booking.Status
		if err := s.applyStatus(txCtx, "UpdateStatus", booking, newStatus); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.afterTransition(ctx, result, previous)
	}

	s.logger.Info("UpdateStatus: booking id=%s now in status=%s", bookingID, result.Status)
	return models.FromDomainBooking(result), nil
}

// Delete безвозвратно удаляет завершённое или отменённое бронирование
// Доступно только сотрудникам и требует явного подтверждения
func (s *Service) Delete(ctx context.Context, bookingID uuid.UUID, req *models.DeleteBookingRequest) error {
	s.logger.Info("Delete: deleting booking id=%s by user=%s, confirm=%t", bookingID, req.UserID, req.Confirm)

	if err := s.checkStaff(ctx, "Delete", req.UserID); err != nil {
		return err
	}

	if !req.Confirm {
		s.logger.Warn("Delete: booking id=%s deletion not confirmed", bookingID)
		return ErrConfirmationRequired
	}

	var deleted *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Delete", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanBeDeleted() {
			s.logger.Warn("Delete: booking id=%s in status=%s cannot be deleted", bookingID, booking.Status)
			return fmt.Errorf("%w: cannot delete booking in status %s", domain.ErrInvalidTransition, booking.Status)
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		deleted = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.events.BookingDeleted(ctx, deleted)
	s.logger.Info("Delete: successfully deleted booking id=%s", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// applyStatus проверяет переход по таблице и сохраняет новый статус
func (s *Service) applyStatus(ctx context.Context, op string, booking *domain.Booking, next domain.BookingStatus) error {
	if err := domain.ValidateTransition(booking.Status, next); err != nil {
		s.logger.Warn("%s: booking id=%s: %v", op, booking.ID, err)
		return err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, next); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found during update", op, booking.ID)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking.Status = next
	return nil
}

func (s *Service) afterTransition(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) {
	if booking == nil {
		return
	}
	s.metrics.IncStatusTransition(string(previous), string(booking.Status))
	s.events.BookingStatusChanged(ctx, booking, previous)
	s.logger.Info("booking id=%s: %s -> %s", booking.ID, previous, booking.Status)
}

// checkStaff проверяет, что пользователь является сотрудником салона
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
