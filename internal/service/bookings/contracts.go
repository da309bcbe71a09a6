package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogRepository справочники для обогащения списков
type CatalogRepository interface {
	GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error)
	GetCustomerProfiles(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomerProfile, error)
}

// AccessChecker проверка прав персонала
type AccessChecker interface {
	IsStaff(ctx context.Context, userID uuid.UUID) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher уведомления о событиях бронирований
type EventPublisher interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus)
	BookingDeleted(ctx context.Context, booking *domain.Booking)
}

// Metrics счетчики переходов статусов
type Metrics interface {
	IncStatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
