package calendar

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CatalogRepository справочники для подписей в календаре
type CatalogRepository interface {
	GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error)
	GetCustomerProfiles(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomerProfile, error)
}

// AccessChecker проверка прав персонала
type AccessChecker interface {
	IsStaff(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
