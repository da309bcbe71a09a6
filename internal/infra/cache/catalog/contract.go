package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Source источник данных каталога (репозиторий БД)
type Source interface {
	GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	GetCustomerProfiles(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomerProfile, error)
	CountCustomers(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
