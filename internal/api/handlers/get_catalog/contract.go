package get_catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogReader источник каталога (кэш поверх репозитория)
type CatalogReader interface {
	GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
