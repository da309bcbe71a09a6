package get_customer_stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/service/stats/models"
)

type StatsService interface {
	CustomerStats(ctx context.Context, userID uuid.UUID) (*models.CustomerStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
