package get_customer_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/stats"
)

const (
	msgUnauthorized = "пользователь не авторизован"
	msgForbidden    = "доступ запрещен"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/customers/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.CustomerStats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, stats.ErrAccessDenied) {
			h.logger.Warn("GET /admin/customers/stats - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /admin/customers/stats - Failed to get customer stats: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/customers/stats - Returned %d customers", len(result.Customers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
