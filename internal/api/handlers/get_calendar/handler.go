package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
)

const (
	msgUnauthorized     = "пользователь не авторизован"
	msgInvalidWeekStart = "некорректный параметр weekStart, ожидается формат YYYY-MM-DD"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service CalendarService
	loc     *time.Location
	logger  Logger
}

// NewHandler без weekStart неделя начинается с сегодняшнего дня в часовом поясе салона
func NewHandler(service CalendarService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar?weekStart=2025-10-13
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	weekStart, err := handlers.QueryDate(r, "weekStart")
	if err != nil {
		h.logger.Warn("GET /admin/calendar - Invalid weekStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}
	if weekStart == nil {
		now := time.Now().In(h.loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		weekStart = &today
	}

	result, err := h.service.Week(r.Context(), userID, *weekStart)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrAccessDenied):
			h.logger.Warn("GET /admin/calendar - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/calendar - Failed to build calendar: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
