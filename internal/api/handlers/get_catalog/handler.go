package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// Handler отдаёт публичный каталог: только активные услуги и мастера
type Handler struct {
	catalog CatalogReader
	logger  Logger
}

func NewHandler(catalog CatalogReader, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleServices GET /api/v1/services
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.GetServices(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /services - Failed to get services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServices(services))
}

// HandleProfessionals GET /api/v1/professionals
func (h *Handler) HandleProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.catalog.GetProfessionals(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /professionals - Failed to get professionals: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromProfessionals(professionals))
}
