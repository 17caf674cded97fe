package list_blocked_days

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

type Handler struct {
	service BlockedDayService
	logger  Logger
}

func NewHandler(service BlockedDayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/dias-no-disponibles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /dias-no-disponibles - Failed to list blocked days: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, days)
}
