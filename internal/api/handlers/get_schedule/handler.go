package get_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/horario
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /horario - Failed to get schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
