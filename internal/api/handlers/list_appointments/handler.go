package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
)

const (
	msgInvalidParams = "parámetros de búsqueda inválidos"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/turnos
// Query params: fecha, hora, servicio (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.List(r.Context(), ToServiceRequest(r.URL.Query()))
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /turnos - Invalid filters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /turnos - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /turnos - Listed %d appointments", len(response.Data))
	handlers.RespondJSON(w, http.StatusOK, response)
}
