package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
)

const (
	msgNotFound = "turno no encontrado"
	msgLocked   = "ya no se puede cancelar este turno"
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

// Handle DELETE /api/turnos/cancelar/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Cancel(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /turnos/cancelar/{id} - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrModificationLocked):
			reason, ok := availability.LockReason(err)
			if !ok {
				reason = msgLocked
			}
			h.logger.Warn("DELETE /turnos/cancelar/{id} - Inside modification window: id=%s", id)
			handlers.RespondForbidden(w, reason)

		default:
			h.logger.Error("DELETE /turnos/cancelar/{id} - Failed to cancel appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /turnos/cancelar/{id} - Appointment cancelled: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
