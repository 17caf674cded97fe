package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgMissingFields      = "completá fecha y horario"
	msgInvalidDate        = "fecha inválida, se espera YYYY-MM-DD"
	msgInvalidTime        = "horario inválido, se espera HH:MM"
	msgSunday             = "los domingos la barbería está cerrada"
	msgPastDate           = "no se puede reservar en una fecha pasada"
	msgSlotUnavailable    = "el horario elegido no está disponible"
	msgSlotTaken          = "ese horario ya fue reservado, elegí otro"
	msgNotFound           = "turno no encontrado"
	msgLocked             = "ya no se puede modificar este turno"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/turnos/editar/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /turnos/editar/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /turnos/editar/{id} - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrModificationLocked):
			reason, ok := availability.LockReason(err)
			if !ok {
				reason = msgLocked
			}
			h.logger.Warn("PUT /turnos/editar/{id} - Inside modification window: id=%s", id)
			handlers.RespondForbidden(w, reason)

		case errors.Is(err, rescheduleAppointment.ErrSlotTaken):
			h.logger.Warn("PUT /turnos/editar/{id} - Slot taken: id=%s, date=%s, time=%s", id, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, rescheduleAppointment.ErrSunday):
			handlers.RespondBadRequest(w, msgSunday)

		case errors.Is(err, rescheduleAppointment.ErrPastDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, rescheduleAppointment.ErrSlotUnavailable):
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		default:
			h.logger.Error("PUT /turnos/editar/{id} - Failed to reschedule appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /turnos/editar/{id} - Appointment moved: id=%s, date=%s, time=%s",
		id, result.Appointment.Date, result.Appointment.Time)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result.Appointment))
}
