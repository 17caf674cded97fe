package replace_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	replaceAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/replace_appointment"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgMissingFields      = "completá nombre, email, fecha, horario y servicio"
	msgInvalidEmail       = "el email no es válido"
	msgInvalidDate        = "fecha inválida, se espera YYYY-MM-DD"
	msgInvalidTime        = "horario inválido, se espera HH:MM"
	msgSunday             = "los domingos la barbería está cerrada"
	msgPastDate           = "no se puede reservar en una fecha pasada"
	msgSlotUnavailable    = "el horario elegido no está disponible"
	msgSlotTaken          = "ese horario ya fue reservado, elegí otro"
	msgNotFound           = "turno no encontrado"
	msgBarberNotFound     = "peluquero no encontrado"
)

type Handler struct {
	useCase ReplaceAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ReplaceAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/turnos/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req ReplaceAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /turnos/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, replaceAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /turnos/{id} - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, replaceAppointment.ErrSlotTaken):
			h.logger.Warn("PUT /turnos/{id} - Slot taken: id=%s, date=%s, time=%s", id, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, replaceAppointment.ErrBarberNotFound):
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, replaceAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, replaceAppointment.ErrInvalidEmail):
			handlers.RespondBadRequest(w, msgInvalidEmail)

		case errors.Is(err, replaceAppointment.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, replaceAppointment.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, replaceAppointment.ErrSunday):
			handlers.RespondBadRequest(w, msgSunday)

		case errors.Is(err, replaceAppointment.ErrPastDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, replaceAppointment.ErrSlotUnavailable):
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		default:
			h.logger.Error("PUT /turnos/{id} - Failed to replace appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /turnos/{id} - Appointment replaced: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result.Appointment))
}
