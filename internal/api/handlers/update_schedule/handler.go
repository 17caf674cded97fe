package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgEmptyUpdate        = "no hay cambios para guardar"
	msgInvalidTime        = "horario de apertura o cierre inválido"
	msgInvalidInterval    = "intervalo de turnos inválido"
	msgInvalidLeadTime    = "anticipación mínima inválida"
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

// Handle PUT /api/horario
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /horario - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, schedule.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, schedule.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, schedule.ErrInvalidLeadTime):
			handlers.RespondBadRequest(w, msgInvalidLeadTime)

		default:
			h.logger.Error("PUT /horario - Failed to update schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /horario - Schedule updated: %s-%s every %d min",
		response.OpeningTime, response.ClosingTime, response.IntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, response)
}
