package block_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays"
	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDate        = "fecha inválida, se espera YYYY-MM-DD"
	msgInvalidTime        = "el horario no pertenece a la grilla de turnos"
	msgSunday             = "los domingos ya están cerrados"
	msgPastDate           = "no se puede bloquear un día pasado"
	msgTimeOccupied       = "hay un turno reservado en ese horario"
	msgConflict           = "el día fue modificado al mismo tiempo, intentá de nuevo"
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

// Handle POST /api/dias-no-disponibles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BlockDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dias-no-disponibles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.Block(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blockeddays.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, blockeddays.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, blockeddays.ErrSunday):
			handlers.RespondBadRequest(w, msgSunday)

		case errors.Is(err, blockeddays.ErrPastDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, blockeddays.ErrTimeOccupied):
			h.logger.Warn("POST /dias-no-disponibles - Time occupied: date=%s", req.Date)
			handlers.RespondConflict(w, msgTimeOccupied)

		case errors.Is(err, blockeddays.ErrConflict):
			h.logger.Warn("POST /dias-no-disponibles - Concurrent modification: date=%s", req.Date)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /dias-no-disponibles - Failed to block day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /dias-no-disponibles - Day blocked: date=%s, times=%d", response.Date, len(response.BlockedTimes))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
