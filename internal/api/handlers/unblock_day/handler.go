package unblock_day

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
	msgInvalidTime        = "horario inválido, se espera HH:MM"
	msgNotFound           = "el día no tiene horarios bloqueados"
	msgTimeNotBlocked     = "ese horario no está bloqueado"
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

// Handle DELETE /api/dias-no-disponibles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UnblockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /dias-no-disponibles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Unblock(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, blockeddays.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, blockeddays.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, blockeddays.ErrBlockedDayNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, blockeddays.ErrTimeNotBlocked):
			handlers.RespondNotFound(w, msgTimeNotBlocked)

		case errors.Is(err, blockeddays.ErrConflict):
			h.logger.Warn("DELETE /dias-no-disponibles - Concurrent modification: date=%s", req.Date)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("DELETE /dias-no-disponibles - Failed to unblock: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /dias-no-disponibles - Unblocked: date=%s", req.Date)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
