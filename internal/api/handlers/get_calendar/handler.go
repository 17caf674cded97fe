package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays"
)

const (
	msgInvalidMonth = "mes inválido, se espera YYYY-MM"
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

// Handle GET /api/dias-no-disponibles/calendario
// Query params: mes (YYYY-MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("mes")

	response, err := h.service.Calendar(r.Context(), month)
	if err != nil {
		if errors.Is(err, blockeddays.ErrInvalidMonth) {
			h.logger.Warn("GET /dias-no-disponibles/calendario - Invalid month: %q", month)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		h.logger.Error("GET /dias-no-disponibles/calendario - Failed to build calendar: month=%s, error=%v", month, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
