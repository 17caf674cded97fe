package list_barbers

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

type Handler struct {
	repo   BarberRepository
	logger Logger
}

func NewHandler(repo BarberRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Handle GET /api/peluqueros
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barbers, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("GET /peluqueros - Failed to list barbers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]models.BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		response = append(response, models.BarberResponse{ID: b.ID, Name: b.Name})
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}
