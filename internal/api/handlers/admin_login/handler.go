package admin_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/admin"
	"github.com/m04kA/SMC-BarberBooking/internal/service/admin/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidPassword    = "contraseña incorrecta"
	msgNotConfigured      = "el acceso de administrador no está configurado"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidPassword):
			h.logger.Warn("POST /admin/login - Invalid password from %s", r.RemoteAddr)
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidPassword)

		case errors.Is(err, admin.ErrNotConfigured):
			h.logger.Error("POST /admin/login - Admin password is not configured")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)

		default:
			h.logger.Error("POST /admin/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/login - Admin session opened, expires at %s", response.ExpiresAt)
	handlers.RespondJSON(w, http.StatusOK, response)
}
