package admin_logout

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
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

// Handle POST /api/admin/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Токен кладет в контекст middleware AdminAuth
	token, ok := middleware.GetAdminToken(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/logout - Missing admin token")
		handlers.RespondUnauthorized(w)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.Error("POST /admin/logout - Failed to close session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, nil)
}
