package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/admin"
)

type contextKey string

const adminTokenKey contextKey = "adminToken"

// SessionValidator проверка токена сессии администратора
type SessionValidator interface {
	Validate(ctx context.Context, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth пропускает запрос только с действующим токеном в заголовке Authorization: Bearer <token>
func AdminAuth(validator SessionValidator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				logger.Warn("%s %s - Missing admin token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w)
				return
			}

			if err := validator.Validate(r.Context(), token); err != nil {
				if errors.Is(err, admin.ErrUnauthorized) {
					logger.Warn("%s %s - Invalid or expired admin session", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w)
					return
				}
				logger.Error("%s %s - Failed to validate admin session: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken токен из заголовка Authorization, пустая строка при его отсутствии
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetAdminToken токен сессии, проверенный AdminAuth
func GetAdminToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(adminTokenKey).(string)
	return token, ok && token != ""
}
