package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Handler", name)
		w.WriteHeader(http.StatusOK)
	}
}

func stubHandlers() Handlers {
	return Handlers{
		ListAppointments:      named("list"),
		GetAppointment:        named("get"),
		CreateAppointment:     named("create"),
		ReplaceAppointment:    named("replace"),
		RescheduleAppointment: named("reschedule"),
		CancelAppointment:     named("cancel"),
		DeleteAppointment:     named("delete"),
		ClientAppointments:    named("by-email"),
		AvailableSlots:        named("slots"),
		ListBlockedDays:       named("blocked"),
		Calendar:              named("calendar"),
		BlockDay:              named("block"),
		UnblockDay:            named("unblock"),
		GetSchedule:           named("schedule"),
		UpdateSchedule:        named("update-schedule"),
		ListBarbers:           named("barbers"),
		AdminLogin:            named("login"),
		AdminLogout:           named("logout"),
		Stats:                 named("stats"),
	}
}

// denyWithoutHeader пропускает только запросы с X-Admin
func denyWithoutHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Admin") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func TestNewRouter_Dispatch(t *testing.T) {
	router := NewRouter(stubHandlers(), Options{AdminAuth: denyWithoutHeader})

	tests := []struct {
		method string
		path   string
		admin  bool
		want   string
		status int
	}{
		{method: http.MethodGet, path: "/api/turnos", want: "list"},
		{method: http.MethodPost, path: "/api/turnos", want: "create"},
		{method: http.MethodGet, path: "/api/turnos/disponibles", want: "slots"},
		{method: http.MethodGet, path: "/api/turnos/abc", want: "get"},
		{method: http.MethodGet, path: "/api/turnos/email/juan@mail.com", want: "by-email"},
		{method: http.MethodPut, path: "/api/turnos/editar/abc", want: "reschedule"},
		{method: http.MethodDelete, path: "/api/turnos/cancelar/abc", want: "cancel"},
		{method: http.MethodGet, path: "/api/dias-no-disponibles", want: "blocked"},
		{method: http.MethodGet, path: "/api/dias-no-disponibles/calendario", want: "calendar"},
		{method: http.MethodGet, path: "/api/horario", want: "schedule"},
		{method: http.MethodGet, path: "/api/peluqueros", want: "barbers"},
		{method: http.MethodPost, path: "/api/admin/login", want: "login"},

		{method: http.MethodPut, path: "/api/turnos/abc", admin: true, want: "replace"},
		{method: http.MethodDelete, path: "/api/turnos/abc", admin: true, want: "delete"},
		{method: http.MethodPost, path: "/api/dias-no-disponibles", admin: true, want: "block"},
		{method: http.MethodDelete, path: "/api/dias-no-disponibles", admin: true, want: "unblock"},
		{method: http.MethodPut, path: "/api/horario", admin: true, want: "update-schedule"},
		{method: http.MethodPost, path: "/api/admin/logout", admin: true, want: "logout"},
		{method: http.MethodGet, path: "/api/admin/estadisticas", admin: true, want: "stats"},

		{method: http.MethodPut, path: "/api/turnos/abc", status: http.StatusUnauthorized},
		{method: http.MethodDelete, path: "/api/turnos/abc", status: http.StatusUnauthorized},
		{method: http.MethodPost, path: "/api/dias-no-disponibles", status: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/admin/estadisticas", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.admin {
				req.Header.Set("X-Admin", "1")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			status := tt.status
			if status == 0 {
				status = http.StatusOK
			}
			assert.Equal(t, status, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("X-Handler"))
		})
	}
}

func TestNewRouter_LoginIsRateLimited(t *testing.T) {
	calls := 0
	limit := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	router := NewRouter(stubHandlers(), Options{LoginLimit: limit})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, calls)
}
