package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
)

// Handlers обработчики маршрутов API
type Handlers struct {
	ListAppointments      http.HandlerFunc
	GetAppointment        http.HandlerFunc
	CreateAppointment     http.HandlerFunc
	ReplaceAppointment    http.HandlerFunc
	RescheduleAppointment http.HandlerFunc
	CancelAppointment     http.HandlerFunc
	DeleteAppointment     http.HandlerFunc
	ClientAppointments    http.HandlerFunc
	AvailableSlots        http.HandlerFunc

	ListBlockedDays http.HandlerFunc
	Calendar        http.HandlerFunc
	BlockDay        http.HandlerFunc
	UnblockDay      http.HandlerFunc

	GetSchedule    http.HandlerFunc
	UpdateSchedule http.HandlerFunc
	ListBarbers    http.HandlerFunc

	AdminLogin  http.HandlerFunc
	AdminLogout http.HandlerFunc
	Stats       http.HandlerFunc
}

// Options middleware и метрики роутера
type Options struct {
	Metrics     *metrics.Metrics // nil отключает метрики
	MetricsPath string
	ServiceName string

	AdminAuth  func(http.Handler) http.Handler
	LoginLimit func(http.Handler) http.Handler
	CORS       middleware.CORSPolicy
}

// NewRouter маршруты /api. Возвращает handler, обернутый в CORS
func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics, opts.ServiceName))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Статические пути регистрируются раньше /turnos/{id}
	api.HandleFunc("/turnos/disponibles", h.AvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/turnos/email/{email}", h.ClientAppointments).Methods(http.MethodGet)
	api.HandleFunc("/turnos/editar/{id}", h.RescheduleAppointment).Methods(http.MethodPut)
	api.HandleFunc("/turnos/cancelar/{id}", h.CancelAppointment).Methods(http.MethodDelete)
	api.HandleFunc("/turnos", h.ListAppointments).Methods(http.MethodGet)
	api.HandleFunc("/turnos", h.CreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/turnos/{id}", h.GetAppointment).Methods(http.MethodGet)

	api.HandleFunc("/dias-no-disponibles/calendario", h.Calendar).Methods(http.MethodGet)
	api.HandleFunc("/dias-no-disponibles", h.ListBlockedDays).Methods(http.MethodGet)

	api.HandleFunc("/horario", h.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/peluqueros", h.ListBarbers).Methods(http.MethodGet)

	login := http.Handler(h.AdminLogin)
	if opts.LoginLimit != nil {
		login = opts.LoginLimit(login)
	}
	api.Handle("/admin/login", login).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	if opts.AdminAuth != nil {
		protected.Use(opts.AdminAuth)
	}

	protected.HandleFunc("/turnos/{id}", h.ReplaceAppointment).Methods(http.MethodPut)
	protected.HandleFunc("/turnos/{id}", h.DeleteAppointment).Methods(http.MethodDelete)
	protected.HandleFunc("/dias-no-disponibles", h.BlockDay).Methods(http.MethodPost)
	protected.HandleFunc("/dias-no-disponibles", h.UnblockDay).Methods(http.MethodDelete)
	protected.HandleFunc("/horario", h.UpdateSchedule).Methods(http.MethodPut)
	protected.HandleFunc("/admin/logout", h.AdminLogout).Methods(http.MethodPost)
	protected.HandleFunc("/admin/estadisticas", h.Stats).Methods(http.MethodGet)

	return middleware.WithCORS(opts.CORS)(r)
}
