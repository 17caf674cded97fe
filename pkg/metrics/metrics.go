package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса.
// Методы бизнес-метрик безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec

	AppointmentsCreated *prometheus.CounterVec
	BookingConflicts    *prometheus.CounterVec
	PolicyRefusals      *prometheus.CounterVec

	serviceName string
}

// New регистрирует метрики в стандартном registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в указанном registry (используется в тестах)
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		AppointmentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Appointments successfully booked",
		}, []string{"service", "haircut_service"}),

		BookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking attempts rejected because the slot was already taken",
		}, []string{"service", "operation"}),

		PolicyRefusals: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "modification_window_refusals_total",
			Help: "Edit or cancel attempts refused by the lead-time window",
		}, []string{"service", "operation"}),

		serviceName: serviceName,
	}
}

// AppointmentCreated учитывает созданный турно
func (m *Metrics) AppointmentCreated(haircutService string) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(m.serviceName, haircutService).Inc()
}

// BookingConflict учитывает конфликт слота
func (m *Metrics) BookingConflict(operation string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.serviceName, operation).Inc()
}

// PolicyRefusal учитывает отказ по окну редактирования/отмены
func (m *Metrics) PolicyRefusal(operation string) {
	if m == nil {
		return
	}
	m.PolicyRefusals.WithLabelValues(m.serviceName, operation).Inc()
}
