package store

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/turnosapi"
)

// Backend REST API барбершопа. Реализуется turnosapi.Client
type Backend interface {
	ListAppointments(ctx context.Context) ([]*domain.Appointment, error)
	ListBlockedDays(ctx context.Context) ([]*domain.BlockedDay, error)
	GetSchedule(ctx context.Context) (*turnosapi.Schedule, error)

	CreateAppointment(ctx context.Context, in *turnosapi.AppointmentInput) (*domain.Appointment, error)
	ReplaceAppointment(ctx context.Context, id string, in *turnosapi.AppointmentInput) (*domain.Appointment, error)
	RescheduleAppointment(ctx context.Context, id string, in *turnosapi.RescheduleInput) (*domain.Appointment, error)
	CancelAppointment(ctx context.Context, id string) error
	DeleteAppointment(ctx context.Context, id string) error

	BlockDay(ctx context.Context, date string, times []string) (*domain.BlockedDay, error)
	UnblockDay(ctx context.Context, date, t string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
