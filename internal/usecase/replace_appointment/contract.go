package replace_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
}

// BlockedDayRepository интерфейс репозитория закрытых дней
type BlockedDayRepository interface {
	GetByDate(ctx context.Context, date types.DateString) (*domain.BlockedDay, error)
}

// BarberRepository справочник парикмахеров
type BarberRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Barber, error)
}

// ScheduleProvider источник актуальных Engine и Policy
type ScheduleProvider interface {
	Current(ctx context.Context) (*availability.Engine, availability.Policy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики
type Metrics interface {
	BookingConflict(operation string)
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
