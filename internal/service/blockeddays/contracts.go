package blockeddays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// BlockedDayRepository интерфейс репозитория закрытых дней
type BlockedDayRepository interface {
	List(ctx context.Context) ([]*domain.BlockedDay, error)
	GetByDate(ctx context.Context, date types.DateString) (*domain.BlockedDay, error)
	Create(ctx context.Context, day *domain.BlockedDay) (*domain.BlockedDay, error)
	UpdateTimes(ctx context.Context, id string, times []types.TimeString) error
	Delete(ctx context.Context, id string) error
}

// AppointmentRepository записи нужны, чтобы не закрыть уже занятое время
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// ScheduleProvider источник актуальных Engine и Policy
type ScheduleProvider interface {
	Current(ctx context.Context) (*availability.Engine, availability.Policy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
