package list_barbers

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type BarberRepository interface {
	List(ctx context.Context) ([]*domain.Barber, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
