package list_blocked_days

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays/models"
)

type BlockedDayService interface {
	List(ctx context.Context) ([]*models.BlockedDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
