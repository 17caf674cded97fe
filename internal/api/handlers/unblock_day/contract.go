package unblock_day

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays/models"
)

type BlockedDayService interface {
	Unblock(ctx context.Context, req *models.UnblockRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
