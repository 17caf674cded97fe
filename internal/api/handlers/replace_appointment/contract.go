package replace_appointment

import (
	"context"

	replaceAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/replace_appointment"
)

type ReplaceAppointmentUseCase interface {
	Execute(ctx context.Context, req *replaceAppointment.Request) (*replaceAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
