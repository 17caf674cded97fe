package reschedule_appointment

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request перенос записи клиентом
type Request struct {
	ID      string // ID записи
	Date    string // Новая дата: YYYY-MM-DD или ISO instant
	Time    string // Новое время HH:MM
	Service string // Новая услуга, пустая строка оставляет текущую
}

// Response модель ответа с измененной записью
type Response struct {
	Appointment *domain.Appointment
}

type parsedRequest struct {
	id      string
	date    types.DateString
	time    types.TimeString
	service domain.Service
}
