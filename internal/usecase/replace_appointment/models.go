package replace_appointment

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request полная замена записи администратором
type Request struct {
	ID          string
	ClientName  string
	ClientEmail string
	Date        string  // YYYY-MM-DD или ISO instant
	Time        string  // HH:MM
	Service     string
	BarberID    *string // nil оставляет текущего парикмахера, пустая строка снимает его
}

// Response модель ответа с замененной записью
type Response struct {
	Appointment *domain.Appointment
}
