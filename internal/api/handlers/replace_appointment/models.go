package replace_appointment

import (
	replaceAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/replace_appointment"
)

// ReplaceAppointmentRequest HTTP request model
type ReplaceAppointmentRequest struct {
	ClientName string  `json:"clientName"`
	Mail       string  `json:"mail"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Service    string  `json:"service"`
	BarberID   *string `json:"peluquero,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReplaceAppointmentRequest) ToUseCaseRequest(id string) *replaceAppointment.Request {
	return &replaceAppointment.Request{
		ID:          id,
		ClientName:  r.ClientName,
		ClientEmail: r.Mail,
		Date:        r.Date,
		Time:        r.Time,
		Service:     r.Service,
		BarberID:    r.BarberID,
	}
}
