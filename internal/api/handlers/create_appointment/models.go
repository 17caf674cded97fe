package create_appointment

import (
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName string  `json:"clientName"`
	Mail       string  `json:"mail"`
	Date       string  `json:"date"` // "2026-01-05" или "2026-01-05T00:00:00.000Z"
	Time       string  `json:"time"` // "14:00"
	Service    string  `json:"service"`
	BarberID   *string `json:"peluquero,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		ClientName:  r.ClientName,
		ClientEmail: r.Mail,
		Date:        r.Date,
		Time:        r.Time,
		Service:     r.Service,
		BarberID:    r.BarberID,
	}
}
