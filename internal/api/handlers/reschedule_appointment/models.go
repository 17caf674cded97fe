package reschedule_appointment

import (
	rescheduleAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(id string) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		ID:      id,
		Date:    r.Date,
		Time:    r.Time,
		Service: r.Service,
	}
}
