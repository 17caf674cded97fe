package list_appointments

import (
	"net/url"

	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// ToServiceRequest фильтры из query: fecha, hora, servicio
func ToServiceRequest(query url.Values) *models.ListAppointmentsRequest {
	req := &models.ListAppointmentsRequest{}
	if v := query.Get("fecha"); v != "" {
		req.Date = &v
	}
	if v := query.Get("hora"); v != "" {
		req.Time = &v
	}
	if v := query.Get("servicio"); v != "" {
		req.Service = &v
	}
	return req
}
