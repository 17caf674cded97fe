package update_schedule

import (
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model. Все поля опциональны
type UpdateScheduleRequest struct {
	OpeningTime     *string `json:"openingTime,omitempty"`
	ClosingTime     *string `json:"closingTime,omitempty"`
	IntervalMinutes *int    `json:"intervalMinutes,omitempty"`
	LeadTimeMinutes *int    `json:"leadTimeMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest() *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		OpeningTime:     r.OpeningTime,
		ClosingTime:     r.ClosingTime,
		IntervalMinutes: r.IntervalMinutes,
		LeadTimeMinutes: r.LeadTimeMinutes,
	}
}
