package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date   string   `json:"date"` // YYYY-MM-DD
	Status string   `json:"status"`
	Past   bool     `json:"past"`
	Slots  []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		Date:   resp.Date.String(),
		Status: string(resp.Status),
		Past:   resp.Past,
		Slots:  make([]string, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, slot.String())
	}
	return result
}
