package get_available_slots

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса свободных слотов
type Request struct {
	Date      string // YYYY-MM-DD или ISO instant
	ExcludeID string // Запись, которую переносят: её время считается свободным
}

// Response свободные слоты даты в порядке сетки
type Response struct {
	Date   types.DateString
	Status domain.DayStatus
	Past   bool
	Slots  []types.TimeString
}
