package availability

import (
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// CheckSlot проверяет, что время q.Date/t можно забронировать.
// Используется и клиентом перед отправкой, и сервером внутри транзакции.
// Ошибка объясняет, почему слота нет среди свободных
func (e *Engine) CheckSlot(q Query, t types.TimeString) error {
	if err := q.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, q.Date)
	}
	if q.Date.IsSunday() {
		return ErrSunday
	}

	today := e.Today(q.Now)
	if q.Date.Before(today) {
		return fmt.Errorf("%w: %s", ErrPastDate, q.Date)
	}
	if !e.grid.Contains(t) {
		return fmt.Errorf("%w: %q", ErrNotOnGrid, t)
	}
	if q.Date == today && t <= types.NewTimeString(q.Now.In(e.location)) {
		return fmt.Errorf("%w: %s", ErrSlotElapsed, t)
	}
	if day := FindBlockedDay(q.Date, q.BlockedDays); day != nil && day.IsBlocked(t) {
		return fmt.Errorf("%w: %s %s", ErrSlotBlocked, q.Date, t)
	}
	if _, taken := OccupiedTimes(q.Date, q.Appointments, q.ExcludeID)[t]; taken {
		return fmt.Errorf("%w: %s %s", ErrSlotTaken, q.Date, t)
	}
	return nil
}

// ContainsSlot true, если время есть в списке свободных слотов
func ContainsSlot(free []types.TimeString, t types.TimeString) bool {
	for _, slot := range free {
		if slot == t {
			return true
		}
	}
	return false
}
