package availability

import "errors"

var (
	// ErrInvalidInterval возвращается при интервале сетки <= 0
	ErrInvalidInterval = errors.New("availability: slot interval must be positive")

	// ErrInvalidBounds возвращается при некорректных границах рабочего дня
	ErrInvalidBounds = errors.New("availability: invalid opening or closing time")

	// ErrInvalidDate возвращается, когда дата отсутствует или не распознана
	ErrInvalidDate = errors.New("availability: invalid date")

	// ErrSunday возвращается при выборе воскресенья
	ErrSunday = errors.New("availability: sundays are not bookable")

	// ErrPastDate возвращается при выборе прошедшей даты
	ErrPastDate = errors.New("availability: date is in the past")

	// ErrSlotElapsed возвращается при выборе уже прошедшего времени сегодняшнего дня
	ErrSlotElapsed = errors.New("availability: time has already passed today")

	// ErrNotOnGrid возвращается, когда время не входит в сетку слотов
	ErrNotOnGrid = errors.New("availability: time is not on the slot grid")

	// ErrSlotBlocked возвращается, когда время закрыто администратором
	ErrSlotBlocked = errors.New("availability: time is blocked")

	// ErrSlotTaken возвращается, когда на дату и время уже есть запись
	ErrSlotTaken = errors.New("availability: slot is already taken")

	// ErrModificationLocked возвращается, когда до записи осталось не больше допустимого окна
	ErrModificationLocked = errors.New("availability: modification window has closed")
)

// IsValidationError true для ошибок выбора даты/времени, которые проверяются без обращения к серверу
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrSunday) ||
		errors.Is(err, ErrPastDate) ||
		errors.Is(err, ErrSlotElapsed) ||
		errors.Is(err, ErrNotOnGrid) ||
		errors.Is(err, ErrSlotBlocked)
}
