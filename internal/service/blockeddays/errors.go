package blockeddays

import "errors"

var (
	// ErrInvalidDate возвращается при нераспознанной дате
	ErrInvalidDate = errors.New("blockeddays.service: invalid date")

	// ErrInvalidMonth возвращается при месяце не в формате YYYY-MM
	ErrInvalidMonth = errors.New("blockeddays.service: invalid month")

	// ErrInvalidTime возвращается при времени не из сетки слотов
	ErrInvalidTime = errors.New("blockeddays.service: time is not on the slot grid")

	// ErrSunday возвращается при попытке закрыть воскресенье: оно закрыто всегда
	ErrSunday = errors.New("blockeddays.service: sundays are always closed")

	// ErrPastDate возвращается при попытке закрыть прошедший день
	ErrPastDate = errors.New("blockeddays.service: date is in the past")

	// ErrTimeOccupied возвращается, когда закрываемое время уже занято записью
	ErrTimeOccupied = errors.New("blockeddays.service: time already has an appointment")

	// ErrConflict возвращается при одновременном изменении одного дня
	ErrConflict = errors.New("blockeddays.service: concurrent modification")

	// ErrBlockedDayNotFound возвращается, когда на дату нет закрытых слотов
	ErrBlockedDayNotFound = errors.New("blockeddays.service: blocked day not found")

	// ErrTimeNotBlocked возвращается, когда снимаемое время не было закрыто
	ErrTimeNotBlocked = errors.New("blockeddays.service: time is not blocked")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blockeddays.service: internal error")
)
