package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInvalidDate возвращается при нераспознанной дате
	ErrInvalidDate = errors.New("reschedule_appointment: invalid date")

	// ErrInvalidTime возвращается при времени не в формате HH:MM
	ErrInvalidTime = errors.New("reschedule_appointment: invalid time")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrModificationLocked возвращается, когда до записи осталось не больше допустимого окна.
	// В цепочке ошибки есть *availability.LockedError с текстом для пользователя
	ErrModificationLocked = errors.New("reschedule_appointment: modification window has closed")

	// ErrSunday возвращается при переносе на воскресенье
	ErrSunday = errors.New("reschedule_appointment: sundays are closed")

	// ErrPastDate возвращается при переносе на прошедшую дату
	ErrPastDate = errors.New("reschedule_appointment: date is in the past")

	// ErrSlotUnavailable возвращается, когда время вне сетки, уже прошло или закрыто администратором
	ErrSlotUnavailable = errors.New("reschedule_appointment: time is not available")

	// ErrSlotTaken возвращается, когда время уже занято другой записью
	ErrSlotTaken = errors.New("reschedule_appointment: slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
