package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidEmail возвращается при некорректном email клиента
	ErrInvalidEmail = errors.New("create_appointment: invalid email")

	// ErrInvalidDate возвращается при нераспознанной дате
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrInvalidTime возвращается при времени не в формате HH:MM
	ErrInvalidTime = errors.New("create_appointment: invalid time")

	// ErrSunday возвращается при записи на воскресенье
	ErrSunday = errors.New("create_appointment: sundays are closed")

	// ErrPastDate возвращается при записи на прошедшую дату
	ErrPastDate = errors.New("create_appointment: date is in the past")

	// ErrSlotUnavailable возвращается, когда время вне сетки, уже прошло или закрыто администратором
	ErrSlotUnavailable = errors.New("create_appointment: time is not available")

	// ErrSlotTaken возвращается, когда время уже занято другой записью
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrBarberNotFound возвращается при неизвестном парикмахере
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
