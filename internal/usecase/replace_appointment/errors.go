package replace_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("replace_appointment: invalid input data")

	// ErrInvalidEmail возвращается при некорректном email клиента
	ErrInvalidEmail = errors.New("replace_appointment: invalid email")

	// ErrInvalidDate возвращается при нераспознанной дате
	ErrInvalidDate = errors.New("replace_appointment: invalid date")

	// ErrInvalidTime возвращается при времени не в формате HH:MM
	ErrInvalidTime = errors.New("replace_appointment: invalid time")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("replace_appointment: appointment not found")

	// ErrSunday возвращается при переносе на воскресенье
	ErrSunday = errors.New("replace_appointment: sundays are closed")

	// ErrPastDate возвращается при переносе на прошедшую дату
	ErrPastDate = errors.New("replace_appointment: date is in the past")

	// ErrSlotUnavailable возвращается, когда время вне сетки, уже прошло или закрыто администратором
	ErrSlotUnavailable = errors.New("replace_appointment: time is not available")

	// ErrSlotTaken возвращается, когда время уже занято другой записью
	ErrSlotTaken = errors.New("replace_appointment: slot already taken")

	// ErrBarberNotFound возвращается при неизвестном парикмахере
	ErrBarberNotFound = errors.New("replace_appointment: barber not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("replace_appointment: internal error")
)
