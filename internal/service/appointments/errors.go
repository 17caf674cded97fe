package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments.service: invalid input data")

	// ErrModificationLocked возвращается, когда до записи осталось не больше допустимого окна.
	// В цепочке ошибки есть *availability.LockedError с текстом для пользователя
	ErrModificationLocked = errors.New("appointments.service: modification window has closed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)
