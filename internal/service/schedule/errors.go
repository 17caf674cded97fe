package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule.service: invalid input data")

	// ErrInvalidTime возвращается при некорректном времени открытия/закрытия
	ErrInvalidTime = errors.New("schedule.service: invalid opening or closing time")

	// ErrInvalidInterval возвращается при интервале вне допустимых границ
	ErrInvalidInterval = errors.New("schedule.service: invalid slot interval")

	// ErrInvalidLeadTime возвращается при некорректном окне изменений
	ErrInvalidLeadTime = errors.New("schedule.service: invalid lead time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
