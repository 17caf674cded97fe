package store

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("store: invalid input data")

	// ErrConflict возвращается, когда слот занят: по локальному снимку или по ответу сервера
	ErrConflict = errors.New("store: slot already taken")

	// ErrPolicyViolation возвращается, когда запись внутри окна изменений.
	// Для проверки, сделанной локально, в цепочке есть *availability.LockedError
	ErrPolicyViolation = errors.New("store: modification window has closed")

	// ErrNotFound возвращается, когда сервер не нашел запись или день
	ErrNotFound = errors.New("store: not found")

	// ErrBackend возвращается при прочих ошибках сервера и транспорта
	ErrBackend = errors.New("store: backend error")
)
