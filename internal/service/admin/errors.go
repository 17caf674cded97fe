package admin

import "errors"

var (
	// ErrInvalidPassword возвращается при неверном пароле администратора
	ErrInvalidPassword = errors.New("admin.service: invalid password")

	// ErrUnauthorized возвращается при отсутствующей или истекшей сессии
	ErrUnauthorized = errors.New("admin.service: unauthorized")

	// ErrNotConfigured возвращается, когда хэш пароля администратора не задан
	ErrNotConfigured = errors.New("admin.service: admin password is not configured")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admin.service: internal error")
)
