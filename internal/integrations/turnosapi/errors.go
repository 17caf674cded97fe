package turnosapi

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation возвращается при ответе 400
	ErrValidation = errors.New("turnosapi client: validation error")

	// ErrUnauthorized возвращается при ответе 401: нет сессии администратора или она истекла
	ErrUnauthorized = errors.New("turnosapi client: unauthorized")

	// ErrPolicy возвращается при ответе 403: запись внутри окна изменений
	ErrPolicy = errors.New("turnosapi client: modification window has closed")

	// ErrNotFound возвращается при ответе 404
	ErrNotFound = errors.New("turnosapi client: not found")

	// ErrConflict возвращается при ответе 409: слот уже занят
	ErrConflict = errors.New("turnosapi client: conflict")

	// ErrRateLimited возвращается при ответе 429
	ErrRateLimited = errors.New("turnosapi client: too many requests")

	// ErrServer возвращается при ответах 5xx и прочих неожиданных статусах
	ErrServer = errors.New("turnosapi client: server error")

	// ErrTransport возвращается, когда запрос не дошел до сервера или ответ не прочитан
	ErrTransport = errors.New("turnosapi client: transport error")

	// ErrInvalidResponse возвращается при ответе, который не удалось разобрать
	ErrInvalidResponse = errors.New("turnosapi client: invalid response")
)

// APIError ответ сервера с ошибкой. Message - текст из тела {"error": "..."}
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Message текст ошибки сервера из цепочки, если он есть
func Message(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
