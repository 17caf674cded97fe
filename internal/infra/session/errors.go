package session

import "errors"

var (
	// ErrInvalidTTL возвращается при неположительном времени жизни сессии
	ErrInvalidTTL = errors.New("session.store: ttl must be positive")

	// ErrStore возвращается при ошибке хранилища сессий
	ErrStore = errors.New("session.store: storage error")
)
