package models

// LoginRequest вход администратора
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse токен сессии и момент его истечения (RFC 3339)
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
