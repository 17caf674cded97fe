package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-BarberBooking/internal/service/admin/models"
)

// Service вход администратора по паролю и проверка сессий
type Service struct {
	passwordHash []byte
	sessionTTL   time.Duration
	sessions     SessionStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис. passwordHash - bcrypt-хэш пароля администратора
func NewService(passwordHash string, sessionTTL time.Duration, sessions SessionStore, logger Logger) *Service {
	return &Service{
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		sessionTTL:   sessionTTL,
		sessions:     sessions,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет пароль и открывает сессию на sessionTTL
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if len(s.passwordHash) == 0 {
		s.logger.Error("Login: admin password hash is not configured")
		return nil, ErrNotConfigured
	}

	if req == nil || req.Password == "" {
		return nil, ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("Login: invalid admin password")
			return nil, ErrInvalidPassword
		}
		s.logger.Error("Login: bcrypt error: %v", err)
		return nil, fmt.Errorf("%w: Login - compare hash: %v", ErrInternal, err)
	}

	token := uuid.NewString()
	if err := s.sessions.Create(ctx, token, s.sessionTTL); err != nil {
		s.logger.Error("Login: failed to store session: %v", err)
		return nil, fmt.Errorf("%w: Login - store session: %v", ErrInternal, err)
	}

	expiresAt := s.timeProvider.Now().Add(s.sessionTTL)
	s.logger.Info("Login: admin session opened until %s", expiresAt.UTC().Format(time.RFC3339))

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Validate nil, если токен соответствует открытой сессии
func (s *Service) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	ok, err := s.sessions.Exists(ctx, token)
	if err != nil {
		s.logger.Error("Validate: session store error: %v", err)
		return fmt.Errorf("%w: Validate - session store: %v", ErrInternal, err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

// Logout закрывает сессию
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.Error("Logout: session store error: %v", err)
		return fmt.Errorf("%w: Logout - session store: %v", ErrInternal, err)
	}
	s.logger.Info("Logout: admin session closed")
	return nil
}
