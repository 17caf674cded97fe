package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore сессии в памяти процесса. Используется, когда Redis не настроен
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

// NewMemoryStore создает хранилище сессий в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Create сохраняет токен на ttl
func (s *MemoryStore) Create(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for t, expires := range s.sessions {
		if !now.Before(expires) {
			delete(s.sessions, t)
		}
	}
	s.sessions[token] = now.Add(ttl)
	return nil
}

// Exists true, если сессия существует и не истекла
func (s *MemoryStore) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		delete(s.sessions, token)
		return false, nil
	}
	return true, nil
}

// Delete удаляет сессию
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
