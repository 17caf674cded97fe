package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix префикс ключей сессий администратора
const DefaultPrefix = "admin:session"

// RedisStore сессии администратора в Redis. Истечение сессии обеспечивает TTL ключа
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore создает хранилище сессий поверх клиента Redis
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// Create сохраняет токен на ttl
func (s *RedisStore) Create(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	if err := s.rdb.Set(ctx, s.key(token), time.Now().Add(ttl).Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: Create: %v", ErrStore, err)
	}
	return nil
}

// Exists true, если сессия существует и не истекла
func (s *RedisStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Exists: %v", ErrStore, err)
	}
	return n > 0, nil
}

// Delete удаляет сессию. Отсутствие ключа ошибкой не считается
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrStore, err)
	}
	return nil
}

// Ping проверка соединения при старте
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}
