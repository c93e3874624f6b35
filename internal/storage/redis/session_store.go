// Package redis persists session records in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/port"
)

// NewClient creates a Redis client from config.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping checks the connection.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

type sessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore. A zero ttl keeps records until
// they are deleted.
func NewSessionStore(client *redis.Client, ttl time.Duration) port.SessionStore {
	return &sessionStore{client: client, ttl: ttl}
}

func (s *sessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redisSessionStore.Get: %w", err)
	}
	return val, nil
}

func (s *sessionStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisSessionStore.Set: %w", err)
	}
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redisSessionStore.Delete: %w", err)
	}
	return nil
}
