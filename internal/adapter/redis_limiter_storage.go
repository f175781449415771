package adapter

import (
	"context"
	"errors"
	"time"

	"practice-quest/internal/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RedisLimiterStorage backs the fiber limiter middleware with Redis so the
// sliding window is shared by every API instance.
type RedisLimiterStorage struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

var _ fiber.Storage = (*RedisLimiterStorage)(nil)

// NewRedisLimiterStorage namespaces every limiter key under the rate limit service prefix.
func NewRedisLimiterStorage(client *redis.Client) *RedisLimiterStorage {
	return &RedisLimiterStorage{
		client:  client,
		prefix:  cache.ServicePrefix(cache.ServiceRate),
		timeout: 2 * time.Second,
	}
}

func (s *RedisLimiterStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil, nil when the key does not exist, as fiber.Storage requires.
func (s *RedisLimiterStorage) Get(key string) ([]byte, error) {
	ctx, cancel := s.ctx()
	defer cancel()
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *RedisLimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *RedisLimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset drops every limiter key.
func (s *RedisLimiterStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()
	_, err := NewRedisCacheAdapter(s.client).DeleteByPrefix(ctx, s.prefix)
	return err
}

// Close is a no-op; the client is owned by the caller.
func (s *RedisLimiterStorage) Close() error {
	return nil
}
