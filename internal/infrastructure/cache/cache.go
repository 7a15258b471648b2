package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a small JSON cache used for the customer portal's read-heavy
// listing. The portal is embedded in an iframe and polled by browsers; the
// admin API never reads through it.

type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedis connects to redis at addr. Returns an error when the address is
// empty; callers fall back to NewNoop.
func NewRedis(ctx context.Context, addr string) (Store, error) {
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &redisStore{client: client}, nil
}

func (s *redisStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

type noopStore struct{}

// NewNoop returns a Store that caches nothing, for deployments without redis.
func NewNoop() Store { return noopStore{} }

func (noopStore) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopStore) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopStore) Delete(context.Context, ...string) error { return nil }
