package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsenselab/authkit/redis"
)

// keyNamespace isolates blacklist entries from unrelated data in a shared
// Redis instance.
const keyNamespace = "authkit:blacklist:"

// RedisStore is a Store that delegates TTL expiry to Redis. No sweeping is
// needed; Redis drops expired keys natively. Concurrency safety comes from
// Redis itself (SETNX is atomic server-side).
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Add implements Store.
func (s *RedisStore) Add(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyNamespace+key, "1", ttl); err != nil {
		return fmt.Errorf("blacklist: add: %w", err)
	}
	return nil
}

// AddIfAbsent implements Store.
func (s *RedisStore) AddIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	claimed, err := s.client.SetNX(ctx, keyNamespace+key, "1", ttl)
	if err != nil {
		return false, fmt.Errorf("blacklist: add-if-absent: %w", err)
	}
	return claimed, nil
}

// Contains implements Store.
func (s *RedisStore) Contains(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, keyNamespace+key)
	if err != nil {
		return false, fmt.Errorf("blacklist: contains: %w", err)
	}
	return n > 0, nil
}
