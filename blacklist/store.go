// Package blacklist provides the token revocation store.
//
// A token identifier added with TTL T is reported blacklisted for the next T,
// and absent strictly after T. Cleanup is never required for correctness:
// the memory backend expires entries lazily and the redis backend delegates
// expiry to Redis. AddIfAbsent is the atomic claim primitive refresh-token
// rotation relies on: of two concurrent claims for the same key, exactly one
// wins.
package blacklist

import (
	"context"
	"time"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/redis"
)

// Store records revoked token identifiers with a bounded lifetime.
type Store interface {
	// Add marks key as blacklisted for ttl. Idempotent.
	Add(ctx context.Context, key string, ttl time.Duration) error

	// AddIfAbsent marks key as blacklisted only if it is not already.
	// Returns true if this call claimed the key.
	AddIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Contains reports whether key is currently blacklisted.
	Contains(ctx context.Context, key string) (bool, error)
}

// Backend names a blacklist implementation.
type Backend string

const (
	// BackendMemory is the in-process map store. Not shared across
	// instances; acceptable only for single-instance deployments.
	BackendMemory Backend = "memory"

	// BackendRedis delegates TTL expiry to Redis.
	BackendRedis Backend = "redis"
)

// Config configures the blacklist store.
type Config struct {
	// Backend selects the implementation (default: "memory").
	Backend Backend `mapstructure:"backend"`

	// SweepThreshold is the entry count above which the memory backend
	// performs a full sweep on Add (default: 10000).
	SweepThreshold int `mapstructure:"sweep_threshold"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.SweepThreshold <= 0 {
		c.SweepThreshold = 10000
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendRedis:
		return nil
	default:
		return errors.Configuration("blacklist backend must be \"memory\" or \"redis\" (got: " + string(c.Backend) + ")")
	}
}

// New creates a Store from configuration. The redis client is required for
// the redis backend and ignored otherwise.
func New(cfg Config, client *redis.Client, log *logger.Logger) (Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendRedis:
		if client == nil {
			return nil, errors.Configuration("blacklist backend \"redis\" requires a redis client")
		}
		return NewRedisStore(client), nil
	default:
		return NewMemoryStore(cfg.SweepThreshold, log), nil
	}
}
