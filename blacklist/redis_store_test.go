package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/redis"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mini.Close() })

	client, err := redis.New(redis.Config{Enabled: true, Addr: mini.Addr()}, logger.NewDefault("blacklist-test"))
	if err != nil {
		t.Fatalf("failed to create redis client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mini
}

func TestRedisStore_AddAndContains(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got, err := s.Contains(ctx, "jti-1")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !got {
		t.Error("expected blacklisted")
	}

	got, _ = s.Contains(ctx, "other")
	if got {
		t.Error("unrelated key must not be blacklisted")
	}
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	s, mini := newRedisStore(t)
	ctx := context.Background()

	s.Add(ctx, "short", 2*time.Second)
	mini.FastForward(3 * time.Second)

	got, err := s.Contains(ctx, "short")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if got {
		t.Error("expected absent after TTL")
	}
}

func TestRedisStore_AddIfAbsent(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	claimed, err := s.AddIfAbsent(ctx, "jti", time.Minute)
	if err != nil || !claimed {
		t.Fatalf("expected first claim to win, got %v err=%v", claimed, err)
	}
	claimed, err = s.AddIfAbsent(ctx, "jti", time.Minute)
	if err != nil {
		t.Fatalf("AddIfAbsent failed: %v", err)
	}
	if claimed {
		t.Error("expected second claim to lose")
	}
}

func TestRedisStore_Namespacing(t *testing.T) {
	s, mini := newRedisStore(t)
	ctx := context.Background()

	s.Add(ctx, "jti-ns", time.Minute)
	if !mini.Exists(keyNamespace + "jti-ns") {
		t.Error("expected entry under the blacklist namespace")
	}
}

func TestNew_BackendSelection(t *testing.T) {
	log := logger.NewDefault("blacklist-test")

	store, err := New(Config{}, nil, log)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("expected memory backend by default, got %T", store)
	}

	if _, err := New(Config{Backend: BackendRedis}, nil, log); err == nil {
		t.Error("expected error for redis backend without client")
	}

	if _, err := New(Config{Backend: "bogus"}, nil, log); err == nil {
		t.Error("expected error for unknown backend")
	}
}
