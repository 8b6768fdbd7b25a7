package blacklist

import (
	"context"
	"sync"
	"time"

	"github.com/skillsenselab/authkit/logger"
)

// MemoryStore is an in-process Store backed by a mutex-protected map from
// key to absolute expiry. Contains expires entries lazily; Add triggers a
// full sweep once the map grows past the configured threshold, bounding
// worst-case memory during revocation bursts.
type MemoryStore struct {
	mu             sync.Mutex
	entries        map[string]time.Time
	sweepThreshold int
	log            *logger.Logger
	now            func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(sweepThreshold int, log *logger.Logger) *MemoryStore {
	if sweepThreshold <= 0 {
		sweepThreshold = 10000
	}
	return &MemoryStore{
		entries:        make(map[string]time.Time),
		sweepThreshold: sweepThreshold,
		log:            log.WithComponent("blacklist"),
		now:            time.Now,
	}
}

// Add implements Store.
func (s *MemoryStore) Add(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = s.now().Add(ttl)
	s.sweepLocked()
	return nil
}

// AddIfAbsent implements Store. The check and the write happen under one
// lock acquisition, so concurrent claims for the same key serialize and
// exactly one wins.
func (s *MemoryStore) AddIfAbsent(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exp, ok := s.entries[key]; ok && s.now().Before(exp) {
		return false, nil
	}
	s.entries[key] = s.now().Add(ttl)
	s.sweepLocked()
	return true, nil
}

// Contains implements Store. An expired entry is deleted and reported absent.
func (s *MemoryStore) Contains(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}

// Len returns the current entry count, including not-yet-swept expired
// entries. Intended for tests and diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweepLocked removes all expired entries when the map exceeds the
// threshold. Caller holds s.mu.
func (s *MemoryStore) sweepLocked() {
	if len(s.entries) <= s.sweepThreshold {
		return
	}
	now := s.now()
	removed := 0
	for k, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, k)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("swept expired blacklist entries", map[string]interface{}{
			"removed":   removed,
			"remaining": len(s.entries),
		})
	}
}
