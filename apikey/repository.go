package apikey

import (
	"context"
	"sync"
	"time"

	"github.com/skillsenselab/authkit/errors"
)

// Repository is the key-record storage contract the service consumes.
// Implementations return errors.NotFound for missing records and
// errors.Conflict for prefix uniqueness violations; transient storage
// failures map to errors.DatabaseError.
type Repository interface {
	// Create persists a new record. The key prefix must be globally unique.
	Create(ctx context.Context, key *Key) error

	// GetByID returns the record with the given id.
	GetByID(ctx context.Context, id string) (*Key, error)

	// GetByPrefix returns the record with the given lookup prefix.
	GetByPrefix(ctx context.Context, prefix string) (*Key, error)

	// ListByOwner returns all records belonging to the owner.
	ListByOwner(ctx context.Context, ownerID string) ([]*Key, error)

	// CountByOwner returns the number of records belonging to the owner.
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// UpdateLastUsed stamps the record's last-used time.
	UpdateLastUsed(ctx context.Context, id string, at time.Time) error

	// Delete removes the record.
	Delete(ctx context.Context, id string) error
}

// MemoryRepository is a mutex-protected in-memory Repository. Useful for
// tests and single-tenant tools; production deployments back Repository with
// their own storage.
type MemoryRepository struct {
	mu       sync.Mutex
	byID     map[string]*Key
	byPrefix map[string]*Key
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:     make(map[string]*Key),
		byPrefix: make(map[string]*Key),
	}
}

// Create implements Repository.
func (r *MemoryRepository) Create(_ context.Context, key *Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPrefix[key.KeyPrefix]; ok {
		return errors.Conflict("api key prefix already exists")
	}
	if _, ok := r.byID[key.ID]; ok {
		return errors.Conflict("api key id already exists")
	}
	stored := *key
	r.byID[key.ID] = &stored
	r.byPrefix[key.KeyPrefix] = &stored
	return nil
}

// GetByID implements Repository.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Key, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("api key", id)
	}
	copied := *k
	return &copied, nil
}

// GetByPrefix implements Repository.
func (r *MemoryRepository) GetByPrefix(_ context.Context, prefix string) (*Key, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.byPrefix[prefix]
	if !ok {
		return nil, errors.NotFound("api key", "")
	}
	copied := *k
	return &copied, nil
}

// ListByOwner implements Repository.
func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Key, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var keys []*Key
	for _, k := range r.byID {
		if k.OwnerID == ownerID {
			copied := *k
			keys = append(keys, &copied)
		}
	}
	return keys, nil
}

// CountByOwner implements Repository.
func (r *MemoryRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, k := range r.byID {
		if k.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// UpdateLastUsed implements Repository.
func (r *MemoryRepository) UpdateLastUsed(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.byID[id]
	if !ok {
		return errors.NotFound("api key", id)
	}
	k.LastUsedAt = &at
	return nil
}

// Delete implements Repository.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.byID[id]
	if !ok {
		return errors.NotFound("api key", id)
	}
	delete(r.byID, id)
	delete(r.byPrefix, k.KeyPrefix)
	return nil
}
