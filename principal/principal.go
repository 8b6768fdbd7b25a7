// Package principal defines the authenticated identity consumed by authkit.
//
// Authkit never persists principals; it only reads them through the Lookup
// contract. Projects back Lookup with their own user storage: a database, an
// external identity service, or the in-memory MapLookup for small deployments
// and tests.
package principal

import (
	"context"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/password"
)

// Principal is the identity a request acts as.
type Principal struct {
	// ID is the canonical string form of the identifier. The concrete shape
	// (integer or UUID) is governed by the configured IDCodec.
	ID string `json:"id"`

	Username string `json:"username"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`

	// PasswordHash is the salted one-way hash of the login password.
	// Never serialized.
	PasswordHash string `json:"-"`
}

// Lookup is the read contract authkit consumes. Implementations return
// errors.NotFound (never a nil principal with nil error) when the principal
// does not exist.
type Lookup interface {
	// GetByID returns the principal with the given canonical id.
	GetByID(ctx context.Context, id string) (*Principal, error)

	// GetByName returns the principal with the given username.
	GetByName(ctx context.Context, name string) (*Principal, error)

	// VerifyPassword reports whether plaintext matches the principal's
	// password hash. Comparison cost is the hasher's; callers must not
	// short-circuit it.
	VerifyPassword(ctx context.Context, p *Principal, plaintext string) bool
}

// MapLookup is a simple in-memory Lookup backed by a map of username to
// principal. Useful for tests and single-tenant tools.
type MapLookup struct {
	byName map[string]*Principal
	byID   map[string]*Principal
	hasher password.Hasher
}

// NewMapLookup creates a Lookup from a static set of principals.
// The hasher must be the one that produced the principals' password hashes.
func NewMapLookup(principals []*Principal, hasher password.Hasher) *MapLookup {
	l := &MapLookup{
		byName: make(map[string]*Principal, len(principals)),
		byID:   make(map[string]*Principal, len(principals)),
		hasher: hasher,
	}
	for _, p := range principals {
		l.byName[p.Username] = p
		l.byID[p.ID] = p
	}
	return l
}

// GetByID implements Lookup.
func (l *MapLookup) GetByID(_ context.Context, id string) (*Principal, error) {
	p, ok := l.byID[id]
	if !ok {
		return nil, errors.NotFound("principal", id)
	}
	return p, nil
}

// GetByName implements Lookup.
func (l *MapLookup) GetByName(_ context.Context, name string) (*Principal, error) {
	p, ok := l.byName[name]
	if !ok {
		return nil, errors.NotFound("principal", "")
	}
	return p, nil
}

// VerifyPassword implements Lookup.
func (l *MapLookup) VerifyPassword(_ context.Context, p *Principal, plaintext string) bool {
	return l.hasher.Verify(plaintext, p.PasswordHash) == nil
}
