// Package authctx propagates the authenticated principal through a request's
// context.
//
// The orchestrator stores the principal after a provider succeeds; handlers
// and authorization checks read it back. Keys are unexported so no other
// package can collide with or spoof the stored identity.
package authctx

import (
	"context"
	"errors"

	"github.com/skillsenselab/authkit/principal"
)

// Unexported key types prevent collisions with other packages.
type principalKeyType struct{}
type providerKeyType struct{}

var (
	principalKey principalKeyType
	providerKey  providerKeyType
)

// ErrNoPrincipal is returned when no principal is stored in the context.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// WithPrincipal stores the authenticated principal and the name of the
// provider that authenticated it.
func WithPrincipal(ctx context.Context, p *principal.Principal, provider string) context.Context {
	ctx = context.WithValue(ctx, principalKey, p)
	return context.WithValue(ctx, providerKey, provider)
}

// Principal retrieves the authenticated principal from the context.
func Principal(ctx context.Context) (*principal.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*principal.Principal)
	return p, ok && p != nil
}

// MustPrincipal retrieves the principal or panics. Use in handlers where
// authentication middleware guarantees a principal exists.
func MustPrincipal(ctx context.Context) *principal.Principal {
	p, ok := Principal(ctx)
	if !ok {
		panic("authctx: principal not found in context")
	}
	return p
}

// PrincipalOrError retrieves the principal, returning ErrNoPrincipal when
// the context carries none.
func PrincipalOrError(ctx context.Context) (*principal.Principal, error) {
	p, ok := Principal(ctx)
	if !ok {
		return nil, ErrNoPrincipal
	}
	return p, nil
}

// Provider returns the name of the provider that authenticated the request.
func Provider(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(providerKey).(string)
	return name, ok && name != ""
}
