package auth

import (
	"context"
	"net/http"

	"github.com/skillsenselab/authkit/apikey"
	"github.com/skillsenselab/authkit/jwt"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/principal"
)

// Provider is a pluggable authentication mechanism.
type Provider interface {
	// Name is the provider's stable identifier.
	Name() string

	// Priority orders providers in the trial sequence; lower runs earlier.
	Priority() int

	// CanHandle is a cheap, side-effect-free predicate over request
	// metadata. It must not perform I/O.
	CanHandle(r *http.Request) bool

	// Authenticate attempts to authenticate the request. Expected credential
	// failures (malformed, expired, unknown, revoked) return (nil, nil) so
	// the orchestrator can fall through to the next provider; only
	// unexpected failures return an error.
	Authenticate(ctx context.Context, r *http.Request) (*principal.Principal, error)
}

// Dependencies bundles the collaborators provider factories may need. A
// factory whose provider is enabled fails construction when its required
// collaborator is missing.
type Dependencies struct {
	JWT     *jwt.Service
	APIKeys *apikey.Service
	Lookup  principal.Lookup
	IDs     principal.IDCodec
	Logger  *logger.Logger
}

// Factory builds a provider from configuration, or reports it disabled by
// returning (nil, nil).
type Factory func(cfg Config, deps Dependencies) (Provider, error)
