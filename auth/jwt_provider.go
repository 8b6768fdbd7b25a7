package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/jwt"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/principal"
)

// ProviderJWT is the Bearer-token provider's stable name.
const ProviderJWT = "jwt"

const bearerScheme = "Bearer "

// JWTProvider authenticates requests carrying an access token in the
// Authorization header. Stateless except for the blacklist lookup inside
// token verification.
type JWTProvider struct {
	svc      *jwt.Service
	lookup   principal.Lookup
	ids      principal.IDCodec
	priority int
	log      *logger.Logger
}

// NewJWTProvider creates the Bearer-token provider.
func NewJWTProvider(svc *jwt.Service, lookup principal.Lookup, ids principal.IDCodec, priority int, log *logger.Logger) *JWTProvider {
	return &JWTProvider{
		svc:      svc,
		lookup:   lookup,
		ids:      ids,
		priority: priority,
		log:      log.WithComponent("auth.jwt"),
	}
}

// Name implements Provider.
func (p *JWTProvider) Name() string { return ProviderJWT }

// Priority implements Provider.
func (p *JWTProvider) Priority() int { return p.priority }

// CanHandle implements Provider.
func (p *JWTProvider) CanHandle(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Authorization"), bearerScheme)
}

// Authenticate implements Provider. Expired, malformed, revoked, and
// wrong-type tokens all return absent so the orchestrator can try the next
// provider; so do unknown subjects and inactive accounts.
func (p *JWTProvider) Authenticate(ctx context.Context, r *http.Request) (*principal.Principal, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), bearerScheme)
	if token == "" {
		return nil, nil
	}

	claims, err := p.svc.VerifyToken(ctx, token, jwt.TokenTypeAccess)
	if err != nil {
		if isExpectedAuthFailure(err) {
			p.log.Debug("bearer token rejected", logger.ErrorFields("verify_token", err))
			return nil, nil
		}
		return nil, err
	}

	subject, err := p.ids.Normalize(claims.Subject)
	if err != nil {
		p.log.Debug("bearer token rejected", logger.ErrorFields("normalize_subject", err))
		return nil, nil
	}

	pr, err := p.lookup.GetByID(ctx, subject)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !pr.Active {
		return nil, nil
	}
	return pr, nil
}

func jwtFactory(cfg Config, deps Dependencies) (Provider, error) {
	if !cfg.JWT.Enabled {
		return nil, nil
	}
	if deps.JWT == nil {
		return nil, errors.Configuration("jwt provider is enabled but no token service was supplied")
	}
	if deps.Lookup == nil {
		return nil, errors.Configuration("jwt provider is enabled but no principal lookup was supplied")
	}
	ids := deps.IDs
	if ids == nil {
		var err error
		ids, err = principal.CodecFor(cfg.IDKind)
		if err != nil {
			return nil, err
		}
	}
	return NewJWTProvider(deps.JWT, deps.Lookup, ids, cfg.JWT.Priority, deps.Logger), nil
}

// isExpectedAuthFailure reports whether err is a credential problem the
// fallback chain swallows, as opposed to a storage or programmer error.
func isExpectedAuthFailure(err error) bool {
	for _, code := range []errors.ErrorCode{
		errors.ErrCodeUnauthorized,
		errors.ErrCodeTokenExpired,
		errors.ErrCodeInvalidToken,
		errors.ErrCodeTokenRevoked,
		errors.ErrCodeInvalidAPIKey,
		errors.ErrCodeAPIKeyExpired,
	} {
		if errors.HasCode(err, code) {
			return true
		}
	}
	return false
}
