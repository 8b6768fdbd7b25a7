package auth

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authkit/authctx"
	"github.com/skillsenselab/authkit/authz"
	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/principal"
)

const tracerName = "github.com/skillsenselab/authkit/auth"

// Service orchestrates the provider trial sequence: first-success ordered
// fallback, never collect-all-and-pick-best.
type Service struct {
	providers []Provider
	log       *logger.Logger
	tracer    trace.Tracer
}

// NewService creates the orchestrator over an already-instantiated provider
// sequence.
func NewService(providers []Provider, log *logger.Logger) *Service {
	return &Service{
		providers: providers,
		log:       log.WithComponent("auth"),
		tracer:    otel.Tracer(tracerName),
	}
}

// Providers returns the trial sequence in order.
func (s *Service) Providers() []Provider {
	out := make([]Provider, len(s.providers))
	copy(out, s.providers)
	return out
}

// Authenticate tries each provider in order. The first provider whose
// CanHandle accepts the request gets to authenticate it; a returned principal
// wins immediately and later providers are never consulted. An absent result
// falls through to the next handler. When the sequence exhausts without a
// principal, authentication fails.
//
// On success the principal is attached to the returned context for
// downstream use.
func (s *Service) Authenticate(ctx context.Context, r *http.Request) (context.Context, *principal.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "auth.authenticate")
	defer span.End()

	for _, p := range s.providers {
		if !p.CanHandle(r) {
			continue
		}
		pr, err := p.Authenticate(ctx, r)
		if err != nil {
			span.RecordError(err)
			return ctx, nil, err
		}
		if pr != nil {
			span.SetAttributes(
				attribute.String("auth.provider", p.Name()),
				attribute.String("auth.principal_id", pr.ID),
			)
			s.log.Debug("authentication succeeded", logger.Fields(
				logger.FieldProvider, p.Name(),
				logger.FieldPrincipalID, pr.ID,
			))
			return authctx.WithPrincipal(ctx, pr, p.Name()), pr, nil
		}
	}

	return ctx, nil, errors.Unauthorized("")
}

// Authorize authenticates the request and then checks that the principal's
// role is one of requiredRoles. Authentication failure short-circuits before
// the role check; an empty requiredRoles means any authenticated principal.
func (s *Service) Authorize(ctx context.Context, r *http.Request, requiredRoles ...string) (context.Context, *principal.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "auth.authorize",
		trace.WithAttributes(attribute.StringSlice("auth.required_roles", requiredRoles)))
	defer span.End()

	ctx, pr, err := s.Authenticate(ctx, r)
	if err != nil {
		return ctx, nil, err
	}

	if len(requiredRoles) == 0 {
		return ctx, pr, nil
	}
	for _, role := range requiredRoles {
		if pr.Role == role {
			return ctx, pr, nil
		}
	}

	err = errors.Forbidden(requiredRoles, pr.Role)
	span.RecordError(err)
	s.log.Debug("authorization denied", logger.Fields(
		logger.FieldPrincipalID, pr.ID,
		logger.FieldRole, pr.Role,
	))
	return ctx, nil, err
}

// AuthorizePermission authenticates the request and then asks checker whether
// the principal's role grants the permission. Authentication failure
// short-circuits before the permission check.
func (s *Service) AuthorizePermission(ctx context.Context, r *http.Request, checker authz.Checker, permission string) (context.Context, *principal.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "auth.authorize_permission",
		trace.WithAttributes(attribute.String("auth.required_permission", permission)))
	defer span.End()

	ctx, pr, err := s.Authenticate(ctx, r)
	if err != nil {
		return ctx, nil, err
	}

	if checker.Allows(pr.Role, permission) {
		return ctx, pr, nil
	}

	err = errors.PermissionDenied(permission, pr.Role)
	span.RecordError(err)
	s.log.Debug("permission denied", logger.Fields(
		logger.FieldPrincipalID, pr.ID,
		logger.FieldRole, pr.Role,
		"permission", permission,
	))
	return ctx, nil, err
}
