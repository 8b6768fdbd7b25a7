package auth

import (
	"context"
	stderrors "errors"
	"net/http/httptest"
	"testing"

	"github.com/skillsenselab/authkit/authctx"
	"github.com/skillsenselab/authkit/authz"
	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/principal"
)

func TestService_FirstSuccessWins(t *testing.T) {
	alice := &principal.Principal{ID: "42", Username: "alice", Role: "admin", Active: true}
	skipped := &stubProvider{name: "skipped", priority: 10, handles: false}
	winner := &stubProvider{name: "winner", priority: 20, handles: true, principal: alice}
	never := &stubProvider{name: "never", priority: 30, handles: true, principal: alice}

	svc := NewService([]Provider{skipped, winner, never}, logger.NewDefault("auth-test"))
	r := httptest.NewRequest("GET", "/", nil)

	ctx, pr, err := svc.Authenticate(context.Background(), r)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if pr.ID != "42" {
		t.Errorf("unexpected principal: %+v", pr)
	}
	if skipped.called {
		t.Error("provider whose CanHandle is false must not be called")
	}
	if never.called {
		t.Error("providers after the first success must not be called")
	}

	got, ok := authctx.Principal(ctx)
	if !ok || got.ID != "42" {
		t.Error("expected principal attached to context")
	}
	if name, _ := authctx.Provider(ctx); name != "winner" {
		t.Errorf("expected provider name winner, got %q", name)
	}
}

func TestService_FallbackOnAbsent(t *testing.T) {
	alice := &principal.Principal{ID: "42", Username: "alice", Role: "admin", Active: true}
	absent := &stubProvider{name: "absent", priority: 10, handles: true}
	second := &stubProvider{name: "second", priority: 20, handles: true, principal: alice}

	svc := NewService([]Provider{absent, second}, logger.NewDefault("auth-test"))
	_, pr, err := svc.Authenticate(context.Background(), httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if !absent.called || !second.called {
		t.Error("expected the chain to fall through the absent provider")
	}
	if pr.ID != "42" {
		t.Errorf("unexpected principal: %+v", pr)
	}
}

func TestService_ExhaustedChainFails(t *testing.T) {
	svc := NewService([]Provider{
		&stubProvider{name: "a", priority: 10, handles: true},
		&stubProvider{name: "b", priority: 20, handles: false},
	}, logger.NewDefault("auth-test"))

	_, _, err := svc.Authenticate(context.Background(), httptest.NewRequest("GET", "/", nil))
	if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		t.Errorf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestService_UnexpectedErrorPropagates(t *testing.T) {
	boom := errors.DatabaseError(stderrors.New("connection reset"))
	broken := &stubProvider{name: "broken", priority: 10, handles: true, err: boom}
	after := &stubProvider{name: "after", priority: 20, handles: true}

	svc := NewService([]Provider{broken, after}, logger.NewDefault("auth-test"))
	_, _, err := svc.Authenticate(context.Background(), httptest.NewRequest("GET", "/", nil))
	if !errors.HasCode(err, errors.ErrCodeDatabaseError) {
		t.Fatalf("expected DATABASE_ERROR to propagate, got %v", err)
	}
	if after.called {
		t.Error("unexpected errors must not fall through to later providers")
	}
}

func TestService_Authorize(t *testing.T) {
	alice := &principal.Principal{ID: "42", Username: "alice", Role: "editor", Active: true}
	svc := NewService([]Provider{
		&stubProvider{name: "p", priority: 10, handles: true, principal: alice},
	}, logger.NewDefault("auth-test"))
	r := httptest.NewRequest("GET", "/", nil)

	t.Run("role permitted", func(t *testing.T) {
		_, pr, err := svc.Authorize(context.Background(), r, "admin", "editor")
		if err != nil {
			t.Fatalf("Authorize failed: %v", err)
		}
		if pr.ID != "42" {
			t.Errorf("unexpected principal: %+v", pr)
		}
	})

	t.Run("role denied", func(t *testing.T) {
		_, _, err := svc.Authorize(context.Background(), r, "admin")
		if !errors.HasCode(err, errors.ErrCodeForbidden) {
			t.Fatalf("expected FORBIDDEN, got %v", err)
		}
		app := errors.From(err)
		if app.Details["actual_role"] != "editor" {
			t.Errorf("expected the denial to name the actual role, got %v", app.Details)
		}
	})

	t.Run("no roles means any authenticated principal", func(t *testing.T) {
		if _, _, err := svc.Authorize(context.Background(), r); err != nil {
			t.Errorf("Authorize failed: %v", err)
		}
	})
}

func TestService_AuthorizePermission(t *testing.T) {
	alice := &principal.Principal{ID: "42", Username: "alice", Role: "editor", Active: true}
	svc := NewService([]Provider{
		&stubProvider{name: "p", priority: 10, handles: true, principal: alice},
	}, logger.NewDefault("auth-test"))
	r := httptest.NewRequest("GET", "/", nil)

	checker := authz.NewRoleChecker(map[string][]string{
		"editor": {"articles:*"},
	})

	t.Run("permission granted", func(t *testing.T) {
		_, pr, err := svc.AuthorizePermission(context.Background(), r, checker, "articles:write")
		if err != nil {
			t.Fatalf("AuthorizePermission failed: %v", err)
		}
		if pr.ID != "42" {
			t.Errorf("unexpected principal: %+v", pr)
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		_, _, err := svc.AuthorizePermission(context.Background(), r, checker, "keys:create")
		if !errors.HasCode(err, errors.ErrCodeForbidden) {
			t.Fatalf("expected FORBIDDEN, got %v", err)
		}
		app := errors.From(err)
		if app.Details["required_permission"] != "keys:create" {
			t.Errorf("expected the denial to name the permission, got %v", app.Details)
		}
	})

	t.Run("authentication failure short-circuits", func(t *testing.T) {
		empty := NewService(nil, logger.NewDefault("auth-test"))
		_, _, err := empty.AuthorizePermission(context.Background(), r, checker, "articles:write")
		if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
			t.Errorf("expected UNAUTHORIZED before the permission check, got %v", err)
		}
	})
}

func TestService_AuthorizeShortCircuitsOnAuthFailure(t *testing.T) {
	svc := NewService(nil, logger.NewDefault("auth-test"))

	_, _, err := svc.Authorize(context.Background(), httptest.NewRequest("GET", "/", nil), "admin")
	if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		t.Errorf("expected UNAUTHORIZED before any role check, got %v", err)
	}
}
