// Package middleware adapts the authentication orchestrator to gin handler
// chains. The core stays framework-agnostic; only this package imports gin.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authkit/auth"
	"github.com/skillsenselab/authkit/authz"
	"github.com/skillsenselab/authkit/errors"
)

// AuthConfig configures the authentication middleware.
type AuthConfig struct {
	// Service is the provider orchestrator.
	Service *auth.Service

	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
}

// RequireAuth returns a middleware that authenticates every request through
// the provider chain. The authenticated principal rides the request context;
// failures abort with the error taxonomy's JSON shape and status.
func RequireAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipped(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}

		ctx, _, err := cfg.Service.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles returns a middleware that authenticates and then requires the
// principal's role to be one of the given roles.
func RequireRoles(cfg AuthConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipped(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}

		ctx, _, err := cfg.Service.Authorize(c.Request.Context(), c.Request, roles...)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequirePermission returns a middleware that authenticates and then asks
// checker whether the principal's role grants the permission.
func RequirePermission(cfg AuthConfig, checker authz.Checker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipped(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}

		ctx, _, err := cfg.Service.AuthorizePermission(c.Request.Context(), c.Request, checker, permission)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func skipped(path string, skipPaths []string) bool {
	for _, skip := range skipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}
	return false
}

func abortWithError(c *gin.Context, err error) {
	appErr := errors.From(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
