package authz

// Checker decides whether a role grants a permission.
//
// role is the principal's role as issued in its token or API key record.
// permission is the required permission string (e.g. "keys:create").
type Checker interface {
	Allows(role string, permission string) bool
}

// CheckerFunc is an adapter to use ordinary functions as Checker.
type CheckerFunc func(role string, permission string) bool

// Allows implements Checker.
func (f CheckerFunc) Allows(role string, permission string) bool {
	return f(role, permission)
}

// RoleChecker is an in-memory Checker backed by a static map of role to
// granted permission patterns. Patterns support wildcards via MatchPattern.
type RoleChecker struct {
	grants map[string][]string
}

// NewRoleChecker creates a Checker from a static role grant table.
func NewRoleChecker(grants map[string][]string) *RoleChecker {
	return &RoleChecker{grants: grants}
}

// Allows implements Checker. Unknown roles grant nothing.
func (c *RoleChecker) Allows(role string, required string) bool {
	patterns, ok := c.grants[role]
	if !ok {
		return false
	}
	return MatchAny(patterns, required)
}
