// Package authz provides permission checking on top of the role carried by
// an authenticated principal.
//
// Roles grant permission patterns in "resource:action" form, with "*" as a
// wildcard on either side:
//
//	checker := authz.NewRoleChecker(map[string][]string{
//	    "admin":   {"*:*"},
//	    "service": {"keys:*", "tokens:verify"},
//	})
//	checker.Allows("service", "keys:create") // true
//
// The auth orchestrator consults a Checker in AuthorizePermission after
// authentication succeeds.
package authz
