package authz

import "strings"

// MatchPattern reports whether a granted permission pattern covers a required
// permission. Patterns use "resource:action" with "*" as a wildcard segment:
//
//   - "*:*"          covers everything
//   - "keys:*"       covers "keys:create", "keys:delete", etc.
//   - "*:read"       covers "keys:read", "tokens:read", etc.
//   - "keys:create"  covers only "keys:create"
//
// A pattern or requirement without a ":" separator is compared as a plain
// string, still honoring "*".
func MatchPattern(pattern, required string) bool {
	if pattern == required || pattern == "*" || pattern == "*:*" {
		return true
	}

	patParts := strings.SplitN(pattern, ":", 2)
	reqParts := strings.SplitN(required, ":", 2)

	if len(patParts) != len(reqParts) {
		// One side has a separator and the other does not.
		return matchSegment(pattern, required)
	}
	if len(patParts) == 1 {
		return matchSegment(pattern, required)
	}

	return matchSegment(patParts[0], reqParts[0]) && matchSegment(patParts[1], reqParts[1])
}

// MatchAny reports whether any pattern covers the required permission.
func MatchAny(patterns []string, required string) bool {
	for _, p := range patterns {
		if MatchPattern(p, required) {
			return true
		}
	}
	return false
}

func matchSegment(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
