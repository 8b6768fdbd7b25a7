package authz

import "testing"

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern  string
		required string
		want     bool
	}{
		{"*:*", "keys:create", true},
		{"*", "keys:create", true},
		{"keys:*", "keys:create", true},
		{"keys:*", "keys:delete", true},
		{"keys:*", "tokens:verify", false},
		{"*:read", "keys:read", true},
		{"*:read", "keys:create", false},
		{"keys:create", "keys:create", true},
		{"keys:create", "keys:delete", false},
		{"admin", "admin", true},
		{"admin", "user", false},
		{"keys:create", "keys", false},
		{"keys", "keys:create", false},
	}
	for _, tt := range tests {
		if got := MatchPattern(tt.pattern, tt.required); got != tt.want {
			t.Errorf("MatchPattern(%q, %q) = %v, want %v", tt.pattern, tt.required, got, tt.want)
		}
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"keys:read", "tokens:*"}

	if !MatchAny(patterns, "tokens:refresh") {
		t.Error("expected tokens:refresh to match")
	}
	if MatchAny(patterns, "keys:create") {
		t.Error("expected keys:create not to match")
	}
	if MatchAny(nil, "keys:read") {
		t.Error("expected empty patterns to match nothing")
	}
}

func TestRoleChecker(t *testing.T) {
	checker := NewRoleChecker(map[string][]string{
		"admin":   {"*:*"},
		"service": {"keys:*", "tokens:verify"},
		"user":    {"tokens:refresh"},
	})

	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{"admin", "keys:delete", true},
		{"service", "keys:create", true},
		{"service", "tokens:verify", true},
		{"service", "tokens:issue", false},
		{"user", "tokens:refresh", true},
		{"user", "keys:create", false},
		{"unknown", "tokens:refresh", false},
	}
	for _, tt := range tests {
		if got := checker.Allows(tt.role, tt.permission); got != tt.want {
			t.Errorf("Allows(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.want)
		}
	}
}

func TestCheckerFunc(t *testing.T) {
	allowAll := CheckerFunc(func(role, permission string) bool { return true })
	if !allowAll.Allows("anyone", "anything") {
		t.Error("expected CheckerFunc to delegate")
	}
}
