package apikey

import (
	"strings"
	"testing"

	"github.com/skillsenselab/authkit/password"
)

func TestHasher_GenerateSecret(t *testing.T) {
	h := NewHasher(password.NewBcryptHasher(password.WithCost(4)))

	first, err := h.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	if !ValidFormat(first) {
		t.Errorf("generated secret fails the format gate: %q", first)
	}

	second, _ := h.GenerateSecret()
	if first == second {
		t.Error("expected distinct secrets")
	}
}

func TestHasher_HashRoundTrip(t *testing.T) {
	h := NewHasher(password.NewBcryptHasher(password.WithCost(4)))

	secret, _ := h.GenerateSecret()
	hash, err := h.Hash(secret)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == secret {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := h.Verify(secret, hash); err != nil {
		t.Errorf("Verify rejected the right secret: %v", err)
	}
	other, _ := h.GenerateSecret()
	if err := h.Verify(other, hash); err == nil {
		t.Error("Verify accepted the wrong secret")
	}
}

func TestValidFormat(t *testing.T) {
	valid := "sk_" + strings.Repeat("0123456789abcdef", 4)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"valid", valid, true},
		{"empty", "", false},
		{"too short", "sk_abc123", false},
		{"too long", valid + "0", false},
		{"wrong scheme", "pk_" + strings.Repeat("ab", 32), false},
		{"uppercase hex", "sk_" + strings.Repeat("AB", 32), false},
		{"non-hex tail", "sk_" + strings.Repeat("zz", 32), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFormat(tt.candidate); got != tt.want {
				t.Errorf("ValidFormat(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	secret := "sk_" + strings.Repeat("0123456789abcdef", 4)
	prefix := Prefix(secret)
	if len(prefix) != PrefixLen {
		t.Fatalf("expected %d-char prefix, got %d", PrefixLen, len(prefix))
	}
	if !strings.HasPrefix(secret, prefix) {
		t.Errorf("prefix %q is not a prefix of the secret", prefix)
	}
}
