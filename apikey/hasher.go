package apikey

import (
	"strings"

	"github.com/skillsenselab/authkit/password"
)

const (
	// secretScheme marks authkit-issued secrets so they are recognizable in
	// config files and easy to scan for in leaked logs.
	secretScheme = "sk_"

	// secretLen is the exact plaintext length: "sk_" + 64 hex chars.
	secretLen = 67

	// PrefixLen is the number of plaintext characters stored as the indexed
	// lookup prefix.
	PrefixLen = 12
)

// Hasher generates API-key secrets and computes/verifies their salted
// one-way hashes. Hashing delegates to a password.Hasher; the 67-byte secret
// fits under bcrypt's 72-byte input limit.
type Hasher struct {
	inner password.Hasher
}

// NewHasher creates a Hasher over the given hash algorithm. A nil inner
// hasher defaults to bcrypt.
func NewHasher(inner password.Hasher) *Hasher {
	if inner == nil {
		inner = password.NewBcryptHasher()
	}
	return &Hasher{inner: inner}
}

// GenerateSecret creates a new plaintext secret with 256 bits of entropy.
func (h *Hasher) GenerateSecret() (string, error) {
	token, err := password.GenerateToken(32)
	if err != nil {
		return "", err
	}
	return secretScheme + token, nil
}

// Hash computes the salted one-way hash of the plaintext secret.
func (h *Hasher) Hash(secret string) (string, error) {
	return h.inner.Hash(secret)
}

// Verify reports whether the candidate matches the stored hash.
func (h *Hasher) Verify(candidate, hash string) error {
	return h.inner.Verify(candidate, hash)
}

// ValidFormat reports whether candidate is shaped like an authkit secret:
// exact length 67, "sk_" scheme, 64 lowercase hex characters. A cheap gate
// that rejects garbage before any storage I/O.
func ValidFormat(candidate string) bool {
	if len(candidate) != secretLen {
		return false
	}
	if !strings.HasPrefix(candidate, secretScheme) {
		return false
	}
	for _, c := range candidate[len(secretScheme):] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Prefix returns the indexed lookup prefix of a plaintext secret.
func Prefix(secret string) string {
	if len(secret) < PrefixLen {
		return secret
	}
	return secret[:PrefixLen]
}
