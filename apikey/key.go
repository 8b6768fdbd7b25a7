package apikey

import "time"

// Key is the stored API-key record. The hash never serializes; the plaintext
// secret exists only in the creation response.
type Key struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	KeyHash   string `json:"-"`
	KeyPrefix string `json:"key_prefix"`

	ExpiresAt  time.Time  `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Expired reports whether the key is past its expiration at the given
// instant. Every key gets an expiration at creation; a zero ExpiresAt is
// treated as expired rather than eternal.
func (k *Key) Expired(now time.Time) bool {
	return !k.ExpiresAt.After(now)
}
