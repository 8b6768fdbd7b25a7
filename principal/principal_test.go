package principal

import (
	"context"
	"testing"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/password"
)

func newTestLookup(t *testing.T) (*MapLookup, *Principal) {
	t.Helper()
	hasher := password.NewBcryptHasher(password.WithCost(4))
	hash, err := hasher.Hash("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	p := &Principal{
		ID:           "42",
		Username:     "alice",
		Role:         "admin",
		Active:       true,
		PasswordHash: hash,
	}
	return NewMapLookup([]*Principal{p}, hasher), p
}

func TestMapLookup_GetByID(t *testing.T) {
	lookup, want := newTestLookup(t)

	got, err := lookup.GetByID(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Username != want.Username {
		t.Errorf("expected %q, got %q", want.Username, got.Username)
	}

	_, err = lookup.GetByID(context.Background(), "999")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestMapLookup_GetByName(t *testing.T) {
	lookup, _ := newTestLookup(t)

	if _, err := lookup.GetByName(context.Background(), "alice"); err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	_, err := lookup.GetByName(context.Background(), "mallory")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestMapLookup_VerifyPassword(t *testing.T) {
	lookup, p := newTestLookup(t)

	if !lookup.VerifyPassword(context.Background(), p, "hunter22") {
		t.Error("expected correct password to verify")
	}
	if lookup.VerifyPassword(context.Background(), p, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestIntIDs_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "42", "42", false},
		{"whitespace", " 7 ", "7", false},
		{"leading zeros", "007", "7", false},
		{"zero", "0", "", true},
		{"negative", "-3", "", true},
		{"not a number", "abc", "", true},
		{"empty", "", "", true},
	}
	codec := IntIDs{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := codec.Normalize(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestUUIDs_Normalize(t *testing.T) {
	codec := UUIDs{}

	got, err := codec.Normalize("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("expected lowercase canonical form, got %q", got)
	}

	if _, err := codec.Normalize("not-a-uuid"); err == nil {
		t.Error("expected error for invalid UUID")
	}
}

func TestCodecFor(t *testing.T) {
	if c, err := CodecFor(""); err != nil || c.Kind() != "int" {
		t.Errorf("expected default int codec, got %v %v", c, err)
	}
	if c, err := CodecFor("uuid"); err != nil || c.Kind() != "uuid" {
		t.Errorf("expected uuid codec, got %v %v", c, err)
	}
	if _, err := CodecFor("mongo"); !errors.HasCode(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected CONFIGURATION_ERROR, got %v", err)
	}
}
