package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/authkit/errors"
)

func newTestCodec(t *testing.T, cfg Config) *Codec {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = "test-secret-at-least-32-bytes-long!!"
	}
	codec, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return codec
}

func testClaims(typ TokenType, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        "jti-test",
			Subject:   "42",
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  "alice",
		Role:      "admin",
		TokenType: typ,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, method := range []SigningMethod{HS256, HS384, HS512} {
		t.Run(string(method), func(t *testing.T) {
			codec := newTestCodec(t, Config{Method: method})

			token, err := codec.Encode(testClaims(TokenTypeAccess, time.Minute))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if strings.Count(token, ".") != 2 {
				t.Errorf("expected three-segment token, got %q", token)
			}

			claims, err := codec.Decode(token)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if claims.Subject != "42" || claims.Username != "alice" || claims.Role != "admin" {
				t.Errorf("unexpected claims: %+v", claims)
			}
			if claims.TokenType != TokenTypeAccess {
				t.Errorf("expected access type, got %q", claims.TokenType)
			}
		})
	}
}

func TestCodec_ExpiredToken(t *testing.T) {
	codec := newTestCodec(t, Config{})

	token, err := codec.Encode(testClaims(TokenTypeAccess, -time.Minute))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = codec.Decode(token)
	if !errors.HasCode(err, errors.ErrCodeTokenExpired) {
		t.Errorf("expected TOKEN_EXPIRED, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := newTestCodec(t, Config{})

	token, _ := codec.Encode(testClaims(TokenTypeAccess, time.Minute))
	last := token[len(token)-1]
	flip := byte('A')
	if last == 'A' {
		flip = 'B'
	}
	tampered := token[:len(token)-1] + string(flip)

	_, err := codec.Decode(tampered)
	if !errors.HasCode(err, errors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for tampered signature, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	codec := newTestCodec(t, Config{Secret: "secret-one-that-signed-the-token!!!!"})
	other := newTestCodec(t, Config{Secret: "secret-two-that-did-not-sign-it!!!!!"})

	token, _ := codec.Encode(testClaims(TokenTypeAccess, time.Minute))
	_, err := other.Decode(token)
	if !errors.HasCode(err, errors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestCodec_AlgorithmConfusion(t *testing.T) {
	// A token signed with HS512 must not verify on a codec configured for
	// HS256, even with the same secret.
	secret := "shared-secret-across-both-codecs!!!!"
	signer := newTestCodec(t, Config{Secret: secret, Method: HS512})
	verifier := newTestCodec(t, Config{Secret: secret, Method: HS256})

	token, _ := signer.Encode(testClaims(TokenTypeAccess, time.Minute))
	_, err := verifier.Decode(token)
	if !errors.HasCode(err, errors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for method mismatch, got %v", err)
	}
}

func TestCodec_IssuerEnforced(t *testing.T) {
	cfg := Config{Secret: "test-secret-at-least-32-bytes-long!!", Issuer: "authkit"}
	codec := newTestCodec(t, cfg)

	// Issued without an iss claim, rejected by the issuer-checking codec.
	plain := newTestCodec(t, Config{Secret: cfg.Secret})
	token, _ := plain.Encode(testClaims(TokenTypeAccess, time.Minute))
	if _, err := codec.Decode(token); !errors.HasCode(err, errors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for missing issuer, got %v", err)
	}

	claims := testClaims(TokenTypeAccess, time.Minute)
	claims.Issuer = "authkit"
	token, _ = codec.Encode(claims)
	if _, err := codec.Decode(token); err != nil {
		t.Errorf("expected matching issuer to verify, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := newTestCodec(t, Config{})

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		if _, err := codec.Decode(token); !errors.HasCode(err, errors.ErrCodeInvalidToken) {
			t.Errorf("token %q: expected INVALID_TOKEN, got %v", token, err)
		}
	}
}

func TestNewCodec_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing secret", Config{}},
		{"asymmetric method", Config{Secret: "s", Method: "RS256"}},
		{"unknown method", Config{Secret: "s", Method: "none"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec(tt.cfg)
			if !errors.HasCode(err, errors.ErrCodeConfiguration) {
				t.Errorf("expected CONFIGURATION_ERROR, got %v", err)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Secret: "s"}
	cfg.ApplyDefaults()
	if cfg.Method != HS256 {
		t.Errorf("expected HS256 default, got %q", cfg.Method)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("expected 15m access TTL, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7d refresh TTL, got %v", cfg.RefreshTokenTTL)
	}
}
