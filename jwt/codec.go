package jwt

import (
	stderrors "errors"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/authkit/errors"
)

// TokenType discriminates the two token kinds the service issues. A token of
// one type is never accepted where the other is expected.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the authkit JWT payload. Access tokens carry username and role;
// refresh tokens carry only the registered claims plus the type marker, so a
// leaked refresh token exposes no authorization data.
type Claims struct {
	gojwt.RegisteredClaims

	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"type"`
}

// Codec signs and verifies authkit claims with a shared HMAC secret.
type Codec struct {
	cfg Config
}

// NewCodec creates a Codec. The configuration is validated eagerly so that a
// bad algorithm or missing secret fails at startup, not on first token.
func NewCodec(cfg Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg}, nil
}

// Encode signs claims into a compact token string.
func (c *Codec) Encode(claims *Claims) (string, error) {
	token := gojwt.NewWithClaims(c.cfg.signingMethod(), claims)
	signed, err := token.SignedString(c.cfg.key())
	if err != nil {
		return "", errors.Internal(err)
	}
	return signed, nil
}

// Decode verifies the signature and time claims and returns the payload.
// An expired token yields TOKEN_EXPIRED; every other failure (bad signature,
// malformed token, wrong algorithm, wrong issuer) yields INVALID_TOKEN.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, c.keyFunc, c.parserOptions()...)
	if err != nil {
		if stderrors.Is(err, gojwt.ErrTokenExpired) {
			return nil, errors.TokenExpired().WithCause(err)
		}
		return nil, errors.InvalidToken("token parse failed").WithCause(err)
	}
	if !token.Valid {
		return nil, errors.InvalidToken("token failed validation")
	}
	return claims, nil
}

func (c *Codec) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := c.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, stderrors.New("unexpected signing method: " + token.Method.Alg())
	}
	return c.cfg.key(), nil
}

func (c *Codec) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{c.cfg.signingMethod().Alg()}),
	}
	if c.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(c.cfg.Issuer))
	}
	return opts
}
