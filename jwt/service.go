package jwt

import (
	"context"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skillsenselab/authkit/blacklist"
	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/password"
	"github.com/skillsenselab/authkit/principal"
	"github.com/skillsenselab/authkit/validation"
)

// TokenPair is the issuance response body for login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Service implements the JWT token lifecycle: issuance, verification,
// single-use refresh rotation, and revocation through the blacklist.
type Service struct {
	codec     *Codec
	cfg       Config
	blacklist blacklist.Store
	lookup    principal.Lookup
	ids       principal.IDCodec
	log       *logger.Logger

	now func() time.Time
}

// NewService creates the JWT service. All collaborators are required.
func NewService(cfg Config, store blacklist.Store, lookup principal.Lookup, ids principal.IDCodec, log *logger.Logger) (*Service, error) {
	codec, err := NewCodec(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.Configuration("jwt: blacklist store is required")
	}
	if lookup == nil {
		return nil, errors.Configuration("jwt: principal lookup is required")
	}
	if ids == nil {
		ids = principal.IntIDs{}
	}
	return &Service{
		codec:     codec,
		cfg:       codec.cfg,
		blacklist: store,
		lookup:    lookup,
		ids:       ids,
		log:       log.WithComponent("jwt"),
		now:       time.Now,
	}, nil
}

// CreateAccessToken issues a signed access token for the subject. Username and
// role ride along as denormalized claims so authorization decisions do not
// need a principal lookup on every request.
func (s *Service) CreateAccessToken(subject, username, role string) (string, error) {
	return s.codec.Encode(s.newClaims(subject, TokenTypeAccess, s.cfg.AccessTokenTTL, username, role))
}

// CreateRefreshToken issues a signed refresh token for the subject. Refresh
// tokens carry no username or role.
func (s *Service) CreateRefreshToken(subject string) (string, error) {
	return s.codec.Encode(s.newClaims(subject, TokenTypeRefresh, s.cfg.RefreshTokenTTL, "", ""))
}

// VerifyToken decodes the token, enforces the expected type, and rejects
// blacklisted tokens. On success the full claims are returned.
func (s *Service) VerifyToken(ctx context.Context, tokenString string, expected TokenType) (*Claims, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != expected {
		return nil, errors.InvalidToken("token type mismatch: expected " + string(expected))
	}
	revoked, err := s.blacklist.Contains(ctx, blacklistKey(claims, tokenString))
	if err != nil {
		return nil, errors.Internal(err)
	}
	if revoked {
		return nil, errors.TokenRevoked()
	}
	return claims, nil
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies the credentials and issues a fresh token pair. Blank
// credentials are rejected before any lookup; unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, plaintext string) (*TokenPair, error) {
	if err := validation.Validate(loginInput{Username: username, Password: plaintext}); err != nil {
		return nil, err
	}
	p, err := s.lookup.GetByName(ctx, username)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.InvalidCredentials()
		}
		return nil, err
	}
	if !s.lookup.VerifyPassword(ctx, p, plaintext) {
		return nil, errors.InvalidCredentials()
	}
	if !p.Active {
		return nil, errors.AccountInactive()
	}
	s.log.Info("login succeeded", logger.Fields(logger.FieldPrincipalID, p.ID, logger.FieldUsername, p.Username))
	return s.issuePair(p)
}

// Refresh rotates a refresh token: the old token is atomically blacklisted
// and a brand-new access+refresh pair is issued. A refresh token is single
// use; the second presentation loses the blacklist claim and fails.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.VerifyToken(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	subject, err := s.ids.Normalize(claims.Subject)
	if err != nil {
		return nil, errors.InvalidToken("malformed subject claim")
	}
	p, err := s.lookup.GetByID(ctx, subject)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.Unauthorized("unknown subject")
		}
		return nil, err
	}
	if !p.Active {
		return nil, errors.AccountInactive()
	}

	// Claim the old token before issuing the new pair. Of two concurrent
	// rotations of the same token, exactly one passes this gate.
	claimed, err := s.blacklist.AddIfAbsent(ctx, blacklistKey(claims, refreshToken), s.ttlUntil(claims))
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !claimed {
		return nil, errors.TokenRevoked()
	}

	s.log.Info("refresh token rotated", logger.Fields(logger.FieldPrincipalID, p.ID, logger.FieldTokenID, claims.ID))
	return s.issuePair(p)
}

// Logout blacklists the access token for its remaining lifetime. The paired
// refresh token is untouched; rotation and logout revoke independently.
// Logging out with an already-blacklisted token is a no-op, not an error.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.codec.Decode(accessToken)
	if err != nil {
		return err
	}
	if claims.TokenType != TokenTypeAccess {
		return errors.InvalidToken("token type mismatch: expected " + string(TokenTypeAccess))
	}
	if err := s.blacklist.Add(ctx, blacklistKey(claims, accessToken), s.ttlUntil(claims)); err != nil {
		return errors.Internal(err)
	}
	s.log.Info("access token revoked", logger.Fields(logger.FieldTokenID, claims.ID))
	return nil
}

// AccessTokenTTL exposes the configured access token lifetime.
func (s *Service) AccessTokenTTL() time.Duration { return s.cfg.AccessTokenTTL }

func (s *Service) issuePair(p *principal.Principal) (*TokenPair, error) {
	access, err := s.CreateAccessToken(p.ID, p.Username, p.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.CreateRefreshToken(p.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) newClaims(subject string, typ TokenType, ttl time.Duration, username, role string) *Claims {
	now := s.now()
	return &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  username,
		Role:      role,
		TokenType: typ,
	}
}

// ttlUntil returns the blacklist lifetime for a token: its remaining life,
// floored at one minute so a token on the edge of expiry still lands in the
// store long enough to lose any concurrent race.
func (s *Service) ttlUntil(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return time.Minute
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}

// blacklistKey returns the revocation key for a token. Tokens carry a random
// "jti" claim which keys the blacklist compactly; tokens minted elsewhere
// without one fall back to a digest of the raw token, so full tokens are
// never stored.
func blacklistKey(claims *Claims, raw string) string {
	if claims.ID != "" {
		return claims.ID
	}
	return password.HashSHA256(raw)
}
