package apikey

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/validation"
)

// Config configures the API-key service.
type Config struct {
	// MaxKeysPerOwner is the live-key quota per owner (default: 10).
	MaxKeysPerOwner int `mapstructure:"max_keys_per_owner"`

	// DefaultExpirationDays applies when a creation request names no
	// expiration (default: 90).
	DefaultExpirationDays int `mapstructure:"default_expiration_days"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxKeysPerOwner <= 0 {
		c.MaxKeysPerOwner = 10
	}
	if c.DefaultExpirationDays <= 0 {
		c.DefaultExpirationDays = 90
	}
}

// Service implements the API-key lifecycle over a Repository.
type Service struct {
	cfg    Config
	repo   Repository
	hasher *Hasher
	log    *logger.Logger

	now func() time.Time
}

// NewService creates the API-key service. The repository is required; a nil
// hasher defaults to bcrypt.
func NewService(cfg Config, repo Repository, hasher *Hasher, log *logger.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	if repo == nil {
		return nil, errors.Configuration("apikey: repository is required")
	}
	if hasher == nil {
		hasher = NewHasher(nil)
	}
	return &Service{
		cfg:    cfg,
		repo:   repo,
		hasher: hasher,
		log:    log.WithComponent("apikey"),
		now:    time.Now,
	}, nil
}

// CreateKeyInput carries the fields of a key creation request.
type CreateKeyInput struct {
	OwnerID       string `json:"owner_id" validate:"required"`
	Name          string `json:"name" validate:"required,max=255"`
	ExpiresInDays *int   `json:"expires_in_days" validate:"omitempty,gt=0"`
}

// CreateKey generates a new key for the owner. The returned plaintext secret
// exists only in this response; the stored record carries its hash and the
// lookup prefix. Creation fails without inserting when the owner is at quota.
func (s *Service) CreateKey(ctx context.Context, ownerID, name string, expiresInDays *int) (string, *Key, error) {
	in := CreateKeyInput{OwnerID: ownerID, Name: name, ExpiresInDays: expiresInDays}
	if err := validation.Validate(in); err != nil {
		return "", nil, err
	}

	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return "", nil, err
	}
	if count >= s.cfg.MaxKeysPerOwner {
		return "", nil, errors.KeyLimitExceeded(s.cfg.MaxKeysPerOwner)
	}

	secret, err := s.hasher.GenerateSecret()
	if err != nil {
		return "", nil, errors.Internal(err)
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return "", nil, errors.Internal(err)
	}

	days := s.cfg.DefaultExpirationDays
	if expiresInDays != nil && *expiresInDays > 0 {
		days = *expiresInDays
	}
	now := s.now()
	key := &Key{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		KeyHash:   hash,
		KeyPrefix: Prefix(secret),
		ExpiresAt: now.Add(time.Duration(days) * 24 * time.Hour),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, key); err != nil {
		return "", nil, err
	}

	s.log.Info("api key created", logger.Fields(
		logger.FieldKeyID, key.ID,
		logger.FieldKeyPrefix, key.KeyPrefix,
		logger.FieldPrincipalID, ownerID,
	))
	return secret, key, nil
}

// ValidateKey checks a candidate secret and returns the owning principal id
// and the key id. The format gate rejects malformed candidates before any
// storage I/O; an expired key reports expiry, never a hash mismatch.
func (s *Service) ValidateKey(ctx context.Context, candidate string) (ownerID, keyID string, err error) {
	if !ValidFormat(candidate) {
		return "", "", errors.InvalidAPIKey()
	}

	key, err := s.repo.GetByPrefix(ctx, Prefix(candidate))
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return "", "", errors.InvalidAPIKey()
		}
		return "", "", err
	}

	if key.Expired(s.now()) {
		return "", "", errors.APIKeyExpired()
	}

	if err := s.hasher.Verify(candidate, key.KeyHash); err != nil {
		return "", "", errors.InvalidAPIKey()
	}

	// Usage tracking must never break authentication.
	if err := s.repo.UpdateLastUsed(ctx, key.ID, s.now()); err != nil {
		s.log.Warn("last-used update failed", logger.ErrorFields("update_last_used", err))
	}
	return key.OwnerID, key.ID, nil
}

// DeleteKey removes a key owned by ownerID. A key that does not exist and a
// key owned by someone else are indistinguishable to the caller.
func (s *Service) DeleteKey(ctx context.Context, keyID, ownerID string) error {
	key, err := s.repo.GetByID(ctx, keyID)
	if err != nil {
		return err
	}
	if key.OwnerID != ownerID {
		return errors.NotFound("api key", keyID)
	}
	if err := s.repo.Delete(ctx, keyID); err != nil {
		return err
	}
	s.log.Info("api key deleted", logger.Fields(logger.FieldKeyID, keyID, logger.FieldPrincipalID, ownerID))
	return nil
}

// DeleteKeyAdmin removes a key regardless of ownership.
func (s *Service) DeleteKeyAdmin(ctx context.Context, keyID string) error {
	if err := s.repo.Delete(ctx, keyID); err != nil {
		return err
	}
	s.log.Info("api key deleted by admin", logger.Fields(logger.FieldKeyID, keyID))
	return nil
}

// ListKeys returns the owner's key metadata. Hashes never leave the service.
func (s *Service) ListKeys(ctx context.Context, ownerID string) ([]*Key, error) {
	keys, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	// Clear hashes on copies; a repository may hand out its own records.
	out := make([]*Key, len(keys))
	for i, k := range keys {
		redacted := *k
		redacted.KeyHash = ""
		out[i] = &redacted
	}
	return out, nil
}
