package auth

import (
	"context"
	"net/http"

	"github.com/skillsenselab/authkit/apikey"
	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/principal"
)

// ProviderAPIKey is the header-based API-key provider's stable name.
const ProviderAPIKey = "api_key"

// APIKeyProvider authenticates requests carrying a raw key secret in a
// configurable header.
type APIKeyProvider struct {
	svc      *apikey.Service
	lookup   principal.Lookup
	header   string
	priority int
	log      *logger.Logger
}

// NewAPIKeyProvider creates the API-key provider. An empty header defaults
// to X-API-Key.
func NewAPIKeyProvider(svc *apikey.Service, lookup principal.Lookup, header string, priority int, log *logger.Logger) *APIKeyProvider {
	if header == "" {
		header = "X-API-Key"
	}
	return &APIKeyProvider{
		svc:      svc,
		lookup:   lookup,
		header:   header,
		priority: priority,
		log:      log.WithComponent("auth.apikey"),
	}
}

// Name implements Provider.
func (p *APIKeyProvider) Name() string { return ProviderAPIKey }

// Priority implements Provider.
func (p *APIKeyProvider) Priority() int { return p.priority }

// CanHandle implements Provider.
func (p *APIKeyProvider) CanHandle(r *http.Request) bool {
	return r.Header.Get(p.header) != ""
}

// Authenticate implements Provider. Invalid and expired keys return absent;
// so do owners that vanished or went inactive after key issuance.
func (p *APIKeyProvider) Authenticate(ctx context.Context, r *http.Request) (*principal.Principal, error) {
	candidate := r.Header.Get(p.header)
	if candidate == "" {
		return nil, nil
	}

	ownerID, keyID, err := p.svc.ValidateKey(ctx, candidate)
	if err != nil {
		if isExpectedAuthFailure(err) {
			p.log.Debug("api key rejected", logger.ErrorFields("validate_key", err))
			return nil, nil
		}
		return nil, err
	}

	pr, err := p.lookup.GetByID(ctx, ownerID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !pr.Active {
		return nil, nil
	}

	p.log.Debug("api key accepted", logger.Fields(logger.FieldKeyID, keyID, logger.FieldPrincipalID, ownerID))
	return pr, nil
}

func apiKeyFactory(cfg Config, deps Dependencies) (Provider, error) {
	if !cfg.APIKey.Enabled {
		return nil, nil
	}
	if deps.APIKeys == nil {
		return nil, errors.Configuration("api key provider is enabled but no key service was supplied")
	}
	if deps.Lookup == nil {
		return nil, errors.Configuration("api key provider is enabled but no principal lookup was supplied")
	}
	return NewAPIKeyProvider(deps.APIKeys, deps.Lookup, cfg.APIKey.Header, cfg.APIKey.Priority, deps.Logger), nil
}
