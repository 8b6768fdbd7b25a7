package auth

import (
	"sort"
	"sync"

	"github.com/skillsenselab/authkit/errors"
)

// Registration describes one registered provider factory.
type Registration struct {
	Name     string
	Priority int
	Factory  Factory
}

// Registry holds named provider factories. Registration order matters:
// providers sharing a priority keep their registration order in the trial
// sequence.
type Registry struct {
	mu      sync.Mutex
	entries []Registration
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a named factory. A duplicate name fails rather than silently
// shadowing the earlier registration.
func (r *Registry) Register(name string, priority int, factory Factory) error {
	if name == "" {
		return errors.MissingField("name")
	}
	if factory == nil {
		return errors.Configuration("auth: factory for provider " + name + " is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Name == name {
			return errors.Conflict("auth provider " + name + " already registered")
		}
	}
	r.entries = append(r.entries, Registration{Name: name, Priority: priority, Factory: factory})
	return nil
}

// Instantiate calls every registered factory in ascending-priority order
// (ties broken by registration order) and collects the enabled providers.
// When authentication is globally enabled and no provider ends up enabled,
// instantiation fails with a configuration error.
func (r *Registry) Instantiate(cfg Config, deps Dependencies) ([]Provider, error) {
	cfg.ApplyDefaults()

	entries := r.ListRegistered()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority < entries[j].Priority
	})

	var providers []Provider
	for _, e := range entries {
		p, err := e.Factory(cfg, deps)
		if err != nil {
			return nil, err
		}
		if p != nil {
			providers = append(providers, p)
		}
	}

	// Provider-reported priority is authoritative for the trial sequence;
	// a config override on one provider must not depend on registration
	// order to take effect.
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority() < providers[j].Priority()
	})

	if cfg.Enabled && len(providers) == 0 {
		return nil, errors.Configuration("authentication is enabled but no provider is enabled")
	}
	return providers, nil
}

// ListRegistered returns a snapshot of the registrations in registration
// order.
func (r *Registry) ListRegistered() []Registration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Registration, len(r.entries))
	copy(out, r.entries)
	return out
}

// Clear removes all registrations. Intended for test isolation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// RegisterDefaults registers the built-in JWT and API-key provider factories.
func RegisterDefaults(r *Registry) error {
	if err := r.Register(ProviderJWT, 10, jwtFactory); err != nil {
		return err
	}
	return r.Register(ProviderAPIKey, 20, apiKeyFactory)
}
