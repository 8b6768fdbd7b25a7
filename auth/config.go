package auth

// ProviderConfig configures one provider's place in the trial sequence.
type ProviderConfig struct {
	// Enabled controls whether the provider participates.
	Enabled bool `mapstructure:"enabled"`

	// Priority orders the trial sequence; lower runs earlier.
	Priority int `mapstructure:"priority"`

	// Header is the request header carrying the credential. Only the
	// API-key provider reads it (default: X-API-Key).
	Header string `mapstructure:"header"`
}

// Config holds the authentication composition configuration.
type Config struct {
	// Enabled controls whether authentication is globally required. When
	// true, instantiation with zero enabled providers is a fatal
	// configuration error.
	Enabled bool `mapstructure:"enabled"`

	// IDKind names the principal identifier shape ("int" or "uuid").
	IDKind string `mapstructure:"id_kind"`

	// JWT configures the Bearer-token provider.
	JWT ProviderConfig `mapstructure:"jwt"`

	// APIKey configures the header-based API-key provider.
	APIKey ProviderConfig `mapstructure:"api_key"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.JWT.Priority == 0 {
		c.JWT.Priority = 10
	}
	if c.APIKey.Priority == 0 {
		c.APIKey.Priority = 20
	}
	if c.APIKey.Header == "" {
		c.APIKey.Header = "X-API-Key"
	}
}
