package config

import (
	"fmt"

	"github.com/skillsenselab/authkit/apikey"
	"github.com/skillsenselab/authkit/auth"
	"github.com/skillsenselab/authkit/blacklist"
	"github.com/skillsenselab/authkit/jwt"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/redis"
)

// Config is the root authkit configuration, loadable from YAML and
// environment variables.
//
//	auth:
//	  enabled: true
//	  jwt:
//	    enabled: true
//	  api_key:
//	    enabled: true
//	    header: "X-API-Key"
//	jwt:
//	  secret: "${AUTH_JWT_SECRET}"
//	  access_token_ttl: "15m"
//	blacklist:
//	  backend: "redis"
//	redis:
//	  enabled: true
//	  addr: "localhost:6379"
type Config struct {
	Service     string `yaml:"service" mapstructure:"service"`
	Environment string `yaml:"environment" mapstructure:"environment"`

	Logging   logger.Config    `yaml:"logging" mapstructure:"logging"`
	Auth      auth.Config      `yaml:"auth" mapstructure:"auth"`
	JWT       jwt.Config       `yaml:"jwt" mapstructure:"jwt"`
	APIKey    apikey.Config    `yaml:"api_key" mapstructure:"api_key"`
	Blacklist blacklist.Config `yaml:"blacklist" mapstructure:"blacklist"`
	Redis     redis.Config     `yaml:"redis" mapstructure:"redis"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Service == "" {
		c.Service = "authkit"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.APIKey.ApplyDefaults()
	c.Blacklist.ApplyDefaults()
	c.Redis.ApplyDefaults()
}

// Validate checks the configuration for startup. Sections backing disabled
// features are skipped; everything else must be coherent before any request
// is served.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}

	if c.Auth.JWT.Enabled {
		if err := c.JWT.Validate(); err != nil {
			return fmt.Errorf("config.jwt: %w", err)
		}
	}
	if err := c.Blacklist.Validate(); err != nil {
		return fmt.Errorf("config.blacklist: %w", err)
	}
	if c.Blacklist.Backend == blacklist.BackendRedis {
		if !c.Redis.Enabled {
			return fmt.Errorf("config.blacklist: redis backend requires config.redis.enabled")
		}
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("config.redis: %w", err)
		}
	}
	return nil
}
