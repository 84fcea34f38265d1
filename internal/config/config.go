// Package config loads server settings from the environment and CLI
// settings from a TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every server environment variable.
const EnvPrefix = "FITFORGE"

// Config holds the server configuration, read from FITFORGE_* variables.
type Config struct {
	Port     string `envconfig:"PORT" default:"4001"`
	DBPath   string `envconfig:"DB_PATH" default:"./fitforge.db"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	// CacheMaxAge is the Cache-Control max-age for fit responses, in seconds.
	CacheMaxAge int `envconfig:"CACHE_MAX_AGE" default:"3600"`
	// FitsLimit caps the number of fits in one listing.
	FitsLimit int `envconfig:"FITS_LIMIT" default:"500"`
	// StaticDir, when set, is served at / for a bundled frontend.
	StaticDir string `envconfig:"STATIC_DIR" default:""`
}

// Load parses the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.FitsLimit <= 0 {
		return fmt.Errorf("FITS_LIMIT must be positive, got %d", c.FitsLimit)
	}
	if c.CacheMaxAge < 0 {
		return fmt.Errorf("CACHE_MAX_AGE must not be negative, got %d", c.CacheMaxAge)
	}
	return nil
}

// Addr returns the listen address for Port, which may be a bare port or
// host:port.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
