package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the API the CLI talks to when nothing else is set.
const DefaultBaseURL = "http://localhost:4001"

// FileConfig represents the CLI TOML configuration file.
type FileConfig struct {
	Client ClientConfig `toml:"client"`
	Table  TableConfig  `toml:"table"`
}

// ClientConfig maps API client settings.
type ClientConfig struct {
	BaseURL *string   `toml:"base_url"`
	Timeout *duration `toml:"timeout"`
}

// TableConfig maps fit listing settings.
type TableConfig struct {
	Sort *string `toml:"sort"`
	Flip *bool   `toml:"flip"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// BaseURLOr returns the configured base URL or fallback.
func (c FileConfig) BaseURLOr(fallback string) string {
	if c.Client.BaseURL != nil && *c.Client.BaseURL != "" {
		return *c.Client.BaseURL
	}
	return fallback
}

// TimeoutOr returns the configured client timeout or fallback.
func (c FileConfig) TimeoutOr(fallback time.Duration) time.Duration {
	if c.Client.Timeout != nil && c.Client.Timeout.Duration > 0 {
		return c.Client.Timeout.Duration
	}
	return fallback
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "fitforge", "config.toml")
}
