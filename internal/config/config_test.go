package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "FITS_LIMIT", "CACHE_MAX_AGE"} {
		for _, key := range []string{EnvPrefix + "_" + k, k} {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4001", cfg.Port)
	assert.Equal(t, ":4001", cfg.Addr())
	assert.Equal(t, "./fitforge.db", cfg.DBPath)
	assert.Equal(t, 500, cfg.FitsLimit)
	assert.Equal(t, 3600, cfg.CacheMaxAge)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FITFORGE_PORT", "127.0.0.1:9000")
	t.Setenv("FITFORGE_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FITFORGE_FITS_LIMIT", "0")
	t.Setenv("FITS_LIMIT", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFile(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURLOr(DefaultBaseURL))
	assert.Equal(t, time.Second, cfg.TimeoutOr(time.Second))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[client]
base_url = "https://fits.example"
timeout = "5s"

[table]
sort = "Hi"
flip = true
`), 0o644))

	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://fits.example", cfg.BaseURLOr(DefaultBaseURL))
	assert.Equal(t, 5*time.Second, cfg.TimeoutOr(time.Second))
	require.NotNil(t, cfg.Table.Sort)
	assert.Equal(t, "Hi", *cfg.Table.Sort)
	require.NotNil(t, cfg.Table.Flip)
	assert.True(t, *cfg.Table.Flip)

	_, err = LoadFile("")
	assert.Error(t, err)
}
