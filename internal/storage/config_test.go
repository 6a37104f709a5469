package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultSearchDebounce, cfg.SearchDebounce)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)

		cfg, err := s.LoadConfig(nil, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("partial file merges with defaults", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)
		content := "base_url: https://api.example.com/\nsearch_debounce: 250ms\nlog:\n  level: DEBUG\n"
		require.NoError(t, os.WriteFile(s.ConfigPath(), []byte(content), 0o644))

		cfg, err := s.LoadConfig(nil, "")
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", cfg.BaseURL)
		assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(s.ConfigPath(), []byte("output: yaml\n"), 0o644))
		t.Setenv("VENDORCTL_OUTPUT", "json")
		t.Setenv("VENDORCTL_SESSION_BACKEND", "keyring")

		cfg, err := s.LoadConfig(nil, "")
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output)
		assert.Equal(t, SessionBackendKeyring, cfg.Session.Backend)
	})

	t.Run("bound values win", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)
		t.Setenv("VENDORCTL_BASE_URL", "http://env.example.com")

		v := viper.New()
		v.Set("base_url", "http://flag.example.com")
		cfg, err := s.LoadConfig(v, "")
		require.NoError(t, err)
		assert.Equal(t, "http://flag.example.com", cfg.BaseURL)
	})

	t.Run("explicit missing path is an error", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)

		_, err = s.LoadConfig(nil, filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(s.ConfigPath(), []byte("base_url: [\n"), 0o644))

		_, err = s.LoadConfig(nil, "")
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://x" }, "scheme"},
		{"no host", func(c *Config) { c.BaseURL = "http://" }, "host"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, "rate_limit"},
		{"bad output", func(c *Config) { c.Output = "xml" }, "output"},
		{"bad backend", func(c *Config) { c.Session.Backend = "cookie" }, "session.backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
