package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// userConfigFile is a per-directory config file, checked first.
	userConfigFile = ".vendorctl.yaml"
	// configFile is the config file inside the state directory.
	configFile = "config.yaml"
	// envPrefix prefixes environment overrides, e.g. VENDORCTL_BASE_URL.
	envPrefix = "VENDORCTL"

	// Default configuration values
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTimeout        = 30 * time.Second
	DefaultSearchDebounce = 500 * time.Millisecond
	DefaultOutput         = "table"
	DefaultLogLevel       = "warn"
	DefaultSessionBackend = SessionBackendFile
)

// Session backends.
const (
	SessionBackendFile    = "file"
	SessionBackendKeyring = "keyring"
)

// Output formats.
var OutputFormats = []string{"table", "json", "yaml"}

// Config is the resolved configuration.
type Config struct {
	// BaseURL is the API origin; endpoint paths start with /api/.
	BaseURL string
	// Timeout bounds each request.
	Timeout time.Duration
	// SearchDebounce is the settle delay for interactive server search.
	SearchDebounce time.Duration
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	// Output is the default output format: table, json or yaml.
	Output  string
	Session SessionConfig
	Log     LogConfig
}

// SessionConfig selects where the auth token is kept.
type SessionConfig struct {
	Backend string // file or keyring
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string // debug, info, warn, error
	JSON  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		SearchDebounce: DefaultSearchDebounce,
		Output:         DefaultOutput,
		Session:        SessionConfig{Backend: DefaultSessionBackend},
		Log:            LogConfig{Level: DefaultLogLevel},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("search_debounce", d.SearchDebounce)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("output", d.Output)
	v.SetDefault("session.backend", d.Session.Backend)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
}

// LoadConfig resolves configuration.
//
// Priority (highest to lowest):
//  1. values bound on v by the caller (command-line flags)
//  2. environment variables with the VENDORCTL_ prefix
//  3. path, or .vendorctl.yaml in the working directory, or config.yaml in
//     the state directory, whichever is found first
//  4. built-in defaults
//
// A missing config file is not an error unless path was given explicitly.
func (s *Storage) LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := path
	if file == "" {
		file = s.findConfigFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if path != "" || (!errors.As(err, &notFound) && !os.IsNotExist(err)) {
				return nil, fmt.Errorf("failed to read %s: %w", file, err)
			}
		}
	}

	cfg := &Config{
		BaseURL:        strings.TrimRight(v.GetString("base_url"), "/"),
		Timeout:        v.GetDuration("timeout"),
		SearchDebounce: v.GetDuration("search_debounce"),
		RateLimit:      v.GetFloat64("rate_limit"),
		Output:         strings.ToLower(v.GetString("output")),
		Session: SessionConfig{
			Backend: strings.ToLower(v.GetString("session.backend")),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
			JSON:  v.GetBool("log.json"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Storage) findConfigFile() string {
	candidates := []string{userConfigFile, filepath.Join(s.root, configFile)}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// ConfigPath returns the path to the config file in the state directory.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, configFile)
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url: scheme must be http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url: missing host in %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: must be positive, got %s", c.Timeout)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("invalid search_debounce: must not be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit: must not be negative")
	}
	if !contains(OutputFormats, c.Output) {
		return fmt.Errorf("invalid output %q: must be one of %s", c.Output, strings.Join(OutputFormats, ", "))
	}
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendKeyring:
	default:
		return fmt.Errorf("invalid session.backend %q: must be file or keyring", c.Session.Backend)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
