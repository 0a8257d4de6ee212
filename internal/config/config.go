// Package config loads and saves the YAML configuration file. A missing file
// is created with defaults on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dukerupert/wallcal/internal/view"
)

const (
	defaultListen    = "127.0.0.1:8080"
	defaultDBPath    = "wallcal.db"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultView      = "month"
)

// BasicAuthConfig enables HTTP basic auth on everything except /health.
// PasswordHash is a bcrypt hash as printed by `wallcal hash-password`.
type BasicAuthConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DBPath is the SQLite file holding events and the theme.
	DBPath string `yaml:"db_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`

	// DefaultView is the view a fresh calendar opens in.
	DefaultView string `yaml:"default_view"`

	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty"`

	// TrustProxy makes the server take the client address from
	// CF-Connecting-IP / X-Forwarded-For. Enable it only behind a proxy that
	// overwrites those headers.
	TrustProxy bool `yaml:"trust_proxy"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:      defaultListen,
		DBPath:      defaultDBPath,
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
		DefaultView: defaultView,
	}
}

// Normalize fills in missing values and replaces invalid ones with defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.DBPath == "" {
		c.DBPath = defaultDBPath
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		c.LogFormat = defaultLogFormat
	}
	if _, err := view.ParseView(c.DefaultView); err != nil {
		c.DefaultView = defaultView
	}
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.PasswordHash == "") {
		c.BasicAuth = nil
	}
}

// View returns DefaultView parsed; Normalize guarantees it is valid.
func (c *Config) View() view.View {
	v, err := view.ParseView(c.DefaultView)
	if err != nil {
		return view.Month
	}
	return v
}

// ApplyEnv overrides file values with WALLCAL_LISTEN, WALLCAL_DB_PATH and
// WALLCAL_LOG_LEVEL when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("WALLCAL_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("WALLCAL_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("WALLCAL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Load reads the YAML file at path. If it does not exist a default config is
// written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".wallcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
