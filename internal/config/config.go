package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tellnet/tellnet/internal/branding"
	"github.com/tellnet/tellnet/internal/platform"
	"github.com/tellnet/tellnet/internal/schema"
)

const fileType = "json"

// Guest credentials written into a freshly generated config.
const (
	defaultUsername = "guest"
	defaultPassword = "abc123"
)

// Credentials is a Basic auth username/password pair.
type Credentials struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
}

// Config is the process-wide configuration. It is read-only after Load.
type Config struct {
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	// NewNetworkAuth authorizes network creation. Nil means anonymous.
	NewNetworkAuth *Credentials `json:"new_network_auth,omitempty" mapstructure:"new_network_auth"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Endpoint: branding.DefaultEndpoint(),
		NewNetworkAuth: &Credentials{
			Username: defaultUsername,
			Password: defaultPassword,
		},
	}
}

// Load reads the config file at path. When the file is missing, unreadable or
// invalid, defaults are written to path (creating parent directories) and
// loaded instead. Overwriting an existing file is logged as a warning because
// any custom endpoint in it is lost. Errors are returned only when the
// defaults cannot be written.
func Load(path string, log *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, parseErr := parse(data)
		if parseErr == nil {
			return cfg, nil
		}
		log.Warn("config file unreadable, replacing it with defaults", "path", path, "error", parseErr)
	case errors.Is(err, os.ErrNotExist):
		log.Debug("config file missing, writing defaults", "path", path)
	default:
		log.Warn("config file unreadable, replacing it with defaults", "path", path, "error", err)
	}

	if err := Save(Default(), path); err != nil {
		return nil, fmt.Errorf("writing default config %s: %w", path, err)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parse(data)
}

// parse validates data against the config schema and decodes it, applying
// the TELLNET_ENDPOINT override.
func parse(data []byte) (*Config, error) {
	result, err := schema.Validate(schema.Config, data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid config: %s", result.Summary())
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	if err := v.BindEnv("endpoint"); err != nil {
		return nil, fmt.Errorf("binding endpoint env: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path as indented JSON, creating the parent directory.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.Set("endpoint", cfg.Endpoint)
	if cfg.NewNetworkAuth != nil {
		v.Set("new_network_auth", map[string]any{
			"username": cfg.NewNetworkAuth.Username,
			"password": cfg.NewNetworkAuth.Password,
		})
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := platform.Chmod(path, 0600); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return nil
}
