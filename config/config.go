// Package config loads and validates the file server configuration.
//
// Configuration comes from a YAML file merged over built-in defaults. The
// decoded struct is validated before use, so the server never starts with a
// missing root directory or an unparseable listen address.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	ms "github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds the file server settings.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string `mapstructure:"listen_addr" validate:"required,hostname_port"`
	// Root is the directory files are served from. Absolute or relative to
	// the process working directory.
	Root string `mapstructure:"root" validate:"required"`
	// LogLevel selects the slog level: debug, info, warn, or error.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// HealthPath is the health check endpoint path.
	HealthPath string `mapstructure:"health_path" validate:"required,startswith=/"`
	// Metrics enables the Prometheus middleware and the /metrics endpoint.
	Metrics bool `mapstructure:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr: "127.0.0.1:8080",
		Root:       "./public",
		LogLevel:   "info",
		HealthPath: "/healthz",
	}
}

// Load reads a YAML file and merges it over Default. Unknown keys are an
// error so a typoed setting fails loudly instead of being ignored. The merged
// result is validated before it is returned.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	dec, err := ms.NewDecoder(&ms.DecoderConfig{Result: &cfg, ErrorUnused: true})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps the configured log level onto a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
