// Package config loads runtime configuration from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/simulacrum/internal/errors"
)

// Config is the process configuration. Every field can be set through the
// environment; CLI flags override after loading.
type Config struct {
	RedisAddr     string        `env:"SIMULACRUM_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"SIMULACRUM_REDIS_PASSWORD"`
	RedisDB       int           `env:"SIMULACRUM_REDIS_DB" envDefault:"0"`
	PacksDir      string        `env:"SIMULACRUM_PACKS_DIR" envDefault:"packs"`
	LogLevel      string        `env:"SIMULACRUM_LOG_LEVEL" envDefault:"info"`
	ChatTTL       time.Duration `env:"SIMULACRUM_CHAT_TTL" envDefault:"24h"`
	Timeout       time.Duration `env:"SIMULACRUM_TIMEOUT" envDefault:"30s"`
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("SIMULACRUM_REDIS_ADDR", c.RedisAddr, vb)
	errors.ValidateEnum("SIMULACRUM_LOG_LEVEL", strings.ToLower(c.LogLevel),
		[]string{"debug", "info", "warn", "error"}, vb)
	if c.ChatTTL < 0 {
		vb.Field("SIMULACRUM_CHAT_TTL", "must not be negative")
	}
	if c.Timeout <= 0 {
		vb.Field("SIMULACRUM_TIMEOUT", "must be positive")
	}

	return vb.Build()
}

// SlogLevel maps LogLevel to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
