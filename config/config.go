// Package config loads aichat client settings from defaults, a YAML file, environment variables and
// secret files, and turns them into a transport.Builder.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/skosovsky/aichat/transport"
)

// Config is the root configuration.
type Config struct {
	Gemini    GeminiConfig    `yaml:"gemini"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeminiConfig holds endpoint, credential and model settings.
type GeminiConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	APIKey       string        `yaml:"api_key"`
	APIKeyFile   string        `yaml:"api_key_file"`
	QuotaProject string        `yaml:"quota_project"`
	APIVersion   string        `yaml:"api_version"`
	DefaultModel string        `yaml:"default_model"`
	Timeout      time.Duration `yaml:"timeout"`
}

// RateLimitConfig configures client-side outbound rate limiting. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LoggingConfig configures the slog level ("debug", "info", "warn", "error").
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Gemini: GeminiConfig{
			APIVersion:   "v1beta",
			DefaultModel: "gemini-2.0-flash",
			Timeout:      2 * time.Minute,
		},
		RateLimit: RateLimitConfig{Burst: 1},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Validate checks required fields and value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Gemini.APIKey == "" {
		errs = append(errs, errors.New("gemini.api_key (or gemini.api_key_file, GEMINI_API_KEY) is required"))
	}
	if c.Gemini.Timeout < 0 {
		errs = append(errs, fmt.Errorf("gemini.timeout must be >= 0, got %s", c.Gemini.Timeout))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.rps must be >= 0, got %g", c.RateLimit.RPS))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.burst must be >= 0, got %d", c.RateLimit.Burst))
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel parses the configured level. Empty means info.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("logging.level %q: %w", l.Level, err)
	}
	return level, nil
}

// TransportBuilder returns the transport settings described by c.
func (c *Config) TransportBuilder() transport.Builder {
	return transport.Builder{
		Endpoint:     c.Gemini.Endpoint,
		APIKey:       c.Gemini.APIKey,
		QuotaProject: c.Gemini.QuotaProject,
		APIVersion:   c.Gemini.APIVersion,
		Timeout:      c.Gemini.Timeout,
		Limiter:      transport.NewLimiter(c.RateLimit.RPS, c.RateLimit.Burst),
	}
}
