package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath   = "AICHAT_CONFIG"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	envPrefix       = "AICHAT_"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "aichat.yaml"

// Load builds the configuration in layers:
//  1. Built-in defaults
//  2. YAML file (explicit path, AICHAT_CONFIG, ./aichat.yaml)
//  3. Environment overrides (AICHAT_* and GEMINI_API_KEY)
//  4. _file secret resolution
//  5. Validation
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if file := discoverFile(path); file != "" {
		if err := loadYAMLFile(file, &cfg); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", file, err)
		}
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func discoverFile(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	return ""
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overrides fields from the environment. Malformed numbers and durations are errors.
func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	str("ENDPOINT", &cfg.Gemini.Endpoint)
	str("QUOTA_PROJECT", &cfg.Gemini.QuotaProject)
	str("API_VERSION", &cfg.Gemini.APIVersion)
	str("MODEL", &cfg.Gemini.DefaultModel)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("API_KEY_FILE", &cfg.Gemini.APIKeyFile)

	if v := getenv(EnvGeminiAPIKey); v != "" {
		cfg.Gemini.APIKey = v
	}
	str("API_KEY", &cfg.Gemini.APIKey)

	if v := getenv(envPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sTIMEOUT: %w", envPrefix, err)
		}
		cfg.Gemini.Timeout = d
	}
	if v := getenv(envPrefix + "RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sRATE_LIMIT_RPS: %w", envPrefix, err)
		}
		cfg.RateLimit.RPS = f
	}
	if v := getenv(envPrefix + "RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sRATE_LIMIT_BURST: %w", envPrefix, err)
		}
		cfg.RateLimit.Burst = n
	}
	return nil
}

// resolveFileReferences fills gemini.api_key from gemini.api_key_file when the key is not set inline.
func resolveFileReferences(cfg *Config) error {
	if cfg.Gemini.APIKeyFile != "" && cfg.Gemini.APIKey == "" {
		val, err := readSecretFile(cfg.Gemini.APIKeyFile)
		if err != nil {
			return fmt.Errorf("config: gemini.api_key_file: %w", err)
		}
		cfg.Gemini.APIKey = val
	}
	return nil
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
