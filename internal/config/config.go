// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvLogLevel          = "SALESTAX_LOG_LEVEL"
	EnvLogFormat         = "SALESTAX_LOG_FORMAT"
	EnvListsDir          = "SALESTAX_LISTS_DIR"
	EnvSigningKey        = "SALESTAX_SIGNING_KEY"
	EnvSigningPassphrase = "SALESTAX_SIGNING_PASSPHRASE"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Config holds settings shared by all commands. Flags override these values.
type Config struct {
	LogLevel          string
	LogFormat         string
	ListsDir          string
	SigningKey        string
	SigningPassphrase string
}

// Load reads DefaultEnvFile (if it exists) and then the environment
func Load() (*Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom reads envFile (if it exists) and then the environment.
// Variables already set in the environment win over the file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		LogLevel:          env(EnvLogLevel, "warn"),
		LogFormat:         env(EnvLogFormat, "console"),
		ListsDir:          env(EnvListsDir, "lists"),
		SigningKey:        env(EnvSigningKey, ""),
		SigningPassphrase: env(EnvSigningPassphrase, ""),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%s: unknown log level %q", EnvLogLevel, cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%s: unknown log format %q", EnvLogFormat, cfg.LogFormat)
	}

	return cfg, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
