// Package config reads environment driven configuration for the portal
// service.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Password schemes accepted by CALLSAL_PASSWORD_SCHEME.
const (
	PasswordSchemePlain    = "plain"
	PasswordSchemeArgon2id = "argon2id"
)

// Config captures environment driven configuration values.
type Config struct {
	HTTPPort       int    `env:"CALLSAL_HTTP_PORT, default=8080"`
	SQLiteDSN      string `env:"CALLSAL_SQLITE_DSN, default=file:callsal.db"`
	Ephemeral      bool   `env:"CALLSAL_EPHEMERAL, default=false"`
	LogLevel       string `env:"CALLSAL_LOG_LEVEL, default=info"`
	PasswordScheme string `env:"CALLSAL_PASSWORD_SCHEME, default=plain"`
	ChatFallback   string `env:"CALLSAL_CHAT_FALLBACK"`
}

// Load parses configuration from the current process environment.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.PasswordScheme = strings.ToLower(strings.TrimSpace(cfg.PasswordScheme))
	switch cfg.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeArgon2id:
	default:
		return Config{}, fmt.Errorf("invalid CALLSAL_PASSWORD_SCHEME %q", cfg.PasswordScheme)
	}

	if cfg.HTTPPort <= 0 {
		return Config{}, fmt.Errorf("invalid CALLSAL_HTTP_PORT %d", cfg.HTTPPort)
	}

	return cfg, nil
}
