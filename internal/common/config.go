package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Centsible.
type Config struct {
	Environment  string         `toml:"environment"`
	BaseCurrency string         `toml:"base_currency"` // default currency for dashboard totals
	Server       ServerConfig   `toml:"server"`
	Storage      StorageConfig  `toml:"storage"`
	Ledger       LedgerConfig   `toml:"ledger"`
	Rates        RatesConfig    `toml:"rates"`
	AutoPay      AutoPayConfig  `toml:"autopay"`
	Auth         AuthConfig     `toml:"auth"`
	Logging      LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the ledger database location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LedgerConfig holds validation limits for ledger writes.
type LedgerConfig struct {
	MaxAmount float64 `toml:"max_amount"` // ceiling for a single transaction or bill amount
}

// RatesConfig holds exchange-rate provider configuration.
type RatesConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
	CacheTTL  string `toml:"cache_ttl"`
}

// GetTimeout parses and returns the HTTP timeout duration.
func (c *RatesConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetCacheTTL parses and returns the rate table cache TTL.
func (c *RatesConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// AutoPayConfig holds bill processing cadence configuration.
type AutoPayConfig struct {
	Interval string `toml:"interval"` // how often the scheduler checks for due bills
	Cooldown string `toml:"cooldown"` // guard release delay after a processing pass
}

// GetInterval parses and returns the scheduler interval.
func (c *AutoPayConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// GetCooldown parses and returns the guard cooldown.
func (c *AutoPayConfig) GetCooldown() time.Duration {
	d, err := time.ParseDuration(c.Cooldown)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// AuthConfig holds JWT validation configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment:  "development",
		BaseCurrency: "USD",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/ledger",
		},
		Ledger: LedgerConfig{
			MaxAmount: 1_000_000_000,
		},
		Rates: RatesConfig{
			BaseURL:   "https://api.frankfurter.dev/v1",
			RateLimit: 5,
			Timeout:   "30s",
			CacheTTL:  "1h",
		},
		AutoPay: AutoPayConfig{
			Interval: "5m",
			Cooldown: "10s",
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validateBaseCurrency(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CENTSIBLE_ENV"); env != "" {
		config.Environment = env
	}
	if host := os.Getenv("CENTSIBLE_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("CENTSIBLE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("CENTSIBLE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if path := os.Getenv("CENTSIBLE_DATA_PATH"); path != "" {
		config.Storage.Path = filepath.Join(path, "ledger")
	}
	if bc := os.Getenv("CENTSIBLE_BASE_CURRENCY"); bc != "" {
		config.BaseCurrency = strings.ToUpper(bc)
	}
	if v := os.Getenv("CENTSIBLE_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("CENTSIBLE_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
	if v := os.Getenv("CENTSIBLE_RATES_URL"); v != "" {
		config.Rates.BaseURL = v
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// validateBaseCurrency uppercases the configured base currency and falls back
// to USD when it is blank or not a 3-letter code.
func validateBaseCurrency(config *Config) {
	bc := strings.ToUpper(strings.TrimSpace(config.BaseCurrency))
	if len(bc) != 3 {
		bc = "USD"
	}
	config.BaseCurrency = bc
}
