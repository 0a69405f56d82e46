package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.AutoPay.GetInterval())
	assert.Equal(t, 10*time.Second, cfg.AutoPay.GetCooldown())
	assert.Equal(t, time.Hour, cfg.Rates.GetCacheTTL())
	assert.Equal(t, 24*time.Hour, cfg.Auth.GetTokenExpiry())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "centsible.toml")
	content := `
environment = "production"
base_currency = "php"

[server]
host = "127.0.0.1"
port = 9090

[autopay]
interval = "1m"
cooldown = "2s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "PHP", cfg.BaseCurrency, "base currency uppercased")
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.AutoPay.GetInterval())
	assert.Equal(t, 2*time.Second, cfg.AutoPay.GetCooldown())
}

func TestLoadConfigSkipsMissingFiles(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CENTSIBLE_ENV", "production")
	t.Setenv("CENTSIBLE_PORT", "7777")
	t.Setenv("CENTSIBLE_BASE_CURRENCY", "eur")
	t.Setenv("CENTSIBLE_AUTH_JWT_SECRET", "env-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestInvalidBaseCurrencyFallsBackToUSD(t *testing.T) {
	t.Setenv("CENTSIBLE_BASE_CURRENCY", "PESOS")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.BaseCurrency)
}

func TestDurationParsersFallBackOnGarbage(t *testing.T) {
	rates := RatesConfig{Timeout: "not-a-duration", CacheTTL: ""}
	assert.Equal(t, 30*time.Second, rates.GetTimeout())
	assert.Equal(t, time.Hour, rates.GetCacheTTL())

	autopay := AutoPayConfig{Interval: "soon", Cooldown: "later"}
	assert.Equal(t, 5*time.Minute, autopay.GetInterval())
	assert.Equal(t, 10*time.Second, autopay.GetCooldown())
}
