package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresRedisURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"REDIS_URL": "",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"REDIS_URL":              "redis://localhost:6379/0",
		"APP_ENV":                "",
		"PORT":                   "",
		"CATALOG_CACHE_TTL":      "",
		"CATALOG_DEFAULT_LIMIT":  "",
		"CATALOG_MAX_LIMIT":      "",
		"CART_STORAGE_KEY":       "",
		"QUOTE_SESSION_TTL":      "",
		"QUOTE_RATELIMIT_WINDOW": "",
		"QUOTE_RATELIMIT_MAX":    "",
		"TAX_RATE_BPS":           "",
		"FREE_SHIPPING_THRESHOLD": "",
	})
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.Equal(t, 20, cfg.CatalogDefaultLimit)
	require.Equal(t, 100, cfg.CatalogMaxLimit)
	require.Equal(t, "cart-storage", cfg.CartStorageKey)
	require.Equal(t, 24*time.Hour, cfg.QuoteSessionTTL)
	require.Equal(t, time.Minute, cfg.QuoteRateLimitWindow)
	require.Equal(t, 30, cfg.QuoteRateLimitMax)
	require.Equal(t, 1900, cfg.TaxRateBPS)
	require.Equal(t, 50000.0, cfg.FreeShippingThreshold)
	require.Equal(t, "CLP", cfg.CurrencyCode)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"REDIS_URL":            "redis://localhost:6379/1",
		"PORT":                 "9090",
		"CORS_ALLOWED_ORIGINS": "https://tienda.cl, https://admin.tienda.cl",
		"CATALOG_CACHE_TTL":    "30s",
		"QUOTE_SESSION_TTL":    "1h",
		"TAX_RATE_BPS":         "1000",
	})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, []string{"https://tienda.cl", "https://admin.tienda.cl"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	require.Equal(t, time.Hour, cfg.QuoteSessionTTL)
	require.Equal(t, 1000, cfg.TaxRateBPS)
}

func TestDefaultLimitClampedToMax(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"REDIS_URL":             "redis://localhost:6379/0",
		"CATALOG_DEFAULT_LIMIT": "500",
		"CATALOG_MAX_LIMIT":     "50",
	})
	require.NoError(t, err)
	require.Equal(t, 50, cfg.CatalogDefaultLimit)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"REDIS_URL":         "redis://localhost:6379/0",
		"CATALOG_CACHE_TTL": "not-a-duration",
	})
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
}
