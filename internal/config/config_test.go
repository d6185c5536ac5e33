// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any values the environment (or a local .env) might carry so the
	// built-in defaults are what Load actually returns.
	for _, key := range []string{
		"APP_PORT",
		"PRICING_VAT_RATE",
		"PRICING_MIN_ORDER_AMOUNT",
		"PRICING_CARRIER_BASE_FEE",
		"PRICING_CARRIER_COMMISSION_RATE",
		"CART_TTL",
		"JWT_SECRET",
		"JWT_ACCESS_EXPIRE",
		"JWT_REFRESH_EXPIRE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.18, cfg.Pricing.VATRate)
	assert.Equal(t, int64(5000), cfg.Pricing.MinOrderAmount)
	assert.Equal(t, int64(2500), cfg.Pricing.CarrierBaseFee)
	assert.Equal(t, 0.05, cfg.Pricing.CarrierCommissionRate)
	assert.Equal(t, 24*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiry)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PRICING_VAT_RATE", "0.08")
	t.Setenv("PRICING_MIN_ORDER_AMOUNT", "10000")
	t.Setenv("CART_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.08, cfg.Pricing.VATRate)
	assert.Equal(t, int64(10000), cfg.Pricing.MinOrderAmount)
	assert.Equal(t, time.Hour, cfg.Cart.TTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Host: "localhost", Name: "grocery_db", User: "grocery_user"},
			Redis:    RedisConfig{Host: "localhost"},
			JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Pricing: PricingConfig{
				VATRate:               0.18,
				MinOrderAmount:        5000,
				CarrierCommissionRate: 0.05,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "short" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "missing db host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "DB_HOST",
		},
		{
			name:    "vat rate too high",
			mutate:  func(c *Config) { c.Pricing.VATRate = 1.0 },
			wantErr: "PRICING_VAT_RATE",
		},
		{
			name:    "negative vat rate",
			mutate:  func(c *Config) { c.Pricing.VATRate = -0.1 },
			wantErr: "PRICING_VAT_RATE",
		},
		{
			name:    "negative minimum order",
			mutate:  func(c *Config) { c.Pricing.MinOrderAmount = -1 },
			wantErr: "PRICING_MIN_ORDER_AMOUNT",
		},
		{
			name:    "commission rate out of range",
			mutate:  func(c *Config) { c.Pricing.CarrierCommissionRate = 1.5 },
			wantErr: "PRICING_CARRIER_COMMISSION_RATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
