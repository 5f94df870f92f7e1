package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	logger := logrus.New()

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/store")
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := Load(logger)
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "CorazoneHives", cfg.StoreName)
		assert.Equal(t, "254700123456", cfg.WhatsAppNumber)
		assert.True(t, cfg.TaxRate.Equal(decimal.RequireFromString("0.08")))
		assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
		assert.Len(t, cfg.DeliveryAreas, 10)
		assert.Contains(t, cfg.DeliveryAreas, "South B")
		assert.Empty(t, cfg.RedisAddr)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/store")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("TAX_RATE", "0")
		t.Setenv("DELIVERY_AREAS", "Karen,CBD")
		t.Setenv("APP_PORT", "9090")

		cfg, err := Load(logger)
		require.NoError(t, err)

		assert.True(t, cfg.TaxRate.IsZero())
		assert.Equal(t, []string{"Karen", "CBD"}, cfg.DeliveryAreas)
		assert.Equal(t, "9090", cfg.Port)
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		require.NoError(t, os.Unsetenv("DATABASE_URL"))
		t.Setenv("JWT_SECRET", "s3cret")

		_, err := Load(logger)
		assert.Error(t, err)
	})

	t.Run("negative tax rate", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/store")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("TAX_RATE", "-0.1")

		_, err := Load(logger)
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger("debug", "text")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger = NewLogger("nonsense", "json")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
