package config

import (
	"testing"
	"time"

	"github.com/debasish790/backend-bill/billing"
	"github.com/debasish790/backend-bill/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "access")
		t.Setenv("JWT_REFRESH_SECRET", "refresh")
		t.Setenv("TIMEZONE", "UTC")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, "INV", cfg.DefaultPrefix)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "access")
		t.Setenv("JWT_REFRESH_SECRET", "refresh")
		t.Setenv("TIMEZONE", "UTC")
		t.Setenv("PORT", "9000")
		t.Setenv("ACCESS_TOKEN_TTL", "1h")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	})

	t.Run("Missing Secrets", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_REFRESH_SECRET", "")
		t.Setenv("TIMEZONE", "UTC")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Bad Default Prefix", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "access")
		t.Setenv("JWT_REFRESH_SECRET", "refresh")
		t.Setenv("TIMEZONE", "UTC")

		for _, prefix := range []string{"A/B", "TOOLONG"} {
			t.Setenv("DEFAULT_PREFIX", prefix)
			_, err := LoadConfig()
			assert.ErrorIs(t, err, billing.ErrInvalidPrefix, prefix)
		}

		t.Setenv("DEFAULT_PREFIX", " BILL ")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "BILL", cfg.DefaultPrefix)
	})

	t.Run("Bad Duration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "access")
		t.Setenv("JWT_REFRESH_SECRET", "refresh")
		t.Setenv("ACCESS_TOKEN_TTL", "soon")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestInitDB(t *testing.T) {
	t.Run("SQLite", func(t *testing.T) {
		db, err := InitDB(&Config{DBDriver: "sqlite", DatabaseURL: ":memory:"})
		require.NoError(t, err)
		assert.True(t, db.Migrator().HasTable(&models.Invoice{}))
		assert.True(t, db.Migrator().HasTable(&models.InvoiceRow{}))
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		_, err := InitDB(&Config{DBDriver: "oracle"})
		assert.Error(t, err)
	})
}
