//go:build unit

package config_test

import (
	"os"
	"testing"

	"travel-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv removes key for the duration of the test and restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func setDBEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "booking")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "bookings")
}

func TestLoadMigrateConfig(t *testing.T) {
	t.Run("does not need the server port", func(t *testing.T) {
		setDBEnv(t)
		unsetenv(t, "PORT")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := config.LoadMigrateConfig()
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.DB.Host)
		assert.Equal(t, "5432", cfg.DB.Port)
		assert.Equal(t, "bookings", cfg.DB.DBName)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "Asia/Kolkata", cfg.Log.TimeZone)
	})

	t.Run("still requires database credentials", func(t *testing.T) {
		setDBEnv(t)
		unsetenv(t, "DB_PASSWORD")

		_, err := config.LoadMigrateConfig()
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("requires the server port", func(t *testing.T) {
		setDBEnv(t)
		unsetenv(t, "PORT")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("rejects a non-positive reference attempt count", func(t *testing.T) {
		setDBEnv(t)
		t.Setenv("PORT", "8080")
		t.Setenv("BOOKING_REFERENCE_MAX_ATTEMPTS", "0")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})
}
