package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/inventory-dashboard/internal/database"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SHUTDOWN_TIMEOUT", "LOG_MODE", "STORAGE_BACKEND", "DB_DSN_PRIMARY",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "CORS_ALLOWED_ORIGIN",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN_PRIMARY", "user:pass@tcp(localhost:3306)/inventory?parseTime=true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, BackendMySQL, cfg.StorageBackend)
	assert.Equal(t, database.DefaultPool, cfg.Pool)
	assert.Equal(t, "http://localhost:5173", cfg.CORSAllowedOrigin)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_MODE", "Production")
	t.Setenv("STORAGE_BACKEND", "MEMORY")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1m")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://dash.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "production", cfg.LogMode)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, database.PoolConfig{MaxOpenConns: 4, MaxIdleConns: 2, ConnMaxLifetime: time.Minute}, cfg.Pool)
	assert.Equal(t, "https://dash.example.com", cfg.CORSAllowedOrigin)
}

func TestFromEnvInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("DB_MAX_OPEN_CONNS", "-1")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, database.DefaultPool, cfg.Pool)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("mysql without dsn", func(t *testing.T) {
		clearEnv(t)
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DSN_PRIMARY")
	})

	t.Run("unknown backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_BACKEND", "postgres")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres")
	})
}
