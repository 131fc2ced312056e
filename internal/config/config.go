package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/01moynul/inventory-dashboard/internal/database"
)

const (
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config is everything the API process reads from its environment.
type Config struct {
	// Server Settings
	Port            string
	ShutdownTimeout time.Duration
	LogMode         string

	// Storage Settings
	StorageBackend string
	DSN            string
	Pool           database.PoolConfig

	// CORS Settings
	CORSAllowedOrigin string
}

// Load reads .env (if present) and then the process environment.
// A missing .env only produces a warning, like in production where the
// variables come from the orchestrator.
func Load() (*Config, []string, error) {
	var warnings []string
	if err := godotenv.Load(); err != nil {
		warnings = append(warnings, "could not load .env file, relying on system environment variables")
	}
	cfg, err := FromEnv()
	return cfg, warnings, err
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "5000"),
		ShutdownTimeout: cast.ToDuration(getenv("SHUTDOWN_TIMEOUT", "10s")),
		LogMode:         strings.ToLower(getenv("LOG_MODE", "development")),

		StorageBackend: strings.ToLower(getenv("STORAGE_BACKEND", BackendMySQL)),
		DSN:            os.Getenv("DB_DSN_PRIMARY"),
		Pool: database.PoolConfig{
			MaxOpenConns:    cast.ToInt(getenv("DB_MAX_OPEN_CONNS", cast.ToString(database.DefaultPool.MaxOpenConns))),
			MaxIdleConns:    cast.ToInt(getenv("DB_MAX_IDLE_CONNS", cast.ToString(database.DefaultPool.MaxIdleConns))),
			ConnMaxLifetime: cast.ToDuration(getenv("DB_CONN_MAX_LIFETIME", database.DefaultPool.ConnMaxLifetime.String())),
		},

		CORSAllowedOrigin: getenv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
	}

	switch cfg.StorageBackend {
	case BackendMySQL:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DB_DSN_PRIMARY must be set when STORAGE_BACKEND=%s", BackendMySQL)
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %s or %s)", cfg.StorageBackend, BackendMySQL, BackendMemory)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Pool.MaxOpenConns <= 0 {
		cfg.Pool.MaxOpenConns = database.DefaultPool.MaxOpenConns
	}
	if cfg.Pool.MaxIdleConns <= 0 {
		cfg.Pool.MaxIdleConns = database.DefaultPool.MaxIdleConns
	}
	if cfg.Pool.ConnMaxLifetime <= 0 {
		cfg.Pool.ConnMaxLifetime = database.DefaultPool.ConnMaxLifetime
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
