package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PoolConfig tunes the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool matches the settings the service has always run with.
var DefaultPool = PoolConfig{
	MaxOpenConns:    25,
	MaxIdleConns:    25,
	ConnMaxLifetime: 5 * time.Minute,
}

// OpenDBWithDSN creates and configures a MySQL connection pool for dsn
// and verifies it with a ping.
func OpenDBWithDSN(ctx context.Context, dsn string, pool PoolConfig) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql pool")
	}

	// 2. Configure the connection pool settings.
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	// 3. Ping the database to verify the connection.
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}

	zap.L().Info("database connection pool established",
		zap.Int("max_open_conns", pool.MaxOpenConns),
		zap.Duration("conn_max_lifetime", pool.ConnMaxLifetime))
	return db, nil
}
