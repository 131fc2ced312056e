package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		supplier TEXT NOT NULL,
		sales INT NOT NULL DEFAULT 0,
		price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
}

// Migrate creates the products and users tables when they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "apply schema statement %d", i+1)
		}
	}
	return nil
}
