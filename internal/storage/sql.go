package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/01moynul/inventory-dashboard/internal/models"
)

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

const productColumns = "id, name, description, supplier, sales, price, quantity"

// SQLStore is the MySQL-backed Store.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open pool. The store owns the pool from now on.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Supplier,
		&p.Sales,
		&p.Price,
		&p.Quantity,
	)
	return p, err
}

func (s *SQLStore) ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	opts = opts.normalized()

	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + productColumns + " FROM products")
	if opts.Search != "" {
		queryBuilder.WriteString(" WHERE LOWER(name) LIKE ?")
		args = append(args, "%"+escapeLike(strings.ToLower(opts.Search))+"%")
	}
	// The column comes from the closed SortField set, never from input.
	fmt.Fprintf(&queryBuilder, " ORDER BY %s %s, id ASC",
		opts.SortBy.Column(), strings.ToUpper(string(opts.SortOrder)))

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product row")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate product rows")
	}
	return products, nil
}

func (s *SQLStore) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	return getProduct(ctx, s.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getProduct(ctx context.Context, q queryRower, id int64) (models.Product, error) {
	p, err := scanProduct(q.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, errors.Wrapf(err, "get product %d", id)
	}
	return p, nil
}

func (s *SQLStore) CreateProduct(ctx context.Context, in models.InsertProduct) (models.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "begin create product")
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO products (name, description, supplier, sales, price, quantity) VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, in.Description, in.Supplier, in.Sales, in.Price, in.Quantity,
	)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "insert product")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Product{}, errors.Wrap(err, "read inserted product id")
	}

	p, err := getProduct(ctx, tx, id)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "reload inserted product")
	}
	if err := tx.Commit(); err != nil {
		return models.Product{}, errors.Wrap(err, "commit create product")
	}
	return p, nil
}

func (s *SQLStore) UpdateProduct(ctx context.Context, id int64, up models.UpdateProduct) (models.Product, error) {
	if up.IsEmpty() {
		return s.GetProduct(ctx, id)
	}

	// Dynamically build the SET clause from the supplied fields only.
	var sets []string
	var queryArgs []interface{}

	if up.Name != nil {
		sets = append(sets, "name = ?")
		queryArgs = append(queryArgs, *up.Name)
	}
	if up.Description != nil {
		sets = append(sets, "description = ?")
		queryArgs = append(queryArgs, *up.Description)
	}
	if up.Supplier != nil {
		sets = append(sets, "supplier = ?")
		queryArgs = append(queryArgs, *up.Supplier)
	}
	if up.Sales != nil {
		sets = append(sets, "sales = ?")
		queryArgs = append(queryArgs, *up.Sales)
	}
	if up.Price != nil {
		sets = append(sets, "price = ?")
		queryArgs = append(queryArgs, *up.Price)
	}
	if up.Quantity != nil {
		sets = append(sets, "quantity = ?")
		queryArgs = append(queryArgs, *up.Quantity)
	}
	queryArgs = append(queryArgs, id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, errors.Wrap(err, "begin update product")
	}
	defer tx.Rollback()

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, query, queryArgs...); err != nil {
		return models.Product{}, errors.Wrapf(err, "update product %d", id)
	}

	// MySQL reports zero affected rows for no-op updates, so existence is
	// decided by reading the row back.
	p, err := getProduct(ctx, tx, id)
	if err != nil {
		return models.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Product{}, errors.Wrap(err, "commit update product")
	}
	return p, nil
}

func (s *SQLStore) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return false, errors.Wrapf(err, "delete product %d", id)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "check deleted rows")
	}
	return rowsAffected > 0, nil
}

// GetProductStats computes every aggregate in one statement so the figures
// come from the same snapshot.
func (s *SQLStore) GetProductStats(ctx context.Context) (models.ProductStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(sales * price), 0),
			COALESCE(SUM(CASE WHEN quantity < ? THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT BINARY supplier)
		FROM products`

	var (
		totalProducts int
		totalSales    decimal.Decimal
		lowStock      int
		suppliers     int
	)
	err := s.db.QueryRowContext(ctx, query, models.LowStockThreshold).
		Scan(&totalProducts, &totalSales, &lowStock, &suppliers)
	if err != nil {
		return models.ProductStats{}, errors.Wrap(err, "aggregate product stats")
	}
	return models.NewProductStats(totalProducts, totalSales, lowStock, suppliers), nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search term match literally inside LIKE.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
