package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/inventory-dashboard/internal/models"
)

var productCols = []string{"id", "name", "description", "supplier", "sales", "price", "quantity"}

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewSQLStore(db), mock
}

func TestSQLStoreListWithSearchAndSort(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, description, supplier, sales, price, quantity FROM products WHERE LOWER(name) LIKE ? ORDER BY price DESC, id ASC")).
		WithArgs("%wid\\%%").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(int64(2), "SuperWid%", "big", "Acme", int64(1), "12.50", int64(3)).
			AddRow(int64(1), "Wid%", "small", "Globex", int64(0), "4.00", int64(0)))

	got, err := s.ListProducts(context.Background(), NewListOptions("Wid%", "price", "desc"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "SuperWid%", got[0].Name)
	assert.Equal(t, "12.50", got[0].Price.String())
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, "Globex", got[1].Supplier)
}

func TestSQLStoreListDefaultOrder(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows(productCols))

	got, err := s.ListProducts(context.Background(), NewListOptions("", "bogus", "desc"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLStoreListError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FROM products").WillReturnError(errors.New("connection refused"))

	_, err := s.ListProducts(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query products")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSQLStoreGetProduct(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(int64(4), "Widget", "", "Acme", int64(2), "10.00", int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows(productCols))

	p, err := s.GetProduct(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, "10.00", p.Price.String())

	_, err = s.GetProduct(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreCreateProduct(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO products (name, description, supplier, sales, price, quantity) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs("Widget", "d", "Acme", 2, "10.00", 5).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(int64(7), "Widget", "d", "Acme", int64(2), "10.00", int64(5)))
	mock.ExpectCommit()

	p, err := s.CreateProduct(context.Background(), models.InsertProduct{
		Name: "Widget", Description: "d", Supplier: "Acme", Sales: 2, Price: models.MustPrice("10"), Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "10.00", p.Price.String())
}

func TestSQLStoreCreateProductInsertFails(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := s.CreateProduct(context.Background(), models.InsertProduct{Name: "W", Supplier: "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert product")
}

func TestSQLStoreUpdateOnlySuppliedColumns(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET quantity = ? WHERE id = ?")).
		WithArgs(5, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(int64(3), "Widget", "d", "Acme", int64(2), "10.00", int64(5)))
	mock.ExpectCommit()

	qty := 5
	p, err := s.UpdateProduct(context.Background(), 3, models.UpdateProduct{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
}

func TestSQLStoreUpdateSeveralColumns(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET name = ?, supplier = ?, price = ? WHERE id = ?")).
		WithArgs("Gizmo", "Globex", "3.50", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(int64(3), "Gizmo", "d", "Globex", int64(2), "3.50", int64(5)))
	mock.ExpectCommit()

	name, supplier, price := "Gizmo", "Globex", models.MustPrice("3.5")
	p, err := s.UpdateProduct(context.Background(), 3, models.UpdateProduct{Name: &name, Supplier: &supplier, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Gizmo", p.Name)
}

func TestSQLStoreUpdateMissingRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(productCols))
	mock.ExpectRollback()

	qty := 1
	_, err := s.UpdateProduct(context.Background(), 42, models.UpdateProduct{Quantity: &qty})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreEmptyUpdateReadsRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(int64(3), "Widget", "d", "Acme", int64(2), "10.00", int64(5)))

	p, err := s.UpdateProduct(context.Background(), 3, models.UpdateProduct{})
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
}

func TestSQLStoreDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := s.DeleteProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSQLStoreStats(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(DISTINCT BINARY supplier)")).
		WithArgs(models.LowStockThreshold).
		WillReturnRows(sqlmock.NewRows([]string{"total", "sales", "low", "suppliers"}).
			AddRow(int64(3), "23.50", "2", int64(2)))

	stats, err := s.GetProductStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ProductStats{
		TotalProducts: 3,
		TotalSales:    "$23.50",
		LowStock:      2,
		Suppliers:     2,
	}, stats)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}
