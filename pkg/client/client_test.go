package client_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/inventory-dashboard/internal/handlers"
	"github.com/01moynul/inventory-dashboard/internal/routes"
	"github.com/01moynul/inventory-dashboard/internal/storage"
	"github.com/01moynul/inventory-dashboard/pkg/client"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := routes.SetupRouter(handlers.New(storage.NewMemoryStore(), nil), routes.Options{})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/", client.WithHTTPClient(srv.Client()))
}

func mustPrice(t *testing.T, s string) client.Price {
	t.Helper()
	p, err := client.ParsePrice(s)
	require.NoError(t, err)
	return p
}

func TestClientProductLifecycle(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	created, err := c.CreateProduct(ctx, client.InsertProduct{
		Name:     "Widget",
		Supplier: "Acme",
		Sales:    2,
		Price:    mustPrice(t, "10"),
		Quantity: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", created.Price.String())

	got, err := c.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	qty := 5
	updated, err := c.UpdateProduct(ctx, created.ID, client.UpdateProduct{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Widget", updated.Name)

	stats, err := c.GetProductStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, client.ProductStats{TotalProducts: 1, TotalSales: "$20.00", LowStock: 1, Suppliers: 1}, stats)

	require.NoError(t, c.DeleteProduct(ctx, created.ID))

	_, err = c.GetProduct(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Product not found", apiErr.Message)
}

func TestClientListAndReports(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	for _, in := range []client.InsertProduct{
		{Name: "Gadget", Supplier: "Acme", Sales: 1, Price: mustPrice(t, "5"), Quantity: 0},
		{Name: "Widget", Supplier: "Globex", Sales: 4, Price: mustPrice(t, "2.25"), Quantity: 12},
	} {
		_, err := c.CreateProduct(ctx, in)
		require.NoError(t, err)
	}

	products, err := c.ListProducts(ctx, client.ListParams{SortBy: "sales", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Name)

	products, err = c.ListProducts(ctx, client.ListParams{Search: "gad"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Gadget", products[0].Name)

	report, err := c.GetInventoryReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.StockStatus.OutOfStock)
	assert.Equal(t, 1, report.StockStatus.InStock)
	require.NotEmpty(t, report.TopProducts)
	assert.Equal(t, "9.00", report.TopProducts[0].Revenue)

	var buf bytes.Buffer
	require.NoError(t, c.ExportProductsCSV(ctx, "wid", &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,description,supplier,sales,price,quantity", lines[0])
	assert.Equal(t, "2,Widget,,Globex,4,2.25,12", lines[1])
}

func TestClientValidationErrors(t *testing.T) {
	c := newClient(t)

	_, err := c.CreateProduct(context.Background(), client.InsertProduct{Name: "Widget", Supplier: "Acme", Quantity: -1})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid product data", apiErr.Message)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "quantity", apiErr.Errors[0].Field)
	assert.Contains(t, apiErr.Error(), "quantity: ")
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).GetProductStats(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}
