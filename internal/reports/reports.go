// Package reports derives the inventory report and CSV export from a
// product listing.
package reports

import (
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/01moynul/inventory-dashboard/internal/models"
)

// TopProductsLimit caps the best sellers list.
const TopProductsLimit = 5

// Build aggregates products into an InventoryReport. Suppliers appear in
// the order they are first seen in products.
func Build(products []models.Product) models.InventoryReport {
	report := models.InventoryReport{
		InventoryBySupplier: []models.SupplierInventory{},
		TopProducts:         []models.TopProduct{},
	}

	type supplierTotals struct {
		quantity int
		value    decimal.Decimal
	}
	var order []string
	totals := make(map[string]*supplierTotals)

	for _, p := range products {
		t, ok := totals[p.Supplier]
		if !ok {
			t = &supplierTotals{value: decimal.Zero}
			totals[p.Supplier] = t
			order = append(order, p.Supplier)
		}
		t.quantity += p.Quantity
		t.value = t.value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))

		switch {
		case p.Quantity == 0:
			report.StockStatus.OutOfStock++
		case p.Quantity < models.LowStockThreshold:
			report.StockStatus.LowStock++
		default:
			report.StockStatus.InStock++
		}
	}

	for _, supplier := range order {
		t := totals[supplier]
		report.InventoryBySupplier = append(report.InventoryBySupplier, models.SupplierInventory{
			Supplier: supplier,
			Quantity: t.quantity,
			Value:    t.value.StringFixed(2),
		})
	}

	best := make([]models.Product, len(products))
	copy(best, products)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].Sales > best[j].Sales
	})
	if len(best) > TopProductsLimit {
		best = best[:TopProductsLimit]
	}
	for _, p := range best {
		report.TopProducts = append(report.TopProducts, models.TopProduct{
			ID:      p.ID,
			Name:    p.Name,
			Sales:   p.Sales,
			Revenue: p.Price.Mul(decimal.NewFromInt(int64(p.Sales))).StringFixed(2),
		})
	}

	return report
}

// WriteCSV writes products with a header row, even when there are none.
func WriteCSV(w io.Writer, products []models.Product) error {
	return gocsv.Marshal(&products, w)
}
