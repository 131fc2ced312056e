package models

import (
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a product counts as low stock.
const LowStockThreshold = 10

// Product is the model for the 'products' table.
type Product struct {
	ID          int64  `json:"id" db:"id" csv:"id"`
	Name        string `json:"name" db:"name" csv:"name"`
	Description string `json:"description" db:"description" csv:"description"`
	Supplier    string `json:"supplier" db:"supplier" csv:"supplier"`

	// --- Sales & Stock ---
	Sales    int   `json:"sales" db:"sales" csv:"sales"`
	Price    Price `json:"price" db:"price" csv:"price"`
	Quantity int   `json:"quantity" db:"quantity" csv:"quantity"`
}

// InsertProduct is the accepted shape for POST /api/products.
// Use ParseInsertProduct to build one from a request body.
type InsertProduct struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Supplier    string `json:"supplier" validate:"required"`
	Sales       int    `json:"sales" validate:"gte=0,lte=2147483647"`
	Price       Price  `json:"price"`
	Quantity    int    `json:"quantity" validate:"gte=0,lte=2147483647"`
}

// UpdateProduct is the accepted shape for PUT /api/products/:id.
// Nil fields are left unchanged on the stored row.
type UpdateProduct struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Supplier    *string `json:"supplier,omitempty" validate:"omitempty,min=1"`
	Sales       *int    `json:"sales,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
	Price       *Price  `json:"price,omitempty"`
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u UpdateProduct) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Supplier == nil &&
		u.Sales == nil && u.Price == nil && u.Quantity == nil
}

// Apply merges the supplied fields into p.
func (u UpdateProduct) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Supplier != nil {
		p.Supplier = *u.Supplier
	}
	if u.Sales != nil {
		p.Sales = *u.Sales
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Quantity != nil {
		p.Quantity = *u.Quantity
	}
}

// NewProduct builds the row that an insert will persist, minus the ID.
func (in InsertProduct) NewProduct() Product {
	return Product{
		Name:        in.Name,
		Description: in.Description,
		Supplier:    in.Supplier,
		Sales:       in.Sales,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
}

// ProductStats is the payload of GET /api/products/stats. It is never stored.
type ProductStats struct {
	TotalProducts int    `json:"totalProducts"`
	TotalSales    string `json:"totalSales"`
	LowStock      int    `json:"lowStock"`
	Suppliers     int    `json:"suppliers"`
}

// NewProductStats formats the raw aggregates into the wire shape.
func NewProductStats(totalProducts int, totalSales decimal.Decimal, lowStock, suppliers int) ProductStats {
	return ProductStats{
		TotalProducts: totalProducts,
		TotalSales:    FormatCurrency(totalSales),
		LowStock:      lowStock,
		Suppliers:     suppliers,
	}
}

// FormatCurrency renders an amount as "$1234.50".
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
