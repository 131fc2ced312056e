// Package storage persists products and computes their aggregates.
package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/01moynul/inventory-dashboard/internal/models"
)

// ErrNotFound is returned when no product has the requested id.
var ErrNotFound = errors.New("product not found")

// Store is the persistence layer behind the HTTP API.
type Store interface {
	ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, in models.InsertProduct) (models.Product, error)
	UpdateProduct(ctx context.Context, id int64, up models.UpdateProduct) (models.Product, error)
	// DeleteProduct reports whether a row existed and was removed.
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	GetProductStats(ctx context.Context) (models.ProductStats, error)
	Ping(ctx context.Context) error
	Close() error
}

// SortOrder is the direction of a listing.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder returns Desc only for "desc"; anything else is Asc.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// ListOptions filters and orders ListProducts.
type ListOptions struct {
	Search    string
	SortBy    SortField
	SortOrder SortOrder
}

// NewListOptions builds options from raw query parameters. Unknown sort
// fields fall back to the default ordering.
func NewListOptions(search, sortBy, sortOrder string) ListOptions {
	field, ok := ParseSortField(sortBy)
	if !ok {
		return ListOptions{Search: search, SortBy: SortByName, SortOrder: Asc}
	}
	return ListOptions{Search: search, SortBy: field, SortOrder: ParseSortOrder(sortOrder)}
}

// normalized fills in the default ordering for a zero value.
func (o ListOptions) normalized() ListOptions {
	if _, ok := sortFields[o.SortBy]; !ok {
		o.SortBy = SortByName
		o.SortOrder = Asc
	}
	if o.SortOrder != Desc {
		o.SortOrder = Asc
	}
	return o
}
