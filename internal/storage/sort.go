package storage

import (
	"strings"

	"github.com/01moynul/inventory-dashboard/internal/models"
)

// SortField is one of the product attributes a listing can be ordered by.
type SortField string

const (
	SortByName        SortField = "name"
	SortByDescription SortField = "description"
	SortBySupplier    SortField = "supplier"
	SortBySales       SortField = "sales"
	SortByPrice       SortField = "price"
	SortByQuantity    SortField = "quantity"
)

type sortSpec struct {
	column string
	// compare returns <0, 0 or >0 like strings.Compare.
	compare func(a, b *models.Product) int
}

var sortFields = map[SortField]sortSpec{
	SortByName: {"name", func(a, b *models.Product) int {
		return compareFold(a.Name, b.Name)
	}},
	SortByDescription: {"description", func(a, b *models.Product) int {
		return compareFold(a.Description, b.Description)
	}},
	SortBySupplier: {"supplier", func(a, b *models.Product) int {
		return compareFold(a.Supplier, b.Supplier)
	}},
	SortBySales: {"sales", func(a, b *models.Product) int {
		return compareInt(a.Sales, b.Sales)
	}},
	SortByPrice: {"price", func(a, b *models.Product) int {
		return a.Price.Cmp(b.Price.Decimal)
	}},
	SortByQuantity: {"quantity", func(a, b *models.Product) int {
		return compareInt(a.Quantity, b.Quantity)
	}},
}

// ParseSortField maps a sortBy query value onto a known field.
func ParseSortField(s string) (SortField, bool) {
	f := SortField(strings.TrimSpace(s))
	_, ok := sortFields[f]
	return f, ok
}

// Column is the SQL column for f. Only known fields reach SQL.
func (f SortField) Column() string {
	return sortFields[f].column
}

// SortFields lists the accepted sortBy values.
func SortFields() []SortField {
	return []SortField{SortByName, SortByDescription, SortBySupplier, SortBySales, SortByPrice, SortByQuantity}
}

// less orders a before b under opts; ties are broken by ascending id.
func (o ListOptions) less(a, b *models.Product) bool {
	c := sortFields[o.SortBy].compare(a, b)
	if o.SortOrder == Desc {
		c = -c
	}
	if c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
