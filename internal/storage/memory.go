package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/01moynul/inventory-dashboard/internal/models"
)

// MemoryStore keeps products in process memory. It backs local development
// and tests; data is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	nextID   int64
}

// NewMemoryStore returns an empty store whose first id is 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]models.Product),
		nextID:   1,
	}
}

func (s *MemoryStore) ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.normalized()
	needle := strings.ToLower(opts.Search)

	s.mu.RLock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return opts.less(&out[i], &out[j])
	})
	return out, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, in models.InsertProduct) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := in.NewProduct()
	p.ID = s.nextID
	s.nextID++
	s.products[p.ID] = p
	return p, nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id int64, up models.UpdateProduct) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	up.Apply(&p)
	s.products[id] = p
	return p, nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *MemoryStore) GetProductStats(ctx context.Context) (models.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		return models.ProductStats{}, err
	}
	s.mu.RLock()
	all := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, p)
	}
	s.mu.RUnlock()

	return ComputeStats(all), nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

// ComputeStats derives the dashboard aggregates from a full scan.
func ComputeStats(products []models.Product) models.ProductStats {
	totalSales := decimal.Zero
	lowStock := 0
	suppliers := make(map[string]struct{})

	for _, p := range products {
		totalSales = totalSales.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Sales))))
		if p.Quantity < models.LowStockThreshold {
			lowStock++
		}
		suppliers[p.Supplier] = struct{}{}
	}

	return models.NewProductStats(len(products), totalSales, lowStock, len(suppliers))
}
