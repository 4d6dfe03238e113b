package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryRepository keeps the catalog in process memory. It backs the mock
// backend, so nothing survives a restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

func NewMemoryRepository(seed ...Product) *MemoryRepository {
	r := &MemoryRepository{products: make(map[int64]Product, len(seed))}
	for _, p := range seed {
		r.products[p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *MemoryRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepository) Create(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Update(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return Product{}, ErrNotFound
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// SeedProducts is the demo catalog the mock backend starts with.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Premium Wireless Headphones",
			Description: "High-quality wireless headphones with noise cancellation",
			Price:       decimal.RequireFromString("199.99"),
			Stock:       50,
			Category:    "Electronics",
		},
		{
			ID:          2,
			Name:        "Smart Fitness Watch",
			Description: "Track your fitness goals with this advanced smartwatch",
			Price:       decimal.RequireFromString("149.99"),
			Stock:       30,
			Category:    "Electronics",
		},
		{
			ID:          3,
			Name:        "Organic Cotton T-Shirt",
			Description: "Comfortable and eco-friendly cotton t-shirt",
			Price:       decimal.RequireFromString("29.99"),
			Stock:       100,
			Category:    "Clothing",
		},
		{
			ID:          4,
			Name:        "Stainless Steel Water Bottle",
			Description: "Keeps drinks cold for 24 hours",
			Price:       decimal.RequireFromString("24.50"),
			Stock:       15,
			Category:    "Home",
		},
	}
}
