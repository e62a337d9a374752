package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]Product

	// FailWith, when set, is returned by every operation. Lets tests
	// exercise the store-unavailable paths.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[int64]Product)}
}

// Seed inserts or replaces a product.
func (s *MemoryStore) Seed(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]Product, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsVisible {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (s *MemoryStore) SetVisibility(ctx context.Context, id int64, visible bool) (*Product, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p.IsVisible = visible
	s.products[id] = p
	return &p, nil
}
