package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/example/storefront/internal/catalog"
)

// MemoryStore is an in-memory Store used by tests and local development. It
// upholds the same invariant as the SQL upsert: adds for the same
// (cart, product) pair are atomic under the store mutex.
type MemoryStore struct {
	mu         sync.Mutex
	catalog    catalog.Store
	carts      map[int64]map[int64]*Line // cartID -> productID -> line
	nextCartID int64
	nextItemID int64

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func NewMemoryStore(products catalog.Store) *MemoryStore {
	return &MemoryStore{
		catalog: products,
		carts:   make(map[int64]map[int64]*Line),
	}
}

func (s *MemoryStore) CreateCart(ctx context.Context) (int64, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCartID++
	s.carts[s.nextCartID] = make(map[int64]*Line)
	return s.nextCartID, nil
}

func (s *MemoryStore) GetCart(ctx context.Context, cartID int64) (*View, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	lines := make([]Line, 0, len(s.carts[cartID]))
	for _, line := range s.carts[cartID] {
		lines = append(lines, *line)
	}
	s.mu.Unlock()

	view := EmptyView(cartID)
	for _, line := range lines {
		p, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, ViewLine{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    line.Quantity,
			Type:        p.Type,
		})
	}
	sort.Slice(view.Items, func(i, j int) bool { return view.Items[i].ID < view.Items[j].ID })
	view.Total = computeTotal(view.Items)
	return view, nil
}

func (s *MemoryStore) AddToCart(ctx context.Context, cartID, productID int64, quantity int) (*Line, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, ok := s.carts[cartID]
	if !ok {
		lines = make(map[int64]*Line)
		s.carts[cartID] = lines
	}

	if line, ok := lines[productID]; ok {
		line.Quantity += quantity
		copied := *line
		return &copied, nil
	}

	s.nextItemID++
	line := &Line{ID: s.nextItemID, CartID: cartID, ProductID: productID, Quantity: quantity}
	lines[productID] = line
	copied := *line
	return &copied, nil
}

func (s *MemoryStore) RemoveFromCart(ctx context.Context, cartID, itemID int64) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for productID, line := range s.carts[cartID] {
		if line.ID == itemID {
			delete(s.carts[cartID], productID)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) ClearCart(ctx context.Context, cartID int64) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[cartID]; ok {
		s.carts[cartID] = make(map[int64]*Line)
	}
	return nil
}
