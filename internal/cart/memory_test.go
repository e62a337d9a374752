package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/catalog"
)

func newTestStore() (*MemoryStore, *catalog.MemoryStore) {
	products := catalog.NewMemoryStore()
	products.Seed(catalog.Product{ID: 1, Name: "Lavender Oil", Price: decimal.RequireFromString("10.00"), Type: "oil", IsVisible: true})
	products.Seed(catalog.Product{ID: 2, Name: "Rose Candle", Price: decimal.RequireFromString("5.00"), Type: "candle", IsVisible: true})
	products.Seed(catalog.Product{ID: 3, Name: "Amethyst Set", Price: decimal.RequireFromString("19.99"), Type: "crystal", IsVisible: true})
	return NewMemoryStore(products), products
}

// ============================================
// GetCart Tests
// ============================================

func TestStore_GetCart_NoCartRow_ReturnsEmptyView(t *testing.T) {
	store, _ := newTestStore()

	view, err := store.GetCart(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), view.ID)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestStore_GetCart_ExistingCartWithNoLines_ReturnsEmptyView(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)

	view, err := store.GetCart(ctx, cartID)

	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestStore_GetCart_TotalSumsPriceTimesQuantity(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)

	_, err = store.AddToCart(ctx, cartID, 1, 2) // 10.00 x 2
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, cartID, 2, 3) // 5.00 x 3
	require.NoError(t, err)

	view, err := store.GetCart(ctx, cartID)

	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("35.00")), "total was %s", view.Total)
}

func TestStore_GetCart_UsesCurrentProductPrice(t *testing.T) {
	// Totals follow the live catalog price, not the price at add time.
	store, products := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, cartID, 1, 1)
	require.NoError(t, err)

	products.Seed(catalog.Product{ID: 1, Name: "Lavender Oil", Price: decimal.RequireFromString("12.50"), Type: "oil", IsVisible: true})

	view, err := store.GetCart(ctx, cartID)

	require.NoError(t, err)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("12.50")), "total was %s", view.Total)
}

// ============================================
// AddToCart Tests
// ============================================

func TestStore_AddToCart_UnknownProduct(t *testing.T) {
	store, _ := newTestStore()

	line, err := store.AddToCart(context.Background(), 1, 9999, 1)

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Nil(t, line)
}

func TestStore_AddToCart_RepeatedAddIncrementsQuantity(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)

	first, err := store.AddToCart(ctx, cartID, 1, 1)
	require.NoError(t, err)
	second, err := store.AddToCart(ctx, cartID, 1, 1)
	require.NoError(t, err)

	// One line per (cart, product) pair, never a duplicate row.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)

	view, err := store.GetCart(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestStore_AddToCart_CreatesCartRowLazily(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	// No CreateCart call; the id comes from a stale session.
	line, err := store.AddToCart(ctx, 777, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(777), line.CartID)
	assert.Equal(t, 1, line.Quantity)
}

func TestStore_AddToCart_ConcurrentAddsSameProduct(t *testing.T) {
	// N concurrent adds for one (cart, product) pair must end as exactly one
	// line with quantity N.
	store, _ := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := store.AddToCart(ctx, cartID, 1, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := store.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, n, view.Items[0].Quantity)
}

// ============================================
// RemoveFromCart / ClearCart Tests
// ============================================

func TestStore_RemoveFromCart_UnknownItemIsNoOp(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, cartID, 1, 1)
	require.NoError(t, err)

	err = store.RemoveFromCart(ctx, cartID, 9999)

	require.NoError(t, err)
	view, err := store.GetCart(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestStore_ClearCart_RemovesAllLines(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, cartID, 1, 2)
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, cartID, 2, 1)
	require.NoError(t, err)

	err = store.ClearCart(ctx, cartID)

	require.NoError(t, err)
	view, err := store.GetCart(ctx, cartID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

// ============================================
// Scenario Tests
// ============================================

func TestStore_AddReadRemoveScenario(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cartID, err := store.CreateCart(ctx)
	require.NoError(t, err)

	// Add product 3 (19.99) to an empty cart.
	_, err = store.AddToCart(ctx, cartID, 3, 1)
	require.NoError(t, err)

	view, err := store.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("19.99")), "total was %s", view.Total)

	// Add it again: same line, quantity 2.
	line, err := store.AddToCart(ctx, cartID, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	view, err = store.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("39.98")), "total was %s", view.Total)

	// Remove the line: empty cart, total zero.
	err = store.RemoveFromCart(ctx, cartID, line.ID)
	require.NoError(t, err)

	view, err = store.GetCart(ctx, cartID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}
