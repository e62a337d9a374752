package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Line is one (cart, product) row. At most one line exists per pair; repeated
// adds increment the quantity instead of inserting a duplicate.
type Line struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cartId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ViewLine is a cart line enriched with the current product data.
type ViewLine struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Type        string          `json:"type"`
}

// View is the read projection of a cart returned to clients.
//
// Total is computed from the current product price at read time, not a price
// captured when the line was added. Totals therefore shift if prices change
// while a cart is open; that is a documented property of this storefront.
type View struct {
	ID    int64           `json:"id"`
	Items []ViewLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// EmptyView is what a cart with no rows reads as. "No cart yet" is a normal
// outcome, never an error.
func EmptyView(cartID int64) *View {
	return &View{ID: cartID, Items: []ViewLine{}, Total: decimal.Zero}
}

func computeTotal(items []ViewLine) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Store owns the cart and cart-line lifecycle.
type Store interface {
	// CreateCart allocates a cart identifier from the store. Identifiers
	// come from the database sequence so two visitors can never collide.
	CreateCart(ctx context.Context) (int64, error)

	// GetCart returns the view for cartID, synthesizing an empty view when
	// no rows exist.
	GetCart(ctx context.Context, cartID int64) (*View, error)

	// AddToCart inserts a line or atomically increments the quantity of an
	// existing (cart, product) line. Fails with catalog.ErrProductNotFound
	// when the product does not exist.
	AddToCart(ctx context.Context, cartID, productID int64, quantity int) (*Line, error)

	// RemoveFromCart deletes one line. Unknown item ids are a silent no-op.
	RemoveFromCart(ctx context.Context, cartID, itemID int64) error

	// ClearCart deletes all lines but keeps the cart row.
	ClearCart(ctx context.Context, cartID int64) error
}
