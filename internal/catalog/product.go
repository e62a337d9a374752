package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. The storefront never mutates products except for
// the admin visibility toggle; seeding and editing happen outside this service.
type Product struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Type          string              `json:"type"`
	ImageURL      string              `json:"imageUrl"`
	IsVisible     bool                `json:"isVisible"`
}

// Store is the read-mostly product catalog.
type Store interface {
	// ListProducts returns all visible products.
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct returns ErrProductNotFound for a missing id. A missing
	// product is an outcome, not a store failure.
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// SetVisibility toggles whether a product appears in listings.
	SetVisibility(ctx context.Context, id int64, visible bool) (*Product, error)
}
