package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/storefront/internal/catalog"
)

// PostgresStore implements Store on the carts and cart_items tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateCart(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO carts DEFAULT VALUES RETURNING id`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating cart: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) GetCart(ctx context.Context, cartID int64) (*View, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity, p.type
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("getting cart %d: %w", cartID, err)
	}
	defer rows.Close()

	view := EmptyView(cartID)
	for rows.Next() {
		var item ViewLine
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Price, &item.Quantity, &item.Type); err != nil {
			return nil, fmt.Errorf("scanning cart line: %w", err)
		}
		view.Items = append(view.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cart %d: %w", cartID, err)
	}

	view.Total = computeTotal(view.Items)
	return view, nil
}

// AddToCart is a single conditional upsert keyed on (cart_id, product_id), so
// concurrent adds for the same pair cannot produce duplicate lines or lose an
// increment.
func (s *PostgresStore) AddToCart(ctx context.Context, cartID, productID int64, quantity int) (*Line, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking product %d: %w", productID, err)
	}
	if !exists {
		return nil, catalog.ErrProductNotFound
	}

	// The cart row is created lazily on first add. The session may also hand
	// us an id whose row has since been deleted.
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO carts (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, cartID,
	); err != nil {
		return nil, fmt.Errorf("ensuring cart %d: %w", cartID, err)
	}

	line := &Line{CartID: cartID, ProductID: productID}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity
	`, cartID, productID, quantity).Scan(&line.ID, &line.Quantity)
	if err != nil {
		return nil, fmt.Errorf("adding product %d to cart %d: %w", productID, cartID, err)
	}
	return line, nil
}

func (s *PostgresStore) RemoveFromCart(ctx context.Context, cartID, itemID int64) error {
	// Deleting a line that does not exist is a no-op, not an error.
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID,
	)
	if err != nil {
		return fmt.Errorf("removing item %d from cart %d: %w", itemID, cartID, err)
	}
	return nil
}

func (s *PostgresStore) ClearCart(ctx context.Context, cartID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID,
	)
	if err != nil {
		return fmt.Errorf("clearing cart %d: %w", cartID, err)
	}
	return nil
}
