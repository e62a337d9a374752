package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore implements Store on the products table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = "id, name, description, price, original_price, type, image_url, is_visible"

func (s *PostgresStore) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE is_visible ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows.Scan, &p); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := scanProduct(s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE id = $1
	`, id).Scan, &p)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return &p, nil
}

func (s *PostgresStore) SetVisibility(ctx context.Context, id int64, visible bool) (*Product, error) {
	var p Product
	err := scanProduct(s.db.QueryRowContext(ctx, `
		UPDATE products SET is_visible = $2 WHERE id = $1
		RETURNING `+productColumns+`
	`, id, visible).Scan, &p)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating product %d visibility: %w", id, err)
	}
	return &p, nil
}

func scanProduct(scan func(dest ...any) error, p *Product) error {
	return scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Type, &p.ImageURL, &p.IsVisible)
}
