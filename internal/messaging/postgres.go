package messaging

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore implements Store on the contact_messages and
// newsletter_subscriptions tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateContactMessage(ctx context.Context, msg ContactMessage) (*ContactMessage, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, msg.Name, msg.Email, msg.Subject, msg.Message).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("storing contact message: %w", err)
	}
	return &msg, nil
}

func (s *PostgresStore) SubscribeNewsletter(ctx context.Context, email string) (*Subscription, error) {
	sub := Subscription{Email: email}
	// The conflict target makes the duplicate check atomic against
	// concurrent signups for the same address.
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO newsletter_subscriptions (email)
		VALUES ($1)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at
	`, email).Scan(&sub.ID, &sub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("storing subscription: %w", err)
	}
	return &sub, nil
}
