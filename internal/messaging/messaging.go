package messaging

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicateEmail = errors.New("email already subscribed")

// ContactMessage is one submission of the contact form. Append-only.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Subscription is one newsletter signup. Emails are unique.
type Subscription struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists contact messages and newsletter subscriptions.
type Store interface {
	// CreateContactMessage appends a contact message and returns the stored row.
	CreateContactMessage(ctx context.Context, msg ContactMessage) (*ContactMessage, error)

	// SubscribeNewsletter records a subscription, failing with
	// ErrDuplicateEmail when the address is already subscribed.
	SubscribeNewsletter(ctx context.Context, email string) (*Subscription, error)
}
