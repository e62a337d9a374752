package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventContactReceived      = "contact.received"
	EventNewsletterSubscribed = "newsletter.subscribed"
)

// Event is the envelope published to the broker for the notifier.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// ContactReceived is the payload of EventContactReceived.
type ContactReceived struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewsletterSubscribed is the payload of EventNewsletterSubscribed.
type NewsletterSubscribed struct {
	Email string `json:"email"`
}

func newEvent(eventType string, data any) (Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now(),
	}, nil
}
