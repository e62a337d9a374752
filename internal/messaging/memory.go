package messaging

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu            sync.Mutex
	messages      []ContactMessage
	subscriptions map[string]Subscription
	nextID        int64

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subscriptions: make(map[string]Subscription)}
}

func (s *MemoryStore) CreateContactMessage(ctx context.Context, msg ContactMessage) (*ContactMessage, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	msg.ID = s.nextID
	msg.CreatedAt = time.Now()
	s.messages = append(s.messages, msg)
	return &msg, nil
}

func (s *MemoryStore) SubscribeNewsletter(ctx context.Context, email string) (*Subscription, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscriptions[email]; ok {
		return nil, ErrDuplicateEmail
	}

	s.nextID++
	sub := Subscription{ID: s.nextID, Email: email, CreatedAt: time.Now()}
	s.subscriptions[email] = sub
	return &sub, nil
}

// Messages returns the stored contact messages, oldest first.
func (s *MemoryStore) Messages() []ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ContactMessage(nil), s.messages...)
}
