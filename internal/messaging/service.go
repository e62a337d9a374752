package messaging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Publisher publishes events to the broker. Satisfied by kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Service persists messaging writes and publishes the matching event for the
// notifier. Publishing is best-effort: a broker outage must not fail the
// caller's request, so failures are logged and dropped.
type Service struct {
	store     Store
	publisher Publisher
	log       *logrus.Entry
}

func NewService(store Store, publisher Publisher) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		log:       logrus.WithField("component", "messaging"),
	}
}

func (s *Service) CreateContactMessage(ctx context.Context, msg ContactMessage) (*ContactMessage, error) {
	stored, err := s.store.CreateContactMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, stored.Email, EventContactReceived, ContactReceived{
		Name:    stored.Name,
		Email:   stored.Email,
		Subject: stored.Subject,
		Message: stored.Message,
	})
	return stored, nil
}

func (s *Service) SubscribeNewsletter(ctx context.Context, email string) (*Subscription, error) {
	sub, err := s.store.SubscribeNewsletter(ctx, email)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, sub.Email, EventNewsletterSubscribed, NewsletterSubscribed{Email: sub.Email})
	return sub, nil
}

func (s *Service) publish(ctx context.Context, key, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	event, err := newEvent(eventType, data)
	if err != nil {
		s.log.WithError(err).Error("failed to build event")
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.log.WithError(err).WithField("type", eventType).Warn("failed to publish event")
	}
}
