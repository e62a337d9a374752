package notification

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/messaging"
)

// Sender is the transactional email surface the notifier needs.
// Satisfied by email.Service.
type Sender interface {
	SendContactAck(to, name, subject string) error
	SendContactNotice(to, name, fromEmail, subject, message string) error
	SendNewsletterWelcome(to string) error
}

// Handler turns broker events into transactional email.
type Handler struct {
	sender       Sender
	supportEmail string
	log          *logrus.Entry
}

func NewHandler(sender Sender, supportEmail string) *Handler {
	return &Handler{
		sender:       sender,
		supportEmail: supportEmail,
		log:          logrus.WithField("component", "notifier"),
	}
}

// HandleEvent processes one event from the broker. Unknown event types are
// skipped so the producer can grow its vocabulary without breaking consumers.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event messaging.Event
	if err := json.Unmarshal(value, &event); err != nil {
		h.log.WithError(err).Error("failed to unmarshal event")
		return err
	}

	switch event.Type {
	case messaging.EventContactReceived:
		return h.handleContactReceived(event)
	case messaging.EventNewsletterSubscribed:
		return h.handleNewsletterSubscribed(event)
	}
	return nil
}

func (h *Handler) handleContactReceived(event messaging.Event) error {
	var e messaging.ContactReceived
	if err := json.Unmarshal(event.Data, &e); err != nil {
		h.log.WithError(err).Error("failed to unmarshal contact payload")
		return err
	}

	h.log.WithField("email", e.Email).Info("sending contact acknowledgement")

	if err := h.sender.SendContactAck(e.Email, e.Name, e.Subject); err != nil {
		h.log.WithError(err).Error("failed to send contact acknowledgement")
		return err
	}
	if h.supportEmail != "" {
		if err := h.sender.SendContactNotice(h.supportEmail, e.Name, e.Email, e.Subject, e.Message); err != nil {
			h.log.WithError(err).Error("failed to forward contact message to support")
			return err
		}
	}
	return nil
}

func (h *Handler) handleNewsletterSubscribed(event messaging.Event) error {
	var e messaging.NewsletterSubscribed
	if err := json.Unmarshal(event.Data, &e); err != nil {
		h.log.WithError(err).Error("failed to unmarshal newsletter payload")
		return err
	}

	h.log.WithField("email", e.Email).Info("sending newsletter welcome")
	if err := h.sender.SendNewsletterWelcome(e.Email); err != nil {
		h.log.WithError(err).Error("failed to send newsletter welcome")
		return err
	}
	return nil
}
