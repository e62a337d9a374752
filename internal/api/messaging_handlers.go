package api

import (
	"errors"
	"net/http"

	"github.com/example/storefront/internal/messaging"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (h *Handlers) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := h.messages.CreateContactMessage(r.Context(), messaging.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.log.WithError(err).Error("error creating contact message")
		respondMessage(w, http.StatusInternalServerError, "Failed to store message")
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handlers) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sub, err := h.messages.SubscribeNewsletter(r.Context(), req.Email)
	if errors.Is(err, messaging.ErrDuplicateEmail) {
		respondMessage(w, http.StatusBadRequest, "Email already subscribed")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("error creating newsletter subscription")
		respondMessage(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}
