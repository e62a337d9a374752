package api

import (
	"math"
	"net/http"
)

type paymentIntentRequest struct {
	// Amount is in cents. Clients may send fractional values; they are
	// rounded before hitting the processor.
	Amount float64 `json:"amount"`
	CartID int64   `json:"cartId"`
}

func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		respondMessage(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	clientSecret, err := h.payments.CreateIntent(r.Context(), int64(math.Round(req.Amount)), req.CartID)
	if err != nil {
		h.log.WithError(err).Error("payment intent error")
		respondMessage(w, http.StatusInternalServerError, "Error creating payment intent")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}
