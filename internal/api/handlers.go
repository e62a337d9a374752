package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/messaging"
	"github.com/example/storefront/internal/session"
)

// PaymentClient creates payment intents. Satisfied by payment.Client.
type PaymentClient interface {
	CreateIntent(ctx context.Context, amountCents, cartID int64) (string, error)
}

type Handlers struct {
	products catalog.Store
	carts    cart.Store
	sessions *session.Manager
	messages *messaging.Service
	payments PaymentClient
	log      *logrus.Entry
}

func NewHandlers(products catalog.Store, carts cart.Store, sessions *session.Manager, messages *messaging.Service, payments PaymentClient) *Handlers {
	return &Handlers{
		products: products,
		carts:    carts,
		sessions: sessions,
		messages: messages,
		payments: payments,
		log:      logrus.WithField("component", "handlers"),
	}
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.log.WithError(err).Error("error getting products")
		respondMessage(w, http.StatusInternalServerError, "Failed to get products")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(extractPathParam(r.URL.Path, "/api/products/"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("error getting product")
		respondMessage(w, http.StatusInternalServerError, "Failed to get product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	// The storefront polls this endpoint while browsing; never let a cache
	// hand back a stale cart.
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	ctx := r.Context()
	cartID, ok := h.sessions.ResolveCartID(ctx, w, r)
	if !ok {
		// No cart yet is a normal state, not an error.
		respondJSON(w, http.StatusOK, cart.EmptyView(0))
		return
	}

	view, err := h.carts.GetCart(ctx, cartID)
	if err != nil {
		// Deliberate UX tradeoff: a transient store failure must not break
		// page rendering, so the cart read degrades to an empty cart
		// instead of surfacing a 500. The binding is dropped so the next
		// request starts clean.
		h.log.WithError(err).Error("error getting cart, degrading to empty view")
		h.sessions.ClearCartID(ctx, w, r)
		respondJSON(w, http.StatusOK, cart.EmptyView(0))
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type addToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,gt=0"`
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := r.Context()

	// Validate the product before allocating a cart so a bad request never
	// leaves an empty cart bound to the session.
	if _, err := h.products.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		h.log.WithError(err).Error("error checking product")
		respondMessage(w, http.StatusInternalServerError, "Could not add to cart")
		return
	}

	cartID, ok := h.sessions.ResolveCartID(ctx, w, r)
	if !ok {
		newID, err := h.carts.CreateCart(ctx)
		if err != nil {
			h.log.WithError(err).Error("error creating cart")
			respondMessage(w, http.StatusInternalServerError, "Could not add to cart")
			return
		}
		cartID = newID
		if err := h.sessions.BindCartID(ctx, w, r, cartID); err != nil {
			// The line still lands in the cart; only continuity across
			// requests is lost until the visitor adds again.
			h.log.WithError(err).Warn("failed to bind new cart to session")
		}
	}

	line, err := h.carts.AddToCart(ctx, cartID, req.ProductID, req.Quantity)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("error adding to cart")
		respondMessage(w, http.StatusInternalServerError, "Could not add to cart")
		return
	}
	respondJSON(w, http.StatusCreated, line)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(extractPathParam(r.URL.Path, "/api/cart/remove/"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	ctx := r.Context()
	cartID, ok := h.sessions.ResolveCartID(ctx, w, r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Cart not found")
		return
	}

	if err := h.carts.RemoveFromCart(ctx, cartID, itemID); err != nil {
		h.log.WithError(err).Error("error removing from cart")
		respondMessage(w, http.StatusInternalServerError, "Could not remove from cart")
		return
	}
	respondMessage(w, http.StatusOK, "Item removed from cart")
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID, ok := h.sessions.ResolveCartID(ctx, w, r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Cart not found")
		return
	}

	if err := h.carts.ClearCart(ctx, cartID); err != nil {
		h.log.WithError(err).Error("error clearing cart")
		respondMessage(w, http.StatusInternalServerError, "Could not clear cart")
		return
	}
	respondMessage(w, http.StatusOK, "Cart cleared")
}

// Helper functions

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
