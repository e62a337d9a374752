package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/catalog"
)

// AdminHandlers serves the admin surface: login and product visibility.
type AdminHandlers struct {
	jwtService        *auth.JWTService
	adminEmail        string
	adminPasswordHash string
	products          catalog.Store
	log               *logrus.Entry
}

func NewAdminHandlers(jwtService *auth.JWTService, adminEmail, adminPasswordHash string, products catalog.Store) *AdminHandlers {
	return &AdminHandlers{
		jwtService:        jwtService,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		products:          products,
		log:               logrus.WithField("component", "admin"),
	}
}

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Email != h.adminEmail || !auth.CheckPassword(req.Password, h.adminPasswordHash) {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(req.Email, "admin")
	if err != nil {
		h.log.WithError(err).Error("error generating admin token")
		respondMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"expiresAt": expiresAt,
	})
}

type visibilityRequest struct {
	IsVisible *bool `json:"isVisible"`
}

func (h *AdminHandlers) UpdateProductVisibility(w http.ResponseWriter, r *http.Request) {
	idPart := strings.TrimSuffix(extractPathParam(r.URL.Path, "/api/products/"), "/visibility")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsVisible == nil {
		respondMessage(w, http.StatusBadRequest, "Invalid 'isVisible' value. Must be true or false.")
		return
	}

	product, err := h.products.SetVisibility(r.Context(), id, *req.IsVisible)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("error updating product visibility")
		respondMessage(w, http.StatusInternalServerError, "Failed to update product visibility")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Product %d visibility updated to %t", id, *req.IsVisible),
		"product": product,
	})
}
