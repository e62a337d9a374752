package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("0123456789abcdef0123456789abcdef", 15*time.Minute)
}

func TestRequireAdmin_ValidToken_Header(t *testing.T) {
	jwtService := newTestJWTService()
	requireAdmin := RequireAdmin(jwtService)

	token, _, err := jwtService.GenerateToken("admin@example.com", "admin")
	require.NoError(t, err)

	var capturedClaims *auth.Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if ok {
			capturedClaims = claims
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/products/1/visibility", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	requireAdmin(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, capturedClaims)
	assert.Equal(t, "admin@example.com", capturedClaims.Email)
	assert.Equal(t, "admin", capturedClaims.Role)
}

func TestRequireAdmin_ValidToken_Cookie(t *testing.T) {
	jwtService := newTestJWTService()
	requireAdmin := RequireAdmin(jwtService)

	token, _, err := jwtService.GenerateToken("admin@example.com", "admin")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/products/1/visibility", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
	rec := httptest.NewRecorder()

	requireAdmin(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_NoToken_Returns401(t *testing.T) {
	requireAdmin := RequireAdmin(newTestJWTService())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodPut, "/api/products/1/visibility", nil)
	rec := httptest.NewRecorder()

	requireAdmin(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_InvalidToken_Returns401(t *testing.T) {
	requireAdmin := RequireAdmin(newTestJWTService())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodPut, "/api/products/1/visibility", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	requireAdmin(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_NonAdminRole_Returns403(t *testing.T) {
	jwtService := newTestJWTService()
	requireAdmin := RequireAdmin(jwtService)

	token, _, err := jwtService.GenerateToken("visitor@example.com", "customer")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodPut, "/api/products/1/visibility", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	requireAdmin(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExtractToken_PrefersCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-cookie", ExtractToken(req))
}

func TestExtractToken_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "", ExtractToken(req))
}
