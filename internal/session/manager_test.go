package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*Manager, *MemoryStore) {
	store := NewMemoryStore()
	return NewManager(store, "storefront_session", 24*time.Hour, false), store
}

func newRequest() (*httptest.ResponseRecorder, *http.Request) {
	return httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cart", nil)
}

func TestManager_Token_MintsOncePerRequest(t *testing.T) {
	m, _ := newTestManager()
	w, r := newRequest()

	first := m.Token(w, r)
	second := m.Token(w, r)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "storefront_session", cookies[0].Name)
	assert.Equal(t, first, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestManager_Token_ReusesExistingCookie(t *testing.T) {
	m, _ := newTestManager()
	w, r := newRequest()
	r.AddCookie(&http.Cookie{Name: "storefront_session", Value: "visitor-1"})

	token := m.Token(w, r)

	assert.Equal(t, "visitor-1", token)
	assert.Empty(t, w.Result().Cookies(), "no new cookie for a returning visitor")
}

func TestManager_ResolveCartID_AbsentBinding(t *testing.T) {
	m, _ := newTestManager()
	w, r := newRequest()

	cartID, ok := m.ResolveCartID(context.Background(), w, r)

	assert.False(t, ok)
	assert.Zero(t, cartID)
}

func TestManager_BindThenResolve(t *testing.T) {
	m, _ := newTestManager()
	w, r := newRequest()
	ctx := context.Background()

	require.NoError(t, m.BindCartID(ctx, w, r, 1234))

	cartID, ok := m.ResolveCartID(ctx, w, r)

	assert.True(t, ok)
	assert.Equal(t, int64(1234), cartID)
}

func TestManager_ResolveCartID_CorruptValueSelfHeals(t *testing.T) {
	m, store := newTestManager()
	w, r := newRequest()
	r.AddCookie(&http.Cookie{Name: "storefront_session", Value: "visitor-1"})
	store.values["visitor-1"] = "not-a-number"

	cartID, ok := m.ResolveCartID(context.Background(), w, r)

	assert.False(t, ok)
	assert.Zero(t, cartID)

	// The corrupt value is cleared, not propagated.
	_, present, err := store.Get(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestManager_ResolveCartID_BackendFailureReadsAsAbsent(t *testing.T) {
	m, store := newTestManager()
	w, r := newRequest()
	store.FailWith = errors.New("backend down")

	cartID, ok := m.ResolveCartID(context.Background(), w, r)

	assert.False(t, ok)
	assert.Zero(t, cartID)
}

func TestManager_ClearCartID(t *testing.T) {
	m, _ := newTestManager()
	w, r := newRequest()
	ctx := context.Background()

	require.NoError(t, m.BindCartID(ctx, w, r, 55))
	m.ClearCartID(ctx, w, r)

	_, ok := m.ResolveCartID(ctx, w, r)
	assert.False(t, ok)
}
