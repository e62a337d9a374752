package session

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store is the generic key-value session backend. Expiry beyond the TTL given
// on Set is the backend's own concern.
type Store interface {
	Get(ctx context.Context, token string) (string, bool, error)
	Set(ctx context.Context, token, value string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// Manager binds an opaque per-visitor cookie token to at most one cart id.
// It is the only component that translates "visitor" into "cart identifier";
// handlers thread the resolved id explicitly from there.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
	log        *logrus.Entry
}

func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		log:        logrus.WithField("component", "session"),
	}
}

// Token returns the visitor's session token, minting one and setting the
// cookie when absent. The minted token is echoed onto the request so repeated
// calls within the same request return the same token.
func (m *Manager) Token(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	token := uuid.New().String()
	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
	r.AddCookie(cookie)
	return token
}

// ResolveCartID returns the cart id bound to this visitor's session, or false
// when none is bound. A stored value that does not parse as an integer is
// corrupt: it is cleared and treated as absent rather than surfaced as an
// error. Backend failures also read as "no cart".
func (m *Manager) ResolveCartID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
	token := m.Token(w, r)

	raw, ok, err := m.store.Get(ctx, token)
	if err != nil {
		m.log.WithError(err).Warn("session backend unavailable, treating cart as absent")
		return 0, false
	}
	if !ok {
		return 0, false
	}

	cartID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.log.WithField("value", raw).Warn("clearing non-numeric cart id from session")
		if err := m.store.Delete(ctx, token); err != nil {
			m.log.WithError(err).Warn("failed to clear corrupt session value")
		}
		return 0, false
	}
	return cartID, true
}

// BindCartID stores the cart id for this visitor's session.
func (m *Manager) BindCartID(ctx context.Context, w http.ResponseWriter, r *http.Request, cartID int64) error {
	token := m.Token(w, r)
	return m.store.Set(ctx, token, strconv.FormatInt(cartID, 10), m.ttl)
}

// ClearCartID drops the binding. Failures are logged, not surfaced; the
// binding will lapse with the session TTL regardless.
func (m *Manager) ClearCartID(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	token := m.Token(w, r)
	if err := m.store.Delete(ctx, token); err != nil {
		m.log.WithError(err).Warn("failed to clear session cart binding")
	}
}
