package gateway

import (
	"github.com/google/uuid"

	"github.com/kurakampus/kurakampus-cli/internal/storage"
)

// KeyCSRFToken is the session-scoped storage key for the anti-forgery token.
const KeyCSRFToken = "csrf_token"

// CSRF manages the per-session anti-forgery token attached to state-changing
// requests. The token is generated once, kept in session-scoped storage, and
// rotated on demand.
type CSRF struct {
	store *storage.Store
}

// NewCSRF creates a manager over the given session-scoped store.
func NewCSRF(store *storage.Store) *CSRF {
	return &CSRF{store: store}
}

// Token returns the current anti-forgery token, generating one on first use.
func (c *CSRF) Token() string {
	if token := c.store.GetString(KeyCSRFToken); token != "" {
		return token
	}
	return c.Rotate()
}

// Rotate replaces the anti-forgery token with a fresh value.
func (c *CSRF) Rotate() string {
	token := uuid.NewString()
	c.store.Set(KeyCSRFToken, token)
	return token
}
