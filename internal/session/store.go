// Package session holds the in-memory session state machine and its
// persisted mirror. The store is the reactive façade the rest of the client
// talks to for login, logout, refresh, and identity lookups.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/kurakampus/kurakampus-cli/internal/validate"
)

// State is the session lifecycle state.
type State string

const (
	StateAnonymous      State = "ANONYMOUS"
	StateAuthenticating State = "AUTHENTICATING"
	StateAuthenticated  State = "AUTHENTICATED"
	StateError          State = "ERROR"
)

// API is the slice of the HTTP gateway the session store needs.
type API interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
}

// LoginCredentials is the login payload.
type LoginCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterData is the registration payload.
type RegisterData struct {
	Email                string `json:"email" validate:"required,email"`
	Username             string `json:"username" validate:"required,min=3,max=30"`
	Password             string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
	FirstName            string `json:"firstName" validate:"required"`
	LastName             string `json:"lastName" validate:"required"`
}

// AuthResult is what a successful login or registration yields.
type AuthResult struct {
	User   *User
	Tokens Tokens
}

// Store is the session state machine.
//
// Operations are not mutually exclusive beyond the internal lock held for
// state transitions; overlapping refreshes collapse into one exchange, but a
// refresh racing a logout still resolves last-writer-wins.
type Store struct {
	api    API
	vault  *TokenVault
	logger zerolog.Logger

	mu      sync.Mutex
	state   State
	user    *User
	tokens  *Tokens
	lastErr error

	refreshGroup singleflight.Group
}

// NewStore creates the session store and rehydrates it from the vault: a
// persisted token and identity that still pass the authenticated check start
// the session as AUTHENTICATED.
func NewStore(api API, vault *TokenVault, logger zerolog.Logger) *Store {
	s := &Store{
		api:    api,
		vault:  vault,
		logger: logger,
		state:  StateAnonymous,
	}
	s.initialize()
	return s
}

func (s *Store) initialize() {
	user := s.vault.LoadUser()
	access := s.vault.AccessToken()

	if user != nil && access != "" && tokenAlive(access) {
		s.user = user
		s.tokens = &Tokens{
			AccessToken:  access,
			RefreshToken: s.vault.RefreshToken(),
			TokenType:    "Bearer",
		}
		s.state = StateAuthenticated
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the cached identity, or nil.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Err returns the error recorded by the last failed operation.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError resets the recorded error.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// Login authenticates with the identity endpoint. Bad credentials shapes are
// rejected locally before any network call.
func (s *Store) Login(ctx context.Context, creds LoginCredentials) (*AuthResult, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "/auth/login", creds)
}

// Register creates an account. Same contract as Login with a different
// endpoint and payload shape.
func (s *Store) Register(ctx context.Context, data RegisterData) (*AuthResult, error) {
	if err := validate.Struct(data); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "/auth/register", data)
}

func (s *Store) authenticate(ctx context.Context, endpoint string, payload any) (*AuthResult, error) {
	s.setState(StateAuthenticating)

	body, err := s.api.Post(ctx, endpoint, payload)
	if err != nil {
		s.recordError(err)
		return nil, err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		err = fmt.Errorf("failed to decode auth response: %w", err)
		s.recordError(err)
		return nil, err
	}
	if resp.User == nil {
		err := errors.New("invalid response: user data missing")
		s.recordError(err)
		return nil, err
	}

	tokens := resp.normalizeTokens()

	s.mu.Lock()
	s.user = resp.User
	s.tokens = &tokens
	s.state = StateAuthenticated
	s.lastErr = nil
	s.mu.Unlock()

	if tokens.AccessToken != "" {
		s.vault.StoreTokens(tokens.AccessToken, tokens.RefreshToken)
	} else {
		s.logger.Warn().Msg("No access token received from backend")
	}
	s.vault.StoreUser(resp.User)

	return &AuthResult{User: resp.User, Tokens: tokens}, nil
}

// Logout invalidates the session server-side on a best-effort basis and
// clears local state unconditionally. Calling it on an already-anonymous
// session is a no-op with the same final state.
func (s *Store) Logout(ctx context.Context) {
	if _, err := s.api.Post(ctx, "/auth/logout", nil); err != nil {
		s.logger.Warn().Err(err).Msg("Server-side logout failed, clearing local session anyway")
	}

	s.vault.Clear()

	s.mu.Lock()
	s.user = nil
	s.tokens = nil
	s.state = StateAnonymous
	s.lastErr = nil
	s.mu.Unlock()
}

// Refresh exchanges the stored refresh token for a new pair. Concurrent
// callers share one in-flight exchange. A failed exchange is terminal: all
// session state is cleared and the caller must re-authenticate.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return nil, s.refreshOnce(ctx)
	})
	return err
}

func (s *Store) refreshOnce(ctx context.Context) error {
	refreshToken := s.vault.RefreshToken()
	if refreshToken == "" {
		err := errors.New("no refresh token available")
		s.clearSession(err)
		return err
	}

	body, err := s.api.Post(ctx, "/auth/refresh", map[string]string{"refreshToken": refreshToken})
	if err != nil {
		s.clearSession(err)
		return err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		err = fmt.Errorf("failed to decode refresh response: %w", err)
		s.clearSession(err)
		return err
	}

	tokens := resp.normalizeTokens()
	if tokens.AccessToken == "" {
		err := errors.New("refresh response contained no access token")
		s.clearSession(err)
		return err
	}

	s.vault.StoreTokens(tokens.AccessToken, tokens.RefreshToken)

	s.mu.Lock()
	s.tokens = &tokens
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

func (s *Store) clearSession(cause error) {
	s.vault.Clear()
	s.mu.Lock()
	s.user = nil
	s.tokens = nil
	s.state = StateAnonymous
	s.lastErr = cause
	s.mu.Unlock()
}

// FetchUser re-synchronizes the identity record from the server without
// touching tokens.
func (s *Store) FetchUser(ctx context.Context) (*User, error) {
	body, err := s.api.Get(ctx, "/auth/me", nil)
	if err != nil {
		s.recordError(err)
		return nil, err
	}

	// The endpoint wraps the identity in a user field; tolerate a bare
	// identity object as well.
	var wrapped struct {
		User *User `json:"user"`
	}
	user := &User{}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.User != nil {
		user = wrapped.User
	} else if err := json.Unmarshal(body, user); err != nil {
		err = fmt.Errorf("failed to decode user response: %w", err)
		s.recordError(err)
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.lastErr = nil
	s.mu.Unlock()
	s.vault.StoreUser(user)

	return user, nil
}

// UpdateUser replaces the cached identity and its persisted copy.
func (s *Store) UpdateUser(user *User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.vault.StoreUser(user)
}

// IsAuthenticated reports whether a token is present and, when its claims
// decode, not yet expired. An expired token reports false even while it is
// still sitting in storage.
func (s *Store) IsAuthenticated() bool {
	access := s.vault.AccessToken()
	if access == "" {
		return false
	}
	return tokenAlive(access)
}

func tokenAlive(token string) bool {
	claims, err := DecodeClaims(token)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.After(time.Now())
}

// HasRole reports whether the cached identity carries the given role.
// Pure predicate, no server round-trip.
func (s *Store) HasRole(role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == role
}

// HasAnyRole reports whether the cached identity carries any of the roles.
func (s *Store) HasAnyRole(roles ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	for _, role := range roles {
		if s.user.Role == role {
			return true
		}
	}
	return false
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Store) recordError(err error) {
	s.mu.Lock()
	s.state = StateError
	s.lastErr = err
	s.mu.Unlock()
}
