package session

import "github.com/kurakampus/kurakampus-cli/internal/storage"

// TokenVault is the persisted slice of session state. Tokens live in the
// secure store (obfuscated file or OS keyring); the denormalized identity
// copy lives in the plain local store. The session store and the HTTP
// gateway share one vault, so an in-place refresh is immediately visible to
// outgoing requests.
type TokenVault struct {
	secure *storage.Store
	local  *storage.Store
}

// NewTokenVault wraps the secure (token) and local (identity) stores.
func NewTokenVault(secure, local *storage.Store) *TokenVault {
	return &TokenVault{secure: secure, local: local}
}

// AccessToken returns the persisted access token, or "".
func (v *TokenVault) AccessToken() string {
	return v.secure.GetString(KeyAccessToken)
}

// RefreshToken returns the persisted refresh token, or "".
func (v *TokenVault) RefreshToken() string {
	return v.secure.GetString(KeyRefreshToken)
}

// StoreTokens persists a token pair. Only the pair is mirrored to storage;
// token type and expiry live in memory on the session store. The two writes
// are not atomic as a pair.
func (v *TokenVault) StoreTokens(access, refresh string) {
	v.secure.Set(KeyAccessToken, access)
	if refresh != "" {
		v.secure.Set(KeyRefreshToken, refresh)
	}
}

// StoreUser persists the denormalized identity copy.
func (v *TokenVault) StoreUser(user *User) {
	v.local.Set(KeyUser, user)
}

// LoadUser reads the persisted identity copy, or nil.
func (v *TokenVault) LoadUser() *User {
	var user User
	if !v.local.Get(KeyUser, &user) {
		return nil
	}
	return &user
}

// Clear removes every persisted piece of auth state.
func (v *TokenVault) Clear() {
	v.secure.Remove(KeyAccessToken)
	v.secure.Remove(KeyRefreshToken)
	v.local.Remove(KeyUser)
}
