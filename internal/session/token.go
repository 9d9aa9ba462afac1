package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys for the persisted slice of session state. The gateway and the
// session store share one token vault so both always see the same pair.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Tokens is the canonical session token pair.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

// Claims are the advisory fields decoded from the access token payload.
//
// The payload segment is parsed without signature verification; claims are a
// display and UX convenience only and must never gate an authorization-
// sensitive action on their own. The server re-validates every request.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeClaims extracts the payload of a dot-delimited token string without
// verifying its signature.
func DecodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

// authResponse accepts both auth payload shapes the backend is known to
// return: a nested tokens object or flat accessToken/refreshToken fields.
type authResponse struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message,omitempty"`
	User         *User   `json:"user"`
	Tokens       *Tokens `json:"tokens,omitempty"`
	AccessToken  string  `json:"accessToken,omitempty"`
	RefreshToken string  `json:"refreshToken,omitempty"`
	ExpiresIn    int     `json:"expiresIn,omitempty"`
}

// normalizeTokens collapses the two accepted shapes into one canonical
// Tokens value. The nested tokens object wins when both are present.
func (r *authResponse) normalizeTokens() Tokens {
	if r.Tokens != nil {
		t := *r.Tokens
		if t.TokenType == "" {
			t.TokenType = "Bearer"
		}
		return t
	}

	expiresIn := r.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}
	return Tokens{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}
}
