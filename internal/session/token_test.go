package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signToken mints a signed access token for tests. The store never verifies
// signatures, but real tokens are signed, so tests use signed ones too.
func signToken(t *testing.T, role string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		Subject: "01HZX4K7Q9TESTUSER",
		Email:   "user@example.com",
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestDecodeClaims(t *testing.T) {
	tokenStr := signToken(t, "admin", time.Now().Add(time.Hour))

	claims, err := DecodeClaims(tokenStr)
	if err != nil {
		t.Fatalf("DecodeClaims failed: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("ExpiresAt = %v", claims.ExpiresAt)
	}
}

func TestDecodeClaimsRejectsGarbage(t *testing.T) {
	if _, err := DecodeClaims("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
	if _, err := DecodeClaims(""); err == nil {
		t.Fatal("expected an error for an empty token")
	}
}

func TestNormalizeTokensNestedShapeWins(t *testing.T) {
	resp := authResponse{
		Tokens: &Tokens{
			AccessToken:  "nested-access",
			RefreshToken: "nested-refresh",
			ExpiresIn:    900,
		},
		AccessToken:  "flat-access",
		RefreshToken: "flat-refresh",
	}

	tokens := resp.normalizeTokens()
	if tokens.AccessToken != "nested-access" {
		t.Errorf("AccessToken = %q, nested shape must win", tokens.AccessToken)
	}
	if tokens.RefreshToken != "nested-refresh" {
		t.Errorf("RefreshToken = %q", tokens.RefreshToken)
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want default Bearer", tokens.TokenType)
	}
	if tokens.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d", tokens.ExpiresIn)
	}
}

func TestNormalizeTokensFlatShape(t *testing.T) {
	resp := authResponse{
		AccessToken:  "flat-access",
		RefreshToken: "flat-refresh",
	}

	tokens := resp.normalizeTokens()
	if tokens.AccessToken != "flat-access" {
		t.Errorf("AccessToken = %q", tokens.AccessToken)
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("TokenType = %q", tokens.TokenType)
	}
	if tokens.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want the 3600 default", tokens.ExpiresIn)
	}
}
