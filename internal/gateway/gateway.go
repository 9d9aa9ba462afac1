// Package gateway is the single outgoing-request pipeline for the backend
// API. Every request picks up the Bearer token and, for state-mutating
// verbs, the anti-forgery token; every failure is normalized into an
// *apierr.Error before it reaches application code. A 401 triggers one
// shared token-refresh exchange, after which the original request is
// replayed once.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/kurakampus/kurakampus-cli/internal/api"
	"github.com/kurakampus/kurakampus-cli/internal/apierr"
	"github.com/kurakampus/kurakampus-cli/internal/config"
	"github.com/kurakampus/kurakampus-cli/internal/session"
)

// SignInPath is the route unauthenticated sessions are forced to.
const SignInPath = "/auth/signin"

const refreshEndpoint = "/auth/refresh"

var mutatingMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Navigator receives forced navigations when the session becomes
// irrecoverable (no refresh token, or the refresh exchange failed).
type Navigator interface {
	ForceNavigate(path string)
}

// Gateway is the shared request pipeline. One instance is created at startup
// and passed to every API service.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	vault      *session.TokenVault
	csrf       *CSRF
	navigator  Navigator
	logger     zerolog.Logger
	logTraffic bool

	// Collapses concurrent 401 recoveries into one refresh exchange.
	refreshGroup singleflight.Group
}

// New creates a Gateway against the configured API base URL.
func New(cfg *config.Config, vault *session.TokenVault, csrf *CSRF, logger zerolog.Logger) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.API.Timeout},
		vault:      vault,
		csrf:       csrf,
		logger:     logger,
		logTraffic: cfg.Logging.Enabled,
	}
}

// SetNavigator wires the navigation sink for forced sign-in redirects.
func (g *Gateway) SetNavigator(n Navigator) {
	g.navigator = n
}

// SetHTTPClient sets a custom HTTP client
func (g *Gateway) SetHTTPClient(httpClient *http.Client) {
	g.httpClient = httpClient
}

// Get issues a GET request and returns the raw response body.
func (g *Gateway) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return g.do(ctx, http.MethodGet, path, query, "", nil, false)
}

// Post issues a POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return nil, err
	}
	return g.do(ctx, http.MethodPost, path, nil, contentType, payload, false)
}

// Put issues a PUT request with a JSON body.
func (g *Gateway) Put(ctx context.Context, path string, body any) ([]byte, error) {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return nil, err
	}
	return g.do(ctx, http.MethodPut, path, nil, contentType, payload, false)
}

// Patch issues a PATCH request with a JSON body.
func (g *Gateway) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return nil, err
	}
	return g.do(ctx, http.MethodPatch, path, nil, contentType, payload, false)
}

// Delete issues a DELETE request.
func (g *Gateway) Delete(ctx context.Context, path string) ([]byte, error) {
	return g.do(ctx, http.MethodDelete, path, nil, "", nil, false)
}

// Upload issues a multipart POST with a single file part plus extra fields.
func (g *Gateway) Upload(ctx context.Context, path, field, filename string, content io.Reader, extra map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	for k, v := range extra {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return g.do(ctx, http.MethodPost, path, nil, writer.FormDataContentType(), buf.Bytes(), false)
}

func encodeJSON(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request: %w", err)
	}
	return payload, "application/json", nil
}

// do runs one request through the pipeline. retried marks a replay after a
// successful token refresh; a replayed request never triggers recovery again.
func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte, retried bool) ([]byte, error) {
	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, apierr.New(fmt.Sprintf("failed to create request: %v", err), apierr.CodeUnknown, 0)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := g.vault.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if mutatingMethods[method] && g.csrf != nil {
		req.Header.Set("X-CSRF-Token", g.csrf.Token())
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		norm := classifyTransportError(err)
		g.logger.Error().Str("method", method).Str("url", target).Err(err).Msg("Request failed")
		return nil, norm
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Network()
	}

	duration := time.Since(start)
	if g.logTraffic {
		g.logger.Debug().
			Str("method", method).
			Str("url", target).
			Int("status", resp.StatusCode).
			Dur("duration", duration).
			Msg("API response")
	}

	if resp.StatusCode < 400 {
		return body, nil
	}

	norm := normalizeError(resp.StatusCode, body)

	if resp.StatusCode == http.StatusUnauthorized && !retried && path != refreshEndpoint {
		if g.recoverUnauthorized(ctx) {
			return g.do(ctx, method, path, query, contentType, payload, true)
		}
	}

	return nil, norm
}

func classifyTransportError(err error) *apierr.Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apierr.Timeout()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apierr.Timeout()
	}
	return apierr.Network()
}

// normalizeError builds the taxonomy member for a failed response. Statuses
// with a fixed message are rewritten; everything else passes the server
// message through verbatim.
func normalizeError(status int, body []byte) *apierr.Error {
	norm := &apierr.Error{
		Code:       apierr.CodeForStatus(status),
		StatusCode: status,
	}

	var envelope api.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		norm.Message = envelope.Message
		norm.Errors = envelope.Errors
	}

	if fixed := apierr.MessageForStatus(status); fixed != "" {
		norm.Message = fixed
	}
	if norm.Message == "" {
		norm.Message = "An error occurred"
	}
	return norm
}

// recoverUnauthorized runs the 401 recovery procedure: with no refresh token
// the session is cleared and navigation is forced to sign-in; otherwise one
// refresh exchange is attempted, shared across concurrent callers. Reports
// whether the caller should replay its request.
func (g *Gateway) recoverUnauthorized(ctx context.Context) bool {
	refreshToken := g.vault.RefreshToken()
	if refreshToken == "" {
		g.clearAuthAndRedirect()
		return false
	}

	_, err, _ := g.refreshGroup.Do("refresh", func() (any, error) {
		return nil, g.exchangeRefreshToken(ctx, refreshToken)
	})
	if err != nil {
		g.logger.Warn().Err(err).Msg("Token refresh failed, clearing session")
		g.clearAuthAndRedirect()
		return false
	}
	return true
}

// refreshResponse accepts the refresh payload either bare or wrapped in the
// standard data envelope.
type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	Data         *struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    int    `json:"expiresIn"`
	} `json:"data,omitempty"`
}

// exchangeRefreshToken swaps the refresh token for a new pair, bypassing the
// interceptor pipeline so a failing exchange cannot recurse into recovery.
func (g *Gateway) exchangeRefreshToken(ctx context.Context, refreshToken string) error {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+refreshEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("refresh rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}

	access, refresh := parsed.AccessToken, parsed.RefreshToken
	if parsed.Data != nil {
		access, refresh = parsed.Data.AccessToken, parsed.Data.RefreshToken
	}
	if access == "" {
		return errors.New("refresh response contained no access token")
	}

	g.vault.StoreTokens(access, refresh)
	return nil
}

func (g *Gateway) clearAuthAndRedirect() {
	g.vault.Clear()
	if g.navigator != nil {
		g.navigator.ForceNavigate(SignInPath)
	}
}
