package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kurakampus/kurakampus-cli/internal/config"
	"github.com/kurakampus/kurakampus-cli/internal/mockapi"
	"github.com/kurakampus/kurakampus-cli/internal/orgs"
	"github.com/kurakampus/kurakampus-cli/internal/session"
	"github.com/kurakampus/kurakampus-cli/internal/users"
)

// newTestApp wires a full App against a seeded mock backend.
func newTestApp(t *testing.T) (*App, *httptest.Server) {
	t.Helper()

	srv, err := mockapi.New(mockapi.Options{
		DatabasePath: filepath.Join(t.TempDir(), "api.db"),
		JWTSecret:    "test-secret",
		Seed:         true,
	}, zerolog.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL: ts.URL + "/api",
			Timeout: 5 * time.Second,
		},
		Storage: config.StorageConfig{
			Prefix: "kurakampus_",
			Dir:    t.TempDir(),
		},
		Logging: config.LoggingConfig{Level: "error"},
		App:     config.AppConfig{Name: "KuraKampus", Version: "test"},
	}

	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	return a, ts
}

func login(t *testing.T, a *App, email, password string) {
	t.Helper()
	_, err := a.Session.Login(context.Background(), session.LoginCredentials{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
}

func TestLoginFlowEndToEnd(t *testing.T) {
	a, _ := newTestApp(t)

	require.Equal(t, session.StateAnonymous, a.Session.State())
	login(t, a, "admin@kurakampus.id", "admin12345")

	require.Equal(t, session.StateAuthenticated, a.Session.State())
	require.True(t, a.Session.IsAuthenticated())
	require.NotEmpty(t, a.Vault.AccessToken())
	require.NotEmpty(t, a.Vault.RefreshToken())

	user := a.Session.CurrentUser()
	require.NotNil(t, user)
	require.Equal(t, "admin@kurakampus.id", user.Email)
	require.Equal(t, "admin", user.Role)
}

func TestSessionSurvivesRestart(t *testing.T) {
	a, _ := newTestApp(t)
	login(t, a, "admin@kurakampus.id", "admin12345")

	// A second App over the same state directory picks the session back up
	restarted, err := NewWithConfig(a.Config)
	require.NoError(t, err)

	require.Equal(t, session.StateAuthenticated, restarted.Session.State())
	require.Equal(t, "admin@kurakampus.id", restarted.Session.CurrentUser().Email)
}

func TestExpiredAccessTokenIsRecoveredTransparently(t *testing.T) {
	a, _ := newTestApp(t)
	login(t, a, "admin@kurakampus.id", "admin12345")

	refresh := a.Vault.RefreshToken()
	// Sabotage the access token while keeping the refresh token; the next
	// call gets a 401, refreshes, and replays without surfacing an error.
	a.Vault.StoreTokens("expired-garbage", refresh)

	items, meta, err := a.Orgs.List(context.Background(), orgs.Filters{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, 3, meta.Total)

	require.NotEqual(t, "expired-garbage", a.Vault.AccessToken(), "access token must be replaced")
	require.NotEqual(t, refresh, a.Vault.RefreshToken(), "refresh token must rotate")
}

func TestIrrecoverableSessionForcesSignInRoute(t *testing.T) {
	a, _ := newTestApp(t)
	login(t, a, "admin@kurakampus.id", "admin12345")

	// Drop the refresh token entirely and leave only a garbage access
	// token: the 401 cannot be recovered.
	a.Vault.Clear()
	a.Vault.StoreTokens("expired-garbage", "")
	require.Empty(t, a.Vault.RefreshToken())

	_, _, err := a.Orgs.List(context.Background(), orgs.Filters{})
	require.Error(t, err)

	require.Empty(t, a.Vault.AccessToken(), "session must be cleared")
	current := a.Router.Current()
	require.NotNil(t, current)
	require.Equal(t, "login", current.Name, "gateway must force navigation to sign-in")
}

func TestOrganizationServiceEndToEnd(t *testing.T) {
	a, _ := newTestApp(t)
	login(t, a, "admin@kurakampus.id", "admin12345")
	ctx := context.Background()

	created, err := a.Orgs.Create(ctx, orgs.CreateInput{
		NamaInstansi:     "Universitas Brawijaya",
		DaerahInstansi:   "Malang",
		NamaOrganisasi:   "UKM Fotografi",
		Kontak:           "foto@ub.ac.id",
		JenisOrganisasi:  "UKM",
		BidangOrganisasi: "Seni",
		TahunBerdiri:     2010,
		Proker:           []string{"Pameran tahunan"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := a.Orgs.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "UKM Fotografi", got.NamaOrganisasi)
	require.Equal(t, []string{"Pameran tahunan"}, got.Proker)

	kontak := "media@ub.ac.id"
	updated, err := a.Orgs.Update(ctx, created.ID, orgs.UpdateInput{Kontak: &kontak})
	require.NoError(t, err)
	require.Equal(t, kontak, updated.Kontak)
	require.Equal(t, "UKM Fotografi", updated.NamaOrganisasi)

	stats, err := a.Orgs.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalOrganizations)

	require.NoError(t, a.Orgs.Delete(ctx, created.ID))
	_, err = a.Orgs.Get(ctx, created.ID)
	require.Error(t, err)
}

func TestClientSideValidationBlocksBadCreate(t *testing.T) {
	a, _ := newTestApp(t)
	login(t, a, "admin@kurakampus.id", "admin12345")

	_, err := a.Orgs.Create(context.Background(), orgs.CreateInput{
		NamaOrganisasi: "Missing everything else",
		TahunBerdiri:   1700, // out of range
	})
	require.Error(t, err)
}

func TestRouterGuardsFollowSessionLifecycle(t *testing.T) {
	a, _ := newTestApp(t)

	decision := a.Router.Navigate("/app/organizations")
	require.False(t, decision.Allowed)
	require.Equal(t, "/auth/signin", decision.RedirectPath)
	require.Equal(t, "/app/organizations", decision.RedirectQuery.Get("redirect"))

	login(t, a, "member@kurakampus.id", "user12345")

	decision = a.Router.Navigate("/app/organizations")
	require.True(t, decision.Allowed)
	require.Equal(t, "Database Organisasi | KuraKampus", a.Title())

	// Admin-only section bounces a regular member to the dashboard
	decision = a.Router.Navigate("/app/users")
	require.False(t, decision.Allowed)
	require.Equal(t, "/app", decision.RedirectPath)

	a.Session.Logout(context.Background())
	decision = a.Router.Navigate("/app/organizations")
	require.False(t, decision.Allowed)
}

func TestUserAdministrationEndToEnd(t *testing.T) {
	a, _ := newTestApp(t)
	login(t, a, "admin@kurakampus.id", "admin12345")
	ctx := context.Background()

	list, meta, err := a.Users.List(ctx, users.Filters{})
	require.NoError(t, err)
	require.Equal(t, 2, meta.Total, "seed data has two accounts")

	var memberID string
	for _, u := range list {
		if u.Email == "member@kurakampus.id" {
			memberID = u.ID
		}
	}
	require.NotEmpty(t, memberID)

	require.NoError(t, a.Users.Deactivate(ctx, memberID))
	got, err := a.Users.Get(ctx, memberID)
	require.NoError(t, err)
	require.Equal(t, "inactive", got.Status)

	require.NoError(t, a.Users.Activate(ctx, memberID))
	got, err = a.Users.Get(ctx, memberID)
	require.NoError(t, err)
	require.Equal(t, "active", got.Status)
}

func TestMockModeServesEmbeddedBackend(t *testing.T) {
	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL:    "http://localhost:9/api", // unreachable, must be replaced
			Timeout:    5 * time.Second,
			EnableMock: true,
		},
		Storage: config.StorageConfig{
			Prefix: "kurakampus_",
			Dir:    t.TempDir(),
		},
		Logging: config.LoggingConfig{Level: "error"},
		App:     config.AppConfig{Name: "KuraKampus", Version: "test"},
	}

	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NotEqual(t, "http://localhost:9/api", cfg.API.BaseURL,
		"mock mode must retarget the gateway at the embedded backend")

	login(t, a, "admin@kurakampus.id", "admin12345")
	items, meta, err := a.Orgs.List(context.Background(), orgs.Filters{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, 3, meta.Total)
}
