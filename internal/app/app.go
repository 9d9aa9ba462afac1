// Package app wires the client together. One App is constructed at process
// start and threaded through to whatever needs it; nothing in the codebase
// reaches for ambient global state.
package app

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kurakampus/kurakampus-cli/internal/config"
	"github.com/kurakampus/kurakampus-cli/internal/gateway"
	"github.com/kurakampus/kurakampus-cli/internal/logger"
	"github.com/kurakampus/kurakampus-cli/internal/mockapi"
	"github.com/kurakampus/kurakampus-cli/internal/orgs"
	"github.com/kurakampus/kurakampus-cli/internal/router"
	"github.com/kurakampus/kurakampus-cli/internal/session"
	"github.com/kurakampus/kurakampus-cli/internal/storage"
	"github.com/kurakampus/kurakampus-cli/internal/users"
)

// App is the explicit dependency context for the client.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Local   *storage.Store
	Secure  *storage.Store
	Scoped  *storage.Store
	Vault   *session.TokenVault
	CSRF    *gateway.CSRF
	Gateway *gateway.Gateway
	Session *session.Store
	Router  *router.Router
	Orgs    *orgs.Service
	Users   *users.Service

	mock *http.Server

	titleMu sync.Mutex
	title   string
}

// New loads configuration and builds the full dependency graph.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig builds the dependency graph from an explicit configuration,
// which is how tests construct an App against httptest servers.
func NewWithConfig(cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Logging)

	a := &App{Config: cfg, Logger: log}

	if cfg.API.EnableMock {
		baseURL, err := a.startMock(cfg, log)
		if err != nil {
			return nil, err
		}
		cfg.API.BaseURL = baseURL
	}

	fileBackend, err := storage.NewFileBackend(statePath(cfg))
	if err != nil {
		return nil, err
	}

	var secureBackend storage.Backend = fileBackend
	if cfg.Storage.UseKeyring {
		secureBackend = storage.NewKeyringBackend()
	}

	a.Local = storage.New(fileBackend, storage.Options{Prefix: cfg.Storage.Prefix}, log)
	a.Secure = storage.New(secureBackend, storage.Options{Prefix: cfg.Storage.Prefix, Obfuscate: !cfg.Storage.UseKeyring}, log)
	a.Scoped = storage.New(storage.NewMemoryBackend(), storage.Options{Prefix: cfg.Storage.Prefix}, log)

	a.Vault = session.NewTokenVault(a.Secure, a.Local)
	a.CSRF = gateway.NewCSRF(a.Scoped)
	a.Gateway = gateway.New(cfg, a.Vault, a.CSRF, log)
	a.Session = session.NewStore(a.Gateway, a.Vault, log)
	a.Router = router.New(router.DefaultTable(), a.Session, cfg.App.Name, a.setTitle, log)
	a.Gateway.SetNavigator(a.Router)

	a.Orgs = orgs.NewService(a.Gateway)
	a.Users = users.NewService(a.Gateway)

	return a, nil
}

// startMock serves the built-in mock backend on a loopback listener and
// returns the base URL the gateway should target. The mock database lives
// next to the state file so data survives between invocations.
func (a *App) startMock(cfg *config.Config, log zerolog.Logger) (string, error) {
	dir := cfg.Storage.Dir
	if dir == "" {
		resolved, err := storage.StatePath()
		if err != nil {
			return "", err
		}
		dir = filepath.Dir(resolved)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create mock data directory: %w", err)
	}

	mock, err := mockapi.New(mockapi.Options{
		DatabasePath: filepath.Join(dir, "mockapi.db"),
		Seed:         true,
	}, log)
	if err != nil {
		return "", err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to listen for mock backend: %w", err)
	}

	a.mock = &http.Server{Handler: mock.Handler()}
	go func() {
		if err := a.mock.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Mock backend stopped")
		}
	}()

	log.Debug().Str("addr", ln.Addr().String()).Msg("Mock backend listening")
	return "http://" + ln.Addr().String() + "/api", nil
}

// Close shuts down the embedded mock backend when one is running.
func (a *App) Close() error {
	if a.mock != nil {
		return a.mock.Close()
	}
	return nil
}

func statePath(cfg *config.Config) string {
	if cfg.Storage.Dir == "" {
		return ""
	}
	return filepath.Join(cfg.Storage.Dir, "state.json")
}

// setTitle is the title sink the router pushes to on every navigation, the
// CLI's stand-in for a window title.
func (a *App) setTitle(title string) {
	a.titleMu.Lock()
	a.title = title
	a.titleMu.Unlock()
}

// Title returns the title derived from the last navigation.
func (a *App) Title() string {
	a.titleMu.Lock()
	defer a.titleMu.Unlock()
	return a.title
}
