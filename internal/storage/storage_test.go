package storage

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestStoreRoundTrip(t *testing.T) {
	store := New(NewMemoryBackend(), Options{Prefix: "test_"}, testLogger())

	type prefs struct {
		Theme    string `json:"theme"`
		PageSize int    `json:"pageSize"`
	}

	store.Set("prefs", prefs{Theme: "dark", PageSize: 25})

	var got prefs
	if !store.Get("prefs", &got) {
		t.Fatal("expected value to be present")
	}
	if got.Theme != "dark" || got.PageSize != 25 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestStorePrefixIsolation(t *testing.T) {
	backend := NewMemoryBackend()
	a := New(backend, Options{Prefix: "a_"}, testLogger())
	b := New(backend, Options{Prefix: "b_"}, testLogger())

	a.Set("token", "from-a")
	b.Set("token", "from-b")

	if got := a.GetString("token"); got != "from-a" {
		t.Fatalf("store a read %q", got)
	}
	if got := b.GetString("token"); got != "from-b" {
		t.Fatalf("store b read %q", got)
	}

	// Clear only touches this store's namespace
	a.Clear()
	if a.Has("token") {
		t.Fatal("store a should be empty after Clear")
	}
	if !b.Has("token") {
		t.Fatal("store b should be untouched by a's Clear")
	}
}

func TestStoreMissingKey(t *testing.T) {
	store := New(NewMemoryBackend(), Options{Prefix: "test_"}, testLogger())

	var out string
	if store.Get("absent", &out) {
		t.Fatal("expected absent key to report false")
	}
	if got := store.GetString("absent"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	store := New(NewMemoryBackend(), Options{Prefix: "test_"}, testLogger())

	store.Set("key", "value")
	store.Remove("key")
	store.Remove("key") // second remove must not blow up

	if store.Has("key") {
		t.Fatal("key should be gone")
	}
}

func TestStoreObfuscation(t *testing.T) {
	backend := NewMemoryBackend()
	store := New(backend, Options{Prefix: "test_", Obfuscate: true}, testLogger())

	store.Set("secret", "tok-123")

	raw, ok := backend.Get("test_secret")
	if !ok {
		t.Fatal("expected raw value in backend")
	}
	if raw == `"tok-123"` {
		t.Fatal("obfuscated value should not be plain JSON")
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("stored value is not base64: %v", err)
	}
	if string(decoded) != `"tok-123"` {
		t.Fatalf("decoded payload mismatch: %s", decoded)
	}

	if got := store.GetString("secret"); got != "tok-123" {
		t.Fatalf("read back %q", got)
	}
}

func TestStoreObfuscationReadsLegacyPlainValues(t *testing.T) {
	backend := NewMemoryBackend()
	// Written before obfuscation was enabled
	backend.Set("test_legacy", `"plain"`)

	store := New(backend, Options{Prefix: "test_", Obfuscate: true}, testLogger())
	if got := store.GetString("legacy"); got != "plain" {
		t.Fatalf("expected legacy plain value, got %q", got)
	}
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	store := New(first, Options{Prefix: "app_"}, testLogger())
	store.Set("user", map[string]string{"id": "u1"})

	second, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("failed to reopen backend: %v", err)
	}
	reopened := New(second, Options{Prefix: "app_"}, testLogger())

	var user map[string]string
	if !reopened.Get("user", &user) {
		t.Fatal("expected value to survive reopen")
	}
	if user["id"] != "u1" {
		t.Fatalf("persisted value mismatch: %+v", user)
	}
}

func TestFileBackendDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	first.Set("k", "v")
	first.Delete("k")

	second, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("failed to reopen backend: %v", err)
	}
	if _, ok := second.Get("k"); ok {
		t.Fatal("deleted key should not survive reopen")
	}
}

func TestStoreKeys(t *testing.T) {
	store := New(NewMemoryBackend(), Options{Prefix: "test_"}, testLogger())
	store.Set("b", 1)
	store.Set("a", 2)

	keys := store.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
