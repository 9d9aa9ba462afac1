// Package storage provides the prefixed key-value store the client persists
// session state and UI preferences in. Values are JSON-serialized and may be
// passed through a reversible base64 transform before hitting the backend.
// That transform is obfuscation, not encryption: it keeps casual eyes off the
// state file but provides no confidentiality. Callers that need real secrecy
// should use the keyring-backed secret store instead.
package storage

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// Backend is the raw storage medium under a Store. Implementations hold
// string values by fully-prefixed key.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Keys() []string
}

// Store is a namespaced key-value store over a Backend.
//
// Failure policy: serialization and backend failures are logged and surfaced
// as a nil read or a dropped write. They are never returned to the caller.
type Store struct {
	backend   Backend
	prefix    string
	obfuscate bool
	logger    zerolog.Logger
}

// Options configures a Store.
type Options struct {
	Prefix    string
	Obfuscate bool
}

// New creates a Store over the given backend.
func New(backend Backend, opts Options, logger zerolog.Logger) *Store {
	return &Store{
		backend:   backend,
		prefix:    opts.Prefix,
		obfuscate: opts.Obfuscate,
		logger:    logger,
	}
}

func (s *Store) prefixed(key string) string {
	return s.prefix + key
}

// Set serializes value and writes it under the prefixed key.
func (s *Store) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to serialize storage value")
		return
	}

	encoded := string(data)
	if s.obfuscate {
		encoded = base64.StdEncoding.EncodeToString(data)
	}

	if err := s.backend.Set(s.prefixed(key), encoded); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to write storage value")
	}
}

// Get reads the value under key into out. Returns false if the key is absent
// or the stored value cannot be decoded.
func (s *Store) Get(key string, out any) bool {
	raw, ok := s.backend.Get(s.prefixed(key))
	if !ok {
		return false
	}

	data := []byte(raw)
	if s.obfuscate {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			// Value may predate the obfuscation setting; fall back to plain
			decoded = []byte(raw)
		}
		data = decoded
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to decode storage value")
		return false
	}
	return true
}

// GetString reads a string value, returning "" when absent.
func (s *Store) GetString(key string) string {
	var v string
	if !s.Get(key, &v) {
		return ""
	}
	return v
}

// Remove deletes the value under key.
func (s *Store) Remove(key string) {
	if err := s.backend.Delete(s.prefixed(key)); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to remove storage value")
	}
}

// Has reports whether a value exists under key.
func (s *Store) Has(key string) bool {
	_, ok := s.backend.Get(s.prefixed(key))
	return ok
}

// Clear removes every value under this store's prefix. Entries written by
// other stores sharing the backend are left alone.
func (s *Store) Clear() {
	for _, key := range s.backend.Keys() {
		if strings.HasPrefix(key, s.prefix) {
			if err := s.backend.Delete(key); err != nil {
				s.logger.Error().Err(err).Str("key", key).Msg("Failed to clear storage value")
			}
		}
	}
}

// Keys returns all keys under this store's prefix, with the prefix stripped.
func (s *Store) Keys() []string {
	var keys []string
	for _, key := range s.backend.Keys() {
		if strings.HasPrefix(key, s.prefix) {
			keys = append(keys, strings.TrimPrefix(key, s.prefix))
		}
	}
	return keys
}
