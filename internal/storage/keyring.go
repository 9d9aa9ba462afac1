package storage

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const keyringService = "kurakampus-cli"

// KeyringBackend stores values in the OS keychain/credential manager.
// Unlike the file backend this provides real confidentiality, so it is the
// storage of choice for tokens when the keyring option is enabled.
//
// The keyring cannot enumerate its own entries, so keys written through it
// are tracked in an in-memory index; Keys() only reflects the current
// process, which is sufficient for Clear() on logout.
type KeyringBackend struct {
	index *MemoryBackend
}

// NewKeyringBackend creates a keyring-backed storage backend.
func NewKeyringBackend() *KeyringBackend {
	return &KeyringBackend{index: NewMemoryBackend()}
}

func (k *KeyringBackend) Get(key string) (string, bool) {
	value, err := keyring.Get(keyringService, key)
	if err != nil {
		return "", false
	}
	return value, true
}

func (k *KeyringBackend) Set(key, value string) error {
	if err := keyring.Set(keyringService, key, value); err != nil {
		return err
	}
	return k.index.Set(key, "")
}

func (k *KeyringBackend) Delete(key string) error {
	_ = k.index.Delete(key)
	if err := keyring.Delete(keyringService, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (k *KeyringBackend) Keys() []string {
	return k.index.Keys()
}
