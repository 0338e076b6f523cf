package storage

import (
	"sync"
)

// Settings is the persisted device configuration.
type Settings struct {
	// PassphraseProtection requires a passphrase before the key
	// material may be used.
	PassphraseProtection bool `cbor:"1,keyasint"`

	// Label is the user-assigned device name.
	Label string `cbor:"2,keyasint,omitempty"`

	// Language of the device display.
	Language string `cbor:"3,keyasint,omitempty"`
}

// Store provides access to the device settings.
type Store interface {
	PassphraseProtected() bool
	Settings() Settings
	Update(fn func(*Settings)) error
}

// MemoryStore is a [Store] which doesn't persist anything. The zero
// value is ready to use with passphrase protection disabled.
type MemoryStore struct {
	mu       sync.Mutex
	settings Settings
}

// NewMemoryStore creates a store holding settings.
func NewMemoryStore(settings Settings) *MemoryStore {
	return &MemoryStore{settings: settings}
}

func (m *MemoryStore) PassphraseProtected() bool {
	return m.Settings().PassphraseProtection
}

func (m *MemoryStore) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

func (m *MemoryStore) Update(fn func(*Settings)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.settings)
	return nil
}

// SetPassphraseProtection enables or disables passphrase protection.
func SetPassphraseProtection(s Store, enabled bool) error {
	return s.Update(func(settings *Settings) {
		settings.PassphraseProtection = enabled
	})
}
