// Package session implements the volatile per-session passphrase cache.
//
// The passphrase is never held in the clear: it is sealed with
// XChaCha20-Poly1305 under a random key generated for each session, so
// a memory dump of the cache alone doesn't reveal it.
package session

import (
	"crypto/rand"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrNotCached is returned by [Cache.Passphrase] if no passphrase has
// been cached in the current session.
var ErrNotCached = errors.New("no passphrase cached")

// Cache holds the passphrase for the current session. The zero Cache
// is not usable; create one with [New].
type Cache struct {
	mu     sync.Mutex
	id     uuid.UUID
	key    [chacha20poly1305.KeySize]byte
	sealed []byte
}

// New starts a session with an empty cache.
func New() *Cache {
	var c Cache
	c.rotate()
	return &c
}

// rotate begins a new session. It must be called with the lock held.
func (c *Cache) rotate() {
	clear(c.sealed)
	c.sealed = nil
	c.id = uuid.New()

	// crypto/rand.Read never returns an error.
	_, _ = rand.Read(c.key[:])
}

// ID identifies the current session. It changes when the cache is
// cleared.
func (c *Cache) ID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// PassphraseCached reports whether a passphrase is cached.
func (c *Cache) PassphraseCached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sealed != nil
}

// CachePassphrase seals and stores passphrase, replacing any previous
// one. An empty passphrase is a valid passphrase.
func (c *Cache) CachePassphrase(passphrase string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The key size is fixed; construction cannot fail.
	aead, _ := chacha20poly1305.NewX(c.key[:])

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(passphrase)+aead.Overhead())
	_, _ = rand.Read(nonce)

	clear(c.sealed)
	c.sealed = aead.Seal(nonce, nonce, []byte(passphrase), c.id[:])
}

// Passphrase unseals the cached passphrase.
func (c *Cache) Passphrase() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed == nil {
		return "", ErrNotCached
	}

	aead, _ := chacha20poly1305.NewX(c.key[:])
	nonce, ciphertext := c.sealed[:aead.NonceSize()], c.sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, c.id[:])
	if err != nil {
		return "", err
	}

	passphrase := string(plaintext)
	clear(plaintext)
	return passphrase, nil
}

// Clear drops the cached passphrase and starts a new session.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotate()
}
