package storage

import (
	"crypto/aes"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aead/cmac"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/hkdf"
)

const (
	// recordVersion is the current version of the settings record.
	recordVersion = 1

	macKeyLen = 16
)

var (
	// ErrCorrupt is returned when a settings record fails
	// authentication.
	ErrCorrupt = errors.New("settings record failed authentication")

	// ErrUnsupportedVersion is returned for a settings record written
	// by a newer version.
	ErrUnsupportedVersion = errors.New("unsupported settings record version")
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// The MAC covers the encoded settings, so encoding must be
	// deterministic.
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// record is the on-disk envelope around the encoded [Settings].
type record struct {
	Version  uint8  `cbor:"1,keyasint"`
	Settings []byte `cbor:"2,keyasint"`
	MAC      []byte `cbor:"3,keyasint"`
}

// MACKey authenticates settings records.
type MACKey [macKeyLen]byte

// DeriveMACKey derives the record authentication key from a device
// secret.
func DeriveMACKey(secret []byte) (key MACKey) {
	kdf := hkdf.New(sha256.New, secret, nil, []byte("passphrase settings record mac"))

	// HKDF-SHA256 can produce far more than 16 bytes.
	_, _ = io.ReadFull(kdf, key[:])
	return key
}

func (k *MACKey) sum(version uint8, settings []byte) []byte {
	// Keys are hardcoded to 16 bytes; cipher and CMAC construction
	// cannot fail.
	block, _ := aes.NewCipher(k[:])
	mac, _ := cmac.New(block)

	_, _ = mac.Write([]byte{version})
	_, _ = mac.Write(settings)
	return mac.Sum(nil)
}

// FileStore is a [Store] persisting settings to a single file.
type FileStore struct {
	mu       sync.Mutex
	path     string
	key      MACKey
	settings Settings
}

// Open loads the settings stored at path. If the file doesn't exist the
// store starts out with default settings, and the file is created on
// the first update.
func Open(path string, key MACKey) (*FileStore, error) {
	s := FileStore{
		path: path,
		key:  key,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &s, nil
	} else if err != nil {
		return nil, err
	}

	err = s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &s, nil
}

func (s *FileStore) decode(data []byte) error {
	var r record
	err := decMode.Unmarshal(data, &r)
	if err != nil {
		return fmt.Errorf("decode settings record: %w", err)
	}

	if r.Version != recordVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, r.Version)
	}

	expect := s.key.sum(r.Version, r.Settings)
	if subtle.ConstantTimeCompare(expect, r.MAC) != 1 {
		return ErrCorrupt
	}

	err = decMode.Unmarshal(r.Settings, &s.settings)
	if err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}

func (s *FileStore) encode(settings Settings) ([]byte, error) {
	encoded, err := encMode.Marshal(settings)
	if err != nil {
		return nil, err
	}

	return encMode.Marshal(record{
		Version:  recordVersion,
		Settings: encoded,
		MAC:      s.key.sum(recordVersion, encoded),
	})
}

func (s *FileStore) PassphraseProtected() bool {
	return s.Settings().PassphraseProtection
}

func (s *FileStore) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update modifies the settings and writes them to disk. The file is
// replaced atomically; if writing fails the settings are unchanged.
func (s *FileStore) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings
	fn(&settings)

	data, err := s.encode(settings)
	if err != nil {
		return err
	}

	err = writeFileAtomic(s.path, data)
	if err != nil {
		return err
	}

	s.settings = settings
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0o700)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	err = errors.Join(err, tmp.Close())
	if err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
