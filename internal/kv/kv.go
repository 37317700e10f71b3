// Package kv provides the key-value medium folio persists into. The interface
// is deliberately small and synchronous: each Set replaces the whole value
// stored under a key.
package kv

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Store is a synchronous key-value medium.
type Store interface {
	// Get returns the value under key. found is false when nothing has been
	// stored yet; that is not an error.
	Get(key string) (value []byte, found bool, err error)
	// Set replaces the value under key.
	Set(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrInvalidKey is returned for keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Open returns the backend named by backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(dataDir)
	case BackendSQLite:
		return NewSQLiteStore(dataDir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
