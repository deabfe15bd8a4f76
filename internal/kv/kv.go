// Package kv provides the durable key-value slots notes are persisted into.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const sqliteFileName = "calnotes.db"

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a string-to-string durable key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Open returns the named backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendDiskv:
		return OpenDiskv(filepath.Join(dataDir, "kv"))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, sqliteFileName))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Backends lists the names accepted by Open.
func Backends() []string {
	return []string{BackendDiskv, BackendSQLite, BackendMemory}
}
