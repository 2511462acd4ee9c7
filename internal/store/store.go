// Package store defines the key-value contract the task list persists into.
package store

import (
	"fmt"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// KV is a key-value persistence service addressed by string keys.
// Read reports ok=false with a nil error when the key is absent.
type KV interface {
	Read(key string) (value []byte, ok bool, err error)
	Write(key string, value []byte) error
}

// Backend is a KV that may hold resources. Close is a no-op for file and
// memory backends.
type Backend interface {
	KV
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and locates a backend. Format only affects the file
// extension of the json backend.
type Options struct {
	Backend string
	Dir     string
	Format  string
}

// Open builds the backend selected by opts. An empty Backend means json.
func Open(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendJSON, "":
		return jsonstore.New(opts.Dir, jsonstore.ExtFor(opts.Format)), nil
	case BackendSQLite:
		return sqlitestore.Open(filepath.Join(opts.Dir, sqlitestore.DefaultFileName))
	case BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}
