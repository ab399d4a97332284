// Package storage implements the contract storage collaborator: a write-back
// cell cache (Store) over a minimal key-value backend, with in-memory and
// LevelDB backends. Mutations live in the cache until Flush commits them in a
// single batch; read-only call paths never touch the backend for writing.
package storage

import "errors"

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("storage: not found")

// Database is the minimal key-value backend contract storage persists to.
type Database interface {
	// Has reports whether the key exists.
	Has(key []byte) (bool, error)
	// Get returns the value for key, or ErrNotFound.
	Get(key []byte) ([]byte, error)
	// Put inserts or overwrites the value for key.
	Put(key, value []byte) error
	// Delete removes the key if present.
	Delete(key []byte) error
	// NewBatch creates a write batch committed atomically by Write.
	NewBatch() Batch
	// Close releases backend resources.
	Close() error
}

// Batch accumulates writes for one atomic commit.
type Batch interface {
	Put(key, value []byte) error
	Write() error
}
