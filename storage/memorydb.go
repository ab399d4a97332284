package storage

import (
	"errors"
	"sync"
)

// MemoryDatabase is a map-backed Database for tests and single-shot
// executions. All returned and stored values are copies.
type MemoryDatabase struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryDatabase creates an empty in-memory database.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{data: make(map[string][]byte)}
}

func (db *MemoryDatabase) Has(key []byte) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return false, errors.New("storage: database closed")
	}
	_, ok := db.data[string(key)]
	return ok, nil
}

func (db *MemoryDatabase) Get(key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, errors.New("storage: database closed")
	}
	if v, ok := db.data[string(key)]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, ErrNotFound
}

func (db *MemoryDatabase) Put(key, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return errors.New("storage: database closed")
	}
	db.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (db *MemoryDatabase) Delete(key []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return errors.New("storage: database closed")
	}
	delete(db.data, string(key))
	return nil
}

func (db *MemoryDatabase) NewBatch() Batch {
	return &memoryBatch{db: db}
}

func (db *MemoryDatabase) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
	db.data = nil
	return nil
}

// Len returns the number of stored keys.
func (db *MemoryDatabase) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.data)
}

type memoryBatch struct {
	db     *MemoryDatabase
	writes []struct{ k, v []byte }
}

func (b *memoryBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, struct{ k, v []byte }{
		append([]byte(nil), key...),
		append([]byte(nil), value...),
	})
	return nil
}

func (b *memoryBatch) Write() error {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	if b.db.closed {
		return errors.New("storage: database closed")
	}
	for _, w := range b.writes {
		b.db.data[string(w.k)] = w.v
	}
	return nil
}
