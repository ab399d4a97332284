package storage

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/holiman/uint256"

	"github.com/ethan75/liquid/primitives"
)

// storageNamespace prefixes every cell name before slot hashing, so contract
// cells can never collide with other key spaces sharing the backend.
const storageNamespace = "liquid.storage."

var flushCounter = metrics.NewRegisteredCounter("liquid/storage/flushes", nil)

// Store is the live contract state of one invocation. It is exclusively
// owned by the current call frame: reads fall through the dirty cache to the
// backend, writes stay in the cache until Flush commits them in one batch.
// A missing cell reads as nil (the zero value of its type).
type Store struct {
	family primitives.HashFamily
	db     Database
	dirty  map[primitives.Hash][]byte
	log    log.Logger
}

// NewStore creates a Store over db, deriving cell slots with family.
func NewStore(family primitives.HashFamily, db Database) *Store {
	return &Store{
		family: family,
		db:     db,
		dirty:  make(map[primitives.Hash][]byte),
		log:    log.New("module", "storage"),
	}
}

// Slot maps a cell name to its deterministic backend key.
func (s *Store) Slot(name string) primitives.Hash {
	return s.family.Sum(append([]byte(storageNamespace), name...))
}

// GetState reads the raw cell value, nil if the cell was never written.
func (s *Store) GetState(name string) ([]byte, error) {
	slot := s.Slot(name)
	if v, ok := s.dirty[slot]; ok {
		return append([]byte(nil), v...), nil
	}
	v, err := s.db.Get(slot[:])
	if err == ErrNotFound {
		return nil, nil
	}
	return v, err
}

// SetState stages a raw cell value; it becomes persistent only on Flush.
func (s *Store) SetState(name string, value []byte) {
	s.dirty[s.Slot(name)] = append([]byte(nil), value...)
}

// Dirty returns the number of staged, unflushed cells.
func (s *Store) Dirty() int {
	return len(s.dirty)
}

// Flush commits every staged cell to the backend in a single batch. Calling
// it again within the same invocation re-commits nothing but loses nothing:
// already-flushed cells are durable, newly staged ones are picked up.
func (s *Store) Flush() error {
	if len(s.dirty) == 0 {
		return nil
	}
	batch := s.db.NewBatch()
	for slot, value := range s.dirty {
		if err := batch.Put(slot.Bytes(), value); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.log.Debug("Flushed contract storage", "cells", len(s.dirty))
	flushCounter.Inc(1)
	s.dirty = make(map[primitives.Hash][]byte)
	return nil
}

// Discard drops every staged cell without touching the backend. A reverted
// invocation must leave nothing behind for a later Flush to pick up.
func (s *Store) Discard() {
	if len(s.dirty) == 0 {
		return
	}
	s.log.Debug("Discarded staged storage", "cells", len(s.dirty))
	s.dirty = make(map[primitives.Hash][]byte)
}

// Typed cell helpers. Numeric cells are stored as 32-byte big-endian words,
// matching the word-oriented layout external tooling expects.

func (s *Store) SetU256(name string, v *uint256.Int) {
	word := v.Bytes32()
	s.SetState(name, word[:])
}

func (s *Store) GetU256(name string) (*uint256.Int, error) {
	raw, err := s.GetState(name)
	if err != nil {
		return nil, err
	}
	if len(raw) > 32 {
		return nil, fmt.Errorf("cell %q holds %d bytes, not a word", name, len(raw))
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func (s *Store) SetU64(name string, v uint64) {
	s.SetU256(name, uint256.NewInt(v))
}

func (s *Store) GetU64(name string) (uint64, error) {
	u, err := s.GetU256(name)
	if err != nil {
		return 0, err
	}
	if !u.IsUint64() {
		return 0, fmt.Errorf("cell %q holds %s, does not fit uint64", name, u)
	}
	return u.Uint64(), nil
}

func (s *Store) SetU32(name string, v uint32) {
	s.SetU256(name, uint256.NewInt(uint64(v)))
}

func (s *Store) GetU32(name string) (uint32, error) {
	v, err := s.GetU64(name)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("cell %q holds %d, does not fit uint32", name, v)
	}
	return uint32(v), nil
}

func (s *Store) SetBool(name string, v bool) {
	if v {
		s.SetState(name, []byte{1})
	} else {
		s.SetState(name, []byte{0})
	}
}

func (s *Store) GetBool(name string) (bool, error) {
	raw, err := s.GetState(name)
	if err != nil {
		return false, err
	}
	return len(raw) > 0 && raw[len(raw)-1] != 0, nil
}

func (s *Store) SetString(name, v string) {
	s.SetState(name, []byte(v))
}

func (s *Store) GetString(name string) (string, error) {
	raw, err := s.GetState(name)
	return string(raw), err
}
