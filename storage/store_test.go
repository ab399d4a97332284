package storage

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"

	"github.com/ethan75/liquid/primitives"
)

func TestStoreDirtyReadThrough(t *testing.T) {
	db := NewMemoryDatabase()
	s := NewStore(primitives.Keccak256, db)

	if v, err := s.GetState("missing"); err != nil || v != nil {
		t.Fatalf("missing cell: %v, %v", v, err)
	}

	s.SetState("name", []byte("liquid"))
	got, err := s.GetState("name")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("liquid")) {
		t.Fatalf("dirty read = %q", got)
	}
	// Nothing persists before Flush.
	if db.Len() != 0 {
		t.Fatalf("backend has %d keys before flush", db.Len())
	}
}

func TestStoreFlush(t *testing.T) {
	db := NewMemoryDatabase()
	s := NewStore(primitives.Keccak256, db)
	s.SetState("a", []byte{1})
	s.SetState("b", []byte{2})
	if s.Dirty() != 2 {
		t.Fatalf("Dirty = %d", s.Dirty())
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() != 0 {
		t.Fatalf("Dirty after flush = %d", s.Dirty())
	}
	if db.Len() != 2 {
		t.Fatalf("backend has %d keys", db.Len())
	}

	// A second store over the same backend sees the committed cells.
	s2 := NewStore(primitives.Keccak256, db)
	got, err := s2.GetState("b")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{2}) {
		t.Fatalf("persisted read = %v", got)
	}
}

func TestStoreRepeatedFlushLosesNothing(t *testing.T) {
	db := NewMemoryDatabase()
	s := NewStore(primitives.Keccak256, db)
	s.SetState("a", []byte{1})
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	s.SetState("b", []byte{2})
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]byte{"a": 1, "b": 2} {
		v, err := NewStore(primitives.Keccak256, db).GetState(name)
		if err != nil || len(v) != 1 || v[0] != want {
			t.Fatalf("cell %s = %v, %v", name, v, err)
		}
	}
}

func TestStoreDiscard(t *testing.T) {
	db := NewMemoryDatabase()
	s := NewStore(primitives.Keccak256, db)
	s.SetState("a", []byte{1})
	s.Discard()
	if s.Dirty() != 0 {
		t.Fatalf("Dirty after discard = %d", s.Dirty())
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if db.Len() != 0 {
		t.Fatalf("discarded cell reached the backend: %d keys", db.Len())
	}

	// Cells staged after a discard commit normally.
	s.SetState("b", []byte{2})
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if db.Len() != 1 {
		t.Fatalf("backend has %d keys", db.Len())
	}
}

func TestStoreSlotNamespacing(t *testing.T) {
	s := NewStore(primitives.Keccak256, NewMemoryDatabase())
	if s.Slot("a") == s.Slot("b") {
		t.Fatal("distinct cells share a slot")
	}
	// Slots are family-dependent but name-deterministic.
	if s.Slot("a") != NewStore(primitives.Keccak256, NewMemoryDatabase()).Slot("a") {
		t.Fatal("slot derivation is not deterministic")
	}
	gm := NewStore(primitives.SM3, NewMemoryDatabase())
	if s.Slot("a") == gm.Slot("a") {
		t.Fatal("families must not share slots")
	}
}

func TestStoreTypedCells(t *testing.T) {
	s := NewStore(primitives.Keccak256, NewMemoryDatabase())

	s.SetU32("counter", 42)
	if v, err := s.GetU32("counter"); err != nil || v != 42 {
		t.Fatalf("u32 = %d, %v", v, err)
	}
	if v, err := s.GetU32("unset"); err != nil || v != 0 {
		t.Fatalf("unset u32 = %d, %v", v, err)
	}

	want := uint256.MustFromHex("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	s.SetU256("big", want)
	if v, err := s.GetU256("big"); err != nil || !v.Eq(want) {
		t.Fatalf("u256 = %s, %v", v, err)
	}

	s.SetBool("flag", true)
	if v, err := s.GetBool("flag"); err != nil || !v {
		t.Fatalf("bool = %v, %v", v, err)
	}

	s.SetString("sym", "LQD")
	if v, err := s.GetString("sym"); err != nil || v != "LQD" {
		t.Fatalf("string = %q, %v", v, err)
	}
}

func TestStoreTypedCellWidthGuards(t *testing.T) {
	s := NewStore(primitives.Keccak256, NewMemoryDatabase())

	s.SetU64("wide", math.MaxUint32+1)
	if _, err := s.GetU32("wide"); err == nil {
		t.Fatal("u32 read of a wider value must fail")
	}
	if v, err := s.GetU64("wide"); err != nil || v != math.MaxUint32+1 {
		t.Fatalf("u64 = %d, %v", v, err)
	}

	s.SetU256("huge", uint256.MustFromHex("0x10000000000000000"))
	if _, err := s.GetU64("huge"); err == nil {
		t.Fatal("u64 read of a wider value must fail")
	}
}

func TestLevelDBBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liquid")
	db, err := NewLevelDB(path)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStore(primitives.Keccak256, db)
	s.SetU64("value", 7)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen and read back.
	db, err = NewLevelDB(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	v, err := NewStore(primitives.Keccak256, db).GetU64("value")
	if err != nil || v != 7 {
		t.Fatalf("reopened value = %d, %v", v, err)
	}
}
