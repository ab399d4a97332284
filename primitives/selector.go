package primitives

import (
	"encoding/binary"
	"strings"
)

// SelectorLength is the byte length of a Selector.
const SelectorLength = 4

// Selector is the fixed-width identifier routing call data to a contract
// function. It is the first 4 bytes of the family hash of the function's
// canonical signature, so external callers can precompute it from the
// documented interface alone.
type Selector [SelectorLength]byte

// SelectorFromBytes converts the first 4 bytes of b to a Selector.
// The slice must hold at least SelectorLength bytes.
func SelectorFromBytes(b []byte) Selector {
	var s Selector
	copy(s[:], b)
	return s
}

// SelectorFromHash truncates h to its leading 4 bytes.
func SelectorFromHash(h Hash) Selector {
	var s Selector
	copy(s[:], h[:SelectorLength])
	return s
}

// NewSelector derives the selector for a function from its name and the
// canonical names of its parameter types (receiver excluded), in declared
// order. Same inputs always yield the same selector; a signature change
// always changes it (up to hash truncation).
func NewSelector(family HashFamily, name string, paramTypes []string) Selector {
	return SelectorFromHash(family.Sum([]byte(Signature(name, paramTypes))))
}

// Signature renders the canonical human-readable signature hashed for
// selector derivation: "name(type1,type2,...)".
func Signature(name string, paramTypes []string) string {
	return name + "(" + strings.Join(paramTypes, ",") + ")"
}

// Uint32 returns the big-endian numeric view of the selector.
func (s Selector) Uint32() uint32 {
	return binary.BigEndian.Uint32(s[:])
}

// Bytes returns a copy of the selector as a byte slice.
func (s Selector) Bytes() []byte {
	return append([]byte(nil), s[:]...)
}

// Hex returns the "0x"-prefixed lowercase hex rendering of the selector.
func (s Selector) Hex() string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 2+SelectorLength*2)
	buf[0], buf[1] = '0', 'x'
	for i, b := range s {
		buf[2+i*2] = digits[b>>4]
		buf[2+i*2+1] = digits[b&0x0f]
	}
	return string(buf)
}

func (s Selector) String() string {
	return s.Hex()
}
