// Package primitives holds the fixed-width value types shared by the liquid
// runtime: the 32-byte Hash, the 4-byte function Selector and the signature
// hash family used to derive selectors and storage slots.
package primitives

import (
	"fmt"

	"github.com/tjfoc/gmsm/sm3"
	"golang.org/x/crypto/sha3"
)

// HashLength is the byte length of a Hash.
const HashLength = 32

// Hash is a fixed 32-byte value. The zero value is the all-zero hash.
type Hash [HashLength]byte

// BytesToHash converts b to a Hash. The slice must be exactly HashLength
// bytes long.
func BytesToHash(b []byte) (Hash, error) {
	if len(b) != HashLength {
		return Hash{}, fmt.Errorf("invalid hash length %d, want %d", len(b), HashLength)
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// HexToHash parses a hex representation of a Hash. Both "0x"/"0X"-prefixed
// and bare forms are accepted; the digit count must match exactly.
func HexToHash(s string) (Hash, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != HashLength*2 {
		return Hash{}, fmt.Errorf("invalid hash representation: %d hex digits, want %d", len(s), HashLength*2)
	}
	var h Hash
	for i := 0; i < HashLength; i++ {
		hi, ok := fromHexDigit(s[i*2])
		if !ok {
			return Hash{}, fmt.Errorf("invalid hash representation: bad digit %q", s[i*2])
		}
		lo, ok := fromHexDigit(s[i*2+1])
		if !ok {
			return Hash{}, fmt.Errorf("invalid hash representation: bad digit %q", s[i*2+1])
		}
		h[i] = hi<<4 | lo
	}
	return h, nil
}

func fromHexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// Hex returns the "0x"-prefixed lowercase hex rendering of the hash.
func (h Hash) Hex() string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 2+HashLength*2)
	buf[0], buf[1] = '0', 'x'
	for i, b := range h {
		buf[2+i*2] = digits[b>>4]
		buf[2+i*2+1] = digits[b&0x0f]
	}
	return string(buf)
}

func (h Hash) String() string {
	return h.Hex()
}

// IsZero reports whether the hash is the all-zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// HashFamily selects the hash function used for signature and storage-slot
// derivation. A contract deployment targets exactly one family; the numeric
// tag is the externally visible build-mode discriminator (0 for keccak256,
// 1 for the GM flavor).
type HashFamily uint32

const (
	// Keccak256 is the default family, matching the Ethereum selector scheme.
	Keccak256 HashFamily = iota
	// SM3 is the Chinese national standard ("gm") family.
	SM3
)

// ParseHashFamily converts a config/CLI name to a HashFamily.
func ParseHashFamily(s string) (HashFamily, error) {
	switch s {
	case "keccak256", "keccak":
		return Keccak256, nil
	case "sm3", "gm":
		return SM3, nil
	}
	return 0, fmt.Errorf("unknown hash family %q", s)
}

func (f HashFamily) String() string {
	switch f {
	case Keccak256:
		return "keccak256"
	case SM3:
		return "sm3"
	}
	return fmt.Sprintf("hashfamily(%d)", uint32(f))
}

// Tag returns the numeric build-mode discriminator for the family.
func (f HashFamily) Tag() uint32 {
	return uint32(f)
}

// Sum hashes data with the family's function.
func (f HashFamily) Sum(data []byte) Hash {
	var h Hash
	switch f {
	case SM3:
		d := sm3.New()
		d.Write(data)
		copy(h[:], d.Sum(nil))
	default:
		d := sha3.NewLegacyKeccak256()
		d.Write(data)
		copy(h[:], d.Sum(nil))
	}
	return h
}
