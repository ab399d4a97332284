// Package abi adapts liquid function shapes to Ethereum ABI encoding.
//
// Standard encode/decode delegates to go-ethereum's accounts/abi
// (Arguments.Pack / Arguments.Unpack). This package owns the two
// liquid-specific layers on top of it:
//
//   - type-name canonicalization (u32 → uint32, String → string, Vec<T> → T[])
//     so selectors hash the same signature an external caller would write
//   - Go-native value conversion at the Pack/Unpack boundary
//     (accounts/abi typeCheck requires native Go ints for sizes ≤ 64,
//     [N]byte arrays for bytesN, and *big.Int for wider integers)
package abi

import (
	"fmt"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// liquid scalar names and their canonical ABI spellings. Canonical names are
// also accepted as-is, so registrations may use either vocabulary.
var scalarNames = map[string]string{
	"u8": "uint8", "u16": "uint16", "u32": "uint32", "u64": "uint64",
	"u128": "uint128", "u256": "uint256",
	"i8": "int8", "i16": "int16", "i32": "int32", "i64": "int64",
	"i128": "int128", "i256": "int256",
	"String":  "string",
	"Address": "address",
	"Hash":    "bytes32",
	"bool":    "bool",
	"bytes":   "bytes",
}

// Canonical resolves a liquid or canonical type name to its canonical ABI
// spelling, or fails if the name does not denote a codec-compatible type.
func Canonical(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty type name")
	}
	// Vec<T> is sugar for the dynamic array T[].
	if strings.HasPrefix(name, "Vec<") && strings.HasSuffix(name, ">") {
		inner, err := Canonical(name[len("Vec<") : len(name)-1])
		if err != nil {
			return "", err
		}
		return inner + "[]", nil
	}
	// T[] and T[k] canonicalize their element type.
	if strings.HasSuffix(name, "]") {
		open := strings.LastIndex(name, "[")
		if open <= 0 {
			return "", fmt.Errorf("malformed array type %q", name)
		}
		inner, err := Canonical(name[:open])
		if err != nil {
			return "", err
		}
		return inner + name[open:], nil
	}
	if canonical, ok := scalarNames[name]; ok {
		return canonical, nil
	}
	// Possibly already canonical (uintN, intN, bytesN, ...); let the codec's
	// own parser be the final judge.
	if _, err := gethabi.NewType(name, "", nil); err != nil {
		return "", fmt.Errorf("unsupported type %q: %v", name, err)
	}
	return name, nil
}

// Shape is a validated, immutable ordered parameter list. Building a Shape is
// the one-time static shape check of the codec adapter: every declared type
// is resolved against the codec here, never per call.
type Shape struct {
	args  gethabi.Arguments
	names []string
}

// NewShape builds a Shape from type names in declared order. It fails fast on
// any name the codec cannot represent.
func NewShape(typeNames ...string) (*Shape, error) {
	s := &Shape{
		args:  make(gethabi.Arguments, 0, len(typeNames)),
		names: make([]string, 0, len(typeNames)),
	}
	for i, name := range typeNames {
		canonical, err := Canonical(name)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %v", i, err)
		}
		typ, err := gethabi.NewType(canonical, "", nil)
		if err != nil {
			return nil, fmt.Errorf("parameter %d (%s): %v", i, canonical, err)
		}
		s.args = append(s.args, gethabi.Argument{Type: typ})
		s.names = append(s.names, canonical)
	}
	return s, nil
}

// MustShape is NewShape for static registrations; it panics on invalid names,
// halting contract construction before any dispatch can happen.
func MustShape(typeNames ...string) *Shape {
	s, err := NewShape(typeNames...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of parameters in the shape.
func (s *Shape) Len() int {
	return len(s.args)
}

// Names returns the canonical parameter type names in declared order. These
// are the names hashed into the function selector.
func (s *Shape) Names() []string {
	return append([]string(nil), s.names...)
}

func (s *Shape) String() string {
	return "(" + strings.Join(s.names, ",") + ")"
}
