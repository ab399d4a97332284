package abi

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethan75/liquid/primitives"
)

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"u8":            "uint8",
		"u32":           "uint32",
		"u256":          "uint256",
		"i64":           "int64",
		"String":        "string",
		"Address":       "address",
		"Hash":          "bytes32",
		"bool":          "bool",
		"bytes":         "bytes",
		"uint32":        "uint32", // canonical names pass through
		"bytes4":        "bytes4",
		"u32[]":         "uint32[]",
		"u32[3]":        "uint32[3]",
		"Vec<u8>":       "uint8[]",
		"Vec<String>":   "string[]",
		"Vec<Vec<u32>>": "uint32[][]",
	}
	for in, want := range cases {
		got, err := Canonical(in)
		if err != nil {
			t.Errorf("Canonical(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", "u512", "float64", "Vec<", "[]", "map[string]int"} {
		if _, err := Canonical(bad); err == nil {
			t.Errorf("Canonical(%q): expected error", bad)
		}
	}
}

func TestShapeBuildRejectsBadTypes(t *testing.T) {
	if _, err := NewShape("u32", "notatype"); err == nil {
		t.Fatal("expected shape construction to fail")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustShape must panic on invalid names")
		}
	}()
	MustShape("u999")
}

// roundTrip packs values against the shape and unpacks them again.
func roundTrip(t *testing.T, s *Shape, values ...interface{}) []interface{} {
	t.Helper()
	data, err := s.Pack(values...)
	if err != nil {
		t.Fatalf("Pack%s: %v", s, err)
	}
	out, err := s.Unpack(data)
	if err != nil {
		t.Fatalf("Unpack%s: %v", s, err)
	}
	return out
}

func TestRoundTripScalars(t *testing.T) {
	s := MustShape("u8", "u32", "u64", "i32", "bool", "String")
	out := roundTrip(t, s, uint8(7), uint32(42), uint64(1<<40), int32(-13), true, "liquid")
	want := []interface{}{uint8(7), uint32(42), uint64(1 << 40), int32(-13), true, "liquid"}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", out, want)
	}
}

func TestRoundTripWideIntegers(t *testing.T) {
	s := MustShape("u256", "u128")
	big1 := uint256.MustFromHex("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	big2 := uint256.NewInt(99)
	out := roundTrip(t, s, big1, big2)
	if got := out[0].(*uint256.Int); !got.Eq(big1) {
		t.Fatalf("u256 mismatch: %s", got)
	}
	if got := out[1].(*uint256.Int); !got.Eq(big2) {
		t.Fatalf("u128 mismatch: %s", got)
	}
}

func TestRoundTripBytesAndHash(t *testing.T) {
	h, err := primitives.HexToHash("27772adc63db07aae765b71eb2b533064fa781bd57457e1b138592d8198d0959")
	if err != nil {
		t.Fatal(err)
	}
	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	s := MustShape("Hash", "bytes", "Address", "bytes4")
	out := roundTrip(t, s, h, []byte{1, 2, 3}, addr, []byte{0xde, 0xad, 0xbe, 0xef})
	if out[0].(primitives.Hash) != h {
		t.Fatalf("hash mismatch: %v", out[0])
	}
	if !bytes.Equal(out[1].([]byte), []byte{1, 2, 3}) {
		t.Fatalf("bytes mismatch: %v", out[1])
	}
	if out[2].(common.Address) != addr {
		t.Fatalf("address mismatch: %v", out[2])
	}
	if !bytes.Equal(out[3].([]byte), []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("bytes4 mismatch: %v", out[3])
	}
}

func TestRoundTripNestedComposites(t *testing.T) {
	s := MustShape("u32[]", "Vec<String>", "u32[2]")
	out := roundTrip(t, s,
		[]interface{}{uint32(1), uint32(2), uint32(3)},
		[]interface{}{"a", "bb"},
		[]interface{}{uint32(8), uint32(9)},
	)
	want := []interface{}{
		[]interface{}{uint32(1), uint32(2), uint32(3)},
		[]interface{}{"a", "bb"},
		[]interface{}{uint32(8), uint32(9)},
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", out, want)
	}
}

func TestEmptyShapeIgnoresData(t *testing.T) {
	s := MustShape()
	for _, data := range [][]byte{nil, {}, {0xff, 0x01, 0x02}} {
		out, err := s.Unpack(data)
		if err != nil {
			t.Fatalf("Unpack(%x): %v", data, err)
		}
		if len(out) != 0 {
			t.Fatalf("Unpack(%x) = %v, want empty tuple", data, out)
		}
	}
	data, err := s.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("empty pack produced %d bytes", len(data))
	}
}

func TestUnpackMalformed(t *testing.T) {
	s := MustShape("u32", "String")
	good, err := s.Pack(uint32(1), "x")
	if err != nil {
		t.Fatal(err)
	}
	for _, data := range [][]byte{nil, good[:8], good[:len(good)-1]} {
		if _, err := s.Unpack(data); err == nil {
			t.Errorf("Unpack of %d malformed bytes: expected error", len(data))
		}
	}
}

func TestPackRejectsBadValues(t *testing.T) {
	s := MustShape("u8")
	if _, err := s.Pack(uint32(300)); err == nil {
		t.Fatal("expected overflow error")
	}
	if _, err := s.Pack(int32(-1)); err == nil {
		t.Fatal("expected negative value error")
	}
	if _, err := s.Pack(); err == nil {
		t.Fatal("expected arity error")
	}
	if _, err := s.Pack("nope"); err == nil {
		t.Fatal("expected type error")
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("u32", "42")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := MustShape("u32").Pack(v); err != nil {
		t.Fatalf("parsed value not packable: %v", err)
	}
	if _, err := ParseValue("u32", "abc"); err == nil {
		t.Fatal("expected integer parse error")
	}
	if _, err := ParseValue("bool", "true"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseValue("Address", "0x00000000000000000000000000000000000000aa"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseValue("u32[]", "1,2"); err == nil {
		t.Fatal("expected composite values to be rejected")
	}
}
