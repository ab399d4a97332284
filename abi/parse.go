package abi

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethan75/liquid/primitives"
)

// ParseValue converts the textual rendering of a value into the Go-native
// form Pack accepts, for the given liquid or canonical type name. This is the
// command-line entry into the codec; composite values are out of its scope.
func ParseValue(typeName, s string) (interface{}, error) {
	canonical, err := Canonical(typeName)
	if err != nil {
		return nil, err
	}
	typ, err := gethabi.NewType(canonical, "", nil)
	if err != nil {
		return nil, err
	}
	switch typ.T {
	case gethabi.UintTy, gethabi.IntTy:
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		return n, nil
	case gethabi.BoolTy:
		return strconv.ParseBool(s)
	case gethabi.StringTy:
		return s, nil
	case gethabi.BytesTy:
		return parseHexBytes(s)
	case gethabi.FixedBytesTy:
		b, err := parseHexBytes(s)
		if err != nil {
			return nil, err
		}
		if typ.Size == primitives.HashLength {
			h, err := primitives.BytesToHash(b)
			if err != nil {
				return nil, err
			}
			return h, nil
		}
		if len(b) != typ.Size {
			return nil, fmt.Errorf("bytes%d: got %d bytes", typ.Size, len(b))
		}
		return b, nil
	case gethabi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	}
	return nil, fmt.Errorf("%s values are not supported on the command line", canonical)
}

func parseHexBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
