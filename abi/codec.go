package abi

import (
	"fmt"
	"math/big"
	"reflect"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethan75/liquid/primitives"
)

// Pack encodes values positionally against the shape. Values are Go-native:
// sized ints for scalars, *uint256.Int or *big.Int for wide integers,
// primitives.Hash for bytes32, []byte for bytes, common.Address for address,
// and []interface{} (or an already-typed slice) for arrays.
func (s *Shape) Pack(values ...interface{}) ([]byte, error) {
	if len(values) != len(s.args) {
		return nil, fmt.Errorf("shape %s takes %d values, got %d", s, len(s.args), len(values))
	}
	converted := make([]interface{}, len(values))
	for i, v := range values {
		cv, err := goToABI(s.args[i].Type, v)
		if err != nil {
			return nil, fmt.Errorf("value %d (%s): %v", i, s.names[i], err)
		}
		converted[i] = cv
	}
	return s.args.Pack(converted...)
}

// Unpack decodes data into the positional tuple the shape declares.
//
// Decode is shape-driven: the empty shape yields an empty tuple without
// consuming or inspecting data, so surplus bytes after the selector are
// ignored for zero-argument functions. Non-empty shapes surface any codec
// error unchanged.
func (s *Shape) Unpack(data []byte) ([]interface{}, error) {
	if len(s.args) == 0 {
		return []interface{}{}, nil
	}
	raw, err := s.args.Unpack(data)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(raw))
	for i, v := range raw {
		gv, err := abiToGo(s.args[i].Type, v)
		if err != nil {
			return nil, fmt.Errorf("value %d (%s): %v", i, s.names[i], err)
		}
		out[i] = gv
	}
	return out, nil
}

// goToABI converts a Go-native value to the form accounts/abi typeCheck
// expects: native sized integers for ≤ 64 bits, *big.Int above, [N]byte
// arrays (never slices) for bytesN.
func goToABI(typ gethabi.Type, val interface{}) (interface{}, error) {
	switch typ.T {
	case gethabi.UintTy:
		n, err := toBig(val)
		if err != nil {
			return nil, err
		}
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for uint%d", n, typ.Size)
		}
		if n.BitLen() > typ.Size {
			return nil, fmt.Errorf("value %s overflows uint%d", n, typ.Size)
		}
		switch {
		case typ.Size <= 8:
			return uint8(n.Uint64()), nil
		case typ.Size <= 16:
			return uint16(n.Uint64()), nil
		case typ.Size <= 32:
			return uint32(n.Uint64()), nil
		case typ.Size <= 64:
			return n.Uint64(), nil
		}
		return n, nil

	case gethabi.IntTy:
		n, err := toBig(val)
		if err != nil {
			return nil, err
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		max := new(big.Int).Sub(limit, big.NewInt(1))
		min := new(big.Int).Neg(limit)
		if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
			return nil, fmt.Errorf("value %s overflows int%d", n, typ.Size)
		}
		switch {
		case typ.Size <= 8:
			return int8(n.Int64()), nil
		case typ.Size <= 16:
			return int16(n.Int64()), nil
		case typ.Size <= 32:
			return int32(n.Int64()), nil
		case typ.Size <= 64:
			return n.Int64(), nil
		}
		return n, nil

	case gethabi.BoolTy:
		b, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", val)
		}
		return b, nil

	case gethabi.StringTy:
		str, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", val)
		}
		return str, nil

	case gethabi.BytesTy:
		b, ok := val.([]byte)
		if !ok {
			return nil, fmt.Errorf("expected []byte, got %T", val)
		}
		return b, nil

	case gethabi.FixedBytesTy:
		if h, ok := val.(primitives.Hash); ok && typ.Size == primitives.HashLength {
			return [primitives.HashLength]byte(h), nil
		}
		rv := reflect.ValueOf(val)
		if rv.Kind() == reflect.Array && rv.Len() == typ.Size && rv.Type().Elem().Kind() == reflect.Uint8 {
			return val, nil
		}
		b, ok := val.([]byte)
		if !ok {
			return nil, fmt.Errorf("bytes%d: expected []byte or [%d]byte, got %T", typ.Size, typ.Size, val)
		}
		if len(b) != typ.Size {
			return nil, fmt.Errorf("bytes%d: got %d bytes", typ.Size, len(b))
		}
		// typeCheck requires Array kind ([N]byte), not Slice.
		arr := reflect.New(reflect.ArrayOf(typ.Size, reflect.TypeOf(byte(0)))).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case gethabi.AddressTy:
		switch a := val.(type) {
		case common.Address:
			return a, nil
		case [common.AddressLength]byte:
			return common.Address(a), nil
		case []byte:
			if len(a) != common.AddressLength {
				return nil, fmt.Errorf("address: got %d bytes", len(a))
			}
			return common.BytesToAddress(a), nil
		}
		return nil, fmt.Errorf("expected address, got %T", val)

	case gethabi.SliceTy, gethabi.ArrayTy:
		want := typ.GetType()
		rv := reflect.ValueOf(val)
		if rv.IsValid() && rv.Type() == want {
			return val, nil
		}
		elems, ok := val.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected []interface{} or %s, got %T", want, val)
		}
		if typ.T == gethabi.ArrayTy && len(elems) != typ.Size {
			return nil, fmt.Errorf("array of %d elements, got %d", typ.Size, len(elems))
		}
		var out reflect.Value
		if typ.T == gethabi.SliceTy {
			out = reflect.MakeSlice(want, len(elems), len(elems))
		} else {
			out = reflect.New(want).Elem()
		}
		for i, el := range elems {
			cv, err := goToABI(*typ.Elem, el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(cv))
		}
		return out.Interface(), nil
	}
	return nil, fmt.Errorf("unsupported type %v", typ)
}

// abiToGo converts an accounts/abi decode result to the Go-native form the
// rest of the runtime traffics in.
func abiToGo(typ gethabi.Type, val interface{}) (interface{}, error) {
	switch typ.T {
	case gethabi.UintTy:
		if typ.Size > 64 {
			n, ok := val.(*big.Int)
			if !ok {
				return nil, fmt.Errorf("expected *big.Int, got %T", val)
			}
			u, overflow := uint256.FromBig(n)
			if overflow {
				return nil, fmt.Errorf("value %s overflows uint256", n)
			}
			return u, nil
		}
		return val, nil

	case gethabi.IntTy, gethabi.BoolTy, gethabi.StringTy, gethabi.BytesTy, gethabi.AddressTy:
		return val, nil

	case gethabi.FixedBytesTy:
		// Unpack returns a [N]byte reflect array.
		if typ.Size == primitives.HashLength {
			if arr, ok := val.([primitives.HashLength]byte); ok {
				return primitives.Hash(arr), nil
			}
		}
		rv := reflect.ValueOf(val)
		if rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("expected [%d]byte, got %T", typ.Size, val)
		}
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b, nil

	case gethabi.SliceTy, gethabi.ArrayTy:
		rv := reflect.ValueOf(val)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("expected sequence, got %T", val)
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			gv, err := abiToGo(*typ.Elem, rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			out[i] = gv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type %v", typ)
}

// toBig widens any supported integer representation to *big.Int.
func toBig(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case *big.Int:
		return new(big.Int).Set(v), nil
	case *uint256.Int:
		return v.ToBig(), nil
	}
	return nil, fmt.Errorf("expected integer, got %T", val)
}
