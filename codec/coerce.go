// MIT License
//
// Copyright 2024 The SignxLit Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// Coerce converts v into the Go type that abi packs for t. Besides the
// native types, JSON decoded values are accepted: float64 and decimal or 0x
// hex strings for integers, 0x hex strings for addresses and bytes, and
// []interface{} for arrays.
func Coerce(v interface{}, t abi.Type) (interface{}, error) {
	switch t.T {
	case abi.StringTy:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case abi.BoolTy:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case abi.AddressTy:
		switch a := v.(type) {
		case common.Address:
			return a, nil
		case string:
			if common.IsHexAddress(a) {
				return common.HexToAddress(a), nil
			}
			return nil, fmt.Errorf("invalid address: %q", a)
		}
	case abi.IntTy, abi.UintTy:
		return coerceInt(v, t)
	case abi.BytesTy:
		if b, ok := toBytes(v); ok {
			return b, nil
		}
	case abi.FixedBytesTy:
		b, ok := toBytes(v)
		if !ok {
			break
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("cannot use %v bytes as %v", len(b), t)
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil
	case abi.SliceTy, abi.ArrayTy:
		return coerceList(v, t)
	default:
		return nil, fmt.Errorf("unsupported type %v", t)
	}
	return nil, fmt.Errorf("cannot use %T as %v", v, t)
}

func coerceInt(v interface{}, t abi.Type) (interface{}, error) {
	n, err := toBig(v)
	if err != nil {
		return nil, err
	}
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%v overflows %v", n, t)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("%v overflows %v", n, t)
		}
	}
	typ := t.GetType()
	switch {
	case typ == bigIntType:
		return n, nil
	case t.T == abi.IntTy:
		return reflect.ValueOf(n.Int64()).Convert(typ).Interface(), nil
	default:
		return reflect.ValueOf(n.Uint64()).Convert(typ).Interface(), nil
	}
}

func toBig(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil *big.Int")
		}
		return new(big.Int).Set(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%v is not an integer", n)
		}
		i, _ := big.NewFloat(n).Int(nil)
		return i, nil
	case json.Number:
		return parseBig(string(n))
	case string:
		return parseBig(n)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, fmt.Errorf("cannot use %T as an integer", v)
}

func parseBig(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", s)
	}
	return n, nil
}

func toBytes(v interface{}) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return b, true
	case string:
		data, err := hexutil.Decode(b)
		return data, err == nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b, true
	}
	return nil, false
}

func coerceList(v interface{}, t abi.Type) (interface{}, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("cannot use %T as %v", v, t)
	}
	var list reflect.Value
	if t.T == abi.SliceTy {
		list = reflect.MakeSlice(t.GetType(), rv.Len(), rv.Len())
	} else {
		if rv.Len() != t.Size {
			return nil, fmt.Errorf("cannot use %v elements as %v",
				rv.Len(), t)
		}
		list = reflect.New(t.GetType()).Elem()
	}
	for i := 0; i < rv.Len(); i++ {
		e, err := Coerce(rv.Index(i).Interface(), *t.Elem)
		if err != nil {
			return nil, fmt.Errorf("[%v]: %w", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(e))
	}
	return list.Interface(), nil
}
