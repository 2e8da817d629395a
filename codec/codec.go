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
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/DaevMithran/SignxLit/sp"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

func arguments(items []sp.SchemaItem) (abi.Arguments, error) {
	args := make(abi.Arguments, len(items))
	for i, item := range items {
		typ, err := sp.ParseType(item.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", item.Name, err)
		}
		args[i] = abi.Argument{Name: item.Name, Type: typ}
	}
	return args, nil
}

func tupleArguments(items []sp.SchemaItem) (abi.Arguments, error) {
	components := make([]abi.ArgumentMarshaling, len(items))
	for i, item := range items {
		if _, err := sp.ParseType(item.Type); err != nil {
			return nil, fmt.Errorf("field %q: %w", item.Name, err)
		}
		components[i] = abi.ArgumentMarshaling{Name: item.Name, Type: item.Type}
	}
	typ, err := abi.NewType("tuple", "", components)
	if err != nil {
		return nil, err
	}
	return abi.Arguments{{Type: typ}}, nil
}

// project returns the values of data in the order of args, each coerced to
// the Go type its ABI type packs from.
func project(data map[string]interface{}, args abi.Arguments) ([]interface{}, error) {
	values := make([]interface{}, len(args))
	for i, arg := range args {
		v, ok := data[arg.Name]
		if !ok {
			return nil, &FieldError{Field: arg.Name, Type: arg.Type.String()}
		}
		c, err := Coerce(v, arg.Type)
		if err != nil {
			return nil, &FieldError{Field: arg.Name,
				Type: arg.Type.String(), Err: err}
		}
		values[i] = c
	}
	return values, nil
}

// Encode returns the flat ABI encoding of data in the field order of items.
// Keys of data not named by items are ignored.
func Encode(data map[string]interface{}, items []sp.SchemaItem) ([]byte, error) {
	args, err := arguments(items)
	if err != nil {
		return nil, err
	}
	values, err := project(data, args)
	if err != nil {
		return nil, err
	}
	return args.Pack(values...)
}

// EncodeTuple returns the ABI encoding of data as a single tuple whose
// components are items.
func EncodeTuple(data map[string]interface{}, items []sp.SchemaItem) ([]byte, error) {
	args, err := tupleArguments(items)
	if err != nil {
		return nil, err
	}
	flat, err := arguments(items)
	if err != nil {
		return nil, err
	}
	values, err := project(data, flat)
	if err != nil {
		return nil, err
	}
	tuple := reflect.New(args[0].Type.GetType()).Elem()
	for i, v := range values {
		tuple.Field(i).Set(reflect.ValueOf(v))
	}
	return args.Pack(tuple.Interface())
}

// Decode returns the payload in data keyed by the names of items. The tuple
// shape is tried first, then the flat shape. A shape is only accepted when
// the decoded values re-encode to exactly data.
func Decode(data []byte, items []sp.SchemaItem) (map[string]interface{}, error) {
	m, tupleErr := decodeTuple(data, items)
	if tupleErr == nil {
		return m, nil
	}
	m, flatErr := decodeFlat(data, items)
	if flatErr == nil {
		return m, nil
	}
	return nil, &DecodeError{Tuple: tupleErr, Flat: flatErr}
}

func decodeTuple(data []byte, items []sp.SchemaItem) (map[string]interface{}, error) {
	args, err := tupleArguments(items)
	if err != nil {
		return nil, err
	}
	values, err := args.Unpack(data)
	if err != nil {
		return nil, err
	}
	if err := canonical(data, args, values); err != nil {
		return nil, err
	}
	tuple := reflect.ValueOf(values[0])
	m := make(map[string]interface{}, len(items))
	for i, item := range items {
		m[item.Name] = tuple.Field(i).Interface()
	}
	return m, nil
}

func decodeFlat(data []byte, items []sp.SchemaItem) (map[string]interface{}, error) {
	args, err := arguments(items)
	if err != nil {
		return nil, err
	}
	values, err := args.Unpack(data)
	if err != nil {
		return nil, err
	}
	if err := canonical(data, args, values); err != nil {
		return nil, err
	}
	m := make(map[string]interface{}, len(items))
	for i, item := range items {
		m[item.Name] = values[i]
	}
	return m, nil
}

var errNonCanonical = errors.New("non-canonical encoding")

// canonical reports whether values re-encode under args to exactly data.
func canonical(data []byte, args abi.Arguments, values []interface{}) error {
	repacked, err := args.Pack(values...)
	if err != nil {
		return err
	}
	if !bytes.Equal(repacked, data) {
		return errNonCanonical
	}
	return nil
}

// Validate checks that data holds exactly one value for each field of items
// and that each value can be encoded as the field's type. The field count
// is checked before any individual field.
func Validate(data map[string]interface{}, items []sp.SchemaItem) error {
	if len(data) != len(items) {
		return ErrFieldLengthMismatch
	}
	args, err := arguments(items)
	if err != nil {
		return err
	}
	_, err = project(data, args)
	return err
}
