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
	"errors"
	"fmt"
)

var ErrFieldLengthMismatch = errors.New("field length mismatch")

// FieldError reports a schema field that has no value of a matching type in
// an attestation payload.
type FieldError struct {
	Field string
	Type  string
	// Err is nil when the field is absent.
	Err error
}

func (err *FieldError) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("field %q of type %v is missing", err.Field, err.Type)
	}
	return fmt.Sprintf("field %q of type %v: %v", err.Field, err.Type, err.Err)
}

func (err *FieldError) Unwrap() error { return err.Err }

// DecodeError is returned by Decode when neither the tuple nor the flat
// shape could be decoded.
type DecodeError struct {
	Tuple error
	Flat  error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("decode: tuple: %v; flat: %v", err.Tuple, err.Flat)
}
