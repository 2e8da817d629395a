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

package onchain

import (
	"errors"
	"fmt"
)

var (
	ErrNoLogs       = errors.New("transaction receipt has no logs")
	ErrTxFailed     = errors.New("transaction failed")
	ErrNoEncryption = errors.New("gated attestations require an encryption client")
	ErrNoStorage    = errors.New("off-chain data requires a storage client")
)

// RevertError is returned when simulating a write fails. No signature has
// been requested when it is returned.
type RevertError struct {
	Method string
	Err    error
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("simulate %v: %v", e.Method, e.Err)
}

func (e *RevertError) Unwrap() error { return e.Err }

// UnexpectedEventError is returned when the first log of a receipt is not
// the event emitted by the operation.
type UnexpectedEventError struct {
	Want, Got string
}

func (e *UnexpectedEventError) Error() string {
	return fmt.Sprintf("expected %v event, got %v", e.Want, e.Got)
}
