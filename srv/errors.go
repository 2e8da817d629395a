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

package srv

import jrpc "github.com/AdamSLevy/jsonrpc2/v14"

var (
	ErrorNoParams = jrpc.ErrorInvalidParams(`no "params" accepted`)
	ErrorEncrypt  = jrpc.ErrorInvalidParams(
		`required: valid "accessControlConditions" and "chain"`)
	ErrorDecrypt = jrpc.ErrorInvalidParams(
		`required: valid "accessControlConditions", "ciphertext", "dataToEncryptHash" and "chain"`)
)

// ErrorNetworkCode is returned when the underlying network refuses a
// request, for example due to a bad session signature or mismatched
// conditions.
const ErrorNetworkCode = -32800

func networkError(err error) jrpc.Error {
	return jrpc.Error{Code: ErrorNetworkCode, Message: "Network Error",
		Data: err.Error()}
}
