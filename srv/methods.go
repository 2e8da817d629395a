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

import (
	"bytes"
	"context"
	"encoding/json"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
	"github.com/DaevMithran/SignxLit/lit"
)

func methods(n lit.Network) jrpc.MethodMap {
	return jrpc.MethodMap{
		"lit_latestBlockhash": latestBlockhash(n),
		"lit_connectedNodes":  connectedNodes(n),
		"lit_encrypt":         encrypt(n),
		"lit_decrypt":         decrypt(n),
	}
}

func latestBlockhash(n lit.Network) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		if err := validate(data, nil); err != nil {
			return err
		}
		hash, err := n.LatestBlockhash(ctx)
		if err != nil {
			return networkError(err)
		}
		return hash
	}
}

func connectedNodes(n lit.Network) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		if err := validate(data, nil); err != nil {
			return err
		}
		nodes, err := n.ConnectedNodes(ctx)
		if err != nil {
			return networkError(err)
		}
		return nodes
	}
}

func encrypt(n lit.Network) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var req lit.EncryptRequest
		if err := validate(data, &req); err != nil {
			return err
		}
		if len(req.Chain) == 0 ||
			req.AccessControlConditions.Validate() != nil {
			return ErrorEncrypt
		}
		res, err := n.Encrypt(ctx, req)
		if err != nil {
			return networkError(err)
		}
		log.Debugf("encrypted %v", res.DataToEncryptHash)
		return res
	}
}

func decrypt(n lit.Network) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var req lit.DecryptRequest
		if err := validate(data, &req); err != nil {
			return err
		}
		if len(req.Chain) == 0 || len(req.Ciphertext) == 0 ||
			len(req.DataToEncryptHash) == 0 ||
			req.AccessControlConditions.Validate() != nil {
			return ErrorDecrypt
		}
		res, err := n.Decrypt(ctx, req)
		if err != nil {
			log.Debugf("decrypt %v: %v", req.DataToEncryptHash, err)
			return networkError(err)
		}
		return res
	}
}

// validate strictly unmarshals data into params. A nil params accepts no
// "params".
func validate(data json.RawMessage, params interface{}) error {
	empty := len(data) == 0 || bytes.Equal(data, []byte("null"))
	if params == nil {
		if !empty {
			return ErrorNoParams
		}
		return nil
	}
	if empty {
		return jrpc.ErrorInvalidParams(`"params" required`)
	}
	if err := unmarshalStrict(data, params); err != nil {
		return jrpc.ErrorInvalidParams(err.Error())
	}
	return nil
}

func unmarshalStrict(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	d := json.NewDecoder(b)
	d.DisallowUnknownFields()
	return d.Decode(v)
}
