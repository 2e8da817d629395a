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

package lit

import (
	"context"
	"fmt"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
)

// RPCNetwork is a Network reached over JSON-RPC 2.0. RPCNetwork embeds a
// jsonrpc2.Client, and thus also the http.Client. Use jsonrpc2.Client's
// BasicAuth settings to set up BasicAuth and http.Client's transport
// settings to configure TLS.
type RPCNetwork struct {
	URL string
	jrpc.Client
}

const DefaultURL = "http://localhost:7470"

// NewRPCNetwork returns an RPCNetwork for url with a 15 second timeout.
func NewRPCNetwork(url string) *RPCNetwork {
	n := &RPCNetwork{URL: url}
	n.Timeout = 15 * time.Second
	return n
}

func (n *RPCNetwork) request(ctx context.Context,
	method string, params, result interface{}) error {
	if n.DebugRequest {
		fmt.Println("lit:", n.URL)
	}
	return n.Client.Request(ctx, n.URL, method, params, result)
}

func (n *RPCNetwork) LatestBlockhash(ctx context.Context) (string, error) {
	var hash string
	err := n.request(ctx, "lit_latestBlockhash", nil, &hash)
	return hash, err
}

func (n *RPCNetwork) ConnectedNodes(ctx context.Context) ([]string, error) {
	var nodes []string
	err := n.request(ctx, "lit_connectedNodes", nil, &nodes)
	return nodes, err
}

func (n *RPCNetwork) Encrypt(ctx context.Context,
	req EncryptRequest) (EncryptResponse, error) {
	var res EncryptResponse
	err := n.request(ctx, "lit_encrypt", req, &res)
	return res, err
}

func (n *RPCNetwork) Decrypt(ctx context.Context,
	req DecryptRequest) (DecryptResponse, error) {
	var res DecryptResponse
	err := n.request(ctx, "lit_decrypt", req, &res)
	return res, err
}
