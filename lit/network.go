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

// Package lit encrypts attestation payloads under access control conditions
// using a threshold encryption network.
//
// Encryption needs no authentication. Decryption requires session
// signatures: a fresh session key is generated for every Decrypt call and
// the wallet signs a SIWE message delegating the access control decryption
// capability to it for ten minutes. Session keys and signatures are never
// stored.
package lit

import (
	"context"

	"github.com/DaevMithran/SignxLit/accs"
)

type EncryptRequest struct {
	AccessControlConditions accs.Conditions `json:"accessControlConditions"`
	DataToEncrypt           []byte          `json:"dataToEncrypt"`
	Chain                   string          `json:"chain"`
}

type EncryptResponse struct {
	Ciphertext        string `json:"ciphertext"`
	DataToEncryptHash string `json:"dataToEncryptHash"`
}

type DecryptRequest struct {
	AccessControlConditions accs.Conditions    `json:"accessControlConditions"`
	Ciphertext              string             `json:"ciphertext"`
	DataToEncryptHash       string             `json:"dataToEncryptHash"`
	Chain                   string             `json:"chain"`
	SessionSigs             map[string]AuthSig `json:"sessionSigs"`
}

type DecryptResponse struct {
	DecryptedData []byte `json:"decryptedData"`
}

// Network is the threshold encryption network.
type Network interface {
	// LatestBlockhash returns the blockhash used as the SIWE nonce.
	LatestBlockhash(ctx context.Context) (string, error)
	// ConnectedNodes returns the addresses of the nodes that each need a
	// session signature.
	ConnectedNodes(ctx context.Context) ([]string, error)
	Encrypt(ctx context.Context, req EncryptRequest) (EncryptResponse, error)
	Decrypt(ctx context.Context, req DecryptRequest) (DecryptResponse, error)
}
