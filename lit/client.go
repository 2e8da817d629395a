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
	"crypto/rand"
	"io"
	"time"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/DaevMithran/SignxLit/log"
	"github.com/DaevMithran/SignxLit/wallet"
)

type Config struct {
	// Chain is used for the default access control condition.
	Chain string
	// Domain is the SIWE domain presented to the wallet.
	Domain string

	// Now and Rand are used to establish sessions. They default to
	// time.Now and crypto/rand.
	Now  func() time.Time
	Rand io.Reader
}

// Client encrypts and decrypts payloads on a Network on behalf of a wallet.
type Client struct {
	network Network
	signer  wallet.Signer
	chain   string
	domain  string
	now     func() time.Time
	rand    io.Reader
	log     log.Log
}

func NewClient(network Network, signer wallet.Signer, cfg Config) *Client {
	c := &Client{
		network: network,
		signer:  signer,
		chain:   cfg.Chain,
		domain:  cfg.Domain,
		now:     cfg.Now,
		rand:    cfg.Rand,
		log:     log.New("lit"),
	}
	if c.chain == "" {
		c.chain = accs.DefaultChain
	}
	if c.domain == "" {
		c.domain = "localhost"
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.rand == nil {
		c.rand = rand.Reader
	}
	return c
}

// Chain returns the chain name used for the default condition.
func (c *Client) Chain() string { return c.chain }

// Encrypt encrypts plaintext so that only parties satisfying conds can
// decrypt it. If conds is empty the default condition is used.
func (c *Client) Encrypt(ctx context.Context, plaintext []byte,
	conds accs.Conditions) (EncryptResponse, error) {
	conds = accs.OrDefault(conds, c.chain)
	if err := conds.Validate(); err != nil {
		return EncryptResponse{}, err
	}
	return c.network.Encrypt(ctx, EncryptRequest{
		AccessControlConditions: conds,
		DataToEncrypt:           plaintext,
		Chain:                   c.chain,
	})
}

// Decrypt establishes a new session and decrypts ciphertext. conds must be
// the conditions used to encrypt, or empty if the default was used.
func (c *Client) Decrypt(ctx context.Context, ciphertext, hash string,
	conds accs.Conditions) ([]byte, error) {
	conds = accs.OrDefault(conds, c.chain)
	if err := conds.Validate(); err != nil {
		return nil, err
	}
	sigs, err := c.sessionSigs(ctx)
	if err != nil {
		return nil, err
	}
	res, err := c.network.Decrypt(ctx, DecryptRequest{
		AccessControlConditions: conds,
		Ciphertext:              ciphertext,
		DataToEncryptHash:       hash,
		Chain:                   c.chain,
		SessionSigs:             sigs,
	})
	if err != nil {
		return nil, err
	}
	return res.DecryptedData, nil
}
