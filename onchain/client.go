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

// Package onchain implements schema and attestation operations against the
// Sign Protocol contract.
//
// Every write runs the same sequence of states:
//
//	BUILD_ARGS -> SIMULATE -> SUBMIT -> AWAIT_RECEIPT -> DECODE_EVENT
//
// Before any write the wallet is moved to the configured chain, adding the
// chain to the wallet first if it does not recognize it. A failed
// simulation aborts before the wallet is asked to sign. Only the first log
// of the receipt is decoded: the contract emits exactly one event per call.
//
// Nothing is retried. The first error is returned to the caller.
package onchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/DaevMithran/SignxLit/evm"
	"github.com/DaevMithran/SignxLit/lit"
	"github.com/DaevMithran/SignxLit/log"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/DaevMithran/SignxLit/wallet"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is the node API used for reads, simulation and receipts.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg,
		blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	TransactionReceipt(ctx context.Context,
		txHash common.Hash) (*types.Receipt, error)
}

// Encrypter encrypts gated attestation payloads. *lit.Client satisfies
// it.
type Encrypter interface {
	Encrypt(ctx context.Context, plaintext []byte,
		conds accs.Conditions) (lit.EncryptResponse, error)
	Decrypt(ctx context.Context, ciphertext, hash string,
		conds accs.Conditions) ([]byte, error)
}

// Storage fetches schema and attestation documents stored on Arweave or
// IPFS. *index.Client satisfies it.
type Storage interface {
	StorageData(ctx context.Context, dataID string, loc sp.DataLocation,
		result interface{}) error
}

type Config struct {
	Chain   evm.Chain
	Backend Backend
	Wallet  wallet.Wallet

	// Encrypter is required for gated attestations.
	Encrypter Encrypter
	// Storage is required to read Arweave and IPFS data.
	Storage Storage

	// PollInterval is the time between receipt queries. Defaults to 2s.
	PollInterval time.Duration
}

type Client struct {
	chain     evm.Chain
	backend   Backend
	wallet    wallet.Wallet
	encrypter Encrypter
	storage   Storage
	poll      time.Duration
	log       log.Log
}

func New(cfg Config) (*Client, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("onchain: no backend")
	}
	if cfg.Wallet == nil {
		return nil, fmt.Errorf("onchain: no wallet")
	}
	if cfg.Chain.Contract == (common.Address{}) {
		return nil, fmt.Errorf("onchain: no contract address for %v", cfg.Chain)
	}
	c := &Client{
		chain:     cfg.Chain,
		backend:   cfg.Backend,
		wallet:    cfg.Wallet,
		encrypter: cfg.Encrypter,
		storage:   cfg.Storage,
		poll:      cfg.PollInterval,
		log:       log.New("onchain"),
	}
	if c.poll == 0 {
		c.poll = 2 * time.Second
	}
	return c, nil
}

// Chain returns the chain c writes to.
func (c *Client) Chain() evm.Chain { return c.chain }

// Address returns the wallet address.
func (c *Client) Address() common.Address { return c.wallet.Address() }
