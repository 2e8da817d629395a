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

// Package wallet provides the account that signs and submits transactions.
//
// Two implementations are provided and callers choose one explicitly:
// PrivateKey holds a key in process and submits through a node, Injected
// forwards every request to an EIP-1193 style provider over JSON-RPC.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/DaevMithran/SignxLit/evm"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Provider error codes defined by EIP-1193 and EIP-3326.
const (
	CodeUserRejected       = 4001
	CodeChainNotRecognized = 4902
)

var (
	ErrUserRejected       = errors.New("user rejected the request")
	ErrChainNotRecognized = errors.New("chain not recognized by wallet")
)

// TxRequest is a simulated contract call ready to be signed.
type TxRequest struct {
	To    common.Address
	Data  []byte
	Value *big.Int
	Gas   uint64
}

type Wallet interface {
	Address() common.Address
	// ChainID returns the chain the wallet currently submits to.
	ChainID(ctx context.Context) (uint64, error)
	// SwitchChain returns an error wrapping ErrChainNotRecognized if the
	// chain must first be added with AddChain.
	SwitchChain(ctx context.Context, chainID uint64) error
	AddChain(ctx context.Context, chain evm.Chain) error
	SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error)
	// SignMessage signs msg with the EIP-191 personal message prefix.
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
	SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)
}

// Signer is the subset of Wallet needed to authenticate as an address.
type Signer interface {
	Address() common.Address
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
}

// mapError wraps provider errors carrying a known EIP-1193 code with the
// matching sentinel error.
func mapError(err error) error {
	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) {
		return err
	}
	switch rpcErr.ErrorCode() {
	case CodeUserRejected:
		return fmt.Errorf("%w: %v", ErrUserRejected, err)
	case CodeChainNotRecognized:
		return fmt.Errorf("%w: %v", ErrChainNotRecognized, err)
	}
	return err
}
