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

package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DaevMithran/SignxLit/evm"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Injected forwards signing, chain management and transaction submission to
// a wallet provider speaking the EIP-1193 JSON-RPC methods.
type Injected struct {
	client  *rpc.Client
	address common.Address
}

// NewInjected requests account access from the provider and uses its first
// account.
func NewInjected(ctx context.Context, client *rpc.Client) (*Injected, error) {
	var accounts []common.Address
	if err := client.CallContext(ctx, &accounts,
		"eth_requestAccounts"); err != nil {
		return nil, mapError(err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("wallet provider returned no accounts")
	}
	return &Injected{client: client, address: accounts[0]}, nil
}

func (w *Injected) Address() common.Address { return w.address }

func (w *Injected) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := w.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, mapError(err)
	}
	return uint64(id), nil
}

type switchChainParams struct {
	ChainID hexutil.Uint64 `json:"chainId"`
}

func (w *Injected) SwitchChain(ctx context.Context, chainID uint64) error {
	return mapError(w.client.CallContext(ctx, nil,
		"wallet_switchEthereumChain",
		switchChainParams{ChainID: hexutil.Uint64(chainID)}))
}

func (w *Injected) AddChain(ctx context.Context, chain evm.Chain) error {
	return mapError(w.client.CallContext(ctx, nil,
		"wallet_addEthereumChain", chain.AddChainParams()))
}

type sendTxParams struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Data  hexutil.Bytes  `json:"data"`
	Value *hexutil.Big   `json:"value,omitempty"`
	Gas   hexutil.Uint64 `json:"gas"`
}

func (w *Injected) SendTransaction(ctx context.Context,
	req TxRequest) (common.Hash, error) {
	var hash common.Hash
	err := w.client.CallContext(ctx, &hash, "eth_sendTransaction",
		sendTxParams{
			From:  w.address,
			To:    req.To,
			Data:  req.Data,
			Value: (*hexutil.Big)(req.Value),
			Gas:   hexutil.Uint64(req.Gas),
		})
	return hash, mapError(err)
}

func (w *Injected) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	var sig hexutil.Bytes
	err := w.client.CallContext(ctx, &sig, "personal_sign",
		hexutil.Bytes(msg), w.address)
	return sig, mapError(err)
}

func (w *Injected) SignTypedData(ctx context.Context,
	data apitypes.TypedData) ([]byte, error) {
	typed, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var sig hexutil.Bytes
	err = w.client.CallContext(ctx, &sig, "eth_signTypedData_v4",
		w.address, string(typed))
	return sig, mapError(err)
}
