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
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/DaevMithran/SignxLit/evm"
	"github.com/DaevMithran/SignxLit/log"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Backend is the node API used by PrivateKey. *ethclient.Client satisfies
// it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Dialer connects to the node at url.
type Dialer func(ctx context.Context, url string) (Backend, error)

// Dial is the default Dialer.
func Dial(ctx context.Context, url string) (Backend, error) {
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ParsePrivateKey parses a hex encoded secp256k1 key with or without the 0x
// prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	return key, nil
}

// PrivateKey signs with an in process key and submits EIP-1559
// transactions through a node. Switching chains moves it to a node of a
// chain previously registered with AddChain.
type PrivateKey struct {
	key     *ecdsa.PrivateKey
	address common.Address
	dial    Dialer
	log     log.Log

	mu      sync.RWMutex
	backend Backend
	chains  map[uint64]evm.Chain
}

// NewPrivateKey returns a PrivateKey submitting through backend. If dial
// is nil, Dial is used.
func NewPrivateKey(key *ecdsa.PrivateKey, backend Backend, dial Dialer) *PrivateKey {
	if dial == nil {
		dial = Dial
	}
	return &PrivateKey{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		dial:    dial,
		log:     log.New("wallet"),
		backend: backend,
		chains:  make(map[uint64]evm.Chain),
	}
}

func (w *PrivateKey) Address() common.Address { return w.address }

func (w *PrivateKey) node() Backend {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.backend
}

func (w *PrivateKey) ChainID(ctx context.Context) (uint64, error) {
	id, err := w.node().ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (w *PrivateKey) SwitchChain(ctx context.Context, chainID uint64) error {
	current, err := w.ChainID(ctx)
	if err != nil {
		return err
	}
	if current == chainID {
		return nil
	}
	w.mu.RLock()
	chain, ok := w.chains[chainID]
	w.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %v", ErrChainNotRecognized, chainID)
	}
	backend, err := w.dial(ctx, chain.RPCURL())
	if err != nil {
		return fmt.Errorf("dial %v: %w", chain, err)
	}
	w.log.Debugf("switched from chain %v to %v", current, chain)
	w.mu.Lock()
	w.backend = backend
	w.mu.Unlock()
	return nil
}

func (w *PrivateKey) AddChain(_ context.Context, chain evm.Chain) error {
	if chain.RPCURL() == "" {
		return fmt.Errorf("chain %v: no RPC URL", chain)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chains[chain.ID] = chain
	return nil
}

func (w *PrivateKey) SendTransaction(ctx context.Context,
	req TxRequest) (common.Hash, error) {
	backend := w.node()
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	nonce, err := backend.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce: %w", err)
	}
	tip, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas tip: %w", err)
	}
	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	to := req.To
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       req.Gas,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), w.key)
	if err != nil {
		return common.Hash{}, err
	}
	if err := backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, err
	}
	return signed.Hash(), nil
}

func (w *PrivateKey) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	return w.sign(accounts.TextHash(msg))
}

func (w *PrivateKey) SignTypedData(_ context.Context,
	data apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(data)
	if err != nil {
		return nil, err
	}
	return w.sign(hash)
}

// sign returns a 65 byte signature with a recovery id of 27 or 28.
func (w *PrivateKey) sign(hash []byte) ([]byte, error) {
	sig, err := crypto.Sign(hash, w.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
