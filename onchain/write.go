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
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/DaevMithran/SignxLit/sp"
	"github.com/DaevMithran/SignxLit/wallet"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ensureChain switches the wallet to c.chain. If the wallet does not
// recognize the chain it is added and the switch is retried once. A switch
// the user rejected is returned as is.
func (c *Client) ensureChain(ctx context.Context) error {
	current, err := c.wallet.ChainID(ctx)
	if err != nil {
		return err
	}
	if current == c.chain.ID {
		return nil
	}
	c.log.Debugf("switching wallet from chain %v to %v", current, c.chain)
	err = c.wallet.SwitchChain(ctx, c.chain.ID)
	if err == nil || !errors.Is(err, wallet.ErrChainNotRecognized) {
		return err
	}
	c.log.Debugf("adding %v to wallet", c.chain)
	if err := c.wallet.AddChain(ctx, c.chain); err != nil {
		return err
	}
	return c.wallet.SwitchChain(ctx, c.chain.ID)
}

// write runs method with args through simulation, submission and receipt,
// and returns the first log decoded as the event named want.
func (c *Client) write(ctx context.Context, want string, value *big.Int,
	onTxHash sp.TxHashFunc, method string, args ...interface{}) (Event, common.Hash, error) {
	// BUILD_ARGS
	input, err := Contract.Pack(method, args...)
	if err != nil {
		return Event{}, common.Hash{}, fmt.Errorf("%v: %w", method, err)
	}
	if err := c.ensureChain(ctx); err != nil {
		return Event{}, common.Hash{}, err
	}

	// SIMULATE
	to := c.chain.Contract
	msg := ethereum.CallMsg{
		From:  c.wallet.Address(),
		To:    &to,
		Value: value,
		Data:  input,
	}
	if _, err := c.backend.CallContract(ctx, msg, nil); err != nil {
		return Event{}, common.Hash{}, &RevertError{Method: method, Err: err}
	}
	gas, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		return Event{}, common.Hash{}, &RevertError{Method: method, Err: err}
	}
	c.log.Debugf("%v: simulated, gas %v", method, gas)

	// SUBMIT
	hash, err := c.wallet.SendTransaction(ctx, wallet.TxRequest{
		To:    to,
		Data:  input,
		Value: value,
		Gas:   gas,
	})
	if err != nil {
		return Event{}, common.Hash{}, err
	}
	c.log.Debugf("%v: submitted %v", method, hash)
	if onTxHash != nil {
		onTxHash(hash)
	}

	// AWAIT_RECEIPT
	receipt, err := c.awaitReceipt(ctx, hash)
	if err != nil {
		return Event{}, hash, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return Event{}, hash, fmt.Errorf("%w: %v", ErrTxFailed, hash)
	}
	if len(receipt.Logs) == 0 {
		return Event{}, hash, ErrNoLogs
	}

	// DECODE_EVENT
	event, err := DecodeLog(*receipt.Logs[0])
	if err != nil {
		return Event{}, hash, err
	}
	if event.Name != want {
		return Event{}, hash, &UnexpectedEventError{Want: want, Got: event.Name}
	}
	c.log.Debugf("%v: %v %v", method, event.Name, event.Fields)
	return event, hash, nil
}

// awaitReceipt blocks until the transaction is mined or ctx is done.
func (c *Client) awaitReceipt(ctx context.Context,
	hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// call runs a read only contract method and unpacks its single output.
func (c *Client) call(ctx context.Context, method string,
	args ...interface{}) (interface{}, error) {
	input, err := Contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", method, err)
	}
	to := c.chain.Contract
	output, err := c.backend.CallContract(ctx,
		ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		return nil, err
	}
	values, err := Contract.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", method, err)
	}
	return values[0], nil
}
