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

package cmd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
)

// hexBytes is a 0x prefixed hex flag.
type hexBytes []byte

func (b *hexBytes) Set(s string) error {
	data, err := hexutil.Decode(s)
	if err != nil {
		return err
	}
	*b = data
	return nil
}

func (b hexBytes) String() string {
	if len(b) == 0 {
		return ""
	}
	return hexutil.Encode(b)
}

func (hexBytes) Type() string { return "hex" }

// address is an EVM address flag.
type address common.Address

func (a *address) Set(s string) error {
	if !common.IsHexAddress(s) {
		return fmt.Errorf("invalid address: %q", s)
	}
	*a = address(common.HexToAddress(s))
	return nil
}

func (a address) String() string {
	if a == (address{}) {
		return ""
	}
	return common.Address(a).Hex()
}

func (address) Type() string { return "address" }

// ether is an amount flag given in ETH and held in wei.
type ether struct{ *big.Int }

var weiPerEther = big.NewRat(params.Ether, 1)

func (e *ether) Set(s string) error {
	r, ok := new(big.Rat).SetString(s)
	if !ok || r.Sign() < 0 {
		return fmt.Errorf("invalid amount: %q", s)
	}
	r.Mul(r, weiPerEther)
	if !r.IsInt() {
		return fmt.Errorf("invalid amount: %q: more than 18 decimals", s)
	}
	e.Int = new(big.Int).Set(r.Num())
	return nil
}

func (e ether) String() string {
	if e.Int == nil {
		return ""
	}
	r := new(big.Rat).SetInt(e.Int)
	s := r.Quo(r, weiPerEther).FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func (ether) Type() string { return "eth" }
