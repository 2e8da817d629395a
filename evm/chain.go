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

// Package evm describes the EVM chains the Sign Protocol contract is
// deployed on.
package evm

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// Chain is a network on which a Sign Protocol contract is deployed.
type Chain struct {
	// Key is the short name used on the command line.
	Key            string
	ID             uint64
	Name           string
	NativeCurrency NativeCurrency
	RPCURLs        []string
	Explorers      []string
	// Contract is the address of the Sign Protocol contract.
	Contract common.Address
	// LitChain is the chain name used in access control conditions.
	LitChain string
}

func (c Chain) String() string {
	return fmt.Sprintf("%v (%v)", c.Name, c.ID)
}

// RPCURL returns the first RPC URL of c, if any.
func (c Chain) RPCURL() string {
	if len(c.RPCURLs) == 0 {
		return ""
	}
	return c.RPCURLs[0]
}

// AddChainParams are the wallet_addEthereumChain parameters defined by
// EIP-3085.
type AddChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
}

func (c Chain) AddChainParams() AddChainParams {
	return AddChainParams{
		ChainID:           hexutil.EncodeUint64(c.ID),
		ChainName:         c.Name,
		NativeCurrency:    c.NativeCurrency,
		RPCURLs:           c.RPCURLs,
		BlockExplorerURLs: c.Explorers,
	}
}

var ether = NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18}

var (
	Sepolia = Chain{
		Key:            "sepolia",
		ID:             11155111,
		Name:           "Sepolia",
		NativeCurrency: NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		RPCURLs:        []string{"https://rpc.sepolia.org"},
		Explorers:      []string{"https://sepolia.etherscan.io"},
		Contract:       common.HexToAddress("0x878c92FD89d8E0B93Dc0a3c907A2adc7577e39c5"),
		LitChain:       "sepolia",
	}
	PolygonAmoy = Chain{
		Key:            "polygonAmoy",
		ID:             80002,
		Name:           "Polygon Amoy",
		NativeCurrency: NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		RPCURLs:        []string{"https://rpc-amoy.polygon.technology"},
		Explorers:      []string{"https://amoy.polygonscan.com"},
		Contract:       common.HexToAddress("0x4e4af2a21ebf62850fD99Eb6253E1eFBb56098cD"),
		LitChain:       "amoy",
	}
	BaseSepolia = Chain{
		Key:            "baseSepolia",
		ID:             84532,
		Name:           "Base Sepolia",
		NativeCurrency: ether,
		RPCURLs:        []string{"https://sepolia.base.org"},
		Explorers:      []string{"https://sepolia.basescan.org"},
		Contract:       common.HexToAddress("0x4e4af2a21ebf62850fD99Eb6253E1eFBb56098cD"),
		LitChain:       "baseSepolia",
	}
)

// Registry maps chain keys to chains.
type Registry map[string]Chain

// DefaultRegistry returns a new Registry holding the built in chains.
func DefaultRegistry() Registry {
	return Registry{
		Sepolia.Key:     Sepolia,
		PolygonAmoy.Key: PolygonAmoy,
		BaseSepolia.Key: BaseSepolia,
	}
}

// Lookup returns the chain with the given key or decimal chain ID.
func (r Registry) Lookup(keyOrID string) (Chain, error) {
	if c, ok := r[keyOrID]; ok {
		return c, nil
	}
	if id, err := strconv.ParseUint(keyOrID, 10, 64); err == nil {
		for _, c := range r {
			if c.ID == id {
				return c, nil
			}
		}
	}
	return Chain{}, fmt.Errorf("unknown chain: %q", keyOrID)
}

// Keys returns the sorted keys of r.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
