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

package evm

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

type chainsFile struct {
	Chains []chainEntry `yaml:"chains"`
}

type chainEntry struct {
	Key            string         `yaml:"key"`
	ID             uint64         `yaml:"id"`
	Name           string         `yaml:"name"`
	NativeCurrency NativeCurrency `yaml:"nativeCurrency"`
	RPCURLs        []string       `yaml:"rpcUrls"`
	Explorers      []string       `yaml:"blockExplorers"`
	Contract       string         `yaml:"contract"`
	LitChain       string         `yaml:"litChain"`
}

// Load reads YAML chain definitions from r into the registry. A definition
// with the key of an existing chain replaces it.
//
//	chains:
//	  - key: anvil
//	    id: 31337
//	    name: Anvil
//	    nativeCurrency: {name: Ether, symbol: ETH, decimals: 18}
//	    rpcUrls: ["http://127.0.0.1:8545"]
//	    contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
//	    litChain: sepolia
func (r Registry) Load(rd io.Reader) error {
	var f chainsFile
	if err := yaml.NewDecoder(rd).Decode(&f); err != nil {
		return fmt.Errorf("chains: %w", err)
	}
	for i, e := range f.Chains {
		if e.Key == "" {
			return fmt.Errorf("chains[%v]: key is required", i)
		}
		if e.ID == 0 {
			return fmt.Errorf("chains[%v]: id is required", i)
		}
		if !common.IsHexAddress(e.Contract) {
			return fmt.Errorf("chains[%v]: invalid contract address: %q",
				i, e.Contract)
		}
		if e.NativeCurrency == (NativeCurrency{}) {
			e.NativeCurrency = ether
		}
		r[e.Key] = Chain{
			Key:            e.Key,
			ID:             e.ID,
			Name:           e.Name,
			NativeCurrency: e.NativeCurrency,
			RPCURLs:        e.RPCURLs,
			Explorers:      e.Explorers,
			Contract:       common.HexToAddress(e.Contract),
			LitChain:       e.LitChain,
		}
	}
	return nil
}

// LoadFile calls Load with the contents of the file at path.
func (r Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Load(f)
}
