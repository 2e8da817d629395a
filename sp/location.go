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

package sp

import (
	"fmt"
	"strings"
)

// DataLocation identifies where the payload of a Schema or Attestation is
// stored. The numeric values match the contract's enum.
type DataLocation uint8

const (
	OnChain DataLocation = iota
	Arweave
	IPFS
	Custom
)

var dataLocationNames = [...]string{"onchain", "arweave", "ipfs", "custom"}

func (l DataLocation) String() string {
	if int(l) < len(dataLocationNames) {
		return dataLocationNames[l]
	}
	return fmt.Sprintf("unknown(%d)", uint8(l))
}

// IsStorage reports whether the payload is an identifier into off-chain
// storage that can be fetched from the storage service.
func (l DataLocation) IsStorage() bool {
	return l == Arweave || l == IPFS
}

func (l *DataLocation) Set(s string) error {
	for i, name := range dataLocationNames {
		if strings.EqualFold(s, name) {
			*l = DataLocation(i)
			return nil
		}
	}
	return fmt.Errorf("invalid data location: %q", s)
}

func (DataLocation) Type() string { return "location" }

// Mode selects the client implementation used by client.New.
type Mode int

const (
	ModeOnChain Mode = iota
	ModeOffChain
)

func (m Mode) String() string {
	if m == ModeOffChain {
		return "offchain"
	}
	return "onchain"
}

func (m *Mode) Set(s string) error {
	switch strings.ToLower(s) {
	case "onchain", "on-chain":
		*m = ModeOnChain
	case "offchain", "off-chain":
		*m = ModeOffChain
	default:
		return fmt.Errorf("invalid mode: %q", s)
	}
	return nil
}

func (Mode) Type() string { return "mode" }

// RecipientEncoding selects how Attestation recipients are ABI encoded.
type RecipientEncoding string

const (
	RecipientString  RecipientEncoding = "string"
	RecipientAddress RecipientEncoding = "address"
)
