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
	"math/big"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// SchemaItem is a single named and typed field of a Schema. Type is a
// Solidity ABI type such as "string", "uint256" or "address[]".
type SchemaItem struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Schema is a template for Attestations.
//
// When DataLocation is OnChain the fields are held in Data. Otherwise
// DataID holds the identifier of the schema document in off-chain storage.
type Schema struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Revocable defaults to true when nil.
	Revocable *bool `json:"revocable,omitempty"`
	// MaxValidFor is in seconds, zero means attestations never expire.
	MaxValidFor uint64 `json:"maxValidFor"`

	Hook common.Address `json:"hook"`
	// Resolver is a deprecated alias for Hook. It is used only when Hook
	// is the zero address.
	Resolver common.Address `json:"resolver,omitempty"`

	Registrant   common.Address `json:"registrant"`
	Timestamp    uint64         `json:"timestamp,omitempty"`
	DataLocation DataLocation   `json:"dataLocation"`

	Data   []SchemaItem `json:"data,omitempty"`
	DataID string       `json:"dataId,omitempty"`
}

// IsRevocable returns the effective value of Revocable.
func (s Schema) IsRevocable() bool {
	return s.Revocable == nil || *s.Revocable
}

// HookAddress returns Hook, or Resolver if Hook is unset.
func (s Schema) HookAddress() common.Address {
	if s.Hook != (common.Address{}) {
		return s.Hook
	}
	return s.Resolver
}

// ParseType returns the ABI type named by t. Integer widths must be a
// multiple of 8 between 8 and 256 and fixed byte widths between 1 and 32,
// at any depth of array nesting.
func ParseType(t string) (abi.Type, error) {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		return abi.Type{}, err
	}
	if err := checkType(typ); err != nil {
		return abi.Type{}, fmt.Errorf("%v: %w", t, err)
	}
	return typ, nil
}

func checkType(typ abi.Type) error {
	switch typ.T {
	case abi.IntTy, abi.UintTy:
		if typ.Size < 8 || typ.Size > 256 || typ.Size%8 != 0 {
			return fmt.Errorf("invalid integer width %v", typ.Size)
		}
	case abi.FixedBytesTy:
		if typ.Size < 1 || typ.Size > 32 {
			return fmt.Errorf("invalid byte width %v", typ.Size)
		}
	case abi.SliceTy, abi.ArrayTy:
		return checkType(*typ.Elem)
	}
	return nil
}

// ValidateFields checks that every field of s has a name and a valid ABI
// type and that no name is used twice.
func (s Schema) ValidateFields() error {
	seen := make(map[string]struct{}, len(s.Data))
	for i, item := range s.Data {
		if item.Name == "" {
			return fmt.Errorf("data[%v]: name is required", i)
		}
		if item.Type == "" {
			return fmt.Errorf("data[%v]: type is required", i)
		}
		if _, err := ParseType(item.Type); err != nil {
			return fmt.Errorf("data[%v]: %w", i, err)
		}
		if _, ok := seen[item.Name]; ok {
			return fmt.Errorf("data[%v]: duplicate field %q", i, item.Name)
		}
		seen[item.Name] = struct{}{}
	}
	return nil
}

// Attestation is a claim made against a Schema.
type Attestation struct {
	SchemaID            string `json:"schemaId"`
	LinkedAttestationID string `json:"linkedAttestationId,omitempty"`

	// Data is the decoded payload keyed by schema field name.
	Data map[string]interface{} `json:"data,omitempty"`
	// DataID is the off-chain storage identifier when DataLocation is
	// Arweave or IPFS.
	DataID string `json:"dataId,omitempty"`
	// RawData is sent as is for delegated attestations.
	RawData []byte `json:"-"`

	ValidUntil      uint64         `json:"validUntil"`
	Revoked         bool           `json:"revoked"`
	Recipients      []string       `json:"recipients,omitempty"`
	IndexingValue   string         `json:"indexingValue,omitempty"`
	Attester        common.Address `json:"attester"`
	AttestTimestamp uint64         `json:"attestTimestamp"`
	RevokeTimestamp uint64         `json:"revokeTimestamp"`
	DataLocation    DataLocation   `json:"dataLocation"`
}

// SchemaResult is returned once a schema registration has been mined.
type SchemaResult struct {
	SchemaID string      `json:"schemaId"`
	TxHash   common.Hash `json:"txHash"`
}

// AttestationResult is returned once an attestation has been mined.
type AttestationResult struct {
	AttestationID string      `json:"attestationId"`
	TxHash        common.Hash `json:"txHash"`
	IndexingValue string      `json:"indexingValue"`
}

// RevokeAttestationResult is returned once a revocation has been mined.
type RevokeAttestationResult struct {
	AttestationID string      `json:"attestationId"`
	TxHash        common.Hash `json:"txHash"`
	Reason        string      `json:"reason"`
}

// TxHashFunc is called with the transaction hash as soon as a transaction
// is broadcast, before it is mined.
type TxHashFunc func(common.Hash)

type CreateSchemaOptions struct {
	DelegationSignature []byte
	OnTxHash            TxHashFunc
}

type CreateAttestationOptions struct {
	// ResolverFeesETH selects the payable attest call and is sent as the
	// transaction value.
	ResolverFeesETH     *big.Int
	DelegationSignature []byte
	OnTxHash            TxHashFunc
	RecipientEncoding   RecipientEncoding
	ExtraData           []byte

	// Gated encrypts the payload under AccessControlConditions, or the
	// default condition when none are given.
	Gated                   bool
	AccessControlConditions accs.Conditions
}

type GetAttestationOptions struct {
	Gated                   bool
	AccessControlConditions accs.Conditions
}

type RevokeOptions struct {
	Reason              string
	DelegationSignature []byte
	OnTxHash            TxHashFunc
	ExtraData           []byte
}
