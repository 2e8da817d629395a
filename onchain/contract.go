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
	_ "embed"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:embed abi/SignProtocol.json
var contractJSON string

// Contract is the Sign Protocol contract ABI.
var Contract = func() abi.ABI {
	a, err := abi.JSON(strings.NewReader(contractJSON))
	if err != nil {
		panic(fmt.Sprintf("onchain: invalid contract ABI: %v", err))
	}
	return a
}()

// Contract method names. The payable attest overload is named attest0 by
// go-ethereum.
const (
	methodRegister       = "register"
	methodAttest         = "attest"
	methodAttestWithFees = "attest0"
	methodRevoke         = "revoke"
	methodGetSchema      = "getSchema"
	methodGetAttestation = "getAttestation"
)

// Event names and the fields read from them.
const (
	EventSchemaRegistered   = "SchemaRegistered"
	EventAttestationMade    = "AttestationMade"
	EventAttestationRevoked = "AttestationRevoked"
)

// SchemaTuple is the contract's Schema struct. Field names must match the
// ABI component names.
type SchemaTuple struct {
	Registrant   common.Address
	Revocable    bool
	DataLocation uint8
	MaxValidFor  uint64
	Hook         common.Address
	Timestamp    uint64
	Data         string
}

// AttestationTuple is the contract's Attestation struct. Field names must
// match the ABI component names.
type AttestationTuple struct {
	SchemaId            uint64
	LinkedAttestationId uint64
	AttestTimestamp     uint64
	RevokeTimestamp     uint64
	Attester            common.Address
	ValidUntil          uint64
	DataLocation        uint8
	Revoked             bool
	Recipients          [][]byte
	Data                []byte
}

// Event is a decoded contract log.
type Event struct {
	Name   string
	Fields map[string]interface{}
}

// DecodeLog decodes l against the contract's events.
func DecodeLog(l types.Log) (Event, error) {
	if len(l.Topics) == 0 {
		return Event{}, fmt.Errorf("log has no topics")
	}
	event, err := Contract.EventByID(l.Topics[0])
	if err != nil {
		return Event{}, err
	}
	fields := make(map[string]interface{})
	if err := Contract.UnpackIntoMap(fields, event.Name, l.Data); err != nil {
		return Event{}, fmt.Errorf("%v: %w", event.Name, err)
	}
	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, l.Topics[1:]); err != nil {
		return Event{}, fmt.Errorf("%v: %w", event.Name, err)
	}
	return Event{Name: event.Name, Fields: fields}, nil
}

// Uint64Field returns the named uint64 field.
func (e Event) Uint64Field(name string) (uint64, error) {
	v, ok := e.Fields[name].(uint64)
	if !ok {
		return 0, fmt.Errorf("%v: missing %v", e.Name, name)
	}
	return v, nil
}

// StringField returns the named string field.
func (e Event) StringField(name string) (string, error) {
	v, ok := e.Fields[name].(string)
	if !ok {
		return "", fmt.Errorf("%v: missing %v", e.Name, name)
	}
	return v, nil
}
