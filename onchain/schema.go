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
	"encoding/json"
	"fmt"

	"github.com/DaevMithran/SignxLit/sp"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// schemaBundle is the document stored as the data of an on-chain schema,
// or fetched from storage for an off-chain one.
type schemaBundle struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Data        []sp.SchemaItem `json:"data"`
}

// CreateSchema registers schema. An unset registrant defaults to the wallet
// address. On-chain schemas must have uniquely named fields.
func (c *Client) CreateSchema(ctx context.Context, schema sp.Schema,
	opts sp.CreateSchemaOptions) (sp.SchemaResult, error) {
	registrant := schema.Registrant
	if registrant == (common.Address{}) {
		registrant = c.wallet.Address()
	}
	data := schema.DataID
	if schema.DataLocation == sp.OnChain {
		if err := schema.ValidateFields(); err != nil {
			return sp.SchemaResult{}, err
		}
		bundle, err := json.Marshal(schemaBundle{
			Name:        schema.Name,
			Description: schema.Description,
			Data:        schema.Data,
		})
		if err != nil {
			return sp.SchemaResult{}, err
		}
		data = string(bundle)
	}
	tuple := SchemaTuple{
		Registrant:   registrant,
		Revocable:    schema.IsRevocable(),
		DataLocation: uint8(schema.DataLocation),
		MaxValidFor:  schema.MaxValidFor,
		Hook:         schema.HookAddress(),
		Data:         data,
	}
	event, hash, err := c.write(ctx, EventSchemaRegistered, nil, opts.OnTxHash,
		methodRegister, tuple, bytesOrEmpty(opts.DelegationSignature))
	if err != nil {
		return sp.SchemaResult{}, err
	}
	id, err := event.Uint64Field("schemaId")
	if err != nil {
		return sp.SchemaResult{}, err
	}
	return sp.SchemaResult{SchemaID: sp.FormatID(id), TxHash: hash}, nil
}

// GetSchema returns the schema with id. It returns sp.ErrSchemaNotFound if
// the contract holds no data for id.
func (c *Client) GetSchema(ctx context.Context, id string) (sp.Schema, error) {
	n, err := sp.ParseID(id)
	if err != nil {
		return sp.Schema{}, err
	}
	out, err := c.call(ctx, methodGetSchema, n)
	if err != nil {
		return sp.Schema{}, err
	}
	tuple := *abi.ConvertType(out, new(SchemaTuple)).(*SchemaTuple)
	if tuple.Data == "" {
		return sp.Schema{}, fmt.Errorf("%w: %v", sp.ErrSchemaNotFound, id)
	}

	loc := sp.DataLocation(tuple.DataLocation)
	var bundle schemaBundle
	var dataID string
	switch {
	case loc == sp.OnChain:
		if err := json.Unmarshal([]byte(tuple.Data), &bundle); err != nil {
			return sp.Schema{}, fmt.Errorf("schema %v: %w", id, err)
		}
	case loc.IsStorage():
		if c.storage == nil {
			return sp.Schema{}, ErrNoStorage
		}
		dataID = tuple.Data
		if err := c.storage.StorageData(ctx, dataID, loc, &bundle); err != nil {
			return sp.Schema{}, err
		}
	default:
		dataID = tuple.Data
	}
	revocable := tuple.Revocable
	return sp.Schema{
		Name:         bundle.Name,
		Description:  bundle.Description,
		Revocable:    &revocable,
		MaxValidFor:  tuple.MaxValidFor,
		Hook:         tuple.Hook,
		Registrant:   tuple.Registrant,
		Timestamp:    tuple.Timestamp,
		DataLocation: loc,
		Data:         bundle.Data,
		DataID:       dataID,
	}, nil
}

func bytesOrEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
