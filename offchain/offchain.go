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

// Package offchain implements the signature only Sign Protocol client. It
// signs EIP-712 typed data and EIP-191 messages with a wallet and never
// talks to the contract.
package offchain

import (
	"context"
	"fmt"

	"github.com/DaevMithran/SignxLit/log"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/DaevMithran/SignxLit/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Domain is the EIP-712 domain every typed data message is signed under.
var Domain = apitypes.TypedDataDomain{Name: "sign.global", Version: "1"}

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
}

// Signer signs messages and typed data. Both wallet implementations
// satisfy it.
type Signer interface {
	wallet.Signer
	SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)
}

type Config struct {
	Signer Signer
}

type Client struct {
	signer Signer
	log    log.Log
}

func New(cfg Config) (*Client, error) {
	if cfg.Signer == nil {
		return nil, fmt.Errorf("offchain: no signer")
	}
	return &Client{signer: cfg.Signer, log: log.New("offchain")}, nil
}

func (c *Client) Address() common.Address { return c.signer.Address() }

// TypedMessage is a message to sign under Domain. Types must not include
// EIP712Domain.
type TypedMessage struct {
	PrimaryType string
	Types       apitypes.Types
	Message     apitypes.TypedDataMessage
}

// SignedTypedData is the full typed data that was signed and its
// signature.
type SignedTypedData struct {
	Message   apitypes.TypedData `json:"message"`
	Signature hexutil.Bytes      `json:"signature"`
}

// SignTypedData signs msg under Domain.
func (c *Client) SignTypedData(ctx context.Context,
	msg TypedMessage) (SignedTypedData, error) {
	types := apitypes.Types{"EIP712Domain": domainType}
	for name, fields := range msg.Types {
		if name == "EIP712Domain" {
			return SignedTypedData{}, fmt.Errorf(
				"EIP712Domain is set by the client")
		}
		types[name] = fields
	}
	if _, ok := types[msg.PrimaryType]; !ok {
		return SignedTypedData{}, fmt.Errorf("primary type %q is not defined",
			msg.PrimaryType)
	}
	data := apitypes.TypedData{
		Types:       types,
		PrimaryType: msg.PrimaryType,
		Domain:      Domain,
		Message:     msg.Message,
	}
	sig, err := c.signer.SignTypedData(ctx, data)
	if err != nil {
		return SignedTypedData{}, err
	}
	c.log.Debugf("signed %v for %v", msg.PrimaryType, c.signer.Address())
	return SignedTypedData{Message: data, Signature: sig}, nil
}

// SignMessage signs message with the EIP-191 personal message prefix.
func (c *Client) SignMessage(ctx context.Context,
	message string) (hexutil.Bytes, error) {
	return c.signer.SignMessage(ctx, []byte(message))
}

func (c *Client) CreateSchema(context.Context, sp.Schema,
	sp.CreateSchemaOptions) (sp.SchemaResult, error) {
	return sp.SchemaResult{}, fmt.Errorf("offchain: create schema: %w",
		sp.ErrNotSupported)
}

func (c *Client) GetSchema(context.Context, string) (sp.Schema, error) {
	return sp.Schema{}, fmt.Errorf("offchain: get schema: %w",
		sp.ErrNotSupported)
}

func (c *Client) CreateAttestation(context.Context, sp.Attestation,
	sp.CreateAttestationOptions) (sp.AttestationResult, error) {
	return sp.AttestationResult{}, fmt.Errorf(
		"offchain: create attestation: %w", sp.ErrNotSupported)
}

func (c *Client) GetAttestation(context.Context, string,
	sp.GetAttestationOptions) (sp.Attestation, error) {
	return sp.Attestation{}, fmt.Errorf("offchain: get attestation: %w",
		sp.ErrNotSupported)
}

func (c *Client) RevokeAttestation(context.Context, string,
	sp.RevokeOptions) (sp.RevokeAttestationResult, error) {
	return sp.RevokeAttestationResult{}, fmt.Errorf(
		"offchain: revoke attestation: %w", sp.ErrNotSupported)
}
