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

// Package client selects the on-chain or off-chain Sign Protocol client
// once, at construction, and forwards every call to it.
package client

import (
	"context"
	"fmt"

	"github.com/DaevMithran/SignxLit/offchain"
	"github.com/DaevMithran/SignxLit/onchain"
	"github.com/DaevMithran/SignxLit/sp"
)

// SignProtocol is the operation set shared by both variants.
type SignProtocol interface {
	CreateSchema(ctx context.Context, schema sp.Schema,
		opts sp.CreateSchemaOptions) (sp.SchemaResult, error)
	GetSchema(ctx context.Context, id string) (sp.Schema, error)
	CreateAttestation(ctx context.Context, a sp.Attestation,
		opts sp.CreateAttestationOptions) (sp.AttestationResult, error)
	GetAttestation(ctx context.Context, id string,
		opts sp.GetAttestationOptions) (sp.Attestation, error)
	RevokeAttestation(ctx context.Context, id string,
		opts sp.RevokeOptions) (sp.RevokeAttestationResult, error)
}

var (
	_ SignProtocol = (*onchain.Client)(nil)
	_ SignProtocol = (*offchain.Client)(nil)
)

// Config holds the configuration of both variants. Only the one selected
// by the mode is used.
type Config struct {
	OnChain  onchain.Config
	OffChain offchain.Config
}

type Client struct {
	mode    sp.Mode
	variant SignProtocol
}

// New builds the variant selected by mode.
func New(mode sp.Mode, cfg Config) (*Client, error) {
	var (
		variant SignProtocol
		err     error
	)
	switch mode {
	case sp.ModeOnChain:
		variant, err = onchain.New(cfg.OnChain)
	case sp.ModeOffChain:
		variant, err = offchain.New(cfg.OffChain)
	default:
		return nil, fmt.Errorf("invalid mode: %v", mode)
	}
	if err != nil {
		return nil, err
	}
	return &Client{mode: mode, variant: variant}, nil
}

// Wrap returns a Client forwarding to variant.
func Wrap(mode sp.Mode, variant SignProtocol) *Client {
	return &Client{mode: mode, variant: variant}
}

func (c *Client) Mode() sp.Mode { return c.mode }

// Variant returns the underlying client, an *onchain.Client or an
// *offchain.Client unless the Client was built with Wrap.
func (c *Client) Variant() SignProtocol { return c.variant }

func (c *Client) CreateSchema(ctx context.Context, schema sp.Schema,
	opts sp.CreateSchemaOptions) (sp.SchemaResult, error) {
	return c.variant.CreateSchema(ctx, schema, opts)
}

func (c *Client) GetSchema(ctx context.Context, id string) (sp.Schema, error) {
	return c.variant.GetSchema(ctx, id)
}

func (c *Client) CreateAttestation(ctx context.Context, a sp.Attestation,
	opts sp.CreateAttestationOptions) (sp.AttestationResult, error) {
	return c.variant.CreateAttestation(ctx, a, opts)
}

func (c *Client) GetAttestation(ctx context.Context, id string,
	opts sp.GetAttestationOptions) (sp.Attestation, error) {
	return c.variant.GetAttestation(ctx, id, opts)
}

func (c *Client) RevokeAttestation(ctx context.Context, id string,
	opts sp.RevokeOptions) (sp.RevokeAttestationResult, error) {
	return c.variant.RevokeAttestation(ctx, id, opts)
}
