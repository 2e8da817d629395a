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

	"github.com/DaevMithran/SignxLit/codec"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// CreateAttestation makes an attestation.
//
// Unless opts carries a delegation signature, the schema is fetched first
// and, when both the schema and the attestation are stored on-chain,
// a.Data is validated against it. Gated payloads are JSON encoded,
// encrypted and stored as the ciphertext and hash pair. Delegated
// attestations send a.RawData as is.
func (c *Client) CreateAttestation(ctx context.Context, a sp.Attestation,
	opts sp.CreateAttestationOptions) (sp.AttestationResult, error) {
	if a.SchemaID == "" {
		return sp.AttestationResult{}, sp.ErrSchemaIDRequired
	}
	schemaID, err := sp.ParseID(a.SchemaID)
	if err != nil {
		return sp.AttestationResult{}, err
	}
	var linkedID uint64
	if a.LinkedAttestationID != "" {
		if linkedID, err = sp.ParseID(a.LinkedAttestationID); err != nil {
			return sp.AttestationResult{}, fmt.Errorf(
				"linked attestation: %w", err)
		}
	}

	var data []byte
	if len(opts.DelegationSignature) > 0 {
		data = bytesOrEmpty(a.RawData)
	} else if data, err = c.encodeData(ctx, a, opts); err != nil {
		return sp.AttestationResult{}, err
	}

	recipients, err := codec.EncodeRecipients(a.Recipients, opts.RecipientEncoding)
	if err != nil {
		return sp.AttestationResult{}, err
	}
	attester := a.Attester
	if attester == (common.Address{}) {
		attester = c.wallet.Address()
	}
	tuple := AttestationTuple{
		SchemaId:            schemaID,
		LinkedAttestationId: linkedID,
		Attester:            attester,
		ValidUntil:          a.ValidUntil,
		DataLocation:        uint8(a.DataLocation),
		Revoked:             a.Revoked,
		Recipients:          recipients,
		Data:                data,
	}

	sig := bytesOrEmpty(opts.DelegationSignature)
	extra := bytesOrEmpty(opts.ExtraData)
	var (
		event Event
		hash  common.Hash
	)
	if opts.ResolverFeesETH != nil {
		event, hash, err = c.write(ctx, EventAttestationMade,
			opts.ResolverFeesETH, opts.OnTxHash, methodAttestWithFees,
			tuple, opts.ResolverFeesETH, a.IndexingValue, sig, extra)
	} else {
		event, hash, err = c.write(ctx, EventAttestationMade,
			nil, opts.OnTxHash, methodAttest,
			tuple, a.IndexingValue, sig, extra)
	}
	if err != nil {
		return sp.AttestationResult{}, err
	}
	id, err := event.Uint64Field("attestationId")
	if err != nil {
		return sp.AttestationResult{}, err
	}
	indexingKey, err := event.StringField("indexingKey")
	if err != nil {
		return sp.AttestationResult{}, err
	}
	return sp.AttestationResult{
		AttestationID: sp.FormatID(id),
		TxHash:        hash,
		IndexingValue: indexingKey,
	}, nil
}

func (c *Client) encodeData(ctx context.Context, a sp.Attestation,
	opts sp.CreateAttestationOptions) ([]byte, error) {
	schema, err := c.GetSchema(ctx, a.SchemaID)
	if err != nil {
		return nil, err
	}
	if schema.DataLocation == sp.OnChain && a.DataLocation == sp.OnChain {
		if err := codec.Validate(a.Data, schema.Data); err != nil {
			return nil, err
		}
	}
	if opts.Gated {
		if c.encrypter == nil {
			return nil, ErrNoEncryption
		}
		plaintext, err := json.Marshal(a.Data)
		if err != nil {
			return nil, err
		}
		res, err := c.encrypter.Encrypt(ctx, plaintext,
			opts.AccessControlConditions)
		if err != nil {
			return nil, err
		}
		return codec.EncodeEncrypted(res.Ciphertext, res.DataToEncryptHash)
	}
	if a.DataLocation == sp.OnChain {
		return codec.Encode(a.Data, schema.Data)
	}
	return codec.EncodeString(a.DataID)
}

// GetAttestation returns the attestation with id. It returns
// sp.ErrAttestationNotFound if the contract holds no data for id. Gated
// attestations are decrypted with opts.AccessControlConditions, or the
// default condition when none are given.
func (c *Client) GetAttestation(ctx context.Context, id string,
	opts sp.GetAttestationOptions) (sp.Attestation, error) {
	n, err := sp.ParseID(id)
	if err != nil {
		return sp.Attestation{}, err
	}
	out, err := c.call(ctx, methodGetAttestation, n)
	if err != nil {
		return sp.Attestation{}, err
	}
	tuple := *abi.ConvertType(out, new(AttestationTuple)).(*AttestationTuple)
	if len(tuple.Data) == 0 {
		return sp.Attestation{}, fmt.Errorf("%w: %v",
			sp.ErrAttestationNotFound, id)
	}

	schemaID := sp.FormatID(tuple.SchemaId)
	schema, err := c.GetSchema(ctx, schemaID)
	if err != nil {
		return sp.Attestation{}, err
	}

	a := sp.Attestation{
		SchemaID:        schemaID,
		ValidUntil:      tuple.ValidUntil,
		Revoked:         tuple.Revoked,
		Attester:        tuple.Attester,
		AttestTimestamp: tuple.AttestTimestamp,
		RevokeTimestamp: tuple.RevokeTimestamp,
		DataLocation:    sp.DataLocation(tuple.DataLocation),
	}
	if tuple.LinkedAttestationId != 0 {
		a.LinkedAttestationID = sp.FormatID(tuple.LinkedAttestationId)
	}
	if a.Data, a.DataID, err = c.decodeData(ctx, tuple, schema, opts); err != nil {
		return sp.Attestation{}, err
	}
	if a.Recipients, err = codec.DecodeRecipients(tuple.Recipients); err != nil {
		return sp.Attestation{}, err
	}
	return a, nil
}

func (c *Client) decodeData(ctx context.Context, tuple AttestationTuple,
	schema sp.Schema, opts sp.GetAttestationOptions) (
	data map[string]interface{}, dataID string, err error) {
	loc := sp.DataLocation(tuple.DataLocation)
	switch {
	case opts.Gated:
		if c.encrypter == nil {
			return nil, "", ErrNoEncryption
		}
		ciphertext, hash, err := codec.DecodeEncrypted(tuple.Data)
		if err != nil {
			return nil, "", err
		}
		plaintext, err := c.encrypter.Decrypt(ctx, ciphertext, hash,
			opts.AccessControlConditions)
		if err != nil {
			return nil, "", err
		}
		if err := json.Unmarshal(plaintext, &data); err != nil {
			return nil, "", fmt.Errorf("decrypted payload: %w", err)
		}
		return data, "", nil
	case loc == sp.OnChain:
		data, err = codec.Decode(tuple.Data, schema.Data)
		return data, "", err
	}
	if dataID, err = codec.DecodeString(tuple.Data); err != nil {
		return nil, "", err
	}
	if !loc.IsStorage() {
		return nil, dataID, nil
	}
	if c.storage == nil {
		return nil, "", ErrNoStorage
	}
	if err := c.storage.StorageData(ctx, dataID, loc, &data); err != nil {
		return nil, "", err
	}
	return data, dataID, nil
}

// RevokeAttestation revokes the attestation with id. The reason echoed by
// the contract is returned; it is empty unless opts.Reason is set.
func (c *Client) RevokeAttestation(ctx context.Context, id string,
	opts sp.RevokeOptions) (sp.RevokeAttestationResult, error) {
	n, err := sp.ParseID(id)
	if err != nil {
		return sp.RevokeAttestationResult{}, err
	}
	event, hash, err := c.write(ctx, EventAttestationRevoked, nil,
		opts.OnTxHash, methodRevoke, n, opts.Reason,
		bytesOrEmpty(opts.DelegationSignature), bytesOrEmpty(opts.ExtraData))
	if err != nil {
		return sp.RevokeAttestationResult{}, err
	}
	revoked, err := event.Uint64Field("attestationId")
	if err != nil {
		return sp.RevokeAttestationResult{}, err
	}
	reason, err := event.StringField("reason")
	if err != nil {
		return sp.RevokeAttestationResult{}, err
	}
	return sp.RevokeAttestationResult{
		AttestationID: sp.FormatID(revoked),
		TxHash:        hash,
		Reason:        reason,
	}, nil
}
