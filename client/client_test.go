package client_test

import (
	"context"
	"testing"

	"github.com/DaevMithran/SignxLit/client"
	"github.com/DaevMithran/SignxLit/offchain"
	"github.com/DaevMithran/SignxLit/onchain"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/DaevMithran/SignxLit/wallet"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder records every call it receives.
type recorder struct {
	calls []string
	ids   []string
}

func (r *recorder) CreateSchema(_ context.Context, s sp.Schema,
	_ sp.CreateSchemaOptions) (sp.SchemaResult, error) {
	r.calls = append(r.calls, "CreateSchema "+s.Name)
	return sp.SchemaResult{SchemaID: "0x0000000000000001"}, nil
}

func (r *recorder) GetSchema(_ context.Context, id string) (sp.Schema, error) {
	r.calls = append(r.calls, "GetSchema "+id)
	return sp.Schema{Name: "Age"}, nil
}

func (r *recorder) CreateAttestation(_ context.Context, a sp.Attestation,
	_ sp.CreateAttestationOptions) (sp.AttestationResult, error) {
	r.calls = append(r.calls, "CreateAttestation "+a.SchemaID)
	return sp.AttestationResult{AttestationID: "0x0000000000000002"}, nil
}

func (r *recorder) GetAttestation(_ context.Context, id string,
	opts sp.GetAttestationOptions) (sp.Attestation, error) {
	r.calls = append(r.calls, "GetAttestation "+id)
	return sp.Attestation{SchemaID: "0x0000000000000001"}, nil
}

func (r *recorder) RevokeAttestation(_ context.Context, id string,
	opts sp.RevokeOptions) (sp.RevokeAttestationResult, error) {
	r.calls = append(r.calls, "RevokeAttestation "+id)
	return sp.RevokeAttestationResult{AttestationID: id,
		Reason: opts.Reason}, nil
}

func TestForwarding(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	r := &recorder{}
	c := client.Wrap(sp.ModeOnChain, r)

	schema, err := c.CreateSchema(ctx, sp.Schema{Name: "Age"},
		sp.CreateSchemaOptions{})
	require.NoError(t, err)
	assert.Equal("0x0000000000000001", schema.SchemaID)
	_, err = c.GetSchema(ctx, schema.SchemaID)
	require.NoError(t, err)
	att, err := c.CreateAttestation(ctx,
		sp.Attestation{SchemaID: schema.SchemaID},
		sp.CreateAttestationOptions{})
	require.NoError(t, err)
	_, err = c.GetAttestation(ctx, att.AttestationID,
		sp.GetAttestationOptions{})
	require.NoError(t, err)
	revoked, err := c.RevokeAttestation(ctx, att.AttestationID,
		sp.RevokeOptions{Reason: "Test revocation"})
	require.NoError(t, err)
	assert.Equal("Test revocation", revoked.Reason)

	assert.Equal([]string{
		"CreateSchema Age",
		"GetSchema 0x0000000000000001",
		"CreateAttestation 0x0000000000000001",
		"GetAttestation 0x0000000000000002",
		"RevokeAttestation 0x0000000000000002",
	}, r.calls)
	assert.Equal(sp.ModeOnChain, c.Mode())
	assert.Same(r, c.Variant())
}

func TestNew(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := wallet.NewPrivateKey(key, nil, nil)

	c, err := client.New(sp.ModeOffChain, client.Config{
		OffChain: offchain.Config{Signer: signer}})
	require.NoError(t, err)
	assert.IsType(t, &offchain.Client{}, c.Variant())
	_, err = c.GetSchema(context.Background(), "0x1")
	assert.ErrorIs(t, err, sp.ErrNotSupported)

	// The on-chain variant is validated even if the off-chain one is
	// complete.
	_, err = client.New(sp.ModeOnChain, client.Config{
		OffChain: offchain.Config{Signer: signer}})
	assert.Error(t, err)

	_, err = client.New(sp.Mode(7), client.Config{})
	assert.Error(t, err)

	_, err = client.New(sp.ModeOnChain, client.Config{
		OnChain: onchain.Config{Wallet: signer}})
	assert.EqualError(t, err, "onchain: no backend")
}
