package wallet_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/DaevMithran/SignxLit/evm"
	"github.com/DaevMithran/SignxLit/wallet"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type fakeBackend struct {
	chainID uint64
	nonce   uint64
	sent    []*types.Transaction
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(b.chainID), nil
}

func (b *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return b.nonce, nil
}

func (b *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1e9), nil
}

func (b *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{BaseFee: big.NewInt(5e9)}, nil
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	b.sent = append(b.sent, tx)
	return nil
}

func newPrivateKey(t *testing.T, backend wallet.Backend,
	dial wallet.Dialer) *wallet.PrivateKey {
	key, err := wallet.ParsePrivateKey(testKey)
	require.NoError(t, err)
	return wallet.NewPrivateKey(key, backend, dial)
}

func TestPrivateKeyAddress(t *testing.T) {
	w := newPrivateKey(t, &fakeBackend{}, nil)
	assert.Equal(t,
		common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		w.Address())

	_, err := wallet.ParsePrivateKey("0xzz")
	assert.Error(t, err)
}

func TestPrivateKeySendTransaction(t *testing.T) {
	assert := assert.New(t)
	backend := &fakeBackend{chainID: evm.Sepolia.ID, nonce: 7}
	w := newPrivateKey(t, backend, nil)

	to := evm.Sepolia.Contract
	hash, err := w.SendTransaction(context.Background(), wallet.TxRequest{
		To: to, Data: []byte{0x01}, Value: big.NewInt(10), Gas: 21000})
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)
	tx := backend.sent[0]
	assert.Equal(hash, tx.Hash())
	assert.Equal(uint64(7), tx.Nonce())
	assert.Equal(&to, tx.To())
	assert.Equal(uint64(21000), tx.Gas())
	assert.Equal(int64(10), tx.Value().Int64())
	assert.Equal(int64(11e9), tx.GasFeeCap().Int64())

	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	require.NoError(t, err)
	assert.Equal(w.Address(), sender)
}

func TestPrivateKeySignMessage(t *testing.T) {
	w := newPrivateKey(t, &fakeBackend{}, nil)
	msg := []byte("hello")
	sig, err := w.SignMessage(context.Background(), msg)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	sig[64] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash(msg), sig)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), crypto.PubkeyToAddress(*pub))
}

func TestPrivateKeySignTypedData(t *testing.T) {
	w := newPrivateKey(t, &fakeBackend{}, nil)
	data := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
			},
			"Note": {{Name: "text", Type: "string"}},
		},
		PrimaryType: "Note",
		Domain: apitypes.TypedDataDomain{
			Name:    "sign.global",
			Version: "1",
		},
		Message: apitypes.TypedDataMessage{"text": "hi"},
	}
	sig, err := w.SignTypedData(context.Background(), data)
	require.NoError(t, err)
	hash, _, err := apitypes.TypedDataAndHash(data)
	require.NoError(t, err)
	sig[64] -= 27
	pub, err := crypto.SigToPub(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), crypto.PubkeyToAddress(*pub))
}

func TestPrivateKeySwitchChain(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	var dialed []string
	amoy := &fakeBackend{chainID: evm.PolygonAmoy.ID}
	dial := func(_ context.Context, url string) (wallet.Backend, error) {
		dialed = append(dialed, url)
		return amoy, nil
	}
	w := newPrivateKey(t, &fakeBackend{chainID: evm.Sepolia.ID}, dial)

	assert.NoError(w.SwitchChain(ctx, evm.Sepolia.ID))
	assert.Empty(dialed)

	err := w.SwitchChain(ctx, evm.PolygonAmoy.ID)
	assert.True(errors.Is(err, wallet.ErrChainNotRecognized))

	require.NoError(t, w.AddChain(ctx, evm.PolygonAmoy))
	require.NoError(t, w.SwitchChain(ctx, evm.PolygonAmoy.ID))
	assert.Equal(evm.PolygonAmoy.RPCURLs[:1], dialed)
	id, err := w.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(evm.PolygonAmoy.ID, id)

	assert.EqualError(w.AddChain(ctx, evm.Chain{Name: "none", ID: 1}),
		"chain none (1): no RPC URL")
}
