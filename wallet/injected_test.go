package wallet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DaevMithran/SignxLit/evm"
	"github.com/DaevMithran/SignxLit/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type providerError struct {
	code int
	msg  string
}

func (e providerError) Error() string  { return e.msg }
func (e providerError) ErrorCode() int { return e.code }

// provider implements the provider side of the EIP-1193 methods used by
// wallet.Injected. Methods are exposed under the "eth", "wallet" and
// "personal" namespaces.
type provider struct {
	chainID  uint64
	known    map[uint64]bool
	reject   bool
	added    []evm.AddChainParams
	sentFrom common.Address
}

type ethAPI struct{ p *provider }

func (api ethAPI) RequestAccounts() []common.Address {
	return []common.Address{common.HexToAddress("0x1000000000000000000000000000000000000001")}
}

func (api ethAPI) ChainId() hexutil.Uint64 { return hexutil.Uint64(api.p.chainID) }

func (api ethAPI) SendTransaction(args map[string]interface{}) (common.Hash, error) {
	api.p.sentFrom = common.HexToAddress(args["from"].(string))
	return common.HexToHash("0xabcd"), nil
}

type walletAPI struct{ p *provider }

func (api walletAPI) SwitchEthereumChain(args struct {
	ChainID hexutil.Uint64 `json:"chainId"`
}) error {
	if api.p.reject {
		return providerError{wallet.CodeUserRejected, "User rejected the request."}
	}
	if !api.p.known[uint64(args.ChainID)] {
		return providerError{wallet.CodeChainNotRecognized,
			"Unrecognized chain ID"}
	}
	api.p.chainID = uint64(args.ChainID)
	return nil
}

func (api walletAPI) AddEthereumChain(params evm.AddChainParams) error {
	api.p.added = append(api.p.added, params)
	id, err := hexutil.DecodeUint64(params.ChainID)
	if err != nil {
		return err
	}
	api.p.known[id] = true
	return nil
}

type personalAPI struct{}

func (personalAPI) Sign(msg hexutil.Bytes, _ common.Address) hexutil.Bytes {
	return append(hexutil.Bytes("sig:"), msg...)
}

func newInjected(t *testing.T, p *provider) *wallet.Injected {
	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", ethAPI{p}))
	require.NoError(t, srv.RegisterName("wallet", walletAPI{p}))
	require.NoError(t, srv.RegisterName("personal", personalAPI{}))
	t.Cleanup(srv.Stop)
	client := rpc.DialInProc(srv)
	t.Cleanup(client.Close)
	w, err := wallet.NewInjected(context.Background(), client)
	require.NoError(t, err)
	return w
}

func TestInjected(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	p := &provider{chainID: evm.Sepolia.ID,
		known: map[uint64]bool{evm.Sepolia.ID: true}}
	w := newInjected(t, p)
	assert.Equal(common.HexToAddress(
		"0x1000000000000000000000000000000000000001"), w.Address())

	id, err := w.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(evm.Sepolia.ID, id)

	err = w.SwitchChain(ctx, evm.PolygonAmoy.ID)
	assert.True(errors.Is(err, wallet.ErrChainNotRecognized), err)

	require.NoError(t, w.AddChain(ctx, evm.PolygonAmoy))
	assert.Equal([]evm.AddChainParams{evm.PolygonAmoy.AddChainParams()},
		p.added)
	require.NoError(t, w.SwitchChain(ctx, evm.PolygonAmoy.ID))
	assert.Equal(evm.PolygonAmoy.ID, p.chainID)

	p.reject = true
	err = w.SwitchChain(ctx, evm.Sepolia.ID)
	assert.True(errors.Is(err, wallet.ErrUserRejected), err)

	hash, err := w.SendTransaction(ctx, wallet.TxRequest{
		To: evm.PolygonAmoy.Contract, Data: []byte{0x01}, Gas: 1})
	require.NoError(t, err)
	assert.Equal(common.HexToHash("0xabcd"), hash)
	assert.Equal(w.Address(), p.sentFrom)

	sig, err := w.SignMessage(ctx, []byte("hello"))
	require.NoError(t, err)
	assert.Equal([]byte("sig:hello"), sig)
}
