package srv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/DaevMithran/SignxLit/lit"
	"github.com/DaevMithran/SignxLit/lit/littest"
	"github.com/DaevMithran/SignxLit/srv"
	"github.com/DaevMithran/SignxLit/wallet"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newNetwork(t *testing.T) (*littest.Network, *lit.RPCNetwork) {
	net := littest.NewNetwork()
	net.Now = func() time.Time { return issued.Add(time.Minute) }
	ts := httptest.NewServer(srv.Handler(net))
	t.Cleanup(ts.Close)
	return net, lit.NewRPCNetwork(ts.URL)
}

func newClient(t *testing.T, n lit.Network) *lit.Client {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return lit.NewClient(n, wallet.NewPrivateKey(key, nil, nil), lit.Config{
		Now: func() time.Time { return issued },
	})
}

func TestNetworkInfo(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	net, rpcNet := newNetwork(t)

	hash, err := rpcNet.LatestBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(net.Blockhash, hash)

	nodes, err := rpcNet.ConnectedNodes(ctx)
	require.NoError(t, err)
	assert.Equal(net.Nodes, nodes)
}

func TestEncryptDecrypt(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	net, rpcNet := newNetwork(t)
	c := newClient(t, rpcNet)

	res, err := c.Encrypt(ctx, []byte(`{"note":"hello"}`), nil)
	require.NoError(t, err)
	require.Len(t, net.Encrypts, 1)
	assert.Equal(accs.OrDefault(nil, "amoy"),
		net.Encrypts[0].AccessControlConditions)

	plaintext, err := c.Decrypt(ctx, res.Ciphertext, res.DataToEncryptHash, nil)
	require.NoError(t, err)
	assert.Equal(`{"note":"hello"}`, string(plaintext))

	other := accs.Conditions{accs.Leaf(accs.Default("sepolia"))}
	_, err = c.Decrypt(ctx, res.Ciphertext, res.DataToEncryptHash, other)
	assert.Error(err)
	assert.Len(net.Decrypts, 2)
}

func TestInvalidParams(t *testing.T) {
	ctx := context.Background()
	net, rpcNet := newNetwork(t)

	_, err := rpcNet.Encrypt(ctx, lit.EncryptRequest{DataToEncrypt: []byte("x")})
	assert.Error(t, err)
	_, err = rpcNet.Decrypt(ctx, lit.DecryptRequest{Chain: "amoy"})
	assert.Error(t, err)
	assert.Empty(t, net.Encrypts)
	assert.Empty(t, net.Decrypts)
}

func post(t *testing.T, url, body string) (*http.Response, map[string]json.RawMessage) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var msg map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(res.Body).Decode(&msg))
	return res, msg
}

func TestHandler(t *testing.T) {
	assert := assert.New(t)
	net := littest.NewNetwork()
	ts := httptest.NewServer(srv.Handler(net))
	defer ts.Close()

	res, msg := post(t, ts.URL+"/v1",
		`{"jsonrpc":"2.0","id":1,"method":"lit_latestBlockhash"}`)
	assert.Equal("*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(srv.APIVersion, res.Header.Get("Signxlit-Api-Version"))
	var hash string
	require.NoError(t, json.Unmarshal(msg["result"], &hash))
	assert.Equal(net.Blockhash, hash)

	_, msg = post(t, ts.URL,
		`{"jsonrpc":"2.0","id":2,"method":"lit_connectedNodes","params":{"x":1}}`)
	assert.Contains(msg, "error")
	assert.NotContains(msg, "result")

	_, msg = post(t, ts.URL,
		`{"jsonrpc":"2.0","id":3,"method":"lit_encrypt","params":{"chain":"amoy","unknown":true}}`)
	var rpcErr struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(msg["error"], &rpcErr))
	assert.Equal(-32602, rpcErr.Code)
}
