package lit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/DaevMithran/SignxLit/lit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     json.RawMessage `json:"id"`
}

// rpcServer answers JSON-RPC 2.0 requests using methods. A method returning
// an error is answered with a JSON-RPC error.
func rpcServer(t *testing.T, methods map[string]func(json.RawMessage) (interface{}, error)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var req rpcRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			res := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
			method, ok := methods[req.Method]
			if !ok {
				res["error"] = map[string]interface{}{
					"code": -32601, "message": "Method not found"}
			} else if result, err := method(req.Params); err != nil {
				res["error"] = map[string]interface{}{
					"code": -32000, "message": err.Error()}
			} else {
				res["result"] = result
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(res)
		}))
}

func TestRPCNetwork(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	var encrypted lit.EncryptRequest
	srv := rpcServer(t, map[string]func(json.RawMessage) (interface{}, error){
		"lit_latestBlockhash": func(json.RawMessage) (interface{}, error) {
			return "0xabc", nil
		},
		"lit_connectedNodes": func(json.RawMessage) (interface{}, error) {
			return []string{"node-1"}, nil
		},
		"lit_encrypt": func(params json.RawMessage) (interface{}, error) {
			if err := json.Unmarshal(params, &encrypted); err != nil {
				return nil, err
			}
			return lit.EncryptResponse{Ciphertext: "ct",
				DataToEncryptHash: "hash"}, nil
		},
	})
	defer srv.Close()

	n := lit.NewRPCNetwork(srv.URL)
	hash, err := n.LatestBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal("0xabc", hash)

	nodes, err := n.ConnectedNodes(ctx)
	require.NoError(t, err)
	assert.Equal([]string{"node-1"}, nodes)

	conds := accs.OrDefault(nil, "amoy")
	res, err := n.Encrypt(ctx, lit.EncryptRequest{
		AccessControlConditions: conds,
		DataToEncrypt:           []byte("hello"),
		Chain:                   "amoy",
	})
	require.NoError(t, err)
	assert.Equal(lit.EncryptResponse{Ciphertext: "ct",
		DataToEncryptHash: "hash"}, res)
	assert.Equal(conds, encrypted.AccessControlConditions)
	assert.Equal([]byte("hello"), encrypted.DataToEncrypt)

	_, err = n.Decrypt(ctx, lit.DecryptRequest{})
	assert.Error(err)
}
