package onchain_test

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/DaevMithran/SignxLit/evm"
	"github.com/DaevMithran/SignxLit/onchain"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/DaevMithran/SignxLit/wallet"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const blockTime = 1714564800

// contract executes Sign Protocol calls in memory. It serves as both the
// onchain.Backend and the chain the fake wallet submits to.
type contract struct {
	mu           sync.Mutex
	schemas      []onchain.SchemaTuple
	attestations []onchain.AttestationTuple

	// revert makes simulation of the named method fail.
	revert map[string]error
	// emit overrides the event name of the next receipt.
	emit string

	receipts map[common.Hash]*types.Receipt
	polled   map[common.Hash]bool
	values   map[string]*big.Int
	calls    []string
	nonce    uint64
}

func newContract() *contract {
	return &contract{
		revert:   make(map[string]error),
		receipts: make(map[common.Hash]*types.Receipt),
		polled:   make(map[common.Hash]bool),
		values:   make(map[string]*big.Int),
	}
}

func (c *contract) method(data []byte) (*abi.Method, []interface{}, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("no method selector")
	}
	method, err := onchain.Contract.MethodById(data[:4])
	if err != nil {
		return nil, nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, err
	}
	return method, args, nil
}

func (c *contract) CallContract(_ context.Context, msg ethereum.CallMsg,
	_ *big.Int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	method, args, err := c.method(msg.Data)
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case "getSchema":
		var tuple onchain.SchemaTuple
		if id := args[0].(uint64); id < uint64(len(c.schemas)) {
			tuple = c.schemas[id]
		}
		return method.Outputs.Pack(tuple)
	case "getAttestation":
		tuple := onchain.AttestationTuple{Recipients: [][]byte{}, Data: []byte{}}
		if id := args[0].(uint64); id < uint64(len(c.attestations)) {
			tuple = c.attestations[id]
		}
		return method.Outputs.Pack(tuple)
	}
	c.calls = append(c.calls, "simulate "+method.Name)
	if err := c.revert[method.Name]; err != nil {
		return nil, err
	}
	return nil, nil
}

func (c *contract) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 250000, nil
}

// TransactionReceipt reports every transaction as pending once.
func (c *contract) TransactionReceipt(_ context.Context,
	hash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	receipt, ok := c.receipts[hash]
	if !ok {
		return nil, fmt.Errorf("unknown transaction %v", hash)
	}
	if !c.polled[hash] {
		c.polled[hash] = true
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (c *contract) execute(from common.Address, tx wallet.TxRequest) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	method, args, err := c.method(tx.Data)
	if err != nil {
		return common.Hash{}, err
	}
	c.calls = append(c.calls, "send "+method.Name)
	c.values[method.Name] = tx.Value

	var event string
	var fields []interface{}
	switch method.Name {
	case "register":
		tuple := *abi.ConvertType(args[0], new(onchain.SchemaTuple)).(*onchain.SchemaTuple)
		tuple.Timestamp = blockTime
		id := uint64(len(c.schemas))
		if id == 0 {
			// IDs start at 1.
			c.schemas = append(c.schemas, onchain.SchemaTuple{})
			id++
		}
		c.schemas = append(c.schemas, tuple)
		event, fields = onchain.EventSchemaRegistered, []interface{}{id}
	case "attest", "attest0":
		tuple := *abi.ConvertType(args[0], new(onchain.AttestationTuple)).(*onchain.AttestationTuple)
		tuple.AttestTimestamp = blockTime
		key := args[1]
		if method.Name == "attest0" {
			key = args[2]
		}
		id := uint64(len(c.attestations))
		if id == 0 {
			c.attestations = append(c.attestations, onchain.AttestationTuple{})
			id++
		}
		c.attestations = append(c.attestations, tuple)
		event, fields = onchain.EventAttestationMade, []interface{}{id, key}
	case "revoke":
		id := args[0].(uint64)
		if id >= uint64(len(c.attestations)) || len(c.attestations[id].Data) == 0 {
			return common.Hash{}, fmt.Errorf("attestation %v does not exist", id)
		}
		c.attestations[id].Revoked = true
		c.attestations[id].RevokeTimestamp = blockTime + 60
		event, fields = onchain.EventAttestationRevoked, []interface{}{id, args[1]}
	default:
		return common.Hash{}, fmt.Errorf("%v is not a write", method.Name)
	}
	if c.emit != "" {
		event, c.emit = c.emit, ""
		fields = fields[:1]
		if event != onchain.EventSchemaRegistered {
			fields = append(fields, "")
		}
	}
	data, err := onchain.Contract.Events[event].Inputs.Pack(fields...)
	if err != nil {
		return common.Hash{}, err
	}

	c.nonce++
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], c.nonce)
	hash := crypto.Keccak256Hash(from.Bytes(), n[:])
	c.receipts[hash] = &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: hash,
		Logs: []*types.Log{{
			Address: tx.To,
			Topics:  []common.Hash{onchain.Contract.Events[event].ID},
			Data:    data,
		}},
	}
	return hash, nil
}

func (c *contract) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// testWallet signs with a real key and submits to a contract. It knows
// only the chains in known.
type testWallet struct {
	*wallet.PrivateKey
	contract *contract

	chainID  uint64
	known    map[uint64]bool
	rejected bool

	switches []uint64
	added    []evm.Chain
	sent     []wallet.TxRequest
}

func newTestWallet(t *testing.T, c *contract, chainID uint64) *testWallet {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &testWallet{
		PrivateKey: wallet.NewPrivateKey(key, nil, nil),
		contract:   c,
		chainID:    chainID,
		known:      map[uint64]bool{chainID: true},
	}
}

func (w *testWallet) ChainID(context.Context) (uint64, error) {
	return w.chainID, nil
}

func (w *testWallet) SwitchChain(_ context.Context, id uint64) error {
	w.switches = append(w.switches, id)
	if w.rejected {
		return fmt.Errorf("%w: switch chain", wallet.ErrUserRejected)
	}
	if !w.known[id] {
		return fmt.Errorf("%w: %v", wallet.ErrChainNotRecognized, id)
	}
	w.chainID = id
	return nil
}

func (w *testWallet) AddChain(_ context.Context, chain evm.Chain) error {
	w.added = append(w.added, chain)
	w.known[chain.ID] = true
	return nil
}

func (w *testWallet) SendTransaction(_ context.Context,
	tx wallet.TxRequest) (common.Hash, error) {
	w.sent = append(w.sent, tx)
	return w.contract.execute(w.Address(), tx)
}

// storage serves off-chain documents by data ID.
type storage map[string]interface{}

func (s storage) StorageData(_ context.Context, dataID string,
	loc sp.DataLocation, result interface{}) error {
	doc, ok := s[loc.String()+":"+dataID]
	if !ok {
		return fmt.Errorf("no %v data for %v", loc, dataID)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, result)
}
