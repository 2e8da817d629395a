package evm_test

import (
	"strings"
	"testing"

	"github.com/DaevMithran/SignxLit/evm"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	assert := assert.New(t)
	r := evm.DefaultRegistry()

	c, err := r.Lookup("polygonAmoy")
	require.NoError(t, err)
	assert.Equal(uint64(80002), c.ID)
	assert.Equal("amoy", c.LitChain)

	c, err = r.Lookup("11155111")
	require.NoError(t, err)
	assert.Equal(evm.Sepolia.Key, c.Key)

	_, err = r.Lookup("mainnet")
	assert.EqualError(err, `unknown chain: "mainnet"`)

	assert.Equal([]string{"baseSepolia", "polygonAmoy", "sepolia"}, r.Keys())
}

func TestAddChainParams(t *testing.T) {
	p := evm.PolygonAmoy.AddChainParams()
	assert.Equal(t, "0x13882", p.ChainID)
	assert.Equal(t, "Polygon Amoy", p.ChainName)
	assert.Equal(t, evm.PolygonAmoy.RPCURLs, p.RPCURLs)
}

var loadTests = []struct {
	Name  string
	YAML  string
	Error string
}{{
	Name: "valid",
	YAML: `
chains:
  - key: anvil
    id: 31337
    name: Anvil
    rpcUrls: ["http://127.0.0.1:8545"]
    contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
    litChain: sepolia
`,
}, {
	Name: "missing key",
	YAML: `
chains:
  - id: 31337
    contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
`,
	Error: "chains[0]: key is required",
}, {
	Name: "bad contract",
	YAML: `
chains:
  - key: anvil
    id: 31337
    contract: "0x5FbD"
`,
	Error: `chains[0]: invalid contract address: "0x5FbD"`,
}}

func TestLoad(t *testing.T) {
	for _, test := range loadTests {
		t.Run(test.Name, func(t *testing.T) {
			r := evm.DefaultRegistry()
			err := r.Load(strings.NewReader(test.YAML))
			if test.Error != "" {
				assert.EqualError(t, err, test.Error)
				return
			}
			require.NoError(t, err)
			c, err := r.Lookup("31337")
			require.NoError(t, err)
			assert.Equal(t, "anvil", c.Key)
			assert.Equal(t, "http://127.0.0.1:8545", c.RPCURL())
			assert.Equal(t, "ETH", c.NativeCurrency.Symbol)
			assert.Equal(t, common.HexToAddress(
				"0x5FbDB2315678afecb367f032d93F642f64180aa3"), c.Contract)
		})
	}
}
