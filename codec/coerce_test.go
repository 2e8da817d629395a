package codec_test

import (
	"math/big"
	"testing"

	"github.com/DaevMithran/SignxLit/codec"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newType(t *testing.T, typ string) abi.Type {
	abiType, err := abi.NewType(typ, "", nil)
	require.NoError(t, err)
	return abiType
}

var coerceTests = []struct {
	Name  string
	Type  string
	Value interface{}
	Exp   interface{}
	Error string
}{{
	Name:  "uint8 from float",
	Type:  "uint8",
	Value: float64(255),
	Exp:   uint8(255),
}, {
	Name:  "uint8 overflow",
	Type:  "uint8",
	Value: 256,
	Error: "256 overflows uint8",
}, {
	Name:  "int64 negative",
	Type:  "int64",
	Value: -5,
	Exp:   int64(-5),
}, {
	Name:  "int8 underflow",
	Type:  "int8",
	Value: -129,
	Error: "-129 overflows int8",
}, {
	Name:  "uint256 from hex string",
	Type:  "uint256",
	Value: "0xff",
	Exp:   big.NewInt(255),
}, {
	Name:  "uint24 is big",
	Type:  "uint24",
	Value: uint32(7),
	Exp:   big.NewInt(7),
}, {
	Name:  "bytes from hex",
	Type:  "bytes",
	Value: "0x0102",
	Exp:   []byte{0x01, 0x02},
}, {
	Name:  "bytes4 from slice",
	Type:  "bytes4",
	Value: []byte{1, 2, 3, 4},
	Exp:   [4]byte{1, 2, 3, 4},
}, {
	Name:  "bytes4 wrong size",
	Type:  "bytes4",
	Value: []byte{1, 2, 3},
	Error: "cannot use 3 bytes as bytes4",
}, {
	Name:  "string slice from json",
	Type:  "string[]",
	Value: []interface{}{"a", "b"},
	Exp:   []string{"a", "b"},
}, {
	Name:  "fixed array",
	Type:  "uint16[2]",
	Value: []interface{}{float64(1), float64(2)},
	Exp:   [2]uint16{1, 2},
}, {
	Name:  "fixed array wrong length",
	Type:  "uint16[2]",
	Value: []int{1},
	Error: "cannot use 1 elements as uint16[2]",
}, {
	Name:  "slice element error",
	Type:  "bool[]",
	Value: []interface{}{true, "yes"},
	Error: "[1]: cannot use string as bool",
}, {
	Name:  "invalid address",
	Type:  "address",
	Value: "0x1234",
	Error: `invalid address: "0x1234"`,
}}

func TestCoerce(t *testing.T) {
	for _, test := range coerceTests {
		t.Run(test.Name, func(t *testing.T) {
			v, err := codec.Coerce(test.Value, newType(t, test.Type))
			if test.Error != "" {
				assert.EqualError(t, err, test.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.Exp, v)
		})
	}
}
