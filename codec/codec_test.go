package codec_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/DaevMithran/SignxLit/codec"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ageSchema = []sp.SchemaItem{{Name: "age", Type: "string"}}

	mixedSchema = []sp.SchemaItem{
		{Name: "name", Type: "string"},
		{Name: "age", Type: "uint256"},
		{Name: "verified", Type: "bool"},
		{Name: "wallet", Type: "address"},
		{Name: "score", Type: "uint8"},
		{Name: "tags", Type: "string[]"},
		{Name: "digest", Type: "bytes32"},
		{Name: "blob", Type: "bytes"},
	}

	staticSchema = []sp.SchemaItem{
		{Name: "amount", Type: "uint256"},
		{Name: "owner", Type: "address"},
		{Name: "active", Type: "bool"},
	}

	owner = common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
)

var roundTripTests = []struct {
	Name   string
	Schema []sp.SchemaItem
	Data   map[string]interface{}
}{{
	Name:   "single string",
	Schema: ageSchema,
	Data:   map[string]interface{}{"age": "30"},
}, {
	Name:   "mixed",
	Schema: mixedSchema,
	Data: map[string]interface{}{
		"name":     "alice",
		"age":      big.NewInt(30),
		"verified": true,
		"wallet":   owner,
		"score":    uint8(7),
		"tags":     []string{"kyc", "dao"},
		"digest":   [32]byte{0x01, 0x02},
		"blob":     []byte{0xde, 0xad, 0xbe, 0xef},
	},
}, {
	Name:   "static",
	Schema: staticSchema,
	Data: map[string]interface{}{
		"amount": big.NewInt(1000),
		"owner":  owner,
		"active": true,
	},
}, {
	Name: "leading word equals offset",
	Schema: []sp.SchemaItem{
		{Name: "score", Type: "uint256"},
		{Name: "rank", Type: "uint256"},
		{Name: "note", Type: "string"},
	},
	Data: map[string]interface{}{
		"score": big.NewInt(32),
		"rank":  big.NewInt(96),
		"note":  "ok",
	},
}, {
	Name: "long first string",
	Schema: []sp.SchemaItem{
		{Name: "a", Type: "string"},
		{Name: "b", Type: "string"},
	},
	Data: map[string]interface{}{
		"a": strings.Repeat("x", 64),
		"b": "y",
	},
}}

func TestRoundTrip(t *testing.T) {
	for _, test := range roundTripTests {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			require.NoError(t, codec.Validate(test.Data, test.Schema))

			flat, err := codec.Encode(test.Data, test.Schema)
			require.NoError(t, err)
			data, err := codec.Decode(flat, test.Schema)
			require.NoError(t, err)
			assert.Equal(test.Data, data, "flat")

			tuple, err := codec.EncodeTuple(test.Data, test.Schema)
			require.NoError(t, err)
			data, err = codec.Decode(tuple, test.Schema)
			require.NoError(t, err)
			assert.Equal(test.Data, data, "tuple")
		})
	}
}

// A flat payload whose first word is 0x20 also unpacks as a tuple. Only the
// shape that re-encodes to the same bytes may be accepted.
func TestDecodeAmbiguousPrefix(t *testing.T) {
	assert := assert.New(t)
	schema := []sp.SchemaItem{
		{Name: "score", Type: "uint256"},
		{Name: "rank", Type: "uint256"},
		{Name: "note", Type: "string"},
	}
	for _, score := range []int64{0, 32, 64, 96} {
		for _, rank := range []int64{0, 32, 96} {
			in := map[string]interface{}{
				"score": big.NewInt(score),
				"rank":  big.NewInt(rank),
				"note":  "ok",
			}
			encoded, err := codec.Encode(in, schema)
			require.NoError(t, err)
			out, err := codec.Decode(encoded, schema)
			require.NoError(t, err)
			assert.Zero(big.NewInt(score).Cmp(out["score"].(*big.Int)),
				"score %v rank %v", score, rank)
			assert.Zero(big.NewInt(rank).Cmp(out["rank"].(*big.Int)),
				"score %v rank %v", score, rank)
			assert.Equal("ok", out["note"], "score %v rank %v", score, rank)
		}
	}
}

func TestShapes(t *testing.T) {
	assert := assert.New(t)

	data := map[string]interface{}{"age": "30"}
	flat, err := codec.Encode(data, ageSchema)
	require.NoError(t, err)
	tuple, err := codec.EncodeTuple(data, ageSchema)
	require.NoError(t, err)
	// A dynamic tuple carries an extra offset word.
	assert.Len(flat, 3*32)
	assert.Len(tuple, 4*32)
	assert.True(bytes.Equal(flat, tuple[32:]))

	static := roundTripTests[2].Data
	flat, err = codec.Encode(static, staticSchema)
	require.NoError(t, err)
	tuple, err = codec.EncodeTuple(static, staticSchema)
	require.NoError(t, err)
	assert.Equal(flat, tuple)
}

func TestDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := codec.Decode([]byte{0x01, 0x02, 0x03}, ageSchema)
	var decodeErr *codec.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Error(decodeErr.Tuple)
	assert.Error(decodeErr.Flat)

	_, err = codec.Decode(make([]byte, 32), []sp.SchemaItem{
		{Name: "x", Type: "uint7"}})
	assert.Error(err)
}

func TestEncodeMissingField(t *testing.T) {
	_, err := codec.Encode(map[string]interface{}{"years": "30"}, ageSchema)
	assert.EqualError(t, err, `field "age" of type string is missing`)
}

var validateTests = []struct {
	Name  string
	Data  map[string]interface{}
	Field string
	Error string
}{{
	Name:  "extra field",
	Data:  map[string]interface{}{"age": "30", "extra": "x"},
	Error: "field length mismatch",
}, {
	Name:  "empty",
	Data:  map[string]interface{}{},
	Error: "field length mismatch",
}, {
	Name:  "renamed field",
	Data:  map[string]interface{}{"years": "30"},
	Field: "age",
	Error: `field "age" of type string is missing`,
}, {
	Name:  "wrong type",
	Data:  map[string]interface{}{"age": 30},
	Field: "age",
	Error: `field "age" of type string: cannot use int as string`,
}, {
	Name: "valid",
	Data: map[string]interface{}{"age": "30"},
}}

func TestValidate(t *testing.T) {
	for _, test := range validateTests {
		t.Run(test.Name, func(t *testing.T) {
			err := codec.Validate(test.Data, ageSchema)
			if test.Error == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, test.Error)
			if test.Field == "" {
				assert.ErrorIs(t, err, codec.ErrFieldLengthMismatch)
				return
			}
			var fieldErr *codec.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, test.Field, fieldErr.Field)
		})
	}
}

func TestValidateJSONValues(t *testing.T) {
	assert := assert.New(t)
	// Values as produced by encoding/json.
	data := map[string]interface{}{
		"amount": float64(1000),
		"owner":  owner.Hex(),
		"active": true,
	}
	require.NoError(t, codec.Validate(data, staticSchema))
	encoded, err := codec.Encode(data, staticSchema)
	require.NoError(t, err)
	decoded, err := codec.Decode(encoded, staticSchema)
	require.NoError(t, err)
	assert.Equal(roundTripTests[2].Data, decoded)

	data["amount"] = float64(-1)
	assert.EqualError(codec.Validate(data, staticSchema),
		`field "amount" of type uint256: -1 overflows uint256`)
	data["amount"] = 1.5
	assert.EqualError(codec.Validate(data, staticSchema),
		`field "amount" of type uint256: 1.5 is not an integer`)
}
