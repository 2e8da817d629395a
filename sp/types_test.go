package sp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var validateFieldsTests = []struct {
	Name  string
	Data  []SchemaItem
	Error string
}{{
	Name: "valid",
	Data: []SchemaItem{{"name", "string"}, {"age", "uint256"}},
}, {
	Name: "empty",
}, {
	Name:  "duplicate",
	Data:  []SchemaItem{{"age", "uint8"}, {"age", "uint256"}},
	Error: `data[1]: duplicate field "age"`,
}, {
	Name:  "no name",
	Data:  []SchemaItem{{"", "uint8"}},
	Error: "data[0]: name is required",
}, {
	Name:  "no type",
	Data:  []SchemaItem{{"age", ""}},
	Error: "data[0]: type is required",
}, {
	Name:  "odd integer width",
	Data:  []SchemaItem{{"name", "string"}, {"age", "uint7"}},
	Error: "data[1]: uint7: invalid integer width 7",
}, {
	Name:  "nested integer width",
	Data:  []SchemaItem{{"scores", "int12[][2]"}},
	Error: "data[0]: int12[][2]: invalid integer width 12",
}}

func TestSchemaValidateFields(t *testing.T) {
	for _, test := range validateFieldsTests {
		t.Run(test.Name, func(t *testing.T) {
			err := Schema{Data: test.Data}.ValidateFields()
			if test.Error == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, test.Error)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []string{"uint8", "int256", "address[]",
		"bytes32", "bytes", "bool[3]", "string"} {
		_, err := ParseType(typ)
		assert.NoError(t, err, typ)
	}
	for _, typ := range []string{"uint7", "int0", "uint264", "uint12[]",
		"bytes33", "foo", ""} {
		_, err := ParseType(typ)
		assert.Error(t, err, typ)
	}
}
