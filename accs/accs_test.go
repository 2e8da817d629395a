package accs_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter always picks the first available template and answers
// AddAnother from more.
type scriptedPrompter struct {
	more      []bool
	ops       []accs.Operator
	asked     int
	opsAsked  int
	offered   [][]string
	chooseErr error
}

func (p *scriptedPrompter) ChooseCondition(available []accs.Template) (int, error) {
	var names []string
	for _, t := range available {
		names = append(names, t.Name)
	}
	p.offered = append(p.offered, names)
	return 0, p.chooseErr
}

func (p *scriptedPrompter) AddAnother() (bool, error) {
	more := p.more[p.asked]
	p.asked++
	return more, nil
}

func (p *scriptedPrompter) ChooseOperator() (accs.Operator, error) {
	op := p.ops[p.opsAsked]
	p.opsAsked++
	return op, nil
}

var buildTests = []struct {
	Name   string
	More   []bool
	Ops    []accs.Operator
	Leaves int
	Asked  int
}{{
	Name:   "single",
	More:   []bool{false},
	Leaves: 1,
	Asked:  1,
}, {
	Name:   "two",
	More:   []bool{true, false},
	Ops:    []accs.Operator{accs.Or},
	Leaves: 2,
	Asked:  2,
}, {
	Name:   "exhaust catalog",
	More:   []bool{true, true},
	Ops:    []accs.Operator{accs.And, accs.Or},
	Leaves: 3,
	Asked:  2,
}}

func TestBuild(t *testing.T) {
	for _, test := range buildTests {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			p := &scriptedPrompter{more: test.More, ops: test.Ops}
			conds, err := accs.Build(p, accs.Catalog())
			require.NoError(t, err)
			assert.NoError(conds.Validate())
			assert.Equal(test.Leaves, conds.Leaves())
			assert.Len(conds, 2*test.Leaves-1)
			assert.Equal(test.Asked, p.asked)
			assert.Equal(test.Leaves-1, p.opsAsked)
			// Chosen templates are never offered again.
			for i, offered := range p.offered {
				assert.Len(offered, 3-i)
				if i > 0 {
					assert.NotContains(offered, p.offered[i-1][0])
				}
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	assert := assert.New(t)
	_, err := accs.Build(&scriptedPrompter{}, nil)
	assert.Equal(accs.ErrEmpty, err)

	chooseErr := errors.New("interrupted")
	_, err = accs.Build(&scriptedPrompter{chooseErr: chooseErr}, accs.Catalog())
	assert.Equal(chooseErr, err)

	p := &scriptedPrompter{more: []bool{true}, ops: []accs.Operator{"xor"}}
	_, err = accs.Build(p, accs.Catalog())
	assert.EqualError(err, `invalid operator: "xor"`)
}

func TestBuildDoesNotModifyCatalog(t *testing.T) {
	catalog := accs.Catalog()
	p := &scriptedPrompter{more: []bool{true, true},
		ops: []accs.Operator{accs.And, accs.And}}
	_, err := accs.Build(p, catalog)
	require.NoError(t, err)
	assert.Equal(t, accs.Catalog(), catalog)
}

var validateTests = []struct {
	Name  string
	Conds accs.Conditions
	Error string
}{{
	Name:  "empty",
	Error: "no access control conditions",
}, {
	Name: "trailing operator",
	Conds: accs.Conditions{accs.Leaf(accs.Default("amoy")),
		accs.Join(accs.And)},
	Error: "conditions end with an operator",
}, {
	Name: "adjacent leaves",
	Conds: accs.Conditions{accs.Leaf(accs.Default("amoy")),
		accs.Leaf(accs.Default("amoy")), accs.Leaf(accs.Default("amoy"))},
	Error: "conditions[1]: expected operator",
}, {
	Name: "leading operator",
	Conds: accs.Conditions{accs.Join(accs.Or),
		accs.Leaf(accs.Default("amoy")), accs.Join(accs.Or)},
	Error: "conditions[0]: expected condition",
}, {
	Name: "bad operator",
	Conds: accs.Conditions{accs.Leaf(accs.Default("amoy")),
		accs.Join("nand"), accs.Leaf(accs.Default("amoy"))},
	Error: `conditions[1]: invalid operator "nand"`,
}, {
	Name:  "default",
	Conds: accs.OrDefault(nil, "amoy"),
}}

func TestValidate(t *testing.T) {
	for _, test := range validateTests {
		t.Run(test.Name, func(t *testing.T) {
			err := test.Conds.Validate()
			if test.Error != "" {
				assert.EqualError(t, err, test.Error)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEvalLeftAssociative(t *testing.T) {
	// true or false and false == (true or false) and false == false
	a, b, c := accs.Default("a"), accs.Default("b"), accs.Default("c")
	values := map[string]bool{"a": true, "b": false, "c": false}
	conds := accs.Conditions{accs.Leaf(a), accs.Join(accs.Or),
		accs.Leaf(b), accs.Join(accs.And), accs.Leaf(c)}
	result, err := conds.Eval(func(c accs.Condition) (bool, error) {
		return values[c.Chain], nil
	})
	require.NoError(t, err)
	assert.False(t, result)
}

func TestConditionsJSON(t *testing.T) {
	assert := assert.New(t)
	conds := accs.Conditions{accs.Leaf(accs.Default("amoy")),
		accs.Join(accs.And), accs.Leaf(accs.Catalog()[0].Condition)}
	data, err := json.Marshal(conds)
	require.NoError(t, err)
	assert.Contains(string(data), `{"operator":"and"}`)
	assert.Contains(string(data), `"parameters":[":userAddress"]`)

	var got accs.Conditions
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(conds, got)
}

func TestDefault(t *testing.T) {
	assert := assert.New(t)
	c := accs.Default(accs.DefaultChain)
	assert.Equal("eth_getBalance", c.Method)
	assert.Equal([]string{":userAddress"}, c.Parameters)
	assert.Equal(accs.ReturnValueTest{Comparator: ">=", Value: "0"},
		c.ReturnValueTest)

	explicit := accs.Conditions{accs.Leaf(accs.Catalog()[1].Condition)}
	assert.Equal(explicit, accs.OrDefault(explicit, "amoy"))
}
