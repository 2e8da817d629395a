// MIT License
//
// Copyright 2024 The SignxLit Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

// Package accs builds access control condition sequences used to gate
// decryption of attestation payloads.
//
// A Conditions value is a flat sequence alternating between leaf Conditions
// and Operators. It is evaluated left to right with no grouping, so
// "A or B and C" means "(A or B) and C".
package accs

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Operator string

const (
	And Operator = "and"
	Or  Operator = "or"
)

func (o Operator) Valid() bool { return o == And || o == Or }

type ReturnValueTest struct {
	Comparator string `json:"comparator"`
	Value      string `json:"value"`
}

// Condition is a predicate over chain state evaluated by the encryption
// network. The ":userAddress" parameter is substituted with the address of
// the party requesting decryption.
type Condition struct {
	ConditionType        string          `json:"conditionType,omitempty"`
	ContractAddress      string          `json:"contractAddress"`
	StandardContractType string          `json:"standardContractType"`
	Chain                string          `json:"chain"`
	Method               string          `json:"method"`
	Parameters           []string        `json:"parameters"`
	ReturnValueTest      ReturnValueTest `json:"returnValueTest"`
}

// Element is either a Condition or an Operator.
type Element struct {
	Condition *Condition
	Operator  Operator
}

func Leaf(c Condition) Element { return Element{Condition: &c} }
func Join(op Operator) Element { return Element{Operator: op} }
func (e Element) IsLeaf() bool { return e.Condition != nil }

func (e Element) MarshalJSON() ([]byte, error) {
	if e.Condition != nil {
		return json.Marshal(e.Condition)
	}
	return json.Marshal(struct {
		Operator Operator `json:"operator"`
	}{e.Operator})
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var op struct {
		Operator Operator `json:"operator"`
	}
	if err := json.Unmarshal(data, &op); err != nil {
		return err
	}
	if op.Operator != "" {
		*e = Element{Operator: op.Operator}
		return nil
	}
	var c Condition
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*e = Element{Condition: &c}
	return nil
}

// Conditions is a flat sequence of N leaves joined by N-1 operators.
type Conditions []Element

var ErrEmpty = errors.New("no access control conditions")

// Validate checks that c strictly alternates between leaves and valid
// operators, starting and ending with a leaf.
func (c Conditions) Validate() error {
	if len(c) == 0 {
		return ErrEmpty
	}
	if len(c)%2 == 0 {
		return fmt.Errorf("conditions end with an operator")
	}
	for i, e := range c {
		if i%2 == 0 {
			if !e.IsLeaf() {
				return fmt.Errorf("conditions[%v]: expected condition", i)
			}
			continue
		}
		if e.IsLeaf() {
			return fmt.Errorf("conditions[%v]: expected operator", i)
		}
		if !e.Operator.Valid() {
			return fmt.Errorf("conditions[%v]: invalid operator %q",
				i, e.Operator)
		}
	}
	return nil
}

// Leaves returns the number of leaf conditions.
func (c Conditions) Leaves() int {
	var n int
	for _, e := range c {
		if e.IsLeaf() {
			n++
		}
	}
	return n
}

// Eval evaluates c left to right using test for each leaf.
func (c Conditions) Eval(test func(Condition) (bool, error)) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	result, err := test(*c[0].Condition)
	if err != nil {
		return false, err
	}
	for i := 1; i < len(c); i += 2 {
		next, err := test(*c[i+1].Condition)
		if err != nil {
			return false, err
		}
		if c[i].Operator == And {
			result = result && next
		} else {
			result = result || next
		}
	}
	return result, nil
}

// DefaultChain is the chain the default condition is checked against.
const DefaultChain = "amoy"

// Default returns a condition that any address with a balance of zero or
// more satisfies on chain.
func Default(chain string) Condition {
	return Condition{
		ConditionType:        "evmBasic",
		ContractAddress:      "",
		StandardContractType: "",
		Chain:                chain,
		Method:               "eth_getBalance",
		Parameters:           []string{":userAddress"},
		ReturnValueTest: ReturnValueTest{
			Comparator: ">=",
			Value:      "0",
		},
	}
}

// OrDefault returns c, or a sequence holding only Default(chain) if c is
// empty.
func OrDefault(c Conditions, chain string) Conditions {
	if len(c) > 0 {
		return c
	}
	return Conditions{Leaf(Default(chain))}
}
