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

package accs

import "fmt"

// Prompter supplies the choices made while building Conditions.
type Prompter interface {
	// ChooseCondition returns the index into available of the next
	// condition.
	ChooseCondition(available []Template) (int, error)
	// AddAnother reports whether another condition should be appended.
	AddAnother() (bool, error)
	// ChooseOperator returns the operator joining the next condition.
	ChooseOperator() (Operator, error)
}

// Build assembles Conditions from catalog using p. Each template may be
// chosen at most once. Once the catalog is exhausted Build returns without
// asking p for anything else. The result always holds N leaves and N-1
// operators.
func Build(p Prompter, catalog []Template) (Conditions, error) {
	available := append([]Template(nil), catalog...)
	if len(available) == 0 {
		return nil, ErrEmpty
	}
	var conds Conditions
	for {
		i, err := p.ChooseCondition(available)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(available) {
			return nil, fmt.Errorf("invalid condition choice: %v", i)
		}
		conds = append(conds, Leaf(available[i].Condition))
		available = append(available[:i], available[i+1:]...)

		if len(available) == 0 {
			return conds, nil
		}
		more, err := p.AddAnother()
		if err != nil {
			return nil, err
		}
		if !more {
			return conds, nil
		}
		op, err := p.ChooseOperator()
		if err != nil {
			return nil, err
		}
		if !op.Valid() {
			return nil, fmt.Errorf("invalid operator: %q", op)
		}
		conds = append(conds, Join(op))
	}
}
