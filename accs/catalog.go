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

// Template is a named Condition offered to users by Build.
type Template struct {
	Name      string
	Condition Condition
}

// Catalog returns a new copy of the built in condition templates.
func Catalog() []Template {
	return []Template{{
		Name: "Proof of Humanity",
		Condition: Condition{
			ConditionType:        "evmBasic",
			ContractAddress:      "0xC5E9dDebb09Cd64DfaCab4011A0D5cEDaf7c9BDb",
			StandardContractType: "ProofOfHumanity",
			Chain:                "ethereum",
			Method:               "isRegistered",
			Parameters:           []string{":userAddress"},
			ReturnValueTest: ReturnValueTest{
				Comparator: "=",
				Value:      "true",
			},
		},
	}, {
		Name: "Burning Man 2021 POAP",
		Condition: Condition{
			ConditionType:        "evmBasic",
			ContractAddress:      "0x22C1f6050E56d2876009903609a2cC3fEf83B415",
			StandardContractType: "POAP",
			Chain:                "xdai",
			Method:               "tokenURI",
			Parameters:           []string{},
			ReturnValueTest: ReturnValueTest{
				Comparator: "contains",
				Value:      "Burning Man 2021",
			},
		},
	}, {
		Name:      "Token Holder",
		Condition: Default(DefaultChain),
	}}
}
