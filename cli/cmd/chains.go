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

package cmd

import (
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var chainsCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "chains",
		Short:                 "List the chains that may be used with --chain",
		Long: `
List the built in chains and those defined by --chains-file.

A chains file is YAML of the form:

  chains:
    - key: anvil
      id: 31337
      name: Anvil
      rpcUrls: [http://localhost:8545]
      contract: "0x..."
      litChain: ethereum
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: listChains,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["chains"] = complete.Command{Flags: mergeFlags(apiCmplFlags)}
	rootCmplCmd.Sub["help"].Sub["chains"] = complete.Command{}
	return cmd
}()

func listChains(_ *cobra.Command, _ []string) error {
	if path := get("chains-file"); path != "" {
		if err := Registry.LoadFile(path); err != nil {
			return err
		}
	}
	for _, key := range Registry.Keys() {
		c := Registry[key]
		fmt.Printf(`Key: %v
Chain: %v
Currency: %v
RPC URL: %v
Sign Protocol Contract: %v
Lit Chain: %v

`,
			key, c, c.NativeCurrency.Symbol, c.RPCURL(), c.Contract.Hex(),
			c.LitChain)
	}
	return nil
}
