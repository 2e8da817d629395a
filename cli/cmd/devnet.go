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
	"net/url"

	"github.com/DaevMithran/SignxLit/lit"
	"github.com/DaevMithran/SignxLit/lit/littest"
	"github.com/DaevMithran/SignxLit/srv"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var devnetCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "devnet [--listen ADDRESS]",
		Short:                 "Run an in memory encryption network",
		Long: `
Serve an in memory threshold encryption network over JSON-RPC until
interrupted. Gated attestations created against it may only be resolved
while the same devnet process is running.

Point other commands at it with --lit, which it listens on by default.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: runDevnet,
	}
	rootCmd.AddCommand(cmd)

	flags := cmd.Flags()
	flags.String("listen", defaultListen(),
		"Address to serve the network API on")
	devnetCmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags)}
	generateCmplFlags(cmd, devnetCmplCmd.Flags)
	rootCmplCmd.Sub["devnet"] = devnetCmplCmd
	rootCmplCmd.Sub["help"].Sub["devnet"] = complete.Command{}
	return cmd
}()

func defaultListen() string {
	u, err := url.Parse(lit.DefaultURL)
	if err != nil {
		return "localhost:7470"
	}
	return u.Host
}

func runDevnet(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("listen")
	net := littest.NewNetwork()
	okLog.Printf("Blockhash: %v\nNodes: %v\n", net.Blockhash, net.Nodes)
	return srv.ListenAndServe(cmd.Context(), addr, net)
}
