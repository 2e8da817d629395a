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
	"encoding/json"
	"fmt"
	"os"

	"github.com/DaevMithran/SignxLit/offchain"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var signCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign messages and typed data off-chain",
		Long: `
Sign a message or EIP-712 typed data with the account, without sending a
transaction. Typed data is signed under the sign.global domain.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["sign"] = signCmplCmd
	rootCmplCmd.Sub["help"].Sub["sign"] = complete.Command{
		Sub: complete.Commands{"message": complete.Command{},
			"typed": complete.Command{}}}
	return cmd
}()

var signCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub: complete.Commands{
		"message": complete.Command{Flags: mergeFlags(apiCmplFlags)},
		"typed": complete.Command{Flags: mergeFlags(apiCmplFlags),
			Args: complete.PredictFiles("*.json")},
	},
}

func offchainClient() (*offchain.Client, error) {
	if c, ok := SP.Variant().(*offchain.Client); ok {
		return c, nil
	}
	return offchain.New(offchain.Config{Signer: Wallet})
}

var signMessageCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "message MESSAGE",
		Short:                 "Sign MESSAGE with the EIP-191 prefix",
		Args:                  cobra.ExactArgs(1),
		PreRunE:               needClients,
		RunE:                  signMessage,
	}
	signCmd.AddCommand(cmd)
	return cmd
}()

func signMessage(cmd *cobra.Command, args []string) error {
	c, err := offchainClient()
	if err != nil {
		return err
	}
	sig, err := c.SignMessage(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(sig)
	return nil
}

var signTypedCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "typed FILE",
		Short:                 "Sign the EIP-712 typed data in FILE",
		Long: `
Sign the typed data in the JSON FILE, which holds an object with the
primaryType, types and message fields. types must not define EIP712Domain.
`[1:],
		Args:    cobra.ExactArgs(1),
		PreRunE: needClients,
		RunE:    signTyped,
	}
	signCmd.AddCommand(cmd)
	return cmd
}()

func signTyped(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var msg struct {
		PrimaryType string                    `json:"primaryType"`
		Types       apitypes.Types            `json:"types"`
		Message     apitypes.TypedDataMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("%v: %w", args[0], err)
	}
	c, err := offchainClient()
	if err != nil {
		return err
	}
	signed, err := c.SignTypedData(cmd.Context(), offchain.TypedMessage{
		PrimaryType: msg.PrimaryType,
		Types:       msg.Types,
		Message:     msg.Message,
	})
	if err != nil {
		return err
	}
	return printJSON("", signed)
}
