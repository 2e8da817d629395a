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
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

// DefaultRevokeReason is used by the interactive menu when no reason is
// entered.
const DefaultRevokeReason = "Test revocation"

var (
	revokeOpts  sp.RevokeOptions
	revokeSig   hexBytes
	revokeExtra hexBytes
)

var revokeCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "revoke ATTESTATIONID [--reason REASON]",
		Short:                 "Revoke an attestation",
		Args:                  cobra.ExactArgs(1),
		PreRunE:               needClients,
		RunE:                  revoke,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["revoke"] = revokeCmplCmd
	rootCmplCmd.Sub["help"].Sub["revoke"] = complete.Command{}

	flags := cmd.Flags()
	flags.StringVar(&revokeOpts.Reason, "reason", "", "Reason for revoking")
	flags.Var(&revokeSig, "delegation-signature",
		"Hex signature of the attester authorizing this revocation")
	flags.Var(&revokeExtra, "extra-data", "Hex data passed to the schema hook")

	generateCmplFlags(cmd, revokeCmplCmd.Flags)
	return cmd
}()

var revokeCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func revoke(cmd *cobra.Command, args []string) error {
	revokeOpts.DelegationSignature = revokeSig
	revokeOpts.ExtraData = revokeExtra
	revokeOpts.OnTxHash = printTxHash
	vrbLog.Printf("Revoking attestation: %v\n", args[0])
	res, err := SP.RevokeAttestation(cmd.Context(), args[0], revokeOpts)
	if err != nil {
		return err
	}
	return printJSON("Attestation Revoked:", res)
}
