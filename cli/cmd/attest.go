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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var attestCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attest",
		Aliases: []string{"attestation"},
		Short:   "Create and resolve attestations",
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["attest"] = attestCmplCmd
	rootCmplCmd.Sub["help"].Sub["attest"] = complete.Command{
		Sub: complete.Commands{"create": complete.Command{},
			"get": complete.Command{}}}
	return cmd
}()

var attestCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var conditionCmplFlags = complete.Flags{
	"--condition":       PredictTemplates,
	"--operator":        complete.PredictSet(string(accs.And), string(accs.Or)),
	"--conditions-file": complete.PredictFiles("*.json"),
}

// conditionFlags select the access control conditions of gated
// attestations.
type conditionFlags struct {
	Templates []string
	Operator  string
	File      string
}

func (f *conditionFlags) add(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVar(&f.Templates, "condition", nil,
		"Name of a condition template, may be repeated")
	flags.StringVar(&f.Operator, "operator", string(accs.And),
		"Operator joining --condition templates (and, or)")
	flags.StringVar(&f.File, "conditions-file", "",
		"JSON file holding the access control conditions")
}

// Conditions returns nil if no conditions were given, so that the default
// condition is used.
func (f conditionFlags) Conditions() (accs.Conditions, error) {
	if f.File != "" {
		if len(f.Templates) > 0 {
			return nil, fmt.Errorf(
				"--conditions-file may not be used with --condition")
		}
		data, err := os.ReadFile(f.File)
		if err != nil {
			return nil, err
		}
		var conds accs.Conditions
		if err := json.Unmarshal(data, &conds); err != nil {
			return nil, fmt.Errorf("%v: %w", f.File, err)
		}
		return conds, conds.Validate()
	}
	op := accs.Operator(strings.ToLower(f.Operator))
	if !op.Valid() {
		return nil, fmt.Errorf("invalid operator: %q", f.Operator)
	}
	var conds accs.Conditions
	for i, name := range f.Templates {
		t, err := lookupTemplate(name)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			conds = append(conds, accs.Join(op))
		}
		conds = append(conds, accs.Leaf(t.Condition))
	}
	return conds, nil
}

func lookupTemplate(name string) (accs.Template, error) {
	for _, t := range accs.Catalog() {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return accs.Template{}, fmt.Errorf("unknown condition: %q", name)
}

var (
	newAttestation = sp.Attestation{DataLocation: sp.OnChain}
	attestOpts     sp.CreateAttestationOptions
	dataPairs      []string
	dataJSON       string
	encoding       = string(sp.RecipientString)
	fees           ether
	attester       address
	attestSig      hexBytes
	rawData        hexBytes
	attestExtra    hexBytes
	createConds    conditionFlags
)

var createAttestationCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
create --schema SCHEMAID [--data KEY=VALUE...|--json JSON] [flags]`[1:],
		Short: "Create an attestation",
		Long: `
Create an attestation of the schema SCHEMAID.

The payload is given either as KEY=VALUE pairs, one --data flag per schema
field, or as a JSON object with --json. Values are converted to the types of
the schema's fields.

With --gated the payload is encrypted under the access control conditions
given by --condition or --conditions-file. Without either the payload is
encrypted under the default condition, which any account satisfies.

The indexing value defaults to a random UUID.
`[1:],
		Args:    cobra.ExactArgs(0),
		PreRunE: needClients,
		RunE:    createAttestation,
	}
	attestCmd.AddCommand(cmd)
	attestCmplCmd.Sub["create"] = createAttestationCmplCmd

	flags := cmd.Flags()
	flags.StringVarP(&newAttestation.SchemaID, "schema", "s", "", "Schema ID")
	flags.StringArrayVarP(&dataPairs, "data", "d", nil,
		"Payload field KEY=VALUE, may be repeated")
	flags.StringVar(&dataJSON, "json", "", "Payload as a JSON object")
	flags.StringArrayVarP(&newAttestation.Recipients, "recipient", "r", nil,
		"Recipient, may be repeated")
	flags.StringVar(&encoding, "recipient-encoding", encoding,
		"Encoding of recipients (string, address)")
	flags.StringVar(&newAttestation.IndexingValue, "indexing-value", "",
		"Indexing value (default random UUID)")
	flags.StringVar(&newAttestation.LinkedAttestationID, "linked", "",
		"ID of a linked attestation")
	flags.Uint64Var(&newAttestation.ValidUntil, "valid-until", 0,
		"Unix time after which the attestation is invalid, 0 for never")
	flags.Var(&newAttestation.DataLocation, "location",
		"Data location (onchain, arweave, ipfs, custom)")
	flags.StringVar(&newAttestation.DataID, "data-id", "",
		"Off-chain storage ID of the payload")
	flags.Var(&attester, "attester", "Attester address (default account)")
	flags.Var(&fees, "fees", "Resolver fees in ETH sent with the attestation")
	flags.Var(&attestSig, "delegation-signature",
		"Hex signature of the attester authorizing this attestation")
	flags.Var(&rawData, "raw-data",
		"Hex encoded payload sent as is with --delegation-signature")
	flags.Var(&attestExtra, "extra-data", "Hex data passed to the schema hook")
	flags.BoolVar(&attestOpts.Gated, "gated", false,
		"Encrypt the payload under access control conditions")
	createConds.add(cmd)

	generateCmplFlags(cmd, createAttestationCmplCmd.Flags)
	return cmd
}()

var createAttestationCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, conditionCmplFlags, complete.Flags{
		"--location":           PredictLocations,
		"--recipient-encoding": PredictRecipientEncodings,
	}),
}

// parseData builds the payload from KEY=VALUE pairs or a JSON object.
func parseData(pairs []string, jsonObj string) (map[string]interface{}, error) {
	if jsonObj != "" {
		if len(pairs) > 0 {
			return nil, fmt.Errorf("--json may not be used with --data")
		}
		d := json.NewDecoder(bytes.NewReader([]byte(jsonObj)))
		d.UseNumber()
		var data map[string]interface{}
		if err := d.Decode(&data); err != nil {
			return nil, fmt.Errorf("--json: %w", err)
		}
		return data, nil
	}
	data := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		i := strings.IndexByte(pair, '=')
		if i < 1 {
			return nil, fmt.Errorf("--data: expected KEY=VALUE: %q", pair)
		}
		key := pair[:i]
		if _, ok := data[key]; ok {
			return nil, fmt.Errorf("--data: duplicate key: %q", key)
		}
		data[key] = pair[i+1:]
	}
	return data, nil
}

func createAttestation(cmd *cobra.Command, _ []string) error {
	if newAttestation.SchemaID == "" {
		return sp.ErrSchemaIDRequired
	}
	var err error
	if newAttestation.Data, err = parseData(dataPairs, dataJSON); err != nil {
		return err
	}
	if newAttestation.IndexingValue == "" {
		newAttestation.IndexingValue = uuid.New().String()
	}
	newAttestation.Attester = common.Address(attester)
	newAttestation.RawData = rawData
	switch enc := sp.RecipientEncoding(encoding); enc {
	case sp.RecipientString, sp.RecipientAddress:
		attestOpts.RecipientEncoding = enc
	default:
		return fmt.Errorf("invalid recipient encoding: %q", encoding)
	}
	attestOpts.ResolverFeesETH = fees.Int
	attestOpts.DelegationSignature = attestSig
	attestOpts.ExtraData = attestExtra
	attestOpts.OnTxHash = printTxHash
	if attestOpts.AccessControlConditions, err =
		createConds.Conditions(); err != nil {
		return err
	}
	if !attestOpts.Gated && len(attestOpts.AccessControlConditions) > 0 {
		return fmt.Errorf("conditions require --gated")
	}

	vrbLog.Println("Creating attestation...")
	res, err := SP.CreateAttestation(cmd.Context(), newAttestation, attestOpts)
	if err != nil {
		return err
	}
	return printJSON("Attestation Created:", res)
}

var (
	getAttestationOpts sp.GetAttestationOptions
	getConds           conditionFlags
)

var getAttestationCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "get ATTESTATIONID [flags]",
		Aliases:               []string{"resolve"},
		Short:                 "Resolve an attestation",
		Long: `
Resolve the attestation ATTESTATIONID.

A gated attestation is decrypted only if the account satisfies its access
control conditions, which must be given exactly as they were at creation.
`[1:],
		Args:    cobra.ExactArgs(1),
		PreRunE: needClients,
		RunE:    getAttestation,
	}
	attestCmd.AddCommand(cmd)
	attestCmplCmd.Sub["get"] = getAttestationCmplCmd

	cmd.Flags().BoolVar(&getAttestationOpts.Gated, "gated", false,
		"Decrypt the payload")
	getConds.add(cmd)

	generateCmplFlags(cmd, getAttestationCmplCmd.Flags)
	return cmd
}()

var getAttestationCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, conditionCmplFlags),
}

func getAttestation(cmd *cobra.Command, args []string) error {
	var err error
	if getAttestationOpts.AccessControlConditions, err =
		getConds.Conditions(); err != nil {
		return err
	}
	if getAttestationOpts.Gated {
		vrbLog.Println("Verifying gated attestation...")
	}
	a, err := SP.GetAttestation(cmd.Context(), args[0], getAttestationOpts)
	if err != nil {
		return err
	}
	return printJSON("Attestation Resolved:", a)
}
