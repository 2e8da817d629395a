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
	"strings"

	"github.com/DaevMithran/SignxLit/sp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var schemaCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create and resolve schemas",
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["schema"] = schemaCmplCmd
	rootCmplCmd.Sub["help"].Sub["schema"] = complete.Command{
		Sub: complete.Commands{"create": complete.Command{},
			"get": complete.Command{}}}
	return cmd
}()

var schemaCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var (
	newSchema = sp.Schema{DataLocation: sp.OnChain}
	revocable = true
	hook      address
	schemaSig hexBytes
	fields    []string
)

var createSchemaCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
create NAME --field FIELD[:TYPE]... [flags]`[1:],
		Short: "Register a new schema",
		Long: `
Register a schema named NAME.

Each --field is a field name optionally followed by a colon and its Solidity
type, for example --field age:uint256. The type defaults to string. Fields
are encoded in the order they are given.

If --location is not onchain, no fields are stored and --data-id names the
schema document in off-chain storage instead.
`[1:],
		Args:    cobra.ExactArgs(1),
		PreRunE: needClients,
		RunE:    createSchema,
	}
	schemaCmd.AddCommand(cmd)
	schemaCmplCmd.Sub["create"] = createSchemaCmplCmd

	flags := cmd.Flags()
	flags.StringArrayVarP(&fields, "field", "f", nil, "Schema field NAME[:TYPE]")
	flags.StringVar(&newSchema.Description, "description", "", "Description")
	flags.BoolVar(&revocable, "revocable", true,
		"Allow attestations to be revoked")
	flags.Uint64Var(&newSchema.MaxValidFor, "max-valid-for", 0,
		"Maximum validity of attestations in seconds, 0 for no limit")
	flags.Var(&hook, "hook", "Hook contract address")
	flags.Var(&newSchema.DataLocation, "location",
		"Data location (onchain, arweave, ipfs, custom)")
	flags.StringVar(&newSchema.DataID, "data-id", "",
		"Off-chain storage ID of the schema document")
	flags.Var(&schemaSig, "delegation-signature",
		"Hex signature of the registrant authorizing this registration")

	generateCmplFlags(cmd, createSchemaCmplCmd.Flags)
	return cmd
}()

var createSchemaCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, complete.Flags{
		"--location": PredictLocations,
	}),
}

// parseFields parses comma separated NAME[:TYPE] fields.
func parseFields(lists []string) ([]sp.SchemaItem, error) {
	items := make([]sp.SchemaItem, 0, len(lists))
	for _, list := range lists {
		for _, f := range strings.Split(list, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			item := sp.SchemaItem{Name: f, Type: "string"}
			if i := strings.IndexByte(f, ':'); i >= 0 {
				item.Name, item.Type = f[:i], f[i+1:]
			}
			if _, err := sp.ParseType(item.Type); err != nil {
				return nil, fmt.Errorf("field %q: %w", item.Name, err)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func createSchema(cmd *cobra.Command, args []string) error {
	newSchema.Name = args[0]
	newSchema.Revocable = &revocable
	newSchema.Hook = common.Address(hook)
	var err error
	if newSchema.Data, err = parseFields(fields); err != nil {
		return err
	}
	if newSchema.DataLocation == sp.OnChain && len(newSchema.Data) == 0 {
		return fmt.Errorf("at least one --field is required")
	}
	if newSchema.DataLocation != sp.OnChain && newSchema.DataID == "" {
		return fmt.Errorf("--data-id is required for %v schemas",
			newSchema.DataLocation)
	}

	vrbLog.Printf("Creating schema: %v\n", newSchema.Name)
	res, err := SP.CreateSchema(cmd.Context(), newSchema, sp.CreateSchemaOptions{
		DelegationSignature: schemaSig,
		OnTxHash:            printTxHash,
	})
	if err != nil {
		return err
	}
	return printJSON("Schema Created:", res)
}

func printTxHash(hash common.Hash) {
	vrbLog.Println("Transaction:", hash)
	if len(Chain.Explorers) > 0 {
		vrbLog.Printf("%v/tx/%v\n", Chain.Explorers[0], hash)
	}
}

var getSchemaCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "get SCHEMAID",
		Aliases:               []string{"resolve"},
		Short:                 "Resolve a schema",
		Args:                  cobra.ExactArgs(1),
		PreRunE:               needClients,
		RunE:                  getSchema,
	}
	schemaCmd.AddCommand(cmd)
	schemaCmplCmd.Sub["get"] = complete.Command{Flags: mergeFlags(apiCmplFlags)}
	return cmd
}()

func getSchema(cmd *cobra.Command, args []string) error {
	vrbLog.Printf("Resolving schema with ID: %v\n", args[0])
	schema, err := SP.GetSchema(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON("", schema)
}
