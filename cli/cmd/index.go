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

	"github.com/DaevMithran/SignxLit/index"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var indexCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Query the Sign Protocol indexer",
		Long: `
Query schemas and attestations from the indexer selected by --indexer.

IDs are either full indexer IDs, such as onchain_evm_80002_0x1a4, or bare
hex IDs.
`[1:],
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd, args); err != nil {
				return err
			}
			initIndex()
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["index"] = indexCmplCmd
	rootCmplCmd.Sub["help"].Sub["index"] = complete.Command{
		Sub: complete.Commands{
			"schemas": complete.Command{}, "schema": complete.Command{},
			"attestations": complete.Command{}, "attestation": complete.Command{},
		}}
	return cmd
}()

var indexCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var schemaListQuery = index.SchemaListQuery{Page: new(int)}

var indexSchemasCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "schemas [flags]",
		Short:                 "List schemas",
		Args:                  cobra.ExactArgs(0),
		RunE:                  indexSchemas,
	}
	indexCmd.AddCommand(cmd)
	indexCmplCmd.Sub["schemas"] = indexSchemasCmplCmd

	flags := cmd.Flags()
	flags.StringVar(&schemaListQuery.ID, "id", "", "Schema ID")
	flags.StringVar(&schemaListQuery.Registrant, "registrant", "",
		"Registrant address")
	flags.StringVar(&schemaListQuery.Mode, "sp-mode", "", "onchain or offchain")
	flags.IntVar(schemaListQuery.Page, "page", 1, "Page number")
	flags.IntVar(&schemaListQuery.Size, "size", index.DefaultSchemaPageSize,
		"Page size")

	generateCmplFlags(cmd, indexSchemasCmplCmd.Flags)
	return cmd
}()

var indexSchemasCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}

func indexSchemas(cmd *cobra.Command, _ []string) error {
	list, err := Index.QuerySchemaList(cmd.Context(), schemaListQuery)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("invalid schema ID: %q", schemaListQuery.ID)
	}
	return printJSON("", list)
}

var indexSchemaCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "schema ID",
		Short:                 "Get a schema",
		Args:                  cobra.ExactArgs(1),
		RunE:                  indexSchema,
	}
	indexCmd.AddCommand(cmd)
	indexCmplCmd.Sub["schema"] = complete.Command{Flags: mergeFlags(apiCmplFlags)}
	return cmd
}()

func indexSchema(cmd *cobra.Command, args []string) error {
	info, err := Index.QuerySchema(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("schema not found: %q", args[0])
	}
	return printJSON("", info)
}

var attestationListQuery = index.AttestationListQuery{Page: new(int)}

var indexAttestationsCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "attestations [flags]",
		Short:                 "List attestations",
		Args:                  cobra.ExactArgs(0),
		RunE:                  indexAttestations,
	}
	indexCmd.AddCommand(cmd)
	indexCmplCmd.Sub["attestations"] = indexAttestationsCmplCmd

	flags := cmd.Flags()
	flags.StringVar(&attestationListQuery.ID, "id", "", "Attestation ID")
	flags.StringVar(&attestationListQuery.SchemaID, "schema", "", "Schema ID")
	flags.StringVar(&attestationListQuery.Attester, "attester", "",
		"Attester address")
	flags.StringVar(&attestationListQuery.IndexingValue, "indexing-value", "",
		"Indexing value")
	flags.StringVar(&attestationListQuery.Mode, "sp-mode", "",
		"onchain or offchain")
	flags.IntVar(attestationListQuery.Page, "page", 1, "Page number")

	generateCmplFlags(cmd, indexAttestationsCmplCmd.Flags)
	return cmd
}()

var indexAttestationsCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}

func indexAttestations(cmd *cobra.Command, _ []string) error {
	list, err := Index.QueryAttestationList(cmd.Context(), attestationListQuery)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("invalid attestation ID: %q", attestationListQuery.ID)
	}
	return printJSON("", list)
}

var indexAttestationCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "attestation ID",
		Short:                 "Get an attestation",
		Args:                  cobra.ExactArgs(1),
		RunE:                  indexAttestation,
	}
	indexCmd.AddCommand(cmd)
	indexCmplCmd.Sub["attestation"] = complete.Command{
		Flags: mergeFlags(apiCmplFlags)}
	return cmd
}()

func indexAttestation(cmd *cobra.Command, args []string) error {
	info, err := Index.QueryAttestation(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("attestation not found: %q", args[0])
	}
	return printJSON("", info)
}
