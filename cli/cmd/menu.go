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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/DaevMithran/SignxLit/client"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// prompter reads answers line by line. Reads return ctx.Err() once ctx is
// done, even while waiting for input.
type prompter struct {
	ctx   context.Context
	lines <-chan string
	out   io.Writer
}

func newPrompter(ctx context.Context, in io.Reader, out io.Writer) *prompter {
	lines := make(chan string)
	go func() {
		defer close(lines)
		s := bufio.NewScanner(in)
		for s.Scan() {
			select {
			case lines <- s.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &prompter{ctx: ctx, lines: lines, out: out}
}

func (p *prompter) readLine() (string, error) {
	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// ask returns the answer to question, or def if the answer is blank.
func (p *prompter) ask(question, def string) (string, error) {
	if def != "" {
		askLog.Fprintf(p.out, "%v (%v) ", question, def)
	} else {
		askLog.Fprintf(p.out, "%v ", question)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// askRequired repeats question until the answer is not blank.
func (p *prompter) askRequired(question string) (string, error) {
	for {
		answer, err := p.ask(question, "")
		if err != nil || answer != "" {
			return answer, err
		}
		errLog.Fprintln(p.out, "A value is required.")
	}
}

// choose lists choices and returns the index of the one picked.
func (p *prompter) choose(question string, choices []string) (int, error) {
	askLog.Fprintln(p.out, question)
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %v) %v\n", i+1, c)
	}
	for {
		answer, err := p.ask(">", "")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
		for i, c := range choices {
			if strings.EqualFold(answer, c) {
				return i, nil
			}
		}
		errLog.Fprintf(p.out, "Enter a number from 1 to %v.\n", len(choices))
	}
}

func (p *prompter) confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		answer, err := p.ask(fmt.Sprintf("%v [%v]", question, hint), "")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (p *prompter) ChooseCondition(available []accs.Template) (int, error) {
	names := make([]string, len(available))
	for i, t := range available {
		names[i] = t.Name
	}
	return p.choose("Select an access control condition:", names)
}

func (p *prompter) AddAnother() (bool, error) {
	return p.confirm("Do you want to add another condition?", false)
}

func (p *prompter) ChooseOperator() (accs.Operator, error) {
	i, err := p.choose("Select a logical operator to combine conditions:",
		[]string{"AND", "OR"})
	if err != nil {
		return "", err
	}
	return []accs.Operator{accs.And, accs.Or}[i], nil
}

// menu is the interactive session. It remembers the conditions of the
// gated attestations it creates so that they can be resolved later.
type menu struct {
	*prompter
	sp    client.SignProtocol
	conds map[string]accs.Conditions
}

var menuActions = []string{
	"Create Schema",
	"Resolve Schema",
	"Create Gated Attestation",
	"Resolve Gated Attestation",
	"Revoke Attestation",
	"Exit",
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	okLog.Print(banner)
	vrbLog.Println("Creating signing client")
	if err := initClients(ctx); err != nil {
		return err
	}
	okLog.Println("Connected")
	m := menu{
		prompter: newPrompter(ctx, os.Stdin, color.Output),
		sp:       SP,
		conds:    make(map[string]accs.Conditions),
	}
	return m.run()
}

const banner = `
 ____  _                      _     _ _
/ ___|(_) __ _ _ __   __  __ | |   (_) |_
\___ \| |/ _' | '_ \  \ \/ / | |   | | __|
 ___) | | (_| | | | |  >  <  | |___| | |_
|____/|_|\__, |_| |_| /_/\_\ |_____|_|\__|
         |___/
`

// run shows the menu until Exit is chosen or an action fails.
func (m *menu) run() error {
	actions := []func() error{
		m.createSchema,
		m.resolveSchema,
		m.createGatedAttestation,
		m.resolveGatedAttestation,
		m.revokeAttestation,
	}
	for {
		i, err := m.choose("Select an action:", menuActions)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if i == len(actions) {
			vrbLog.Println("Exiting...")
			return nil
		}
		if err := actions[i](); err != nil {
			return err
		}
	}
}

func (m *menu) createSchema() error {
	name, err := m.ask("Enter schema name:", "TestBioDM1")
	if err != nil {
		return err
	}
	keys, err := m.askRequired("Enter schema keys (comma-separated):")
	if err != nil {
		return err
	}
	data, err := parseFields([]string{keys})
	if err != nil {
		return err
	}
	vrbLog.Printf("Creating schema: %v\n", name)
	res, err := m.sp.CreateSchema(m.ctx, sp.Schema{Name: name, Data: data},
		sp.CreateSchemaOptions{OnTxHash: printTxHash})
	if err != nil {
		return err
	}
	return printJSON("Schema Created:", res)
}

func (m *menu) resolveSchema() error {
	id, err := m.askRequired("Enter schema ID to resolve:")
	if err != nil {
		return err
	}
	vrbLog.Printf("Resolving schema with ID: %v\n", id)
	schema, err := m.sp.GetSchema(m.ctx, id)
	if err != nil {
		return err
	}
	return printJSON("", schema)
}

func (m *menu) createGatedAttestation() error {
	schemaID, err := m.askRequired("Enter schema ID to create attestation for:")
	if err != nil {
		return err
	}
	vrbLog.Printf("Resolving schema with ID: %v\n", schemaID)
	schema, err := m.sp.GetSchema(m.ctx, schemaID)
	if err != nil {
		return err
	}
	if err := printJSON("", schema.Data); err != nil {
		return err
	}

	data := make(map[string]interface{}, len(schema.Data))
	for _, item := range schema.Data {
		if data[item.Name], err = m.ask(
			fmt.Sprintf("Enter value for %v:", item.Name), ""); err != nil {
			return err
		}
	}

	conds, err := accs.Build(m, accs.Catalog())
	if err != nil {
		return err
	}
	if err := printJSON("Selected Access Conditions:", conds); err != nil {
		return err
	}
	vrbLog.Println("Creating attestation...")
	res, err := m.sp.CreateAttestation(m.ctx, sp.Attestation{
		SchemaID:      schemaID,
		Data:          data,
		IndexingValue: uuid.New().String(),
	}, sp.CreateAttestationOptions{
		Gated:                   true,
		AccessControlConditions: conds,
		OnTxHash:                printTxHash,
	})
	if err != nil {
		return err
	}
	m.conds[res.AttestationID] = conds
	return printJSON("Attestation Created:", res)
}

func (m *menu) resolveGatedAttestation() error {
	id, err := m.askRequired("Enter attestation ID to resolve:")
	if err != nil {
		return err
	}
	vrbLog.Println("Verifying gated attestation...")
	a, err := m.sp.GetAttestation(m.ctx, id, sp.GetAttestationOptions{
		Gated:                   true,
		AccessControlConditions: m.conds[id],
	})
	if err != nil {
		return err
	}
	return printJSON("Attestation Resolved:", a)
}

func (m *menu) revokeAttestation() error {
	id, err := m.askRequired("Enter attestation ID to revoke:")
	if err != nil {
		return err
	}
	reason, err := m.ask("Enter reason for revocation:", DefaultRevokeReason)
	if err != nil {
		return err
	}
	vrbLog.Printf("Revoking attestation: %v\n", id)
	res, err := m.sp.RevokeAttestation(m.ctx, id, sp.RevokeOptions{
		Reason:   reason,
		OnTxHash: printTxHash,
	})
	if err != nil {
		return err
	}
	return printJSON("Attestation Revoked:", res)
}
