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
	"io"
	"os"

	"github.com/fatih/color"
)

type printer struct {
	*color.Color
	w io.Writer
}

func (p printer) Print(a ...interface{})   { p.Fprint(p.w, a...) }
func (p printer) Println(a ...interface{}) { p.Fprintln(p.w, a...) }
func (p printer) Printf(format string, a ...interface{}) {
	p.Fprintf(p.w, format, a...)
}

var (
	vrbLog = printer{color.New(color.FgBlue), os.Stderr}
	errLog = printer{color.New(color.FgRed), os.Stderr}
	okLog  = printer{color.New(color.FgGreen), color.Output}
	askLog = printer{color.New(color.FgCyan), color.Output}
)

// printJSON prints v as indented JSON after title.
func printJSON(title string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if title != "" {
		okLog.Println(title)
	}
	okLog.Println(string(data))
	return nil
}

// PrintError prints err the way every command reports failure.
func PrintError(err error) {
	errLog.Printf("error: %v\n", err)
}
