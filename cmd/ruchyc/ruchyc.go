// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command ruchyc lowers trees of the source language encoded in JSON to Rust.
//
// Usage:
//
//	ruchyc [flags] file.json...
//
// The tree is read from the standard input when no file is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/core"
	"github.com/paiml/ruchy-sub001/build/crates"
	"github.com/paiml/ruchy-sub001/build/format"
	"github.com/paiml/ruchy-sub001/build/lower"
	"github.com/paiml/ruchy-sub001/build/optimizer"
	"github.com/paiml/ruchy-sub001/build/target"
	"github.com/paiml/ruchy-sub001/tools/rflag"
	"github.com/pkg/errors"
	"github.com/xyproto/env/v2"
	"go.uber.org/multierr"
)

const (
	modeProgram = "program"
	modeExpr    = "expr"
	modeCore    = "core"
	modeFmt     = "fmt"
)

type options struct {
	mode    string
	modules []string
	inline  bool
	out     string
	crates  bool
	verbose bool
	indent  int
	tabs    bool
	files   []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("ruchyc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &options{}
	fs.StringVar(&opts.mode, "mode", modeProgram, "output: program, expr, core or fmt")
	modules := rflag.StringListVar(fs, "modules", "comma separated names dispatched as modules (default $RUCHY_MODULES)")
	fs.BoolVar(&opts.inline, "inline", env.Bool("RUCHY_INLINE"), "inline small functions before lowering")
	fs.StringVar(&opts.out, "o", "", "output file (default standard output)")
	fs.BoolVar(&opts.crates, "crates", false, "print the crates required by the output")
	fs.BoolVar(&opts.verbose, "v", false, "log lowering decisions")
	fs.IntVar(&opts.indent, "indent", env.Int("RUCHY_INDENT", target.DefaultIndent), "indentation width")
	fs.BoolVar(&opts.tabs, "tabs", env.Bool("RUCHY_TABS"), "indent with tabs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.modules = *modules
	if len(opts.modules) == 0 {
		opts.modules = rflag.Split(env.Str("RUCHY_MODULES"))
	}
	switch opts.mode {
	case modeProgram, modeExpr, modeCore, modeFmt:
	default:
		return nil, errors.Errorf("unknown mode %q", opts.mode)
	}
	if opts.indent <= 0 {
		return nil, errors.Errorf("invalid indentation width %d", opts.indent)
	}
	opts.files = fs.Args()
	return opts, nil
}

// tabify replaces the leading indentation of lines with tabs.
func tabify(text string, width int) string {
	unit := strings.Repeat(" ", width)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		n := 0
		for strings.HasPrefix(line, unit) {
			line = line[len(unit):]
			n++
		}
		lines[i] = strings.Repeat("\t", n) + line
	}
	return strings.Join(lines, "\n")
}

type compiler struct {
	opts     *options
	lowerer  *lower.Lowerer
	manifest *crates.Manifest
}

func (c *compiler) compile(e *ast.Expr) (string, error) {
	switch c.opts.mode {
	case modeFmt:
		return format.Format(e, format.Config{IndentWidth: c.opts.indent, UseTabs: c.opts.tabs})
	case modeCore:
		t, err := core.Normalize(e)
		if err != nil {
			return "", err
		}
		if c.opts.inline {
			t = optimizer.Optimize(t)
		}
		return t.String() + "\n", nil
	}
	var s target.Stream
	var err error
	if c.opts.mode == modeExpr {
		s, err = c.lowerer.Transpile(e)
	} else {
		s, err = c.lowerer.TranspileToProgram(e)
	}
	if err != nil {
		return "", err
	}
	if err := c.manifest.RequireAll(crates.Detect(s)); err != nil {
		return "", err
	}
	text := target.EmitIndent(s, c.opts.indent)
	if c.opts.tabs {
		text = tabify(text, c.opts.indent)
	}
	return text, nil
}

func readTree(name string, stdin io.Reader) (*ast.Expr, error) {
	if name == "-" {
		return ast.Decode(stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Errorf("cannot open %s: %v", name, err)
	}
	defer f.Close()
	e, err := ast.Decode(f)
	if err != nil {
		return nil, errors.Errorf("%s: %v", name, err)
	}
	return e, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	c := &compiler{
		opts: opts,
		lowerer: lower.New(lower.Config{
			Modules: opts.modules,
			Inline:  opts.inline,
			Logger:  logger,
		}),
		manifest: crates.NewManifest(),
	}
	files := opts.files
	if len(files) == 0 {
		files = []string{"-"}
	}
	var out strings.Builder
	var errs error
	for _, name := range files {
		e, err := readTree(name, stdin)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		text, err := c.compile(e)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, name))
			continue
		}
		logger.Debug("compiled", "file", name, "mode", opts.mode)
		out.WriteString(text)
	}
	if errs == nil {
		if opts.crates && len(c.manifest.Names()) > 0 {
			out.WriteString("\n")
			out.WriteString(c.manifest.Render())
		}
		errs = writeOutput(opts.out, stdout, out.String())
	}
	if errs != nil {
		verb := "%v\n"
		if opts.verbose {
			verb = "%+v\n"
		}
		for _, err := range multierr.Errors(errs) {
			fmt.Fprintf(stderr, verb, err)
		}
		return 1
	}
	return 0
}

func writeOutput(path string, stdout io.Writer, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errors.Errorf("cannot write %s: %v", path, err)
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
