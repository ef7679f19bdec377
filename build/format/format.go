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

// Package format prints trees in the canonical layout of the source language.
//
// Formatting is stable: formatting a tree read back from the output of the
// formatter returns the same text.
package format

import (
	"strings"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/pkg/errors"
)

// DefaultIndentWidth is the number of spaces of an indentation level.
const DefaultIndentWidth = 4

type (
	// Config of the formatter.
	Config struct {
		// IndentWidth is the number of spaces of an indentation level.
		// Ignored when UseTabs is set. Defaults to DefaultIndentWidth.
		IndentWidth int
		// UseTabs indents with tabs.
		UseTabs bool
	}

	printer struct {
		w     *strings.Builder
		unit  string
		depth int
		errs  fmterr.Errors
	}
)

func (cfg Config) indentUnit() string {
	if cfg.UseTabs {
		return "\t"
	}
	width := cfg.IndentWidth
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return strings.Repeat(" ", width)
}

// Format returns the source text of a tree. A top-level block is printed
// as a sequence of statements.
func Format(e *ast.Expr, cfg Config) (string, error) {
	if e == nil {
		return "", fmterr.At(fmterr.MalformedInput, ast.Span{}, errors.Errorf("no expression to format"))
	}
	p := &printer{w: &strings.Builder{}, unit: cfg.indentUnit()}
	if blk, ok := e.Kind.(*ast.Block); ok && len(e.Leading) == 0 && e.Trailing == nil {
		p.stmts(blk.Exprs, true)
	} else {
		p.stmt(e)
	}
	if err := p.errs.ToError(); err != nil {
		return "", err
	}
	lines := strings.Split(p.w.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

func (p *printer) write(ss ...string) {
	for _, s := range ss {
		p.w.WriteString(s)
	}
}

func (p *printer) newline() {
	p.w.WriteByte('\n')
	p.w.WriteString(strings.Repeat(p.unit, p.depth))
}

func (p *printer) unsupported(e *ast.Expr, what string) {
	p.errs.Append(fmterr.Errorf(fmterr.Unsupported, e, "cannot format %s", what))
	p.write("?")
}

func (p *printer) comment(c ast.Comment) {
	if c.Block {
		p.write("/* ", strings.TrimSpace(c.Text), " */")
		return
	}
	p.write("// ", strings.TrimSpace(c.Text))
}

// stmt prints a statement with its comments. Leading comments precede the
// statement on their own lines. The trailing comment stays on the line
// where the statement ends.
func (p *printer) stmt(e *ast.Expr) {
	for _, c := range e.Leading {
		p.comment(c)
		p.newline()
	}
	p.expr(e)
	if e.Trailing != nil {
		p.write(" ")
		p.comment(*e.Trailing)
	}
}

// isDecl returns true for expressions separated by blank lines at the top level.
func isDecl(e *ast.Expr) bool {
	switch e.Kind.(type) {
	case *ast.Function, *ast.Struct, *ast.TupleStruct, *ast.Enum, *ast.Trait, *ast.Impl,
		*ast.Extension, *ast.Class, *ast.Actor, *ast.Effect, *ast.Module:
		return true
	}
	return false
}

// sequence expands lets whose body is a block into a let statement
// followed by the statements of the body.
func sequence(exprs []*ast.Expr) []*ast.Expr {
	var out []*ast.Expr
	for _, x := range exprs {
		out = appendSequence(out, x)
	}
	return out
}

func appendSequence(out []*ast.Expr, x *ast.Expr) []*ast.Expr {
	var body *ast.Expr
	stmt := *x
	switch k := x.Kind.(type) {
	case *ast.Let:
		if !isBlock(k.Body) {
			return append(out, x)
		}
		let := *k
		let.Body = nil
		stmt.Kind = &let
		body = k.Body
	case *ast.LetPattern:
		if !isBlock(k.Body) {
			return append(out, x)
		}
		let := *k
		let.Body = nil
		stmt.Kind = &let
		body = k.Body
	default:
		return append(out, x)
	}
	out = append(out, &stmt)
	for _, b := range body.Kind.(*ast.Block).Exprs {
		out = appendSequence(out, b)
	}
	return out
}

func isBlock(e *ast.Expr) bool {
	if e == nil {
		return false
	}
	_, ok := e.Kind.(*ast.Block)
	return ok
}

func (p *printer) stmts(exprs []*ast.Expr, top bool) {
	exprs = sequence(exprs)
	for i, x := range exprs {
		if i > 0 {
			p.newline()
			if top && (isDecl(x) || isDecl(exprs[i-1])) {
				p.newline()
			}
		}
		p.stmt(x)
	}
}

// block prints statements between braces on multiple lines.
func (p *printer) block(e *ast.Expr) {
	var exprs []*ast.Expr
	if blk, ok := e.Kind.(*ast.Block); ok {
		exprs = blk.Exprs
	} else if e != nil {
		exprs = []*ast.Expr{e}
	}
	if len(exprs) == 0 || (len(exprs) == 1 && isUnit(exprs[0])) {
		p.write("{}")
		return
	}
	p.write("{")
	p.depth++
	p.newline()
	p.stmts(exprs, false)
	p.depth--
	p.newline()
	p.write("}")
}

// members prints the members of a declaration on multiple lines.
func (p *printer) members(n int, member func(int)) {
	if n == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.depth++
	for i := 0; i < n; i++ {
		p.newline()
		member(i)
	}
	p.depth--
	p.newline()
	p.write("}")
}

func isUnit(e *ast.Expr) bool {
	lit, ok := e.Kind.(*ast.Literal)
	return ok && lit.Lit == ast.UnitLit && len(e.Leading) == 0 && e.Trailing == nil
}
