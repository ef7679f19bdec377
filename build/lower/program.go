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

package lower

import (
	"text/template"

	"github.com/paiml/ruchy-sub001/base/tmpl"
	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

var preludeTmpl = template.Must(template.New("prelude").Parse(`{{range .}}use {{.}};
{{end}}`))

// preludes are the imports of a program and the words requiring them.
var preludes = []struct {
	path  string
	words []string
}{
	{path: "std::collections::HashMap", words: []string{"HashMap"}},
	{path: "std::collections::HashSet", words: []string{"HashSet"}},
	{path: "polars::prelude::*", words: []string{"DataFrame", "Series", "CsvReadOptions", "SortMultipleOptions", "JoinArgs", "lazy"}},
}

// prelude returns the imports required by the items of a program.
func prelude(body target.Stream) (target.Stream, error) {
	var uses []string
	for _, p := range preludes {
		for _, w := range p.words {
			if body.Contains(w) {
				uses = append(uses, p.path)
				break
			}
		}
	}
	if len(uses) == 0 {
		return nil, nil
	}
	src, err := tmpl.Exec(preludeTmpl, uses)
	if err != nil {
		return nil, err
	}
	return target.Lex(src)
}

// isMainFunc returns true if an expression declares the entry point.
func isMainFunc(e *ast.Expr) bool {
	fn, ok := e.Kind.(*ast.Function)
	return ok && fn.Ident == "main"
}

func isTestFunc(e *ast.Expr) bool {
	_, ok := e.Kind.(*ast.Function)
	return ok && e.HasAttribute("test")
}

// entryStmts returns the statements of the synthesized entry point. The
// value of a trailing expression is printed.
func entryStmts(stmts []*ast.Expr) []*ast.Expr {
	if len(stmts) == 0 {
		return nil
	}
	last := stmts[len(stmts)-1]
	if analysis.IsVoidExpression(last) || isBlockLike(last) {
		return stmts
	}
	switch last.Kind.(type) {
	case *ast.Let, *ast.LetPattern, *ast.Assign, *ast.CompoundAssign, *ast.Call, *ast.MethodCall,
		*ast.Macro, *ast.MacroInvocation:
		return stmts
	}
	result := ast.At(&ast.Let{Ident: "result", Value: last}, last.Span)
	show := ast.At(&ast.MacroInvocation{Ident: "println", Args: []*ast.Expr{
		ast.New(&ast.Literal{Lit: ast.StringLit, Str: "{:?}"}),
		ast.New(&ast.Identifier{Ident: "result"}),
	}}, last.Span)
	out := append([]*ast.Expr{}, stmts[:len(stmts)-1]...)
	return append(out, result, show)
}

// TranspileToProgram lowers an expression to a runnable program.
//
// A top-level function named main is the entry point of the program. Other
// top-level statements are wrapped in a synthesized main function. When both
// exist, the declared main is renamed and called after the statements.
func (l *Lowerer) TranspileToProgram(e *ast.Expr) (target.Stream, error) {
	e, err := l.prepare(e)
	if err != nil {
		return nil, err
	}
	var exprs []*ast.Expr
	if blk, ok := e.Kind.(*ast.Block); ok {
		exprs = flatten(blk.Exprs)
	} else {
		exprs = []*ast.Expr{e}
	}
	l.declareAll(exprs)
	var items, tests, stmts []*ast.Expr
	var entry *ast.Expr
	for _, x := range exprs {
		switch {
		case isMainFunc(x):
			entry = x
		case isTestFunc(x):
			tests = append(tests, x)
		case isItem(x):
			items = append(items, x)
		default:
			stmts = append(stmts, x)
		}
	}
	body, err := l.lowerItems(items)
	if err != nil {
		return nil, err
	}
	main, err := l.lowerEntry(entry, stmts)
	if err != nil {
		return nil, err
	}
	body = joinItems(body, main)
	if len(tests) > 0 {
		l.depth++
		fns, err := l.lowerItems(tests)
		l.depth--
		if err != nil {
			return nil, err
		}
		inner := target.Concat(target.Quote("use super::*;"), target.Stream{target.NL}, fns)
		mod := target.Concat(target.Quote("#[cfg(test)]"), target.Stream{target.NL}, target.Quote("mod tests $0", target.Block(inner)))
		body = joinItems(body, mod)
	}
	uses, err := prelude(body)
	if err != nil {
		return nil, err
	}
	if len(uses) == 0 {
		return body, nil
	}
	return joinItems(uses, body), nil
}

func joinItems(a, b target.Stream) target.Stream {
	switch {
	case len(a) == 0:
		return b
	case len(b) == 0:
		return a
	}
	return target.Concat(a, target.Stream{target.NL, target.NL}, b)
}

// lowerEntry lowers the entry point of a program.
func (l *Lowerer) lowerEntry(entry *ast.Expr, stmts []*ast.Expr) (target.Stream, error) {
	if len(stmts) == 0 {
		if entry == nil {
			return target.Quote("fn main() {}"), nil
		}
		return l.lowerItem(entry)
	}
	var declared target.Stream
	if entry != nil {
		fn := entry.Kind.(*ast.Function)
		l.log.Debug("rename entry point", "name", EntrySymbol)
		decl := l.funcDeclOf(entry, fn)
		decl.isMain = false
		sig := l.signatureOf(decl)
		sig.ret = nil
		var err error
		if declared, err = l.lowerFunc(decl, sig, funcOpts{name: EntrySymbol}); err != nil {
			return nil, err
		}
		if !callsMain(stmts) {
			call := ast.At(&ast.Call{Func: ast.New(&ast.Identifier{Ident: "main"})}, entry.Span)
			stmts = append(append([]*ast.Expr{}, stmts...), call)
		}
	} else {
		stmts = entryStmts(stmts)
	}
	saved := l.fn
	l.fn = &fnContext{name: "main"}
	l.depth++
	body, err := l.lowerBlock(stmts, tailDiscard)
	l.depth--
	l.fn = saved
	if err != nil {
		return nil, err
	}
	main := target.Quote("fn main() $0", body)
	if body.Contains("?") {
		main = target.Quote("fn main() -> Result<(), Box<dyn std::error::Error>> $0", appendOk(body))
	}
	return joinItems(declared, main), nil
}

// callsMain returns true if a statement calls main.
func callsMain(stmts []*ast.Expr) bool {
	found := false
	for _, stmt := range stmts {
		ast.Inspect(stmt, func(e *ast.Expr) bool {
			if call, ok := e.Kind.(*ast.Call); ok {
				if id, ok := call.Func.Kind.(*ast.Identifier); ok && id.Ident == "main" {
					found = true
				}
			}
			return !found
		})
	}
	return found
}

// appendOk returns a block ending with Ok(()).
func appendOk(block target.Stream) target.Stream {
	if len(block) < 2 {
		return block
	}
	inner := block[1 : len(block)-1]
	return target.Block(target.Concat(inner, target.Quote("Ok(())")))
}
