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
	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

// tailMode specifies how the last expression of a block is lowered.
type tailMode int

const (
	// tailValue keeps the last expression as the value of the block.
	tailValue tailMode = iota
	// tailDiscard lowers the last expression as a statement.
	tailDiscard
	// tailOwned keeps the last expression as the value of the block,
	// converting borrowed strings into owned strings.
	tailOwned
)

func modeFor(owned bool) tailMode {
	if owned {
		return tailOwned
	}
	return tailValue
}

// flatten expands lets with a body into a statement-level let followed
// by the statements of the body.
func flatten(exprs []*ast.Expr) []*ast.Expr {
	var flat []*ast.Expr
	for _, x := range exprs {
		flat = appendFlat(flat, x)
	}
	return flat
}

func appendFlat(flat []*ast.Expr, x *ast.Expr) []*ast.Expr {
	var body *ast.Expr
	switch k := x.Kind.(type) {
	case *ast.Let:
		if k.Body == nil || analysis.IsUnitLiteral(k.Body) {
			return append(flat, x)
		}
		stmt := *k
		stmt.Body = nil
		flat = append(flat, &ast.Expr{Kind: &stmt, Span: x.Span, Attributes: x.Attributes})
		body = k.Body
	case *ast.LetPattern:
		if k.Body == nil || analysis.IsUnitLiteral(k.Body) {
			return append(flat, x)
		}
		stmt := *k
		stmt.Body = nil
		flat = append(flat, &ast.Expr{Kind: &stmt, Span: x.Span, Attributes: x.Attributes})
		body = k.Body
	default:
		return append(flat, x)
	}
	if blk, ok := body.Kind.(*ast.Block); ok {
		for _, b := range blk.Exprs {
			flat = appendFlat(flat, b)
		}
		return flat
	}
	return appendFlat(flat, body)
}

// isBlockLike returns true for expressions ending with a block.
func isBlockLike(e *ast.Expr) bool {
	switch e.Kind.(type) {
	case *ast.If, *ast.IfLet, *ast.Match, *ast.While, *ast.WhileLet, *ast.For, *ast.Loop,
		*ast.Block, *ast.TryCatch:
		return true
	}
	return isItem(e)
}

func needsSemicolon(e *ast.Expr) bool {
	if isItem(e) {
		return false
	}
	return !isBlockLike(e) || !analysis.IsVoidExpression(e)
}

// lowerStmts lowers a sequence of expressions as the statements of a block.
func (l *Lowerer) lowerStmts(exprs []*ast.Expr, mode tailMode) (target.Stream, error) {
	flat := flatten(exprs)
	l.declareAll(flat)
	var out target.Stream
	for i, x := range flat {
		rest := flat[i+1:]
		last := i == len(flat)-1
		switch k := x.Kind.(type) {
		case *ast.Let:
			s, err := l.lowerLetStmt(x, k, rest)
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
			continue
		case *ast.LetPattern:
			s, err := l.lowerLetPatternStmt(x, k, rest)
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
			continue
		}
		if last && mode != tailDiscard && !analysis.IsVoidExpression(x) {
			s, err := l.lowerTail(x, mode)
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
			continue
		}
		s, err := l.lowerStmt(x)
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
		if needsSemicolon(x) {
			out = append(out, target.Semi)
		}
	}
	return out, nil
}

// lowerStmt lowers an expression in statement position.
func (l *Lowerer) lowerStmt(e *ast.Expr) (target.Stream, error) {
	if s, ok, err := l.lowerIncrementStmt(e); ok || err != nil {
		return s, err
	}
	return l.lowerExpr(e)
}

// lowerTail lowers the value of a block.
func (l *Lowerer) lowerTail(e *ast.Expr, mode tailMode) (target.Stream, error) {
	if mode != tailOwned {
		return l.lowerExpr(e)
	}
	switch k := e.Kind.(type) {
	case *ast.Literal:
		s, err := l.lowerExpr(e)
		if err != nil || k.Lit != ast.StringLit {
			return s, err
		}
		return target.Quote("$0.to_string()", s), nil
	case *ast.Identifier, *ast.IndexAccess:
		s, err := l.receiver(e)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.to_string()", s), nil
	case *ast.If:
		return l.lowerIf(k, true)
	case *ast.IfLet:
		return l.lowerIfLet(k, true)
	case *ast.Match:
		return l.lowerMatch(k, true)
	case *ast.Block:
		return l.lowerBlock(k.Exprs, tailOwned)
	case *ast.Let, *ast.LetPattern:
		return l.lowerBlock([]*ast.Expr{e}, tailOwned)
	}
	return l.lowerExpr(e)
}

// lowerBlock lowers statements wrapped in braces.
func (l *Lowerer) lowerBlock(exprs []*ast.Expr, mode tailMode) (target.Stream, error) {
	body, err := l.lowerStmts(exprs, mode)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return target.Braces(nil), nil
	}
	return target.Block(body), nil
}

// lowerBlockExpr lowers a block in expression position.
func (l *Lowerer) lowerBlockExpr(_ *ast.Expr, blk *ast.Block) (target.Stream, error) {
	return l.lowerBlock(blk.Exprs, tailValue)
}

// branch lowers the body of a control flow construct as a block.
func (l *Lowerer) branch(e *ast.Expr, mode tailMode) (target.Stream, error) {
	if e == nil {
		return target.Braces(nil), nil
	}
	if blk, ok := e.Kind.(*ast.Block); ok {
		return l.lowerBlock(blk.Exprs, mode)
	}
	return l.lowerBlock([]*ast.Expr{e}, mode)
}

func scopeOf(rest []*ast.Expr) *ast.Expr {
	return ast.New(&ast.Block{Exprs: rest})
}

func (l *Lowerer) lowerLetStmt(e *ast.Expr, let *ast.Let, rest []*ast.Expr) (target.Stream, error) {
	mutable := let.Mutable || analysis.IsVariableModified(let.Ident, scopeOf(rest))
	if mutable {
		l.mark(let.Ident)
	}
	name, err := target.DeclIdent(e.Span, let.Ident)
	if err != nil {
		return nil, err
	}
	value, err := l.lowerExpr(let.Value)
	if err != nil {
		return nil, err
	}
	isString := analysis.IsStringLiteral(let.Value)
	switch {
	case let.Type.NamedAs(analysis.OwnedString):
		value = ownedString(let.Value, value)
		l.ownedStrings.Add(let.Ident)
	case isString && mutable:
		value = target.Quote("String::from($0)", value)
		l.ownedStrings.Add(let.Ident)
	case !isString && l.isStringExpr(let.Value):
		l.ownedStrings.Add(let.Ident)
	}
	if l.isDataFrameExpr(let.Value) {
		l.dataframes.Add(let.Ident)
	}
	decl := target.Stream{target.W("let")}
	if mutable {
		decl = append(decl, target.W("mut"))
	}
	decl = append(decl, name)
	if let.Type != nil && !let.Type.IsAny() {
		typ, err := l.lowerType(let.Type, typeLocal)
		if err != nil {
			return nil, err
		}
		decl = target.Quote("$0: $1", decl, typ)
	}
	if let.Else != nil {
		els, err := l.branch(let.Else, tailDiscard)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0 = $1 else $2;", decl, value, els), nil
	}
	return target.Quote("$0 = $1;", decl, value), nil
}

func (l *Lowerer) lowerLetPatternStmt(e *ast.Expr, let *ast.LetPattern, rest []*ast.Expr) (target.Stream, error) {
	scope := scopeOf(rest)
	pat, err := l.lowerPattern(let.Pattern, bindMode{mutable: func(name string) bool {
		mutable := let.Mutable || analysis.IsVariableModified(name, scope)
		if mutable {
			l.mark(name)
		}
		return mutable
	}})
	if err != nil {
		return nil, err
	}
	value, err := l.lowerExpr(let.Value)
	if err != nil {
		return nil, err
	}
	decl := target.Concat(target.Words("let"), pat)
	if let.Type != nil && !let.Type.IsAny() {
		typ, err := l.lowerType(let.Type, typeLocal)
		if err != nil {
			return nil, err
		}
		decl = target.Quote("$0: $1", decl, typ)
	}
	needSlice := analysis.PatternNeedsSlice(let.Pattern) || hasListPattern(let.Pattern)
	if needSlice {
		recv, err := l.receiver(let.Value)
		if err != nil {
			return nil, err
		}
		value = target.Quote("$0.as_slice()", recv)
	}
	switch {
	case let.Else != nil:
		els, err := l.branch(let.Else, tailDiscard)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0 = $1 else $2;", decl, value, els), nil
	case needSlice || refutable(let.Pattern):
		return target.Quote(`$0 = $1 else { panic!("pattern does not match") };`, decl, value), nil
	}
	return target.Quote("$0 = $1;", decl, value), nil
}
