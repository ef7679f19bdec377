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

// Package analysis implements the read-only predicates and local inferences
// the lowerer relies on: mutation detection, parameter and return type
// inference, lifetime synthesis and string ownership.
//
// All functions are pure functions of an AST subtree.
package analysis

import (
	"github.com/paiml/ruchy-sub001/build/ast"
)

// identName returns the name of an identifier expression.
func identName(e *ast.Expr) (string, bool) {
	if e == nil {
		return "", false
	}
	id, ok := e.Kind.(*ast.Identifier)
	if !ok {
		return "", false
	}
	return id.Ident, true
}

func isIdent(e *ast.Expr, name string) bool {
	n, ok := identName(e)
	return ok && n == name
}

func literalOf(e *ast.Expr) (*ast.Literal, bool) {
	if e == nil {
		return nil, false
	}
	lit, ok := e.Kind.(*ast.Literal)
	return lit, ok
}

// IsStringLiteral returns true if the expression is a string literal.
func IsStringLiteral(e *ast.Expr) bool {
	lit, ok := literalOf(e)
	return ok && lit.Lit == ast.StringLit
}

// IsUnitLiteral returns true if the expression is the unit literal.
func IsUnitLiteral(e *ast.Expr) bool {
	lit, ok := literalOf(e)
	return ok && lit.Lit == ast.UnitLit
}

// IsStatementLet returns true if e is a let binding with no body of its
// own, that is a let scoping over the rest of its enclosing block.
func IsStatementLet(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.Let:
		return k.Body == nil || IsUnitLiteral(k.Body)
	case *ast.LetPattern:
		return k.Body == nil || IsUnitLiteral(k.Body)
	}
	return false
}

// isScopeBoundary returns true for nodes introducing a new function body:
// return statements inside them do not return from the enclosing function.
func isScopeBoundary(e *ast.Expr) bool {
	switch e.Kind.(type) {
	case *ast.Function, *ast.Lambda, *ast.AsyncLambda,
		*ast.Struct, *ast.Class, *ast.Impl, *ast.Trait, *ast.Actor:
		return true
	}
	return false
}

// Tails returns the expressions whose value can be the value of e:
// the last element of blocks, the bodies of lets, the branches of if and
// match expressions, and the values of return statements.
func Tails(e *ast.Expr) []*ast.Expr {
	var tails []*ast.Expr
	collectTails(e, &tails)
	collectReturns(e, &tails, true)
	return tails
}

func collectTails(e *ast.Expr, tails *[]*ast.Expr) {
	if e == nil {
		return
	}
	switch k := e.Kind.(type) {
	case *ast.Block:
		if len(k.Exprs) == 0 {
			*tails = append(*tails, e)
			return
		}
		collectTails(k.Exprs[len(k.Exprs)-1], tails)
	case *ast.Let:
		if k.Body == nil || IsUnitLiteral(k.Body) {
			*tails = append(*tails, e)
			return
		}
		collectTails(k.Body, tails)
	case *ast.LetPattern:
		if k.Body == nil || IsUnitLiteral(k.Body) {
			*tails = append(*tails, e)
			return
		}
		collectTails(k.Body, tails)
	case *ast.If:
		collectTails(k.Then, tails)
		if k.Else == nil {
			*tails = append(*tails, ast.New(&ast.Literal{Lit: ast.UnitLit}))
			return
		}
		collectTails(k.Else, tails)
	case *ast.IfLet:
		collectTails(k.Then, tails)
		if k.Else == nil {
			*tails = append(*tails, ast.New(&ast.Literal{Lit: ast.UnitLit}))
			return
		}
		collectTails(k.Else, tails)
	case *ast.Match:
		for _, arm := range k.Arms {
			collectTails(arm.Body, tails)
		}
	case *ast.Return:
		// Collected by collectReturns.
	default:
		*tails = append(*tails, e)
	}
}

func collectReturns(e *ast.Expr, tails *[]*ast.Expr, root bool) {
	if e == nil {
		return
	}
	if !root && isScopeBoundary(e) {
		return
	}
	if ret, ok := e.Kind.(*ast.Return); ok {
		if ret.Value == nil {
			*tails = append(*tails, ast.New(&ast.Literal{Lit: ast.UnitLit}))
		} else {
			collectTails(ret.Value, tails)
		}
	}
	children := ast.Children(e)
	if root {
		switch k := e.Kind.(type) {
		case *ast.Function:
			children = []*ast.Expr{k.Body}
		case *ast.Lambda:
			children = []*ast.Expr{k.Body}
		}
	}
	for _, c := range children {
		collectReturns(c, tails, false)
	}
}

// Tail returns the last expression evaluated by e, following blocks and
// let bodies. It returns nil for an empty block.
func Tail(e *ast.Expr) *ast.Expr {
	for e != nil {
		switch k := e.Kind.(type) {
		case *ast.Block:
			if len(k.Exprs) == 0 {
				return nil
			}
			e = k.Exprs[len(k.Exprs)-1]
		case *ast.Let:
			if k.Body == nil || IsUnitLiteral(k.Body) {
				return e
			}
			e = k.Body
		default:
			return e
		}
	}
	return nil
}

func anyTail(body *ast.Expr, f func(*ast.Expr) bool) bool {
	for _, tail := range Tails(body) {
		if f(tail) {
			return true
		}
	}
	return false
}

func allTails(body *ast.Expr, f func(*ast.Expr) bool) bool {
	tails := Tails(body)
	if len(tails) == 0 {
		return false
	}
	for _, tail := range tails {
		if !f(tail) {
			return false
		}
	}
	return true
}
