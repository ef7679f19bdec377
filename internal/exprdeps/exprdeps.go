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

// Package exprdeps extracts identifier dependencies from AST expressions.
package exprdeps

import (
	"github.com/paiml/ruchy-sub001/base/ordered"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/internal/base/scope"
)

// Idents returns the names of all identifiers used in an expression,
// in order of first appearance.
func Idents(expr *ast.Expr) []string {
	done := ordered.NewSet[string]()
	ast.Inspect(expr, func(e *ast.Expr) bool {
		if id, ok := e.Kind.(*ast.Identifier); ok {
			done.Add(id.Ident)
		}
		return true
	})
	return done.Slice()
}

type collector struct {
	free *ordered.Set[string]
}

type bindings = *scope.Scope[bool]

func (c *collector) bindParams(sc bindings, params []ast.Param) bindings {
	inner := sc.NewChild()
	for _, p := range params {
		bindPattern(inner, p.Pattern)
	}
	return inner
}

func bindPattern(sc bindings, p *ast.Pattern) {
	for _, name := range p.Bindings() {
		sc.Define(name, true)
	}
}

func (c *collector) all(sc bindings, exprs ...*ast.Expr) {
	for _, e := range exprs {
		c.expr(sc, e)
	}
}

func (c *collector) expr(sc bindings, e *ast.Expr) {
	if e == nil {
		return
	}
	switch k := e.Kind.(type) {
	case *ast.Identifier:
		if _, bound := sc.Find(k.Ident); !bound {
			c.free.Add(k.Ident)
		}
	case *ast.Let:
		c.expr(sc, k.Value)
		c.expr(sc, k.Else)
		inner := sc.NewChild()
		inner.Define(k.Ident, true)
		c.expr(inner, k.Body)
	case *ast.LetPattern:
		c.expr(sc, k.Value)
		c.expr(sc, k.Else)
		inner := sc.NewChild()
		bindPattern(inner, k.Pattern)
		c.expr(inner, k.Body)
	case *ast.Block:
		// Statement-level lets are scoped to the rest of the block.
		inner := sc.NewChild()
		for _, elt := range k.Exprs {
			c.expr(inner, elt)
			switch eltK := elt.Kind.(type) {
			case *ast.Let:
				inner.Define(eltK.Ident, true)
			case *ast.LetPattern:
				bindPattern(inner, eltK.Pattern)
			case *ast.Function:
				inner.Define(eltK.Ident, true)
			}
		}
	case *ast.Function:
		inner := sc.NewChild()
		inner.Define(k.Ident, true)
		c.expr(c.bindParams(inner, k.Params), k.Body)
	case *ast.Lambda:
		c.expr(c.bindParams(sc, k.Params), k.Body)
	case *ast.AsyncLambda:
		c.expr(c.bindParams(sc, k.Params), k.Body)
	case *ast.For:
		c.expr(sc, k.Iter)
		inner := sc.NewChild()
		if k.Pattern != nil {
			bindPattern(inner, k.Pattern)
		} else {
			inner.Define(k.Var, true)
		}
		c.expr(inner, k.Body)
	case *ast.Match:
		c.expr(sc, k.Scrutinee)
		for _, arm := range k.Arms {
			inner := sc.NewChild()
			bindPattern(inner, arm.Pattern)
			c.all(inner, arm.Guard, arm.Body)
		}
	case *ast.IfLet:
		c.expr(sc, k.Value)
		inner := sc.NewChild()
		bindPattern(inner, k.Pattern)
		c.expr(inner, k.Then)
		c.expr(sc, k.Else)
	case *ast.WhileLet:
		c.expr(sc, k.Value)
		inner := sc.NewChild()
		bindPattern(inner, k.Pattern)
		c.expr(inner, k.Body)
	case *ast.TryCatch:
		c.expr(sc, k.Try)
		for _, catch := range k.Catches {
			inner := sc.NewChild()
			bindPattern(inner, catch.Pattern)
			c.expr(inner, catch.Body)
		}
		c.expr(sc, k.Finally)
	default:
		c.all(sc, ast.Children(e)...)
	}
}

// Free returns the identifiers of an expression that are not bound
// within the expression or by the given names, in order of first appearance.
func Free(expr *ast.Expr, bound ...string) []string {
	root := scope.New[bool](nil)
	for _, name := range bound {
		root.Define(name, true)
	}
	c := &collector{free: ordered.NewSet[string]()}
	c.expr(root, expr)
	return c.free.Slice()
}
