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

// Package asthelper provides helper functions to build ASTs programmatically.
package asthelper

import "github.com/paiml/ruchy-sub001/build/ast"

// Int returns an integer literal.
func Int(v int64) *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.IntLit, Int: v})
}

// IntSuffix returns an integer literal with a type suffix.
func IntSuffix(v int64, suffix string) *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.IntLit, Int: v, Suffix: suffix})
}

// Float returns a float literal.
func Float(v float64) *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.FloatLit, Float: v})
}

// Str returns a string literal.
func Str(s string) *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.StringLit, Str: s})
}

// Char returns a character literal.
func Char(r rune) *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.CharLit, Char: r})
}

// Bool returns a boolean literal.
func Bool(b bool) *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.BoolLit, Bool: b})
}

// Unit returns the unit literal.
func Unit() *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.UnitLit})
}

// Null returns the null literal.
func Null() *ast.Expr {
	return ast.New(&ast.Literal{Lit: ast.NullLit})
}

// Ident returns an identifier.
func Ident(name string) *ast.Expr {
	return ast.New(&ast.Identifier{Ident: name})
}

// Qualified returns a qualified name module::name.
func Qualified(module, name string) *ast.Expr {
	return ast.New(&ast.QualifiedName{Module: module, Ident: name})
}

// Field returns a field access.
func Field(obj *ast.Expr, field string) *ast.Expr {
	return ast.New(&ast.FieldAccess{Object: obj, Field: field})
}

// Index returns an index access.
func Index(obj, index *ast.Expr) *ast.Expr {
	return ast.New(&ast.IndexAccess{Object: obj, Index: index})
}

// Bin returns a binary operation.
func Bin(op ast.BinaryOp, l, r *ast.Expr) *ast.Expr {
	return ast.New(&ast.Binary{Op: op, Left: l, Right: r})
}

// Add returns l + r.
func Add(l, r *ast.Expr) *ast.Expr {
	return Bin(ast.Add, l, r)
}

// Un returns a unary operation.
func Un(op ast.UnaryOp, x *ast.Expr) *ast.Expr {
	return ast.New(&ast.Unary{Op: op, Operand: x})
}

// Assign returns target = value.
func Assign(target, value *ast.Expr) *ast.Expr {
	return ast.New(&ast.Assign{Target: target, Value: value})
}

// CompoundAssign returns target op= value.
func CompoundAssign(target *ast.Expr, op ast.BinaryOp, value *ast.Expr) *ast.Expr {
	return ast.New(&ast.CompoundAssign{Target: target, Op: op, Value: value})
}

// Call returns a call to a function.
func Call(fn *ast.Expr, args ...*ast.Expr) *ast.Expr {
	return ast.New(&ast.Call{Func: fn, Args: args})
}

// CallName returns a call to a function given its name.
func CallName(name string, args ...*ast.Expr) *ast.Expr {
	return Call(Ident(name), args...)
}

// Method returns a method call.
func Method(recv *ast.Expr, method string, args ...*ast.Expr) *ast.Expr {
	return ast.New(&ast.MethodCall{Receiver: recv, Method: method, Args: args})
}

// Let returns a let binding with a body.
func Let(name string, value, body *ast.Expr) *ast.Expr {
	return ast.New(&ast.Let{Ident: name, Value: value, Body: body})
}

// LetMut returns a mutable let binding with a body.
func LetMut(name string, value, body *ast.Expr) *ast.Expr {
	return ast.New(&ast.Let{Ident: name, Value: value, Body: body, Mutable: true})
}

// LetStmt returns a statement-level let binding.
func LetStmt(name string, value *ast.Expr) *ast.Expr {
	return Let(name, value, Unit())
}

// Block returns a block of expressions.
func Block(exprs ...*ast.Expr) *ast.Expr {
	return ast.New(&ast.Block{Exprs: exprs})
}

// If returns an if expression. els can be nil.
func If(cond, then, els *ast.Expr) *ast.Expr {
	return ast.New(&ast.If{Cond: cond, Then: then, Else: els})
}

// List returns a list literal.
func List(elts ...*ast.Expr) *ast.Expr {
	return ast.New(&ast.List{Elements: elts})
}

// Tuple returns a tuple literal.
func Tuple(elts ...*ast.Expr) *ast.Expr {
	return ast.New(&ast.Tuple{Elements: elts})
}

// Return returns a return statement. value can be nil.
func Return(value *ast.Expr) *ast.Expr {
	return ast.New(&ast.Return{Value: value})
}

// Named returns a named type.
func Named(name string) *ast.Type {
	return &ast.Type{Kind: &ast.NamedType{Ident: name}}
}

// Ref returns a reference to a type.
func Ref(inner *ast.Type) *ast.Type {
	return &ast.Type{Kind: &ast.ReferenceType{Inner: inner}}
}

// Generic returns a generic type instance.
func Generic(base string, params ...*ast.Type) *ast.Type {
	return &ast.Type{Kind: &ast.GenericType{Base: base, Params: params}}
}

// PIdent returns an identifier pattern.
func PIdent(name string) *ast.Pattern {
	return &ast.Pattern{Kind: &ast.IdentPattern{Ident: name}}
}

// PWild returns the wildcard pattern.
func PWild() *ast.Pattern {
	return &ast.Pattern{Kind: &ast.WildcardPattern{}}
}

// PLit returns a literal pattern from a literal expression.
func PLit(lit *ast.Expr) *ast.Pattern {
	return &ast.Pattern{Kind: &ast.LiteralPattern{Literal: *lit.Kind.(*ast.Literal)}}
}

// P wraps a pattern kind.
func P(kind ast.PatternKind) *ast.Pattern {
	return &ast.Pattern{Kind: kind}
}

// Param returns an untyped parameter.
func Param(name string) ast.Param {
	return ast.Param{Pattern: PIdent(name)}
}

// TypedParam returns a parameter with a type.
func TypedParam(name string, typ *ast.Type) ast.Param {
	return ast.Param{Pattern: PIdent(name), Type: typ}
}

// Params returns a list of untyped parameters.
func Params(names ...string) []ast.Param {
	ps := make([]ast.Param, len(names))
	for i, name := range names {
		ps[i] = Param(name)
	}
	return ps
}

// Func returns a function declaration.
func Func(name string, params []ast.Param, ret *ast.Type, body *ast.Expr) *ast.Expr {
	return ast.New(&ast.Function{Ident: name, Params: params, ReturnType: ret, Body: body})
}

// Lambda returns a lambda.
func Lambda(params []ast.Param, body *ast.Expr) *ast.Expr {
	return ast.New(&ast.Lambda{Params: params, Body: body})
}

// Arm returns a match arm.
func Arm(p *ast.Pattern, guard, body *ast.Expr) ast.MatchArm {
	return ast.MatchArm{Pattern: p, Guard: guard, Body: body}
}

// Match returns a match expression.
func Match(scrutinee *ast.Expr, arms ...ast.MatchArm) *ast.Expr {
	return ast.New(&ast.Match{Scrutinee: scrutinee, Arms: arms})
}

// WithAttrs attaches attributes to an expression and returns it.
func WithAttrs(e *ast.Expr, attrs ...ast.Attribute) *ast.Expr {
	e.Attributes = append(e.Attributes, attrs...)
	return e
}
