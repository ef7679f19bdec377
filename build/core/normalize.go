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

package core

import (
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
)

var binaryPrims = map[ast.BinaryOp]PrimOp{
	ast.Add:          Add,
	ast.Subtract:     Sub,
	ast.Multiply:     Mul,
	ast.Divide:       Div,
	ast.Modulo:       Mod,
	ast.Power:        Pow,
	ast.Equal:        Eq,
	ast.NotEqual:     Ne,
	ast.Less:         Lt,
	ast.LessEqual:    Le,
	ast.Greater:      Gt,
	ast.GreaterEqual: Ge,
	ast.And:          And,
	ast.Or:           Or,
	ast.NullCoalesce: NullCoalesce,
}

// unusedParam names the parameter of a function without parameters.
const unusedParam = "_"

// normalizer tracks the binders in scope. The last element of the
// stack is the innermost binder.
type normalizer struct {
	stack []string
}

// Normalize converts a surface expression into a closed core term.
// It fails with a free variable error if a name is not bound.
func Normalize(e *ast.Expr) (Term, error) {
	n := &normalizer{}
	return n.expr(e)
}

// NormalizeWith converts an expression in which the given names are bound
// by enclosing binders. The last name is the innermost binder.
func NormalizeWith(e *ast.Expr, bound ...string) (Term, error) {
	n := &normalizer{stack: append([]string(nil), bound...)}
	return n.expr(e)
}

func (n *normalizer) push(names ...string) {
	n.stack = append(n.stack, names...)
}

func (n *normalizer) pop(count int) {
	n.stack = n.stack[:len(n.stack)-count]
}

func (n *normalizer) lookup(name string) (int, bool) {
	for i := len(n.stack) - 1; i >= 0; i-- {
		if n.stack[i] == name {
			return len(n.stack) - 1 - i, true
		}
	}
	return 0, false
}

func unsupported(e *ast.Expr) error {
	return fmterr.Errorf(fmterr.Unsupported, e, "%s is not part of the core calculus", e.Kind.Name())
}

func (n *normalizer) expr(e *ast.Expr) (Term, error) {
	if e == nil {
		return Unit(), nil
	}
	switch k := e.Kind.(type) {
	case *ast.Literal:
		return literal(e, k)
	case *ast.Identifier:
		index, ok := n.lookup(k.Ident)
		if !ok {
			return nil, fmterr.Errorf(fmterr.FreeVariable, e, "unbound identifier %s", k.Ident)
		}
		return &Var{Index: index}, nil
	case *ast.Binary:
		op, ok := binaryPrims[k.Op]
		if !ok {
			return nil, fmterr.Errorf(fmterr.Unsupported, e, "operator %s is not part of the core calculus", k.Op.OpName())
		}
		return n.prim(op, k.Left, k.Right)
	case *ast.Unary:
		switch k.Op {
		case ast.Negate:
			return n.prim(Neg, k.Operand)
		case ast.Not:
			return n.prim(Not, k.Operand)
		}
		return nil, fmterr.Errorf(fmterr.Unsupported, e, "unary operator %s is not part of the core calculus", k.Op)
	case *ast.Let:
		if k.Else != nil {
			return nil, unsupported(e)
		}
		return n.let(k.Ident, k.Value, k.Body, false)
	case *ast.Lambda:
		return n.lambda(e, k.Params, k.Body)
	case *ast.Function:
		return n.function(e, k, nil)
	case *ast.Call:
		return n.call(k)
	case *ast.If:
		return n.prim(If, k.Cond, k.Then, k.Else)
	case *ast.List:
		return n.prim(ArrayNew, k.Elements...)
	case *ast.Block:
		return n.block(k.Exprs)
	}
	return nil, unsupported(e)
}

func literal(e *ast.Expr, lit *ast.Literal) (Term, error) {
	switch lit.Lit {
	case ast.IntLit:
		return &Literal{Kind: IntLit, Int: lit.Int}, nil
	case ast.ByteLit:
		return &Literal{Kind: IntLit, Int: int64(lit.Byte)}, nil
	case ast.FloatLit:
		return &Literal{Kind: FloatLit, Float: lit.Float}, nil
	case ast.StringLit:
		return &Literal{Kind: StringLit, Str: lit.Str}, nil
	case ast.BoolLit:
		return &Literal{Kind: BoolLit, Bool: lit.Bool}, nil
	case ast.CharLit:
		return &Literal{Kind: CharLit, Char: lit.Char}, nil
	case ast.UnitLit:
		return Unit(), nil
	}
	return nil, fmterr.Errorf(fmterr.Unsupported, e, "%s literal is not part of the core calculus", lit.Lit)
}

func (n *normalizer) prim(op PrimOp, args ...*ast.Expr) (Term, error) {
	p := &Prim{Op: op, Args: make([]Term, len(args))}
	for i, arg := range args {
		var err error
		if p.Args[i], err = n.expr(arg); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (n *normalizer) let(name string, value, body *ast.Expr, rec bool) (Term, error) {
	if rec {
		n.push(name)
	}
	val, err := n.expr(value)
	if rec {
		n.pop(1)
	}
	if err != nil {
		return nil, err
	}
	n.push(name)
	defer n.pop(1)
	bodyT, err := n.expr(body)
	if err != nil {
		return nil, err
	}
	return &Let{Name: name, Value: val, Body: bodyT, Rec: rec}, nil
}

func paramNames(e *ast.Expr, params []ast.Param) ([]string, error) {
	if len(params) == 0 {
		return []string{unusedParam}, nil
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.ParamName()
		if names[i] == "" {
			return nil, fmterr.Errorf(fmterr.MalformedInput, e, "parameter %d destructures its argument", i)
		}
	}
	return names, nil
}

func (n *normalizer) lambda(e *ast.Expr, params []ast.Param, body *ast.Expr) (Term, error) {
	names, err := paramNames(e, params)
	if err != nil {
		return nil, err
	}
	n.push(names...)
	bodyT, err := n.expr(body)
	n.pop(len(names))
	if err != nil {
		return nil, err
	}
	for i := len(names) - 1; i >= 0; i-- {
		bodyT = &Lambda{Name: names[i], Body: bodyT}
	}
	return bodyT, nil
}

// function lowers a function declaration to a recursive let over rest.
// A nil rest is the unit literal.
func (n *normalizer) function(e *ast.Expr, fn *ast.Function, rest []*ast.Expr) (Term, error) {
	n.push(fn.Ident)
	val, err := n.lambda(e, fn.Params, fn.Body)
	if err != nil {
		n.pop(1)
		return nil, err
	}
	var body Term = Unit()
	if len(rest) > 0 {
		body, err = n.block(rest)
	}
	n.pop(1)
	if err != nil {
		return nil, err
	}
	return &Let{Name: fn.Ident, Value: val, Body: body, Rec: true}, nil
}

func (n *normalizer) call(call *ast.Call) (Term, error) {
	fn, err := n.expr(call.Func)
	if err != nil {
		return nil, err
	}
	if len(call.Args) == 0 {
		return &App{Func: fn, Arg: Unit()}, nil
	}
	for _, arg := range call.Args {
		argT, err := n.expr(arg)
		if err != nil {
			return nil, err
		}
		fn = &App{Func: fn, Arg: argT}
	}
	return fn, nil
}

// isStatementLet returns the let of a statement-level binding,
// that is a let with a unit body.
func isStatementLet(e *ast.Expr) (*ast.Let, bool) {
	let, ok := e.Kind.(*ast.Let)
	if !ok || let.Else != nil {
		return nil, false
	}
	if let.Body == nil {
		return let, true
	}
	lit, ok := let.Body.Kind.(*ast.Literal)
	return let, ok && lit.Lit == ast.UnitLit
}

// block returns the value of the last expression of a block.
// Bindings scope over the rest of the block and other intermediate
// expressions are dropped.
func (n *normalizer) block(exprs []*ast.Expr) (Term, error) {
	if len(exprs) == 0 {
		return Unit(), nil
	}
	head, rest := exprs[0], exprs[1:]
	if let, ok := isStatementLet(head); ok {
		if len(rest) == 0 {
			return n.let(let.Ident, let.Value, nil, false)
		}
		val, err := n.expr(let.Value)
		if err != nil {
			return nil, err
		}
		n.push(let.Ident)
		body, err := n.block(rest)
		n.pop(1)
		if err != nil {
			return nil, err
		}
		return &Let{Name: let.Ident, Value: val, Body: body}, nil
	}
	if fn, ok := head.Kind.(*ast.Function); ok {
		return n.function(head, fn, rest)
	}
	if len(rest) == 0 {
		return n.expr(head)
	}
	return n.block(rest)
}
