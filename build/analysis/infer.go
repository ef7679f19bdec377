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

package analysis

import (
	"github.com/paiml/ruchy-sub001/build/ast"
)

// Type names used by the inferences.
const (
	DefaultInt   = "i32"
	DefaultFloat = "f64"
	BorrowedStr  = "str"
	OwnedString  = "String"
	Boolean      = "bool"
)

func named(name string) *ast.Type {
	return &ast.Type{Kind: &ast.NamedType{Ident: name}}
}

func generic(base string, params ...*ast.Type) *ast.Type {
	return &ast.Type{Kind: &ast.GenericType{Base: base, Params: params}}
}

// StrRef returns the borrowed string type &str.
func StrRef() *ast.Type {
	return &ast.Type{Kind: &ast.ReferenceType{Inner: named(BorrowedStr)}}
}

// IsStrRef returns true if the type is a borrowed string.
func IsStrRef(t *ast.Type) bool {
	if t == nil {
		return false
	}
	ref, ok := t.Kind.(*ast.ReferenceType)
	return ok && ref.Inner.NamedAs(BorrowedStr)
}

func callArity(name string, body *ast.Expr) (int, bool) {
	arity, found := 0, false
	ast.Inspect(body, func(e *ast.Expr) bool {
		if found {
			return false
		}
		call, ok := e.Kind.(*ast.Call)
		if ok && isIdent(call.Func, name) {
			arity, found = len(call.Args), true
			return false
		}
		return true
	})
	return arity, found
}

var arithmeticOps = map[ast.BinaryOp]bool{
	ast.Add:      true,
	ast.Subtract: true,
	ast.Multiply: true,
	ast.Divide:   true,
	ast.Modulo:   true,
	ast.Power:    true,
}

// usage classifies how a parameter is used in a function body.
type usage struct {
	arithmetic bool
	stringy    bool
	other      bool
}

var stringMethods = map[string]bool{
	"len": true, "to_upper": true, "to_lower": true, "to_uppercase": true,
	"to_lowercase": true, "trim": true, "strip": true, "lstrip": true, "rstrip": true,
	"split": true, "chars": true, "starts_with": true, "ends_with": true,
	"startswith": true, "endswith": true, "replace": true, "lines": true, "bytes": true,
}

func classify(name string, body *ast.Expr) usage {
	var u usage
	var visit func(e, parent *ast.Expr)
	visit = func(e, parent *ast.Expr) {
		if e == nil {
			return
		}
		if isIdent(e, name) {
			u.classifyUse(e, parent)
			return
		}
		for _, c := range ast.Children(e) {
			visit(c, e)
		}
	}
	visit(body, nil)
	return u
}

// classifyUse classifies one use of a parameter. Reads whose value is
// only passed on, as a block value or a returned value, do not constrain
// the type.
func (u *usage) classifyUse(e, parent *ast.Expr) {
	if parent == nil {
		return
	}
	switch p := parent.Kind.(type) {
	case *ast.Block, *ast.Return:
	case *ast.Binary:
		other := p.Right
		if p.Right == e {
			other = p.Left
		}
		switch {
		case p.Op == ast.Add && ExprIsString(other):
			u.stringy = true
		case arithmeticOps[p.Op]:
			u.arithmetic = true
		case p.Op.Family() == ast.Comparison && IsStringLiteral(other):
			u.stringy = true
		case p.Op.Family() == ast.Comparison:
			if lit, ok := literalOf(other); ok && (lit.Lit == ast.IntLit || lit.Lit == ast.FloatLit) {
				u.arithmetic = true
				return
			}
			u.other = true
		default:
			u.other = true
		}
	case *ast.Unary:
		if p.Op == ast.Negate {
			u.arithmetic = true
			return
		}
		u.other = true
	case *ast.CompoundAssign:
		if arithmeticOps[p.Op] && !ExprIsString(p.Value) {
			u.arithmetic = true
			return
		}
		u.stringy = true
	case *ast.MethodCall:
		if p.Receiver == e && stringMethods[p.Method] {
			u.stringy = true
			return
		}
		u.other = true
	case *ast.StringInterpolation:
		u.stringy = true
	default:
		u.other = true
	}
}

// InferParamType infers the type of an untyped parameter from its uses in
// the body of a function. It returns nil when no type can be inferred, in
// which case the caller falls back to a generic type parameter.
//
// The inference recognizes, in order: a parameter that is called (function
// type), indexed twice (nested vector), indexed once (vector), used only in
// arithmetic (integer), and concatenated with or read as a string (borrowed
// string).
func InferParamType(name string, body *ast.Expr) *ast.Type {
	if arity, called := callArity(name, body); called {
		params := make([]*ast.Type, arity)
		for i := range params {
			params[i] = named(DefaultInt)
		}
		return &ast.Type{Kind: &ast.FunctionType{Params: params, Ret: named(DefaultInt)}}
	}
	if IsNestedArrayParam(name, body) {
		return generic("Vec", generic("Vec", named(DefaultInt)))
	}
	if IsIndexedParam(name, body) {
		return generic("Vec", named(DefaultInt))
	}
	u := classify(name, body)
	if u.arithmetic && !u.stringy && !u.other {
		return named(DefaultInt)
	}
	if u.stringy {
		return StrRef()
	}
	return nil
}

// ReturnTypeInput gathers what return type inference needs about a function.
type ReturnTypeInput struct {
	Name   string
	Params []ast.Param
	// ParamTypes are the declared or inferred parameter types, nil for
	// parameters with a generic type.
	ParamTypes []*ast.Type
	Body       *ast.Expr
}

// InferReturnType decides the return type of a function without a declared
// return type. It returns nil if the function returns unit.
func InferReturnType(in ReturnTypeInput) *ast.Type {
	if closure := ReturnedClosure(in.Body); closure != nil {
		var param *ast.Type
		if len(closure.Params) > 0 {
			param = InferParamType(closure.Params[0].ParamName(), closure.Body)
		}
		if param == nil {
			param = named(DefaultInt)
		}
		return &ast.Type{Kind: &ast.FunctionType{Params: []*ast.Type{param}, Ret: param}}
	}
	if LooksLikeNumericFunction(in.Name) {
		return named(DefaultInt)
	}
	if ReturnsStringLiteral(in.Body) {
		return StrRef()
	}
	if ReturnsBoolean(in.Body) {
		return named(Boolean)
	}
	if ReturnsVec(in.Body) {
		return generic("Vec", named(DefaultInt))
	}
	if ReturnsString(in.Body) {
		return named(OwnedString)
	}
	if ReturnsObjectLiteral(in.Body) {
		return generic("HashMap", named(OwnedString), named(OwnedString))
	}
	if typ := passthroughType(in); typ != nil {
		return typ
	}
	if HasNonUnitExpression(in.Body) {
		return named(DefaultInt)
	}
	return nil
}

// passthroughType returns the type of a parameter returned as is.
func passthroughType(in ReturnTypeInput) *ast.Type {
	tail := Tail(in.Body)
	name, ok := identName(tail)
	if !ok {
		return nil
	}
	for i, p := range in.Params {
		if p.ParamName() != name || i >= len(in.ParamTypes) {
			continue
		}
		return in.ParamTypes[i]
	}
	return nil
}

// NeedsLifetimeParameter returns true if at least two parameters have a
// reference type and the return type is a reference.
func NeedsLifetimeParameter(paramTypes []*ast.Type, ret *ast.Type) bool {
	if !ret.IsReference() {
		return false
	}
	refs := 0
	for _, t := range paramTypes {
		if t.IsReference() {
			refs++
		}
	}
	return refs >= 2
}

// WithLifetime returns a copy of a reference type annotated with a lifetime.
// Other types are returned unchanged.
func WithLifetime(t *ast.Type, lifetime string) *ast.Type {
	if t == nil {
		return nil
	}
	ref, ok := t.Kind.(*ast.ReferenceType)
	if !ok {
		return t
	}
	withLT := *ref
	withLT.Lifetime = lifetime
	return &ast.Type{Kind: &withLT, Span: t.Span}
}
