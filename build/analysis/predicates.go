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
	"strings"

	"github.com/paiml/ruchy-sub001/base/ordered"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/internal/exprdeps"
)

var numericNames = []string{
	"sin", "cos", "tan", "asin", "acos", "atan", "sqrt", "cbrt", "exp", "log",
	"ln", "abs", "pow", "floor", "ceil", "round", "min", "max", "add", "sub",
	"subtract", "mul", "multiply", "div", "divide", "mod", "sum", "product",
	"square", "cube", "double", "triple", "half", "inc", "increment", "dec",
	"decrement", "negate", "factorial", "fib", "fibonacci", "gcd", "lcm",
	"calculate", "compute", "count", "area", "distance", "avg", "average", "mean",
}

// LooksLikeNumericFunction returns true if the name of a function suggests
// that it computes a number: the name is, starts with or ends with a
// well-known numeric word separated by an underscore.
func LooksLikeNumericFunction(name string) bool {
	for _, word := range numericNames {
		if name == word || strings.HasPrefix(name, word+"_") || strings.HasSuffix(name, "_"+word) {
			return true
		}
	}
	return false
}

// ReturnsClosure returns true if a lambda is in tail position.
func ReturnsClosure(body *ast.Expr) bool {
	return anyTail(body, func(e *ast.Expr) bool {
		switch e.Kind.(type) {
		case *ast.Lambda, *ast.AsyncLambda:
			return true
		}
		return false
	})
}

// ReturnedClosure returns the first lambda in tail position, if any.
func ReturnedClosure(body *ast.Expr) *ast.Lambda {
	for _, tail := range Tails(body) {
		if lambda, ok := tail.Kind.(*ast.Lambda); ok {
			return lambda
		}
	}
	return nil
}

// ValueCreatesVec returns true if evaluating the expression builds a vector.
func ValueCreatesVec(e *ast.Expr) bool {
	if e == nil {
		return false
	}
	switch k := e.Kind.(type) {
	case *ast.List, *ast.VecRepeat:
		return true
	case *ast.Call:
		if q, ok := k.Func.Kind.(*ast.QualifiedName); ok {
			return q.Module == "Vec" && (q.Ident == "new" || q.Ident == "with_capacity")
		}
	case *ast.Macro:
		return k.Ident == "vec"
	case *ast.MacroInvocation:
		return k.Ident == "vec"
	case *ast.MethodCall:
		switch k.Method {
		case "collect", "to_vec":
			return true
		case "map", "filter":
			return ValueCreatesVec(k.Receiver)
		}
	}
	return false
}

// ReturnsVec returns true if a tail position builds a vector.
func ReturnsVec(body *ast.Expr) bool {
	return anyTail(body, ValueCreatesVec)
}

func isBooleanExpr(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.Literal:
		return k.Lit == ast.BoolLit
	case *ast.Binary:
		switch k.Op.Family() {
		case ast.Comparison, ast.Logical, ast.Containment:
			return true
		}
	case *ast.Unary:
		return k.Op == ast.Not
	case *ast.MethodCall:
		return booleanMethods.Contains(k.Method)
	}
	return false
}

var booleanMethods = ordered.NewSet(
	"is_empty", "contains", "contains_key", "starts_with", "ends_with",
	"startswith", "endswith", "is_some", "is_none", "is_ok", "is_err", "any", "all",
)

// ReturnsBoolean returns true if every tail position is a boolean.
func ReturnsBoolean(body *ast.Expr) bool {
	return allTails(body, isBooleanExpr)
}

// ExprIsString returns true if the expression is definitely a string:
// a string literal, an interpolation, or a concatenation involving one.
func ExprIsString(e *ast.Expr) bool {
	if e == nil {
		return false
	}
	switch k := e.Kind.(type) {
	case *ast.Literal:
		return k.Lit == ast.StringLit
	case *ast.StringInterpolation:
		return true
	case *ast.Binary:
		return k.Op == ast.Add && (ExprIsString(k.Left) || ExprIsString(k.Right))
	case *ast.MacroInvocation:
		return k.Ident == "format"
	case *ast.Macro:
		return k.Ident == "format"
	case *ast.MethodCall:
		return ownedStringMethods.Contains(k.Method)
	}
	return false
}

var ownedStringMethods = ordered.NewSet(
	"to_string", "to_uppercase", "to_lowercase", "to_upper", "to_lower", "repeat", "replace", "join",
)

// ReturnsString returns true if a tail position produces an owned string.
func ReturnsString(body *ast.Expr) bool {
	return anyTail(body, func(e *ast.Expr) bool {
		return ExprIsString(e) && !IsStringLiteral(e)
	})
}

// ReturnsStringLiteral returns true if a tail position is textually a string
// literal, or a concatenation with a string literal operand.
func ReturnsStringLiteral(body *ast.Expr) bool {
	return anyTail(body, func(e *ast.Expr) bool {
		if IsStringLiteral(e) {
			return true
		}
		bin, ok := e.Kind.(*ast.Binary)
		return ok && bin.Op == ast.Add && (IsStringLiteral(bin.Left) || IsStringLiteral(bin.Right))
	})
}

// ReturnsObjectLiteral returns true if a tail position is an object literal.
func ReturnsObjectLiteral(body *ast.Expr) bool {
	return anyTail(body, func(e *ast.Expr) bool {
		_, ok := e.Kind.(*ast.ObjectLiteral)
		return ok
	})
}

// voidFunctions are the built-ins returning unit.
var voidFunctions = ordered.NewSet(
	"print", "println", "eprint", "eprintln", "dbg",
	"assert", "assert_eq", "assert_ne", "debug_assert", "debug_assert_eq", "debug_assert_ne",
	"panic", "exit", "sleep", "fs_write", "env_set_var", "env_remove_var",
)

// IsVoidFunctionCall returns true if e calls a built-in returning unit.
func IsVoidFunctionCall(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.Call:
		name, ok := identName(k.Func)
		return ok && voidFunctions.Contains(name)
	case *ast.Macro:
		return voidFunctions.Contains(k.Ident)
	case *ast.MacroInvocation:
		return voidFunctions.Contains(k.Ident)
	}
	return false
}

// IsVoidExpression returns true if e evaluates to unit.
func IsVoidExpression(e *ast.Expr) bool {
	if e == nil {
		return true
	}
	switch k := e.Kind.(type) {
	case *ast.Literal:
		return k.Lit == ast.UnitLit
	case *ast.Assign, *ast.CompoundAssign,
		*ast.While, *ast.WhileLet, *ast.For, *ast.Loop,
		*ast.Break, *ast.Continue, *ast.Return,
		*ast.Function, *ast.Struct, *ast.TupleStruct, *ast.Enum, *ast.Trait,
		*ast.Impl, *ast.Extension, *ast.Class, *ast.Actor, *ast.Effect,
		*ast.TypeAlias, *ast.Module, *ast.ModuleDeclaration,
		*ast.Import, *ast.ImportAll, *ast.ImportDefault,
		*ast.Export, *ast.ExportList, *ast.ExportDefault, *ast.ReExport,
		*ast.Throw:
		return true
	case *ast.Let:
		return k.Body == nil || IsUnitLiteral(k.Body) || IsVoidExpression(k.Body)
	case *ast.LetPattern:
		return k.Body == nil || IsUnitLiteral(k.Body) || IsVoidExpression(k.Body)
	case *ast.Block:
		if len(k.Exprs) == 0 {
			return true
		}
		return IsVoidExpression(k.Exprs[len(k.Exprs)-1])
	case *ast.If:
		return k.Else == nil || (IsVoidExpression(k.Then) && IsVoidExpression(k.Else))
	case *ast.IfLet:
		return k.Else == nil || (IsVoidExpression(k.Then) && IsVoidExpression(k.Else))
	case *ast.Match:
		for _, arm := range k.Arms {
			if !IsVoidExpression(arm.Body) {
				return false
			}
		}
		return len(k.Arms) > 0
	case *ast.Call, *ast.Macro, *ast.MacroInvocation:
		return IsVoidFunctionCall(e)
	case *ast.MethodCall:
		return voidMethods.Contains(k.Method)
	}
	return false
}

var voidMethods = ordered.NewSet("push", "push_str", "clear", "insert_at", "sort", "reverse", "extend", "append", "truncate")

// HasNonUnitExpression returns true if the body produces a value:
// a tail position that is not unit, or a return with a value.
func HasNonUnitExpression(body *ast.Expr) bool {
	return anyTail(body, func(e *ast.Expr) bool {
		return !IsVoidExpression(e)
	})
}

// IsNestedArrayParam returns true if name is indexed twice, as in name[i][j].
func IsNestedArrayParam(name string, body *ast.Expr) bool {
	return ast.Any(body, func(e *ast.Expr) bool {
		outer, ok := e.Kind.(*ast.IndexAccess)
		if !ok {
			return false
		}
		inner, ok := outer.Object.Kind.(*ast.IndexAccess)
		return ok && isIdent(inner.Object, name)
	})
}

// IsIndexedParam returns true if name is indexed, as in name[i].
func IsIndexedParam(name string, body *ast.Expr) bool {
	return ast.Any(body, func(e *ast.Expr) bool {
		idx, ok := e.Kind.(*ast.IndexAccess)
		return ok && isIdent(idx.Object, name)
	})
}

// ReferencesGlobals returns true if the body of a function references a
// name of globals that is not shadowed by a parameter or a local binding.
func ReferencesGlobals(fn *ast.Function, globals []string) bool {
	if len(globals) == 0 {
		return false
	}
	if fn.Body == nil {
		return false
	}
	var params []string
	for _, p := range fn.Params {
		params = append(params, p.Pattern.Bindings()...)
	}
	isGlobal := ordered.NewSet(globals...)
	for _, name := range exprdeps.Free(fn.Body, params...) {
		if isGlobal.Contains(name) {
			return true
		}
	}
	return false
}

// PatternNeedsSlice returns true if the pattern destructures a list with a
// rest pattern, which requires matching on a slice in the target language.
func PatternNeedsSlice(p *ast.Pattern) bool {
	if p == nil {
		return false
	}
	switch k := p.Kind.(type) {
	case *ast.ListPattern:
		for _, elt := range k.Elements {
			switch elt.Kind.(type) {
			case *ast.RestPattern, *ast.RestNamedPattern:
				return true
			}
			if PatternNeedsSlice(elt) {
				return true
			}
		}
	case *ast.TuplePattern:
		for _, elt := range k.Elements {
			if PatternNeedsSlice(elt) {
				return true
			}
		}
	case *ast.OrPattern:
		for _, alt := range k.Alternatives {
			if PatternNeedsSlice(alt) {
				return true
			}
		}
	case *ast.SomePattern:
		return PatternNeedsSlice(k.Inner)
	case *ast.OkPattern:
		return PatternNeedsSlice(k.Inner)
	case *ast.ErrPattern:
		return PatternNeedsSlice(k.Inner)
	}
	return false
}
