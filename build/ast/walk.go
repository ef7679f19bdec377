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

package ast

func appendNonNil(exprs []*Expr, more ...*Expr) []*Expr {
	for _, e := range more {
		if e != nil {
			exprs = append(exprs, e)
		}
	}
	return exprs
}

func paramDefaults(exprs []*Expr, params []Param) []*Expr {
	for _, p := range params {
		exprs = appendNonNil(exprs, p.Default)
	}
	return exprs
}

func methodBodies(exprs []*Expr, methods []Method) []*Expr {
	for _, m := range methods {
		exprs = paramDefaults(exprs, m.Params)
		exprs = appendNonNil(exprs, m.Body)
	}
	return exprs
}

func fieldDefaults(exprs []*Expr, fields []StructField) []*Expr {
	for _, f := range fields {
		exprs = appendNonNil(exprs, f.Default)
	}
	return exprs
}

// Children returns the direct sub-expressions of an expression,
// in evaluation order.
func Children(e *Expr) []*Expr {
	if e == nil {
		return nil
	}
	var cs []*Expr
	switch k := e.Kind.(type) {
	case *Literal, *Identifier, *QualifiedName, *Continue,
		*ModuleDeclaration, *Import, *ImportAll, *ImportDefault,
		*ExportList, *ReExport, *TypeAlias, *Command,
		*Struct, *TupleStruct, *Enum, *Effect:
	case *FieldAccess:
		cs = appendNonNil(cs, k.Object)
	case *IndexAccess:
		cs = appendNonNil(cs, k.Object, k.Index)
	case *Range:
		cs = appendNonNil(cs, k.Start, k.End)
	case *Binary:
		cs = appendNonNil(cs, k.Left, k.Right)
	case *Unary:
		cs = appendNonNil(cs, k.Operand)
	case *PreIncrement:
		cs = appendNonNil(cs, k.Target)
	case *PostIncrement:
		cs = appendNonNil(cs, k.Target)
	case *PreDecrement:
		cs = appendNonNil(cs, k.Target)
	case *PostDecrement:
		cs = appendNonNil(cs, k.Target)
	case *Assign:
		cs = appendNonNil(cs, k.Target, k.Value)
	case *CompoundAssign:
		cs = appendNonNil(cs, k.Target, k.Value)
	case *Call:
		cs = appendNonNil(cs, k.Func)
		cs = appendNonNil(cs, k.Args...)
	case *MethodCall:
		cs = appendNonNil(cs, k.Receiver)
		cs = appendNonNil(cs, k.Args...)
	case *OptionalMethodCall:
		cs = appendNonNil(cs, k.Receiver)
		cs = appendNonNil(cs, k.Args...)
	case *Let:
		cs = appendNonNil(cs, k.Value, k.Body, k.Else)
	case *LetPattern:
		cs = appendNonNil(cs, k.Value, k.Body, k.Else)
	case *Block:
		cs = appendNonNil(cs, k.Exprs...)
	case *If:
		cs = appendNonNil(cs, k.Cond, k.Then, k.Else)
	case *IfLet:
		cs = appendNonNil(cs, k.Value, k.Then, k.Else)
	case *Match:
		cs = appendNonNil(cs, k.Scrutinee)
		for _, arm := range k.Arms {
			cs = appendNonNil(cs, arm.Guard, arm.Body)
		}
	case *While:
		cs = appendNonNil(cs, k.Cond, k.Body)
	case *WhileLet:
		cs = appendNonNil(cs, k.Value, k.Body)
	case *For:
		cs = appendNonNil(cs, k.Iter, k.Body)
	case *Loop:
		cs = appendNonNil(cs, k.Body)
	case *Break:
		cs = appendNonNil(cs, k.Value)
	case *Return:
		cs = appendNonNil(cs, k.Value)
	case *Function:
		cs = paramDefaults(cs, k.Params)
		cs = appendNonNil(cs, k.Body)
	case *Lambda:
		cs = paramDefaults(cs, k.Params)
		cs = appendNonNil(cs, k.Body)
	case *AsyncLambda:
		cs = paramDefaults(cs, k.Params)
		cs = appendNonNil(cs, k.Body)
	case *Trait:
		cs = methodBodies(cs, k.Methods)
	case *Impl:
		cs = methodBodies(cs, k.Methods)
	case *Extension:
		cs = methodBodies(cs, k.Methods)
	case *Class:
		cs = fieldDefaults(cs, k.Fields)
		for _, ctor := range k.Constructors {
			cs = paramDefaults(cs, ctor.Params)
			cs = appendNonNil(cs, ctor.Body)
		}
		cs = methodBodies(cs, k.Methods)
	case *Actor:
		cs = fieldDefaults(cs, k.State)
		for _, h := range k.Handlers {
			cs = appendNonNil(cs, h.Body)
		}
	case *Handle:
		cs = appendNonNil(cs, k.Expr)
		for _, h := range k.Handlers {
			cs = appendNonNil(cs, h.Body)
		}
	case *List:
		cs = appendNonNil(cs, k.Elements...)
	case *Set:
		cs = appendNonNil(cs, k.Elements...)
	case *Tuple:
		cs = appendNonNil(cs, k.Elements...)
	case *ObjectLiteral:
		for _, f := range k.Fields {
			cs = appendNonNil(cs, f.Value)
		}
	case *StructLiteral:
		for _, f := range k.Fields {
			cs = appendNonNil(cs, f.Value)
		}
		cs = appendNonNil(cs, k.Base)
	case *VecRepeat:
		cs = appendNonNil(cs, k.Value, k.Count)
	case *DataFrame:
		for _, col := range k.Columns {
			cs = appendNonNil(cs, col.Values...)
		}
	case *DataFrameOperation:
		cs = appendNonNil(cs, k.Source)
		cs = appendNonNil(cs, k.Args...)
	case *StringInterpolation:
		for _, part := range k.Parts {
			cs = appendNonNil(cs, part.Expr)
		}
	case *Spread:
		cs = appendNonNil(cs, k.Expr)
	case *Pipeline:
		cs = appendNonNil(cs, k.Expr)
		cs = appendNonNil(cs, k.Stages...)
	case *Send:
		cs = appendNonNil(cs, k.Actor, k.Message)
	case *Ask:
		cs = appendNonNil(cs, k.Actor, k.Message, k.Timeout)
	case *ActorSend:
		cs = appendNonNil(cs, k.Actor, k.Message)
	case *ActorQuery:
		cs = appendNonNil(cs, k.Actor, k.Message)
	case *Macro:
		cs = appendNonNil(cs, k.Args...)
	case *MacroInvocation:
		cs = appendNonNil(cs, k.Args...)
	case *Module:
		cs = appendNonNil(cs, k.Body)
	case *Export:
		cs = appendNonNil(cs, k.Expr)
	case *ExportDefault:
		cs = appendNonNil(cs, k.Expr)
	case *Await:
		cs = appendNonNil(cs, k.Expr)
	case *Lazy:
		cs = appendNonNil(cs, k.Expr)
	case *Throw:
		cs = appendNonNil(cs, k.Expr)
	case *Try:
		cs = appendNonNil(cs, k.Expr)
	case *TryCatch:
		cs = appendNonNil(cs, k.Try)
		for _, c := range k.Catches {
			cs = appendNonNil(cs, c.Body)
		}
		cs = appendNonNil(cs, k.Finally)
	}
	return cs
}

// Inspect traverses an expression tree in depth-first order.
// If f returns false, the children of the node are not visited.
func Inspect(e *Expr, f func(*Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, c := range Children(e) {
		Inspect(c, f)
	}
}

// Any returns true if f returns true for at least one node of the tree.
func Any(e *Expr, f func(*Expr) bool) bool {
	found := false
	Inspect(e, func(n *Expr) bool {
		if found {
			return false
		}
		if f(n) {
			found = true
			return false
		}
		return true
	})
	return found
}
