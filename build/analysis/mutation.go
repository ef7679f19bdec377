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
	"github.com/paiml/ruchy-sub001/base/ordered"
	"github.com/paiml/ruchy-sub001/build/ast"
)

// mutationTarget returns the expression mutated by e, if any.
func mutationTarget(e *ast.Expr) *ast.Expr {
	switch k := e.Kind.(type) {
	case *ast.Assign:
		return k.Target
	case *ast.CompoundAssign:
		return k.Target
	case *ast.PreIncrement:
		return k.Target
	case *ast.PostIncrement:
		return k.Target
	case *ast.PreDecrement:
		return k.Target
	case *ast.PostDecrement:
		return k.Target
	}
	return nil
}

// rootName returns the variable at the root of an lvalue such as
// v, v.field or v[i].
func rootName(e *ast.Expr) (string, bool) {
	for e != nil {
		switch k := e.Kind.(type) {
		case *ast.Identifier:
			return k.Ident, true
		case *ast.FieldAccess:
			e = k.Object
		case *ast.IndexAccess:
			e = k.Object
		default:
			return "", false
		}
	}
	return "", false
}

// IsVariableMutated returns true if name is the target of an assignment,
// a compound assignment, an increment or a decrement anywhere in e.
func IsVariableMutated(name string, e *ast.Expr) bool {
	return ast.Any(e, func(n *ast.Expr) bool {
		return isIdent(mutationTarget(n), name)
	})
}

// IsVariableModified extends IsVariableMutated with assignments through a
// field or an index, and calls of mutating collection methods.
func IsVariableModified(name string, e *ast.Expr) bool {
	return ast.Any(e, func(n *ast.Expr) bool {
		if target := mutationTarget(n); target != nil {
			root, ok := rootName(target)
			return ok && root == name
		}
		call, ok := n.Kind.(*ast.MethodCall)
		return ok && isIdent(call.Receiver, name) && mutatingMethods.Contains(call.Method)
	})
}

var mutatingMethods = ordered.NewSet(
	"push", "push_str", "pop", "insert", "remove", "clear", "append", "extend",
	"sort", "reverse", "truncate", "retain", "dedup", "drain", "add", "update",
)

// MutatedVars returns the names of all variables modified in e, in order
// of first modification.
func MutatedVars(e *ast.Expr) []string {
	vars := ordered.NewSet[string]()
	ast.Inspect(e, func(n *ast.Expr) bool {
		if target := mutationTarget(n); target != nil {
			if root, ok := rootName(target); ok {
				vars.Add(root)
			}
			return true
		}
		if call, ok := n.Kind.(*ast.MethodCall); ok && mutatingMethods.Contains(call.Method) {
			if name, ok := identName(call.Receiver); ok {
				vars.Add(name)
			}
		}
		return true
	})
	return vars.Slice()
}
