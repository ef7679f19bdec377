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

import "github.com/paiml/ruchy-sub001/build/ast"

// BodyNeedsStringConversion returns true if the tail of body may produce a
// borrowed string: a string literal, a bare identifier, an index access,
// a match with a string literal arm, or a block, let or if whose own tail
// needs a conversion.
func BodyNeedsStringConversion(body *ast.Expr) bool {
	if body == nil {
		return false
	}
	switch k := body.Kind.(type) {
	case *ast.Literal:
		return k.Lit == ast.StringLit
	case *ast.Identifier, *ast.IndexAccess:
		return true
	case *ast.Match:
		for _, arm := range k.Arms {
			if IsStringLiteral(arm.Body) {
				return true
			}
		}
	case *ast.Block:
		if len(k.Exprs) == 0 {
			return false
		}
		return BodyNeedsStringConversion(k.Exprs[len(k.Exprs)-1])
	case *ast.Let:
		return BodyNeedsStringConversion(k.Body)
	case *ast.If:
		return BodyNeedsStringConversion(k.Then) || BodyNeedsStringConversion(k.Else)
	}
	return false
}
