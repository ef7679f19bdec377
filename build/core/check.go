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

// IsClosed returns true if every variable of the term references a binder
// of the term.
func IsClosed(t Term) bool {
	return closedAt(t, 0)
}

func closedAt(t Term, depth int) bool {
	switch tT := t.(type) {
	case *Var:
		return tT.Index >= 0 && tT.Index < depth
	case *Lambda:
		return closedAt(tT.Body, depth+1)
	case *App:
		return closedAt(tT.Func, depth) && closedAt(tT.Arg, depth)
	case *Let:
		valDepth := depth
		if tT.Rec {
			valDepth++
		}
		return closedAt(tT.Value, valDepth) && closedAt(tT.Body, depth+1)
	case *Literal:
		return true
	case *Prim:
		for _, arg := range tT.Args {
			if !closedAt(arg, depth) {
				return false
			}
		}
		return true
	}
	return false
}

// IsNormalized returns true if the term and all its subterms are
// well-formed core terms: no nil subterm, primitives applied to the number
// of arguments they expect.
func IsNormalized(t Term) bool {
	switch tT := t.(type) {
	case *Var:
		return tT != nil
	case *Lambda:
		return tT != nil && IsNormalized(tT.Body)
	case *App:
		return tT != nil && IsNormalized(tT.Func) && IsNormalized(tT.Arg)
	case *Let:
		return tT != nil && IsNormalized(tT.Value) && IsNormalized(tT.Body)
	case *Literal:
		return tT != nil
	case *Prim:
		if tT == nil {
			return false
		}
		if arity := tT.Op.Arity(); arity >= 0 && arity != len(tT.Args) {
			return false
		}
		for _, arg := range tT.Args {
			if !IsNormalized(arg) {
				return false
			}
		}
		return true
	}
	return false
}

// Size returns the number of nodes of a term.
func Size(t Term) int {
	switch tT := t.(type) {
	case *Lambda:
		return 1 + Size(tT.Body)
	case *App:
		return 1 + Size(tT.Func) + Size(tT.Arg)
	case *Let:
		return 1 + Size(tT.Value) + Size(tT.Body)
	case *Prim:
		size := 1
		for _, arg := range tT.Args {
			size += Size(arg)
		}
		return size
	}
	return 1
}
