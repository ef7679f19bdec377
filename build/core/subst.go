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

// Shift adds d to the index of every variable of t at or above cutoff.
func Shift(t Term, d, cutoff int) Term {
	if d == 0 {
		return t
	}
	switch tT := t.(type) {
	case *Var:
		if tT.Index < cutoff {
			return tT
		}
		return &Var{Index: tT.Index + d}
	case *Lambda:
		return &Lambda{Name: tT.Name, Body: Shift(tT.Body, d, cutoff+1)}
	case *App:
		return &App{Func: Shift(tT.Func, d, cutoff), Arg: Shift(tT.Arg, d, cutoff)}
	case *Let:
		valCutoff := cutoff
		if tT.Rec {
			valCutoff++
		}
		return &Let{
			Name:  tT.Name,
			Value: Shift(tT.Value, d, valCutoff),
			Body:  Shift(tT.Body, d, cutoff+1),
			Rec:   tT.Rec,
		}
	case *Prim:
		return &Prim{Op: tT.Op, Args: mapArgs(tT.Args, func(arg Term) Term {
			return Shift(arg, d, cutoff)
		})}
	}
	return t
}

// Subst replaces the variable of index j in t by s.
func Subst(t Term, j int, s Term) Term {
	switch tT := t.(type) {
	case *Var:
		if tT.Index == j {
			return s
		}
		return tT
	case *Lambda:
		return &Lambda{Name: tT.Name, Body: Subst(tT.Body, j+1, Shift(s, 1, 0))}
	case *App:
		return &App{Func: Subst(tT.Func, j, s), Arg: Subst(tT.Arg, j, s)}
	case *Let:
		value := tT.Value
		if tT.Rec {
			value = Subst(value, j+1, Shift(s, 1, 0))
		} else {
			value = Subst(value, j, s)
		}
		return &Let{
			Name:  tT.Name,
			Value: value,
			Body:  Subst(tT.Body, j+1, Shift(s, 1, 0)),
			Rec:   tT.Rec,
		}
	case *Prim:
		return &Prim{Op: tT.Op, Args: mapArgs(tT.Args, func(arg Term) Term {
			return Subst(arg, j, s)
		})}
	}
	return t
}

// Beta reduces the application of λ.body to arg.
func Beta(body, arg Term) Term {
	return Shift(Subst(body, 0, Shift(arg, 1, 0)), -1, 0)
}

// References returns true if the variable of index j appears in t.
func References(t Term, j int) bool {
	switch tT := t.(type) {
	case *Var:
		return tT.Index == j
	case *Lambda:
		return References(tT.Body, j+1)
	case *App:
		return References(tT.Func, j) || References(tT.Arg, j)
	case *Let:
		valJ := j
		if tT.Rec {
			valJ++
		}
		return References(tT.Value, valJ) || References(tT.Body, j+1)
	case *Prim:
		for _, arg := range tT.Args {
			if References(arg, j) {
				return true
			}
		}
	}
	return false
}

func mapArgs(args []Term, f func(Term) Term) []Term {
	out := make([]Term, len(args))
	for i, arg := range args {
		out[i] = f(arg)
	}
	return out
}
