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

// Package core defines a small lambda calculus with primitives and
// De Bruijn indices, and the normalization of surface ASTs into it.
//
// Terms are immutable once built. Passes over the calculus build new
// terms and share unchanged subterms.
package core

type (
	// Term of the calculus.
	Term interface {
		String() string
		term()
	}

	// Var references a binder by its distance: #0 is the innermost binder.
	Var struct {
		Index int
	}

	// Lambda abstracts a single parameter. Name is kept for printing only.
	Lambda struct {
		Name string
		Body Term
	}

	// App applies a function to a single argument.
	App struct {
		Func Term
		Arg  Term
	}

	// Let binds Value in Body. When Rec is set, the binder is also in
	// scope in Value (recursive functions).
	Let struct {
		Name  string
		Value Term
		Body  Term
		Rec   bool
	}

	// Literal value.
	Literal struct {
		Kind  LitKind
		Int   int64
		Float float64
		Str   string
		Bool  bool
		Char  rune
	}

	// Prim applies a primitive operator to its arguments.
	Prim struct {
		Op   PrimOp
		Args []Term
	}
)

func (*Var) term()     {}
func (*Lambda) term()  {}
func (*App) term()     {}
func (*Let) term()     {}
func (*Literal) term() {}
func (*Prim) term()    {}

// LitKind is the kind of a literal.
type LitKind int

// Literal kinds.
const (
	UnitLit LitKind = iota
	IntLit
	FloatLit
	StringLit
	BoolLit
	CharLit
)

// PrimOp is a primitive operator.
type PrimOp int

// Primitive operators.
const (
	Add PrimOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	NullCoalesce
	Neg
	Not
	// If takes a condition, a then branch and an else branch.
	If
	// ArrayNew builds an array from any number of elements.
	ArrayNew
)

var primNames = []string{
	Add:          "add",
	Sub:          "sub",
	Mul:          "mul",
	Div:          "div",
	Mod:          "mod",
	Pow:          "pow",
	Eq:           "eq",
	Ne:           "ne",
	Lt:           "lt",
	Le:           "le",
	Gt:           "gt",
	Ge:           "ge",
	And:          "and",
	Or:           "or",
	NullCoalesce: "coalesce",
	Neg:          "neg",
	Not:          "not",
	If:           "if",
	ArrayNew:     "array",
}

func (op PrimOp) String() string {
	if int(op) < 0 || int(op) >= len(primNames) {
		return "prim?"
	}
	return primNames[op]
}

// Arity returns the number of arguments of the operator,
// or -1 if the operator is variadic.
func (op PrimOp) Arity() int {
	switch op {
	case Neg, Not:
		return 1
	case If:
		return 3
	case ArrayNew:
		return -1
	}
	return 2
}

// Unit returns the unit literal.
func Unit() *Literal {
	return &Literal{Kind: UnitLit}
}

// IsUnit returns true if the term is the unit literal.
func IsUnit(t Term) bool {
	lit, ok := t.(*Literal)
	return ok && lit.Kind == UnitLit
}
