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

package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
	"github.com/paiml/ruchy-sub001/build/core"
	"github.com/paiml/ruchy-sub001/build/fmterr"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.Expr
		want string
	}{
		{
			name: "literal",
			expr: Int(42),
			want: "42",
		},
		{
			name: "byte",
			expr: ast.New(&ast.Literal{Lit: ast.ByteLit, Byte: 7}),
			want: "7",
		},
		{
			name: "arithmetic",
			expr: Bin(ast.Multiply, Add(Int(1), Int(2)), Int(3)),
			want: "mul(add(1, 2), 3)",
		},
		{
			name: "let",
			expr: Let("x", Int(1), Add(Ident("x"), Ident("x"))),
			want: "let x = 1 in add(#0, #0)",
		},
		{
			name: "curried lambda",
			expr: Lambda(Params("x", "y", "z"), Ident("x")),
			want: "λx. λy. λz. #2",
		},
		{
			name: "nullary lambda",
			expr: Lambda(nil, Int(1)),
			want: "λ_. 1",
		},
		{
			name: "call",
			expr: Let("f", Lambda(Params("a", "b"), Ident("b")), CallName("f", Int(1), Int(2))),
			want: "let f = λa. λb. #0 in ((#0 1) 2)",
		},
		{
			name: "if without else",
			expr: If(Bool(true), Int(1), nil),
			want: "if(true, 1, ())",
		},
		{
			name: "list",
			expr: List(Int(1), Str("a")),
			want: `array(1, "a")`,
		},
		{
			name: "top-level function",
			expr: Func("id", Params("x"), nil, Ident("x")),
			want: "let rec id = λx. #0 in ()",
		},
		{
			name: "function then call in a block",
			expr: Block(
				Func("add_one", Params("x"), nil, Add(Ident("x"), Int(1))),
				CallName("add_one", Int(5)),
			),
			want: "let rec add_one = λx. add(#0, 1) in (#0 5)",
		},
		{
			name: "recursive function",
			expr: Func("loop", Params("n"), nil, CallName("loop", Ident("n"))),
			want: "let rec loop = λn. (#1 #0) in ()",
		},
		{
			name: "block drops intermediates",
			expr: Block(LetStmt("a", Int(1)), Int(99), Ident("a")),
			want: "let a = 1 in #0",
		},
		{
			name: "empty block",
			expr: Block(),
			want: "()",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := core.Normalize(test.expr)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != test.want {
				t.Errorf("got %s but want %s", got.String(), test.want)
			}
			if !core.IsClosed(got) {
				t.Errorf("%s is not closed", got.String())
			}
			if !core.IsNormalized(got) {
				t.Errorf("%s is not normalized", got.String())
			}
			again, err := core.Normalize(test.expr)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("normalization is not deterministic:\n%s", diff)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		expr *ast.Expr
		kind fmterr.Kind
	}{
		{expr: Ident("nope"), kind: fmterr.FreeVariable},
		{expr: Bin(ast.BitwiseAnd, Int(1), Int(2)), kind: fmterr.Unsupported},
		{expr: Bin(ast.LeftShift, Int(1), Int(2)), kind: fmterr.Unsupported},
		{expr: Bin(ast.SendOp, Int(1), Int(2)), kind: fmterr.Unsupported},
		{expr: Bin(ast.In, Int(1), List()), kind: fmterr.Unsupported},
		{expr: Method(Int(1), "abs"), kind: fmterr.Unsupported},
		{expr: Lambda([]ast.Param{{Pattern: P(&ast.TuplePattern{})}}, Int(1)), kind: fmterr.MalformedInput},
	}
	for i, test := range tests {
		_, err := core.Normalize(test.expr)
		if err == nil {
			t.Errorf("test %d: expected an error", i)
			continue
		}
		if got := fmterr.KindOf(err); got != test.kind {
			t.Errorf("test %d: got error kind %v but want %v: %v", i, got, test.kind, err)
		}
	}
}

func TestIsClosed(t *testing.T) {
	tests := []struct {
		term core.Term
		want bool
	}{
		{term: &core.Var{Index: 0}, want: false},
		{term: &core.Lambda{Name: "x", Body: &core.Var{Index: 0}}, want: true},
		{term: &core.Lambda{Name: "x", Body: &core.Var{Index: 1}}, want: false},
		{term: &core.Let{Name: "f", Value: &core.Var{Index: 0}, Body: core.Unit(), Rec: true}, want: true},
		{term: &core.Let{Name: "f", Value: &core.Var{Index: 0}, Body: core.Unit()}, want: false},
	}
	for i, test := range tests {
		if got := core.IsClosed(test.term); got != test.want {
			t.Errorf("test %d: IsClosed(%s) = %v but want %v", i, test.term, got, test.want)
		}
	}
}

func TestIsNormalized(t *testing.T) {
	bad := &core.Prim{Op: core.If, Args: []core.Term{core.Unit()}}
	if core.IsNormalized(bad) {
		t.Errorf("%s should not be normalized", bad)
	}
}

func TestBeta(t *testing.T) {
	// (λx. λy. x) applied to a free variable #3 gives λy. #4.
	body := &core.Lambda{Name: "y", Body: &core.Var{Index: 1}}
	got := core.Beta(body, &core.Var{Index: 3})
	want := &core.Lambda{Name: "y", Body: &core.Var{Index: 4}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("unexpected beta reduction:\n%s", diff)
	}
}
