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

package optimizer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
	"github.com/paiml/ruchy-sub001/build/core"
	"github.com/paiml/ruchy-sub001/build/optimizer"
)

func addOne() *ast.Expr {
	return Func("add_one", Params("x"), nil, Add(Ident("x"), Int(1)))
}

func TestInline(t *testing.T) {
	big := make([]*ast.Expr, optimizer.MaxInlineSize+1)
	for i := range big {
		big[i] = CallName("println", Ident("x"))
	}
	tests := []struct {
		name string
		src  *ast.Expr
		want *ast.Expr
	}{
		{
			name: "call replaced by body",
			src:  Block(addOne(), CallName("add_one", Int(5))),
			want: Block(addOne(), Add(Int(5), Int(1))),
		},
		{
			name: "nested calls",
			src:  Block(addOne(), CallName("add_one", CallName("add_one", Int(1)))),
			want: Block(addOne(), Add(Add(Int(1), Int(1)), Int(1))),
		},
		{
			name: "inlined body is re-processed",
			src: Block(
				addOne(),
				Func("add_two", Params("y"), nil, Block(CallName("add_one", CallName("add_one", Ident("y"))))),
				CallName("add_two", Int(3)),
			),
			want: Block(
				addOne(),
				Func("add_two", Params("y"), nil, Block(Add(Add(Ident("y"), Int(1)), Int(1)))),
				Add(Add(Int(3), Int(1)), Int(1)),
			),
		},
		{
			name: "recursive function",
			src: Block(
				Func("loop", Params("n"), nil, CallName("loop", Ident("n"))),
				CallName("loop", Int(1)),
			),
			want: Block(
				Func("loop", Params("n"), nil, CallName("loop", Ident("n"))),
				CallName("loop", Int(1)),
			),
		},
		{
			name: "large function",
			src:  Block(Func("noisy", Params("x"), nil, Block(big...)), CallName("noisy", Int(1))),
			want: Block(Func("noisy", Params("x"), nil, Block(big...)), CallName("noisy", Int(1))),
		},
		{
			name: "arity mismatch",
			src:  Block(addOne(), CallName("add_one", Int(1), Int(2))),
			want: Block(addOne(), CallName("add_one", Int(1), Int(2))),
		},
		{
			name: "shadowed parameter",
			src: Block(
				Func("f", Params("x"), nil, Let("x", Int(2), Ident("x"))),
				CallName("f", Int(7)),
			),
			want: Block(
				Func("f", Params("x"), nil, Let("x", Int(2), Ident("x"))),
				Let("x", Int(2), Ident("x")),
			),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := optimizer.Inline(test.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, test.want); diff != "" {
				t.Errorf("unexpected inlining:\n%s", diff)
			}
			again, err := optimizer.Inline(got)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(again, got); diff != "" {
				t.Errorf("inlining is not idempotent:\n%s", diff)
			}
		})
	}
}

func TestInlineMutualRecursionTerminates(t *testing.T) {
	src := Block(
		Func("ping", Params("n"), nil, CallName("pong", Ident("n"))),
		Func("pong", Params("n"), nil, CallName("ping", Ident("n"))),
		CallName("ping", Int(1)),
	)
	got, err := optimizer.Inline(src)
	if err != nil {
		t.Fatal(err)
	}
	last := got.Kind.(*ast.Block).Exprs[2]
	if diff := cmp.Diff(last, CallName("ping", Int(1))); diff != "" {
		t.Errorf("unexpected call after inlining:\n%s", diff)
	}
}

func TestBodySize(t *testing.T) {
	tests := []struct {
		body *ast.Expr
		want int
	}{
		{body: Add(Ident("x"), Int(1)), want: 1},
		{body: Block(Int(1), Int(2), Int(3)), want: 3},
		{body: Block(LetStmt("a", Int(1)), Ident("a")), want: 2},
		{body: If(Bool(true), Block(Int(1), Int(2)), Int(3)), want: 4},
	}
	for i, test := range tests {
		if got := optimizer.BodySize(test.body); got != test.want {
			t.Errorf("test %d: got size %d but want %d", i, got, test.want)
		}
	}
}

func TestOptimize(t *testing.T) {
	tests := []struct {
		name string
		src  *ast.Expr
		want string
	}{
		{
			name: "inline let-bound lambda",
			src:  Let("inc", Lambda(Params("x"), Add(Ident("x"), Int(1))), CallName("inc", Int(5))),
			want: "let inc = λx. add(#0, 1) in add(5, 1)",
		},
		{
			name: "curried application",
			src:  Let("k", Lambda(Params("a", "b"), Ident("a")), CallName("k", Int(1), Int(2))),
			want: "let k = λa. λb. #1 in 1",
		},
		{
			name: "function declaration inlined",
			src: Block(
				Func("add_one", Params("x"), nil, Add(Ident("x"), Int(1))),
				CallName("add_one", Int(5)),
			),
			want: "let rec add_one = λx. add(#0, 1) in add(5, 1)",
		},
		{
			name: "function using outer binding inlined",
			src: Let("k", Int(2), Block(
				Func("scale", Params("x"), nil, Bin(ast.Multiply, Ident("x"), Ident("k"))),
				CallName("scale", Int(5)),
			)),
			want: "let k = 2 in let rec scale = λx. mul(#0, #2) in mul(5, #1)",
		},
		{
			name: "recursive function kept",
			src: Block(
				Func("spin", Params("x"), nil, CallName("spin", Ident("x"))),
				CallName("spin", Int(1)),
			),
			want: "let rec spin = λx. (#1 #0) in (#0 1)",
		},
		{
			name: "no redex",
			src:  Add(Int(1), Int(2)),
			want: "add(1, 2)",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			term, err := core.Normalize(test.src)
			if err != nil {
				t.Fatal(err)
			}
			got := optimizer.Optimize(term)
			if got.String() != test.want {
				t.Errorf("got %s but want %s", got, test.want)
			}
			if !core.IsClosed(got) {
				t.Errorf("%s is not closed", got)
			}
			if diff := cmp.Diff(optimizer.Optimize(got), got); diff != "" {
				t.Errorf("optimization is not idempotent:\n%s", diff)
			}
		})
	}
}
