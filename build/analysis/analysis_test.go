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

package analysis_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
)

func typeString(t *ast.Type) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}

func TestIsVariableMutated(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.Expr
		want bool
	}{
		{
			name: "compound assignment",
			expr: Block(LetMut("x", Int(5), Unit()), CompoundAssign(Ident("x"), ast.Add, Int(10)), Ident("x")),
			want: true,
		},
		{
			name: "assignment in a loop",
			expr: ast.New(&ast.While{Cond: Bool(true), Body: Block(Assign(Ident("x"), Int(1)))}),
			want: true,
		},
		{
			name: "increment in a call argument",
			expr: CallName("f", ast.New(&ast.PostIncrement{Target: Ident("x")})),
			want: true,
		},
		{
			name: "read only",
			expr: Add(Ident("x"), Int(1)),
			want: false,
		},
		{
			name: "other variable",
			expr: Assign(Ident("y"), Ident("x")),
			want: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := analysis.IsVariableMutated("x", test.expr); got != test.want {
				t.Errorf("got %v but want %v", got, test.want)
			}
		})
	}
}

func TestMutatedVars(t *testing.T) {
	body := Block(
		Assign(Index(Ident("grid"), Int(0)), Int(1)),
		Method(Ident("items"), "push", Int(2)),
		CompoundAssign(Ident("total"), ast.Add, Int(3)),
		Method(Ident("items"), "len"),
	)
	want := []string{"grid", "items", "total"}
	if diff := cmp.Diff(analysis.MutatedVars(body), want); diff != "" {
		t.Errorf("unexpected mutated variables:\n%s", diff)
	}
}

func TestInferParamType(t *testing.T) {
	tests := []struct {
		name string
		body *ast.Expr
		want string
	}{
		{
			name: "arithmetic",
			body: Add(Ident("x"), Ident("y")),
			want: "i32",
		},
		{
			name: "string concatenation",
			body: Add(Str("Hello "), Ident("x")),
			want: "&str",
		},
		{
			name: "string method",
			body: Method(Ident("x"), "to_upper"),
			want: "&str",
		},
		{
			name: "called",
			body: CallName("x", Int(1), Int(2)),
			want: "fn(i32, i32) -> i32",
		},
		{
			name: "nested index",
			body: Index(Index(Ident("x"), Int(0)), Int(1)),
			want: "Vec<Vec<i32>>",
		},
		{
			name: "index",
			body: Index(Ident("x"), Int(0)),
			want: "Vec<i32>",
		},
		{
			name: "arithmetic then returned",
			body: Block(CompoundAssign(Ident("x"), ast.Add, Int(1)), Ident("x")),
			want: "i32",
		},
		{
			name: "arithmetic and early return",
			body: Block(If(Bool(true), Block(Return(Ident("x"))), nil), Bin(ast.Multiply, Ident("x"), Int(2))),
			want: "i32",
		},
		{
			name: "only returned",
			body: Block(Ident("x")),
			want: "<none>",
		},
		{
			name: "mixed use",
			body: Block(Add(Ident("x"), Int(1)), CallName("show", Ident("x"))),
			want: "<none>",
		},
		{
			name: "unused",
			body: Int(0),
			want: "<none>",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := typeString(analysis.InferParamType("x", test.body)); got != test.want {
				t.Errorf("got %s but want %s", got, test.want)
			}
		})
	}
}

func TestInferReturnType(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		body *ast.Expr
		want string
	}{
		{
			name: "closure",
			fn:   "make_adder",
			body: Lambda(Params("y"), Add(Ident("y"), Int(1))),
			want: "fn(i32) -> i32",
		},
		{
			name: "numeric name",
			fn:   "add_one",
			body: CallName("println", Str("x")),
			want: "i32",
		},
		{
			name: "string literal",
			fn:   "greet",
			body: Add(Str("Hello "), Ident("name")),
			want: "&str",
		},
		{
			name: "string literal in a branch",
			fn:   "label",
			body: If(Ident("c"), Str("yes"), Str("no")),
			want: "&str",
		},
		{
			name: "boolean",
			fn:   "is_big",
			body: Bin(ast.Greater, Ident("n"), Int(10)),
			want: "bool",
		},
		{
			name: "vector",
			fn:   "items",
			body: List(Int(1), Int(2)),
			want: "Vec<i32>",
		},
		{
			name: "non unit",
			fn:   "value",
			body: Block(LetStmt("a", Int(1)), Ident("a")),
			want: "i32",
		},
		{
			name: "unit",
			fn:   "show",
			body: Block(CallName("println", Str("hi"))),
			want: "<none>",
		},
		{
			name: "explicit return",
			fn:   "pick",
			body: Block(If(Ident("c"), Return(Int(1)), nil), Int(2)),
			want: "i32",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := analysis.InferReturnType(analysis.ReturnTypeInput{Name: test.fn, Body: test.body})
			if typeString(got) != test.want {
				t.Errorf("got %s but want %s", typeString(got), test.want)
			}
		})
	}
}

func TestNeedsLifetimeParameter(t *testing.T) {
	str := analysis.StrRef()
	tests := []struct {
		params []*ast.Type
		ret    *ast.Type
		want   bool
	}{
		{params: []*ast.Type{str, str}, ret: str, want: true},
		{params: []*ast.Type{str}, ret: str, want: false},
		{params: []*ast.Type{str, str}, ret: Named("i32"), want: false},
		{params: []*ast.Type{str, Named("i32"), str}, ret: str, want: true},
		{params: []*ast.Type{str, str}, ret: nil, want: false},
	}
	for i, test := range tests {
		if got := analysis.NeedsLifetimeParameter(test.params, test.ret); got != test.want {
			t.Errorf("test %d: got %v but want %v", i, got, test.want)
		}
	}
	if got := analysis.WithLifetime(str, "a").String(); got != "&'a str" {
		t.Errorf("got %s but want &'a str", got)
	}
}

func TestBodyNeedsStringConversion(t *testing.T) {
	tests := []struct {
		body *ast.Expr
		want bool
	}{
		{body: Str("a"), want: true},
		{body: Ident("s"), want: true},
		{body: Index(Ident("names"), Int(0)), want: true},
		{body: Match(Ident("x"), Arm(PWild(), nil, Str("a"))), want: true},
		{body: Block(LetStmt("a", Int(1)), Str("x")), want: true},
		{body: Let("a", Int(1), Str("x")), want: true},
		{body: Int(1), want: false},
		{body: Method(Ident("s"), "to_string"), want: false},
		{body: Block(), want: false},
	}
	for i, test := range tests {
		if got := analysis.BodyNeedsStringConversion(test.body); got != test.want {
			t.Errorf("test %d: got %v but want %v", i, got, test.want)
		}
	}
}

func TestPredicates(t *testing.T) {
	if !analysis.LooksLikeNumericFunction("sqrt") || !analysis.LooksLikeNumericFunction("add_one") {
		t.Errorf("numeric names not recognized")
	}
	if analysis.LooksLikeNumericFunction("greet") || analysis.LooksLikeNumericFunction("address") {
		t.Errorf("non-numeric names recognized as numeric")
	}
	if !analysis.IsVoidExpression(CallName("println", Str("x"))) {
		t.Errorf("println should be void")
	}
	if analysis.IsVoidExpression(Add(Int(1), Int(2))) {
		t.Errorf("1 + 2 should not be void")
	}
	if !analysis.IsNestedArrayParam("m", Index(Index(Ident("m"), Ident("i")), Ident("j"))) {
		t.Errorf("m[i][j] not recognized as a nested array access")
	}
	rest := P(&ast.ListPattern{Elements: []*ast.Pattern{PIdent("head"), P(&ast.RestPattern{})}})
	if !analysis.PatternNeedsSlice(rest) {
		t.Errorf("[head, ..] should need a slice")
	}
	if !analysis.ValueCreatesVec(Call(Qualified("Vec", "new"))) {
		t.Errorf("Vec::new() should create a vector")
	}
	fn := &ast.Function{Ident: "bump", Params: Params("x"), Body: Add(Ident("x"), Ident("counter"))}
	if !analysis.ReferencesGlobals(fn, []string{"counter"}) {
		t.Errorf("bump references the global counter")
	}
	if analysis.ReferencesGlobals(fn, []string{"x"}) {
		t.Errorf("x is shadowed by a parameter")
	}
}
