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

package lower_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/paiml/ruchy-sub001/build/lower"
	"github.com/paiml/ruchy-sub001/build/target"
)

func transpile(t *testing.T, e *ast.Expr) string {
	t.Helper()
	s, err := lower.New(lower.Config{}).Transpile(e)
	if err != nil {
		t.Fatalf("cannot lower %s: %+v", e, err)
	}
	return s.String()
}

func dataFrameBuilder() *ast.Expr {
	df := Call(Qualified("DataFrame", "new"))
	df = Method(df, "column", Str("a"), List(Int(1), Int(2)))
	df = Method(df, "column", Str("b"), List(Int(3), Int(4)))
	return Method(df, "build")
}

func TestTranspile(t *testing.T) {
	strRef := Ref(Named("str"))
	tests := []struct {
		name string
		expr *ast.Expr
		want []string
	}{
		{
			name: "parameter and return types inferred from arithmetic",
			expr: Func("add", Params("x", "y"), nil, Block(Add(Ident("x"), Ident("y")))),
			want: []string{"pub fn add(x: i32, y: i32) -> i32", "x + y"},
		},
		{
			name: "mutated parameter returned",
			expr: Func("inc", Params("x"), nil, Block(CompoundAssign(Ident("x"), ast.Add, Int(1)), Ident("x"))),
			want: []string{"pub fn inc(mut x: i32) -> i32", "x += 1;"},
		},
		{
			name: "mutation inferred from compound assignment",
			expr: Block(LetMut("x", Int(5), Unit()), CompoundAssign(Ident("x"), ast.Add, Int(10)), Ident("x")),
			want: []string{"let mut x = 5;", "x += 10;"},
		},
		{
			name: "dataframe builder",
			expr: dataFrameBuilder(),
			want: []string{`DataFrame::new(vec![Series::new("a", &[1, 2]), Series::new("b", &[3, 4])])?`},
		},
		{
			name: "simd bridge",
			expr: CallName("trueno_dot", List(Float(1), Float(2)), List(Float(4), Float(5))),
			want: []string{"trueno_bridge::dot(&"},
		},
		{
			name: "lifetime shared by two borrowed parameters",
			expr: Func("pick", []ast.Param{TypedParam("a", strRef), TypedParam("b", strRef)}, strRef, Block(Ident("a"))),
			want: []string{"fn pick<'a>(a: &'a str, b: &'a str) -> &'a str"},
		},
		{
			name: "no lifetime for a single borrowed parameter",
			expr: Func("first", []ast.Param{TypedParam("a", strRef)}, strRef, Block(Ident("a"))),
			want: []string{"fn first(a: &str) -> &str"},
		},
		{
			name: "keyword escaped everywhere",
			expr: Block(LetStmt("type", Int(1)), Add(Ident("type"), Int(2))),
			want: []string{"let r#type = 1;", "r#type + 2"},
		},
		{
			name: "left operand of lower precedence",
			expr: Bin(ast.Multiply, Add(Ident("a"), Ident("b")), Ident("c")),
			want: []string{"(a + b) * c"},
		},
		{
			name: "right operand of equal precedence",
			expr: Bin(ast.Subtract, Ident("a"), Bin(ast.Subtract, Ident("b"), Ident("c"))),
			want: []string{"a - (b - c)"},
		},
		{
			name: "left operand of equal precedence",
			expr: Bin(ast.Subtract, Bin(ast.Subtract, Ident("a"), Ident("b")), Ident("c")),
			want: []string{"a - b - c"},
		},
		{
			name: "chained comparison",
			expr: Bin(ast.Equal, Bin(ast.Equal, Ident("a"), Ident("b")), Ident("c")),
			want: []string{"(a == b) == c"},
		},
		{
			name: "pipeline",
			expr: ast.New(&ast.Pipeline{Expr: Ident("x"), Stages: []*ast.Expr{Ident("f"), CallName("g", Int(1))}}),
			want: []string{"g(f(x), 1)"},
		},
		{
			name: "actor send",
			expr: ast.New(&ast.Send{Actor: Ident("counter"), Message: Ident("msg")}),
			want: []string{"counter.send(msg)"},
		},
		{
			name: "actor ask",
			expr: ast.New(&ast.ActorQuery{Actor: Ident("counter"), Message: Ident("msg")}),
			want: []string{"counter.ask(msg)"},
		},
		{
			name: "effect handlers dropped",
			expr: ast.New(&ast.Handle{Expr: CallName("run"), Handlers: []ast.EffectHandler{{Operation: "log", Body: Unit()}}}),
			want: []string{"run()"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := transpile(t, test.expr)
			for _, want := range test.want {
				if !strings.Contains(got, want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
		})
	}
}

func TestTranspileOwnedStrings(t *testing.T) {
	strRef := Ref(Named("str"))
	owned := Named("String")
	flag := []ast.Param{TypedParam("c", Named("bool"))}
	tests := []struct {
		name string
		expr *ast.Expr
		want []string
		not  []string
	}{
		{
			name: "literal tail of an owned return",
			expr: Func("hello", nil, owned, Block(Str("hi"))),
			want: []string{"-> String", `"hi".to_string()`},
		},
		{
			name: "literal tail of a borrowed return",
			expr: Func("hello", nil, strRef, Block(Str("hi"))),
			want: []string{`"hi"`},
			not:  []string{"to_string"},
		},
		{
			name: "match arms of an owned return",
			expr: Func("name", []ast.Param{TypedParam("n", Named("i32"))}, owned, Block(Match(Ident("n"),
				Arm(PLit(Int(1)), nil, Str("one")),
				Arm(PWild(), nil, Str("many")),
			))),
			want: []string{`1 => "one".to_string(),`, `_ => "many".to_string(),`},
		},
		{
			name: "if branches of an owned return",
			expr: Func("pick", flag, owned, Block(If(Ident("c"), Block(Str("yes")), Block(Str("no"))))),
			want: []string{`"yes".to_string()`, `"no".to_string()`},
		},
		{
			name: "return statement of an owned return",
			expr: Func("label", flag, owned, Block(If(Ident("c"), Block(Return(Str("early"))), nil), Str("late"))),
			want: []string{`return "early".to_string()`, `"late".to_string()`},
		},
		{
			name: "borrowed parameter returned as owned",
			expr: Func("own", []ast.Param{TypedParam("s", strRef)}, owned, Block(Ident("s"))),
			want: []string{"s.to_string()"},
		},
		{
			name: "literal argument of a user function",
			expr: Block(
				Func("greet", []ast.Param{TypedParam("name", owned)}, nil, Block(CallName("println", Str("{}"), Ident("name")))),
				CallName("greet", Str("bob")),
			),
			want: []string{`greet("bob".to_string())`},
		},
		{
			name: "literal argument of a borrowed parameter",
			expr: Block(
				Func("shout", []ast.Param{TypedParam("s", strRef)}, nil, Block(CallName("println", Str("{}"), Ident("s")))),
				CallName("shout", Str("hey")),
			),
			want: []string{`shout("hey")`},
			not:  []string{`"hey".to_string()`},
		},
		{
			name: "literal arguments of built-ins",
			expr: Block(CallName("println", Str("hi")), CallName("read_file", Str("a.txt"))),
			want: []string{`println!("hi")`, `std::fs::read_to_string("a.txt").unwrap()`},
			not:  []string{"to_string()"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := transpile(t, test.expr)
			for _, want := range test.want {
				if !strings.Contains(got, want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
			for _, not := range test.not {
				if strings.Contains(got, not) {
					t.Errorf("output %q contains %q", got, not)
				}
			}
		})
	}
}

func TestTranspileDeclarations(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.Expr
		want []string
	}{
		{
			name: "struct",
			expr: ast.New(&ast.Struct{
				Ident:   "Point",
				Derives: []string{"Debug", "Clone"},
				Fields: []ast.StructField{
					{Ident: "x", Type: Named("i32"), IsPub: true},
					{Ident: "y", Type: Named("i32")},
				},
			}),
			want: []string{"#[derive(Debug, Clone)]", "struct Point { pub x: i32, y: i32, }"},
		},
		{
			name: "enum",
			expr: ast.New(&ast.Enum{
				Ident: "Shape",
				Variants: []ast.EnumVariant{
					{Ident: "Circle", Fields: []*ast.Type{Named("f64")}},
					{Ident: "Empty"},
				},
			}),
			want: []string{"enum Shape { Circle(f64), Empty, }"},
		},
		{
			name: "trait",
			expr: ast.New(&ast.Trait{
				Ident:   "Show",
				IsPub:   true,
				Methods: []ast.Method{{Ident: "show", Params: []ast.Param{Param("self")}, ReturnType: Named("String")}},
			}),
			want: []string{"pub trait Show { fn show(&self) -> String; }"},
		},
		{
			name: "import",
			expr: ast.New(&ast.Import{Module: "std::collections", Items: []ast.ImportItem{{Ident: "HashMap"}, {Ident: "HashSet", Alias: "Set"}}}),
			want: []string{"use std::collections::{HashMap, HashSet as Set};"},
		},
		{
			name: "effect",
			expr: ast.New(&ast.Effect{
				Ident:      "Logger",
				Operations: []ast.EffectOperation{{Ident: "log", Params: []ast.Param{TypedParam("msg", Ref(Named("str")))}}},
			}),
			want: []string{"pub trait Logger {", "fn log(&self, msg: &str) -> ();"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := transpile(t, test.expr)
			for _, want := range test.want {
				if !strings.Contains(got, want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
		})
	}
}

func TestTranspileToProgram(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.Expr
		want []string
		not  []string
		once []string
	}{
		{
			name: "statements wrapped in main",
			expr: Block(CallName("println", Str("hi"))),
			want: []string{"fn main() {", `println!("hi");`},
			not:  []string{"__ruchy_main"},
		},
		{
			name: "declared main kept",
			expr: Func("main", nil, nil, Block(CallName("println", Str("hi")))),
			want: []string{"fn main() {"},
			not:  []string{"pub fn main", "__ruchy_main"},
		},
		{
			name: "declared main renamed next to statements",
			expr: Block(
				Func("main", nil, nil, Block(CallName("println", Str("a")))),
				CallName("println", Str("b")),
			),
			want: []string{"fn __ruchy_main() {", "__ruchy_main();", "fn main() {"},
		},
		{
			name: "explicit call of main not repeated",
			expr: Block(
				Func("main", nil, nil, Block(CallName("println", Str("hi")))),
				CallName("main"),
			),
			once: []string{"__ruchy_main();"},
		},
		{
			name: "main called from a binding not repeated",
			expr: Block(
				Func("main", nil, nil, Block(CallName("println", Str("hi")))),
				LetStmt("r", CallName("main")),
				CallName("println", Str("{:?}"), Ident("r")),
			),
			once: []string{"__ruchy_main();"},
		},
		{
			name: "value of the last expression printed",
			expr: Block(Add(Int(1), Int(2))),
			want: []string{"let result = 1 + 2;", `println!("{:?}", result);`},
		},
		{
			name: "collections imported on use",
			expr: Block(LetStmt("m", Call(Qualified("HashMap", "new"))), CallName("println", Str("{:?}"), Ident("m"))),
			want: []string{"use std::collections::HashMap;"},
			not:  []string{"use std::collections::HashSet;", "polars"},
		},
		{
			name: "empty program",
			expr: Block(),
			want: []string{"fn main() {}"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := lower.New(lower.Config{}).TranspileToProgram(test.expr)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			got := target.Emit(s)
			for _, want := range test.want {
				if !strings.Contains(got, want) {
					t.Errorf("program:\n%s\ndoes not contain %q", got, want)
				}
			}
			for _, not := range test.not {
				if strings.Contains(got, not) {
					t.Errorf("program:\n%s\ncontains %q", got, not)
				}
			}
			for _, once := range test.once {
				if n := strings.Count(got, once); n != 1 {
					t.Errorf("program:\n%s\ncontains %q %d times, want once", got, once, n)
				}
			}
		})
	}
}

func TestTranspileErrors(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.Expr
		kind fmterr.Kind
	}{
		{
			name: "now_millis with an argument",
			expr: Call(Qualified("std::time", "now_millis"), Int(1)),
			kind: fmterr.Arity,
		},
		{
			name: "spread outside of a literal",
			expr: ast.New(&ast.Spread{Expr: Ident("xs")}),
			kind: fmterr.Unsupported,
		},
		{
			name: "nil expression",
			expr: nil,
			kind: fmterr.MalformedInput,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := lower.New(lower.Config{}).Transpile(test.expr)
			if err == nil {
				t.Fatal("expected an error but got nil")
			}
			if got := fmterr.KindOf(err); got != test.kind {
				t.Errorf("got error kind %v but want %v: %v", got, test.kind, err)
			}
		})
	}
}

func TestRegisterModule(t *testing.T) {
	l := lower.New(lower.Config{Modules: []string{"math"}})
	l.RegisterModule("utils")
	for _, name := range []string{"math", "utils"} {
		if !l.IsModule(name) {
			t.Errorf("%s not registered", name)
		}
	}
	s, err := l.Transpile(Method(Ident("utils"), "helper", Int(1)))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "utils::helper(1)"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestTranspileDeterministic(t *testing.T) {
	expr := Block(
		Func("add", Params("x", "y"), nil, Block(Add(Ident("x"), Ident("y")))),
		LetMut("total", Int(0), Unit()),
		CompoundAssign(Ident("total"), ast.Add, CallName("add", Int(1), Int(2))),
		dataFrameBuilder(),
	)
	l := lower.New(lower.Config{})
	first, err := l.TranspileToProgram(expr)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.TranspileToProgram(expr)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(target.Emit(first), target.Emit(second)); diff != "" {
		t.Errorf("lowering is not deterministic:\n%s", diff)
	}
}

func TestBuiltinFamily(t *testing.T) {
	builtins := lower.DefaultBuiltins()
	tests := []struct {
		name string
		want lower.Family
	}{
		{name: "println", want: lower.Print},
		{name: "sqrt", want: lower.Math},
		{name: "trueno_add", want: lower.SIMD},
		{name: "json_parse", want: lower.JSON},
		{name: "user_function", want: lower.NotBuiltin},
	}
	for _, test := range tests {
		if got := builtins.Family(test.name); got != test.want {
			t.Errorf("%s: got %s but want %s", test.name, got, test.want)
		}
	}
}
