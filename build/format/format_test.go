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

package format_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/paiml/ruchy-sub001/build/format"
)

func withComments(e *ast.Expr, leading []string, trailing string) *ast.Expr {
	for _, text := range leading {
		e.Leading = append(e.Leading, ast.Comment{Text: text})
	}
	if trailing != "" {
		e.Trailing = &ast.Comment{Text: trailing}
	}
	return e
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.Expr
		cfg  format.Config
		want string
	}{
		{
			name: "function",
			expr: Func("add", Params("x", "y"), nil, Block(Add(Ident("x"), Ident("y")))),
			want: "fun add(x, y) {\n    x + y\n}\n",
		},
		{
			name: "any elided on parameters",
			expr: Func("f", []ast.Param{TypedParam("x", Named(ast.AnyType)), TypedParam("y", Named("i32"))}, nil, Block()),
			want: "fun f(x, y: i32) {}\n",
		},
		{
			name: "tabs",
			expr: Func("f", nil, nil, Block(Ident("x"))),
			cfg:  format.Config{UseTabs: true},
			want: "fun f() {\n\tx\n}\n",
		},
		{
			name: "indent width",
			expr: Func("f", nil, nil, Block(Ident("x"))),
			cfg:  format.Config{IndentWidth: 2},
			want: "fun f() {\n  x\n}\n",
		},
		{
			name: "let with a block body is sequential",
			expr: Block(Let("x", Int(1), Block(CallName("print", Ident("x"))))),
			want: "let x = 1\nprint(x)\n",
		},
		{
			name: "let with an expression body",
			expr: Let("x", Int(1), Add(Ident("x"), Int(1))),
			want: "let x = 1 in x + 1\n",
		},
		{
			name: "comments",
			expr: Block(withComments(CallName("run"), []string{"start"}, "end"), Ident("x")),
			want: "// start\nrun() // end\nx\n",
		},
		{
			name: "struct on multiple lines",
			expr: ast.New(&ast.Struct{Ident: "P", Fields: []ast.StructField{
				{Ident: "x", Type: Named("i32")},
				{Ident: "y", Type: Named("i32")},
			}}),
			want: "struct P {\n    x: i32,\n    y: i32,\n}\n",
		},
		{
			name: "declarations separated by blank lines",
			expr: Block(Func("f", nil, nil, Block()), Func("g", nil, nil, Block())),
			want: "fun f() {}\n\nfun g() {}\n",
		},
		{
			name: "match",
			expr: Match(Ident("x"), Arm(PLit(Int(1)), nil, Str("one")), Arm(PWild(), nil, Str("other"))),
			want: "match x {\n    1 => \"one\",\n    _ => \"other\",\n}\n",
		},
		{
			name: "parentheses on lower precedence",
			expr: Bin(ast.Multiply, Add(Ident("a"), Ident("b")), Ident("c")),
			want: "(a + b) * c\n",
		},
		{
			name: "parentheses on right operand",
			expr: Bin(ast.Subtract, Ident("a"), Bin(ast.Subtract, Ident("b"), Ident("c"))),
			want: "a - (b - c)\n",
		},
		{
			name: "nested blocks",
			expr: Func("f", nil, nil, Block(If(Ident("c"), Block(Int(1)), Block(Int(2))))),
			want: "fun f() {\n    if c {\n        1\n    } else {\n        2\n    }\n}\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := format.Format(test.expr, test.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Errorf("incorrect output:\n%s\ndiff:\n%s", got, cmp.Diff(got, test.want))
			}
		})
	}
}

// TestFormatSequentialForms checks that the let-in form with a block body and
// the sequence of statements it is read back as print the same text.
func TestFormatSequentialForms(t *testing.T) {
	nested := Block(Let("x", Int(1), Block(Let("y", Int(2), Block(Add(Ident("x"), Ident("y")))))))
	sequential := Block(LetStmt("x", Int(1)), LetStmt("y", Int(2)), Add(Ident("x"), Ident("y")))
	got, err := format.Format(nested, format.Config{})
	if err != nil {
		t.Fatal(err)
	}
	want, err := format.Format(sequential, format.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("forms differ:\n%s", diff)
	}
}

func TestFormatNil(t *testing.T) {
	if _, err := format.Format(nil, format.Config{}); err == nil {
		t.Error("expected an error but got nil")
	}
}

// unknownKind is an expression kind the formatter does not know.
type unknownKind struct{ *ast.Literal }

func (unknownKind) Name() string { return "Unknown" }

func TestFormatErrorsNameDeclaration(t *testing.T) {
	tests := []struct {
		expr *ast.Expr
		want string
	}{
		{
			expr: Func("f", nil, nil, Block(ast.New(unknownKind{}))),
			want: "fun f: ",
		},
		{
			expr: Block(Func("f", nil, nil, Block()), Func("g", nil, nil, Block(ast.New(unknownKind{})))),
			want: "fun g: ",
		},
	}
	for i, test := range tests {
		_, err := format.Format(test.expr, format.Config{})
		if err == nil {
			t.Errorf("test %d: expected an error but got nil", i)
			continue
		}
		if got := err.Error(); !strings.Contains(got, test.want) || !strings.Contains(got, "Unknown") {
			t.Errorf("test %d: error %q does not name %q and the Unknown expression", i, got, test.want)
		}
		if got := fmterr.KindOf(err); got != fmterr.Unsupported {
			t.Errorf("test %d: got error kind %v but want %v", i, got, fmterr.Unsupported)
		}
	}
}
