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

package target_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/paiml/ruchy-sub001/build/target"
)

func TestQuoteString(t *testing.T) {
	tests := []struct {
		got  target.Stream
		want string
	}{
		{
			got:  target.Quote("let $0: $1 = $2;", "x", target.Words("i32"), target.W("5")),
			want: "let x: i32 = 5;",
		},
		{
			got:  target.Quote("fn $0(x: &str) -> Vec<i32>", "f"),
			want: "fn f(x: &str) -> Vec<i32>",
		},
		{
			got:  target.Quote(`println!("{}", x)`),
			want: `println!("{}", x)`,
		},
		{
			got:  target.Quote("v.iter().map(|x| x * 2)"),
			want: "v.iter().map(|x| x * 2)",
		},
		{
			got:  target.Quote("0..10"),
			want: "0..10",
		},
		{
			got:  target.Quote("-x + !y"),
			want: "-x + !y",
		},
		{
			got:  target.Quote("#[test]"),
			want: "#[test]",
		},
		{
			got:  target.Quote("Vec::<i32>::new()"),
			want: "Vec::<i32>::new()",
		},
		{
			got:  target.Quote("a < b && c >> 2"),
			want: "a < b && c >> 2",
		},
		{
			got:  target.Quote("x?"),
			want: "x?",
		},
		{
			got:  target.Quote("&mut v"),
			want: "&mut v",
		},
		{
			got:  target.Quote("if x { 1 } else { 2 }"),
			want: "if x { 1 } else { 2 }",
		},
		{
			got:  target.Quote("|| 5"),
			want: "|| 5",
		},
		{
			got:  target.Quote("a || b"),
			want: "a || b",
		},
		{
			got:  target.Quote("fn f<'a>(x: &'a str) -> char { 'c' }"),
			want: "fn f<'a>(x: &'a str) -> char { 'c' }",
		},
		{
			got:  target.Quote("f($0)", []target.Stream{target.Words("a"), target.Words("b")}),
			want: "f(a, b)",
		},
		{
			got:  target.Quote("$0;", nil),
			want: ";",
		},
		{
			got:  target.Quote("let r#type = 1.5;"),
			want: "let r#type = 1.5;",
		},
	}
	for i, test := range tests {
		if got := test.got.String(); got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
	}
}

func TestLexKinds(t *testing.T) {
	got, err := target.Lex("a - -b")
	if err != nil {
		t.Fatal(err)
	}
	want := target.Stream{
		target.W("a"),
		{Kind: target.Op, Text: "-"},
		{Kind: target.Prefix, Text: "-"},
		target.W("b"),
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("unexpected tokens:\n%s", diff)
	}
}

func TestLexErrors(t *testing.T) {
	for i, src := range []string{
		"{",
		"}",
		`"abc`,
		"$x",
		"a ~ b",
	} {
		if _, err := target.Lex(src); err == nil {
			t.Errorf("test %d: lexing %q did not fail", i, src)
		}
	}
}

func TestEmit(t *testing.T) {
	tests := []struct {
		got  target.Stream
		want string
	}{
		{
			got: target.Quote(`fn main() {
				let x = 1;
				println!("{}", x);
			}`),
			want: `fn main() {
    let x = 1;
    println!("{}", x);
}
`,
		},
		{
			got: target.Quote(`struct P {
				x: i32,
				y: i32,
			}`),
			want: `struct P {
    x: i32,
    y: i32,
}
`,
		},
		{
			got: target.Quote(`fn f() {
				if x {
					1
				} else {
					2
				}
			}`),
			want: `fn f() {
    if x {
        1
    } else {
        2
    }
}
`,
		},
		{
			got: target.Concat(
				target.Quote("fn a() {\n}"),
				target.Stream{target.NL, target.NL},
				target.Quote("fn b() {\n}"),
			),
			want: "fn a() {\n}\n\nfn b() {\n}\n",
		},
		{
			got:  target.Quote("let v = vec![1, 2];"),
			want: "let v = vec![1, 2];\n",
		},
	}
	for i, test := range tests {
		if got := target.Emit(test.got); got != test.want {
			t.Errorf("test %d: incorrect output:\n%s\nwant:\n%s\ndiff:\n%s", i, got, test.want, cmp.Diff(got, test.want))
		}
	}
}

func TestEmitIndent(t *testing.T) {
	got := target.EmitIndent(target.Quote("mod m {\nfn f() {\n}\n}"), 2)
	want := "mod m {\n  fn f() {\n  }\n}\n"
	if got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestIdent(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "x", want: "x"},
		{name: "type", want: "r#type"},
		{name: "match", want: "r#match"},
		{name: "async", want: "r#async"},
		{name: "self", want: "self"},
		{name: "Self", want: "Self"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := target.Ident(test.name).Text; got != test.want {
				t.Errorf("got %q but want %q", got, test.want)
			}
		})
	}
}

func TestDeclIdent(t *testing.T) {
	tok, err := target.DeclIdent(ast.Span{}, "loop")
	if err != nil {
		t.Fatal(err)
	}
	if tok.Text != "r#loop" {
		t.Errorf("got %q but want r#loop", tok.Text)
	}
	for _, name := range []string{"self", "Self", "super", "crate"} {
		_, err := target.DeclIdent(ast.Span{}, name)
		if err == nil {
			t.Errorf("declaring %s did not fail", name)
			continue
		}
		if got := fmterr.KindOf(err); got != fmterr.TypeNameEscape {
			t.Errorf("declaring %s: got error kind %v but want %v", name, got, fmterr.TypeNameEscape)
		}
	}
}
