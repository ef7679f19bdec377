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

package ast_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
)

func kindNames(exprs []*ast.Expr) []string {
	var names []string
	for _, e := range exprs {
		names = append(names, e.Kind.Name())
	}
	return names
}

func TestChildren(t *testing.T) {
	tests := []struct {
		expr *ast.Expr
		want []string
	}{
		{
			expr: Int(1),
		},
		{
			expr: Add(Ident("x"), Int(1)),
			want: []string{"Identifier", "Literal"},
		},
		{
			expr: If(Bool(true), Int(1), nil),
			want: []string{"Literal", "Literal"},
		},
		{
			expr: Method(Ident("v"), "push", Int(3)),
			want: []string{"Identifier", "Literal"},
		},
		{
			expr: Match(Ident("x"), Arm(PWild(), Bool(true), Str("a"))),
			want: []string{"Identifier", "Literal", "Literal"},
		},
	}
	for i, test := range tests {
		got := kindNames(ast.Children(test.expr))
		if !cmp.Equal(got, test.want) {
			t.Errorf("test %d: got %v but want %v", i, got, test.want)
		}
	}
}

func TestAny(t *testing.T) {
	body := Block(LetStmt("y", Int(2)), Add(Ident("x"), Ident("y")))
	isX := func(e *ast.Expr) bool {
		id, ok := e.Kind.(*ast.Identifier)
		return ok && id.Ident == "x"
	}
	if !ast.Any(body, isX) {
		t.Errorf("identifier x not found in %s", body)
	}
	if ast.Any(Int(3), isX) {
		t.Errorf("identifier x found in a literal")
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		op    ast.BinaryOp
		prec  int
		right bool
	}{
		{op: ast.Or, prec: 10},
		{op: ast.SendOp, prec: 15},
		{op: ast.And, prec: 20},
		{op: ast.Equal, prec: 30},
		{op: ast.Less, prec: 40},
		{op: ast.Add, prec: 50},
		{op: ast.Modulo, prec: 60},
		{op: ast.Power, prec: 70, right: true},
	}
	for _, test := range tests {
		if got := test.op.Precedence(); got != test.prec {
			t.Errorf("%s: got precedence %d but want %d", test.op.OpName(), got, test.prec)
		}
		if got := test.op.RightAssociative(); got != test.right {
			t.Errorf("%s: got right associative %v but want %v", test.op.OpName(), got, test.right)
		}
	}
}

func TestPatternBindings(t *testing.T) {
	pattern := P(&ast.TuplePattern{Elements: []*ast.Pattern{
		PIdent("a"),
		PWild(),
		P(&ast.SomePattern{Inner: PIdent("b")}),
		P(&ast.StructPattern{Ident: "Point", Fields: []ast.StructPatternField{
			{Ident: "x"},
			{Ident: "y", Pattern: PIdent("py")},
		}}),
		P(&ast.ListPattern{Elements: []*ast.Pattern{
			PIdent("head"),
			P(&ast.RestNamedPattern{Ident: "tail"}),
		}}),
	}})
	want := []string{"a", "b", "x", "py", "head", "tail"}
	if diff := cmp.Diff(pattern.Bindings(), want); diff != "" {
		t.Errorf("unexpected bindings:\n%s", diff)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *ast.Type
		want string
	}{
		{typ: Named("i32"), want: "i32"},
		{typ: Generic("Vec", Named("String")), want: "Vec<String>"},
		{typ: Ref(Named("str")), want: "&str"},
		{typ: &ast.Type{Kind: &ast.ReferenceType{Mutable: true, Lifetime: "a", Inner: Named("str")}}, want: "&'a mut str"},
		{typ: &ast.Type{Kind: &ast.ArrayType{Elem: Named("u8"), Size: 4}}, want: "[u8; 4]"},
		{typ: &ast.Type{Kind: &ast.FunctionType{Params: []*ast.Type{Named("i32")}, Ret: Named("bool")}}, want: "fn(i32) -> bool"},
	}
	for i, test := range tests {
		if got := test.typ.String(); got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
	}
	if !Named("Any").IsAny() {
		t.Errorf("Any not recognized as the pseudo-type Any")
	}
}

func TestCodec(t *testing.T) {
	fn := Func("greet", []ast.Param{TypedParam("name", Ref(Named("str")))}, nil,
		Block(
			Match(Ident("name"),
				Arm(PLit(Str("bob")), nil, Str("hi bob")),
				Arm(PWild(), nil, Add(Str("Hello "), Ident("name"))),
			),
		))
	fn.Span = ast.Span{Start: 0, End: 42}
	fn.Attributes = []ast.Attribute{{Name: "test"}}
	var buf bytes.Buffer
	if err := ast.Encode(&buf, fn); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"kind": "Function"`) {
		t.Errorf("encoding does not contain the kind discriminator:\n%s", buf.String())
	}
	got, err := ast.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, fn); diff != "" {
		t.Errorf("unexpected decoded AST:\n%s", diff)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := ast.Decode(strings.NewReader(`{"kind": "Nope"}`))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "Nope") {
		t.Errorf("error %q does not name the unknown kind", err.Error())
	}
}
