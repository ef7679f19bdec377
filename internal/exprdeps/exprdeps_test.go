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

package exprdeps_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
	"github.com/paiml/ruchy-sub001/internal/exprdeps"
)

func TestIdents(t *testing.T) {
	tests := []struct {
		expr *ast.Expr
		want []string
	}{
		{
			expr: Ident("x"),
			want: []string{"x"},
		},
		{
			expr: Add(Ident("x"), Ident("y")),
			want: []string{"x", "y"},
		},
		{
			expr: Add(Ident("x"), Ident("x")),
			want: []string{"x"},
		},
	}
	for i, test := range tests {
		got := exprdeps.Idents(test.expr)
		if !cmp.Equal(got, test.want) {
			t.Errorf("test %d: incorrect identifier list: got %v but want %v", i, got, test.want)
		}
	}
}

func TestFree(t *testing.T) {
	tests := []struct {
		expr  *ast.Expr
		bound []string
		want  []string
	}{
		{
			expr: Let("x", Int(1), Add(Ident("x"), Ident("y"))),
			want: []string{"y"},
		},
		{
			expr:  Add(Ident("a"), Ident("counter")),
			bound: []string{"a"},
			want:  []string{"counter"},
		},
		{
			expr: Block(LetStmt("v", Int(1)), Ident("v"), Ident("w")),
			want: []string{"w"},
		},
		{
			expr: Lambda(Params("x"), Add(Ident("x"), Ident("z"))),
			want: []string{"z"},
		},
		{
			expr: Match(Ident("opt"),
				Arm(P(&ast.SomePattern{Inner: PIdent("v")}), nil, Ident("v")),
				Arm(PWild(), nil, Ident("fallback")),
			),
			want: []string{"opt", "fallback"},
		},
	}
	for i, test := range tests {
		got := exprdeps.Free(test.expr, test.bound...)
		if !cmp.Equal(got, test.want) {
			t.Errorf("test %d: incorrect free identifiers: got %v but want %v", i, got, test.want)
		}
	}
}
