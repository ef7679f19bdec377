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

package astbuilder_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	. "github.com/paiml/ruchy-sub001/build/ast/asthelper"
	"github.com/paiml/ruchy-sub001/internal/astbuilder"
)

func TestCloneIsDeep(t *testing.T) {
	src := Block(LetStmt("x", Int(1)), Add(Ident("x"), Int(2)))
	got, err := astbuilder.Clone(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, src); diff != "" {
		t.Fatalf("clone differs from source:\n%s", diff)
	}
	got.Kind.(*ast.Block).Exprs[1].Kind.(*ast.Binary).Op = ast.Subtract
	if op := src.Kind.(*ast.Block).Exprs[1].Kind.(*ast.Binary).Op; op != ast.Add {
		t.Errorf("modifying the clone modified the source: got operator %s", op)
	}
}

func TestSubstitute(t *testing.T) {
	five := Int(5)
	tests := []struct {
		src  *ast.Expr
		want *ast.Expr
	}{
		{
			src:  Add(Ident("x"), Int(1)),
			want: Add(Int(5), Int(1)),
		},
		{
			src:  Let("x", Ident("x"), Ident("x")),
			want: Let("x", Int(5), Ident("x")),
		},
		{
			src:  Lambda(Params("x"), Ident("x")),
			want: Lambda(Params("x"), Ident("x")),
		},
		{
			src:  Block(Ident("x"), LetStmt("x", Int(2)), Ident("x")),
			want: Block(Int(5), LetStmt("x", Int(2)), Ident("x")),
		},
		{
			src:  CallName("f", Ident("x"), Ident("y")),
			want: CallName("f", Int(5), Ident("y")),
		},
	}
	for i, test := range tests {
		got, err := astbuilder.Substitute(test.src, map[string]*ast.Expr{"x": five})
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(got, test.want); diff != "" {
			t.Errorf("test %d: unexpected substitution:\n%s", i, diff)
		}
	}
}

func TestRename(t *testing.T) {
	src := CallName("main", Ident("main"))
	got, err := astbuilder.Clone(src, astbuilder.Rename(map[string]string{"main": "__ruchy_main"}))
	if err != nil {
		t.Fatal(err)
	}
	want := CallName("__ruchy_main", Ident("__ruchy_main"))
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("unexpected renaming:\n%s", diff)
	}
}
