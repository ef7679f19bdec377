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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/ast/asthelper"
)

func encode(t *testing.T, e *ast.Expr) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := ast.Encode(&buf, e); err != nil {
		t.Fatalf("cannot encode tree: %v", err)
	}
	return &buf
}

func TestRun(t *testing.T) {
	add := asthelper.Func("add", asthelper.Params("x", "y"), nil,
		asthelper.Add(asthelper.Ident("x"), asthelper.Ident("y")))
	tests := []struct {
		desc string
		args []string
		tree *ast.Expr
		want []string
	}{
		{
			desc: "program",
			tree: add,
			want: []string{"fn add(", "fn main() {}"},
		},
		{
			desc: "expr",
			args: []string{"-mode=expr"},
			tree: asthelper.Add(asthelper.Int(1), asthelper.Int(2)),
			want: []string{"1 + 2"},
		},
		{
			desc: "fmt",
			args: []string{"-mode=fmt"},
			tree: asthelper.Add(asthelper.Int(1), asthelper.Int(2)),
			want: []string{"1 + 2\n"},
		},
		{
			desc: "core",
			args: []string{"-mode=core", "-inline"},
			tree: asthelper.Add(asthelper.Int(1), asthelper.Int(2)),
		},
		{
			desc: "modules",
			args: []string{"-mode=expr", "-modules=utils"},
			tree: asthelper.Method(asthelper.Ident("utils"), "helper", asthelper.Int(1)),
			want: []string{"utils::helper(1)"},
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(test.args, encode(t, test.tree), &stdout, &stderr); code != 0 {
				t.Fatalf("exit code %d: %s", code, stderr.String())
			}
			if stdout.Len() == 0 {
				t.Fatal("empty output")
			}
			for _, want := range test.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("output %q does not contain %q", stdout.String(), want)
				}
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		desc  string
		args  []string
		input string
	}{
		{desc: "unknown mode", args: []string{"-mode=wasm"}, input: "{}"},
		{desc: "invalid indentation", args: []string{"-indent=0"}, input: "{}"},
		{desc: "undecodable", input: `{"kind": "Nope"}`},
		{desc: "missing file", args: []string{filepath.Join(os.TempDir(), "ruchyc-missing.json")}},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(test.args, strings.NewReader(test.input), &stdout, &stderr); code != 1 {
				t.Errorf("exit code %d, want 1", code)
			}
			if stderr.Len() == 0 {
				t.Error("no error printed")
			}
		})
	}
}

func TestRunOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.rs")
	var stdout, stderr bytes.Buffer
	tree := asthelper.Add(asthelper.Int(1), asthelper.Int(2))
	if code := run([]string{"-mode=expr", "-o", out}, encode(t, tree), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "1 + 2") {
		t.Errorf("file content %q does not contain 1 + 2", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected standard output %q", stdout.String())
	}
}

func TestTabify(t *testing.T) {
	got := tabify("fn f() {\n        x\n    y\n}", 4)
	want := "fn f() {\n\t\tx\n\ty\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, encode(t, asthelper.Add(asthelper.Int(1), asthelper.Int(2))).Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.json")
	out := filepath.Join(dir, "out.rs")
	tests := []struct {
		desc string
		args []string
	}{
		{desc: "standard output", args: []string{"-mode=expr", good, missing}},
		{desc: "output file", args: []string{"-mode=expr", "-o", out, good, missing}},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(test.args, strings.NewReader(""), &stdout, &stderr); code != 1 {
				t.Errorf("exit code %d, want 1", code)
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected standard output %q", stdout.String())
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("output file %s written", out)
			}
		})
	}
}
