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

package fmterr_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"go.uber.org/multierr"
)

func TestErrorf(t *testing.T) {
	node := ast.At(&ast.Identifier{Ident: "x"}, ast.Span{Start: 3, End: 4})
	err := fmterr.Errorf(fmterr.FreeVariable, node, "unbound identifier %q", "x")
	want := `3:4: free variable in Identifier: unbound identifier "x"`
	if got := err.Error(); got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	if kind := fmterr.KindOf(err); kind != fmterr.FreeVariable {
		t.Errorf("got kind %v but want %v", kind, fmterr.FreeVariable)
	}
	span, ok := fmterr.SpanOf(fmt.Errorf("wrapped: %w", err))
	if !ok {
		t.Fatalf("no span found in wrapped error")
	}
	if diff := cmp.Diff(span, ast.Span{Start: 3, End: 4}); diff != "" {
		t.Errorf("unexpected span:\n%s", diff)
	}
}

func TestKindOfPlainError(t *testing.T) {
	if kind := fmterr.KindOf(fmt.Errorf("plain")); kind != fmterr.Internal {
		t.Errorf("got kind %v but want %v", kind, fmterr.Internal)
	}
	if _, ok := fmterr.SpanOf(fmt.Errorf("plain")); ok {
		t.Errorf("plain error should not have a span")
	}
}

func TestInternalf(t *testing.T) {
	err := fmterr.Internalf(nil, "unexpected %s", "state")
	if !strings.Contains(err.Error(), "internal error") || !strings.Contains(err.Error(), "unexpected state") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestErrors(t *testing.T) {
	var errs fmterr.Errors
	if errs.ToError() != nil {
		t.Errorf("empty set of errors should convert to nil")
	}
	errs.Append(fmt.Errorf("first"))
	errs.Push(fmterr.PrefixWith("file.json: "))
	errs.Append(fmt.Errorf("second"))
	errs.Pop()
	errs.Append(nil)
	got := multierr.Errors(errs.ToError())
	want := []string{"first", "file.json: second"}
	if len(got) != len(want) {
		t.Fatalf("got %d errors but want %d", len(got), len(want))
	}
	for i, err := range got {
		if err.Error() != want[i] {
			t.Errorf("error %d: got %q but want %q", i, err.Error(), want[i])
		}
	}
}
