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

package crates_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/build/crates"
	"github.com/paiml/ruchy-sub001/build/target"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{src: "let x = 1;", want: nil},
		{src: "let v: serde_json::Value = serde_json::from_str(&s).unwrap();", want: []string{"serde_json"}},
		{src: "let df = DataFrame::empty();", want: []string{"polars"}},
		{src: "trueno_bridge::dot(&a, &b)", want: []string{"trueno_bridge"}},
		{src: "reqwest::blocking::get(url)", want: []string{"reqwest"}},
	}
	for _, test := range tests {
		s, err := target.Lex(test.src)
		if err != nil {
			t.Fatalf("cannot lex %q: %v", test.src, err)
		}
		var got []string
		for _, c := range crates.Detect(s) {
			got = append(got, c.Name)
		}
		if !cmp.Equal(got, test.want) {
			t.Errorf("%q: got %v but want %v", test.src, got, test.want)
		}
	}
}

func TestManifest(t *testing.T) {
	m := crates.NewManifest()
	for _, req := range []struct{ name, version string }{
		{"serde_json", "1.0"},
		{"polars", "0.40"},
		{"polars", "0.41.2"},
		{"polars", "0.39"},
	} {
		if err := m.Require(req.name, req.version); err != nil {
			t.Fatal(err)
		}
	}
	want := "[dependencies]\npolars = \"0.41.2\"\nserde_json = \"1.0\"\n"
	if diff := cmp.Diff(m.Render(), want); diff != "" {
		t.Errorf("incorrect manifest:\n%s", diff)
	}
}

func TestRequireErrors(t *testing.T) {
	m := crates.NewManifest()
	if err := m.Require("polars", "latest"); err == nil {
		t.Error("expected an error for an invalid version")
	}
	if err := m.Require("", "1.0"); err == nil {
		t.Error("expected an error for a crate without a name")
	}
	if names := m.Names(); len(names) != 0 {
		t.Errorf("got requirements %v after errors", names)
	}
}
