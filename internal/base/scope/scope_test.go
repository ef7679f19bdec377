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

package scope_test

import (
	"testing"

	"github.com/paiml/ruchy-sub001/internal/base/scope"
)

func TestFind(t *testing.T) {
	root := scope.New[int](nil)
	root.Define("x", 1)
	root.Define("z", 20)
	child := root.NewChild()
	child.Define("x", 10)
	child.Define("y", 2)

	tests := []struct {
		sc    *scope.Scope[int]
		name  string
		want  int
		found bool
	}{
		{sc: root, name: "x", want: 1, found: true},
		{sc: root, name: "y"},
		{sc: child, name: "x", want: 10, found: true},
		{sc: child, name: "y", want: 2, found: true},
		{sc: child, name: "z", want: 20, found: true},
		{sc: child, name: "w"},
	}
	for i, test := range tests {
		got, ok := test.sc.Find(test.name)
		if got != test.want || ok != test.found {
			t.Errorf("test %d: Find(%q) = %d, %v but want %d, %v", i, test.name, got, ok, test.want, test.found)
		}
	}
}
