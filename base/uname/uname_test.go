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

package uname_test

import (
	"testing"

	"github.com/paiml/ruchy-sub001/base/uname"
)

func TestName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{name: "__tmp", want: "__tmp1"},
		{name: "__tmp", want: "__tmp2"},
		{name: "input", want: "input"},
		{name: "input", want: "input1"},
	}
	unames := uname.New()
	// Reserved by the source program.
	unames.Reserve("__tmp")
	for i, test := range tests {
		got := unames.Name(test.name)
		if got != test.want {
			t.Errorf("test %d: for name %s, got %s but want %s", i, test.name, got, test.want)
		}
	}
}

func TestTypeParam(t *testing.T) {
	unames := uname.New()
	unames.Reserve("U")
	want := []string{"T", "V", "W", "T1", "U1"}
	for i, w := range want {
		if got := unames.TypeParam(); got != w {
			t.Errorf("type parameter %d: got %s but want %s", i, got, w)
		}
	}
}
