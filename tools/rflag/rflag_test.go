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

package rflag_test

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/tools/rflag"
)

func TestStringList(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	modules := rflag.StringListVar(fs, "modules", "modules")
	if err := fs.Parse([]string{"-modules=math, utils", "-modules", ",io,"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"math", "utils", "io"}
	if diff := cmp.Diff(*modules, want); diff != "" {
		t.Errorf("incorrect list:\n%s", diff)
	}
}

func TestSplit(t *testing.T) {
	if got := rflag.Split(" , "); len(got) != 0 {
		t.Errorf("got %v but want an empty list", got)
	}
}
