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

package tmpl_test

import (
	"testing"
	"text/template"

	"github.com/paiml/ruchy-sub001/base/tmpl"
)

func TestExec(t *testing.T) {
	tpl := template.Must(template.New("uses").Parse(`{{range .}}use {{.}};
{{end}}`))
	got, err := tmpl.Exec(tpl, []string{"std::collections::HashMap", "polars::prelude::*"})
	if err != nil {
		t.Fatal(err)
	}
	want := "use std::collections::HashMap;\nuse polars::prelude::*;\n"
	if got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestExecError(t *testing.T) {
	tpl := template.Must(template.New("fields").Parse(`{{.Missing}}`))
	if _, err := tmpl.Exec(tpl, 1); err == nil {
		t.Error("expected an error but got nil")
	}
}
