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

// Package crates computes the external crates required by a lowered program.
package crates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paiml/ruchy-sub001/build/target"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/mod/semver"
)

// Crate referenced by lowered programs.
type Crate struct {
	Name    string
	Version string
	// Words of the output referencing the crate.
	Words []string
}

// Known lists the crates the lowerer emits references to.
var Known = []Crate{
	{Name: "polars", Version: "0.41", Words: []string{"polars", "DataFrame", "Series", "CsvReadOptions"}},
	{Name: "serde_json", Version: "1.0", Words: []string{"serde_json"}},
	{Name: "reqwest", Version: "0.12", Words: []string{"reqwest"}},
	{Name: "trueno_bridge", Version: "0.1", Words: []string{"trueno_bridge"}},
}

// Detect returns the crates referenced by a stream.
func Detect(s target.Stream) []Crate {
	var found []Crate
	for _, c := range Known {
		for _, w := range c.Words {
			if s.Contains(w) {
				found = append(found, c)
				break
			}
		}
	}
	return found
}

// Manifest is a set of crate requirements.
type Manifest struct {
	versions map[string]string
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{versions: make(map[string]string)}
}

// canonical returns the semantic version of a crate version.
func canonical(version string) (string, error) {
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", errors.Errorf("invalid version %q", version)
	}
	return v, nil
}

// Require adds a requirement to the manifest. The highest version
// required for a crate is kept.
func (m *Manifest) Require(name, version string) error {
	if name == "" {
		return errors.Errorf("crate without a name")
	}
	v, err := canonical(version)
	if err != nil {
		return errors.Errorf("crate %s: %v", name, err)
	}
	prev, ok := m.versions[name]
	if !ok {
		m.versions[name] = version
		return nil
	}
	pv, _ := canonical(prev)
	if semver.Compare(v, pv) > 0 {
		m.versions[name] = version
	}
	return nil
}

// RequireAll adds the requirements of a list of crates.
func (m *Manifest) RequireAll(cs []Crate) error {
	for _, c := range cs {
		if err := m.Require(c.Name, c.Version); err != nil {
			return err
		}
	}
	return nil
}

// Version returns the version required for a crate.
func (m *Manifest) Version(name string) (string, bool) {
	v, ok := m.versions[name]
	return v, ok
}

// Names returns the names of the required crates in alphabetical order.
func (m *Manifest) Names() []string {
	names := maps.Keys(m.versions)
	sort.Strings(names)
	return names
}

// Render returns the dependencies section of a Cargo manifest.
func (m *Manifest) Render() string {
	var b strings.Builder
	b.WriteString("[dependencies]\n")
	for _, name := range m.Names() {
		fmt.Fprintf(&b, "%s = %q\n", name, m.versions[name])
	}
	return b.String()
}
