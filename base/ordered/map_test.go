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

package ordered_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub001/base/ordered"
)

type entry struct {
	k string
	v int
}

func TestMapKeepsFirstPosition(t *testing.T) {
	tests := []struct {
		entries []entry
		want    []entry
	}{
		{
			entries: []entry{{"x", 1}, {"y", 2}, {"z", 3}},
			want:    []entry{{"x", 1}, {"y", 2}, {"z", 3}},
		},
		{
			entries: []entry{{"x", 1}, {"y", 2}, {"x", 3}},
			want:    []entry{{"x", 3}, {"y", 2}},
		},
		{
			entries: []entry{{"s", 1}, {"s", 2}},
			want:    []entry{{"s", 2}},
		},
	}
	for i, test := range tests {
		m := ordered.NewMap[string, int]()
		for _, e := range test.entries {
			m.Store(e.k, e.v)
		}
		var got []entry
		for k, v := range m.Clone().Iter() {
			got = append(got, entry{k, v})
		}
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(entry{})); diff != "" {
			t.Errorf("test %d: unexpected entries (-want +got):\n%s", i, diff)
		}
		if m.Size() != len(test.want) {
			t.Errorf("test %d: got size %d but want %d", i, m.Size(), len(test.want))
		}
		if !slices.Equal(slices.Collect(m.Keys()), keys(test.want)) {
			t.Errorf("test %d: keys out of order", i)
		}
	}
}

func keys(es []entry) []string {
	ks := make([]string, len(es))
	for i, e := range es {
		ks[i] = e.k
	}
	return ks
}

func TestSet(t *testing.T) {
	s := ordered.NewSet("math", "io")
	if s.Add("math") {
		t.Errorf("adding math twice returned true")
	}
	if !s.Add("fs") {
		t.Errorf("adding fs returned false")
	}
	want := []string{"math", "io", "fs"}
	if diff := cmp.Diff(want, s.Slice()); diff != "" {
		t.Errorf("unexpected elements (-want +got):\n%s", diff)
	}
	if !s.Contains("io") || s.Contains("net") {
		t.Errorf("incorrect membership: %v", s.Slice())
	}
	var nilSet *ordered.Set[string]
	if nilSet.Contains("io") || nilSet.Size() != 0 {
		t.Errorf("nil set should be empty")
	}
}
