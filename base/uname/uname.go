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

// Package uname provides unique names for synthetic bindings.
package uname

import "fmt"

// Unique generates names that collide neither with each other
// nor with the names reserved by the source program.
type Unique struct {
	next     map[string]int
	reserved map[string]bool
}

// New name generator.
func New() *Unique {
	return &Unique{
		next:     make(map[string]int),
		reserved: make(map[string]bool),
	}
}

// Reserve marks a name as used so that it is never generated.
func (n *Unique) Reserve(names ...string) {
	for _, name := range names {
		n.reserved[name] = true
	}
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	for {
		i := n.next[root]
		n.next[root] = i + 1
		name := root
		if i > 0 {
			name = fmt.Sprintf("%s%d", root, i)
		}
		if !n.reserved[name] {
			n.reserved[name] = true
			return name
		}
	}
}

var typeParamRoots = []string{"T", "U", "V", "W"}

// TypeParam returns the next generic type parameter name: T, U, V, W, then T1, U1...
func (n *Unique) TypeParam() string {
	for round := 0; ; round++ {
		for _, root := range typeParamRoots {
			name := root
			if round > 0 {
				name = fmt.Sprintf("%s%d", root, round)
			}
			if !n.reserved[name] {
				n.reserved[name] = true
				return name
			}
		}
	}
}
