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

// Package scope provides lexical scopes mapping names to values.
package scope

// Scope maps names to values. Names not defined locally are looked up
// in the parent scopes.
type Scope[V any] struct {
	parent *Scope[V]
	names  map[string]V
}

// New returns a scope given a parent, which can be nil.
func New[V any](parent *Scope[V]) *Scope[V] {
	return &Scope[V]{parent: parent, names: make(map[string]V)}
}

// NewChild returns a new scope whose parent is s.
func (s *Scope[V]) NewChild() *Scope[V] {
	return New(s)
}

// Define maps a name to a value in the local scope, shadowing any
// definition of the parents.
func (s *Scope[V]) Define(name string, v V) {
	s.names[name] = v
}

// Find returns the value of the innermost definition of a name.
func (s *Scope[V]) Find(name string) (v V, ok bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok = sc.names[name]; ok {
			return v, true
		}
	}
	return v, false
}
