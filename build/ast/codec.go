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

package ast

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

type registry[K interface{ Name() string }] map[string]reflect.Type

func newRegistry[K interface{ Name() string }](kinds []K) registry[K] {
	reg := make(registry[K], len(kinds))
	for _, k := range kinds {
		reg[k.Name()] = reflect.TypeOf(k).Elem()
	}
	return reg
}

func (reg registry[K]) decode(name string, data json.RawMessage) (K, error) {
	var zero K
	tp, ok := reg[name]
	if !ok {
		return zero, errors.Errorf("unknown kind %q", name)
	}
	val := reflect.New(tp)
	if len(data) > 0 {
		if err := json.Unmarshal(data, val.Interface()); err != nil {
			return zero, errors.Wrapf(err, "cannot decode %s", name)
		}
	}
	return val.Interface().(K), nil
}

var (
	exprRegistry    = newRegistry(exprKinds)
	patternRegistry = newRegistry(patternKinds)
	typeRegistry    = newRegistry(typeKinds)
)

type exprJSON struct {
	Kind       string          `json:"kind"`
	Span       Span            `json:"span"`
	Attributes []Attribute     `json:"attributes,omitempty"`
	Leading    []Comment       `json:"leading,omitempty"`
	Trailing   *Comment        `json:"trailing,omitempty"`
	Node       json.RawMessage `json:"node,omitempty"`
}

// MarshalJSON encodes the expression with its kind as a discriminator.
func (e *Expr) MarshalJSON() ([]byte, error) {
	if e.Kind == nil {
		return nil, errors.Errorf("cannot encode an expression without a kind")
	}
	node, err := json.Marshal(e.Kind)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exprJSON{
		Kind:       e.Kind.Name(),
		Span:       e.Span,
		Attributes: e.Attributes,
		Leading:    e.Leading,
		Trailing:   e.Trailing,
		Node:       node,
	})
}

// UnmarshalJSON decodes an expression encoded by MarshalJSON.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var ej exprJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}
	kind, err := exprRegistry.decode(ej.Kind, ej.Node)
	if err != nil {
		return errors.Wrapf(err, "at %d:%d", ej.Span.Start, ej.Span.End)
	}
	*e = Expr{
		Kind:       kind,
		Span:       ej.Span,
		Attributes: ej.Attributes,
		Leading:    ej.Leading,
		Trailing:   ej.Trailing,
	}
	return nil
}

type variantJSON struct {
	Kind string          `json:"kind"`
	Span *Span           `json:"span,omitempty"`
	Node json.RawMessage `json:"node,omitempty"`
}

// MarshalJSON encodes the pattern with its kind as a discriminator.
func (p *Pattern) MarshalJSON() ([]byte, error) {
	if p.Kind == nil {
		return nil, errors.Errorf("cannot encode a pattern without a kind")
	}
	node, err := json.Marshal(p.Kind)
	if err != nil {
		return nil, err
	}
	return json.Marshal(variantJSON{Kind: p.Kind.Name(), Node: node})
}

// UnmarshalJSON decodes a pattern encoded by MarshalJSON.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	var vj variantJSON
	if err := json.Unmarshal(data, &vj); err != nil {
		return err
	}
	kind, err := patternRegistry.decode(vj.Kind, vj.Node)
	if err != nil {
		return errors.Wrap(err, "pattern")
	}
	p.Kind = kind
	return nil
}

// MarshalJSON encodes the type with its kind as a discriminator.
func (t *Type) MarshalJSON() ([]byte, error) {
	if t.Kind == nil {
		return nil, errors.Errorf("cannot encode a type without a kind")
	}
	node, err := json.Marshal(t.Kind)
	if err != nil {
		return nil, err
	}
	span := t.Span
	return json.Marshal(variantJSON{Kind: t.Kind.Name(), Span: &span, Node: node})
}

// UnmarshalJSON decodes a type encoded by MarshalJSON.
func (t *Type) UnmarshalJSON(data []byte) error {
	var vj variantJSON
	if err := json.Unmarshal(data, &vj); err != nil {
		return err
	}
	kind, err := typeRegistry.decode(vj.Kind, vj.Node)
	if err != nil {
		return errors.Wrap(err, "type")
	}
	t.Kind = kind
	if vj.Span != nil {
		t.Span = *vj.Span
	}
	return nil
}

// Decode reads an expression encoded in JSON.
func Decode(r io.Reader) (*Expr, error) {
	e := &Expr{}
	if err := json.NewDecoder(r).Decode(e); err != nil {
		return nil, errors.Wrap(err, "cannot decode AST")
	}
	return e, nil
}

// Encode writes an expression encoded in JSON.
func Encode(w io.Writer, e *Expr) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
