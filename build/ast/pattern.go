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

type (
	// Pattern is a destructuring pattern in match arms, let bindings,
	// parameters and for loops.
	Pattern struct {
		Kind PatternKind
	}

	// PatternKind is the variant of a pattern.
	PatternKind interface {
		Name() string
		patternKind()
	}

	// WildcardPattern is _.
	WildcardPattern struct{}

	// LiteralPattern matches a literal value.
	LiteralPattern struct {
		Literal Literal `json:"literal"`
	}

	// IdentPattern binds a name.
	IdentPattern struct {
		Ident   string `json:"name"`
		Mutable bool   `json:"mutable,omitempty"`
	}

	// QualifiedPattern matches a path such as Color::Red.
	QualifiedPattern struct {
		Path []string `json:"path"`
	}

	// TuplePattern destructures a tuple.
	TuplePattern struct {
		Elements []*Pattern `json:"elements,omitempty"`
	}

	// ListPattern destructures a list, optionally with a rest pattern.
	ListPattern struct {
		Elements []*Pattern `json:"elements,omitempty"`
	}

	// StructPatternField is a field in a structure pattern.
	// A nil pattern is the shorthand form binding the field name.
	StructPatternField struct {
		Ident   string   `json:"name"`
		Pattern *Pattern `json:"pattern,omitempty"`
	}

	// StructPattern destructures a structure.
	StructPattern struct {
		Ident   string               `json:"name"`
		Fields  []StructPatternField `json:"fields,omitempty"`
		HasRest bool                 `json:"has_rest,omitempty"`
	}

	// TupleVariantPattern matches an enum tuple variant such as Shape::Circle(r).
	TupleVariantPattern struct {
		Path     []string   `json:"path"`
		Elements []*Pattern `json:"elements,omitempty"`
	}

	// OrPattern matches any of its alternatives.
	OrPattern struct {
		Alternatives []*Pattern `json:"alternatives"`
	}

	// RangePattern matches a range of values.
	RangePattern struct {
		Start     *Pattern `json:"start"`
		End       *Pattern `json:"end"`
		Inclusive bool     `json:"inclusive,omitempty"`
	}

	// RestPattern is .. in a list pattern.
	RestPattern struct{}

	// RestNamedPattern is ..name in a list pattern.
	RestNamedPattern struct {
		Ident string `json:"name"`
	}

	// OkPattern is Ok(inner).
	OkPattern struct {
		Inner *Pattern `json:"inner"`
	}

	// ErrPattern is Err(inner).
	ErrPattern struct {
		Inner *Pattern `json:"inner"`
	}

	// SomePattern is Some(inner).
	SomePattern struct {
		Inner *Pattern `json:"inner"`
	}

	// NonePattern is None.
	NonePattern struct{}

	// WithDefaultPattern binds Inner, with Default used when the value is absent.
	WithDefaultPattern struct {
		Inner   *Pattern `json:"inner"`
		Default *Expr    `json:"default"`
	}
)

var patternKinds = []PatternKind{
	&WildcardPattern{},
	&LiteralPattern{},
	&IdentPattern{},
	&QualifiedPattern{},
	&TuplePattern{},
	&ListPattern{},
	&StructPattern{},
	&TupleVariantPattern{},
	&OrPattern{},
	&RangePattern{},
	&RestPattern{},
	&RestNamedPattern{},
	&OkPattern{},
	&ErrPattern{},
	&SomePattern{},
	&NonePattern{},
	&WithDefaultPattern{},
}

func (*WildcardPattern) Name() string     { return "Wildcard" }
func (*LiteralPattern) Name() string      { return "Literal" }
func (*IdentPattern) Name() string        { return "Identifier" }
func (*QualifiedPattern) Name() string    { return "QualifiedName" }
func (*TuplePattern) Name() string        { return "Tuple" }
func (*ListPattern) Name() string         { return "List" }
func (*StructPattern) Name() string       { return "Struct" }
func (*TupleVariantPattern) Name() string { return "TupleVariant" }
func (*OrPattern) Name() string           { return "Or" }
func (*RangePattern) Name() string        { return "Range" }
func (*RestPattern) Name() string         { return "Rest" }
func (*RestNamedPattern) Name() string    { return "RestNamed" }
func (*OkPattern) Name() string           { return "Ok" }
func (*ErrPattern) Name() string          { return "Err" }
func (*SomePattern) Name() string         { return "Some" }
func (*NonePattern) Name() string         { return "None" }
func (*WithDefaultPattern) Name() string  { return "WithDefault" }

func (*WildcardPattern) patternKind()     {}
func (*LiteralPattern) patternKind()      {}
func (*IdentPattern) patternKind()        {}
func (*QualifiedPattern) patternKind()    {}
func (*TuplePattern) patternKind()        {}
func (*ListPattern) patternKind()         {}
func (*StructPattern) patternKind()       {}
func (*TupleVariantPattern) patternKind() {}
func (*OrPattern) patternKind()           {}
func (*RangePattern) patternKind()        {}
func (*RestPattern) patternKind()         {}
func (*RestNamedPattern) patternKind()    {}
func (*OkPattern) patternKind()           {}
func (*ErrPattern) patternKind()          {}
func (*SomePattern) patternKind()         {}
func (*NonePattern) patternKind()         {}
func (*WithDefaultPattern) patternKind()  {}

// Bindings returns the names bound by the pattern, in order of appearance.
func (p *Pattern) Bindings() []string {
	var names []string
	p.bindings(&names)
	return names
}

func (p *Pattern) bindings(names *[]string) {
	if p == nil {
		return
	}
	switch pT := p.Kind.(type) {
	case *IdentPattern:
		*names = append(*names, pT.Ident)
	case *RestNamedPattern:
		*names = append(*names, pT.Ident)
	case *TuplePattern:
		for _, elt := range pT.Elements {
			elt.bindings(names)
		}
	case *ListPattern:
		for _, elt := range pT.Elements {
			elt.bindings(names)
		}
	case *TupleVariantPattern:
		for _, elt := range pT.Elements {
			elt.bindings(names)
		}
	case *StructPattern:
		for _, field := range pT.Fields {
			if field.Pattern == nil {
				*names = append(*names, field.Ident)
				continue
			}
			field.Pattern.bindings(names)
		}
	case *OrPattern:
		if len(pT.Alternatives) > 0 {
			pT.Alternatives[0].bindings(names)
		}
	case *OkPattern:
		pT.Inner.bindings(names)
	case *ErrPattern:
		pT.Inner.bindings(names)
	case *SomePattern:
		pT.Inner.bindings(names)
	case *WithDefaultPattern:
		pT.Inner.bindings(names)
	}
}
