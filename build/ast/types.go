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
	"strconv"
	"strings"
)

type (
	// Type is a type annotation written in the source.
	Type struct {
		Kind TypeKind
		Span Span
	}

	// TypeKind is the variant of a type annotation.
	TypeKind interface {
		Name() string
		typeKind()
	}

	// NamedType is a type referenced by name, such as i32, String or Any.
	NamedType struct {
		Ident string `json:"name"`
	}

	// GenericType is a generic type instance such as Vec<i32>.
	GenericType struct {
		Base   string  `json:"base"`
		Params []*Type `json:"params"`
	}

	// OptionalType is T?.
	OptionalType struct {
		Inner *Type `json:"inner"`
	}

	// ListType is [T].
	ListType struct {
		Elem *Type `json:"elem"`
	}

	// ArrayType is [T; size].
	ArrayType struct {
		Elem *Type `json:"elem"`
		Size int   `json:"size"`
	}

	// TupleType is (T, U).
	TupleType struct {
		Elements []*Type `json:"elements,omitempty"`
	}

	// FunctionType is fn(T) -> U.
	FunctionType struct {
		Params []*Type `json:"params,omitempty"`
		Ret    *Type   `json:"ret"`
	}

	// ReferenceType is &T, &mut T or &'a T.
	ReferenceType struct {
		Mutable  bool   `json:"mutable,omitempty"`
		Lifetime string `json:"lifetime,omitempty"`
		Inner    *Type  `json:"inner"`
	}

	// DataFrameType is the type of a dataframe.
	DataFrameType struct{}

	// SeriesType is the type of a dataframe column.
	SeriesType struct {
		DType *Type `json:"dtype,omitempty"`
	}
)

var typeKinds = []TypeKind{
	&NamedType{},
	&GenericType{},
	&OptionalType{},
	&ListType{},
	&ArrayType{},
	&TupleType{},
	&FunctionType{},
	&ReferenceType{},
	&DataFrameType{},
	&SeriesType{},
}

func (*NamedType) Name() string     { return "Named" }
func (*GenericType) Name() string   { return "Generic" }
func (*OptionalType) Name() string  { return "Optional" }
func (*ListType) Name() string      { return "List" }
func (*ArrayType) Name() string     { return "Array" }
func (*TupleType) Name() string     { return "Tuple" }
func (*FunctionType) Name() string  { return "Function" }
func (*ReferenceType) Name() string { return "Reference" }
func (*DataFrameType) Name() string { return "DataFrame" }
func (*SeriesType) Name() string    { return "Series" }

func (*NamedType) typeKind()     {}
func (*GenericType) typeKind()   {}
func (*OptionalType) typeKind()  {}
func (*ListType) typeKind()      {}
func (*ArrayType) typeKind()     {}
func (*TupleType) typeKind()     {}
func (*FunctionType) typeKind()  {}
func (*ReferenceType) typeKind() {}
func (*DataFrameType) typeKind() {}
func (*SeriesType) typeKind()    {}

// AnyType is the name of the pseudo-type of untyped parameters.
const AnyType = "Any"

// IsAny returns true if the type is the pseudo-type Any.
func (t *Type) IsAny() bool {
	if t == nil {
		return false
	}
	named, ok := t.Kind.(*NamedType)
	return ok && named.Ident == AnyType
}

// IsReference returns true if the type is a reference type.
func (t *Type) IsReference() bool {
	if t == nil {
		return false
	}
	_, ok := t.Kind.(*ReferenceType)
	return ok
}

// NamedAs returns true if the type is a named type with the given name.
func (t *Type) NamedAs(name string) bool {
	if t == nil {
		return false
	}
	named, ok := t.Kind.(*NamedType)
	return ok && named.Ident == name
}

// String returns the type as written in the source language.
func (t *Type) String() string {
	if t == nil {
		return ""
	}
	switch tT := t.Kind.(type) {
	case *NamedType:
		return tT.Ident
	case *GenericType:
		return tT.Base + "<" + typeList(tT.Params) + ">"
	case *OptionalType:
		return tT.Inner.String() + "?"
	case *ListType:
		return "[" + tT.Elem.String() + "]"
	case *ArrayType:
		return "[" + tT.Elem.String() + "; " + strconv.Itoa(tT.Size) + "]"
	case *TupleType:
		return "(" + typeList(tT.Elements) + ")"
	case *FunctionType:
		return "fn(" + typeList(tT.Params) + ") -> " + tT.Ret.String()
	case *ReferenceType:
		var b strings.Builder
		b.WriteString("&")
		if tT.Lifetime != "" {
			b.WriteString("'" + tT.Lifetime + " ")
		}
		if tT.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString(tT.Inner.String())
		return b.String()
	case *DataFrameType:
		return "DataFrame"
	case *SeriesType:
		if tT.DType == nil {
			return "Series"
		}
		return "Series<" + tT.DType.String() + ">"
	}
	return "?"
}

func typeList(ts []*Type) string {
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = t.String()
	}
	return strings.Join(ss, ", ")
}
