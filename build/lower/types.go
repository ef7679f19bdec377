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

package lower

import (
	"strconv"

	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/paiml/ruchy-sub001/build/target"
)

// typePos is the position of a type in the output.
type typePos int

const (
	typeLocal typePos = iota
	typeParam
	typeReturn
	typeField
)

// typeNames maps source type names to the target language.
var typeNames = map[string]string{
	"int":    "i64",
	"float":  "f64",
	"bool":   "bool",
	"string": analysis.OwnedString,
	"char":   "char",
	"byte":   "u8",
	"unit":   "()",
	"List":   "Vec",
	"Map":    "HashMap",
	"Dict":   "HashMap",
	"Set":    "HashSet",
}

func (l *Lowerer) lowerTypes(ts []*ast.Type, pos typePos) ([]target.Stream, error) {
	streams := make([]target.Stream, len(ts))
	for i, t := range ts {
		var err error
		if streams[i], err = l.lowerType(t, pos); err != nil {
			return nil, err
		}
	}
	return streams, nil
}

func (l *Lowerer) lowerType(t *ast.Type, pos typePos) (target.Stream, error) {
	if t == nil {
		return target.Quote("()"), nil
	}
	switch tT := t.Kind.(type) {
	case *ast.NamedType:
		if tT.Ident == ast.AnyType {
			return target.Words("_"), nil
		}
		name := tT.Ident
		if mapped, ok := typeNames[name]; ok {
			name = mapped
		}
		if name == "()" {
			return target.Quote("()"), nil
		}
		return pathStream(splitPath(name)), nil
	case *ast.GenericType:
		base := tT.Base
		if mapped, ok := typeNames[base]; ok {
			base = mapped
		}
		params, err := l.lowerTypes(tT.Params, typeLocal)
		if err != nil {
			return nil, err
		}
		return target.Concat(pathStream(splitPath(base)), target.Angles(target.CommaList(params))), nil
	case *ast.OptionalType:
		inner, err := l.lowerType(tT.Inner, typeLocal)
		if err != nil {
			return nil, err
		}
		return target.Quote("Option<$0>", inner), nil
	case *ast.ListType:
		elem, err := l.lowerType(tT.Elem, typeLocal)
		if err != nil {
			return nil, err
		}
		return target.Quote("Vec<$0>", elem), nil
	case *ast.ArrayType:
		elem, err := l.lowerType(tT.Elem, typeLocal)
		if err != nil {
			return nil, err
		}
		return target.Quote("[$0; $1]", elem, strconv.Itoa(tT.Size)), nil
	case *ast.TupleType:
		elts, err := l.lowerTypes(tT.Elements, typeLocal)
		if err != nil {
			return nil, err
		}
		if len(elts) == 0 {
			return target.Quote("()"), nil
		}
		return tupleOf(elts), nil
	case *ast.FunctionType:
		params, err := l.lowerTypes(tT.Params, typeLocal)
		if err != nil {
			return nil, err
		}
		ret, err := l.lowerType(tT.Ret, typeLocal)
		if err != nil {
			return nil, err
		}
		switch pos {
		case typeParam, typeReturn:
			return target.Quote("impl Fn($0) -> $1", params, ret), nil
		case typeField:
			return target.Quote("Box<dyn Fn($0) -> $1>", params, ret), nil
		}
		return target.Quote("fn($0) -> $1", params, ret), nil
	case *ast.ReferenceType:
		inner, err := l.lowerType(tT.Inner, typeLocal)
		if err != nil {
			return nil, err
		}
		s := target.Stream{{Kind: target.Prefix, Text: "&"}}
		if tT.Lifetime != "" {
			s = append(s, target.W(labelName(tT.Lifetime)))
		}
		if tT.Mutable {
			s = append(s, target.W("mut"))
		}
		return target.Concat(s, inner), nil
	case *ast.DataFrameType:
		return target.Words("DataFrame"), nil
	case *ast.SeriesType:
		return target.Words("Series"), nil
	}
	return nil, fmterr.At(fmterr.Unsupported, t.Span, errorf("%s type not supported", t.Kind.Name()))
}
