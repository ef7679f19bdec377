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
	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

func (l *Lowerer) lowerList(list *ast.List) (target.Stream, error) {
	spread := false
	for _, elt := range list.Elements {
		if _, ok := elt.Kind.(*ast.Spread); ok {
			spread = true
		}
	}
	if !spread {
		elts, err := l.lowerExprs(list.Elements)
		if err != nil {
			return nil, err
		}
		return target.Quote("vec![$0]", elts), nil
	}
	v := l.names.Name("v")
	stmts := target.Quote("let mut $0 = Vec::new();", v)
	for _, elt := range list.Elements {
		if sp, ok := elt.Kind.(*ast.Spread); ok {
			x, err := l.receiver(sp.Expr)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, target.Quote("$0.extend($1.clone());", v, x)...)
			continue
		}
		x, err := l.lowerExpr(elt)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, target.Quote("$0.push($1);", v, x)...)
	}
	return target.Braces(append(stmts, target.Ident(v))), nil
}

func (l *Lowerer) lowerSet(set *ast.Set) (target.Stream, error) {
	if len(set.Elements) == 0 {
		return target.Quote("HashSet::new()"), nil
	}
	elts, err := l.lowerExprs(set.Elements)
	if err != nil {
		return nil, err
	}
	return target.Quote("HashSet::from([$0])", elts), nil
}

func (l *Lowerer) lowerTuple(tuple *ast.Tuple) (target.Stream, error) {
	elts, err := l.lowerExprs(tuple.Elements)
	if err != nil {
		return nil, err
	}
	if len(elts) == 0 {
		return target.Quote("()"), nil
	}
	return tupleOf(elts), nil
}

// lowerObjectLiteral lowers an object literal to a map with owned string keys.
func (l *Lowerer) lowerObjectLiteral(obj *ast.ObjectLiteral) (target.Stream, error) {
	if len(obj.Fields) == 0 {
		return target.Quote("HashMap::new()"), nil
	}
	entry := func(f ast.ObjectField) (target.Stream, error) {
		v, err := l.lowerExpr(f.Value)
		if err != nil {
			return nil, err
		}
		return target.Quote("($0.to_string(), $1)", quoteString(f.Key), ownedString(f.Value, v)), nil
	}
	spread := false
	for _, f := range obj.Fields {
		spread = spread || f.Spread
	}
	if !spread {
		entries := make([]target.Stream, len(obj.Fields))
		for i, f := range obj.Fields {
			var err error
			if entries[i], err = entry(f); err != nil {
				return nil, err
			}
		}
		return target.Quote("HashMap::from([$0])", entries), nil
	}
	m := l.names.Name("map")
	stmts := target.Quote("let mut $0 = HashMap::new();", m)
	for _, f := range obj.Fields {
		if f.Spread {
			x, err := l.receiver(f.Value)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, target.Quote("$0.extend($1.clone());", m, x)...)
			continue
		}
		v, err := l.lowerExpr(f.Value)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, target.Quote("$0.insert($1.to_string(), $2);", m, quoteString(f.Key), ownedString(f.Value, v))...)
	}
	return target.Braces(append(stmts, target.Ident(m))), nil
}

// fieldType returns the declared type of a field of a structure.
func (l *Lowerer) fieldType(structName, field string) *ast.Type {
	for _, f := range l.structs[structName] {
		if f.Ident == field {
			return f.Type
		}
	}
	return nil
}

func (l *Lowerer) lowerStructLiteral(sl *ast.StructLiteral) (target.Stream, error) {
	var fields []target.Stream
	for _, f := range sl.Fields {
		name := target.Ident(f.Ident)
		if id, ok := f.Value.Kind.(*ast.Identifier); ok && id.Ident == f.Ident {
			fields = append(fields, target.Stream{name})
			continue
		}
		v, err := l.lowerExpr(f.Value)
		if err != nil {
			return nil, err
		}
		if l.fieldType(sl.Ident, f.Ident).NamedAs(analysis.OwnedString) {
			v = ownedString(f.Value, v)
		}
		fields = append(fields, target.Quote("$0: $1", name, v))
	}
	if sl.Base != nil {
		base, err := l.lowerExpr(sl.Base)
		if err != nil {
			return nil, err
		}
		fields = append(fields, target.Concat(target.Stream{restToken}, base))
	}
	return target.Concat(pathStream(splitPath(sl.Ident)), target.Braces(target.CommaList(fields))), nil
}

func (l *Lowerer) lowerVecRepeat(vr *ast.VecRepeat) (target.Stream, error) {
	v, err := l.lowerExpr(vr.Value)
	if err != nil {
		return nil, err
	}
	n, err := l.lowerExpr(vr.Count)
	if err != nil {
		return nil, err
	}
	return target.Quote("vec![$0; $1]", v, usizeIndex(l, n, vr.Count)), nil
}
