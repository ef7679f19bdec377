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
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/paiml/ruchy-sub001/build/target"
)

// bindMode specifies how identifiers are bound by a pattern.
type bindMode struct {
	// mutable returns true if a name needs a mutable binding.
	// If nil, the mutability written in the source is used.
	mutable func(name string) bool
}

var (
	wildcard  = target.W("_")
	restToken = target.Token{Kind: target.Joint, Text: ".."}
	orBar     = target.OpToken("|")
)

func (l *Lowerer) lowerPatterns(ps []*ast.Pattern, mode bindMode) ([]target.Stream, error) {
	streams := make([]target.Stream, len(ps))
	for i, p := range ps {
		var err error
		if streams[i], err = l.lowerPattern(p, mode); err != nil {
			return nil, err
		}
	}
	return streams, nil
}

func (l *Lowerer) lowerPattern(p *ast.Pattern, mode bindMode) (target.Stream, error) {
	if p == nil {
		return target.Stream{wildcard}, nil
	}
	switch pT := p.Kind.(type) {
	case *ast.WildcardPattern:
		return target.Stream{wildcard}, nil
	case *ast.LiteralPattern:
		lit := pT.Literal
		return l.lowerLiteral(ast.New(&lit), &lit)
	case *ast.IdentPattern:
		return l.bindIdent(pT.Ident, pT.Mutable, mode)
	case *ast.QualifiedPattern:
		return pathStream(pT.Path), nil
	case *ast.TuplePattern:
		elts, err := l.lowerPatterns(pT.Elements, mode)
		if err != nil {
			return nil, err
		}
		return tupleOf(elts), nil
	case *ast.ListPattern:
		elts, err := l.lowerPatterns(pT.Elements, mode)
		if err != nil {
			return nil, err
		}
		return target.Brackets(target.CommaList(elts)), nil
	case *ast.StructPattern:
		return l.lowerStructPattern(pT, mode)
	case *ast.TupleVariantPattern:
		elts, err := l.lowerPatterns(pT.Elements, mode)
		if err != nil {
			return nil, err
		}
		return target.Concat(pathStream(pT.Path), target.Parens(target.CommaList(elts))), nil
	case *ast.OrPattern:
		alts, err := l.lowerPatterns(pT.Alternatives, mode)
		if err != nil {
			return nil, err
		}
		return target.Join(orBar, alts), nil
	case *ast.RangePattern:
		start, err := l.lowerPattern(pT.Start, mode)
		if err != nil {
			return nil, err
		}
		end, err := l.lowerPattern(pT.End, mode)
		if err != nil {
			return nil, err
		}
		op := ".."
		if pT.Inclusive {
			op = "..="
		}
		return target.Concat(start, target.Stream{{Kind: target.Joint, Text: op}}, end), nil
	case *ast.RestPattern:
		return target.Stream{restToken}, nil
	case *ast.RestNamedPattern:
		name, err := l.bindIdent(pT.Ident, false, mode)
		if err != nil {
			return nil, err
		}
		return target.Concat(name, target.Stream{target.OpToken("@"), restToken}), nil
	case *ast.OkPattern:
		return l.wrapPattern("Ok", pT.Inner, mode)
	case *ast.ErrPattern:
		return l.wrapPattern("Err", pT.Inner, mode)
	case *ast.SomePattern:
		return l.wrapPattern("Some", pT.Inner, mode)
	case *ast.NonePattern:
		return target.Words("None"), nil
	case *ast.WithDefaultPattern:
		return l.lowerPattern(pT.Inner, mode)
	}
	return nil, fmterr.At(fmterr.Unsupported, ast.Span{}, errorf("%s pattern not supported", p.Kind.Name()))
}

func (l *Lowerer) bindIdent(ident string, mutable bool, mode bindMode) (target.Stream, error) {
	name, err := target.DeclIdent(ast.Span{}, ident)
	if err != nil {
		return nil, err
	}
	if mode.mutable != nil {
		mutable = mutable || mode.mutable(ident)
	}
	if mutable {
		return target.Stream{target.W("mut"), name}, nil
	}
	return target.Stream{name}, nil
}

func (l *Lowerer) wrapPattern(wrapper string, inner *ast.Pattern, mode bindMode) (target.Stream, error) {
	s, err := l.lowerPattern(inner, mode)
	if err != nil {
		return nil, err
	}
	return target.Concat(target.Words(wrapper), target.Parens(s)), nil
}

func (l *Lowerer) lowerStructPattern(sp *ast.StructPattern, mode bindMode) (target.Stream, error) {
	var fields []target.Stream
	for _, field := range sp.Fields {
		if field.Pattern == nil {
			s, err := l.bindIdent(field.Ident, false, mode)
			if err != nil {
				return nil, err
			}
			fields = append(fields, s)
			continue
		}
		s, err := l.lowerPattern(field.Pattern, mode)
		if err != nil {
			return nil, err
		}
		fields = append(fields, target.Quote("$0: $1", target.Ident(field.Ident), s))
	}
	if sp.HasRest {
		fields = append(fields, target.Stream{restToken})
	}
	name := pathStream(splitPath(sp.Ident))
	if len(fields) == 0 {
		return target.Concat(name, target.Braces(nil)), nil
	}
	return target.Concat(name, target.Braces(target.CommaList(fields))), nil
}

// tupleOf returns a tuple of streams, with a trailing comma for single elements.
func tupleOf(elts []target.Stream) target.Stream {
	if len(elts) == 1 {
		return target.Quote("($0,)", elts[0])
	}
	return target.Parens(target.CommaList(elts))
}

// refutable returns true if a pattern can fail to match.
func refutable(p *ast.Pattern) bool {
	if p == nil {
		return false
	}
	switch pT := p.Kind.(type) {
	case *ast.WildcardPattern, *ast.IdentPattern, *ast.RestPattern, *ast.RestNamedPattern:
		return false
	case *ast.WithDefaultPattern:
		return refutable(pT.Inner)
	case *ast.TuplePattern:
		for _, elt := range pT.Elements {
			if refutable(elt) {
				return true
			}
		}
		return false
	case *ast.StructPattern:
		for _, field := range pT.Fields {
			if refutable(field.Pattern) {
				return true
			}
		}
		return false
	}
	return true
}

// hasListPattern returns true if a list pattern requires matching on a slice.
func hasListPattern(p *ast.Pattern) bool {
	if p == nil {
		return false
	}
	switch pT := p.Kind.(type) {
	case *ast.ListPattern:
		return true
	case *ast.OrPattern:
		for _, alt := range pT.Alternatives {
			if hasListPattern(alt) {
				return true
			}
		}
	}
	return false
}
