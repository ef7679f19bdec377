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

// Package astbuilder provides helper functions to build new ASTs from existing ones.
package astbuilder

import (
	"fmt"
	"reflect"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/pkg/errors"
)

// Transform an expression after its children have been cloned.
// The returned expression replaces the clone in the new tree.
type Transform func(*ast.Expr) (*ast.Expr, error)

var exprPtrType = reflect.TypeFor[*ast.Expr]()

type cloner struct {
	transform Transform
	// subst maps identifiers to the expressions replacing them.
	subst map[string]*ast.Expr
	errs  *fmterr.Errors
}

// shadow returns a cloner in which the given names are no longer substituted.
func (cl *cloner) shadow(names ...string) *cloner {
	if len(cl.subst) == 0 {
		return cl
	}
	var reduced map[string]*ast.Expr
	for _, name := range names {
		if _, ok := cl.subst[name]; !ok {
			continue
		}
		if reduced == nil {
			reduced = make(map[string]*ast.Expr, len(cl.subst))
			for k, v := range cl.subst {
				reduced[k] = v
			}
		}
		delete(reduced, name)
	}
	if reduced == nil {
		return cl
	}
	return &cloner{transform: cl.transform, subst: reduced, errs: cl.errs}
}

func paramNames(params []ast.Param) []string {
	var names []string
	for _, p := range params {
		names = append(names, p.Pattern.Bindings()...)
	}
	return names
}

func (cl *cloner) clone(e *ast.Expr) *ast.Expr {
	if e == nil {
		return nil
	}
	if id, ok := e.Kind.(*ast.Identifier); ok {
		if with, ok := cl.subst[id.Ident]; ok {
			return with
		}
	}
	out := *e
	out.Attributes = append([]ast.Attribute(nil), e.Attributes...)
	switch k := e.Kind.(type) {
	case *ast.Let:
		o := *k
		o.Value = cl.clone(k.Value)
		o.Else = cl.clone(k.Else)
		o.Body = cl.shadow(k.Ident).clone(k.Body)
		out.Kind = &o
	case *ast.LetPattern:
		o := *k
		o.Value = cl.clone(k.Value)
		o.Else = cl.clone(k.Else)
		o.Body = cl.shadow(k.Pattern.Bindings()...).clone(k.Body)
		out.Kind = &o
	case *ast.Block:
		o := ast.Block{Exprs: make([]*ast.Expr, len(k.Exprs))}
		cur := cl
		for i, elt := range k.Exprs {
			o.Exprs[i] = cur.clone(elt)
			switch eltK := elt.Kind.(type) {
			case *ast.Let:
				cur = cur.shadow(eltK.Ident)
			case *ast.LetPattern:
				cur = cur.shadow(eltK.Pattern.Bindings()...)
			case *ast.Function:
				cur = cur.shadow(eltK.Ident)
			}
		}
		out.Kind = &o
	case *ast.Function:
		o := *k
		inner := cl.shadow(append([]string{k.Ident}, paramNames(k.Params)...)...)
		o.Params = inner.cloneValue(reflect.ValueOf(k.Params)).Interface().([]ast.Param)
		o.Body = inner.clone(k.Body)
		out.Kind = &o
	case *ast.Lambda:
		o := *k
		inner := cl.shadow(paramNames(k.Params)...)
		o.Params = inner.cloneValue(reflect.ValueOf(k.Params)).Interface().([]ast.Param)
		o.Body = inner.clone(k.Body)
		out.Kind = &o
	case *ast.For:
		o := *k
		o.Iter = cl.clone(k.Iter)
		names := []string{k.Var}
		if k.Pattern != nil {
			names = k.Pattern.Bindings()
		}
		o.Body = cl.shadow(names...).clone(k.Body)
		out.Kind = &o
	case *ast.Match:
		o := ast.Match{Scrutinee: cl.clone(k.Scrutinee), Arms: make([]ast.MatchArm, len(k.Arms))}
		for i, arm := range k.Arms {
			inner := cl.shadow(arm.Pattern.Bindings()...)
			o.Arms[i] = ast.MatchArm{
				Pattern: arm.Pattern,
				Guard:   inner.clone(arm.Guard),
				Body:    inner.clone(arm.Body),
				Span:    arm.Span,
			}
		}
		out.Kind = &o
	default:
		kind, ok := cl.cloneValue(reflect.ValueOf(e.Kind)).Interface().(ast.Kind)
		if !ok {
			cl.errs.Append(fmterr.Internalf(e, "cannot clone %T", e.Kind))
			return e
		}
		out.Kind = kind
	}
	if cl.transform == nil {
		return &out
	}
	res, err := cl.transform(&out)
	if err != nil {
		cl.errs.Append(err)
		return &out
	}
	return res
}

// cloneValue deep copies a value, cloning expressions with clone.
// Patterns and types are immutable and shared between the trees.
func (cl *cloner) cloneValue(v reflect.Value) reflect.Value {
	if v.Type() == exprPtrType {
		if v.IsNil() {
			return v
		}
		return reflect.ValueOf(cl.clone(v.Interface().(*ast.Expr)))
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		elem := v.Elem()
		if elem.Kind() != reflect.Struct || elem.Type().PkgPath() != exprPtrType.Elem().PkgPath() {
			return v
		}
		switch v.Interface().(type) {
		case *ast.Pattern, *ast.Type:
			return v
		}
		out := reflect.New(elem.Type())
		out.Elem().Set(cl.cloneValue(elem))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		for i := range v.NumField() {
			out.Field(i).Set(cl.cloneValue(v.Field(i)))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(cl.cloneValue(v.Index(i)))
		}
		return out
	}
	return v
}

// Clone an expression, applying a transformation to every cloned node.
// The transformation can be nil.
func Clone(e *ast.Expr, transform Transform) (*ast.Expr, error) {
	return run(&cloner{transform: transform}, e)
}

// Substitute returns a copy of e in which every identifier free in e and
// present in subst is replaced by its mapping. Substituted expressions are
// shared, not copied.
func Substitute(e *ast.Expr, subst map[string]*ast.Expr) (*ast.Expr, error) {
	return run(&cloner{subst: subst}, e)
}

func run(cl *cloner, e *ast.Expr) (*ast.Expr, error) {
	cl.errs = &fmterr.Errors{}
	out := cl.clone(e)
	if cl.errs.Empty() {
		return out, nil
	}
	return nil, fmt.Errorf("cannot clone AST:\n%+v", cl.errs.ToError())
}

// ToTransform converts a function on a specific kind into a transform.
// Expressions of other kinds are left unchanged.
func ToTransform[K ast.Kind](f func(*ast.Expr, K) (*ast.Expr, error)) Transform {
	return func(e *ast.Expr) (*ast.Expr, error) {
		k, ok := e.Kind.(K)
		if !ok {
			return e, nil
		}
		return f(e, k)
	}
}

// Rename returns a transform renaming identifiers.
func Rename(names map[string]string) Transform {
	return ToTransform(func(e *ast.Expr, id *ast.Identifier) (*ast.Expr, error) {
		to, ok := names[id.Ident]
		if !ok {
			return e, nil
		}
		if to == "" {
			return nil, errors.Errorf("cannot rename %s to an empty name", id.Ident)
		}
		out := *e
		out.Kind = &ast.Identifier{Ident: to}
		return &out, nil
	})
}
