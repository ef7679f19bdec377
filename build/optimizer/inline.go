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

// Package optimizer inlines small non-recursive functions, on the surface
// AST before lowering and on core terms after normalization.
package optimizer

import (
	"io"
	"log/slog"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/internal/astbuilder"
)

// MaxInlineSize is the largest body size of a function that can be inlined.
const MaxInlineSize = 10

// Options of the inliner.
type Options struct {
	// MaxSize overrides MaxInlineSize when positive.
	MaxSize int
	Logger  *slog.Logger
}

type inliner struct {
	opts       Options
	candidates map[string]*ast.Function
	active     map[string]bool
}

// Inline replaces calls of small non-recursive functions by their bodies.
// Function definitions are kept in place.
func Inline(e *ast.Expr) (*ast.Expr, error) {
	return InlineWith(e, Options{})
}

// InlineWith runs the inliner with options.
func InlineWith(e *ast.Expr, opts Options) (*ast.Expr, error) {
	if opts.MaxSize <= 0 {
		opts.MaxSize = MaxInlineSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	in := &inliner{
		opts:       opts,
		candidates: make(map[string]*ast.Function),
		active:     make(map[string]bool),
	}
	in.collect(e)
	return in.rewrite(e)
}

// BodySize measures a function body: the length of blocks, with let and if
// expressions contributing one plus the size of what they contain.
func BodySize(e *ast.Expr) int {
	if e == nil {
		return 0
	}
	switch k := e.Kind.(type) {
	case *ast.Block:
		size := 0
		for _, elt := range k.Exprs {
			size += BodySize(elt)
		}
		return size
	case *ast.Let:
		size := 1
		if k.Body != nil {
			if lit, ok := k.Body.Kind.(*ast.Literal); !ok || lit.Lit != ast.UnitLit {
				size += BodySize(k.Body)
			}
		}
		return size
	case *ast.If:
		return 1 + BodySize(k.Then) + BodySize(k.Else)
	}
	return 1
}

// IsDirectlyRecursive returns true if the body of fn calls fn.
func IsDirectlyRecursive(fn *ast.Function) bool {
	return ast.Any(fn.Body, func(e *ast.Expr) bool {
		call, ok := e.Kind.(*ast.Call)
		if !ok {
			return false
		}
		id, ok := call.Func.Kind.(*ast.Identifier)
		return ok && id.Ident == fn.Ident
	})
}

func simpleParams(fn *ast.Function) bool {
	for _, p := range fn.Params {
		if p.ParamName() == "" || p.Default != nil {
			return false
		}
	}
	return true
}

func (in *inliner) collect(root *ast.Expr) {
	seen := make(map[string]bool)
	ast.Inspect(root, func(e *ast.Expr) bool {
		fn, ok := e.Kind.(*ast.Function)
		if !ok {
			return true
		}
		if seen[fn.Ident] {
			// Ambiguous name: never inline.
			delete(in.candidates, fn.Ident)
			return true
		}
		seen[fn.Ident] = true
		size := BodySize(fn.Body)
		switch {
		case fn.IsAsync:
		case size > in.opts.MaxSize:
		case !simpleParams(fn):
		case IsDirectlyRecursive(fn):
		default:
			in.candidates[fn.Ident] = fn
			in.opts.Logger.Debug("inline candidate", "function", fn.Ident, "size", size)
		}
		return true
	})
}

func (in *inliner) rewrite(e *ast.Expr) (*ast.Expr, error) {
	return astbuilder.Clone(e, astbuilder.ToTransform(in.inlineCall))
}

func (in *inliner) inlineCall(e *ast.Expr, call *ast.Call) (*ast.Expr, error) {
	id, ok := call.Func.Kind.(*ast.Identifier)
	if !ok {
		return e, nil
	}
	fn, ok := in.candidates[id.Ident]
	if !ok || in.active[id.Ident] || len(fn.Params) != len(call.Args) {
		return e, nil
	}
	subst := make(map[string]*ast.Expr, len(fn.Params))
	for i, p := range fn.Params {
		subst[p.ParamName()] = call.Args[i]
	}
	body, err := astbuilder.Substitute(fn.Body, subst)
	if err != nil {
		return nil, err
	}
	if block, ok := body.Kind.(*ast.Block); ok && len(block.Exprs) == 1 {
		body = block.Exprs[0]
	}
	in.active[id.Ident] = true
	defer delete(in.active, id.Ident)
	return in.rewrite(body)
}
