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

// Package lower lowers the surface syntax tree to a stream of Rust tokens.
//
// A [Lowerer] is created once per process and can lower any number of
// trees, one at a time. Each call to [Lowerer.Transpile] or
// [Lowerer.TranspileToProgram] lowers a complete tree: errors abort the
// lowering and no partial output is returned.
//
// The lowerer relies on the local analyses of the analysis package to decide
// parameter types, return types, lifetimes, mutability and ownership of
// strings.
package lower

import (
	"io"
	"log/slog"

	"github.com/paiml/ruchy-sub001/base/ordered"
	"github.com/paiml/ruchy-sub001/base/uname"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/paiml/ruchy-sub001/build/optimizer"
	"github.com/paiml/ruchy-sub001/build/target"
	"github.com/paiml/ruchy-sub001/internal/exprdeps"
)

// EntrySymbol is the name given to a source main function when it is not
// the entry point of the program, and to calls to main.
const EntrySymbol = "__ruchy_main"

type (
	// Config of a lowerer.
	Config struct {
		// Modules are names dispatched as namespaces in method calls.
		Modules []string
		// Builtins recognized in call positions. Defaults to DefaultBuiltins.
		Builtins Builtins
		// Inline runs the inliner on the tree before lowering it.
		Inline bool
		// Logger receives debug records about lowering decisions.
		// Defaults to a logger discarding all records.
		Logger *slog.Logger
	}

	// fnContext is the function being lowered.
	fnContext struct {
		name string
		ret  *ast.Type
		// ownedReturn is set when borrowed strings in tail position need an owning conversion.
		ownedReturn bool
		// moveClosures is set when closures escape the function.
		moveClosures bool
	}

	// Lowerer lowers trees to Rust.
	Lowerer struct {
		builtins Builtins
		inline   bool
		log      *slog.Logger

		// modules persist from one lowering to the next.
		modules *ordered.Set[string]

		// State of the current lowering.
		mutableVars  *ordered.Set[string]
		ownedStrings *ordered.Set[string]
		dataframes   *ordered.Set[string]
		funcs        map[string]*funcSig
		sigs         map[*ast.Function]*funcSig
		structs      map[string][]ast.StructField
		names        *uname.Unique
		fn           *fnContext
		depth        int
	}
)

// New returns a lowerer given a configuration.
func New(cfg Config) *Lowerer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	builtins := cfg.Builtins
	if builtins == nil {
		builtins = DefaultBuiltins()
	}
	l := &Lowerer{
		builtins: builtins,
		inline:   cfg.Inline,
		log:      logger.With("section", "lower"),
		modules:  ordered.NewSet[string](),
	}
	for _, name := range cfg.Modules {
		l.RegisterModule(name)
	}
	l.reset(nil)
	return l
}

// RegisterModule registers a name dispatched as a module in method calls:
// a call name.f(args) is lowered to name::f(args).
func (l *Lowerer) RegisterModule(name string) {
	if l.modules.Add(name) {
		l.log.Debug("register module", "name", name)
	}
}

// IsModule returns true if the name has been registered as a module.
func (l *Lowerer) IsModule(name string) bool {
	return l.modules.Contains(name)
}

func (l *Lowerer) reset(root *ast.Expr) {
	l.mutableVars = ordered.NewSet[string]()
	l.ownedStrings = ordered.NewSet[string]()
	l.dataframes = ordered.NewSet[string]()
	l.funcs = make(map[string]*funcSig)
	l.sigs = make(map[*ast.Function]*funcSig)
	l.structs = make(map[string][]ast.StructField)
	l.names = uname.New()
	l.fn = nil
	l.depth = 0
	if root != nil {
		l.names.Reserve(exprdeps.Idents(root)...)
	}
}

// prepare resets the state of the lowerer and runs the inliner if required.
func (l *Lowerer) prepare(root *ast.Expr) (*ast.Expr, error) {
	if root == nil {
		return nil, fmterr.At(fmterr.MalformedInput, ast.Span{}, errorf("no expression to lower"))
	}
	if l.inline {
		var err error
		root, err = optimizer.InlineWith(root, optimizer.Options{Logger: l.log})
		if err != nil {
			return nil, err
		}
	}
	l.reset(root)
	return root, nil
}

// Transpile lowers a single expression.
func (l *Lowerer) Transpile(e *ast.Expr) (target.Stream, error) {
	e, err := l.prepare(e)
	if err != nil {
		return nil, err
	}
	l.declareAll([]*ast.Expr{e})
	if blk, ok := e.Kind.(*ast.Block); ok {
		return l.lowerBlockExpr(e, blk)
	}
	if isItem(e) {
		return l.lowerItem(e)
	}
	return l.lowerExpr(e)
}

// mark records that a variable is mutated in the current lowering.
func (l *Lowerer) mark(name string) {
	if l.mutableVars.Add(name) {
		l.log.Debug("mutable binding", "name", name)
	}
}
