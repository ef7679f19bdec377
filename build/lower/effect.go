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
	"github.com/paiml/ruchy-sub001/build/target"
)

// lowerEffect lowers an effect to a trait declaring its operations.
func (l *Lowerer) lowerEffect(e *ast.Expr, eff *ast.Effect) (target.Stream, error) {
	name, err := target.DeclIdent(e.Span, eff.Ident)
	if err != nil {
		return nil, err
	}
	var ops target.Stream
	for _, op := range eff.Operations {
		decl := &funcDecl{src: e, name: op.Ident, params: op.Params, ret: op.ReturnType}
		self := ast.Param{Pattern: &ast.Pattern{Kind: &ast.IdentPattern{Ident: "self"}}}
		decl.params = append([]ast.Param{self}, op.Params...)
		if decl.ret == nil {
			// Operations without a return type return unit.
			decl.ret = named("()")
		}
		s, err := l.lowerFunc(decl, l.signatureOf(decl), funcOpts{})
		if err != nil {
			return nil, err
		}
		ops = append(ops, s...)
	}
	return target.Quote("pub trait $0 $1", name, target.Block(ops)), nil
}

// lowerHandle lowers the handled expression. Handlers are not installed.
func (l *Lowerer) lowerHandle(h *ast.Handle) (target.Stream, error) {
	for _, handler := range h.Handlers {
		l.log.Debug("drop effect handler", "operation", handler.Operation)
	}
	return l.lowerExpr(h.Expr)
}
