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

// pipelineStage applies a stage of a pipeline to its input.
func pipelineStage(input, stage *ast.Expr) (*ast.Expr, error) {
	switch sT := stage.Kind.(type) {
	case *ast.Identifier, *ast.QualifiedName, *ast.FieldAccess, *ast.Lambda:
		return ast.At(&ast.Call{Func: stage, Args: []*ast.Expr{input}}, stage.Span), nil
	case *ast.Call:
		args := append([]*ast.Expr{input}, sT.Args...)
		return ast.At(&ast.Call{Func: sT.Func, Args: args}, stage.Span), nil
	case *ast.MethodCall:
		if isPlaceholder(sT.Receiver) {
			return ast.At(&ast.MethodCall{Receiver: input, Method: sT.Method, Args: sT.Args}, stage.Span), nil
		}
		args := append([]*ast.Expr{input}, sT.Args...)
		return ast.At(&ast.MethodCall{Receiver: sT.Receiver, Method: sT.Method, Args: args}, stage.Span), nil
	}
	return nil, unsupportedf(stage, "%s expression as a pipeline stage", stage.Kind.Name())
}

func isPlaceholder(e *ast.Expr) bool {
	if e == nil {
		return true
	}
	id, ok := e.Kind.(*ast.Identifier)
	return ok && id.Ident == "_"
}

// lowerPipeline lowers x |> f |> g as g(f(x)).
func (l *Lowerer) lowerPipeline(e *ast.Expr, p *ast.Pipeline) (target.Stream, error) {
	if p.Expr == nil {
		return nil, malformedf(e, "pipeline without an input")
	}
	acc := p.Expr
	for _, stage := range p.Stages {
		var err error
		if acc, err = pipelineStage(acc, stage); err != nil {
			return nil, err
		}
	}
	return l.lowerExpr(acc)
}
