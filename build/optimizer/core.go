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

package optimizer

import (
	"github.com/paiml/ruchy-sub001/build/core"
)

// DefaultFuel bounds the number of beta reductions performed by Optimize.
const DefaultFuel = 1000

// MaxCoreInlineSize is the largest let-bound lambda Optimize inlines.
const MaxCoreInlineSize = 32

type coreOptimizer struct {
	fuel int
}

// Optimize inlines small non-recursive let-bound lambdas of a closed term
// and beta-reduces the applications it creates.
//
// A recursive let is inlined when its lambda never refers to itself. Reduction is bounded by DefaultFuel,
// past which the term is returned partially reduced.
func Optimize(t core.Term) core.Term {
	opt := &coreOptimizer{fuel: DefaultFuel}
	return opt.term(t)
}

func (opt *coreOptimizer) term(t core.Term) core.Term {
	switch tT := t.(type) {
	case *core.Lambda:
		return &core.Lambda{Name: tT.Name, Body: opt.term(tT.Body)}
	case *core.App:
		fn := opt.term(tT.Func)
		arg := opt.term(tT.Arg)
		lambda, ok := fn.(*core.Lambda)
		if !ok || opt.fuel <= 0 {
			return &core.App{Func: fn, Arg: arg}
		}
		opt.fuel--
		return opt.term(core.Beta(lambda.Body, arg))
	case *core.Let:
		value := opt.term(tT.Value)
		body := tT.Body
		if lambda, ok := inlineable(tT, value); ok {
			body = core.Subst(body, 0, core.Shift(lambda, 1, 0))
		}
		return &core.Let{Name: tT.Name, Value: value, Body: opt.term(body), Rec: tT.Rec}
	case *core.Prim:
		args := make([]core.Term, len(tT.Args))
		for i, arg := range tT.Args {
			args[i] = opt.term(arg)
		}
		return &core.Prim{Op: tT.Op, Args: args}
	}
	return t
}

// inlineable returns the lambda bound by a let, expressed in the scope
// enclosing the let, if it can be inlined in the let body.
func inlineable(let *core.Let, value core.Term) (*core.Lambda, bool) {
	lambda, ok := value.(*core.Lambda)
	if !ok || core.Size(lambda) > MaxCoreInlineSize {
		return nil, false
	}
	if !let.Rec {
		return lambda, true
	}
	if core.References(lambda, 0) {
		return nil, false
	}
	return core.Shift(lambda, -1, 0).(*core.Lambda), true
}
