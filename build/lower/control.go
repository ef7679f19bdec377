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
	"strings"

	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

func (l *Lowerer) lowerIf(ifx *ast.If, owned bool) (target.Stream, error) {
	cond, err := l.lowerExpr(ifx.Cond)
	if err != nil {
		return nil, err
	}
	then, err := l.branch(ifx.Then, modeFor(owned))
	if err != nil {
		return nil, err
	}
	s := target.Quote("if $0 $1", cond, then)
	return l.lowerElse(s, ifx.Else, owned)
}

func (l *Lowerer) lowerElse(s target.Stream, els *ast.Expr, owned bool) (target.Stream, error) {
	if els == nil {
		return s, nil
	}
	var elseS target.Stream
	var err error
	switch elseT := els.Kind.(type) {
	case *ast.If:
		elseS, err = l.lowerIf(elseT, owned)
	case *ast.IfLet:
		elseS, err = l.lowerIfLet(elseT, owned)
	default:
		elseS, err = l.branch(els, modeFor(owned))
	}
	if err != nil {
		return nil, err
	}
	return target.Quote("$0 else $1", s, elseS), nil
}

// scrutinee lowers a value matched against patterns, as a slice if a
// pattern destructures a list.
func (l *Lowerer) scrutinee(value *ast.Expr, pats ...*ast.Pattern) (target.Stream, error) {
	for _, p := range pats {
		if analysis.PatternNeedsSlice(p) || hasListPattern(p) {
			recv, err := l.receiver(value)
			if err != nil {
				return nil, err
			}
			return target.Quote("$0.as_slice()", recv), nil
		}
	}
	return l.lowerExpr(value)
}

func (l *Lowerer) lowerIfLet(ifl *ast.IfLet, owned bool) (target.Stream, error) {
	pat, err := l.lowerPattern(ifl.Pattern, bindMode{})
	if err != nil {
		return nil, err
	}
	value, err := l.scrutinee(ifl.Value, ifl.Pattern)
	if err != nil {
		return nil, err
	}
	then, err := l.branch(ifl.Then, modeFor(owned))
	if err != nil {
		return nil, err
	}
	s := target.Quote("if let $0 = $1 $2", pat, value, then)
	return l.lowerElse(s, ifl.Else, owned)
}

func (l *Lowerer) lowerMatch(m *ast.Match, owned bool) (target.Stream, error) {
	pats := make([]*ast.Pattern, len(m.Arms))
	for i, arm := range m.Arms {
		pats[i] = arm.Pattern
	}
	scrut, err := l.scrutinee(m.Scrutinee, pats...)
	if err != nil {
		return nil, err
	}
	var arms target.Stream
	for _, arm := range m.Arms {
		s, err := l.lowerArm(arm, owned)
		if err != nil {
			return nil, err
		}
		arms = append(arms, s...)
	}
	return target.Concat(target.Quote("match $0", scrut), target.Block(arms)), nil
}

func (l *Lowerer) lowerArm(arm ast.MatchArm, owned bool) (target.Stream, error) {
	pat, err := l.lowerPattern(arm.Pattern, bindMode{})
	if err != nil {
		return nil, err
	}
	if arm.Guard != nil {
		guard, err := l.lowerExpr(arm.Guard)
		if err != nil {
			return nil, err
		}
		pat = target.Quote("$0 if $1", pat, guard)
	}
	var body target.Stream
	if blk, ok := arm.Body.Kind.(*ast.Block); ok {
		body, err = l.lowerBlock(blk.Exprs, modeFor(owned))
	} else {
		body, err = l.lowerTail(arm.Body, modeFor(owned))
	}
	if err != nil {
		return nil, err
	}
	return target.Quote("$0 => $1,", pat, body), nil
}

// labelName returns a loop label with its leading quote.
func labelName(name string) string {
	return "'" + strings.TrimPrefix(name, "'")
}

// label references a loop label.
func label(name string) target.Stream {
	if name == "" {
		return nil
	}
	return target.Stream{target.W(labelName(name))}
}

// labelDecl declares a loop label.
func labelDecl(name string) target.Stream {
	if name == "" {
		return nil
	}
	return target.Stream{target.W(labelName(name)), {Kind: target.Punct, Text: ":"}}
}

func (l *Lowerer) lowerWhile(w *ast.While) (target.Stream, error) {
	cond, err := l.lowerExpr(w.Cond)
	if err != nil {
		return nil, err
	}
	body, err := l.branch(w.Body, tailDiscard)
	if err != nil {
		return nil, err
	}
	return target.Concat(labelDecl(w.Label), target.Quote("while $0 $1", cond, body)), nil
}

func (l *Lowerer) lowerWhileLet(w *ast.WhileLet) (target.Stream, error) {
	pat, err := l.lowerPattern(w.Pattern, bindMode{})
	if err != nil {
		return nil, err
	}
	value, err := l.scrutinee(w.Value, w.Pattern)
	if err != nil {
		return nil, err
	}
	body, err := l.branch(w.Body, tailDiscard)
	if err != nil {
		return nil, err
	}
	return target.Concat(labelDecl(w.Label), target.Quote("while let $0 = $1 $2", pat, value, body)), nil
}

func (l *Lowerer) lowerFor(e *ast.Expr, f *ast.For) (target.Stream, error) {
	var binding target.Stream
	var err error
	switch {
	case f.Pattern != nil:
		binding, err = l.lowerPattern(f.Pattern, bindMode{})
	case f.Var != "":
		binding, err = l.bindIdent(f.Var, false, bindMode{})
	default:
		return nil, malformedf(e, "for loop without a loop variable")
	}
	if err != nil {
		return nil, err
	}
	iter, err := l.lowerExpr(f.Iter)
	if err != nil {
		return nil, err
	}
	body, err := l.branch(f.Body, tailDiscard)
	if err != nil {
		return nil, err
	}
	return target.Concat(labelDecl(f.Label), target.Quote("for $0 in $1 $2", binding, iter, body)), nil
}

func (l *Lowerer) lowerLoop(lp *ast.Loop) (target.Stream, error) {
	body, err := l.branch(lp.Body, tailDiscard)
	if err != nil {
		return nil, err
	}
	return target.Concat(labelDecl(lp.Label), target.Quote("loop $0", body)), nil
}

func (l *Lowerer) lowerBreak(b *ast.Break) (target.Stream, error) {
	s := target.Concat(target.Words("break"), label(b.Label))
	if b.Value == nil {
		return s, nil
	}
	value, err := l.lowerExpr(b.Value)
	if err != nil {
		return nil, err
	}
	return target.Concat(s, value), nil
}

func (l *Lowerer) lowerReturn(r *ast.Return) (target.Stream, error) {
	if r.Value == nil {
		return target.Words("return"), nil
	}
	mode := tailValue
	if l.fn != nil && l.fn.ownedReturn {
		mode = tailOwned
	}
	value, err := l.lowerTail(r.Value, mode)
	if err != nil {
		return nil, err
	}
	return target.Concat(target.Words("return"), value), nil
}

// lowerTryCatch evaluates the try block and then the finally block.
// Catch clauses are not lowered.
func (l *Lowerer) lowerTryCatch(tc *ast.TryCatch) (target.Stream, error) {
	try, err := l.branch(tc.Try, tailValue)
	if err != nil {
		return nil, err
	}
	if len(tc.Catches) > 0 {
		l.log.Debug("catch clauses dropped", "count", len(tc.Catches))
	}
	if tc.Finally == nil {
		return try, nil
	}
	finally, err := l.branch(tc.Finally, tailDiscard)
	if err != nil {
		return nil, err
	}
	result := l.names.Name("result")
	return target.Quote(`{
		let $0 = $1;
		$2
		$0
	}`, result, try, finally), nil
}
