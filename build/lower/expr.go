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

func (l *Lowerer) lowerExpr(e *ast.Expr) (target.Stream, error) {
	if e == nil {
		return target.Quote("()"), nil
	}
	switch exprT := e.Kind.(type) {
	case *ast.Literal:
		return l.lowerLiteral(e, exprT)
	case *ast.Identifier:
		return l.lowerIdent(exprT.Ident), nil
	case *ast.QualifiedName:
		return lowerPath(exprT.Module, exprT.Ident), nil
	case *ast.FieldAccess:
		return l.lowerFieldAccess(exprT)
	case *ast.IndexAccess:
		return l.lowerIndexAccess(exprT)
	case *ast.Range:
		return l.lowerRange(exprT)
	case *ast.Binary:
		return l.lowerBinary(e, exprT)
	case *ast.Unary:
		return l.lowerUnary(exprT)
	case *ast.PreIncrement:
		return l.lowerIncrement(exprT.Target, "+=", true)
	case *ast.PostIncrement:
		return l.lowerIncrement(exprT.Target, "+=", false)
	case *ast.PreDecrement:
		return l.lowerIncrement(exprT.Target, "-=", true)
	case *ast.PostDecrement:
		return l.lowerIncrement(exprT.Target, "-=", false)
	case *ast.Assign:
		return l.lowerAssign(exprT)
	case *ast.CompoundAssign:
		return l.lowerCompoundAssign(e, exprT)
	case *ast.Call:
		return l.lowerCall(e, exprT)
	case *ast.MethodCall:
		return l.lowerMethodCall(e, exprT)
	case *ast.OptionalMethodCall:
		return l.lowerOptionalMethodCall(e, exprT)
	case *ast.Let, *ast.LetPattern:
		return l.lowerBlockExpr(e, &ast.Block{Exprs: []*ast.Expr{e}})
	case *ast.Block:
		return l.lowerBlockExpr(e, exprT)
	case *ast.If:
		return l.lowerIf(exprT, false)
	case *ast.IfLet:
		return l.lowerIfLet(exprT, false)
	case *ast.Match:
		return l.lowerMatch(exprT, false)
	case *ast.While:
		return l.lowerWhile(exprT)
	case *ast.WhileLet:
		return l.lowerWhileLet(exprT)
	case *ast.For:
		return l.lowerFor(e, exprT)
	case *ast.Loop:
		return l.lowerLoop(exprT)
	case *ast.Break:
		return l.lowerBreak(exprT)
	case *ast.Continue:
		return target.Concat(target.Words("continue"), label(exprT.Label)), nil
	case *ast.Return:
		return l.lowerReturn(exprT)
	case *ast.Lambda:
		return l.lowerLambda(exprT.Params, exprT.Body, false)
	case *ast.AsyncLambda:
		return l.lowerLambda(exprT.Params, exprT.Body, true)
	case *ast.Handle:
		return l.lowerHandle(exprT)
	case *ast.List:
		return l.lowerList(exprT)
	case *ast.Set:
		return l.lowerSet(exprT)
	case *ast.Tuple:
		return l.lowerTuple(exprT)
	case *ast.ObjectLiteral:
		return l.lowerObjectLiteral(exprT)
	case *ast.StructLiteral:
		return l.lowerStructLiteral(exprT)
	case *ast.VecRepeat:
		return l.lowerVecRepeat(exprT)
	case *ast.DataFrame:
		return l.lowerDataFrameLiteral(exprT)
	case *ast.DataFrameOperation:
		return l.lowerDataFrameOperation(e, exprT)
	case *ast.StringInterpolation:
		return l.lowerInterpolation(exprT)
	case *ast.Command:
		return lowerCommand(exprT), nil
	case *ast.Spread:
		return nil, unsupportedf(e, "spread outside of a list or an object literal")
	case *ast.Pipeline:
		return l.lowerPipeline(e, exprT)
	case *ast.Send:
		return l.lowerSend(exprT.Actor, exprT.Message, "send")
	case *ast.ActorSend:
		return l.lowerSend(exprT.Actor, exprT.Message, "send")
	case *ast.Ask:
		return l.lowerSend(exprT.Actor, exprT.Message, "ask")
	case *ast.ActorQuery:
		return l.lowerSend(exprT.Actor, exprT.Message, "ask")
	case *ast.Macro:
		return l.lowerMacro(e, exprT.Ident, exprT.Args)
	case *ast.MacroInvocation:
		return l.lowerMacro(e, exprT.Ident, exprT.Args)
	case *ast.Await:
		recv, err := l.receiver(exprT.Expr)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.await", recv), nil
	case *ast.Lazy:
		x, err := l.lowerExpr(exprT.Expr)
		if err != nil {
			return nil, err
		}
		return target.Quote("move || $0", x), nil
	case *ast.Throw:
		x, err := l.lowerExpr(exprT.Expr)
		if err != nil {
			return nil, err
		}
		return target.Quote(`panic!("{}", $0)`, x), nil
	case *ast.Try:
		recv, err := l.receiver(exprT.Expr)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0?", recv), nil
	case *ast.TryCatch:
		return l.lowerTryCatch(exprT)
	}
	if isItem(e) {
		return l.lowerItem(e)
	}
	return nil, unsupportedf(e, "%s expression not supported", e.Kind.Name())
}

func (l *Lowerer) lowerExprs(exprs []*ast.Expr) ([]target.Stream, error) {
	streams := make([]target.Stream, len(exprs))
	for i, x := range exprs {
		var err error
		if streams[i], err = l.lowerExpr(x); err != nil {
			return nil, err
		}
	}
	return streams, nil
}

func (l *Lowerer) lowerIdent(name string) target.Stream {
	return target.Stream{target.Ident(name)}
}

// splitPath splits a module path written with :: or . separators.
func splitPath(path string) []string {
	path = strings.ReplaceAll(path, ".", "::")
	var segs []string
	for _, seg := range strings.Split(path, "::") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

func pathStream(segs []string) target.Stream {
	var s target.Stream
	for i, seg := range segs {
		if i > 0 {
			s = append(s, target.Token{Kind: target.Joint, Text: "::"})
		}
		s = append(s, target.Ident(seg))
	}
	return s
}

func lowerPath(module, name string) target.Stream {
	return pathStream(append(splitPath(module), name))
}

// Precedence levels of expressions that are not binary operations.
const (
	precAssign  = 0
	precRange   = 2
	precUnary   = 90
	precPostfix = 100
)

// prec returns the precedence of the lowered form of an expression.
func (l *Lowerer) prec(e *ast.Expr) int {
	switch k := e.Kind.(type) {
	case *ast.Binary:
		switch k.Op {
		case ast.Power, ast.NullCoalesce, ast.SendOp, ast.In:
			return precPostfix
		case ast.Add:
			if l.isConcat(k) {
				return precPostfix
			}
		}
		return k.Op.Precedence()
	case *ast.Unary:
		return precUnary
	case *ast.Literal:
		if (k.Lit == ast.IntLit && k.Int < 0) || (k.Lit == ast.FloatLit && k.Float < 0) {
			return precUnary
		}
		return precPostfix
	case *ast.Range:
		return precRange
	case *ast.Assign, *ast.CompoundAssign, *ast.Lambda, *ast.AsyncLambda,
		*ast.Return, *ast.Break, *ast.Lazy, *ast.Throw:
		return precAssign
	case *ast.If, *ast.IfLet, *ast.Match, *ast.Block, *ast.Loop, *ast.While, *ast.For,
		*ast.Let, *ast.LetPattern:
		return precRange
	}
	return precPostfix
}

// receiver lowers the receiver of a postfix operation such as a method call.
func (l *Lowerer) receiver(e *ast.Expr) (target.Stream, error) {
	s, err := l.lowerExpr(e)
	if err != nil {
		return nil, err
	}
	if l.prec(e) < precPostfix {
		s = target.Parens(s)
	}
	return s, nil
}

// needParens returns true if a child of a binary operation needs parentheses.
// Comparisons do not chain in the target language.
func (l *Lowerer) needParens(child *ast.Expr, parent ast.BinaryOp, right bool) bool {
	cp, pp := l.prec(child), parent.Precedence()
	if cp != pp {
		return cp < pp
	}
	if parent.Family() == ast.Comparison {
		return true
	}
	return right
}

func (l *Lowerer) operand(child *ast.Expr, parent ast.BinaryOp, right bool) (target.Stream, error) {
	s, err := l.lowerExpr(child)
	if err != nil {
		return nil, err
	}
	if l.needParens(child, parent, right) {
		s = target.Parens(s)
	}
	return s, nil
}

// isStringExpr returns true if an expression is definitely a string.
func (l *Lowerer) isStringExpr(e *ast.Expr) bool {
	if analysis.ExprIsString(e) {
		return true
	}
	if id, ok := e.Kind.(*ast.Identifier); ok {
		return l.ownedStrings.Contains(id.Ident)
	}
	return false
}

func (l *Lowerer) isConcat(bin *ast.Binary) bool {
	return bin.Op == ast.Add && (l.isStringExpr(bin.Left) || l.isStringExpr(bin.Right))
}

func (l *Lowerer) lowerBinary(e *ast.Expr, bin *ast.Binary) (target.Stream, error) {
	switch bin.Op {
	case ast.Add:
		if l.isConcat(bin) {
			return l.lowerConcat(e)
		}
	case ast.Power:
		return l.lowerPower(bin)
	case ast.NullCoalesce:
		return l.binaryMethod(bin.Left, bin.Right, "$0.unwrap_or($1)")
	case ast.SendOp:
		return l.binaryMethod(bin.Left, bin.Right, "$0.send($1)")
	case ast.In:
		return l.binaryMethod(bin.Right, bin.Left, "$0.contains(&$1)")
	}
	left, err := l.operand(bin.Left, bin.Op, false)
	if err != nil {
		return nil, err
	}
	right, err := l.operand(bin.Right, bin.Op, true)
	if err != nil {
		return nil, err
	}
	return target.Concat(left, target.Stream{target.OpToken(bin.Op.String())}, right), nil
}

func (l *Lowerer) binaryMethod(recv, arg *ast.Expr, tmpl string) (target.Stream, error) {
	r, err := l.receiver(recv)
	if err != nil {
		return nil, err
	}
	a, err := l.lowerExpr(arg)
	if err != nil {
		return nil, err
	}
	return target.Quote(tmpl, r, a), nil
}

func isFloatExpr(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.Literal:
		return k.Lit == ast.FloatLit
	case *ast.Unary:
		return isFloatExpr(k.Operand)
	case *ast.Binary:
		return isFloatExpr(k.Left) || isFloatExpr(k.Right)
	}
	return false
}

func (l *Lowerer) lowerPower(bin *ast.Binary) (target.Stream, error) {
	base, err := l.receiver(bin.Left)
	if err != nil {
		return nil, err
	}
	exp, err := l.lowerExpr(bin.Right)
	if err != nil {
		return nil, err
	}
	if isFloatExpr(bin.Left) || isFloatExpr(bin.Right) {
		return target.Quote("$0.powf($1)", base, exp), nil
	}
	if lit, ok := bin.Right.Kind.(*ast.Literal); ok && lit.Lit == ast.IntLit && lit.Int >= 0 {
		return target.Quote("$0.pow($1)", base, exp), nil
	}
	if l.prec(bin.Right) < precPostfix {
		exp = target.Parens(exp)
	}
	return target.Quote("$0.pow($1 as u32)", base, exp), nil
}

// concatParts flattens a string concatenation.
func (l *Lowerer) concatParts(e *ast.Expr, parts []*ast.Expr) []*ast.Expr {
	if bin, ok := e.Kind.(*ast.Binary); ok && l.isConcat(bin) {
		parts = l.concatParts(bin.Left, parts)
		return l.concatParts(bin.Right, parts)
	}
	return append(parts, e)
}

// lowerConcat lowers a string concatenation to a single format! call.
func (l *Lowerer) lowerConcat(e *ast.Expr) (target.Stream, error) {
	var fmts []string
	var args []target.Stream
	for _, part := range l.concatParts(e, nil) {
		switch partT := part.Kind.(type) {
		case *ast.Literal:
			if partT.Lit == ast.StringLit {
				fmts = append(fmts, formatText(partT.Str))
				continue
			}
		case *ast.StringInterpolation:
			f, a, err := l.interpolationParts(partT)
			if err != nil {
				return nil, err
			}
			fmts = append(fmts, f...)
			args = append(args, a...)
			continue
		}
		arg, err := l.lowerExpr(part)
		if err != nil {
			return nil, err
		}
		fmts = append(fmts, "{}")
		args = append(args, arg)
	}
	return formatCall("format", fmts, args), nil
}

// formatCall returns a call to a formatting macro.
func formatCall(macro string, fmts []string, args []target.Stream) target.Stream {
	all := append([]target.Stream{{formatString(fmts...)}}, args...)
	return target.Quote("$0!($1)", macro, all)
}

func (l *Lowerer) lowerUnary(un *ast.Unary) (target.Stream, error) {
	x, err := l.lowerExpr(un.Operand)
	if err != nil {
		return nil, err
	}
	if l.prec(un.Operand) < precUnary {
		x = target.Parens(x)
	}
	prefix := func(text string) target.Token {
		return target.Token{Kind: target.Prefix, Text: text}
	}
	switch un.Op {
	case ast.Negate:
		return target.Concat(target.Stream{prefix("-")}, x), nil
	case ast.Not, ast.BitwiseNot:
		return target.Concat(target.Stream{prefix("!")}, x), nil
	case ast.Reference:
		return target.Concat(target.Stream{prefix("&")}, x), nil
	case ast.MutableReference:
		return target.Concat(target.Stream{prefix("&"), target.W("mut")}, x), nil
	case ast.Deref:
		return target.Concat(target.Stream{prefix("*")}, x), nil
	}
	return nil, errorf("unary operator %v not supported", un.Op)
}

func (l *Lowerer) lowerFieldAccess(fa *ast.FieldAccess) (target.Stream, error) {
	if id, ok := fa.Object.Kind.(*ast.Identifier); ok && l.IsModule(id.Ident) {
		return lowerPath(id.Ident, fa.Field), nil
	}
	obj, err := l.receiver(fa.Object)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0.$1", obj, target.Ident(fa.Field)), nil
}

func (l *Lowerer) lowerIndexAccess(ia *ast.IndexAccess) (target.Stream, error) {
	obj, err := l.receiver(ia.Object)
	if err != nil {
		return nil, err
	}
	if rng, ok := ia.Index.Kind.(*ast.Range); ok {
		bounds, err := l.lowerRangeAs(rng, func(x target.Stream, e *ast.Expr) target.Stream {
			return usizeIndex(l, x, e)
		})
		if err != nil {
			return nil, err
		}
		return target.Quote("$0[$1].to_vec()", obj, bounds), nil
	}
	index, err := l.lowerExpr(ia.Index)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0[$1]", obj, usizeIndex(l, index, ia.Index)), nil
}

// usizeIndex converts an index to usize unless it is a literal.
func usizeIndex(l *Lowerer, x target.Stream, e *ast.Expr) target.Stream {
	if _, ok := e.Kind.(*ast.Literal); ok {
		return x
	}
	if l.prec(e) < precPostfix {
		x = target.Parens(x)
	}
	return target.Quote("$0 as usize", x)
}

func (l *Lowerer) lowerRange(rng *ast.Range) (target.Stream, error) {
	return l.lowerRangeAs(rng, func(x target.Stream, _ *ast.Expr) target.Stream { return x })
}

func (l *Lowerer) lowerRangeAs(rng *ast.Range, conv func(target.Stream, *ast.Expr) target.Stream) (target.Stream, error) {
	bound := func(e *ast.Expr) (target.Stream, error) {
		if e == nil {
			return nil, nil
		}
		s, err := l.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		if l.prec(e) <= precRange {
			s = target.Parens(s)
		}
		return conv(s, e), nil
	}
	start, err := bound(rng.Start)
	if err != nil {
		return nil, err
	}
	end, err := bound(rng.End)
	if err != nil {
		return nil, err
	}
	op := ".."
	if rng.Inclusive {
		op = "..="
	}
	return target.Concat(start, target.Stream{{Kind: target.Joint, Text: op}}, end), nil
}

func (l *Lowerer) lowerAssign(as *ast.Assign) (target.Stream, error) {
	if name, ok := rootIdent(as.Target); ok {
		l.mark(name)
	}
	lhs, err := l.lowerExpr(as.Target)
	if err != nil {
		return nil, err
	}
	rhs, err := l.lowerExpr(as.Value)
	if err != nil {
		return nil, err
	}
	if id, ok := as.Target.Kind.(*ast.Identifier); ok && l.ownedStrings.Contains(id.Ident) {
		rhs = ownedString(as.Value, rhs)
	}
	return target.Quote("$0 = $1", lhs, rhs), nil
}

func (l *Lowerer) lowerCompoundAssign(e *ast.Expr, ca *ast.CompoundAssign) (target.Stream, error) {
	if name, ok := rootIdent(ca.Target); ok {
		l.mark(name)
	}
	lhs, err := l.lowerExpr(ca.Target)
	if err != nil {
		return nil, err
	}
	rhs, err := l.lowerExpr(ca.Value)
	if err != nil {
		return nil, err
	}
	switch ca.Op {
	case ast.Power:
		pow, err := l.lowerPower(&ast.Binary{Op: ast.Power, Left: ca.Target, Right: ca.Value})
		if err != nil {
			return nil, err
		}
		return target.Quote("$0 = $1", lhs, pow), nil
	case ast.NullCoalesce, ast.SendOp, ast.In, ast.And, ast.Or:
		return nil, unsupportedf(e, "compound assignment with %s", ca.Op)
	}
	if ca.Op == ast.Add && (l.isStringExpr(ca.Target) || l.isStringExpr(ca.Value)) {
		if id, ok := ca.Target.Kind.(*ast.Identifier); ok {
			l.ownedStrings.Add(id.Ident)
		}
		if !analysis.IsStringLiteral(ca.Value) {
			if l.prec(ca.Value) < precUnary {
				rhs = target.Parens(rhs)
			}
			rhs = target.Concat(target.Stream{{Kind: target.Prefix, Text: "&"}}, rhs)
		}
	}
	return target.Concat(lhs, target.Stream{target.OpToken(ca.Op.String() + "=")}, rhs), nil
}

// rootIdent returns the variable at the root of an assignment target.
func rootIdent(e *ast.Expr) (string, bool) {
	switch k := e.Kind.(type) {
	case *ast.Identifier:
		return k.Ident, true
	case *ast.FieldAccess:
		return rootIdent(k.Object)
	case *ast.IndexAccess:
		return rootIdent(k.Object)
	}
	return "", false
}

// lowerIncrement lowers an increment or a decrement in expression position.
func (l *Lowerer) lowerIncrement(x *ast.Expr, op string, pre bool) (target.Stream, error) {
	if name, ok := rootIdent(x); ok {
		l.mark(name)
	}
	tgt, err := l.lowerExpr(x)
	if err != nil {
		return nil, err
	}
	if pre {
		return target.Quote("{ $0 $1 1; $0 }", tgt, target.OpToken(op)), nil
	}
	old := l.names.Name("old")
	return target.Quote("{ let $2 = $0; $0 $1 1; $2 }", tgt, target.OpToken(op), old), nil
}

// lowerIncrementStmt lowers an increment or a decrement in statement position.
func (l *Lowerer) lowerIncrementStmt(e *ast.Expr) (target.Stream, bool, error) {
	var x *ast.Expr
	op := "+="
	switch k := e.Kind.(type) {
	case *ast.PreIncrement:
		x = k.Target
	case *ast.PostIncrement:
		x = k.Target
	case *ast.PreDecrement:
		x, op = k.Target, "-="
	case *ast.PostDecrement:
		x, op = k.Target, "-="
	default:
		return nil, false, nil
	}
	if name, ok := rootIdent(x); ok {
		l.mark(name)
	}
	tgt, err := l.lowerExpr(x)
	if err != nil {
		return nil, false, err
	}
	return target.Quote("$0 $1 1", tgt, target.OpToken(op)), true, nil
}

// ownedString converts a string literal into an owned string.
func ownedString(e *ast.Expr, s target.Stream) target.Stream {
	if analysis.IsStringLiteral(e) {
		return target.Quote("$0.to_string()", s)
	}
	return s
}
