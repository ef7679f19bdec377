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

package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/paiml/ruchy-sub001/build/ast"
)

// Binding strength of expressions that are not binary operations.
const (
	precLowest  = 0
	precRange   = 3
	precUnary   = 80
	precPostfix = 90
)

func prec(e *ast.Expr) int {
	switch k := e.Kind.(type) {
	case *ast.Binary:
		return k.Op.Precedence()
	case *ast.Range:
		return precRange
	case *ast.Unary, *ast.PreIncrement, *ast.PreDecrement, *ast.Await, *ast.Throw, *ast.Lazy:
		return precUnary
	case *ast.Assign, *ast.CompoundAssign, *ast.Lambda, *ast.AsyncLambda, *ast.Pipeline,
		*ast.Send, *ast.ActorSend, *ast.ActorQuery, *ast.Return, *ast.Break, *ast.Let, *ast.LetPattern:
		return precLowest
	}
	return precPostfix
}

// operand prints the child of an operation, in parentheses when it binds
// looser than the operation.
func (p *printer) operand(e *ast.Expr, min int) {
	if prec(e) < min {
		p.write("(")
		p.expr(e)
		p.write(")")
		return
	}
	p.expr(e)
}

func (p *printer) list(exprs []*ast.Expr) {
	for i, x := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.expr(x)
	}
}

func (p *printer) args(exprs []*ast.Expr) {
	p.write("(")
	p.list(exprs)
	p.write(")")
}

func floatText(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func literalText(lit *ast.Literal) string {
	switch lit.Lit {
	case ast.IntLit:
		return strconv.FormatInt(lit.Int, 10) + lit.Suffix
	case ast.FloatLit:
		return floatText(lit.Float) + lit.Suffix
	case ast.StringLit:
		return strconv.Quote(lit.Str)
	case ast.CharLit:
		return strconv.QuoteRune(lit.Char)
	case ast.ByteLit:
		return "b" + strconv.QuoteRune(rune(lit.Byte))
	case ast.BoolLit:
		return strconv.FormatBool(lit.Bool)
	case ast.UnitLit:
		return "()"
	case ast.NullLit:
		return "null"
	case ast.AtomLit:
		return ":" + lit.Str
	}
	return "?"
}

func labelPrefix(label string) string {
	if label == "" {
		return ""
	}
	return "'" + strings.TrimPrefix(label, "'") + ": "
}

func label(label string) string {
	if label == "" {
		return ""
	}
	return " '" + strings.TrimPrefix(label, "'")
}

// expr prints an expression.
func (p *printer) expr(e *ast.Expr) {
	if e == nil {
		return
	}
	for _, attr := range e.Attributes {
		p.attribute(attr)
		p.newline()
	}
	switch k := e.Kind.(type) {
	case *ast.Literal:
		p.write(literalText(k))
	case *ast.Identifier:
		p.write(k.Ident)
	case *ast.QualifiedName:
		p.write(k.Module, "::", k.Ident)
	case *ast.FieldAccess:
		p.operand(k.Object, precPostfix)
		p.write(".", k.Field)
	case *ast.IndexAccess:
		p.operand(k.Object, precPostfix)
		p.write("[")
		p.expr(k.Index)
		p.write("]")
	case *ast.Range:
		if k.Start != nil {
			p.operand(k.Start, precRange+1)
		}
		p.write("..")
		if k.Inclusive {
			p.write("=")
		}
		if k.End != nil {
			p.operand(k.End, precRange+1)
		}
	case *ast.Binary:
		p.binary(k)
	case *ast.Unary:
		p.write(k.Op.String())
		p.operand(k.Operand, precUnary)
	case *ast.PreIncrement:
		p.write("++")
		p.operand(k.Target, precPostfix)
	case *ast.PreDecrement:
		p.write("--")
		p.operand(k.Target, precPostfix)
	case *ast.PostIncrement:
		p.operand(k.Target, precPostfix)
		p.write("++")
	case *ast.PostDecrement:
		p.operand(k.Target, precPostfix)
		p.write("--")
	case *ast.Assign:
		p.expr(k.Target)
		p.write(" = ")
		p.expr(k.Value)
	case *ast.CompoundAssign:
		p.expr(k.Target)
		p.write(" ", k.Op.String(), "= ")
		p.expr(k.Value)
	case *ast.Call:
		p.operand(k.Func, precPostfix)
		p.args(k.Args)
	case *ast.MethodCall:
		p.operand(k.Receiver, precPostfix)
		p.write(".", k.Method)
		p.args(k.Args)
	case *ast.OptionalMethodCall:
		p.operand(k.Receiver, precPostfix)
		p.write("?.", k.Method)
		p.args(k.Args)
	case *ast.Let:
		p.let(k.Mutable, func() { p.write(k.Ident) }, k.Type, k.Value, k.Else, k.Body)
	case *ast.LetPattern:
		p.let(k.Mutable, func() { p.pattern(k.Pattern) }, k.Type, k.Value, k.Else, k.Body)
	case *ast.Block:
		p.block(e)
	case *ast.If:
		p.ifExpr(k)
	case *ast.IfLet:
		p.write("if let ")
		p.pattern(k.Pattern)
		p.write(" = ")
		p.expr(k.Value)
		p.write(" ")
		p.block(k.Then)
		p.elseBranch(k.Else)
	case *ast.Match:
		p.match(k)
	case *ast.While:
		p.write(labelPrefix(k.Label), "while ")
		p.expr(k.Cond)
		p.write(" ")
		p.block(k.Body)
	case *ast.WhileLet:
		p.write(labelPrefix(k.Label), "while let ")
		p.pattern(k.Pattern)
		p.write(" = ")
		p.expr(k.Value)
		p.write(" ")
		p.block(k.Body)
	case *ast.For:
		p.write(labelPrefix(k.Label), "for ")
		if k.Pattern != nil {
			p.pattern(k.Pattern)
		} else {
			p.write(k.Var)
		}
		p.write(" in ")
		p.expr(k.Iter)
		p.write(" ")
		p.block(k.Body)
	case *ast.Loop:
		p.write(labelPrefix(k.Label), "loop ")
		p.block(k.Body)
	case *ast.Break:
		p.write("break", label(k.Label))
		if k.Value != nil {
			p.write(" ")
			p.expr(k.Value)
		}
	case *ast.Continue:
		p.write("continue", label(k.Label))
	case *ast.Return:
		p.write("return")
		if k.Value != nil {
			p.write(" ")
			p.expr(k.Value)
		}
	case *ast.Lambda:
		p.lambda(k.Params, k.Body)
	case *ast.AsyncLambda:
		p.write("async ")
		p.lambda(k.Params, k.Body)
	case *ast.List:
		p.write("[")
		p.list(k.Elements)
		p.write("]")
	case *ast.Set:
		p.write("{")
		p.list(k.Elements)
		p.write("}")
	case *ast.Tuple:
		p.write("(")
		p.list(k.Elements)
		if len(k.Elements) == 1 {
			p.write(",")
		}
		p.write(")")
	case *ast.ObjectLiteral:
		p.object(k)
	case *ast.StructLiteral:
		p.structLiteral(k)
	case *ast.VecRepeat:
		p.write("[")
		p.expr(k.Value)
		p.write("; ")
		p.expr(k.Count)
		p.write("]")
	case *ast.DataFrame:
		p.dataFrame(k)
	case *ast.DataFrameOperation:
		p.operand(k.Source, precPostfix)
		p.write(".", k.Op, "(")
		cols := make([]string, len(k.Columns))
		for i, c := range k.Columns {
			cols[i] = strconv.Quote(c)
		}
		p.write(strings.Join(cols, ", "))
		if len(cols) > 0 && len(k.Args) > 0 {
			p.write(", ")
		}
		p.list(k.Args)
		p.write(")")
	case *ast.StringInterpolation:
		p.interpolation(k)
	case *ast.Command:
		p.command(k)
	case *ast.Spread:
		p.write("...")
		p.operand(k.Expr, precPostfix)
	case *ast.Pipeline:
		p.operand(k.Expr, precLowest+1)
		for _, stage := range k.Stages {
			p.write(" |> ")
			p.operand(stage, precLowest+1)
		}
	case *ast.Send:
		p.write("send")
		p.args([]*ast.Expr{k.Actor, k.Message})
	case *ast.Ask:
		p.write("ask")
		args := []*ast.Expr{k.Actor, k.Message}
		if k.Timeout != nil {
			args = append(args, k.Timeout)
		}
		p.args(args)
	case *ast.ActorSend:
		p.operand(k.Actor, precPostfix)
		p.write(" <- ")
		p.operand(k.Message, precLowest+1)
	case *ast.ActorQuery:
		p.operand(k.Actor, precPostfix)
		p.write(" <? ")
		p.operand(k.Message, precLowest+1)
	case *ast.Macro:
		p.write(k.Ident, "!")
		p.args(k.Args)
	case *ast.MacroInvocation:
		p.write(k.Ident, "!")
		p.args(k.Args)
	case *ast.Await:
		p.write("await ")
		p.operand(k.Expr, precUnary)
	case *ast.Lazy:
		p.write("lazy ")
		p.operand(k.Expr, precUnary)
	case *ast.Throw:
		p.write("throw ")
		p.expr(k.Expr)
	case *ast.Try:
		p.operand(k.Expr, precPostfix)
		p.write("?")
	case *ast.TryCatch:
		p.tryCatch(k)
	default:
		if !p.decl(e) {
			p.unsupported(e, e.Kind.Name()+" expression")
		}
	}
}

func (p *printer) binary(bin *ast.Binary) {
	pp := bin.Op.Precedence()
	left, right := pp, pp+1
	if bin.Op.RightAssociative() {
		left, right = pp+1, pp
	}
	p.operand(bin.Left, left)
	p.write(" ", bin.Op.String(), " ")
	p.operand(bin.Right, right)
}

// let prints a binding. A binding with a unit body is a statement. A body
// other than a block follows the in keyword.
func (p *printer) let(mutable bool, name func(), typ *ast.Type, value, els, body *ast.Expr) {
	p.write("let ")
	if mutable {
		p.write("mut ")
	}
	name()
	if typ != nil && !typ.IsAny() {
		p.write(": ", typ.String())
	}
	p.write(" = ")
	p.expr(value)
	if els != nil {
		p.write(" else ")
		p.block(els)
	}
	switch {
	case body == nil || isUnit(body):
	case isBlock(body):
		// Sequential form: the body continues the enclosing block.
		p.newline()
		p.stmts(body.Kind.(*ast.Block).Exprs, false)
	default:
		p.write(" in ")
		p.expr(body)
	}
}

func (p *printer) ifExpr(ifx *ast.If) {
	p.write("if ")
	p.expr(ifx.Cond)
	p.write(" ")
	p.block(ifx.Then)
	p.elseBranch(ifx.Else)
}

func (p *printer) elseBranch(els *ast.Expr) {
	if els == nil {
		return
	}
	p.write(" else ")
	switch k := els.Kind.(type) {
	case *ast.If:
		p.ifExpr(k)
	case *ast.IfLet:
		p.expr(els)
	default:
		p.block(els)
	}
}

func (p *printer) match(m *ast.Match) {
	p.write("match ")
	p.expr(m.Scrutinee)
	p.write(" ")
	p.members(len(m.Arms), func(i int) {
		arm := m.Arms[i]
		p.pattern(arm.Pattern)
		if arm.Guard != nil {
			p.write(" if ")
			p.expr(arm.Guard)
		}
		p.write(" => ")
		p.expr(arm.Body)
		p.write(",")
	})
}

func (p *printer) params(params []ast.Param) {
	for i := range params {
		if i > 0 {
			p.write(", ")
		}
		param := &params[i]
		if param.Mutable {
			p.write("mut ")
		}
		p.pattern(param.Pattern)
		if !param.IsUntyped() {
			p.write(": ", param.Type.String())
		}
		if param.Default != nil {
			p.write(" = ")
			p.expr(param.Default)
		}
	}
}

func (p *printer) lambda(params []ast.Param, body *ast.Expr) {
	p.write("|")
	p.params(params)
	p.write("| ")
	p.expr(body)
}

func (p *printer) object(obj *ast.ObjectLiteral) {
	if len(obj.Fields) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, f := range obj.Fields {
		if i > 0 {
			p.write(", ")
		}
		if f.Spread {
			p.write("...")
			p.expr(f.Value)
			continue
		}
		p.write(f.Key, ": ")
		p.expr(f.Value)
	}
	p.write(" }")
}

func (p *printer) structLiteral(sl *ast.StructLiteral) {
	p.write(sl.Ident, " { ")
	for i, f := range sl.Fields {
		if i > 0 {
			p.write(", ")
		}
		if id, ok := f.Value.Kind.(*ast.Identifier); ok && id.Ident == f.Ident {
			p.write(f.Ident)
			continue
		}
		p.write(f.Ident, ": ")
		p.expr(f.Value)
	}
	if sl.Base != nil {
		if len(sl.Fields) > 0 {
			p.write(", ")
		}
		p.write("..")
		p.expr(sl.Base)
	}
	p.write(" }")
}

func (p *printer) dataFrame(df *ast.DataFrame) {
	p.write("df![")
	for i, col := range df.Columns {
		if i > 0 {
			p.write(", ")
		}
		p.write(strconv.Quote(col.Ident), " => [")
		p.list(col.Values)
		p.write("]")
	}
	p.write("]")
}

func (p *printer) interpolation(si *ast.StringInterpolation) {
	p.write(`f"`)
	for _, part := range si.Parts {
		if part.Expr == nil {
			text := strconv.Quote(part.Text)
			text = strings.ReplaceAll(text[1:len(text)-1], "{", "{{")
			p.write(strings.ReplaceAll(text, "}", "}}"))
			continue
		}
		p.write("{")
		p.expr(part.Expr)
		if part.Format != "" {
			p.write(":", part.Format)
		}
		p.write("}")
	}
	p.write(`"`)
}

func (p *printer) command(cmd *ast.Command) {
	words := append([]string{cmd.Program}, cmd.Args...)
	p.write("`", strings.Join(words, " "), "`")
}

func (p *printer) tryCatch(tc *ast.TryCatch) {
	p.write("try ")
	p.block(tc.Try)
	for _, c := range tc.Catches {
		p.write(" catch ")
		if c.Pattern != nil {
			p.write("(")
			p.pattern(c.Pattern)
			p.write(") ")
		}
		p.block(c.Body)
	}
	if tc.Finally != nil {
		p.write(" finally ")
		p.block(tc.Finally)
	}
}

func (p *printer) patterns(ps []*ast.Pattern) {
	for i, x := range ps {
		if i > 0 {
			p.write(", ")
		}
		p.pattern(x)
	}
}

func (p *printer) pattern(pat *ast.Pattern) {
	if pat == nil {
		p.write("_")
		return
	}
	switch k := pat.Kind.(type) {
	case *ast.WildcardPattern:
		p.write("_")
	case *ast.LiteralPattern:
		p.write(literalText(&k.Literal))
	case *ast.IdentPattern:
		if k.Mutable {
			p.write("mut ")
		}
		p.write(k.Ident)
	case *ast.QualifiedPattern:
		p.write(strings.Join(k.Path, "::"))
	case *ast.TuplePattern:
		p.write("(")
		p.patterns(k.Elements)
		p.write(")")
	case *ast.ListPattern:
		p.write("[")
		p.patterns(k.Elements)
		p.write("]")
	case *ast.StructPattern:
		p.write(k.Ident, " { ")
		for i, f := range k.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Ident)
			if f.Pattern != nil {
				p.write(": ")
				p.pattern(f.Pattern)
			}
		}
		if k.HasRest {
			if len(k.Fields) > 0 {
				p.write(", ")
			}
			p.write("..")
		}
		p.write(" }")
	case *ast.TupleVariantPattern:
		p.write(strings.Join(k.Path, "::"), "(")
		p.patterns(k.Elements)
		p.write(")")
	case *ast.OrPattern:
		for i, alt := range k.Alternatives {
			if i > 0 {
				p.write(" | ")
			}
			p.pattern(alt)
		}
	case *ast.RangePattern:
		p.pattern(k.Start)
		p.write("..")
		if k.Inclusive {
			p.write("=")
		}
		p.pattern(k.End)
	case *ast.RestPattern:
		p.write("..")
	case *ast.RestNamedPattern:
		p.write("..", k.Ident)
	case *ast.OkPattern:
		p.wrapPattern("Ok", k.Inner)
	case *ast.ErrPattern:
		p.wrapPattern("Err", k.Inner)
	case *ast.SomePattern:
		p.wrapPattern("Some", k.Inner)
	case *ast.NonePattern:
		p.write("None")
	case *ast.WithDefaultPattern:
		p.pattern(k.Inner)
		p.write(" = ")
		p.expr(k.Default)
	default:
		p.errs.Append(errorf("cannot format %s pattern", pat.Kind.Name()))
	}
}

func (p *printer) wrapPattern(name string, inner *ast.Pattern) {
	p.write(name, "(")
	p.pattern(inner)
	p.write(")")
}
