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

	"github.com/paiml/ruchy-sub001/base/uname"
	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

// lifetimeName is the lifetime synthesized for functions returning references.
const lifetimeName = "a"

type (
	// funcDecl is a function or a method to lower.
	funcDecl struct {
		src        *ast.Expr
		decorated  *ast.Expr // carries the attributes of the declaration
		name       string
		typeParams []string
		params     []ast.Param
		ret        *ast.Type
		body       *ast.Expr
		isAsync    bool
		isMain     bool
	}

	// paramSig is a parameter with its decided type.
	paramSig struct {
		param ast.Param
		name  string
		typ   *ast.Type
		self  bool
	}

	// funcSig is the signature of a function decided by the inferences.
	funcSig struct {
		typeParams []string
		params     []paramSig
		ret        *ast.Type
		lifetime   string
	}
)

func named(name string) *ast.Type {
	return &ast.Type{Kind: &ast.NamedType{Ident: name}}
}

// borrowed returns true if the parameter at index i is a borrowed string.
func (sig *funcSig) borrowed(i int) bool {
	var params []paramSig
	for _, p := range sig.params {
		if !p.self {
			params = append(params, p)
		}
	}
	return i < len(params) && analysis.IsStrRef(params[i].typ)
}

func paramTypes(params []paramSig) []*ast.Type {
	types := make([]*ast.Type, len(params))
	for i, p := range params {
		types[i] = p.typ
	}
	return types
}

// signatureOf decides the parameter types, the return type and the lifetime of a function.
func (l *Lowerer) signatureOf(fn *funcDecl) *funcSig {
	sig := &funcSig{typeParams: append([]string{}, fn.typeParams...)}
	generics := uname.New()
	for _, tp := range fn.typeParams {
		name, _, _ := strings.Cut(tp, ":")
		generics.Reserve(strings.TrimSpace(name))
	}
	for _, p := range fn.params {
		ps := paramSig{param: p, name: p.ParamName(), typ: p.Type}
		if ps.name == "self" {
			ps.self = true
			sig.params = append(sig.params, ps)
			continue
		}
		if p.IsUntyped() {
			ps.typ = nil
			if ps.name != "" {
				ps.typ = analysis.InferParamType(ps.name, fn.body)
			}
			if ps.typ == nil {
				generic := generics.TypeParam()
				sig.typeParams = append(sig.typeParams, generic)
				ps.typ = named(generic)
			}
			l.log.Debug("infer parameter type", "function", fn.name, "param", ps.name, "type", ps.typ.String())
		}
		sig.params = append(sig.params, ps)
	}
	switch {
	case fn.isMain:
		sig.ret = nil
	case fn.ret != nil && !fn.ret.IsAny():
		sig.ret = fn.ret
	default:
		sig.ret = analysis.InferReturnType(analysis.ReturnTypeInput{
			Name:       fn.name,
			Params:     fn.params,
			ParamTypes: paramTypes(sig.params),
			Body:       fn.body,
		})
		if sig.ret != nil {
			l.log.Debug("infer return type", "function", fn.name, "type", sig.ret.String())
		}
	}
	if !sig.ret.IsReference() {
		return sig
	}
	refs := 0
	for _, p := range sig.params {
		if p.self || p.typ.IsReference() {
			refs++
		}
	}
	switch {
	case analysis.NeedsLifetimeParameter(paramTypes(sig.params), sig.ret):
		sig.lifetime = lifetimeName
		for i := range sig.params {
			sig.params[i].typ = analysis.WithLifetime(sig.params[i].typ, lifetimeName)
		}
		sig.ret = analysis.WithLifetime(sig.ret, lifetimeName)
		sig.typeParams = append([]string{labelName(lifetimeName)}, sig.typeParams...)
		l.log.Debug("synthesize lifetime", "function", fn.name, "lifetime", sig.lifetime)
	case refs == 0:
		sig.ret = analysis.WithLifetime(sig.ret, "static")
	}
	return sig
}

// lowerGenerics lowers generic parameters. Each parameter receives the
// bounds if any is given.
func lowerGenerics(src *ast.Expr, typeParams []string, bounds string) (target.Stream, error) {
	if len(typeParams) == 0 {
		return nil, nil
	}
	params := make([]target.Stream, len(typeParams))
	for i, tp := range typeParams {
		if bounds != "" && !strings.HasPrefix(tp, "'") && !strings.Contains(tp, ":") {
			tp = tp + ": " + bounds
		}
		s, err := target.Lex(tp)
		if err != nil {
			return nil, malformedf(src, "invalid type parameter %q: %v", tp, err)
		}
		params[i] = s
	}
	return target.Angles(target.CommaList(params)), nil
}

// requestedBounds returns the bounds requested with a bounds attribute.
func requestedBounds(e *ast.Expr) string {
	if e == nil {
		return ""
	}
	for _, attr := range e.Attributes {
		if attr.Name != "bounds" {
			continue
		}
		if len(attr.Args) == 0 {
			return "Clone + std::fmt::Debug"
		}
		return strings.Join(attr.Args, " + ")
	}
	return ""
}

// lowerAttributes lowers the decorators of a declaration. Each attribute
// is followed by a new line.
func lowerAttributes(e *ast.Expr) (target.Stream, error) {
	if e == nil {
		return nil, nil
	}
	var s target.Stream
	for _, attr := range e.Attributes {
		var text string
		switch attr.Name {
		case "bounds":
			continue
		case "test":
			text = "#[test]"
		case "derive":
			text = "#[derive(" + strings.Join(attr.Args, ", ") + ")]"
		default:
			text = "#[" + attr.Name
			if len(attr.Args) > 0 {
				text += "(" + strings.Join(attr.Args, ", ") + ")"
			}
			text += "]"
		}
		toks, err := target.Lex(text)
		if err != nil {
			return nil, malformedf(e, "invalid attribute %s: %v", attr.Name, err)
		}
		s = append(append(s, toks...), target.NL)
	}
	return s, nil
}

func (l *Lowerer) lowerParam(fn *funcDecl, p paramSig) (target.Stream, error) {
	if p.self {
		if p.param.Mutable || analysis.IsVariableModified("self", fn.body) {
			return target.Quote("&mut self"), nil
		}
		return target.Quote("&self"), nil
	}
	mode := bindMode{mutable: func(name string) bool {
		mutable := analysis.IsVariableModified(name, fn.body)
		if mutable {
			l.mark(name)
		}
		return mutable
	}}
	pat, err := l.lowerPattern(p.param.Pattern, mode)
	if err != nil {
		return nil, err
	}
	if p.param.Mutable && !pat.HasPrefix("mut") {
		pat = target.Concat(target.Words("mut"), pat)
	}
	typ, err := l.lowerType(p.typ, typeParam)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0: $1", pat, typ), nil
}

// checkParams returns an error for patterns that cannot be parameters.
func checkParams(fn *funcDecl) error {
	for _, p := range fn.params {
		if p.Pattern == nil {
			return malformedf(fn.src, "parameter of %s without a name", fn.name)
		}
		switch p.Pattern.Kind.(type) {
		case *ast.IdentPattern, *ast.WildcardPattern, *ast.TuplePattern, *ast.StructPattern,
			*ast.TupleVariantPattern, *ast.WithDefaultPattern:
		default:
			return malformedf(fn.src, "%s pattern cannot be a parameter of %s", p.Pattern.Kind.Name(), fn.name)
		}
	}
	return nil
}

// funcOpts specifies how a function declaration is lowered.
type funcOpts struct {
	// pub makes the function public.
	pub bool
	// name overrides the name of the function in the output.
	name string
}

// lowerFunc lowers a function or a method declaration.
func (l *Lowerer) lowerFunc(fn *funcDecl, sig *funcSig, opts funcOpts) (target.Stream, error) {
	if err := checkParams(fn); err != nil {
		return nil, err
	}
	attrs, err := lowerAttributes(fn.decorated)
	if err != nil {
		return nil, err
	}
	name := opts.name
	if name == "" {
		name = fn.name
	}
	ident, err := target.DeclIdent(spanOf(fn.src), name)
	if err != nil {
		return nil, err
	}
	generics, err := lowerGenerics(fn.src, sig.typeParams, requestedBounds(fn.decorated))
	if err != nil {
		return nil, err
	}
	params := make([]target.Stream, len(sig.params))
	for i, p := range sig.params {
		if params[i], err = l.lowerParam(fn, p); err != nil {
			return nil, err
		}
	}
	head := attrs
	if opts.pub {
		head = append(head, target.W("pub"))
	}
	if fn.isAsync {
		head = append(head, target.W("async"))
	}
	head = append(head, target.W("fn"), ident)
	head = target.Concat(head, generics, target.Parens(target.CommaList(params)))
	if sig.ret != nil {
		ret, err := l.lowerType(sig.ret, typeReturn)
		if err != nil {
			return nil, err
		}
		head = target.Quote("$0 -> $1", head, ret)
	}
	if fn.body == nil {
		return append(head, target.Semi), nil
	}
	body, err := l.lowerFuncBody(fn, sig)
	if err != nil {
		return nil, err
	}
	return target.Concat(head, body), nil
}

func (l *Lowerer) lowerFuncBody(fn *funcDecl, sig *funcSig) (target.Stream, error) {
	ctx := &fnContext{name: fn.name, ret: sig.ret}
	mode := tailValue
	switch {
	case sig.ret == nil:
		mode = tailDiscard
	case sig.ret.NamedAs(analysis.OwnedString) && analysis.BodyNeedsStringConversion(fn.body):
		ctx.ownedReturn = true
		mode = tailOwned
	}
	if sig.ret != nil {
		_, ctx.moveClosures = sig.ret.Kind.(*ast.FunctionType)
	}
	for _, p := range sig.params {
		if p.typ.NamedAs(analysis.OwnedString) {
			l.ownedStrings.Add(p.name)
		}
	}
	saved := l.fn
	l.fn = ctx
	l.depth++
	defer func() {
		l.fn = saved
		l.depth--
	}()
	return l.branch(fn.body, mode)
}

func spanOf(e *ast.Expr) ast.Span {
	if e == nil {
		return ast.Span{}
	}
	return e.Span
}

func (l *Lowerer) funcDeclOf(e *ast.Expr, fn *ast.Function) *funcDecl {
	return &funcDecl{
		src:        e,
		decorated:  e,
		name:       fn.Ident,
		typeParams: fn.TypeParams,
		params:     fn.Params,
		ret:        fn.ReturnType,
		body:       fn.Body,
		isAsync:    fn.IsAsync,
		isMain:     fn.Ident == "main",
	}
}

// declare records the signature of a function so that calls lowered
// before or after its declaration agree with it.
func (l *Lowerer) declare(e *ast.Expr, fn *ast.Function) *funcSig {
	if sig, ok := l.sigs[fn]; ok {
		return sig
	}
	sig := l.signatureOf(l.funcDeclOf(e, fn))
	l.sigs[fn] = sig
	l.funcs[fn.Ident] = sig
	return sig
}

// declareAll records the declarations of a sequence of expressions.
func (l *Lowerer) declareAll(exprs []*ast.Expr) {
	for _, x := range exprs {
		switch k := x.Kind.(type) {
		case *ast.Function:
			l.declare(x, k)
		case *ast.Struct:
			l.structs[k.Ident] = k.Fields
		case *ast.Class:
			l.structs[k.Ident] = k.Fields
		case *ast.Export:
			l.declareAll([]*ast.Expr{k.Expr})
		}
	}
}

// lowerFunction lowers a function declaration.
func (l *Lowerer) lowerFunction(e *ast.Expr, fn *ast.Function) (target.Stream, error) {
	sig := l.declare(e, fn)
	decl := l.funcDeclOf(e, fn)
	opts := funcOpts{pub: !decl.isMain && l.depth == 0 && !e.HasAttribute("test")}
	return l.lowerFunc(decl, sig, opts)
}

func (l *Lowerer) lowerLambda(params []ast.Param, body *ast.Expr, async bool) (target.Stream, error) {
	var ps []target.Stream
	for _, p := range params {
		pat, err := l.lowerPattern(p.Pattern, bindMode{})
		if err != nil {
			return nil, err
		}
		if !p.IsUntyped() {
			typ, err := l.lowerType(p.Type, typeLocal)
			if err != nil {
				return nil, err
			}
			pat = target.Quote("$0: $1", pat, typ)
		}
		ps = append(ps, pat)
	}
	move := l.fn != nil && l.fn.moveClosures
	saved := l.fn
	l.fn = nil
	defer func() { l.fn = saved }()
	var b target.Stream
	var err error
	if _, isBlock := body.Kind.(*ast.Block); isBlock || async {
		b, err = l.branch(body, tailValue)
	} else {
		b, err = l.lowerExpr(body)
	}
	if err != nil {
		return nil, err
	}
	bars := target.Stream{{Kind: target.Open, Text: "|"}}
	bars = append(bars, target.CommaList(ps)...)
	bars = append(bars, target.Token{Kind: target.Close, Text: "|"})
	if move {
		bars = append(target.Stream{target.W("move")}, bars...)
	}
	if async {
		return target.Quote("$0 async move $1", bars, b), nil
	}
	return target.Concat(bars, b), nil
}
