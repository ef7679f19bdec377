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

// methodCategory groups methods sharing a lowering rule.
type methodCategory int

const (
	passThrough methodCategory = iota
	iteratorOp
	mapOp
	setOp
	stringOp
	collectionOp
	collectOp
)

var methodCategories = map[string]methodCategory{
	"map":      iteratorOp,
	"filter":   iteratorOp,
	"reduce":   iteratorOp,
	"fold":     iteratorOp,
	"any":      iteratorOp,
	"all":      iteratorOp,
	"find":     iteratorOp,
	"for_each": iteratorOp,
	"sum":      iteratorOp,
	"product":  iteratorOp,

	"keys":         mapOp,
	"values":       mapOp,
	"items":        mapOp,
	"update":       mapOp,
	"contains_key": mapOp,

	"union":                setOp,
	"intersection":         setOp,
	"difference":           setOp,
	"symmetric_difference": setOp,

	"to_upper":   stringOp,
	"to_lower":   stringOp,
	"length":     stringOp,
	"strip":      stringOp,
	"lstrip":     stringOp,
	"rstrip":     stringOp,
	"startswith": stringOp,
	"endswith":   stringOp,
	"substring":  stringOp,
	"split":      stringOp,

	"slice":   collectionOp,
	"concat":  collectionOp,
	"flatten": collectionOp,
	"unique":  collectionOp,
	"append":  collectionOp,

	"collect": collectOp,
}

// renamedMethods are methods with a different name in the target language.
var renamedMethods = map[string]string{
	"to_upper":   "to_uppercase",
	"to_lower":   "to_lowercase",
	"length":     "len",
	"strip":      "trim",
	"lstrip":     "trim_start",
	"rstrip":     "trim_end",
	"startswith": "starts_with",
	"endswith":   "ends_with",
	"append":     "push",
}

// optionMethods return an option or a result.
var optionMethods = map[string]bool{
	"get": true, "first": true, "last": true, "pop": true, "find": true, "position": true,
	"parse": true, "ok": true, "err": true, "checked_add": true, "checked_sub": true,
	"checked_mul": true, "checked_div": true, "strip_prefix": true, "strip_suffix": true,
}

// isOptionShaped returns true if an expression evaluates to an option or a result.
func isOptionShaped(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.Call:
		id, ok := k.Func.Kind.(*ast.Identifier)
		return ok && (id.Ident == "Some" || id.Ident == "Ok" || id.Ident == "Err")
	case *ast.MethodCall:
		return optionMethods[k.Method]
	case *ast.OptionalMethodCall:
		return true
	case *ast.Literal:
		return k.Lit == ast.NullLit
	}
	return false
}

// isBorrowable returns true if an argument can be passed by reference.
func isBorrowable(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.Identifier, *ast.FieldAccess, *ast.IndexAccess:
		return true
	case *ast.Literal:
		return k.Lit == ast.IntLit || k.Lit == ast.FloatLit
	}
	return false
}

var collectVec = target.Quote(".collect::<Vec<_>>()")

// iterChain returns an iterator over a receiver. If the receiver is a
// collected iterator chain, the chain is continued.
func iterChain(recv target.Stream) target.Stream {
	if n := len(recv) - len(collectVec); n > 0 && recv[n:].String() == collectVec.String() {
		return recv[:n]
	}
	return target.Quote("$0.into_iter()", recv)
}

// hasCollectionGeneric returns true if a stream names a collection type
// with generic arguments.
func hasCollectionGeneric(s target.Stream) bool {
	for i := 0; i+1 < len(s); i++ {
		switch s[i].Text {
		case "Vec", "HashMap", "HashSet", "BTreeMap", "BTreeSet", "VecDeque":
			if s[i+1].Text == "<" {
				return true
			}
		}
	}
	return false
}

func (l *Lowerer) lowerMethodCall(e *ast.Expr, mc *ast.MethodCall) (target.Stream, error) {
	if mc.Method == "column" || mc.Method == "build" {
		if cols, ok := builderColumns(e); ok {
			return l.lowerDataFrameNew(cols)
		}
	}
	id, recvIsIdent := mc.Receiver.Kind.(*ast.Identifier)
	if recvIsIdent && id.Ident == dataFrameType {
		name := dataFrameType + "::" + mc.Method
		if l.builtins.Family(name) == DataFrameFn {
			return l.lowerDataFrameCall(&callSite{src: e, name: name, args: mc.Args})
		}
	}
	if mc.Method == "contains" && len(mc.Args) == 1 && isBorrowable(mc.Args[0]) {
		return l.methodTemplate(mc, "$0.contains($1)", true)
	}
	if recvIsIdent && l.IsModule(id.Ident) {
		args, err := l.lowerExprs(mc.Args)
		if err != nil {
			return nil, err
		}
		return target.Concat(lowerPath(id.Ident, mc.Method), target.Parens(target.CommaList(args))), nil
	}
	recv, err := l.receiver(mc.Receiver)
	if err != nil {
		return nil, err
	}
	if dataFrameOps[mc.Method] && l.isDataFrameExpr(mc.Receiver) {
		return l.lowerDataFrameMethod(e, recv, mc.Method, mc.Args)
	}
	switch methodCategories[mc.Method] {
	case iteratorOp:
		if !isOptionShaped(mc.Receiver) {
			return l.lowerIteratorOp(e, recv, mc)
		}
	case mapOp:
		return l.lowerMapOp(recv, mc)
	case setOp:
		if err := checkArity(e, mc.Method, mc.Args, 1, 1); err != nil {
			return nil, err
		}
		other, err := l.borrowArg(mc.Args[0])
		if err != nil {
			return nil, err
		}
		if !other.HasPrefix("&") {
			other = target.Concat(target.Stream{{Kind: target.Prefix, Text: "&"}}, other)
		}
		return target.Quote("$0.$1($2).cloned().collect::<HashSet<_>>()", recv, mc.Method, other), nil
	case stringOp:
		return l.lowerStringOp(e, recv, mc)
	case collectionOp:
		return l.lowerCollectionOp(e, recv, mc)
	case collectOp:
		if len(mc.Args) == 0 && !hasCollectionGeneric(recv) {
			return target.Concat(recv, collectVec), nil
		}
	}
	return l.passThrough(recv, mc.Method, mc.Args)
}

// passThrough lowers a method call without changing it.
func (l *Lowerer) passThrough(recv target.Stream, method string, args []*ast.Expr) (target.Stream, error) {
	lowered, err := l.lowerExprs(args)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0.$1($2)", recv, target.Ident(method), lowered), nil
}

// methodTemplate lowers a method call with a template given the receiver
// and the arguments.
func (l *Lowerer) methodTemplate(mc *ast.MethodCall, tmpl string, borrow bool) (target.Stream, error) {
	recv, err := l.receiver(mc.Receiver)
	if err != nil {
		return nil, err
	}
	parts := []any{recv}
	for _, arg := range mc.Args {
		var s target.Stream
		if borrow {
			s, err = l.borrowArg(arg)
			if err == nil && !s.HasPrefix("&") {
				s = target.Concat(target.Stream{{Kind: target.Prefix, Text: "&"}}, s)
			}
		} else {
			s, err = l.lowerExpr(arg)
		}
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return target.Quote(tmpl, parts...), nil
}

// filterClosure lowers the argument of filter. A closure with a single
// parameter destructures the reference it receives.
func (l *Lowerer) filterClosure(arg *ast.Expr) (target.Stream, error) {
	lambda, ok := arg.Kind.(*ast.Lambda)
	if !ok || len(lambda.Params) != 1 || lambda.Params[0].ParamName() == "" {
		return l.lowerExpr(arg)
	}
	s, err := l.lowerLambda(lambda.Params, lambda.Body, false)
	if err != nil {
		return nil, err
	}
	for i, tok := range s {
		if tok.Kind == target.Open && tok.Text == "|" {
			return target.Concat(s[:i+1], target.Stream{{Kind: target.Prefix, Text: "&"}}, s[i+1:]), nil
		}
	}
	return s, nil
}

func (l *Lowerer) lowerIteratorOp(e *ast.Expr, recv target.Stream, mc *ast.MethodCall) (target.Stream, error) {
	chain := iterChain(recv)
	switch mc.Method {
	case "sum", "product":
		if err := checkArity(e, mc.Method, mc.Args, 0, 0); err != nil {
			return nil, err
		}
		return target.Quote("$0.$1::<$2>()", chain, mc.Method, "i32"), nil
	case "reduce":
		if err := checkArity(e, mc.Method, mc.Args, 1, 2); err != nil {
			return nil, err
		}
		if len(mc.Args) == 1 {
			f, err := l.lowerExpr(mc.Args[0])
			if err != nil {
				return nil, err
			}
			return target.Quote("$0.reduce($1).unwrap()", chain, f), nil
		}
		init, f := mc.Args[0], mc.Args[1]
		if _, isLambda := init.Kind.(*ast.Lambda); isLambda {
			init, f = f, init
		}
		return l.fold(chain, init, f)
	case "fold":
		if err := checkArity(e, mc.Method, mc.Args, 2, 2); err != nil {
			return nil, err
		}
		return l.fold(chain, mc.Args[0], mc.Args[1])
	}
	if err := checkArity(e, mc.Method, mc.Args, 1, 1); err != nil {
		return nil, err
	}
	var f target.Stream
	var err error
	if mc.Method == "filter" {
		f, err = l.filterClosure(mc.Args[0])
	} else {
		f, err = l.lowerExpr(mc.Args[0])
	}
	if err != nil {
		return nil, err
	}
	s := target.Quote("$0.$1($2)", chain, mc.Method, f)
	if mc.Method == "map" || mc.Method == "filter" {
		s = target.Concat(s, collectVec)
	}
	return s, nil
}

func (l *Lowerer) fold(chain target.Stream, init, f *ast.Expr) (target.Stream, error) {
	i, err := l.lowerExpr(init)
	if err != nil {
		return nil, err
	}
	fn, err := l.lowerExpr(f)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0.fold($1, $2)", chain, i, fn), nil
}

func (l *Lowerer) lowerMapOp(recv target.Stream, mc *ast.MethodCall) (target.Stream, error) {
	switch mc.Method {
	case "keys", "values":
		return target.Quote("$0.$1().cloned().collect::<Vec<_>>()", recv, mc.Method), nil
	case "items":
		return target.Quote("$0.iter().map(|(k, v)| (k.clone(), v.clone())).collect::<Vec<_>>()", recv), nil
	case "update":
		return l.passThrough(recv, "extend", mc.Args)
	}
	return l.methodTemplate(mc, "$0.contains_key($1)", true)
}

func (l *Lowerer) lowerStringOp(e *ast.Expr, recv target.Stream, mc *ast.MethodCall) (target.Stream, error) {
	switch mc.Method {
	case "substring":
		if err := checkArity(e, mc.Method, mc.Args, 2, 2); err != nil {
			return nil, err
		}
		start, err := l.cast(mc.Args[0], "usize")
		if err != nil {
			return nil, err
		}
		count, err := l.cast(ast.New(&ast.Binary{Op: ast.Subtract, Left: mc.Args[1], Right: mc.Args[0]}), "usize")
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.chars().skip($1).take($2).collect::<String>()", recv, start, count), nil
	case "split":
		if err := checkArity(e, mc.Method, mc.Args, 1, 1); err != nil {
			return nil, err
		}
		sep, err := l.lowerExpr(mc.Args[0])
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.split($1).map(|s| s.to_string()).collect::<Vec<String>>()", recv, sep), nil
	}
	return l.passThrough(recv, renamedMethods[mc.Method], mc.Args)
}

func (l *Lowerer) lowerCollectionOp(e *ast.Expr, recv target.Stream, mc *ast.MethodCall) (target.Stream, error) {
	switch mc.Method {
	case "slice":
		if err := checkArity(e, mc.Method, mc.Args, 1, 2); err != nil {
			return nil, err
		}
		rng := &ast.Range{Start: mc.Args[0]}
		if len(mc.Args) == 2 {
			rng.End = mc.Args[1]
		}
		bounds, err := l.lowerRangeAs(rng, func(x target.Stream, e *ast.Expr) target.Stream {
			return usizeIndex(l, x, e)
		})
		if err != nil {
			return nil, err
		}
		return target.Quote("$0[$1].to_vec()", recv, bounds), nil
	case "concat":
		if err := checkArity(e, mc.Method, mc.Args, 1, 1); err != nil {
			return nil, err
		}
		other, err := l.lowerExpr(mc.Args[0])
		if err != nil {
			return nil, err
		}
		return target.Quote("[$0, $1].concat()", recv, other), nil
	case "flatten":
		return target.Concat(target.Quote("$0.flatten()", iterChain(recv)), collectVec), nil
	case "unique":
		seen := l.names.Name("seen")
		return target.Quote("{ let mut $1 = HashSet::new(); $0.into_iter().filter(|x| $1.insert(x.clone())).collect::<Vec<_>>() }", recv, seen), nil
	}
	return l.passThrough(recv, renamedMethods[mc.Method], mc.Args)
}

// lowerOptionalMethodCall lowers receiver?.method(args) to a method call
// applied to the value of an option.
func (l *Lowerer) lowerOptionalMethodCall(e *ast.Expr, omc *ast.OptionalMethodCall) (target.Stream, error) {
	recv, err := l.receiver(omc.Receiver)
	if err != nil {
		return nil, err
	}
	v := l.names.Name("v")
	call, err := l.lowerMethodCall(e, &ast.MethodCall{
		Receiver: ast.At(&ast.Identifier{Ident: v}, omc.Receiver.Span),
		Method:   omc.Method,
		Args:     omc.Args,
	})
	if err != nil {
		return nil, err
	}
	return target.Quote("$0.map(|$1| $2)", recv, v, call), nil
}
