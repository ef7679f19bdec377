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

// nowMillis is the path of the function returning the time in milliseconds.
const nowMillis = "std::time::now_millis"

// callSite is a call to a named function.
type callSite struct {
	src  *ast.Expr
	name string
	args []*ast.Expr
}

func (c *callSite) arity(min, max int) error {
	return checkArity(c.src, c.name, c.args, min, max)
}

// calleeName returns the name of a function called by name.
func calleeName(fn *ast.Expr) (string, bool) {
	switch k := fn.Kind.(type) {
	case *ast.Identifier:
		return k.Ident, true
	case *ast.QualifiedName:
		return strings.Join(append(splitPath(k.Module), k.Ident), "::"), true
	}
	return "", false
}

func (l *Lowerer) lowerCall(e *ast.Expr, call *ast.Call) (target.Stream, error) {
	name, byName := calleeName(call.Func)
	if !byName {
		callee, err := l.receiver(call.Func)
		if err != nil {
			return nil, err
		}
		args, err := l.lowerExprs(call.Args)
		if err != nil {
			return nil, err
		}
		return target.Concat(callee, target.Parens(target.CommaList(args))), nil
	}
	c := &callSite{src: e, name: name, args: call.Args}
	switch {
	case name == "main":
		return l.lowerUserCall(c, target.Words(EntrySymbol))
	case name == nowMillis:
		if err := c.arity(0, 0); err != nil {
			return nil, err
		}
		return target.Quote("(std::time::SystemTime::now().duration_since(std::time::UNIX_EPOCH).unwrap().as_millis() as i64)"), nil
	}
	if family := l.builtins.Family(name); family != NotBuiltin {
		l.log.Debug("builtin call", "name", name, "family", family.String())
		return l.lowerBuiltin(family, c)
	}
	if _, isIdent := call.Func.Kind.(*ast.Identifier); !isIdent {
		args, err := l.lowerExprs(call.Args)
		if err != nil {
			return nil, err
		}
		return target.Concat(pathStream(splitPath(name)), target.Parens(target.CommaList(args))), nil
	}
	return l.lowerUserCall(c, l.lowerIdent(name))
}

// lowerUserCall lowers a call to a user function. String literals are
// converted into owned strings unless the parameter is a borrowed string.
func (l *Lowerer) lowerUserCall(c *callSite, callee target.Stream) (target.Stream, error) {
	sig := l.funcs[c.name]
	args := make([]target.Stream, len(c.args))
	for i, arg := range c.args {
		s, err := l.lowerExpr(arg)
		if err != nil {
			return nil, err
		}
		if sig == nil || !sig.borrowed(i) {
			s = ownedString(arg, s)
		}
		args[i] = s
	}
	return target.Concat(callee, target.Parens(target.CommaList(args))), nil
}

func (l *Lowerer) lowerBuiltin(family Family, c *callSite) (target.Stream, error) {
	switch family {
	case Print:
		return l.lowerPrint(c)
	case Math:
		return l.lowerMath(c)
	case Trig:
		return l.lowerTrig(c)
	case Input:
		return l.lowerInput(c)
	case Assert:
		return l.lowerAssert(c)
	case Convert:
		return l.lowerConvert(c)
	case Range:
		return l.lowerRangeCall(c)
	case Collection:
		return l.lowerCollection(c)
	case Time:
		return l.lowerTime(c)
	case Env:
		return l.lowerEnv(c)
	case FS:
		return l.lowerFS(c)
	case Path:
		return l.lowerPathCall(c)
	case JSON:
		return l.lowerJSON(c)
	case HTTP:
		return l.lowerHTTP(c)
	case SIMD:
		return l.lowerSIMD(c)
	case Process:
		return l.lowerProcess(c)
	case DataFrameFn:
		return l.lowerDataFrameCall(c)
	}
	return nil, errorf("built-in family %v not supported", family)
}

// lowerArgs lowers the arguments of a call site.
func (l *Lowerer) lowerArgs(c *callSite) ([]target.Stream, error) {
	return l.lowerExprs(c.args)
}

// borrowArg passes an argument by reference unless it is a literal.
func (l *Lowerer) borrowArg(e *ast.Expr) (target.Stream, error) {
	s, err := l.lowerExpr(e)
	if err != nil {
		return nil, err
	}
	if _, ok := e.Kind.(*ast.Literal); ok {
		return s, nil
	}
	if l.prec(e) < precUnary {
		s = target.Parens(s)
	}
	return target.Concat(target.Stream{{Kind: target.Prefix, Text: "&"}}, s), nil
}

// cast converts the lowered form of an expression to a primitive type.
func (l *Lowerer) cast(e *ast.Expr, typ string) (target.Stream, error) {
	s, err := l.lowerExpr(e)
	if err != nil {
		return nil, err
	}
	if l.prec(e) < precUnary {
		s = target.Parens(s)
	}
	return target.Quote("($0 as $1)", s, typ), nil
}

// asFloat returns the receiver of a floating point method.
func (l *Lowerer) asFloat(e *ast.Expr) (target.Stream, error) {
	if isFloatExpr(e) {
		return l.receiver(e)
	}
	return l.cast(e, "f64")
}

// isDebugValue returns true if a value is printed with its debug representation.
func isDebugValue(e *ast.Expr) bool {
	switch e.Kind.(type) {
	case *ast.List, *ast.Tuple, *ast.Set, *ast.ObjectLiteral, *ast.VecRepeat:
		return true
	}
	return analysis.ValueCreatesVec(e)
}

func placeholderFor(e *ast.Expr) string {
	if isDebugValue(e) {
		return "{:?}"
	}
	return "{}"
}

// formatArgs builds the format string and arguments of a formatting macro.
// A leading string literal with placeholders is used as the format string.
func (l *Lowerer) formatArgs(args []*ast.Expr) ([]string, []target.Stream, error) {
	var fmts []string
	var streams []target.Stream
	if len(args) > 0 {
		switch first := args[0].Kind.(type) {
		case *ast.Literal:
			if first.Lit != ast.StringLit {
				break
			}
			if len(args) > 1 && strings.Contains(first.Str, "{") {
				q := quoteString(first.Str)
				rest, err := l.lowerExprs(args[1:])
				if err != nil {
					return nil, nil, err
				}
				return []string{q[1 : len(q)-1]}, rest, nil
			}
			fmts = append(fmts, formatText(first.Str))
			args = args[1:]
		case *ast.StringInterpolation:
			f, a, err := l.interpolationParts(first)
			if err != nil {
				return nil, nil, err
			}
			fmts, streams = f, a
			args = args[1:]
		}
	}
	for _, arg := range args {
		s, err := l.lowerExpr(arg)
		if err != nil {
			return nil, nil, err
		}
		if len(fmts) > 0 {
			fmts = append(fmts, " ")
		}
		fmts = append(fmts, placeholderFor(arg))
		streams = append(streams, s)
	}
	return fmts, streams, nil
}

func (l *Lowerer) lowerPrint(c *callSite) (target.Stream, error) {
	if len(c.args) == 0 {
		if strings.HasSuffix(c.name, "ln") {
			return target.Quote("$0!()", c.name), nil
		}
		return target.Quote(`$0!("")`, c.name), nil
	}
	fmts, args, err := l.formatArgs(c.args)
	if err != nil {
		return nil, err
	}
	return formatCall(c.name, fmts, args), nil
}

var floatMethods = map[string]string{
	"sqrt":   "sqrt",
	"cbrt":   "cbrt",
	"exp":    "exp",
	"ln":     "ln",
	"log10":  "log10",
	"log2":   "log2",
	"floor":  "floor",
	"ceil":   "ceil",
	"round":  "round",
	"trunc":  "trunc",
	"signum": "signum",
}

func (l *Lowerer) lowerMath(c *callSite) (target.Stream, error) {
	switch c.name {
	case "abs":
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		x := c.args[0]
		if lit, ok := x.Kind.(*ast.Literal); ok && lit.Lit == ast.IntLit {
			s, err := l.lowerExpr(x)
			if err != nil {
				return nil, err
			}
			return target.Quote("$0::abs($1)", analysis.DefaultInt, s), nil
		}
		recv, err := l.receiver(x)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.abs()", recv), nil
	case "min", "max":
		if err := c.arity(2, 2); err != nil {
			return nil, err
		}
		if isFloatExpr(c.args[0]) || isFloatExpr(c.args[1]) {
			return l.floatMethod(c.name, c.args[0], c.args[1])
		}
		args, err := l.lowerArgs(c)
		if err != nil {
			return nil, err
		}
		return target.Quote("std::cmp::$0($1)", c.name, args), nil
	case "pow":
		if err := c.arity(2, 2); err != nil {
			return nil, err
		}
		return l.lowerPower(&ast.Binary{Op: ast.Power, Left: c.args[0], Right: c.args[1]})
	case "log":
		if err := c.arity(1, 2); err != nil {
			return nil, err
		}
		if len(c.args) == 1 {
			return l.floatMethod("ln", c.args[0])
		}
		return l.floatMethod("log", c.args...)
	case "hypot":
		if err := c.arity(2, 2); err != nil {
			return nil, err
		}
		return l.floatMethod("hypot", c.args...)
	}
	if err := c.arity(1, 1); err != nil {
		return nil, err
	}
	return l.floatMethod(floatMethods[c.name], c.args[0])
}

// floatMethod calls a method of f64 on the first argument.
func (l *Lowerer) floatMethod(method string, args ...*ast.Expr) (target.Stream, error) {
	recv, err := l.asFloat(args[0])
	if err != nil {
		return nil, err
	}
	var rest []target.Stream
	for _, arg := range args[1:] {
		s, err := l.floatArg(arg)
		if err != nil {
			return nil, err
		}
		rest = append(rest, s)
	}
	return target.Quote("$0.$1($2)", recv, method, rest), nil
}

func (l *Lowerer) floatArg(e *ast.Expr) (target.Stream, error) {
	if isFloatExpr(e) {
		return l.lowerExpr(e)
	}
	s, err := l.lowerExpr(e)
	if err != nil {
		return nil, err
	}
	if l.prec(e) < precUnary {
		s = target.Parens(s)
	}
	return target.Quote("$0 as f64", s), nil
}

func (l *Lowerer) lowerTrig(c *callSite) (target.Stream, error) {
	if c.name == "atan2" {
		if err := c.arity(2, 2); err != nil {
			return nil, err
		}
		return l.floatMethod("atan2", c.args...)
	}
	if err := c.arity(1, 1); err != nil {
		return nil, err
	}
	return l.floatMethod(c.name, c.args[0])
}

func (l *Lowerer) lowerInput(c *callSite) (target.Stream, error) {
	if err := c.arity(0, 1); err != nil {
		return nil, err
	}
	line := l.names.Name("line")
	var prompt target.Stream
	if len(c.args) == 1 {
		fmts, args, err := l.formatArgs(c.args)
		if err != nil {
			return nil, err
		}
		prompt = target.Concat(formatCall("print", fmts, args), target.Stream{target.Semi})
		prompt = append(prompt, target.Quote("std::io::Write::flush(&mut std::io::stdout()).unwrap();")...)
	}
	return target.Quote(`{
		$0
		let mut $1 = String::new();
		std::io::stdin().read_line(&mut $1).expect("failed to read line");
		$1.trim_end().to_string()
	}`, prompt, line), nil
}

func (l *Lowerer) lowerAssert(c *callSite) (target.Stream, error) {
	want := 1
	if strings.HasSuffix(c.name, "_eq") || strings.HasSuffix(c.name, "_ne") {
		want = 2
	}
	if err := c.arity(want, -1); err != nil {
		return nil, err
	}
	args, err := l.lowerExprs(c.args[:want])
	if err != nil {
		return nil, err
	}
	if len(c.args) > want {
		fmts, msg, err := l.formatArgs(c.args[want:])
		if err != nil {
			return nil, err
		}
		args = append(args, target.Stream{formatString(fmts...)})
		args = append(args, msg...)
	}
	return target.Quote("$0!($1)", c.name, args), nil
}

func (l *Lowerer) lowerConvert(c *callSite) (target.Stream, error) {
	if err := c.arity(1, 1); err != nil {
		return nil, err
	}
	x := c.args[0]
	parse := func(typ string) (target.Stream, error) {
		recv, err := l.receiver(x)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.parse::<$1>().unwrap()", recv, typ), nil
	}
	isString := l.isStringExpr(x)
	switch c.name {
	case "int":
		if isString {
			return parse("i64")
		}
		return l.cast(x, "i64")
	case "float":
		if isString {
			return parse("f64")
		}
		return l.cast(x, "f64")
	case "bool":
		if isString {
			return parse("bool")
		}
		s, err := l.operand(x, ast.NotEqual, false)
		if err != nil {
			return nil, err
		}
		return target.Quote("($0 != 0)", s), nil
	case "char":
		s, err := l.lowerExpr(x)
		if err != nil {
			return nil, err
		}
		if l.prec(x) < precUnary {
			s = target.Parens(s)
		}
		return target.Quote("char::from_u32($0 as u32).unwrap()", s), nil
	}
	recv, err := l.receiver(x)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0.to_string()", recv), nil
}

func (l *Lowerer) lowerRangeCall(c *callSite) (target.Stream, error) {
	if err := c.arity(1, 3); err != nil {
		return nil, err
	}
	if len(c.args) == 1 {
		return l.lowerRange(&ast.Range{Start: ast.New(&ast.Literal{Lit: ast.IntLit}), End: c.args[0]})
	}
	rng, err := l.lowerRange(&ast.Range{Start: c.args[0], End: c.args[1]})
	if err != nil || len(c.args) == 2 {
		return rng, err
	}
	step, err := l.cast(c.args[2], "usize")
	if err != nil {
		return nil, err
	}
	return target.Quote("($0).step_by($1)", rng, step), nil
}

func (l *Lowerer) lowerCollection(c *callSite) (target.Stream, error) {
	switch c.name {
	case "vec":
		args, err := l.lowerArgs(c)
		if err != nil {
			return nil, err
		}
		return target.Quote("vec![$0]", args), nil
	case "HashSet::from":
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		if list, ok := c.args[0].Kind.(*ast.List); ok {
			elts, err := l.lowerExprs(list.Elements)
			if err != nil {
				return nil, err
			}
			return target.Quote("HashSet::from([$0])", elts), nil
		}
	case "Vec::with_capacity":
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
	default:
		if err := c.arity(0, 0); err != nil {
			return nil, err
		}
	}
	args, err := l.lowerArgs(c)
	if err != nil {
		return nil, err
	}
	return target.Concat(pathStream(splitPath(c.name)), target.Parens(target.CommaList(args))), nil
}

func (l *Lowerer) lowerTime(c *callSite) (target.Stream, error) {
	if c.name == "sleep" {
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		ms, err := l.cast(c.args[0], "u64")
		if err != nil {
			return nil, err
		}
		return target.Quote("std::thread::sleep(std::time::Duration::from_millis($0))", ms), nil
	}
	if err := c.arity(0, 0); err != nil {
		return nil, err
	}
	return target.Quote("std::time::SystemTime::now().duration_since(std::time::UNIX_EPOCH).unwrap().as_secs_f64()"), nil
}

func (l *Lowerer) lowerEnv(c *callSite) (target.Stream, error) {
	switch c.name {
	case "env_var":
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		key, err := l.borrowArg(c.args[0])
		if err != nil {
			return nil, err
		}
		return target.Quote("std::env::var($0).unwrap_or_default()", key), nil
	case "env_set_var":
		if err := c.arity(2, 2); err != nil {
			return nil, err
		}
		key, err := l.borrowArg(c.args[0])
		if err != nil {
			return nil, err
		}
		value, err := l.borrowArg(c.args[1])
		if err != nil {
			return nil, err
		}
		return target.Quote("std::env::set_var($0, $1)", key, value), nil
	}
	if err := c.arity(0, 0); err != nil {
		return nil, err
	}
	if c.name == "env_args" {
		return target.Quote("std::env::args().collect::<Vec<String>>()"), nil
	}
	return target.Quote("std::env::current_dir().unwrap().display().to_string()"), nil
}

var fsCalls = map[string]string{
	"fs_read":       "std::fs::read_to_string($0).unwrap()",
	"read_file":     "std::fs::read_to_string($0).unwrap()",
	"fs_exists":     "std::path::Path::new($0).exists()",
	"file_exists":   "std::path::Path::new($0).exists()",
	"fs_remove":     "std::fs::remove_file($0).unwrap()",
	"fs_create_dir": "std::fs::create_dir_all($0).unwrap()",
	"fs_write":      "std::fs::write($0, $1).unwrap()",
	"write_file":    "std::fs::write($0, $1).unwrap()",
}

func (l *Lowerer) lowerFS(c *callSite) (target.Stream, error) {
	want := 1
	if c.name == "fs_write" || c.name == "write_file" {
		want = 2
	}
	return l.pathTemplate(c, want, fsCalls[c.name])
}

// pathTemplate lowers a call passing all its arguments by reference.
func (l *Lowerer) pathTemplate(c *callSite, arity int, tmpl string) (target.Stream, error) {
	if err := c.arity(arity, arity); err != nil {
		return nil, err
	}
	args := make([]any, len(c.args))
	for i, arg := range c.args {
		s, err := l.borrowArg(arg)
		if err != nil {
			return nil, err
		}
		args[i] = s
	}
	return target.Quote(tmpl, args...), nil
}

var pathCalls = map[string]string{
	"path_join":      "std::path::Path::new($0).join($1).display().to_string()",
	"path_extension": `std::path::Path::new($0).extension().and_then(|e| e.to_str()).unwrap_or("").to_string()`,
	"path_filename":  `std::path::Path::new($0).file_name().and_then(|e| e.to_str()).unwrap_or("").to_string()`,
	"path_parent":    "std::path::Path::new($0).parent().map(|d| d.display().to_string()).unwrap_or_default()",
}

func (l *Lowerer) lowerPathCall(c *callSite) (target.Stream, error) {
	want := 1
	if c.name == "path_join" {
		want = 2
	}
	return l.pathTemplate(c, want, pathCalls[c.name])
}

func (l *Lowerer) lowerJSON(c *callSite) (target.Stream, error) {
	if err := c.arity(1, 1); err != nil {
		return nil, err
	}
	if c.name == "json_parse" {
		s, err := l.borrowArg(c.args[0])
		if err != nil {
			return nil, err
		}
		return target.Quote("serde_json::from_str::<serde_json::Value>($0).unwrap()", s), nil
	}
	v, err := l.lowerExpr(c.args[0])
	if err != nil {
		return nil, err
	}
	if l.prec(c.args[0]) < precUnary {
		v = target.Parens(v)
	}
	return target.Quote("serde_json::to_string(&$0).unwrap()", v), nil
}

func (l *Lowerer) lowerHTTP(c *callSite) (target.Stream, error) {
	if c.name == "http_get" {
		return l.pathTemplate(c, 1, "reqwest::blocking::get($0).unwrap().text().unwrap()")
	}
	if err := c.arity(2, 2); err != nil {
		return nil, err
	}
	url, err := l.borrowArg(c.args[0])
	if err != nil {
		return nil, err
	}
	body, err := l.receiver(c.args[1])
	if err != nil {
		return nil, err
	}
	return target.Quote("reqwest::blocking::Client::new().post($0).body($1.to_string()).send().unwrap().text().unwrap()", url, body), nil
}

// lowerSIMD lowers a numeric helper to a call into the SIMD bridge.
// Arguments are passed by reference.
func (l *Lowerer) lowerSIMD(c *callSite) (target.Stream, error) {
	args := make([]target.Stream, len(c.args))
	for i, arg := range c.args {
		s, err := l.lowerExpr(arg)
		if err != nil {
			return nil, err
		}
		if l.prec(arg) < precUnary {
			s = target.Parens(s)
		}
		args[i] = target.Concat(target.Stream{{Kind: target.Prefix, Text: "&"}}, s)
	}
	op := target.Ident(strings.TrimPrefix(c.name, SIMDPrefix))
	return target.Quote("trueno_bridge::$0($1)", op, args), nil
}

func (l *Lowerer) lowerProcess(c *callSite) (target.Stream, error) {
	if c.name == "process_id" {
		if err := c.arity(0, 0); err != nil {
			return nil, err
		}
		return target.Quote("std::process::id()"), nil
	}
	if err := c.arity(0, 1); err != nil {
		return nil, err
	}
	if len(c.args) == 0 {
		return target.Quote("std::process::exit(0)"), nil
	}
	code, err := l.lowerExpr(c.args[0])
	if err != nil {
		return nil, err
	}
	return target.Quote("std::process::exit($0)", code), nil
}
