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

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

// interpolationParts returns the format string parts and the arguments of
// an interpolated string.
func (l *Lowerer) interpolationParts(si *ast.StringInterpolation) ([]string, []target.Stream, error) {
	var fmts []string
	var args []target.Stream
	for _, part := range si.Parts {
		if part.Expr == nil {
			fmts = append(fmts, formatText(part.Text))
			continue
		}
		arg, err := l.lowerExpr(part.Expr)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case part.Format != "":
			fmts = append(fmts, "{:"+strings.TrimPrefix(part.Format, ":")+"}")
		default:
			fmts = append(fmts, placeholderFor(part.Expr))
		}
		args = append(args, arg)
	}
	return fmts, args, nil
}

func (l *Lowerer) lowerInterpolation(si *ast.StringInterpolation) (target.Stream, error) {
	fmts, args, err := l.interpolationParts(si)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return target.Quote("$0.to_string()", formatString(fmts...)), nil
	}
	return formatCall("format", fmts, args), nil
}

var formatMacros = map[string]bool{
	"print":    true,
	"println":  true,
	"eprint":   true,
	"eprintln": true,
	"format":   true,
	"panic":    true,
}

func (l *Lowerer) lowerMacro(e *ast.Expr, name string, args []*ast.Expr) (target.Stream, error) {
	switch {
	case formatMacros[name]:
		if len(args) == 0 {
			return l.lowerPrint(&callSite{src: e, name: name})
		}
		fmts, lowered, err := l.formatArgs(args)
		if err != nil {
			return nil, err
		}
		return formatCall(name, fmts, lowered), nil
	case l.builtins.Family(name) == Assert:
		return l.lowerAssert(&callSite{src: e, name: name, args: args})
	}
	lowered, err := l.lowerExprs(args)
	if err != nil {
		return nil, err
	}
	if name == "vec" {
		return target.Quote("vec![$0]", lowered), nil
	}
	return target.Quote("$0!($1)", name, lowered), nil
}

// lowerCommand lowers the execution of an external program. The value of
// the command is its output.
func lowerCommand(cmd *ast.Command) target.Stream {
	s := target.Quote("std::process::Command::new($0)", quoteString(cmd.Program))
	for _, arg := range cmd.Args {
		s = target.Quote("$0.arg($1)", s, quoteString(arg))
	}
	for _, env := range cmd.Env {
		s = target.Quote("$0.env($1, $2)", s, quoteString(env.Key), quoteString(env.Value))
	}
	if cmd.WorkingDir != "" {
		s = target.Quote("$0.current_dir($1)", s, quoteString(cmd.WorkingDir))
	}
	return target.Quote(`$0.output().expect("failed to execute command")`, s)
}
