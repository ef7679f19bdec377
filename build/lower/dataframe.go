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

const dataFrameType = "DataFrame"

// dataFrameOps are the methods lowered to calls of the dataframe library.
var dataFrameOps = map[string]bool{
	"select":      true,
	"filter":      true,
	"group_by":    true,
	"groupby":     true,
	"agg":         true,
	"sort":        true,
	"sort_by":     true,
	"head":        true,
	"tail":        true,
	"join":        true,
	"mean":        true,
	"sum":         true,
	"min":         true,
	"max":         true,
	"std":         true,
	"count":       true,
	"height":      true,
	"rows":        true,
	"shape":       true,
	"columns":     true,
	"width":       true,
	"drop":        true,
	"rename":      true,
	"with_column": true,
}

// isDataFrameRoot returns true for DataFrame::new() and DataFrame.new().
func isDataFrameRoot(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.Call:
		qn, ok := k.Func.Kind.(*ast.QualifiedName)
		return ok && qn.Module == dataFrameType && qn.Ident == "new" && len(k.Args) == 0
	case *ast.MethodCall:
		id, ok := k.Receiver.Kind.(*ast.Identifier)
		return ok && id.Ident == dataFrameType && k.Method == "new" && len(k.Args) == 0
	}
	return false
}

// isDataFrameExpr returns true if an expression evaluates to a dataframe.
func (l *Lowerer) isDataFrameExpr(e *ast.Expr) bool {
	if e == nil {
		return false
	}
	switch k := e.Kind.(type) {
	case *ast.DataFrame, *ast.DataFrameOperation:
		return true
	case *ast.Identifier:
		return l.dataframes.Contains(k.Ident)
	case *ast.Call:
		qn, ok := k.Func.Kind.(*ast.QualifiedName)
		return ok && qn.Module == dataFrameType
	case *ast.MethodCall:
		if id, ok := k.Receiver.Kind.(*ast.Identifier); ok && id.Ident == dataFrameType {
			return true
		}
		switch k.Method {
		case "column", "build":
			return l.isDataFrameExpr(k.Receiver)
		case "shape", "columns", "height", "count", "rows", "width":
			return false
		}
		return dataFrameOps[k.Method] && l.isDataFrameExpr(k.Receiver)
	case *ast.Try:
		return l.isDataFrameExpr(k.Expr)
	}
	return false
}

// dataFrameColumn is a (name, data) pair of a dataframe constructor.
type dataFrameColumn struct {
	name *ast.Expr
	data []*ast.Expr
	expr *ast.Expr
}

// builderColumns walks a builder chain down to its root and returns its
// columns in declaration order.
func builderColumns(e *ast.Expr) ([]dataFrameColumn, bool) {
	if isDataFrameRoot(e) {
		return nil, true
	}
	mc, ok := e.Kind.(*ast.MethodCall)
	if !ok {
		return nil, false
	}
	switch mc.Method {
	case "build":
		if len(mc.Args) != 0 {
			return nil, false
		}
		return builderColumns(mc.Receiver)
	case "column":
		if len(mc.Args) != 2 {
			return nil, false
		}
		cols, ok := builderColumns(mc.Receiver)
		if !ok {
			return nil, false
		}
		col := dataFrameColumn{name: mc.Args[0]}
		if list, isList := mc.Args[1].Kind.(*ast.List); isList {
			col.data = list.Elements
		} else {
			col.expr = mc.Args[1]
		}
		return append(cols, col), true
	}
	return nil, false
}

// lowerDataFrameNew lowers the constructor of a dataframe given its columns.
func (l *Lowerer) lowerDataFrameNew(cols []dataFrameColumn) (target.Stream, error) {
	if len(cols) == 0 {
		return target.Quote("DataFrame::empty()"), nil
	}
	series := make([]target.Stream, len(cols))
	for i, col := range cols {
		name, err := l.lowerExpr(col.name)
		if err != nil {
			return nil, err
		}
		var data target.Stream
		if col.expr != nil {
			if data, err = l.borrowArg(col.expr); err != nil {
				return nil, err
			}
		} else {
			elts, err := l.lowerExprs(col.data)
			if err != nil {
				return nil, err
			}
			data = target.Quote("&[$0]", elts)
		}
		series[i] = target.Quote("Series::new($0, $1)", name, data)
	}
	return target.Quote("DataFrame::new(vec![$0])?", series), nil
}

func (l *Lowerer) lowerDataFrameLiteral(df *ast.DataFrame) (target.Stream, error) {
	cols := make([]dataFrameColumn, len(df.Columns))
	for i, col := range df.Columns {
		cols[i] = dataFrameColumn{
			name: ast.New(&ast.Literal{Lit: ast.StringLit, Str: col.Ident}),
			data: col.Values,
		}
	}
	return l.lowerDataFrameNew(cols)
}

func (l *Lowerer) lowerDataFrameCall(c *callSite) (target.Stream, error) {
	switch c.name {
	case "col":
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		name, err := l.lowerExpr(c.args[0])
		if err != nil {
			return nil, err
		}
		return target.Quote("polars::prelude::col($0)", name), nil
	case "DataFrame::from_csv":
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		path, err := l.receiver(c.args[0])
		if err != nil {
			return nil, err
		}
		return target.Quote("CsvReadOptions::default().try_into_reader_with_file_path(Some($0.into()))?.finish()?", path), nil
	}
	if len(c.args) == 0 {
		return l.lowerDataFrameNew(nil)
	}
	args, err := l.lowerArgs(c)
	if err != nil {
		return nil, err
	}
	return target.Quote("DataFrame::new($0)?", args), nil
}

// columnList lowers column names to an array of names.
func (l *Lowerer) columnList(args []*ast.Expr) (target.Stream, error) {
	if len(args) == 1 {
		if list, ok := args[0].Kind.(*ast.List); ok {
			args = list.Elements
		}
	}
	names, err := l.lowerExprs(args)
	if err != nil {
		return nil, err
	}
	return target.Brackets(target.CommaList(names)), nil
}

// lowerDataFrameMethod lowers a dataframe operation applied to a receiver.
func (l *Lowerer) lowerDataFrameMethod(e *ast.Expr, recv target.Stream, op string, args []*ast.Expr) (target.Stream, error) {
	switch op {
	case "select", "drop":
		cols, err := l.columnList(args)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.$1($2)?", recv, op, cols), nil
	case "group_by", "groupby":
		cols, err := l.columnList(args)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.group_by($1)?", recv, cols), nil
	case "agg":
		aggs, err := l.columnList(args)
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.agg($1)?", recv, aggs), nil
	case "filter":
		if err := checkArity(e, op, args, 1, 1); err != nil {
			return nil, err
		}
		pred, err := l.lowerExpr(args[0])
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.clone().lazy().filter($1).collect()?", recv, pred), nil
	case "sort", "sort_by":
		if err := checkArity(e, op, args, 1, 2); err != nil {
			return nil, err
		}
		cols, err := l.columnList(args[:1])
		if err != nil {
			return nil, err
		}
		opts := target.Quote("SortMultipleOptions::default()")
		if len(args) == 2 {
			desc, err := l.lowerExpr(args[1])
			if err != nil {
				return nil, err
			}
			opts = target.Quote("$0.with_order_descending($1)", opts, desc)
		}
		return target.Quote("$0.sort($1, $2)?", recv, cols, opts), nil
	case "head", "tail":
		if err := checkArity(e, op, args, 0, 1); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return target.Quote("$0.$1(None)", recv, op), nil
		}
		n, err := l.cast(args[0], "usize")
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.$1(Some($2))", recv, op, n), nil
	case "join":
		if err := checkArity(e, op, args, 2, 2); err != nil {
			return nil, err
		}
		other, err := l.borrowArg(args[0])
		if err != nil {
			return nil, err
		}
		on, err := l.columnList(args[1:])
		if err != nil {
			return nil, err
		}
		return target.Quote("$0.join($1, $2, $2, JoinArgs::new(JoinType::Inner))?", recv, other, on), nil
	case "count", "height", "rows":
		return target.Quote("$0.height()", recv), nil
	case "columns":
		return target.Quote("$0.get_column_names()", recv), nil
	case "width", "shape":
		return target.Quote("$0.$1()", recv, op), nil
	}
	rest, err := l.lowerExprs(args)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0.$1($2)", recv, target.Ident(op), rest), nil
}

func (l *Lowerer) lowerDataFrameOperation(e *ast.Expr, op *ast.DataFrameOperation) (target.Stream, error) {
	recv, err := l.receiver(op.Source)
	if err != nil {
		return nil, err
	}
	args := op.Args
	if len(op.Columns) > 0 {
		cols := make([]*ast.Expr, len(op.Columns))
		for i, col := range op.Columns {
			cols[i] = ast.New(&ast.Literal{Lit: ast.StringLit, Str: col})
		}
		args = append(cols, args...)
	}
	return l.lowerDataFrameMethod(e, recv, op.Op, args)
}
