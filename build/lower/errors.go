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
	"strconv"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/pkg/errors"
)

func errorf(format string, a ...any) error {
	return errors.Errorf(format, a...)
}

func unsupportedf(node *ast.Expr, format string, a ...any) error {
	return fmterr.Errorf(fmterr.Unsupported, node, format, a...)
}

func malformedf(node *ast.Expr, format string, a ...any) error {
	return fmterr.Errorf(fmterr.MalformedInput, node, format, a...)
}

func arityError(node *ast.Expr, name string, want string, got int) error {
	return fmterr.Errorf(fmterr.Arity, node, "%s expects %s but got %d", name, want, got)
}

// checkArity returns an error if the number of arguments is not in [min, max].
// A negative max means no upper bound.
func checkArity(node *ast.Expr, name string, args []*ast.Expr, min, max int) error {
	n := len(args)
	if n >= min && (max < 0 || n <= max) {
		return nil
	}
	switch {
	case min == max && min == 0:
		return arityError(node, name, "no argument", n)
	case min == max && min == 1:
		return arityError(node, name, "1 argument", n)
	case min == max:
		return arityError(node, name, strconv.Itoa(min)+" arguments", n)
	case max < 0:
		return arityError(node, name, "at least "+strconv.Itoa(min)+" arguments", n)
	}
	return arityError(node, name, strconv.Itoa(min)+" to "+strconv.Itoa(max)+" arguments", n)
}
