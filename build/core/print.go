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

package core

import (
	"fmt"
	"strconv"
	"strings"
)

func (t *Var) String() string {
	return fmt.Sprintf("#%d", t.Index)
}

func (t *Lambda) String() string {
	return fmt.Sprintf("λ%s. %s", t.Name, t.Body.String())
}

func (t *App) String() string {
	return fmt.Sprintf("(%s %s)", t.Func.String(), t.Arg.String())
}

func (t *Let) String() string {
	kw := "let"
	if t.Rec {
		kw = "let rec"
	}
	return fmt.Sprintf("%s %s = %s in %s", kw, t.Name, t.Value.String(), t.Body.String())
}

func (t *Literal) String() string {
	switch t.Kind {
	case IntLit:
		return strconv.FormatInt(t.Int, 10)
	case FloatLit:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	case StringLit:
		return strconv.Quote(t.Str)
	case BoolLit:
		return strconv.FormatBool(t.Bool)
	case CharLit:
		return strconv.QuoteRune(t.Char)
	}
	return "()"
}

func (t *Prim) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return t.Op.String() + "(" + strings.Join(args, ", ") + ")"
}
