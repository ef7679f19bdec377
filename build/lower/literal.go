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
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/paiml/ruchy-sub001/build/lower/numkind"
	"github.com/paiml/ruchy-sub001/build/target"
)

func (l *Lowerer) lowerLiteral(e *ast.Expr, lit *ast.Literal) (target.Stream, error) {
	switch lit.Lit {
	case ast.IntLit:
		return lowerInt(e, lit)
	case ast.FloatLit:
		return target.Stream{target.W(floatText(lit.Float))}, nil
	case ast.StringLit:
		return target.Stream{target.W(quoteString(lit.Str))}, nil
	case ast.CharLit:
		return target.Stream{target.W(quoteChar(lit.Char))}, nil
	case ast.ByteLit:
		if lit.Byte < unicode.MaxASCII && unicode.IsPrint(rune(lit.Byte)) && lit.Byte != '\'' && lit.Byte != '\\' {
			return target.Stream{target.W("b'" + string(rune(lit.Byte)) + "'")}, nil
		}
		return target.Stream{target.W(strconv.Itoa(int(lit.Byte)) + "u8")}, nil
	case ast.BoolLit:
		return target.Stream{target.W(strconv.FormatBool(lit.Bool))}, nil
	case ast.UnitLit:
		return target.Quote("()"), nil
	case ast.NullLit:
		return target.Stream{target.W("None")}, nil
	case ast.AtomLit:
		return target.Stream{target.W(quoteString(lit.Str))}, nil
	}
	return nil, fmterr.Internalf(e, "literal kind %v not supported", lit.Lit)
}

func lowerInt(e *ast.Expr, lit *ast.Literal) (target.Stream, error) {
	text := strconv.FormatInt(lit.Int, 10)
	if lit.Suffix == "" {
		return target.Stream{target.W(text)}, nil
	}
	kind := numkind.FromSuffix(lit.Suffix)
	if kind == numkind.Invalid || kind == numkind.Bool {
		return nil, malformedf(e, "invalid integer suffix %q", lit.Suffix)
	}
	if !kind.Fits(lit.Int) {
		return nil, malformedf(e, "integer %d overflows %s", lit.Int, kind)
	}
	if kind.IsFloat() {
		return target.Stream{target.W(text + ".0" + lit.Suffix)}, nil
	}
	return target.Stream{target.W(text + lit.Suffix)}, nil
}

func floatText(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "f64::INFINITY"
	case math.IsInf(f, -1):
		return "f64::NEG_INFINITY"
	case math.IsNaN(f):
		return "f64::NAN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEn") {
		if strings.ContainsAny(s, "eE") && !strings.Contains(s, ".") {
			mantissa, exp, _ := strings.Cut(strings.ToLower(s), "e")
			return mantissa + ".0e" + exp
		}
		return s
	}
	return s + ".0"
}

func escapeRune(b *strings.Builder, r rune, quote rune) {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case 0:
		b.WriteString(`\0`)
	case quote:
		b.WriteRune('\\')
		b.WriteRune(r)
	default:
		if unicode.IsPrint(r) {
			b.WriteRune(r)
			return
		}
		fmt.Fprintf(b, `\u{%x}`, r)
	}
}

// quoteString returns a Rust string literal.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		escapeRune(&b, r, '"')
	}
	b.WriteByte('"')
	return b.String()
}

func quoteChar(r rune) string {
	var b strings.Builder
	b.WriteByte('\'')
	escapeRune(&b, r, '\'')
	b.WriteByte('\'')
	return b.String()
}

// formatText escapes text to be used in a format string.
func formatText(s string) string {
	q := quoteString(s)
	q = q[1 : len(q)-1]
	q = strings.ReplaceAll(q, "{", "{{")
	return strings.ReplaceAll(q, "}", "}}")
}

// formatString builds a format string literal from its parts.
func formatString(parts ...string) target.Token {
	return target.W(`"` + strings.Join(parts, "") + `"`)
}
