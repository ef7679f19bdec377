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

package target

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paiml/ruchy-sub001/base/sync"
	"github.com/pkg/errors"
)

// templates caches lexed templates.
var templates sync.Map[string, Stream]

// Quote lexes a Rust code template and splices arguments into it.
// $0 to $9 reference the arguments, which can be a Stream, a Token,
// a []Stream (spliced as a comma separated list), a string (spliced as a
// word) or nil (spliced as nothing).
//
// A { followed by a newline in the template opens a block laid out on
// multiple lines. Other braces are inline.
//
// Quote panics if the template cannot be lexed: templates are constants of
// the lowerer.
func Quote(tmpl string, args ...any) Stream {
	toks, err := templates.LoadOrCompute(tmpl, func() (Stream, error) {
		return Lex(tmpl)
	})
	if err != nil {
		panic(fmt.Sprintf("invalid template %q: %v", tmpl, err))
	}
	out := make(Stream, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind != placeholder {
			out = append(out, tok)
			continue
		}
		index, _ := strconv.Atoi(tok.Text)
		if index >= len(args) {
			panic(fmt.Sprintf("template %q references argument $%d but only %d arguments are given", tmpl, index, len(args)))
		}
		out = splice(out, args[index])
	}
	return out
}

func splice(out Stream, arg any) Stream {
	switch argT := arg.(type) {
	case nil:
		return out
	case Stream:
		return append(out, argT...)
	case Token:
		return append(out, argT)
	case []Stream:
		return append(out, CommaList(argT)...)
	case string:
		return append(out, W(argT))
	}
	panic(fmt.Sprintf("cannot splice a value of type %T in a template", arg))
}

type lexer struct {
	src    string
	pos    int
	toks   Stream
	angles int
	// inBars is set between the bars of closure parameters.
	inBars bool
	braces []Kind
}

// Lex converts a Rust code template into a stream.
func Lex(src string) (Stream, error) {
	lx := &lexer{src: src}
	for {
		lx.skipSpaces()
		if lx.pos >= len(lx.src) {
			break
		}
		if err := lx.next(); err != nil {
			return nil, errors.Wrapf(err, "at offset %d", lx.pos)
		}
	}
	if len(lx.braces) > 0 {
		return nil, errors.Errorf("unbalanced braces")
	}
	return lx.toks, nil
}

func (lx *lexer) skipSpaces() {
	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (lx *lexer) last() (Token, bool) {
	if len(lx.toks) == 0 {
		return Token{}, false
	}
	return lx.toks[len(lx.toks)-1], true
}

// afterOperand returns true if the previous token ends an operand.
func (lx *lexer) afterOperand() bool {
	last, ok := lx.last()
	if !ok {
		return false
	}
	if last.Kind == placeholder {
		return true
	}
	if last.Kind == Word && spacedKeywords[last.Text] {
		return false
	}
	return last.isOperand()
}

// glued returns true if no space precedes the current position.
func (lx *lexer) glued() bool {
	return lx.pos > 0 && !isSpace(lx.src[lx.pos-1])
}

func (lx *lexer) emit(kind Kind, text string) {
	lx.toks = append(lx.toks, Token{Kind: kind, Text: text})
}

func (lx *lexer) hasPrefix(p string) bool {
	return strings.HasPrefix(lx.src[lx.pos:], p)
}

func (lx *lexer) next() error {
	c := lx.src[lx.pos]
	switch {
	case c == '$':
		start := lx.pos + 1
		end := start
		for end < len(lx.src) && isDigit(lx.src[end]) {
			end++
		}
		if end == start {
			return errors.Errorf("$ not followed by an argument index")
		}
		lx.emit(placeholder, lx.src[start:end])
		lx.pos = end
		return nil
	case c == 'r' && lx.hasPrefix("r#") && lx.pos+2 < len(lx.src) && isIdentStart(lx.src[lx.pos+2]):
		lx.pos += 2
		lx.ident("r#")
		return nil
	case isIdentStart(c):
		lx.ident("")
		return nil
	case isDigit(c):
		lx.number()
		return nil
	case c == '"':
		return lx.str()
	case c == '\'':
		return lx.quote()
	}
	return lx.punct()
}

func (lx *lexer) ident(prefix string) {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
		lx.pos++
	}
	lx.emit(Word, prefix+lx.src[start:lx.pos])
}

func (lx *lexer) number() {
	start := lx.pos
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if isIdentChar(c) {
			lx.pos++
			continue
		}
		if c == '.' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]) {
			lx.pos++
			continue
		}
		break
	}
	lx.emit(Word, lx.src[start:lx.pos])
}

func (lx *lexer) str() error {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
			continue
		case '"':
			lx.pos++
			lx.emit(Word, lx.src[start:lx.pos])
			return nil
		}
		lx.pos++
	}
	return errors.Errorf("unterminated string literal")
}

// quote lexes a character literal or a lifetime.
func (lx *lexer) quote() error {
	start := lx.pos
	lx.pos++
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '\\' {
		end := strings.IndexByte(lx.src[lx.pos:], '\'')
		if end < 0 {
			return errors.Errorf("unterminated character literal")
		}
		lx.pos += end + 1
		lx.emit(Word, lx.src[start:lx.pos])
		return nil
	}
	if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '\'' {
		lx.pos += 2
		lx.emit(Word, lx.src[start:lx.pos])
		return nil
	}
	for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos == start+1 {
		return errors.Errorf("invalid lifetime")
	}
	lx.emit(Word, lx.src[start:lx.pos])
	return nil
}

var ops = []string{
	"..=", "<<=", ">>=", "...",
	"::", "->", "=>", "==", "!=", "<=", ">=", "&&", "||", "+=", "-=", "*=", "/=", "%=",
	"^=", "|=", "&=", "..", "<<", ">>",
}

func (lx *lexer) closureStart() bool {
	last, ok := lx.last()
	if !ok {
		return true
	}
	switch last.Kind {
	case Open, Punct, Op, BraceOpen, BlockOpen, Prefix:
		return true
	}
	return last.Kind == Word && (last.Text == "move" || last.Text == "return")
}

func (lx *lexer) punct() error {
	c := lx.src[lx.pos]
	// Closure bars.
	if c == '|' {
		if lx.inBars {
			lx.pos++
			lx.inBars = false
			lx.emit(Close, "|")
			return nil
		}
		if lx.closureStart() {
			if lx.hasPrefix("||") {
				lx.pos += 2
				lx.emit(Open, "|")
				lx.emit(Close, "|")
				return nil
			}
			lx.pos++
			lx.inBars = true
			lx.emit(Open, "|")
			return nil
		}
	}
	if c == '>' && lx.angles > 0 {
		lx.pos++
		lx.angles--
		lx.emit(Close, ">")
		return nil
	}
	if c == '<' && lx.isGenericOpen() {
		lx.pos++
		lx.angles++
		lx.emit(Open, "<")
		return nil
	}
	for _, op := range ops {
		if !lx.hasPrefix(op) {
			continue
		}
		lx.pos += len(op)
		switch op {
		case "::", "..", "..=":
			lx.emit(Joint, op)
		default:
			lx.emit(Op, op)
		}
		return nil
	}
	lx.pos++
	switch c {
	case '(', '[':
		lx.emit(Open, string(c))
	case ')', ']':
		lx.emit(Close, string(c))
	case '{':
		kind := BraceOpen
		if lx.newlineFollows() {
			kind = BlockOpen
		}
		lx.braces = append(lx.braces, kind)
		lx.emit(kind, "{")
	case '}':
		if len(lx.braces) == 0 {
			return errors.Errorf("unbalanced }")
		}
		kind := lx.braces[len(lx.braces)-1]
		lx.braces = lx.braces[:len(lx.braces)-1]
		if kind == BlockOpen {
			lx.emit(BlockClose, "}")
		} else {
			lx.emit(BraceClose, "}")
		}
	case ',', ';', ':':
		lx.emit(Punct, string(c))
	case '.', '?':
		lx.emit(Joint, string(c))
	case '!':
		if lx.afterOperand() && lx.pos > 1 && !isSpace(lx.src[lx.pos-2]) {
			lx.emit(Joint, "!")
		} else {
			lx.emit(Prefix, "!")
		}
	case '&', '*', '-':
		if lx.afterOperand() {
			lx.emit(Op, string(c))
		} else {
			lx.emit(Prefix, string(c))
		}
	case '#':
		lx.emit(Prefix, "#")
	case '+', '/', '%', '=', '<', '>', '^', '@', '|':
		lx.emit(Op, string(c))
	default:
		return errors.Errorf("unexpected character %q", c)
	}
	return nil
}

// isGenericOpen returns true if a < at the current position opens generic
// arguments: it directly follows a word or a ::.
func (lx *lexer) isGenericOpen() bool {
	if lx.hasPrefix("<=") || lx.hasPrefix("<<") {
		return false
	}
	last, ok := lx.last()
	if !ok || !lx.glued() {
		return false
	}
	return last.Kind == Word || last.Kind == placeholder || (last.Kind == Joint && last.Text == "::")
}

func (lx *lexer) newlineFollows() bool {
	for i := lx.pos; i < len(lx.src); i++ {
		switch lx.src[i] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		}
		return false
	}
	return false
}
