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

import "strings"

// DefaultIndent is the number of spaces of an indentation level.
const DefaultIndent = 4

type emitter struct {
	b          strings.Builder
	width      int
	indent     int
	lineStart  bool
	afterBlock bool
	delims     []Kind
	prev       Token
	emittedAny bool
	blankLine  bool
}

// Emit renders a stream as source text. Blocks are laid out on multiple
// lines indented with DefaultIndent spaces.
func Emit(s Stream) string {
	return EmitIndent(s, DefaultIndent)
}

// EmitIndent renders a stream with a given indentation width.
func EmitIndent(s Stream, width int) string {
	e := &emitter{width: width, lineStart: true}
	for _, tok := range s {
		e.token(tok)
	}
	if !e.lineStart {
		e.b.WriteByte('\n')
	}
	return e.b.String()
}

func (e *emitter) inBlock() bool {
	return len(e.delims) == 0 || e.delims[len(e.delims)-1] == BlockOpen
}

func (e *emitter) newline() {
	if e.lineStart {
		return
	}
	e.b.WriteByte('\n')
	e.lineStart = true
	e.blankLine = false
}

func (e *emitter) blank() {
	if !e.emittedAny || e.blankLine {
		return
	}
	e.newline()
	e.b.WriteByte('\n')
	e.blankLine = true
}

func (e *emitter) write(tok Token) {
	if e.lineStart {
		e.b.WriteString(strings.Repeat(" ", e.indent*e.width))
	} else if needSpace(e.prev, tok) {
		e.b.WriteByte(' ')
	}
	e.b.WriteString(tok.Text)
	e.prev = tok
	e.lineStart = false
	e.emittedAny = true
	e.blankLine = false
}

func (e *emitter) pop() {
	if len(e.delims) > 0 {
		e.delims = e.delims[:len(e.delims)-1]
	}
}

func continuesBlock(tok Token) bool {
	switch tok.Kind {
	case Punct, Joint, Close, BraceClose, BlockClose:
		return true
	}
	return tok.Text == "else"
}

func (e *emitter) token(tok Token) {
	if tok.Kind == Newline {
		if e.lineStart {
			e.blank()
		} else {
			e.newline()
		}
		e.afterBlock = false
		return
	}
	if e.afterBlock {
		e.afterBlock = false
		if e.inBlock() && !continuesBlock(tok) {
			e.newline()
		}
	}
	switch tok.Kind {
	case BlockOpen:
		e.write(tok)
		e.delims = append(e.delims, BlockOpen)
		e.indent++
		e.newline()
	case BlockClose:
		e.pop()
		if e.indent > 0 {
			e.indent--
		}
		e.newline()
		e.write(tok)
		e.afterBlock = true
	case Open, BraceOpen:
		e.write(tok)
		e.delims = append(e.delims, tok.Kind)
	case Close, BraceClose:
		e.write(tok)
		e.pop()
	case Punct:
		e.write(tok)
		if (tok.Text == ";" || tok.Text == ",") && e.inBlock() {
			e.newline()
		}
	default:
		e.write(tok)
	}
}
