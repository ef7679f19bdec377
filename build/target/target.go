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

// Package target defines the token stream produced by the lowerer and its
// rendering as Rust source text.
//
// A Stream is built compositionally from fragments. Layout is decided by
// the kind of each token: the stream carries no whitespace, except for
// explicit newlines between items.
package target

import (
	"strings"
)

// Kind of a token. The kind decides the spacing around the token.
type Kind int

// Token kinds.
const (
	// Word is an identifier, a keyword, a literal or a lifetime.
	Word Kind = iota
	// Op is an infix operator surrounded by spaces.
	Op
	// Punct is a separator followed but not preceded by a space: , ; :
	Punct
	// Prefix is an operator glued to what follows: & - ! * #
	Prefix
	// Joint is glued on both sides: . :: ? .. and the ! of macros.
	Joint
	// Open is an opening delimiter: ( [ generic < and closure |
	Open
	// Close is a closing delimiter.
	Close
	// BraceOpen is an inline {.
	BraceOpen
	// BraceClose is an inline }.
	BraceClose
	// BlockOpen is a { laid out on multiple lines by the emitter.
	BlockOpen
	// BlockClose closes a BlockOpen.
	BlockClose
	// Newline forces a line break.
	Newline
	// placeholder references a template argument. Only found in lexed templates.
	placeholder
)

type (
	// Token of the target language.
	Token struct {
		Kind Kind
		Text string
	}

	// Stream is a sequence of tokens.
	Stream []Token
)

// W returns a word token.
func W(text string) Token {
	return Token{Kind: Word, Text: text}
}

// Words returns a stream of words.
func Words(texts ...string) Stream {
	s := make(Stream, len(texts))
	for i, text := range texts {
		s[i] = W(text)
	}
	return s
}

// OpToken returns an infix operator token.
func OpToken(text string) Token {
	return Token{Kind: Op, Text: text}
}

// Comma is the , separator.
var Comma = Token{Kind: Punct, Text: ","}

// Semi is the ; terminator.
var Semi = Token{Kind: Punct, Text: ";"}

// NL is a newline token.
var NL = Token{Kind: Newline}

// Append tokens or streams to the stream and return the result.
func (s Stream) Append(others ...Stream) Stream {
	for _, o := range others {
		s = append(s, o...)
	}
	return s
}

// Tokens appends individual tokens to a stream and returns the result.
func (s Stream) Tokens(toks ...Token) Stream {
	return append(s, toks...)
}

// Concat concatenates streams into a new stream.
func Concat(streams ...Stream) Stream {
	size := 0
	for _, s := range streams {
		size += len(s)
	}
	out := make(Stream, 0, size)
	return out.Append(streams...)
}

// Join concatenates streams with a separator token between them.
func Join(sep Token, streams []Stream) Stream {
	var out Stream
	for i, s := range streams {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, s...)
	}
	return out
}

// CommaList joins streams with commas.
func CommaList(streams []Stream) Stream {
	return Join(Comma, streams)
}

// Parens wraps a stream in parentheses.
func Parens(s Stream) Stream {
	return Concat(Stream{{Kind: Open, Text: "("}}, s, Stream{{Kind: Close, Text: ")"}})
}

// Brackets wraps a stream in square brackets.
func Brackets(s Stream) Stream {
	return Concat(Stream{{Kind: Open, Text: "["}}, s, Stream{{Kind: Close, Text: "]"}})
}

// Angles wraps a stream in generic angle brackets.
func Angles(s Stream) Stream {
	return Concat(Stream{{Kind: Open, Text: "<"}}, s, Stream{{Kind: Close, Text: ">"}})
}

// Block wraps statements in braces laid out on multiple lines.
func Block(s Stream) Stream {
	return Concat(Stream{{Kind: BlockOpen, Text: "{"}}, s, Stream{{Kind: BlockClose, Text: "}"}})
}

// Braces wraps a stream in inline braces.
func Braces(s Stream) Stream {
	return Concat(Stream{{Kind: BraceOpen, Text: "{"}}, s, Stream{{Kind: BraceClose, Text: "}"}})
}

// Contains returns true if a token of the stream has the given text.
func (s Stream) Contains(text string) bool {
	for _, tok := range s {
		if tok.Text == text {
			return true
		}
	}
	return false
}

// HasPrefix returns true if the stream starts with tokens of the given texts.
func (s Stream) HasPrefix(texts ...string) bool {
	if len(s) < len(texts) {
		return false
	}
	for i, text := range texts {
		if s[i].Text != text {
			return false
		}
	}
	return true
}

// IsWord returns true if the stream is a single word.
func (s Stream) IsWord() bool {
	return len(s) == 1 && s[0].Kind == Word
}

// isOperand returns true if the token ends an operand.
func (t Token) isOperand() bool {
	switch t.Kind {
	case Word, BraceClose, BlockClose:
		return true
	case Close:
		return t.Text != "|"
	}
	return false
}

func (t Token) isClosureBar() bool {
	return t.Text == "|" && (t.Kind == Open || t.Kind == Close)
}

var spacedKeywords = map[string]bool{
	"as": true, "dyn": true, "else": true, "for": true, "if": true, "impl": true,
	"in": true, "let": true, "loop": true, "match": true, "move": true, "mut": true,
	"return": true, "where": true, "while": true,
}

// needSpace returns true if a space separates prev and cur on a line.
func needSpace(prev, cur Token) bool {
	switch cur.Kind {
	case Punct, Close:
		return false
	case Joint:
		if cur.Text == ".." || cur.Text == "..=" {
			return prev.Kind == Punct || prev.Kind == Op || prev.Kind == BraceOpen || prev.Kind == BlockOpen
		}
		return false
	case BraceClose, BlockClose:
		return prev.Kind != BraceOpen && prev.Kind != BlockOpen
	case Op, BraceOpen, BlockOpen:
		return true
	}
	switch prev.Kind {
	case Prefix, Joint, Open:
		return false
	case Punct, Op, BraceOpen, BlockOpen:
		return true
	case Close:
		if prev.isClosureBar() {
			return true
		}
		return cur.Kind != Open || cur.isClosureBar()
	}
	// prev ends an operand.
	if cur.Kind == Open && !cur.isClosureBar() {
		if cur.Text == "<" {
			return false
		}
		return prev.Kind == Word && spacedKeywords[prev.Text]
	}
	return true
}

// String renders the stream on a single line.
func (s Stream) String() string {
	var b strings.Builder
	var prev Token
	first := true
	for _, tok := range s {
		if tok.Kind == Newline {
			continue
		}
		if !first && needSpace(prev, tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
		prev, first = tok, false
	}
	return b.String()
}
