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
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/pkg/errors"
)

// reserved lists the Rust keywords, strict and reserved.
var reserved = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true,
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "try": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true, "gen": true,
}

// unescapable lists the keywords that cannot be raw identifiers.
var unescapable = map[string]bool{
	"self": true, "Self": true, "super": true, "crate": true,
}

// IsReserved returns true if name is a Rust keyword.
func IsReserved(name string) bool {
	return reserved[name]
}

// Ident returns a word for an identifier in an expression position.
// Keywords are escaped as raw identifiers, except the path keywords
// (self, Self, super, crate) which keep their meaning.
func Ident(name string) Token {
	if reserved[name] && !unescapable[name] {
		return W("r#" + name)
	}
	return W(name)
}

// DeclIdent returns a word for a declared name: a type, a function or a
// binding. Path keywords cannot be declared.
func DeclIdent(span ast.Span, name string) (Token, error) {
	if unescapable[name] {
		return Token{}, fmterr.At(fmterr.TypeNameEscape, span, errors.Errorf("%s cannot be used as a name", name))
	}
	return Ident(name), nil
}
