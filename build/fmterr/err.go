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

package fmterr

import (
	"fmt"
	"runtime/debug"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/pkg/errors"
)

// Kind of an error reported by the back-end.
type Kind int

// Error kinds.
const (
	// Internal errors are bugs in the back-end.
	Internal Kind = iota
	// MalformedInput is reported when an AST node violates the input expectations.
	MalformedInput
	// Unsupported is reported when a construct is outside the language of a stage.
	Unsupported
	// Arity is reported when a built-in receives the wrong number of arguments.
	Arity
	// FreeVariable is reported when an identifier is not bound.
	FreeVariable
	// TypeNameEscape is reported when a name cannot be escaped in the target language.
	TypeNameEscape
)

var kindNames = map[Kind]string{
	Internal:       "internal error",
	MalformedInput: "malformed input",
	Unsupported:    "unsupported construct",
	Arity:          "arity error",
	FreeVariable:   "free variable",
	TypeNameEscape: "type name escape",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return s
}

type (
	// ErrorWithPos is an error attached to a span of the source.
	ErrorWithPos interface {
		error
		Kind() Kind
		Span() ast.Span
		Node() string
		Err() error
	}

	errorWithPos struct {
		kind Kind
		span ast.Span
		node string
		err  error
	}
)

// Position attaches a kind and the position of a node to an error.
// The node can be nil, in which case the error has no position.
func Position(kind Kind, node *ast.Expr, err error) ErrorWithPos {
	ewp := errorWithPos{kind: kind, err: err}
	if node != nil {
		ewp.span = node.Span
		if node.Kind != nil {
			ewp.node = node.Kind.Name()
		}
	}
	return ewp
}

// At attaches a kind and a span to an error.
func At(kind Kind, span ast.Span, err error) ErrorWithPos {
	return errorWithPos{kind: kind, span: span, err: err}
}

// Errorf returns a formatted error for the user positioned at a node.
func Errorf(kind Kind, node *ast.Expr, format string, a ...any) error {
	return Position(kind, node, errors.Errorf(format, a...))
}

// Internalf returns a formatted internal error positioned at a node.
func Internalf(node *ast.Expr, format string, a ...any) error {
	return Position(Internal, node, errors.Errorf("ruchy internal error. This is a bug in the back-end. Please report it. Error:\n"+format, a...))
}

// Error returns a string description of the error.
func (err errorWithPos) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	prefix := PosString(err.span) + " " + err.kind.String()
	if err.node != "" {
		prefix += " in " + err.node
	}
	return prefix + ": " + err.err.Error()
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err errorWithPos) Kind() Kind {
	return err.kind
}

func (err errorWithPos) Span() ast.Span {
	return err.span
}

func (err errorWithPos) Node() string {
	return err.node
}

func (err errorWithPos) Err() error {
	return err.err
}

// KindOf returns the kind of the first positioned error in the chain.
// Errors without a position are internal.
func KindOf(err error) Kind {
	var ewp ErrorWithPos
	if !errors.As(err, &ewp) {
		return Internal
	}
	return ewp.Kind()
}

// SpanOf returns the span of the first positioned error in the chain.
func SpanOf(err error) (ast.Span, bool) {
	var ewp ErrorWithPos
	if !errors.As(err, &ewp) {
		return ast.Span{}, false
	}
	return ewp.Span(), true
}

// PosString returns a span as a string that can be used for an error.
func PosString(span ast.Span) string {
	return fmt.Sprintf("%d:%d:", span.Start, span.End)
}
