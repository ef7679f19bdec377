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

package ast

import "github.com/pkg/errors"

// BinaryOp is a binary operator.
type BinaryOp int

// Binary operators.
const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Modulo
	Power
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	And
	Or
	NullCoalesce
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	LeftShift
	RightShift
	SendOp
	In
)

type opInfo struct {
	name   string
	token  string
	prec   int
	family OpFamily
}

// OpFamily groups operators by the way they are lowered.
type OpFamily int

// Operator families.
const (
	Arithmetic OpFamily = iota
	Comparison
	Logical
	Bitwise
	Shift
	Coalesce
	Messaging
	Containment
)

var binaryOps = [...]opInfo{
	Add:          {"Add", "+", 50, Arithmetic},
	Subtract:     {"Subtract", "-", 50, Arithmetic},
	Multiply:     {"Multiply", "*", 60, Arithmetic},
	Divide:       {"Divide", "/", 60, Arithmetic},
	Modulo:       {"Modulo", "%", 60, Arithmetic},
	Power:        {"Power", "**", 70, Arithmetic},
	Equal:        {"Equal", "==", 30, Comparison},
	NotEqual:     {"NotEqual", "!=", 30, Comparison},
	Less:         {"Less", "<", 40, Comparison},
	LessEqual:    {"LessEqual", "<=", 40, Comparison},
	Greater:      {"Greater", ">", 40, Comparison},
	GreaterEqual: {"GreaterEqual", ">=", 40, Comparison},
	And:          {"And", "&&", 20, Logical},
	Or:           {"Or", "||", 10, Logical},
	NullCoalesce: {"NullCoalesce", "??", 5, Coalesce},
	BitwiseAnd:   {"BitwiseAnd", "&", 46, Bitwise},
	BitwiseOr:    {"BitwiseOr", "|", 42, Bitwise},
	BitwiseXor:   {"BitwiseXor", "^", 44, Bitwise},
	LeftShift:    {"LeftShift", "<<", 48, Shift},
	RightShift:   {"RightShift", ">>", 48, Shift},
	SendOp:       {"Send", "!", 15, Messaging},
	In:           {"In", "in", 40, Containment},
}

// String returns the source token of the operator.
func (op BinaryOp) String() string {
	return binaryOps[op].token
}

// OpName returns the name of the operator used in the JSON encoding.
func (op BinaryOp) OpName() string {
	return binaryOps[op].name
}

// Precedence returns the binding strength of the operator.
// A higher value binds tighter.
func (op BinaryOp) Precedence() int {
	return binaryOps[op].prec
}

// RightAssociative returns true for operators grouping to the right.
func (op BinaryOp) RightAssociative() bool {
	return op == Power
}

// Family of the operator.
func (op BinaryOp) Family() OpFamily {
	return binaryOps[op].family
}

// MarshalText encodes the operator by name.
func (op BinaryOp) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(binaryOps) {
		return nil, errors.Errorf("invalid binary operator %d", int(op))
	}
	return []byte(op.OpName()), nil
}

// UnmarshalText decodes an operator from its name or its source token.
func (op *BinaryOp) UnmarshalText(text []byte) error {
	s := string(text)
	for i, info := range binaryOps {
		if info.name == s || info.token == s {
			*op = BinaryOp(i)
			return nil
		}
	}
	return errors.Errorf("unknown binary operator %q", s)
}

// UnaryOp is a unary operator.
type UnaryOp int

// Unary operators.
const (
	Negate UnaryOp = iota
	Not
	BitwiseNot
	Reference
	MutableReference
	Deref
)

var unaryOps = [...]struct{ name, token string }{
	Negate:           {"Negate", "-"},
	Not:              {"Not", "!"},
	BitwiseNot:       {"BitwiseNot", "~"},
	Reference:        {"Reference", "&"},
	MutableReference: {"MutableReference", "&mut "},
	Deref:            {"Deref", "*"},
}

// String returns the source token of the operator.
func (op UnaryOp) String() string {
	return unaryOps[op].token
}

// MarshalText encodes the operator by name.
func (op UnaryOp) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(unaryOps) {
		return nil, errors.Errorf("invalid unary operator %d", int(op))
	}
	return []byte(unaryOps[op].name), nil
}

// UnmarshalText decodes an operator from its name.
func (op *UnaryOp) UnmarshalText(text []byte) error {
	s := string(text)
	for i, info := range unaryOps {
		if info.name == s {
			*op = UnaryOp(i)
			return nil
		}
	}
	return errors.Errorf("unknown unary operator %q", s)
}

var litKindNames = [...]string{
	IntLit:    "Integer",
	FloatLit:  "Float",
	StringLit: "String",
	CharLit:   "Char",
	ByteLit:   "Byte",
	BoolLit:   "Bool",
	UnitLit:   "Unit",
	NullLit:   "Null",
	AtomLit:   "Atom",
}

// String returns the name of the literal kind.
func (k LitKind) String() string {
	if k < 0 || int(k) >= len(litKindNames) {
		return "invalid"
	}
	return litKindNames[k]
}

// MarshalText encodes the literal kind by name.
func (k LitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a literal kind from its name.
func (k *LitKind) UnmarshalText(text []byte) error {
	for i, name := range litKindNames {
		if name == string(text) {
			*k = LitKind(i)
			return nil
		}
	}
	return errors.Errorf("unknown literal kind %q", string(text))
}
