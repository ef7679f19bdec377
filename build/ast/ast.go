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

// Package ast defines the surface syntax tree consumed by the back-end.
//
// The tree is produced by an external parser. Every node is an [Expr]
// wrapping a [Kind]: a pointer to one of the structures declared in this
// package. The back-end never mutates a tree: passes that rewrite the
// tree (for example the inliner) build a new one.
package ast

import "fmt"

type (
	// Span is a half-open byte range [Start, End) in the source file.
	Span struct {
		Start int `json:"start"`
		End   int `json:"end"`
	}

	// Comment attached to a node. Only the formatter reads comments.
	Comment struct {
		Text  string `json:"text"`
		Block bool   `json:"block,omitempty"`
	}

	// Attribute is a decorator such as @test or #[derive(Debug)].
	Attribute struct {
		Name string   `json:"name"`
		Args []string `json:"args,omitempty"`
	}

	// Expr is a node of the tree.
	Expr struct {
		Kind       Kind
		Span       Span
		Attributes []Attribute
		Leading    []Comment
		Trailing   *Comment
	}

	// Kind is the variant of an expression.
	Kind interface {
		// Name of the kind, as used in error messages and in the JSON encoding.
		Name() string
		exprKind()
	}
)

// New returns an expression with no span.
func New(kind Kind) *Expr {
	return &Expr{Kind: kind}
}

// At returns an expression at a given span.
func At(kind Kind, span Span) *Expr {
	return &Expr{Kind: kind, Span: span}
}

// String returns a short description of the expression for debugging.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s@%d:%d", e.Kind.Name(), e.Span.Start, e.Span.End)
}

// HasAttribute returns true if the expression carries an attribute of the given name.
func (e *Expr) HasAttribute(name string) bool {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Literals and names.
type (
	// LitKind is the kind of a literal.
	LitKind int

	// Literal value.
	Literal struct {
		Lit    LitKind `json:"lit"`
		Int    int64   `json:"int,omitempty"`
		Suffix string  `json:"suffix,omitempty"`
		Float  float64 `json:"float,omitempty"`
		// Str holds the content of String and Atom literals.
		Str  string `json:"str,omitempty"`
		Char rune   `json:"char,omitempty"`
		Byte byte   `json:"byte,omitempty"`
		Bool bool   `json:"bool,omitempty"`
	}

	// Identifier references a binding.
	Identifier struct {
		Ident string `json:"name"`
	}

	// QualifiedName is a path module::name.
	QualifiedName struct {
		Module string `json:"module"`
		Ident  string `json:"name"`
	}
)

// Literal kinds.
const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	CharLit
	ByteLit
	BoolLit
	UnitLit
	NullLit
	AtomLit
)

// ----------------------------------------------------------------------------
// Access and operators.
type (
	// FieldAccess is object.field.
	FieldAccess struct {
		Object *Expr  `json:"object"`
		Field  string `json:"field"`
	}

	// IndexAccess is object[index].
	IndexAccess struct {
		Object *Expr `json:"object"`
		Index  *Expr `json:"index"`
	}

	// Range is start..end or start..=end. Both ends are optional.
	Range struct {
		Start     *Expr `json:"start,omitempty"`
		End       *Expr `json:"end,omitempty"`
		Inclusive bool  `json:"inclusive,omitempty"`
	}

	// Binary operation.
	Binary struct {
		Op    BinaryOp `json:"op"`
		Left  *Expr    `json:"left"`
		Right *Expr    `json:"right"`
	}

	// Unary operation.
	Unary struct {
		Op      UnaryOp `json:"op"`
		Operand *Expr   `json:"operand"`
	}

	// PreIncrement is ++target.
	PreIncrement struct {
		Target *Expr `json:"target"`
	}

	// PostIncrement is target++.
	PostIncrement struct {
		Target *Expr `json:"target"`
	}

	// PreDecrement is --target.
	PreDecrement struct {
		Target *Expr `json:"target"`
	}

	// PostDecrement is target--.
	PostDecrement struct {
		Target *Expr `json:"target"`
	}

	// Assign is target = value.
	Assign struct {
		Target *Expr `json:"target"`
		Value  *Expr `json:"value"`
	}

	// CompoundAssign is target op= value.
	CompoundAssign struct {
		Target *Expr    `json:"target"`
		Op     BinaryOp `json:"op"`
		Value  *Expr    `json:"value"`
	}
)

// ----------------------------------------------------------------------------
// Calls.
type (
	// Call is func(args...).
	Call struct {
		Func *Expr   `json:"func"`
		Args []*Expr `json:"args,omitempty"`
	}

	// MethodCall is receiver.method(args...).
	MethodCall struct {
		Receiver *Expr   `json:"receiver"`
		Method   string  `json:"method"`
		Args     []*Expr `json:"args,omitempty"`
	}

	// OptionalMethodCall is receiver?.method(args...).
	OptionalMethodCall struct {
		Receiver *Expr   `json:"receiver"`
		Method   string  `json:"method"`
		Args     []*Expr `json:"args,omitempty"`
	}
)

// ----------------------------------------------------------------------------
// Bindings and control flow.
type (
	// Let binds a name to a value in body.
	// A statement-level let has a unit literal body.
	Let struct {
		Ident   string `json:"name"`
		Type    *Type  `json:"type,omitempty"`
		Value   *Expr  `json:"value"`
		Body    *Expr  `json:"body"`
		Mutable bool   `json:"mutable,omitempty"`
		Else    *Expr  `json:"else,omitempty"`
	}

	// LetPattern destructures value with a pattern.
	LetPattern struct {
		Pattern *Pattern `json:"pattern"`
		Type    *Type    `json:"type,omitempty"`
		Value   *Expr    `json:"value"`
		Body    *Expr    `json:"body"`
		Mutable bool     `json:"mutable,omitempty"`
		Else    *Expr    `json:"else,omitempty"`
	}

	// Block is an ordered sequence of expressions.
	Block struct {
		Exprs []*Expr `json:"exprs,omitempty"`
	}

	// If expression. Else is optional.
	If struct {
		Cond *Expr `json:"cond"`
		Then *Expr `json:"then"`
		Else *Expr `json:"else,omitempty"`
	}

	// IfLet is if let pattern = value { then } else { else }.
	IfLet struct {
		Pattern *Pattern `json:"pattern"`
		Value   *Expr    `json:"value"`
		Then    *Expr    `json:"then"`
		Else    *Expr    `json:"else,omitempty"`
	}

	// MatchArm is one arm of a match expression.
	MatchArm struct {
		Pattern *Pattern `json:"pattern"`
		Guard   *Expr    `json:"guard,omitempty"`
		Body    *Expr    `json:"body"`
		Span    Span     `json:"span"`
	}

	// Match expression.
	Match struct {
		Scrutinee *Expr      `json:"scrutinee"`
		Arms      []MatchArm `json:"arms"`
	}

	// While loop.
	While struct {
		Cond  *Expr  `json:"cond"`
		Body  *Expr  `json:"body"`
		Label string `json:"label,omitempty"`
	}

	// WhileLet is while let pattern = value { body }.
	WhileLet struct {
		Pattern *Pattern `json:"pattern"`
		Value   *Expr    `json:"value"`
		Body    *Expr    `json:"body"`
		Label   string   `json:"label,omitempty"`
	}

	// For loop. Either Var or Pattern is set.
	For struct {
		Var     string   `json:"var,omitempty"`
		Pattern *Pattern `json:"pattern,omitempty"`
		Iter    *Expr    `json:"iter"`
		Body    *Expr    `json:"body"`
		Label   string   `json:"label,omitempty"`
	}

	// Loop is an unconditional loop.
	Loop struct {
		Body  *Expr  `json:"body"`
		Label string `json:"label,omitempty"`
	}

	// Break out of a loop, optionally with a value.
	Break struct {
		Label string `json:"label,omitempty"`
		Value *Expr  `json:"value,omitempty"`
	}

	// Continue to the next iteration of a loop.
	Continue struct {
		Label string `json:"label,omitempty"`
	}

	// Return from the enclosing function.
	Return struct {
		Value *Expr `json:"value,omitempty"`
	}
)

// ----------------------------------------------------------------------------
// Functions.
type (
	// Param is a function or lambda parameter.
	// An untyped parameter has a nil Type or the pseudo-type Any.
	Param struct {
		Pattern *Pattern `json:"pattern"`
		Type    *Type    `json:"type,omitempty"`
		Span    Span     `json:"span"`
		Mutable bool     `json:"mutable,omitempty"`
		Default *Expr    `json:"default,omitempty"`
	}

	// Function declaration.
	Function struct {
		Ident      string   `json:"name"`
		TypeParams []string `json:"type_params,omitempty"`
		Params     []Param  `json:"params,omitempty"`
		ReturnType *Type    `json:"return_type,omitempty"`
		Body       *Expr    `json:"body"`
		IsAsync    bool     `json:"is_async,omitempty"`
		IsPub      bool     `json:"is_pub,omitempty"`
	}

	// Lambda is an anonymous function.
	Lambda struct {
		Params []Param `json:"params,omitempty"`
		Body   *Expr   `json:"body"`
	}

	// AsyncLambda is an anonymous asynchronous function.
	AsyncLambda struct {
		Params []Param `json:"params,omitempty"`
		Body   *Expr   `json:"body"`
	}
)

// ParamName returns the name bound by a parameter.
// It returns the empty string if the parameter destructures its argument.
func (p *Param) ParamName() string {
	if p.Pattern == nil {
		return ""
	}
	if id, ok := p.Pattern.Kind.(*IdentPattern); ok {
		return id.Ident
	}
	return ""
}

// IsUntyped returns true if the parameter has no type or the pseudo-type Any.
func (p *Param) IsUntyped() bool {
	return p.Type == nil || p.Type.IsAny()
}

// ----------------------------------------------------------------------------
// Declarations.
type (
	// StructField is a field of a structure, class or actor state.
	StructField struct {
		Ident   string `json:"name"`
		Type    *Type  `json:"type"`
		IsPub   bool   `json:"is_pub,omitempty"`
		Mutable bool   `json:"mutable,omitempty"`
		Default *Expr  `json:"default,omitempty"`
	}

	// Struct declaration.
	Struct struct {
		Ident      string        `json:"name"`
		TypeParams []string      `json:"type_params,omitempty"`
		Fields     []StructField `json:"fields,omitempty"`
		Derives    []string      `json:"derives,omitempty"`
		IsPub      bool          `json:"is_pub,omitempty"`
	}

	// TupleStruct declaration.
	TupleStruct struct {
		Ident      string   `json:"name"`
		TypeParams []string `json:"type_params,omitempty"`
		Fields     []*Type  `json:"fields,omitempty"`
		Derives    []string `json:"derives,omitempty"`
		IsPub      bool     `json:"is_pub,omitempty"`
	}

	// EnumVariant is one variant of an enumeration.
	// A unit variant has neither Fields nor StructFields.
	EnumVariant struct {
		Ident        string        `json:"name"`
		Fields       []*Type       `json:"fields,omitempty"`
		StructFields []StructField `json:"struct_fields,omitempty"`
		Discriminant *int64        `json:"discriminant,omitempty"`
	}

	// Enum declaration.
	Enum struct {
		Ident      string        `json:"name"`
		TypeParams []string      `json:"type_params,omitempty"`
		Variants   []EnumVariant `json:"variants"`
		Derives    []string      `json:"derives,omitempty"`
		IsPub      bool          `json:"is_pub,omitempty"`
	}

	// Method of a trait, impl, extension or class.
	// A nil body declares an abstract method.
	Method struct {
		Ident      string   `json:"name"`
		TypeParams []string `json:"type_params,omitempty"`
		Params     []Param  `json:"params,omitempty"`
		ReturnType *Type    `json:"return_type,omitempty"`
		Body       *Expr    `json:"body,omitempty"`
		IsPub      bool     `json:"is_pub,omitempty"`
		IsStatic   bool     `json:"is_static,omitempty"`
	}

	// Trait declaration.
	Trait struct {
		Ident           string   `json:"name"`
		TypeParams      []string `json:"type_params,omitempty"`
		AssociatedTypes []string `json:"associated_types,omitempty"`
		Methods         []Method `json:"methods,omitempty"`
		IsPub           bool     `json:"is_pub,omitempty"`
	}

	// Impl block. Trait is empty for inherent implementations.
	Impl struct {
		TypeParams []string `json:"type_params,omitempty"`
		Trait      string   `json:"trait,omitempty"`
		ForType    string   `json:"for_type"`
		Methods    []Method `json:"methods,omitempty"`
	}

	// Extension adds methods to an existing type.
	Extension struct {
		TargetType string   `json:"target_type"`
		Methods    []Method `json:"methods,omitempty"`
	}

	// Constructor of a class.
	Constructor struct {
		Ident  string  `json:"name,omitempty"`
		Params []Param `json:"params,omitempty"`
		Body   *Expr   `json:"body"`
	}

	// Class declaration.
	Class struct {
		Ident        string        `json:"name"`
		TypeParams   []string      `json:"type_params,omitempty"`
		Superclass   string        `json:"superclass,omitempty"`
		Traits       []string      `json:"traits,omitempty"`
		Fields       []StructField `json:"fields,omitempty"`
		Constructors []Constructor `json:"constructors,omitempty"`
		Methods      []Method      `json:"methods,omitempty"`
		Derives      []string      `json:"derives,omitempty"`
		IsPub        bool          `json:"is_pub,omitempty"`
	}

	// ActorHandler handles one message type of an actor.
	ActorHandler struct {
		Message string  `json:"message"`
		Params  []Param `json:"params,omitempty"`
		Body    *Expr   `json:"body"`
	}

	// Actor declaration.
	Actor struct {
		Ident    string         `json:"name"`
		State    []StructField  `json:"state,omitempty"`
		Handlers []ActorHandler `json:"handlers,omitempty"`
	}

	// EffectOperation is an operation declared by an effect.
	EffectOperation struct {
		Ident      string  `json:"name"`
		Params     []Param `json:"params,omitempty"`
		ReturnType *Type   `json:"return_type,omitempty"`
	}

	// Effect declaration.
	Effect struct {
		Ident      string            `json:"name"`
		Operations []EffectOperation `json:"operations,omitempty"`
	}

	// EffectHandler handles an effect operation inside a Handle expression.
	EffectHandler struct {
		Operation string     `json:"operation"`
		Params    []*Pattern `json:"params,omitempty"`
		Body      *Expr      `json:"body"`
	}

	// Handle runs Expr with effect handlers installed.
	Handle struct {
		Expr     *Expr           `json:"expr"`
		Handlers []EffectHandler `json:"handlers,omitempty"`
	}

	// TypeAlias declaration.
	TypeAlias struct {
		Ident string `json:"name"`
		Type  *Type  `json:"type"`
	}
)

// ----------------------------------------------------------------------------
// Collections and literals of compound values.
type (
	// List literal.
	List struct {
		Elements []*Expr `json:"elements,omitempty"`
	}

	// Set literal.
	Set struct {
		Elements []*Expr `json:"elements,omitempty"`
	}

	// Tuple literal.
	Tuple struct {
		Elements []*Expr `json:"elements,omitempty"`
	}

	// ObjectField is either a key,value pair or a spread of another object.
	ObjectField struct {
		Key    string `json:"key,omitempty"`
		Value  *Expr  `json:"value"`
		Spread bool   `json:"spread,omitempty"`
	}

	// ObjectLiteral is { key: value, ...other }.
	ObjectLiteral struct {
		Fields []ObjectField `json:"fields,omitempty"`
	}

	// FieldInit initialises a field in a structure literal.
	FieldInit struct {
		Ident string `json:"name"`
		Value *Expr  `json:"value"`
	}

	// StructLiteral is Name { field: value, ..base }.
	StructLiteral struct {
		Ident  string      `json:"name"`
		Fields []FieldInit `json:"fields,omitempty"`
		Base   *Expr       `json:"base,omitempty"`
	}

	// VecRepeat is [value; count].
	VecRepeat struct {
		Value *Expr `json:"value"`
		Count *Expr `json:"count"`
	}

	// DataFrameColumn is a named column of a dataframe literal.
	DataFrameColumn struct {
		Ident  string  `json:"name"`
		Values []*Expr `json:"values,omitempty"`
	}

	// DataFrame literal.
	DataFrame struct {
		Columns []DataFrameColumn `json:"columns,omitempty"`
	}

	// DataFrameOperation applies a dataframe operation to Source.
	DataFrameOperation struct {
		Source  *Expr    `json:"source"`
		Op      string   `json:"op"`
		Columns []string `json:"columns,omitempty"`
		Args    []*Expr  `json:"args,omitempty"`
	}
)

// ----------------------------------------------------------------------------
// Strings, commands and pipelines.
type (
	// InterpPart is one part of an interpolated string.
	// Text parts have a nil Expr. Format is the optional format specifier (for example ".2").
	InterpPart struct {
		Text   string `json:"text,omitempty"`
		Expr   *Expr  `json:"expr,omitempty"`
		Format string `json:"format,omitempty"`
	}

	// StringInterpolation is f"text {expr} text".
	StringInterpolation struct {
		Parts []InterpPart `json:"parts,omitempty"`
	}

	// EnvVar is a key,value pair of a command environment.
	EnvVar struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// Command runs an external program.
	Command struct {
		Program    string   `json:"program"`
		Args       []string `json:"args,omitempty"`
		Env        []EnvVar `json:"env,omitempty"`
		WorkingDir string   `json:"working_dir,omitempty"`
	}

	// Spread is ...expr.
	Spread struct {
		Expr *Expr `json:"expr"`
	}

	// Pipeline is expr |> stage |> stage.
	Pipeline struct {
		Expr   *Expr   `json:"expr"`
		Stages []*Expr `json:"stages"`
	}
)

// ----------------------------------------------------------------------------
// Actors messaging.
type (
	// Send is send(actor, message).
	Send struct {
		Actor   *Expr `json:"actor"`
		Message *Expr `json:"message"`
	}

	// Ask is ask(actor, message) with an optional timeout.
	Ask struct {
		Actor   *Expr `json:"actor"`
		Message *Expr `json:"message"`
		Timeout *Expr `json:"timeout,omitempty"`
	}

	// ActorSend is actor <- message.
	ActorSend struct {
		Actor   *Expr `json:"actor"`
		Message *Expr `json:"message"`
	}

	// ActorQuery is actor <? message.
	ActorQuery struct {
		Actor   *Expr `json:"actor"`
		Message *Expr `json:"message"`
	}
)

// ----------------------------------------------------------------------------
// Macros, modules and imports.
type (
	// Macro is name!(args...).
	Macro struct {
		Ident string  `json:"name"`
		Args  []*Expr `json:"args,omitempty"`
	}

	// MacroInvocation is a macro call in expression position.
	MacroInvocation struct {
		Ident string  `json:"name"`
		Args  []*Expr `json:"args,omitempty"`
	}

	// Module is an inline module.
	Module struct {
		Ident string `json:"name"`
		Body  *Expr  `json:"body"`
	}

	// ModuleDeclaration declares an external module file.
	ModuleDeclaration struct {
		Ident string `json:"name"`
	}

	// ImportItem is an imported name with an optional alias.
	ImportItem struct {
		Ident string `json:"name"`
		Alias string `json:"alias,omitempty"`
	}

	// Import is import module::{items}.
	Import struct {
		Module string       `json:"module"`
		Items  []ImportItem `json:"items,omitempty"`
	}

	// ImportAll is import module::* with an optional alias.
	ImportAll struct {
		Module string `json:"module"`
		Alias  string `json:"alias,omitempty"`
	}

	// ImportDefault imports the default export of a module under a name.
	ImportDefault struct {
		Module string `json:"module"`
		Ident  string `json:"name"`
	}

	// Export makes a declaration public.
	Export struct {
		Expr *Expr `json:"expr"`
	}

	// ExportList exports a list of names.
	ExportList struct {
		Names []string `json:"names"`
	}

	// ExportDefault exports an expression as the default export.
	ExportDefault struct {
		Expr *Expr `json:"expr"`
	}

	// ReExport exports names imported from another module.
	ReExport struct {
		Items  []string `json:"items"`
		Module string   `json:"module"`
	}
)

// ----------------------------------------------------------------------------
// Asynchrony and errors.
type (
	// Await is expr.await.
	Await struct {
		Expr *Expr `json:"expr"`
	}

	// Lazy delays the evaluation of Expr.
	Lazy struct {
		Expr *Expr `json:"expr"`
	}

	// Throw raises an error.
	Throw struct {
		Expr *Expr `json:"expr"`
	}

	// Try is the postfix error propagation operator expr?.
	Try struct {
		Expr *Expr `json:"expr"`
	}

	// CatchClause is a catch clause of a TryCatch.
	CatchClause struct {
		Pattern *Pattern `json:"pattern,omitempty"`
		Body    *Expr    `json:"body"`
	}

	// TryCatch is try { } catch e { } finally { }.
	TryCatch struct {
		Try     *Expr         `json:"try"`
		Catches []CatchClause `json:"catches,omitempty"`
		Finally *Expr         `json:"finally,omitempty"`
	}
)
