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

// exprKinds lists a zero value of every expression kind.
var exprKinds = []Kind{
	&Literal{},
	&Identifier{},
	&QualifiedName{},
	&FieldAccess{},
	&IndexAccess{},
	&Range{},
	&Binary{},
	&Unary{},
	&PreIncrement{},
	&PostIncrement{},
	&PreDecrement{},
	&PostDecrement{},
	&Assign{},
	&CompoundAssign{},
	&Call{},
	&MethodCall{},
	&OptionalMethodCall{},
	&Let{},
	&LetPattern{},
	&Block{},
	&If{},
	&IfLet{},
	&Match{},
	&While{},
	&WhileLet{},
	&For{},
	&Loop{},
	&Break{},
	&Continue{},
	&Return{},
	&Function{},
	&Lambda{},
	&AsyncLambda{},
	&Struct{},
	&TupleStruct{},
	&Enum{},
	&Trait{},
	&Impl{},
	&Extension{},
	&Class{},
	&Actor{},
	&Effect{},
	&Handle{},
	&TypeAlias{},
	&List{},
	&Set{},
	&Tuple{},
	&ObjectLiteral{},
	&StructLiteral{},
	&VecRepeat{},
	&DataFrame{},
	&DataFrameOperation{},
	&StringInterpolation{},
	&Command{},
	&Spread{},
	&Pipeline{},
	&Send{},
	&Ask{},
	&ActorSend{},
	&ActorQuery{},
	&Macro{},
	&MacroInvocation{},
	&Module{},
	&ModuleDeclaration{},
	&Import{},
	&ImportAll{},
	&ImportDefault{},
	&Export{},
	&ExportList{},
	&ExportDefault{},
	&ReExport{},
	&Await{},
	&Lazy{},
	&Throw{},
	&Try{},
	&TryCatch{},
}

// ----------------------------------------------------------------------------
// Kind names.

func (*Literal) Name() string { return "Literal" }
func (*Identifier) Name() string { return "Identifier" }
func (*QualifiedName) Name() string { return "QualifiedName" }
func (*FieldAccess) Name() string { return "FieldAccess" }
func (*IndexAccess) Name() string { return "IndexAccess" }
func (*Range) Name() string { return "Range" }
func (*Binary) Name() string { return "Binary" }
func (*Unary) Name() string { return "Unary" }
func (*PreIncrement) Name() string { return "PreIncrement" }
func (*PostIncrement) Name() string { return "PostIncrement" }
func (*PreDecrement) Name() string { return "PreDecrement" }
func (*PostDecrement) Name() string { return "PostDecrement" }
func (*Assign) Name() string { return "Assign" }
func (*CompoundAssign) Name() string { return "CompoundAssign" }
func (*Call) Name() string { return "Call" }
func (*MethodCall) Name() string { return "MethodCall" }
func (*OptionalMethodCall) Name() string { return "OptionalMethodCall" }
func (*Let) Name() string { return "Let" }
func (*LetPattern) Name() string { return "LetPattern" }
func (*Block) Name() string { return "Block" }
func (*If) Name() string { return "If" }
func (*IfLet) Name() string { return "IfLet" }
func (*Match) Name() string { return "Match" }
func (*While) Name() string { return "While" }
func (*WhileLet) Name() string { return "WhileLet" }
func (*For) Name() string { return "For" }
func (*Loop) Name() string { return "Loop" }
func (*Break) Name() string { return "Break" }
func (*Continue) Name() string { return "Continue" }
func (*Return) Name() string { return "Return" }
func (*Function) Name() string { return "Function" }
func (*Lambda) Name() string { return "Lambda" }
func (*AsyncLambda) Name() string { return "AsyncLambda" }
func (*Struct) Name() string { return "Struct" }
func (*TupleStruct) Name() string { return "TupleStruct" }
func (*Enum) Name() string { return "Enum" }
func (*Trait) Name() string { return "Trait" }
func (*Impl) Name() string { return "Impl" }
func (*Extension) Name() string { return "Extension" }
func (*Class) Name() string { return "Class" }
func (*Actor) Name() string { return "Actor" }
func (*Effect) Name() string { return "Effect" }
func (*Handle) Name() string { return "Handle" }
func (*TypeAlias) Name() string { return "TypeAlias" }
func (*List) Name() string { return "List" }
func (*Set) Name() string { return "Set" }
func (*Tuple) Name() string { return "Tuple" }
func (*ObjectLiteral) Name() string { return "ObjectLiteral" }
func (*StructLiteral) Name() string { return "StructLiteral" }
func (*VecRepeat) Name() string { return "VecRepeat" }
func (*DataFrame) Name() string { return "DataFrame" }
func (*DataFrameOperation) Name() string { return "DataFrameOperation" }
func (*StringInterpolation) Name() string { return "StringInterpolation" }
func (*Command) Name() string { return "Command" }
func (*Spread) Name() string { return "Spread" }
func (*Pipeline) Name() string { return "Pipeline" }
func (*Send) Name() string { return "Send" }
func (*Ask) Name() string { return "Ask" }
func (*ActorSend) Name() string { return "ActorSend" }
func (*ActorQuery) Name() string { return "ActorQuery" }
func (*Macro) Name() string { return "Macro" }
func (*MacroInvocation) Name() string { return "MacroInvocation" }
func (*Module) Name() string { return "Module" }
func (*ModuleDeclaration) Name() string { return "ModuleDeclaration" }
func (*Import) Name() string { return "Import" }
func (*ImportAll) Name() string { return "ImportAll" }
func (*ImportDefault) Name() string { return "ImportDefault" }
func (*Export) Name() string { return "Export" }
func (*ExportList) Name() string { return "ExportList" }
func (*ExportDefault) Name() string { return "ExportDefault" }
func (*ReExport) Name() string { return "ReExport" }
func (*Await) Name() string { return "Await" }
func (*Lazy) Name() string { return "Lazy" }
func (*Throw) Name() string { return "Throw" }
func (*Try) Name() string { return "Try" }
func (*TryCatch) Name() string { return "TryCatch" }

// ----------------------------------------------------------------------------
// Kind markers.

func (*Literal) exprKind() {}
func (*Identifier) exprKind() {}
func (*QualifiedName) exprKind() {}
func (*FieldAccess) exprKind() {}
func (*IndexAccess) exprKind() {}
func (*Range) exprKind() {}
func (*Binary) exprKind() {}
func (*Unary) exprKind() {}
func (*PreIncrement) exprKind() {}
func (*PostIncrement) exprKind() {}
func (*PreDecrement) exprKind() {}
func (*PostDecrement) exprKind() {}
func (*Assign) exprKind() {}
func (*CompoundAssign) exprKind() {}
func (*Call) exprKind() {}
func (*MethodCall) exprKind() {}
func (*OptionalMethodCall) exprKind() {}
func (*Let) exprKind() {}
func (*LetPattern) exprKind() {}
func (*Block) exprKind() {}
func (*If) exprKind() {}
func (*IfLet) exprKind() {}
func (*Match) exprKind() {}
func (*While) exprKind() {}
func (*WhileLet) exprKind() {}
func (*For) exprKind() {}
func (*Loop) exprKind() {}
func (*Break) exprKind() {}
func (*Continue) exprKind() {}
func (*Return) exprKind() {}
func (*Function) exprKind() {}
func (*Lambda) exprKind() {}
func (*AsyncLambda) exprKind() {}
func (*Struct) exprKind() {}
func (*TupleStruct) exprKind() {}
func (*Enum) exprKind() {}
func (*Trait) exprKind() {}
func (*Impl) exprKind() {}
func (*Extension) exprKind() {}
func (*Class) exprKind() {}
func (*Actor) exprKind() {}
func (*Effect) exprKind() {}
func (*Handle) exprKind() {}
func (*TypeAlias) exprKind() {}
func (*List) exprKind() {}
func (*Set) exprKind() {}
func (*Tuple) exprKind() {}
func (*ObjectLiteral) exprKind() {}
func (*StructLiteral) exprKind() {}
func (*VecRepeat) exprKind() {}
func (*DataFrame) exprKind() {}
func (*DataFrameOperation) exprKind() {}
func (*StringInterpolation) exprKind() {}
func (*Command) exprKind() {}
func (*Spread) exprKind() {}
func (*Pipeline) exprKind() {}
func (*Send) exprKind() {}
func (*Ask) exprKind() {}
func (*ActorSend) exprKind() {}
func (*ActorQuery) exprKind() {}
func (*Macro) exprKind() {}
func (*MacroInvocation) exprKind() {}
func (*Module) exprKind() {}
func (*ModuleDeclaration) exprKind() {}
func (*Import) exprKind() {}
func (*ImportAll) exprKind() {}
func (*ImportDefault) exprKind() {}
func (*Export) exprKind() {}
func (*ExportList) exprKind() {}
func (*ExportDefault) exprKind() {}
func (*ReExport) exprKind() {}
func (*Await) exprKind() {}
func (*Lazy) exprKind() {}
func (*Throw) exprKind() {}
func (*Try) exprKind() {}
func (*TryCatch) exprKind() {}
