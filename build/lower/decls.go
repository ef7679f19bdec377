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
	"strings"

	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

// isItem returns true if an expression is a declaration of the target language.
func isItem(e *ast.Expr) bool {
	if e == nil {
		return false
	}
	switch e.Kind.(type) {
	case *ast.Function, *ast.Struct, *ast.TupleStruct, *ast.Enum, *ast.Trait, *ast.Impl,
		*ast.Extension, *ast.Class, *ast.Actor, *ast.Effect, *ast.TypeAlias, *ast.Module,
		*ast.ModuleDeclaration, *ast.Import, *ast.ImportAll, *ast.ImportDefault, *ast.Export,
		*ast.ExportList, *ast.ExportDefault, *ast.ReExport:
		return true
	}
	return false
}

func (l *Lowerer) lowerItem(e *ast.Expr) (target.Stream, error) {
	switch itemT := e.Kind.(type) {
	case *ast.Function:
		return l.lowerFunction(e, itemT)
	case *ast.Struct:
		return l.lowerStruct(e, itemT)
	case *ast.TupleStruct:
		return l.lowerTupleStruct(e, itemT)
	case *ast.Enum:
		return l.lowerEnum(e, itemT)
	case *ast.Trait:
		return l.lowerTrait(e, itemT)
	case *ast.Impl:
		return l.lowerImpl(e, itemT)
	case *ast.Extension:
		return l.lowerExtension(e, itemT)
	case *ast.Class:
		return l.lowerClass(e, itemT)
	case *ast.Actor:
		return l.lowerActor(e, itemT)
	case *ast.Effect:
		return l.lowerEffect(e, itemT)
	case *ast.TypeAlias:
		name, err := target.DeclIdent(e.Span, itemT.Ident)
		if err != nil {
			return nil, err
		}
		typ, err := l.lowerType(itemT.Type, typeLocal)
		if err != nil {
			return nil, err
		}
		return target.Quote("pub type $0 = $1;", name, typ), nil
	case *ast.Module:
		return l.lowerModule(e, itemT)
	case *ast.ModuleDeclaration:
		l.RegisterModule(itemT.Ident)
		name, err := target.DeclIdent(e.Span, itemT.Ident)
		if err != nil {
			return nil, err
		}
		return target.Quote("mod $0;", name), nil
	case *ast.Import:
		return l.lowerImport(itemT)
	case *ast.ImportAll:
		if itemT.Alias != "" {
			return target.Quote("use $0 as $1;", pathStream(splitPath(itemT.Module)), target.Ident(itemT.Alias)), nil
		}
		return target.Quote("use $0::*;", pathStream(splitPath(itemT.Module))), nil
	case *ast.ImportDefault:
		return target.Quote("use $0 as $1;", pathStream(splitPath(itemT.Module)), target.Ident(itemT.Ident)), nil
	case *ast.Export:
		return l.lowerExport(e, itemT.Expr)
	case *ast.ExportDefault:
		return l.lowerExport(e, itemT.Expr)
	case *ast.ExportList:
		l.log.Debug("ignore export list", "names", strings.Join(itemT.Names, ","))
		return nil, nil
	case *ast.ReExport:
		return target.Quote("pub use $0;", useTree(itemT.Module, itemT.Items)), nil
	}
	return nil, unsupportedf(e, "%s declaration not supported", e.Kind.Name())
}

// lowerExport lowers a declaration made public.
func (l *Lowerer) lowerExport(e, item *ast.Expr) (target.Stream, error) {
	if !isItem(item) {
		return nil, unsupportedf(e, "cannot export a %s expression", item.Kind.Name())
	}
	exported := *item
	switch k := item.Kind.(type) {
	case *ast.Function:
		fn := *k
		fn.IsPub = true
		exported.Kind = &fn
		l.declare(&exported, &fn)
	case *ast.Struct:
		s := *k
		s.IsPub = true
		exported.Kind = &s
	case *ast.TupleStruct:
		s := *k
		s.IsPub = true
		exported.Kind = &s
	case *ast.Enum:
		en := *k
		en.IsPub = true
		exported.Kind = &en
	case *ast.Trait:
		tr := *k
		tr.IsPub = true
		exported.Kind = &tr
	case *ast.Class:
		cl := *k
		cl.IsPub = true
		exported.Kind = &cl
	}
	return l.lowerItem(&exported)
}

func useTree(module string, items []string) target.Stream {
	path := pathStream(splitPath(module))
	switch len(items) {
	case 0:
		return path
	case 1:
		return target.Quote("$0::$1", path, target.Ident(items[0]))
	}
	names := make([]target.Stream, len(items))
	for i, item := range items {
		names[i] = target.Stream{target.Ident(item)}
	}
	return target.Quote("$0::$1", path, useGroup(names))
}

// useGroup lowers a group of imported names. The braces stay on the line
// of the path.
func useGroup(names []target.Stream) target.Stream {
	return target.Concat(
		target.Stream{{Kind: target.Open, Text: "{"}},
		target.CommaList(names),
		target.Stream{{Kind: target.Close, Text: "}"}},
	)
}

func (l *Lowerer) lowerImport(imp *ast.Import) (target.Stream, error) {
	segs := splitPath(imp.Module)
	if len(imp.Items) == 0 {
		if len(segs) > 0 {
			l.RegisterModule(segs[len(segs)-1])
		}
		return target.Quote("use $0;", pathStream(segs)), nil
	}
	path := pathStream(segs)
	items := make([]target.Stream, len(imp.Items))
	for i, item := range imp.Items {
		items[i] = target.Stream{target.Ident(item.Ident)}
		if item.Alias != "" {
			items[i] = target.Quote("$0 as $1", items[i], target.Ident(item.Alias))
		}
	}
	if len(items) == 1 {
		return target.Quote("use $0::$1;", path, items[0]), nil
	}
	return target.Quote("use $0::$1;", path, useGroup(items)), nil
}

func (l *Lowerer) lowerModule(e *ast.Expr, mod *ast.Module) (target.Stream, error) {
	l.RegisterModule(mod.Ident)
	name, err := target.DeclIdent(e.Span, mod.Ident)
	if err != nil {
		return nil, err
	}
	var exprs []*ast.Expr
	if blk, ok := mod.Body.Kind.(*ast.Block); ok {
		exprs = blk.Exprs
	} else if mod.Body != nil {
		exprs = []*ast.Expr{mod.Body}
	}
	for _, x := range exprs {
		if !isItem(x) {
			return nil, malformedf(x, "%s expression in module %s", x.Kind.Name(), mod.Ident)
		}
	}
	l.declareAll(exprs)
	items, err := l.lowerItems(exprs)
	if err != nil {
		return nil, err
	}
	return target.Quote("pub mod $0 $1", name, target.Block(items)), nil
}

// lowerItems lowers declarations separated by blank lines.
func (l *Lowerer) lowerItems(exprs []*ast.Expr) (target.Stream, error) {
	var out target.Stream
	for _, x := range exprs {
		s, err := l.lowerItem(x)
		if err != nil {
			return nil, err
		}
		if len(s) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, target.NL, target.NL)
		}
		out = append(out, s...)
	}
	return out, nil
}

// deriveAttribute returns the derive attribute of a type declaration.
func deriveAttribute(derives []string) target.Stream {
	if len(derives) == 0 {
		return nil
	}
	names := make([]target.Stream, len(derives))
	for i, d := range derives {
		names[i] = target.Stream{target.W(d)}
	}
	return append(target.Quote("#[derive($0)]", names), target.NL)
}

// typeHead lowers the attributes, the visibility and the name of a type declaration.
func (l *Lowerer) typeHead(e *ast.Expr, keyword, ident string, typeParams, derives []string, pub bool) (target.Stream, error) {
	attrs, err := lowerAttributes(e)
	if err != nil {
		return nil, err
	}
	name, err := target.DeclIdent(e.Span, ident)
	if err != nil {
		return nil, err
	}
	generics, err := lowerGenerics(e, typeParams, requestedBounds(e))
	if err != nil {
		return nil, err
	}
	head := target.Concat(deriveAttribute(derives), attrs)
	if pub {
		head = append(head, target.W("pub"))
	}
	return target.Concat(head, target.Words(keyword), target.Stream{name}, generics), nil
}

func (l *Lowerer) lowerFields(fields []ast.StructField, pub bool) (target.Stream, error) {
	var out target.Stream
	for _, f := range fields {
		name, err := target.DeclIdent(ast.Span{}, f.Ident)
		if err != nil {
			return nil, err
		}
		typ, err := l.lowerType(f.Type, typeField)
		if err != nil {
			return nil, err
		}
		field := target.Quote("$0: $1,", name, typ)
		if pub || f.IsPub {
			field = append(target.Stream{target.W("pub")}, field...)
		}
		out = append(out, field...)
	}
	return out, nil
}

// fieldValues lowers the initial values of fields of a structure.
// Fields without a value are initialized to their default.
func (l *Lowerer) fieldValues(fields []ast.StructField, values map[string]*ast.Expr) (target.Stream, error) {
	var out target.Stream
	for _, f := range fields {
		name := target.Ident(f.Ident)
		value, ok := values[f.Ident]
		if !ok {
			value = f.Default
		}
		if value == nil {
			out = append(out, target.Quote("$0: Default::default(),", name)...)
			continue
		}
		v, err := l.lowerExpr(value)
		if err != nil {
			return nil, err
		}
		if f.Type.NamedAs(analysis.OwnedString) {
			v = ownedString(value, v)
		}
		out = append(out, target.Quote("$0: $1,", name, v)...)
	}
	return out, nil
}

func hasDefaults(fields []ast.StructField) bool {
	for _, f := range fields {
		if f.Default != nil {
			return true
		}
	}
	return false
}

// lowerDefaultImpl implements Default for a structure with field defaults.
func (l *Lowerer) lowerDefaultImpl(name string, fields []ast.StructField) (target.Stream, error) {
	values, err := l.fieldValues(fields, nil)
	if err != nil {
		return nil, err
	}
	return target.Quote(`impl Default for $0 {
		fn default() -> Self {
			Self $1
		}
	}`, target.Ident(name), target.Block(values)), nil
}

func (l *Lowerer) lowerStruct(e *ast.Expr, s *ast.Struct) (target.Stream, error) {
	l.structs[s.Ident] = s.Fields
	head, err := l.typeHead(e, "struct", s.Ident, s.TypeParams, s.Derives, s.IsPub)
	if err != nil {
		return nil, err
	}
	if len(s.Fields) == 0 {
		return append(head, target.Semi), nil
	}
	fields, err := l.lowerFields(s.Fields, false)
	if err != nil {
		return nil, err
	}
	out := target.Concat(head, target.Block(fields))
	if !hasDefaults(s.Fields) {
		return out, nil
	}
	def, err := l.lowerDefaultImpl(s.Ident, s.Fields)
	if err != nil {
		return nil, err
	}
	return target.Concat(out, target.Stream{target.NL, target.NL}, def), nil
}

func (l *Lowerer) lowerTupleStruct(e *ast.Expr, s *ast.TupleStruct) (target.Stream, error) {
	head, err := l.typeHead(e, "struct", s.Ident, s.TypeParams, s.Derives, s.IsPub)
	if err != nil {
		return nil, err
	}
	fields := make([]target.Stream, len(s.Fields))
	for i, f := range s.Fields {
		if fields[i], err = l.lowerType(f, typeField); err != nil {
			return nil, err
		}
		if s.IsPub {
			fields[i] = append(target.Stream{target.W("pub")}, fields[i]...)
		}
	}
	return target.Concat(head, target.Parens(target.CommaList(fields)), target.Stream{target.Semi}), nil
}

func (l *Lowerer) lowerEnum(e *ast.Expr, en *ast.Enum) (target.Stream, error) {
	head, err := l.typeHead(e, "enum", en.Ident, en.TypeParams, en.Derives, en.IsPub)
	if err != nil {
		return nil, err
	}
	var variants target.Stream
	for _, v := range en.Variants {
		name, err := target.DeclIdent(e.Span, v.Ident)
		if err != nil {
			return nil, err
		}
		variant := target.Stream{name}
		switch {
		case len(v.StructFields) > 0:
			fields, err := l.lowerFields(v.StructFields, false)
			if err != nil {
				return nil, err
			}
			variant = target.Concat(variant, target.Block(fields))
		case len(v.Fields) > 0:
			types, err := l.lowerTypes(v.Fields, typeField)
			if err != nil {
				return nil, err
			}
			variant = target.Concat(variant, target.Parens(target.CommaList(types)))
		case v.Discriminant != nil:
			lit, err := l.lowerLiteral(e, &ast.Literal{Lit: ast.IntLit, Int: *v.Discriminant})
			if err != nil {
				return nil, err
			}
			variant = target.Quote("$0 = $1", variant, lit)
		}
		variants = append(append(variants, variant...), target.Comma)
	}
	return target.Concat(head, target.Block(variants)), nil
}

// methodDecl returns the function declaration of a method. A receiver is
// added to instance methods declared without one.
func methodDecl(parent *ast.Expr, m *ast.Method, addSelf bool) *funcDecl {
	params := m.Params
	if addSelf && !m.IsStatic && (len(params) == 0 || params[0].ParamName() != "self") {
		self := ast.Param{Pattern: &ast.Pattern{Kind: &ast.IdentPattern{Ident: "self"}}}
		params = append([]ast.Param{self}, params...)
	}
	return &funcDecl{
		src:        parent,
		name:       m.Ident,
		typeParams: m.TypeParams,
		params:     params,
		ret:        m.ReturnType,
		body:       m.Body,
	}
}

// lowerMethods lowers the methods of a trait or an implementation.
func (l *Lowerer) lowerMethods(parent *ast.Expr, methods []ast.Method, pub, addSelf bool) (target.Stream, error) {
	var out target.Stream
	for i := range methods {
		m := &methods[i]
		decl := methodDecl(parent, m, addSelf)
		s, err := l.lowerFunc(decl, l.signatureOf(decl), funcOpts{pub: pub && (m.IsPub || addSelf)})
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			out = append(out, target.NL, target.NL)
		}
		out = append(out, s...)
	}
	return out, nil
}

func (l *Lowerer) lowerTrait(e *ast.Expr, tr *ast.Trait) (target.Stream, error) {
	head, err := l.typeHead(e, "trait", tr.Ident, tr.TypeParams, nil, tr.IsPub)
	if err != nil {
		return nil, err
	}
	var body target.Stream
	for _, at := range tr.AssociatedTypes {
		body = append(body, target.Quote("type $0;", target.Ident(at))...)
	}
	methods, err := l.lowerMethods(e, tr.Methods, false, false)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 && len(methods) > 0 {
		body = append(body, target.NL)
	}
	return target.Concat(head, target.Block(append(body, methods...))), nil
}

func (l *Lowerer) lowerImpl(e *ast.Expr, impl *ast.Impl) (target.Stream, error) {
	generics, err := lowerGenerics(e, impl.TypeParams, requestedBounds(e))
	if err != nil {
		return nil, err
	}
	forType, err := target.Lex(impl.ForType)
	if err != nil {
		return nil, malformedf(e, "invalid type %q: %v", impl.ForType, err)
	}
	head := target.Concat(target.Words("impl"), generics)
	if impl.Trait != "" {
		trait, err := target.Lex(impl.Trait)
		if err != nil {
			return nil, malformedf(e, "invalid trait %q: %v", impl.Trait, err)
		}
		head = target.Quote("$0 $1 for", head, trait)
	}
	methods, err := l.lowerMethods(e, impl.Methods, impl.Trait == "", false)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0 $1 $2", head, forType, target.Block(methods)), nil
}

// lowerExtension lowers methods added to an existing type to a trait
// implemented for that type.
func (l *Lowerer) lowerExtension(e *ast.Expr, ext *ast.Extension) (target.Stream, error) {
	forType, err := target.Lex(ext.TargetType)
	if err != nil {
		return nil, malformedf(e, "invalid type %q: %v", ext.TargetType, err)
	}
	traitName := extensionTrait(ext.TargetType)
	var sigs target.Stream
	for i := range ext.Methods {
		m := ext.Methods[i]
		m.Body = nil
		decl := methodDecl(e, &m, true)
		sig, err := l.lowerFunc(decl, l.signatureOf(methodDecl(e, &ext.Methods[i], true)), funcOpts{})
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig...)
	}
	impls, err := l.lowerMethods(e, ext.Methods, false, true)
	if err != nil {
		return nil, err
	}
	return target.Quote(`pub trait $0 $1
	impl $0 for $2 $3`, traitName, target.Block(sigs), forType, target.Block(impls)), nil
}

// extensionTrait returns the name of the trait declaring the methods of an extension.
func extensionTrait(typeName string) string {
	var b strings.Builder
	for _, r := range typeName {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name + "Ext"
}

// constructorFields splits the body of a constructor between the
// assignments to fields of self and the other statements.
func constructorFields(body *ast.Expr) (map[string]*ast.Expr, []*ast.Expr) {
	var exprs []*ast.Expr
	if blk, ok := body.Kind.(*ast.Block); ok {
		exprs = blk.Exprs
	} else if body != nil {
		exprs = []*ast.Expr{body}
	}
	fields := make(map[string]*ast.Expr)
	var stmts []*ast.Expr
	for _, x := range exprs {
		as, ok := x.Kind.(*ast.Assign)
		if !ok {
			stmts = append(stmts, x)
			continue
		}
		fa, ok := as.Target.Kind.(*ast.FieldAccess)
		if !ok {
			stmts = append(stmts, x)
			continue
		}
		if id, ok := fa.Object.Kind.(*ast.Identifier); !ok || id.Ident != "self" {
			stmts = append(stmts, x)
			continue
		}
		fields[fa.Field] = as.Value
	}
	return fields, stmts
}

func (l *Lowerer) lowerConstructor(e *ast.Expr, cl *ast.Class, ctor ast.Constructor) (target.Stream, error) {
	name := ctor.Ident
	if name == "" {
		name = "new"
	}
	fields, stmts := constructorFields(ctor.Body)
	decl := &funcDecl{src: e, name: name, params: ctor.Params, ret: named("Self")}
	sig := l.signatureOf(decl)
	var params []target.Stream
	for _, p := range sig.params {
		s, err := l.lowerParam(decl, p)
		if err != nil {
			return nil, err
		}
		params = append(params, s)
	}
	values, err := l.fieldValues(cl.Fields, fields)
	if err != nil {
		return nil, err
	}
	body, err := l.lowerStmts(stmts, tailDiscard)
	if err != nil {
		return nil, err
	}
	body = append(body, target.Quote("Self $0", target.Block(values))...)
	return target.Quote("pub fn $0($1) -> Self $2", target.Ident(name), params, target.Block(body)), nil
}

// lowerClass lowers a class to a structure and an implementation holding
// its constructors and its methods.
func (l *Lowerer) lowerClass(e *ast.Expr, cl *ast.Class) (target.Stream, error) {
	l.structs[cl.Ident] = cl.Fields
	if cl.Superclass != "" {
		l.log.Debug("ignore superclass", "class", cl.Ident, "superclass", cl.Superclass)
	}
	head, err := l.typeHead(e, "struct", cl.Ident, cl.TypeParams, cl.Derives, cl.IsPub)
	if err != nil {
		return nil, err
	}
	fields, err := l.lowerFields(cl.Fields, false)
	if err != nil {
		return nil, err
	}
	out := target.Concat(head, target.Block(fields))
	var members target.Stream
	for _, ctor := range cl.Constructors {
		s, err := l.lowerConstructor(e, cl, ctor)
		if err != nil {
			return nil, err
		}
		if len(members) > 0 {
			members = append(members, target.NL, target.NL)
		}
		members = append(members, s...)
	}
	methods, err := l.lowerMethods(e, cl.Methods, true, true)
	if err != nil {
		return nil, err
	}
	if len(members) > 0 && len(methods) > 0 {
		members = append(members, target.NL, target.NL)
	}
	members = append(members, methods...)
	if len(members) == 0 {
		return out, nil
	}
	generics, err := lowerGenerics(e, cl.TypeParams, "")
	if err != nil {
		return nil, err
	}
	self := target.Concat(target.Stream{target.Ident(cl.Ident)}, generics)
	impl := target.Quote("impl$0 $1 $2", generics, self, target.Block(members))
	return target.Concat(out, target.Stream{target.NL, target.NL}, impl), nil
}
