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

package format

import (
	"strconv"
	"strings"

	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/fmterr"
	"github.com/pkg/errors"
)

func errorf(format string, a ...any) error {
	return fmterr.At(fmterr.Unsupported, ast.Span{}, errors.Errorf(format, a...))
}

func (p *printer) attribute(attr ast.Attribute) {
	p.write("@", attr.Name)
	if len(attr.Args) > 0 {
		p.write("(", strings.Join(attr.Args, ", "), ")")
	}
}

func typeParams(tps []string) string {
	if len(tps) == 0 {
		return ""
	}
	return "<" + strings.Join(tps, ", ") + ">"
}

func pub(isPub bool) string {
	if isPub {
		return "pub "
	}
	return ""
}

func (p *printer) derives(derives []string) {
	if len(derives) == 0 {
		return
	}
	p.write("#[derive(", strings.Join(derives, ", "), ")]")
	p.newline()
}

// signature prints the name, the parameters and the return type of a function.
func (p *printer) signature(name string, tps []string, params []ast.Param, ret *ast.Type) {
	p.write(name, typeParams(tps), "(")
	p.params(params)
	p.write(")")
	if ret != nil && !ret.IsAny() {
		p.write(" -> ", ret.String())
	}
}

func (p *printer) function(fn *ast.Function) {
	p.write(pub(fn.IsPub))
	if fn.IsAsync {
		p.write("async ")
	}
	p.write("fun ")
	p.signature(fn.Ident, fn.TypeParams, fn.Params, fn.ReturnType)
	p.write(" ")
	p.block(fn.Body)
}

func (p *printer) method(m *ast.Method) {
	p.write(pub(m.IsPub))
	if m.IsStatic {
		p.write("static ")
	}
	p.write("fun ")
	p.signature(m.Ident, m.TypeParams, m.Params, m.ReturnType)
	if m.Body == nil {
		return
	}
	p.write(" ")
	p.block(m.Body)
}

func (p *printer) methods(methods []ast.Method) func(int) {
	return func(i int) {
		if i > 0 {
			p.newline()
		}
		p.method(&methods[i])
	}
}

func (p *printer) field(f *ast.StructField) {
	p.write(pub(f.IsPub))
	if f.Mutable {
		p.write("mut ")
	}
	p.write(f.Ident, ": ", f.Type.String())
	if f.Default != nil {
		p.write(" = ")
		p.expr(f.Default)
	}
	p.write(",")
}

// declName returns the keyword and name of a named declaration.
func declName(e *ast.Expr) string {
	switch k := e.Kind.(type) {
	case *ast.Function:
		return "fun " + k.Ident
	case *ast.Struct:
		return "struct " + k.Ident
	case *ast.Enum:
		return "enum " + k.Ident
	case *ast.Trait:
		return "trait " + k.Ident
	case *ast.Class:
		return "class " + k.Ident
	case *ast.Actor:
		return "actor " + k.Ident
	case *ast.Effect:
		return "effect " + k.Ident
	}
	return ""
}

// decl prints a declaration. It returns false for other expressions.
// Errors inside a named declaration are prefixed with its name.
func (p *printer) decl(e *ast.Expr) bool {
	if name := declName(e); name != "" {
		p.errs.Push(fmterr.PrefixWith("%s: ", name))
		defer p.errs.Pop()
	}
	switch k := e.Kind.(type) {
	case *ast.Function:
		p.function(k)
	case *ast.Struct:
		p.derives(k.Derives)
		p.write(pub(k.IsPub), "struct ", k.Ident, typeParams(k.TypeParams), " ")
		p.members(len(k.Fields), func(i int) { p.field(&k.Fields[i]) })
	case *ast.TupleStruct:
		p.derives(k.Derives)
		types := make([]string, len(k.Fields))
		for i, t := range k.Fields {
			types[i] = t.String()
		}
		p.write(pub(k.IsPub), "struct ", k.Ident, typeParams(k.TypeParams), "(", strings.Join(types, ", "), ")")
	case *ast.Enum:
		p.derives(k.Derives)
		p.write(pub(k.IsPub), "enum ", k.Ident, typeParams(k.TypeParams), " ")
		p.members(len(k.Variants), func(i int) { p.variant(&k.Variants[i]) })
	case *ast.Trait:
		p.write(pub(k.IsPub), "trait ", k.Ident, typeParams(k.TypeParams), " ")
		n := len(k.AssociatedTypes)
		p.members(n+len(k.Methods), func(i int) {
			if i < n {
				p.write("type ", k.AssociatedTypes[i])
				return
			}
			p.methods(k.Methods)(i - n)
		})
	case *ast.Impl:
		p.write("impl", typeParams(k.TypeParams), " ")
		if k.Trait != "" {
			p.write(k.Trait, " for ")
		}
		p.write(k.ForType, " ")
		p.members(len(k.Methods), p.methods(k.Methods))
	case *ast.Extension:
		p.write("extend ", k.TargetType, " ")
		p.members(len(k.Methods), p.methods(k.Methods))
	case *ast.Class:
		p.class(k)
	case *ast.Actor:
		p.actor(k)
	case *ast.Effect:
		p.write("effect ", k.Ident, " ")
		p.members(len(k.Operations), func(i int) {
			op := k.Operations[i]
			p.signature(op.Ident, nil, op.Params, op.ReturnType)
		})
	case *ast.Handle:
		p.write("handle ")
		p.expr(k.Expr)
		p.write(" with ")
		p.members(len(k.Handlers), func(i int) {
			h := k.Handlers[i]
			p.write(h.Operation)
			if len(h.Params) > 0 {
				p.write("(")
				p.patterns(h.Params)
				p.write(")")
			}
			p.write(" => ")
			p.expr(h.Body)
			p.write(",")
		})
	case *ast.TypeAlias:
		p.write("type ", k.Ident, " = ", k.Type.String())
	case *ast.Module:
		p.write("mod ", k.Ident, " ")
		p.block(k.Body)
	case *ast.ModuleDeclaration:
		p.write("mod ", k.Ident)
	case *ast.Import:
		p.write("import ", k.Module)
		if len(k.Items) > 0 {
			items := make([]string, len(k.Items))
			for i, item := range k.Items {
				items[i] = item.Ident
				if item.Alias != "" {
					items[i] += " as " + item.Alias
				}
			}
			p.write("::{", strings.Join(items, ", "), "}")
		}
	case *ast.ImportAll:
		p.write("import ", k.Module, "::*")
		if k.Alias != "" {
			p.write(" as ", k.Alias)
		}
	case *ast.ImportDefault:
		p.write("import ", k.Ident, " from ", strconv.Quote(k.Module))
	case *ast.Export:
		p.write("export ")
		p.expr(k.Expr)
	case *ast.ExportList:
		p.write("export { ", strings.Join(k.Names, ", "), " }")
	case *ast.ExportDefault:
		p.write("export default ")
		p.expr(k.Expr)
	case *ast.ReExport:
		p.write("export { ", strings.Join(k.Items, ", "), " } from ", strconv.Quote(k.Module))
	default:
		return false
	}
	return true
}

func (p *printer) variant(v *ast.EnumVariant) {
	p.write(v.Ident)
	switch {
	case len(v.StructFields) > 0:
		p.write(" ")
		p.members(len(v.StructFields), func(i int) { p.field(&v.StructFields[i]) })
	case len(v.Fields) > 0:
		types := make([]string, len(v.Fields))
		for i, t := range v.Fields {
			types[i] = t.String()
		}
		p.write("(", strings.Join(types, ", "), ")")
	case v.Discriminant != nil:
		p.write(" = ", strconv.FormatInt(*v.Discriminant, 10))
	}
	p.write(",")
}

func (p *printer) class(cl *ast.Class) {
	p.derives(cl.Derives)
	p.write(pub(cl.IsPub), "class ", cl.Ident, typeParams(cl.TypeParams))
	if cl.Superclass != "" {
		p.write(" : ", cl.Superclass)
	}
	if len(cl.Traits) > 0 {
		p.write(" impl ", strings.Join(cl.Traits, ", "))
	}
	p.write(" ")
	nf, nc := len(cl.Fields), len(cl.Constructors)
	p.members(nf+nc+len(cl.Methods), func(i int) {
		switch {
		case i < nf:
			p.field(&cl.Fields[i])
		case i < nf+nc:
			if i == nf && nf > 0 {
				p.newline()
			}
			ctor := cl.Constructors[i-nf]
			name := ctor.Ident
			if name == "" {
				name = "new"
			}
			p.signature(name, nil, ctor.Params, nil)
			p.write(" ")
			p.block(ctor.Body)
		default:
			if i > 0 {
				p.newline()
			}
			p.method(&cl.Methods[i-nf-nc])
		}
	})
}

func (p *printer) actor(act *ast.Actor) {
	p.write("actor ", act.Ident, " ")
	ns := len(act.State)
	p.members(ns+len(act.Handlers), func(i int) {
		if i < ns {
			p.field(&act.State[i])
			return
		}
		if i == ns && ns > 0 {
			p.newline()
		}
		h := act.Handlers[i-ns]
		p.write("receive ", h.Message)
		if len(h.Params) > 0 {
			p.write("(")
			p.params(h.Params)
			p.write(")")
		}
		p.write(" => ")
		p.block(h.Body)
	})
}
