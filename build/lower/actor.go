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
	"github.com/paiml/ruchy-sub001/build/analysis"
	"github.com/paiml/ruchy-sub001/build/ast"
	"github.com/paiml/ruchy-sub001/build/target"
)

// messageType returns the name of the enum holding the messages of an actor.
func messageType(actor string) string {
	return actor + "Message"
}

// handlerTypes returns the payload types of a message handler.
// Untyped parameters are inferred from the body of the handler.
func (l *Lowerer) handlerTypes(h ast.ActorHandler) ([]target.Stream, error) {
	types := make([]target.Stream, len(h.Params))
	for i := range h.Params {
		p := &h.Params[i]
		typ := p.Type
		if p.IsUntyped() {
			typ = analysis.InferParamType(p.ParamName(), h.Body)
		}
		if typ == nil || typ.IsAny() {
			typ = named(analysis.DefaultInt)
		}
		var err error
		if types[i], err = l.lowerType(typ, typeField); err != nil {
			return nil, err
		}
	}
	return types, nil
}

// lowerActor lowers an actor to a structure holding its state, an enum of
// its messages and an implementation dispatching messages to handlers.
func (l *Lowerer) lowerActor(e *ast.Expr, act *ast.Actor) (target.Stream, error) {
	l.structs[act.Ident] = act.State
	name, err := target.DeclIdent(e.Span, act.Ident)
	if err != nil {
		return nil, err
	}
	msgName := target.Ident(messageType(act.Ident))
	fields, err := l.lowerFields(act.State, false)
	if err != nil {
		return nil, err
	}
	derive := deriveAttribute([]string{"Debug", "Clone"})
	state := target.Concat(derive, target.Quote("pub struct $0 $1", name, target.Block(fields)))
	if len(act.State) == 0 {
		state = target.Concat(derive, target.Quote("pub struct $0;", name))
	}

	var variants, arms target.Stream
	for _, h := range act.Handlers {
		variant, err := target.DeclIdent(e.Span, h.Message)
		if err != nil {
			return nil, err
		}
		types, err := l.handlerTypes(h)
		if err != nil {
			return nil, err
		}
		binds := make([]target.Stream, len(h.Params))
		for i := range h.Params {
			if binds[i], err = l.lowerPattern(h.Params[i].Pattern, bindMode{}); err != nil {
				return nil, err
			}
		}
		pat := target.Quote("$0::$1", msgName, variant)
		if len(types) > 0 {
			variants = append(variants, target.Quote("$0($1),", variant, types)...)
			pat = target.Quote("$0($1)", pat, binds)
		} else {
			variants = append(variants, target.Quote("$0,", variant)...)
		}
		body, err := l.actorHandler(h.Body)
		if err != nil {
			return nil, err
		}
		arms = append(arms, target.Quote("$0 => $1,", pat, body)...)
	}
	messages := target.Concat(derive, target.Quote("pub enum $0 $1", msgName, target.Block(variants)))

	values, err := l.fieldValues(act.State, nil)
	if err != nil {
		return nil, err
	}
	ctor := target.Quote("pub fn new() -> Self { Self $0 }", target.Block(values))
	if len(act.State) == 0 {
		ctor = target.Quote("pub fn new() -> Self { Self }")
	}
	dispatch := target.Quote("pub fn handle_message(&mut self, msg: $0) $1", msgName,
		target.Block(target.Quote("match msg $0", target.Block(arms))))
	if len(arms) == 0 {
		dispatch = target.Quote("pub fn handle_message(&mut self, _msg: $0) {}", msgName)
	}
	send := target.Quote("pub fn send(&mut self, msg: $0) { self.handle_message(msg); }", msgName)
	ask := target.Quote("pub fn ask(&mut self, msg: $0) { self.handle_message(msg); }", msgName)
	members := target.Concat(ctor, target.Stream{target.NL, target.NL}, dispatch,
		target.Stream{target.NL, target.NL}, send, target.Stream{target.NL, target.NL}, ask)
	impl := target.Quote("impl $0 $1", name, target.Block(members))
	return target.Concat(state, target.Stream{target.NL, target.NL}, messages,
		target.Stream{target.NL, target.NL}, impl), nil
}

// actorHandler lowers the body of a message handler. Handlers mutate the
// state of the actor through self.
func (l *Lowerer) actorHandler(body *ast.Expr) (target.Stream, error) {
	saved := l.fn
	l.fn = &fnContext{name: "handle_message"}
	defer func() { l.fn = saved }()
	l.depth++
	defer func() { l.depth-- }()
	return l.branch(body, tailDiscard)
}

// lowerSend lowers a message sent to an actor. Messages are processed
// synchronously by the receiving actor.
func (l *Lowerer) lowerSend(actor, msg *ast.Expr, method string) (target.Stream, error) {
	recv, err := l.receiver(actor)
	if err != nil {
		return nil, err
	}
	m, err := l.lowerExpr(msg)
	if err != nil {
		return nil, err
	}
	return target.Quote("$0.$1($2)", recv, target.W(method), m), nil
}
