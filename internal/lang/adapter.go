// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

// Package lang defines the per-dialect adapter contract.
//
// An adapter answers syntax-shape questions and capability queries for one
// source dialect; all of its predicates are pure functions of a syntax
// fragment and the active language version. The dialect parsers live in the
// adapter packages as well, but on the host side of the boundary: the engine
// only ever sees parsed trees.
package lang

import (
	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/textedit"
)

// Delegation is the result of a positive trivial-delegation shape test:
// the field-reference expressions the accessors delegate to.
type Delegation struct {
	// GetterRef is the expression returned by the getter.
	GetterRef syntax.Expr

	// SetterRef is the assignment target of the setter, nil when the
	// property has no setter.
	SetterRef syntax.Expr
}

// HasSetter reports whether the delegation includes a setter.
func (d Delegation) HasSetter() bool { return d.SetterRef != nil }

// Adapter is implemented once per source dialect.
type Adapter interface {
	// Name is the dialect identifier ("csharp", "vb").
	Name() string

	// Extensions lists the file extensions handled by the dialect.
	Extensions() []string

	// Parse parses one document into the shared syntax tree.
	// Parse is a host collaborator entry point, not part of the shape contract.
	Parse(fileName, content string) (*syntax.File, error)

	// TrivialDelegation tests whether the property consists solely of a
	// getter returning one field reference and, optionally, a setter
	// assigning the value parameter to one field reference.
	TrivialDelegation(p *syntax.PropertyDecl) (Delegation, bool)

	// SupportsReadOnlyProperties reports whether the version allows
	// auto-properties without a setter.
	SupportsReadOnlyProperties(v Version) bool

	// SupportsPropertyInitializer reports whether the version allows an
	// initializer on an auto-property declaration.
	SupportsPropertyInitializer(v Version) bool

	// PromotableUnit selects the syntax treated as the promotable unit:
	// the whole field statement for sole declarators, the single
	// declarator otherwise.
	PromotableUnit(f *syntax.FieldDecl, d *syntax.Declarator) syntax.Node

	// AutoPropertyEdit renders the text edit replacing the property's
	// explicit accessors with auto accessors, carrying the field's
	// initializer expression text verbatim when non-empty.
	AutoPropertyEdit(file source.File, p *syntax.PropertyDecl, hasSetter bool, initializer string) (textedit.Edit, error)
}

// PromotableUnit is the shared default for [Adapter.PromotableUnit].
func PromotableUnit(f *syntax.FieldDecl, d *syntax.Declarator) syntax.Node {
	if len(f.Declarators) == 1 {
		return f
	}

	return d
}

// FieldRef extracts the identifier of a field-reference expression shape:
// a bare identifier or a self-qualified member access. Any other shape is
// not trivial delegation.
func FieldRef(x syntax.Expr) (*syntax.Ident, bool) {
	switch x := x.(type) {
	case *syntax.Ident:
		return x, true

	case *syntax.MemberAccess:
		if _, ok := x.Target.(*syntax.SelfExpr); !ok {
			return nil, false
		}

		return x.Name, true

	default:
		return nil, false
	}
}

// GetterRef extracts the returned field reference of a trivially-delegating
// getter body: a single "return ref" statement or an expression body.
func GetterRef(a *syntax.Accessor) (syntax.Expr, bool) {
	if a.Expr != nil {
		if _, ok := FieldRef(a.Expr); ok {
			return a.Expr, true
		}

		return nil, false
	}

	if a.Body == nil || len(a.Body.Stmts) != 1 {
		return nil, false
	}

	ret, ok := a.Body.Stmts[0].(*syntax.ReturnStmt)
	if !ok || ret.Result == nil {
		return nil, false
	}

	if _, ok := FieldRef(ret.Result); !ok {
		return nil, false
	}

	return ret.Result, true
}

// SetterRef extracts the assignment target of a trivially-delegating setter
// body: a single "ref = value" statement, where value is the accessor's
// value parameter.
func SetterRef(a *syntax.Accessor) (syntax.Expr, bool) {
	valueName := a.ValueName
	if valueName == "" {
		valueName = "value"
	}

	asg, ok := setterAssign(a)
	if !ok || asg.Op != "=" {
		return nil, false
	}

	if _, ok := FieldRef(asg.Lhs); !ok {
		return nil, false
	}

	rhs, ok := asg.Rhs.(*syntax.Ident)
	if !ok || rhs.Name != valueName {
		return nil, false
	}

	return asg.Lhs, true
}

func setterAssign(a *syntax.Accessor) (*syntax.AssignExpr, bool) {
	if a.Expr != nil {
		asg, ok := a.Expr.(*syntax.AssignExpr)

		return asg, ok
	}

	if a.Body == nil || len(a.Body.Stmts) != 1 {
		return nil, false
	}

	stmt, ok := a.Body.Stmts[0].(*syntax.ExprStmt)
	if !ok {
		return nil, false
	}

	asg, ok := stmt.X.(*syntax.AssignExpr)

	return asg, ok
}

// Delegated runs the full shared shape test over a property's accessors.
// Auto properties and properties with extra accessors never match.
func Delegated(p *syntax.PropertyDecl) (Delegation, bool) {
	if p.Auto {
		return Delegation{}, false
	}

	getter, setter := p.Getter(), p.Setter()
	if getter == nil || len(p.Accessors) > 2 {
		return Delegation{}, false
	}

	getterRef, ok := GetterRef(getter)
	if !ok {
		return Delegation{}, false
	}

	d := Delegation{GetterRef: getterRef}

	if setter != nil {
		setterRef, ok := SetterRef(setter)
		if !ok {
			return Delegation{}, false
		}

		d.SetterRef = setterRef
	}

	return d, true
}
