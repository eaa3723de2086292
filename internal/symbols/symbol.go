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

// Package symbols binds the shared syntax tree to a symbol table.
//
// A type split across files (partial type) is one logical symbol owning a
// collection of syntax fragments; members declared in any fragment belong to
// the merged symbol. Resolution results are exposed the way go/types
// exposes types.Info: as maps from use sites to symbols.
package symbols

import "fillmore-labs.com/autoprop/internal/syntax"

// Kind classifies a symbol.
type Kind uint8

const (
	// KindType is a class symbol.
	KindType Kind = iota

	// KindField is a field symbol (one per declarator).
	KindField

	// KindProperty is a property symbol.
	KindProperty

	// KindMethod is a method symbol (one per overload).
	KindMethod

	// KindParam is a parameter symbol, including setter value parameters.
	KindParam

	// KindLocal is a local variable symbol.
	KindLocal
)

// Symbol is implemented by every symbol.
type Symbol interface {
	SymbolName() string
	SymbolKind() Kind
}

// Type is one logical class, possibly merged from several fragments.
type Type struct {
	Name string

	// Fragments are the declaration sites, one per file for partial types.
	Fragments []*syntax.ClassDecl

	Fields     []*Field
	Properties []*Property
	Methods    []*Method
}

// SymbolName implements [Symbol].
func (t *Type) SymbolName() string { return t.Name }

// SymbolKind implements [Symbol].
func (t *Type) SymbolKind() Kind { return KindType }

// Field is one declared field variable. Multi-declarator statements produce
// one Field per declarator, all sharing Decl.
type Field struct {
	Name      string
	Declaring *Type

	// Decl is the whole field statement; Declarator the variable's own slice of it.
	Decl       *syntax.FieldDecl
	Declarator *syntax.Declarator

	// File names the document containing the declaration.
	File string

	Static bool
	Const  bool
}

// SymbolName implements [Symbol].
func (f *Field) SymbolName() string { return f.Name }

// SymbolKind implements [Symbol].
func (f *Field) SymbolKind() Kind { return KindField }

// Initializer returns the declarator's initializer expression, or nil.
func (f *Field) Initializer() syntax.Expr { return f.Declarator.Init }

// HasAttributes reports whether the field statement carries attributes.
func (f *Field) HasAttributes() bool { return len(f.Decl.Attrs) > 0 }

// SoleDeclarator reports whether the field is alone in its statement.
func (f *Field) SoleDeclarator() bool { return len(f.Decl.Declarators) == 1 }

// Property is a declared property.
type Property struct {
	Name      string
	Declaring *Type
	Decl      *syntax.PropertyDecl
	File      string
	Static    bool
}

// SymbolName implements [Symbol].
func (p *Property) SymbolName() string { return p.Name }

// SymbolKind implements [Symbol].
func (p *Property) SymbolKind() Kind { return KindProperty }

// Method is one method overload.
type Method struct {
	Name      string
	Declaring *Type
	Decl      *syntax.MethodDecl
	File      string
	Static    bool
}

// SymbolName implements [Symbol].
func (m *Method) SymbolName() string { return m.Name }

// SymbolKind implements [Symbol].
func (m *Method) SymbolKind() Kind { return KindMethod }

// ByRefParam reports whether the i-th parameter is passed by reference.
func (m *Method) ByRefParam(i int) bool {
	if i < 0 || i >= len(m.Decl.Params) {
		return false
	}

	return m.Decl.Params[i].ByRef
}

// Param is a method or accessor value parameter.
type Param struct {
	Name     string
	TypeName string
	ByRef    bool
}

// SymbolName implements [Symbol].
func (p *Param) SymbolName() string { return p.Name }

// SymbolKind implements [Symbol].
func (p *Param) SymbolKind() Kind { return KindParam }

// Local is a local variable.
type Local struct {
	Name     string
	TypeName string
}

// SymbolName implements [Symbol].
func (l *Local) SymbolName() string { return l.Name }

// SymbolKind implements [Symbol].
func (l *Local) SymbolKind() Kind { return KindLocal }
