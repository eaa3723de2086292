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

package syntax

import "fillmore-labs.com/autoprop/internal/source"

// File is the root node of one parsed source document.
type File struct {
	base

	// FileName identifies the document within its snapshot.
	FileName string

	// Decls are the top-level type declarations.
	Decls []Node
}

// ClassDecl is a (possibly partial) class declaration fragment.
// A partial type split across files is represented by one fragment per file;
// the binder merges fragments into a single logical symbol.
type ClassDecl struct {
	base

	Attrs     []*AttributeList
	Modifiers Modifiers
	Name      *Ident
	Members   []Node

	// Partial marks a fragment of a type split across declarations.
	Partial bool
}

// FieldDecl is one field declaration statement, possibly declaring several
// variables ("int a, b;").
type FieldDecl struct {
	base

	Attrs       []*AttributeList
	Modifiers   Modifiers
	Type        *TypeRef
	Declarators []*Declarator
}

// Declarator is a single declared variable with an optional initializer.
type Declarator struct {
	base

	Name *Ident
	Init Expr
}

// PropertyDecl is a property declaration with explicit or auto accessors.
type PropertyDecl struct {
	base

	Attrs     []*AttributeList
	Modifiers Modifiers
	Type      *TypeRef
	Name      *Ident
	Accessors []*Accessor

	// AccessorsSpan covers the accessor list (or the expression body for
	// expression-bodied properties); this is the span an auto-property
	// rewrite replaces.
	AccessorsSpan source.Span

	// Auto marks a property whose storage is already compiler-synthesized.
	Auto bool
}

// Getter returns the get accessor, or nil.
func (p *PropertyDecl) Getter() *Accessor { return p.accessor(GetAccessor) }

// Setter returns the set accessor, or nil.
func (p *PropertyDecl) Setter() *Accessor { return p.accessor(SetAccessor) }

func (p *PropertyDecl) accessor(kind AccessorKind) *Accessor {
	for _, a := range p.Accessors {
		if a.Kind == kind {
			return a
		}
	}

	return nil
}

// Accessor is one get or set accessor of a property.
type Accessor struct {
	base

	Kind      AccessorKind
	Modifiers Modifiers

	// Body is the accessor's block body, nil for auto accessors and
	// expression-bodied accessors.
	Body *Block

	// Expr is the expression body ("get => f;"), nil otherwise.
	Expr Expr

	// ValueName is the setter's value parameter name ("value" unless the
	// dialect declares it explicitly).
	ValueName string
}

// MethodDecl is a method declaration with a statement body.
type MethodDecl struct {
	base

	Modifiers  Modifiers
	ReturnType *TypeRef
	Name       *Ident
	Params     []*Param
	Body       *Block
}

// Param is a single method parameter.
type Param struct {
	base

	Name *Ident
	Type *TypeRef

	// ByRef marks ref/out/ByRef parameters.
	ByRef bool
}

// TypeRef is an opaque type reference, stored as rendered source text.
type TypeRef struct {
	base

	Name string
}

// AttributeList is an opaque attribute list attached to a declaration.
type AttributeList struct {
	base

	Text string
}
