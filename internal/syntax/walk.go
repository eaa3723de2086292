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

// Children returns the direct child nodes in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *File:
		return n.Decls

	case *ClassDecl:
		var kids []Node
		for _, a := range n.Attrs {
			kids = append(kids, a)
		}

		kids = appendNonNil(kids, n.Name)
		kids = append(kids, n.Members...)

		return kids

	case *FieldDecl:
		var kids []Node
		for _, a := range n.Attrs {
			kids = append(kids, a)
		}

		kids = appendNonNil(kids, n.Type)
		for _, d := range n.Declarators {
			kids = append(kids, d)
		}

		return kids

	case *Declarator:
		return appendNonNil(appendNonNil(nil, n.Name), n.Init)

	case *PropertyDecl:
		var kids []Node
		for _, a := range n.Attrs {
			kids = append(kids, a)
		}

		kids = appendNonNil(appendNonNil(kids, n.Type), n.Name)
		for _, a := range n.Accessors {
			kids = append(kids, a)
		}

		return kids

	case *Accessor:
		return appendNonNil(appendNonNil(nil, n.Body), n.Expr)

	case *MethodDecl:
		var kids []Node

		kids = appendNonNil(appendNonNil(kids, n.ReturnType), n.Name)
		for _, p := range n.Params {
			kids = append(kids, p)
		}

		return appendNonNil(kids, n.Body)

	case *Param:
		return appendNonNil(appendNonNil(nil, n.Name), n.Type)

	case *Block:
		return n.Stmts

	case *ExprStmt:
		return appendNonNil(nil, n.X)

	case *ReturnStmt:
		return appendNonNil(nil, n.Result)

	case *LocalDecl:
		kids := appendNonNil(nil, n.Type)
		for _, d := range n.Declarators {
			kids = append(kids, d)
		}

		return kids

	case *IfStmt:
		return appendNonNil(appendNonNil(appendNonNil(nil, n.Cond), n.Then), n.Else)

	case *WhileStmt:
		return appendNonNil(appendNonNil(nil, n.Cond), n.Body)

	case *MemberAccess:
		return appendNonNil(appendNonNil(nil, n.Target), n.Name)

	case *AssignExpr:
		return appendNonNil(appendNonNil(nil, n.Lhs), n.Rhs)

	case *BinaryExpr:
		return appendNonNil(appendNonNil(nil, n.X), n.Y)

	case *UnaryExpr:
		return appendNonNil(nil, n.X)

	case *CallExpr:
		kids := appendNonNil(nil, n.Fun)
		for _, a := range n.Args {
			kids = append(kids, a)
		}

		return kids

	case *Argument:
		return appendNonNil(nil, n.Value)

	case *ParenExpr:
		return appendNonNil(nil, n.X)

	default:
		// Ident, SelfExpr, BasicLit, TypeRef, AttributeList are leaves.
		return nil
	}
}

// appendNonNil appends a child unless it is a typed or untyped nil.
func appendNonNil(kids []Node, n Node) []Node {
	if n == nil || isNilNode(n) {
		return kids
	}

	return append(kids, n)
}

func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Ident:
		return v == nil
	case *TypeRef:
		return v == nil
	case *Block:
		return v == nil
	default:
		return false
	}
}

// Inspect traverses the tree in preorder.
// If f returns false for a node, its children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// SetParents establishes parent links for every node below root.
// Parsers call this once per file; the tree is immutable afterwards.
func SetParents(root Node) {
	for _, c := range Children(root) {
		c.setParent(root)
		SetParents(c)
	}
}

// FileOf returns the file root enclosing n, or nil.
func FileOf(n Node) *File {
	for ; n != nil; n = n.Parent() {
		if f, ok := n.(*File); ok {
			return f
		}
	}

	return nil
}

// EnclosingClass returns the nearest class fragment enclosing n, or nil.
func EnclosingClass(n Node) *ClassDecl {
	for n = n.Parent(); n != nil; n = n.Parent() {
		if c, ok := n.(*ClassDecl); ok {
			return c
		}
	}

	return nil
}

// EnclosingProperty returns the property whose accessors contain n, or nil.
func EnclosingProperty(n Node) *PropertyDecl {
	for n = n.Parent(); n != nil; n = n.Parent() {
		if p, ok := n.(*PropertyDecl); ok {
			return p
		}
	}

	return nil
}

// EnclosingMethod returns the method whose body contains n, or nil.
func EnclosingMethod(n Node) *MethodDecl {
	for n = n.Parent(); n != nil; n = n.Parent() {
		if m, ok := n.(*MethodDecl); ok {
			return m
		}
	}

	return nil
}

// SelfQualified reports whether the identifier is the member name of a
// self-qualified access ("this.f", "Me.f").
func SelfQualified(id *Ident) bool {
	ma, ok := id.Parent().(*MemberAccess)
	if !ok || ma.Name != id {
		return false
	}

	_, ok = ma.Target.(*SelfExpr)

	return ok
}

// Reference returns the full reference expression for an identifier use:
// the enclosing member access when id is its member name, id itself otherwise.
func Reference(id *Ident) Expr {
	if ma, ok := id.Parent().(*MemberAccess); ok && ma.Name == id {
		return ma
	}

	return id
}
