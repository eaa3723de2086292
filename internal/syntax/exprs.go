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

// Block is a brace- or keyword-delimited statement list.
type Block struct {
	base

	Stmts []Node
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	base

	X Expr
}

// ReturnStmt returns an optional result from the enclosing body.
type ReturnStmt struct {
	base

	Result Expr
}

// LocalDecl declares one or more local variables.
type LocalDecl struct {
	base

	Type        *TypeRef
	Declarators []*Declarator
}

// IfStmt is a conditional statement. Else is a *Block, an *IfStmt, or nil.
type IfStmt struct {
	base

	Cond Expr
	Then *Block
	Else Node
}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	base

	Cond Expr
	Body *Block
}

// Ident is a name token.
type Ident struct {
	base

	Name string
}

// SelfExpr is the dialect's instance receiver keyword ("this", "Me").
type SelfExpr struct {
	base
}

// MemberAccess is "target.name".
type MemberAccess struct {
	base

	Target Expr
	Name   *Ident
}

// AssignExpr is a simple or compound assignment.
type AssignExpr struct {
	base

	Lhs Expr
	Op  string // "=", "+=", "-=", ...
	Rhs Expr
}

// BinaryExpr is a binary operation; operators are opaque text.
type BinaryExpr struct {
	base

	X  Expr
	Op string
	Y  Expr
}

// UnaryExpr is a prefix operation. Op "&" and "addressof" mark address-of.
type UnaryExpr struct {
	base

	Op string
	X  Expr
}

// CallExpr is an invocation with positional arguments.
type CallExpr struct {
	base

	Fun  Expr
	Args []*Argument
}

// Argument is one call argument with its by-reference mode.
type Argument struct {
	base

	Mode  RefMode
	Value Expr
}

// BasicLit is an opaque literal token.
type BasicLit struct {
	base

	Text string
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	base

	X Expr
}

func (*Ident) exprNode()        {}
func (*SelfExpr) exprNode()     {}
func (*MemberAccess) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*CallExpr) exprNode()     {}
func (*Argument) exprNode()     {}
func (*BasicLit) exprNode()     {}
func (*ParenExpr) exprNode()    {}
