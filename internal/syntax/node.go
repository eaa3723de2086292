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

// Package syntax defines the language-neutral syntax tree shared by the
// dialect parsers. Nodes carry byte spans into their file and parent links
// established by [SetParents].
package syntax

import (
	"strings"

	"fillmore-labs.com/autoprop/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
	Parent() Node
	setParent(Node)
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// base carries the span and parent link common to all nodes.
type base struct {
	span   source.Span
	parent Node
}

// Span returns the node's byte range within its file.
func (b *base) Span() source.Span { return b.span }

// Parent returns the enclosing node, or nil for the file root.
func (b *base) Parent() Node { return b.parent }

func (b *base) setParent(p Node) { b.parent = p }

// SetSpan records the node's byte range. Used by the dialect parsers.
func (b *base) SetSpan(s source.Span) { b.span = s }

// Modifier is a single declaration modifier keyword.
type Modifier struct {
	Name string
	Span source.Span
}

// Modifiers is an ordered modifier list. Names keep their source casing.
type Modifiers []Modifier

// Has reports whether the list contains the named modifier.
// Matching is case-insensitive; the VB dialect capitalizes keywords.
func (ms Modifiers) Has(name string) bool {
	for _, m := range ms {
		if strings.EqualFold(m.Name, name) {
			return true
		}
	}

	return false
}

// AccessorKind distinguishes get and set accessors.
type AccessorKind uint8

const (
	// GetAccessor is a property getter.
	GetAccessor AccessorKind = iota

	// SetAccessor is a property setter.
	SetAccessor
)

// RefMode is the by-reference passing mode of a call argument.
type RefMode uint8

const (
	// RefNone marks an ordinary by-value argument.
	RefNone RefMode = iota

	// RefRef marks a "ref"-style argument.
	RefRef

	// RefOut marks an "out"-style argument.
	RefOut
)
