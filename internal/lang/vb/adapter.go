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

// Package vb implements the Visual Basic dialect adapter. The dialect is
// line-oriented and case-insensitive; auto-properties are single-line
// declarations, so promotion replaces the whole property block.
package vb

import (
	"errors"
	"strings"

	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/textedit"
)

// Adapter is the Visual Basic dialect adapter.
type Adapter struct{}

var _ lang.Adapter = Adapter{}

// ErrBadProperty is returned when a property lacks the pieces needed to
// render its single-line replacement.
var ErrBadProperty = errors.New("vb: property not renderable as auto-property")

// Name implements [lang.Adapter].
func (Adapter) Name() string { return "vb" }

// Extensions implements [lang.Adapter].
func (Adapter) Extensions() []string { return []string{".vb"} }

// Parse implements [lang.Adapter].
func (Adapter) Parse(fileName, content string) (*syntax.File, error) {
	return parse(fileName, content)
}

// TrivialDelegation implements [lang.Adapter]. The accessor bodies are
// Get/Set blocks; the shared single-statement shape test covers them.
func (Adapter) TrivialDelegation(p *syntax.PropertyDecl) (lang.Delegation, bool) {
	return lang.Delegated(p)
}

// SupportsReadOnlyProperties implements [lang.Adapter]. ReadOnly
// auto-properties arrived with Visual Basic 14.
func (Adapter) SupportsReadOnlyProperties(v lang.Version) bool {
	return v.AtLeast("14")
}

// SupportsPropertyInitializer implements [lang.Adapter]. Auto-property
// initializers arrived with Visual Basic 10.
func (Adapter) SupportsPropertyInitializer(v lang.Version) bool {
	return v.AtLeast("10")
}

// PromotableUnit implements [lang.Adapter].
func (Adapter) PromotableUnit(f *syntax.FieldDecl, d *syntax.Declarator) syntax.Node {
	return lang.PromotableUnit(f, d)
}

// AutoPropertyEdit implements [lang.Adapter]. The whole property block is
// replaced by the single-line auto-property form, keeping the property's
// modifiers and adding ReadOnly when the setter is dropped.
func (Adapter) AutoPropertyEdit(_ source.File, p *syntax.PropertyDecl, hasSetter bool, initializer string) (textedit.Edit, error) {
	if p.Name == nil || p.Type == nil || !p.Span().Valid() {
		return textedit.Edit{}, ErrBadProperty
	}

	var b strings.Builder

	for _, m := range p.Modifiers {
		b.WriteString(m.Name) // ignore error
		b.WriteString(" ")    // ignore error
	}

	if !hasSetter && !p.Modifiers.Has("ReadOnly") {
		b.WriteString("ReadOnly ") // ignore error
	}

	b.WriteString("Property ")  // ignore error
	b.WriteString(p.Name.Name)  // ignore error
	b.WriteString(" As ")       // ignore error
	b.WriteString(p.Type.Name)  // ignore error

	if initializer != "" {
		b.WriteString(" = ")       // ignore error
		b.WriteString(initializer) // ignore error
	}

	return textedit.Edit{Span: p.Span(), NewText: b.String()}, nil
}
