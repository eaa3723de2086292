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

// Package csharp implements the C# dialect adapter: a parser for the
// analyzed subset of the language and the shape and capability predicates
// the engine queries through [lang.Adapter].
package csharp

import (
	"errors"
	"strings"

	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/textedit"
)

// Adapter is the C# dialect adapter.
type Adapter struct{}

var _ lang.Adapter = Adapter{}

// ErrNoAccessors is returned when a property carries no rewritable
// accessor region.
var ErrNoAccessors = errors.New("csharp: property has no accessor region")

// Name implements [lang.Adapter].
func (Adapter) Name() string { return "csharp" }

// Extensions implements [lang.Adapter].
func (Adapter) Extensions() []string { return []string{".cs"} }

// Parse implements [lang.Adapter].
func (Adapter) Parse(fileName, content string) (*syntax.File, error) {
	return parse(fileName, content)
}

// TrivialDelegation implements [lang.Adapter]. C# has no dialect-specific
// shapes beyond the shared ones: expression bodies and single-statement
// block bodies.
func (Adapter) TrivialDelegation(p *syntax.PropertyDecl) (lang.Delegation, bool) {
	return lang.Delegated(p)
}

// SupportsReadOnlyProperties implements [lang.Adapter]. Getter-only
// auto-properties arrived with C# 6.
func (Adapter) SupportsReadOnlyProperties(v lang.Version) bool {
	return v.AtLeast("6")
}

// SupportsPropertyInitializer implements [lang.Adapter]. Auto-property
// initializers arrived with C# 6.
func (Adapter) SupportsPropertyInitializer(v lang.Version) bool {
	return v.AtLeast("6")
}

// PromotableUnit implements [lang.Adapter].
func (Adapter) PromotableUnit(f *syntax.FieldDecl, d *syntax.Declarator) syntax.Node {
	return lang.PromotableUnit(f, d)
}

// AutoPropertyEdit implements [lang.Adapter]. The explicit accessor region
// is replaced with auto accessors, preserving accessor-level modifiers, and
// a carried field initializer is appended after the closing brace.
func (Adapter) AutoPropertyEdit(_ source.File, p *syntax.PropertyDecl, hasSetter bool, initializer string) (textedit.Edit, error) {
	if !p.AccessorsSpan.Valid() {
		return textedit.Edit{}, ErrNoAccessors
	}

	var b strings.Builder
	b.WriteString("{ ") // ignore error

	writeAccessor(&b, p.Getter(), "get")

	if hasSetter {
		writeAccessor(&b, p.Setter(), "set")
	}

	b.WriteString("}") // ignore error

	if initializer != "" {
		b.WriteString(" = ")        // ignore error
		b.WriteString(initializer)  // ignore error
		b.WriteString(";")          // ignore error
	}

	return textedit.Edit{Span: p.AccessorsSpan, NewText: b.String()}, nil
}

func writeAccessor(b *strings.Builder, acc *syntax.Accessor, keyword string) {
	if acc != nil {
		for _, m := range acc.Modifiers {
			b.WriteString(m.Name) // ignore error
			b.WriteString(" ")    // ignore error
		}
	}

	b.WriteString(keyword) // ignore error
	b.WriteString("; ")    // ignore error
}
