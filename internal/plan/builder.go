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

package plan

import (
	"errors"
	"fmt"

	"fillmore-labs.com/autoprop/internal/eligibility"
	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/textedit"
	"fillmore-labs.com/autoprop/internal/usage"
)

// ErrNotEligible is returned when plan construction is asked for an
// ineligible verdict.
var ErrNotEligible = errors.New("plan: verdict not eligible")

// Builder constructs plans from eligible verdicts against one snapshot.
type Builder struct {
	// Adapter renders the dialect-specific property replacement.
	Adapter lang.Adapter

	// View is the snapshot the verdict was computed from.
	View View
}

// Build constructs the three edit groups for one verdict: remove the
// field's promotable unit, replace the property's accessors and rewrite
// the remaining usage sites. Any mismatch between the verdict and the
// snapshot fails with [ErrShapeChanged] and no plan.
func (b *Builder) Build(v eligibility.Verdict, sites []usage.Site) (*Plan, error) {
	if !v.Eligible() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotEligible, v.Field.Name, v.Reason)
	}

	p := &Plan{BaseVersion: b.View.Version()}

	removal, err := b.removeField(p, v)
	if err != nil {
		return nil, err
	}

	if err := b.replaceAccessors(p, v); err != nil {
		return nil, err
	}

	if err := b.rewriteSites(p, v, sites, removal); err != nil {
		return nil, err
	}

	if err := p.validate(b.View); err != nil {
		return nil, err
	}

	return p, nil
}

// removeField drops the field's promotable unit and returns the removed
// region for site filtering.
func (b *Builder) removeField(p *Plan, v eligibility.Verdict) (source.Span, error) {
	field := v.Field

	content, ok := b.View.Content(field.File)
	if !ok {
		return source.Span{}, fmt.Errorf("%w: %s missing from snapshot", ErrShapeChanged, field.File)
	}

	unit := b.Adapter.PromotableUnit(field.Decl, field.Declarator)

	var span source.Span

	switch unit := unit.(type) {
	case *syntax.FieldDecl:
		span = removalSpan(content, unit.Span())

	case *syntax.Declarator:
		var err error
		if span, err = declaratorSpan(field.Decl, unit); err != nil {
			return source.Span{}, err
		}

	default:
		return source.Span{}, fmt.Errorf("%w: unexpected promotable unit %T", ErrShapeChanged, unit)
	}

	if !span.Valid() || span.End > len(content) {
		return source.Span{}, fmt.Errorf("%w: removal span %v out of range", ErrShapeChanged, span)
	}

	p.add(field.File, textedit.Edit{Span: span})

	return span, nil
}

// declaratorSpan is the removed region of one declarator in a multi-name
// statement, taking a list separator with it.
func declaratorSpan(decl *syntax.FieldDecl, d *syntax.Declarator) (source.Span, error) {
	for i, candidate := range decl.Declarators {
		if candidate != d {
			continue
		}

		if i+1 < len(decl.Declarators) {
			return source.NewSpan(d.Span().Start, decl.Declarators[i+1].Span().Start), nil
		}

		return source.NewSpan(decl.Declarators[i-1].Span().End, d.Span().End), nil
	}

	return source.Span{}, fmt.Errorf("%w: declarator not in its statement", ErrShapeChanged)
}

func (b *Builder) replaceAccessors(p *Plan, v eligibility.Verdict) error {
	prop := v.Property

	content, ok := b.View.Content(prop.File)
	if !ok {
		return fmt.Errorf("%w: %s missing from snapshot", ErrShapeChanged, prop.File)
	}

	initializer, err := b.initializerText(v)
	if err != nil {
		return err
	}

	file := source.File{Name: prop.File, Content: content}

	edit, err := b.Adapter.AutoPropertyEdit(file, prop.Decl, v.Delegation.HasSetter(), initializer)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShapeChanged, err)
	}

	p.add(prop.File, edit)

	return nil
}

// initializerText slices the field initializer expression verbatim from
// its document.
func (b *Builder) initializerText(v eligibility.Verdict) (string, error) {
	init := v.Field.Initializer()
	if init == nil {
		return "", nil
	}

	content, ok := b.View.Content(v.Field.File)
	if !ok {
		return "", fmt.Errorf("%w: %s missing from snapshot", ErrShapeChanged, v.Field.File)
	}

	span := init.Span()
	if !span.Valid() || span.End > len(content) {
		return "", fmt.Errorf("%w: initializer span %v out of range", ErrShapeChanged, span)
	}

	return content[span.Start:span.End], nil
}

// rewriteSites renames every remaining reference to the property,
// preserving each site's qualification by editing only the identifier.
func (b *Builder) rewriteSites(p *Plan, v eligibility.Verdict, sites []usage.Site, removed source.Span) error {
	for _, site := range sites {
		if site.InAccessorOf == v.Property {
			continue // the accessor bodies are discarded wholesale
		}

		if site.File == v.Field.File && removed.Contains(site.Ident.Span()) {
			continue
		}

		content, ok := b.View.Content(site.File)
		if !ok {
			return fmt.Errorf("%w: %s missing from snapshot", ErrShapeChanged, site.File)
		}

		span := site.Ident.Span()
		if !span.Valid() || span.End > len(content) || content[span.Start:span.End] != v.Field.Name {
			return fmt.Errorf("%w: %s no longer names %s", ErrShapeChanged,
				source.File{Name: site.File, Content: content}.FormatPosition(span.Start), v.Field.Name)
		}

		p.add(site.File, textedit.Edit{Span: span, NewText: v.Property.Name})
	}

	return nil
}
