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

// Package eligibility classifies field/property pairs. Classification is a
// pure function of the snapshot's symbols, the field's usage set and the
// dialect capabilities, so verdicts for different fields can be computed
// concurrently and memoized per snapshot.
package eligibility

import (
	"sync"

	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/usage"
)

// Verdict is the classification of one backing-field candidate.
type Verdict struct {
	// Field is the classified candidate.
	Field *symbols.Field

	// Property is the paired property, nil unless the delegation shape
	// matched.
	Property *symbols.Property

	// Delegation carries the matched accessor references.
	Delegation lang.Delegation

	// Reason is [Promotable] or the first ineligibility encountered.
	Reason Reason
}

// Eligible indicates the field would be promoted.
func (v Verdict) Eligible() bool { return v.Reason.Eligible() }

// Analyzer classifies fields against one snapshot.
type Analyzer struct {
	// Adapter answers dialect shape and capability queries.
	Adapter lang.Adapter

	// Version is the compilation's language version.
	Version lang.Version

	// Table resolves the snapshot's symbols.
	Table *symbols.Table
}

// Classify runs the eligibility checks in order and stops at the first
// failure.
func (a *Analyzer) Classify(field *symbols.Field, set *usage.Set) Verdict {
	v := Verdict{Field: field}

	prop, delegation, ok := a.pairedProperty(field)
	if !ok {
		v.Reason = NoTrivialDelegation

		return v
	}

	v.Property, v.Delegation = prop, delegation

	switch {
	case set.Kinds().ByReference():
		v.Reason = UsedByReference

	case field.Initializer() != nil && !a.Adapter.SupportsPropertyInitializer(a.Version):
		v.Reason = InitializerUnsupported

	case !delegation.HasSetter() && !a.Adapter.SupportsReadOnlyProperties(a.Version):
		v.Reason = ReadOnlyPropertyUnsupported

	case field.Const, field.HasAttributes():
		v.Reason = NonTransferableDeclaration
	}

	return v
}

// pairedProperty finds the single property of the declaring type whose
// accessors trivially delegate to the field. Two delegating properties
// disqualify each other; a property delegating to a different field never
// pairs.
func (a *Analyzer) pairedProperty(field *symbols.Field) (*symbols.Property, lang.Delegation, bool) {
	var (
		found      *symbols.Property
		delegation lang.Delegation
	)

	for _, prop := range field.Declaring.Properties {
		if prop.Static != field.Static {
			continue
		}

		d, ok := a.Adapter.TrivialDelegation(prop.Decl)
		if !ok || !a.delegatesTo(d, field) {
			continue
		}

		if found != nil {
			return nil, lang.Delegation{}, false
		}

		found, delegation = prop, d
	}

	return found, delegation, found != nil
}

// delegatesTo checks that both accessor references resolve to the field.
func (a *Analyzer) delegatesTo(d lang.Delegation, field *symbols.Field) bool {
	if !a.resolvesTo(d.GetterRef, field) {
		return false
	}

	return d.SetterRef == nil || a.resolvesTo(d.SetterRef, field)
}

func (a *Analyzer) resolvesTo(ref syntax.Expr, field *symbols.Field) bool {
	id, ok := lang.FieldRef(ref)
	if !ok {
		return false
	}

	sym, ok := a.Table.Use(id)

	return ok && sym == symbols.Symbol(field)
}

// Cache memoizes verdicts for one snapshot. Field symbols are rebuilt on
// every reparse, so a cache never outlives its snapshot's symbol table.
type Cache struct {
	mu sync.RWMutex
	m  map[*symbols.Field]Verdict
}

// Classify returns the memoized verdict, computing it on first use.
func (c *Cache) Classify(a *Analyzer, field *symbols.Field, set *usage.Set) Verdict {
	c.mu.RLock()
	v, ok := c.m[field]
	c.mu.RUnlock()

	if ok {
		return v
	}

	v = a.Classify(field, set)

	c.mu.Lock()
	if c.m == nil {
		c.m = make(map[*symbols.Field]Verdict)
	}
	c.m[field] = v
	c.mu.Unlock()

	return v
}
