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

// Package usage records how candidate backing fields are used across a
// snapshot. Files are scanned concurrently; per-field usage accumulates as
// a set union, so the result does not depend on scan order.
package usage

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/syntax"
)

// Kind is a bit set of usage classes observed at a site.
type Kind uint8

const (
	// Read is a value read of the field.
	Read Kind = 1 << iota

	// Write is an assignment to the field.
	Write

	// RefOrOutArgument marks the field passed to a by-reference parameter.
	RefOrOutArgument

	// AddressOf marks the field's address or delegate being taken.
	AddressOf

	// Other marks a reference shape the classifier does not understand.
	Other
)

// Has reports whether all the given classes are present.
func (k Kind) Has(class Kind) bool { return k&class == class }

// ByReference reports whether the usage pins the field's storage location.
func (k Kind) ByReference() bool { return k&(RefOrOutArgument|AddressOf|Other) != 0 }

// String renders the flag set for logs, e.g. "read|write".
func (k Kind) String() string {
	var parts []string

	for _, f := range []struct {
		kind Kind
		name string
	}{
		{Read, "read"}, {Write, "write"}, {RefOrOutArgument, "ref"},
		{AddressOf, "addr"}, {Other, "other"},
	} {
		if k.Has(f.kind) {
			parts = append(parts, f.name)
		}
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, "|")
}

// Site is one classified reference to a field.
type Site struct {
	// File is the containing file's name.
	File string

	// Ident is the referencing identifier.
	Ident *syntax.Ident

	// Ref is the full reference expression: the identifier itself, or the
	// enclosing member access when the reference is self-qualified.
	Ref syntax.Expr

	// Kind is the classified usage.
	Kind Kind

	// Qualified reports a self-qualified reference.
	Qualified bool

	// InAccessorOf is the property whose accessor contains the site,
	// nil outside property accessors.
	InAccessorOf *symbols.Property
}

// Set is one field's accumulated usage. Kinds merge with an atomic union
// and sites append under a lock, so concurrent scans of different files
// produce the same set regardless of interleaving.
type Set struct {
	kinds atomic.Uint32

	mu    sync.Mutex
	sites []Site
}

func (s *Set) add(site Site) {
	s.kinds.Or(uint32(site.Kind))

	s.mu.Lock()
	s.sites = append(s.sites, site)
	s.mu.Unlock()
}

// Kinds is the union of all site kinds.
func (s *Set) Kinds() Kind { return Kind(s.kinds.Load()) }

// Sites returns the recorded sites ordered by file name and position.
func (s *Set) Sites() []Site {
	s.mu.Lock()
	sites := make([]Site, len(s.sites))
	copy(sites, s.sites)
	s.mu.Unlock()

	sort.Slice(sites, func(i, j int) bool {
		if sites[i].File != sites[j].File {
			return sites[i].File < sites[j].File
		}

		return sites[i].Ident.Span().Start < sites[j].Ident.Span().Start
	})

	return sites
}

// Len is the number of recorded sites.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sites)
}

// Result maps each candidate field to its usage set. Every candidate is
// present; fields without references map to an empty set.
type Result map[*symbols.Field]*Set
