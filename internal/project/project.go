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

// Package project holds the mutable workspace and its immutable snapshots.
// Analysis always runs against one snapshot; committing a plan produces the
// next snapshot atomically, and plans built against superseded snapshots
// are rejected.
package project

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/plan"
	"fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/textedit"
)

// Config fixes the dialect and language version of a workspace.
type Config struct {
	// Adapter is the dialect adapter for every document.
	Adapter lang.Adapter

	// Version is the active language version.
	Version lang.Version
}

// Snapshot is one immutable, fully parsed and bound state of the project.
type Snapshot struct {
	cfg     Config
	version int64
	names   []string
	files   map[string]string
	trees   []*syntax.File
	table   *symbols.Table
}

var _ plan.View = (*Snapshot)(nil)

// NewSnapshot parses and binds the documents into the first snapshot.
func NewSnapshot(cfg Config, docs map[string]string) (*Snapshot, error) {
	return newSnapshot(cfg, 1, docs)
}

func newSnapshot(cfg Config, version int64, docs map[string]string) (*Snapshot, error) {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}

	sort.Strings(names)

	trees := make([]*syntax.File, 0, len(names))

	for _, name := range names {
		tree, err := cfg.Adapter.Parse(name, docs[name])
		if err != nil {
			return nil, err
		}

		trees = append(trees, tree)
	}

	return &Snapshot{
		cfg:     cfg,
		version: version,
		names:   names,
		files:   docs,
		trees:   trees,
		table:   symbols.Bind(trees),
	}, nil
}

// Version implements [plan.View].
func (s *Snapshot) Version() int64 { return s.version }

// Content implements [plan.View].
func (s *Snapshot) Content(name string) (string, bool) {
	content, ok := s.files[name]

	return content, ok
}

// FileNames lists the snapshot's documents in lexical order.
func (s *Snapshot) FileNames() []string { return s.names }

// Trees returns the parsed documents, ordered like [Snapshot.FileNames].
func (s *Snapshot) Trees() []*syntax.File { return s.trees }

// Symbols returns the snapshot's bound symbol table.
func (s *Snapshot) Symbols() *symbols.Table { return s.table }

// Adapter is the workspace's dialect adapter.
func (s *Snapshot) Adapter() lang.Adapter { return s.cfg.Adapter }

// LangVersion is the active language version.
func (s *Snapshot) LangVersion() lang.Version { return s.cfg.Version }

// Fields enumerates every declared field in deterministic order: types by
// name, fields by declaration position.
func (s *Snapshot) Fields() []*symbols.Field {
	var fields []*symbols.Field

	for _, ty := range s.table.Types() {
		fields = append(fields, ty.Fields...)
	}

	return fields
}

// ErrStaleSnapshot is returned when a plan's base snapshot has been
// superseded by a commit.
var ErrStaleSnapshot = errors.New("project: snapshot is stale")

// Workspace owns the current snapshot. Reads are lock-free hand-offs of
// immutable snapshots; commits serialize at the transaction boundary.
type Workspace struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewWorkspace starts a workspace at the given snapshot.
func NewWorkspace(snap *Snapshot) *Workspace {
	return &Workspace{current: snap}
}

// Snapshot returns the current snapshot.
func (w *Workspace) Snapshot() *Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.current
}

// Commit applies a plan as one transaction and publishes the resulting
// snapshot. A plan computed against a superseded snapshot fails with
// [ErrStaleSnapshot]; any application or reparse failure leaves the
// current snapshot untouched.
func (w *Workspace) Commit(p *plan.Plan) (*Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cur := w.current

	if p.BaseVersion != cur.version {
		return nil, fmt.Errorf("%w: plan base %d, current %d", ErrStaleSnapshot, p.BaseVersion, cur.version)
	}

	// stage all documents before publishing anything
	staged := make(map[string]string, len(cur.files))
	for name, content := range cur.files {
		staged[name] = content
	}

	for _, name := range p.FileNames() {
		content, ok := staged[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing from snapshot", plan.ErrShapeChanged, name)
		}

		applied, err := textedit.Apply(content, p.Files[name])
		if err != nil {
			return nil, fmt.Errorf("apply %s: %w", name, err)
		}

		staged[name] = applied
	}

	next, err := newSnapshot(cur.cfg, cur.version+1, staged)
	if err != nil {
		return nil, fmt.Errorf("reparse after edit: %w", err)
	}

	w.current = next

	return next, nil
}
