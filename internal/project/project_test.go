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

package project_test

import (
	"errors"
	"testing"

	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/lang/csharp"
	"fillmore-labs.com/autoprop/internal/plan"
	. "fillmore-labs.com/autoprop/internal/project"
	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/textedit"
)

func newWorkspace(t *testing.T, docs map[string]string) *Workspace {
	t.Helper()

	v, err := lang.ParseVersion("latest")
	if err != nil {
		t.Fatalf("Failed to parse version: %v", err)
	}

	snap, err := NewSnapshot(Config{Adapter: csharp.Adapter{}, Version: v}, docs)
	if err != nil {
		t.Fatalf("Failed to create snapshot: %v", err)
	}

	return NewWorkspace(snap)
}

func TestSnapshotFields(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{
		"b.cs": "class B { int x; }\n",
		"a.cs": "class A { int y; int z; }\n",
	})

	snap := ws.Snapshot()

	if got, want := snap.FileNames(), []string{"a.cs", "b.cs"}; got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected sorted names %v, got %v", want, got)
	}

	fields := snap.Fields()
	if got, want := len(fields), 3; got != want {
		t.Fatalf("Expected %d fields, got %d", want, got)
	}

	// types by name, fields in declaration order within a type
	names := []string{fields[0].Name, fields[1].Name, fields[2].Name}
	if want := []string{"y", "z", "x"}; names[0] != want[0] || names[1] != want[1] || names[2] != want[2] {
		t.Errorf("Expected field order %v, got %v", want, names)
	}
}

func TestCommit(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{"c.cs": "class C { int i; }\n"})
	base := ws.Snapshot()

	p := &plan.Plan{
		BaseVersion: base.Version(),
		Files: map[string][]textedit.Edit{
			"c.cs": {{Span: source.NewSpan(10, 17), NewText: ""}},
		},
	}

	next, err := ws.Commit(p)
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	if got, want := next.Version(), base.Version()+1; got != want {
		t.Errorf("Expected version %d, got %d", want, got)
	}

	content, ok := next.Content("c.cs")
	if !ok {
		t.Fatal("File c.cs missing from committed snapshot")
	}

	if got, want := content, "class C { }\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := ws.Snapshot(); got != next {
		t.Error("Expected workspace to publish the committed snapshot")
	}

	// the base snapshot stays immutable
	if content, _ := base.Content("c.cs"); content != "class C { int i; }\n" {
		t.Errorf("Expected base snapshot unchanged, got %q", content)
	}
}

func TestCommitStale(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{"c.cs": "class C { int i; }\n"})
	base := ws.Snapshot()

	stale := &plan.Plan{
		BaseVersion: base.Version() - 1,
		Files: map[string][]textedit.Edit{
			"c.cs": {{Span: source.NewSpan(10, 17), NewText: ""}},
		},
	}

	if _, err := ws.Commit(stale); !errors.Is(err, ErrStaleSnapshot) {
		t.Errorf("Expected %v, got %v", ErrStaleSnapshot, err)
	}

	if got := ws.Snapshot(); got != base {
		t.Error("Expected workspace snapshot unchanged after stale commit")
	}
}

func TestCommitFailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, map[string]string{"c.cs": "class C { int i; }\n"})
	base := ws.Snapshot()

	bad := &plan.Plan{
		BaseVersion: base.Version(),
		Files: map[string][]textedit.Edit{
			"c.cs": {{Span: source.NewSpan(10, 1000), NewText: ""}},
		},
	}

	if _, err := ws.Commit(bad); err == nil {
		t.Fatal("Expected out-of-range edit to fail")
	}

	if got := ws.Snapshot(); got != base {
		t.Error("Expected workspace snapshot unchanged after failed commit")
	}
}
