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

package plan_test

import (
	"errors"
	"slices"
	"testing"

	"fillmore-labs.com/autoprop/internal/eligibility"
	"fillmore-labs.com/autoprop/internal/lang/csharp"
	. "fillmore-labs.com/autoprop/internal/plan"
	"fillmore-labs.com/autoprop/internal/project"
	"fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/testsource"
	"fillmore-labs.com/autoprop/internal/textedit"
	"fillmore-labs.com/autoprop/internal/usage"
)

// buildPlan classifies the field and constructs its promotion plan.
func buildPlan(t *testing.T, snap *project.Snapshot, typeName, fieldName string) (*Plan, error) {
	t.Helper()

	field := testsource.FieldByName(t, snap.Symbols(), typeName, fieldName)

	c := &usage.Collector{Table: snap.Symbols()}

	result, err := c.Collect(t.Context(), snap.Trees(), []*symbols.Field{field})
	if err != nil {
		t.Fatalf("Failed to collect usages: %v", err)
	}

	a := &eligibility.Analyzer{Adapter: snap.Adapter(), Version: snap.LangVersion(), Table: snap.Symbols()}
	v := a.Classify(field, result[field])

	b := &Builder{Adapter: snap.Adapter(), View: snap}

	return b.Build(v, result[field].Sites())
}

func apply(t *testing.T, snap *project.Snapshot, p *Plan, name string) string {
	t.Helper()

	content, ok := snap.Content(name)
	if !ok {
		t.Fatalf("File %s missing from snapshot", name)
	}

	applied, err := textedit.Apply(content, p.Files[name])
	if err != nil {
		t.Fatalf("Failed to apply edits to %s: %v", name, err)
	}

	return applied
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want string
	}{
		{
			name: "getter_only",
			src:  "class C { int i; int P { get { return i; } } }\n",
			want: "class C { int P { get; } }\n",
		},
		{
			name: "get_set_with_sites",
			src: `class C {
	int i;

	int P {
		get { return i; }
		set { i = value; }
	}

	void Run() {
		i = 4;
		int x = this.i;
	}
}
`,
			want: `class C {
	int P { get; set; }

	void Run() {
		P = 4;
		int x = this.P;
	}
}
`,
		},
		{
			name: "initializer_moves",
			src: `class C {
	int i = 42;

	int P {
		get { return i; }
		set { i = value; }
	}
}
`,
			want: `class C {
	int P { get; set; } = 42;
}
`,
		},
		{
			name: "multi_declarator",
			src: `class C {
	int i, j;

	int P {
		get { return i; }
		set { i = value; }
	}
}
`,
			want: `class C {
	int j;

	int P { get; set; }
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snap := testsource.Snapshot(t, csharp.Adapter{}, latest(t), map[string]string{"c.cs": tt.src})

			p, err := buildPlan(t, snap, "C", "i")
			if err != nil {
				t.Fatalf("Failed to build plan: %v", err)
			}

			if got, want := p.BaseVersion, snap.Version(); got != want {
				t.Errorf("Expected base version %d, got %d", want, got)
			}

			if got := apply(t, snap, p, "c.cs"); got != tt.want {
				t.Errorf("Expected\n%s\ngot\n%s", tt.want, got)
			}
		})
	}
}

func TestBuildCrossFile(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, csharp.Adapter{}, latest(t), map[string]string{
		"a.cs": `partial class C {
	int i;

	int P {
		get { return i; }
		set { i = value; }
	}
}
`,
		"b.cs": `partial class C {
	void Run() {
		i = 1;
	}
}
`,
	})

	p, err := buildPlan(t, snap, "C", "i")
	if err != nil {
		t.Fatalf("Failed to build plan: %v", err)
	}

	if got, want := p.FileNames(), []string{"a.cs", "b.cs"}; !slices.Equal(got, want) {
		t.Fatalf("Expected files %v, got %v", want, got)
	}

	if got, want := apply(t, snap, p, "b.cs"), `partial class C {
	void Run() {
		P = 1;
	}
}
`; got != want {
		t.Errorf("Expected\n%s\ngot\n%s", want, got)
	}
}

func TestBuildNotEligible(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, csharp.Adapter{}, latest(t), map[string]string{
		"c.cs": "class C { int i; }\n",
	})

	_, err := buildPlan(t, snap, "C", "i")
	if !errors.Is(err, ErrNotEligible) {
		t.Errorf("Expected %v, got %v", ErrNotEligible, err)
	}
}
