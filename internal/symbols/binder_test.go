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

package symbols_test

import (
	"testing"

	"fillmore-labs.com/autoprop/internal/lang/csharp"
	. "fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/testsource"
)

func TestBindMembers(t *testing.T) {
	t.Parallel()

	table, _ := testsource.Bind(t, csharp.Adapter{}, map[string]string{
		"c.cs": `class C {
	const int Max = 10;
	static int count;
	int i;

	int P { get { return i; } }

	void M(int x) { i = x; }
}
`,
	})

	ty, ok := table.Lookup("C")
	if !ok {
		t.Fatal("Type C not found")
	}

	if got, want := len(ty.Fields), 3; got != want {
		t.Fatalf("Expected %d fields, got %d", want, got)
	}

	fields := make(map[string]*Field, len(ty.Fields))
	for _, f := range ty.Fields {
		fields[f.Name] = f
	}

	if f := fields["Max"]; !f.Const || !f.Static {
		t.Error("Expected Max to be a static const")
	}

	if f := fields["count"]; !f.Static {
		t.Error("Expected count to be static")
	}

	if f := fields["i"]; f.Static || f.Const {
		t.Error("Expected i to be an instance field")
	}

	if got, want := len(ty.Properties), 1; got != want {
		t.Fatalf("Expected %d properties, got %d", want, got)
	}

	if got, want := len(ty.Methods), 1; got != want {
		t.Fatalf("Expected %d methods, got %d", want, got)
	}
}

func TestBindPartialType(t *testing.T) {
	t.Parallel()

	table, _ := testsource.Bind(t, csharp.Adapter{}, map[string]string{
		"a.cs": `partial class C {
	int i;
}
`,
		"b.cs": `partial class C {
	int P { get { return i; } }
}
`,
	})

	ty, ok := table.Lookup("C")
	if !ok {
		t.Fatal("Type C not found")
	}

	if got, want := len(ty.Fragments), 2; got != want {
		t.Errorf("Expected %d fragments, got %d", want, got)
	}

	field := testsource.FieldByName(t, table, "C", "i")
	if got, want := field.File, "a.cs"; got != want {
		t.Errorf("Expected field file %q, got %q", want, got)
	}

	prop := testsource.PropertyByName(t, table, "C", "P")
	if got, want := prop.File, "b.cs"; got != want {
		t.Errorf("Expected property file %q, got %q", want, got)
	}

	if field.Declaring != prop.Declaring {
		t.Error("Expected field and property to share a declaring type")
	}
}

func TestResolveReferences(t *testing.T) {
	t.Parallel()

	table, trees := testsource.Bind(t, csharp.Adapter{}, map[string]string{
		"c.cs": `class C {
	int i;

	int P { get { return i; } }

	void M() {
		int i = 0;
		this.i = i;
	}
}
`,
	})

	field := testsource.FieldByName(t, table, "C", "i")

	var fieldUses, localUses int

	syntax.Inspect(trees[0], func(n syntax.Node) bool {
		id, ok := n.(*syntax.Ident)
		if !ok || id.Name != "i" {
			return true
		}

		sym, ok := table.Use(id)
		if !ok {
			return true
		}

		switch s := sym.(type) {
		case *Field:
			if s == field {
				fieldUses++
			}

		case *Local:
			localUses++
		}

		return true
	})

	// the getter reference and the qualified this.i write
	if got, want := fieldUses, 2; got != want {
		t.Errorf("Expected %d field uses, got %d", want, got)
	}

	// the local shadows the unqualified read on the assignment's right side
	if got, want := localUses, 1; got != want {
		t.Errorf("Expected %d local uses, got %d", want, got)
	}
}

func TestCallCandidates(t *testing.T) {
	t.Parallel()

	table, trees := testsource.Bind(t, csharp.Adapter{}, map[string]string{
		"c.cs": `class C {
	int i;

	void M(int x) { }

	void M(ref int x) { }

	void N() {
		M(i);
	}
}
`,
	})

	var call *syntax.CallExpr

	syntax.Inspect(trees[0], func(n syntax.Node) bool {
		if c, ok := n.(*syntax.CallExpr); ok {
			call = c
		}

		return true
	})

	if call == nil {
		t.Fatal("No call expression found")
	}

	candidates := table.CallCandidates(call)
	if got, want := len(candidates), 2; got != want {
		t.Fatalf("Expected %d call candidates, got %d", want, got)
	}

	var byRef bool

	for _, m := range candidates {
		if m.ByRefParam(0) {
			byRef = true
		}
	}

	if !byRef {
		t.Error("Expected one overload to take its first parameter by reference")
	}
}
