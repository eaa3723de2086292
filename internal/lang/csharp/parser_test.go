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

package csharp_test

import (
	"testing"

	. "fillmore-labs.com/autoprop/internal/lang/csharp"
	"fillmore-labs.com/autoprop/internal/syntax"
)

func parseFile(t *testing.T, src string) *syntax.File {
	t.Helper()

	f, err := Adapter{}.Parse("test.cs", src)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", src, err)
	}

	return f
}

func classByName(t *testing.T, f *syntax.File, name string) *syntax.ClassDecl {
	t.Helper()

	for _, d := range f.Decls {
		cls, ok := d.(*syntax.ClassDecl)
		if ok && cls.Name.Name == name {
			return cls
		}
	}

	t.Fatalf("Class %s not found", name)

	return nil
}

func TestParseClassMembers(t *testing.T) {
	t.Parallel()

	src := `using System;

namespace N {
    [Serializable]
    public partial class C : Base {
        private int i = 42, j;
        public int P { get { return i; } private set { i = value; } }
        public int Q => j;
        public static void M(ref int x, out int y) { y = x; }
    }
}`

	f := parseFile(t, src)
	cls := classByName(t, f, "C")

	if !cls.Partial {
		t.Error("Expected C to be partial")
	}

	if got, want := len(cls.Attrs), 1; got != want {
		t.Errorf("Expected %d attribute lists, got %d", want, got)
	}

	if got, want := len(cls.Members), 4; got != want {
		t.Fatalf("Expected %d members, got %d", want, got)
	}

	field, ok := cls.Members[0].(*syntax.FieldDecl)
	if !ok {
		t.Fatalf("Expected field, got %T", cls.Members[0])
	}

	if got, want := len(field.Declarators), 2; got != want {
		t.Fatalf("Expected %d declarators, got %d", want, got)
	}

	if field.Declarators[0].Init == nil || field.Declarators[1].Init != nil {
		t.Error("Expected initializer on i only")
	}

	prop, ok := cls.Members[1].(*syntax.PropertyDecl)
	if !ok {
		t.Fatalf("Expected property, got %T", cls.Members[1])
	}

	if prop.Auto {
		t.Error("Expected P not to be an auto-property")
	}

	if prop.Getter() == nil || prop.Setter() == nil {
		t.Fatal("Expected P to have both accessors")
	}

	if got, want := len(prop.Setter().Modifiers), 1; got != want {
		t.Errorf("Expected %d setter modifiers, got %d", want, got)
	}

	arrow, ok := cls.Members[2].(*syntax.PropertyDecl)
	if !ok {
		t.Fatalf("Expected property, got %T", cls.Members[2])
	}

	if arrow.Getter() == nil || arrow.Setter() != nil {
		t.Error("Expected Q to be getter-only")
	}

	method, ok := cls.Members[3].(*syntax.MethodDecl)
	if !ok {
		t.Fatalf("Expected method, got %T", cls.Members[3])
	}

	if !method.Params[0].ByRef || !method.Params[1].ByRef {
		t.Error("Expected both parameters to be by-ref")
	}
}

func TestParseAutoProperty(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		auto bool
	}{
		{"auto", `class C { public int P { get; set; } }`, true},
		{"auto_init", `class C { public int P { get; } = 3; }`, true},
		{"explicit", `class C { int i; int P { get { return i; } } }`, false},
		{"expression", `class C { int i; int P => i; }`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := parseFile(t, tt.src)
			cls := classByName(t, f, "C")

			var prop *syntax.PropertyDecl

			for _, m := range cls.Members {
				if p, ok := m.(*syntax.PropertyDecl); ok {
					prop = p
				}
			}

			if prop == nil {
				t.Fatal("Property not parsed")
			}

			if got, want := prop.Auto, tt.auto; got != want {
				t.Errorf("Expected auto=%v, got %v", want, got)
			}
		})
	}
}

func TestParseAccessorsSpan(t *testing.T) {
	t.Parallel()

	src := `class C { int i; int P { get { return i; } } }`

	f := parseFile(t, src)
	cls := classByName(t, f, "C")

	prop, ok := cls.Members[1].(*syntax.PropertyDecl)
	if !ok {
		t.Fatalf("Expected property, got %T", cls.Members[1])
	}

	span := prop.AccessorsSpan
	if got, want := src[span.Start:span.End], "{ get { return i; } }"; got != want {
		t.Errorf("Expected accessors %q, got %q", want, got)
	}
}

func TestParseStatements(t *testing.T) {
	t.Parallel()

	src := `class C {
    int i;
    void M(int n) {
        var x = i;
        if (x == 0) { i = 1; } else if (x > 1) { i += n; } else { i--; }
        while (i < 10) {
            N(ref i);
        }
        return;
    }
    void N(ref int v) { v = 0; }
}`

	f := parseFile(t, src)
	cls := classByName(t, f, "C")

	method, ok := cls.Members[1].(*syntax.MethodDecl)
	if !ok {
		t.Fatalf("Expected method, got %T", cls.Members[1])
	}

	stmts := method.Body.Stmts
	if got, want := len(stmts), 4; got != want {
		t.Fatalf("Expected %d statements, got %d", want, got)
	}

	if _, ok := stmts[0].(*syntax.LocalDecl); !ok {
		t.Errorf("Expected local declaration, got %T", stmts[0])
	}

	ifStmt, ok := stmts[1].(*syntax.IfStmt)
	if !ok {
		t.Fatalf("Expected if statement, got %T", stmts[1])
	}

	if _, ok := ifStmt.Else.(*syntax.IfStmt); !ok {
		t.Errorf("Expected else-if chain, got %T", ifStmt.Else)
	}

	whileStmt, ok := stmts[2].(*syntax.WhileStmt)
	if !ok {
		t.Fatalf("Expected while statement, got %T", stmts[2])
	}

	callStmt, ok := whileStmt.Body.Stmts[0].(*syntax.ExprStmt)
	if !ok {
		t.Fatalf("Expected call statement, got %T", whileStmt.Body.Stmts[0])
	}

	call, ok := callStmt.X.(*syntax.CallExpr)
	if !ok {
		t.Fatalf("Expected call, got %T", callStmt.X)
	}

	if got, want := call.Args[0].Mode, syntax.RefRef; got != want {
		t.Errorf("Expected argument mode %v, got %v", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
	}{
		{"unterminated_class", `class C {`},
		{"missing_semicolon", `class C { int i }`},
		{"bad_accessor", `class C { int P { fetch; } }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Adapter{}).Parse("test.cs", tt.src); err == nil {
				t.Errorf("Expected parse error for %q", tt.src)
			}
		})
	}
}
