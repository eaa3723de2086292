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

package vb_test

import (
	"testing"

	. "fillmore-labs.com/autoprop/internal/lang/vb"
	"fillmore-labs.com/autoprop/internal/syntax"
)

func parseFile(t *testing.T, src string) *syntax.File {
	t.Helper()

	f, err := Adapter{}.Parse("test.vb", src)
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

	src := `Imports System

Namespace N
    Public Partial Class C
        Inherits Base

        Private _i As Integer = 42
        Private _a, _b As Integer

        Public Property P As Integer
            Get
                Return _i
            End Get
            Private Set(value As Integer)
                _i = value
            End Set
        End Property

        Public Shared Sub M(ByRef x As Integer, ByVal y As Integer)
            x = y
        End Sub
    End Class
End Namespace
`

	f := parseFile(t, src)
	cls := classByName(t, f, "C")

	if !cls.Partial {
		t.Error("Expected C to be partial")
	}

	if got, want := len(cls.Members), 4; got != want {
		t.Fatalf("Expected %d members, got %d", want, got)
	}

	field, ok := cls.Members[0].(*syntax.FieldDecl)
	if !ok {
		t.Fatalf("Expected field, got %T", cls.Members[0])
	}

	if field.Declarators[0].Init == nil {
		t.Error("Expected initializer on _i")
	}

	multi, ok := cls.Members[1].(*syntax.FieldDecl)
	if !ok {
		t.Fatalf("Expected field, got %T", cls.Members[1])
	}

	if got, want := len(multi.Declarators), 2; got != want {
		t.Fatalf("Expected %d declarators, got %d", want, got)
	}

	prop, ok := cls.Members[2].(*syntax.PropertyDecl)
	if !ok {
		t.Fatalf("Expected property, got %T", cls.Members[2])
	}

	if prop.Auto {
		t.Error("Expected P not to be an auto-property")
	}

	setter := prop.Setter()
	if setter == nil {
		t.Fatal("Expected P to have a setter")
	}

	if got, want := setter.ValueName, "value"; got != want {
		t.Errorf("Expected value parameter %q, got %q", want, got)
	}

	if !setter.Modifiers.Has("Private") {
		t.Error("Expected setter to be private")
	}

	method, ok := cls.Members[3].(*syntax.MethodDecl)
	if !ok {
		t.Fatalf("Expected method, got %T", cls.Members[3])
	}

	if !method.Params[0].ByRef || method.Params[1].ByRef {
		t.Error("Expected only x to be by-ref")
	}
}

func TestParseAutoProperty(t *testing.T) {
	t.Parallel()

	src := `Class C
    Public Property P As Integer
    Public ReadOnly Property Q As Integer = 3
    Private _i As Integer
End Class
`

	f := parseFile(t, src)
	cls := classByName(t, f, "C")

	if got, want := len(cls.Members), 3; got != want {
		t.Fatalf("Expected %d members, got %d", want, got)
	}

	for i := range 2 {
		prop, ok := cls.Members[i].(*syntax.PropertyDecl)
		if !ok {
			t.Fatalf("Expected property, got %T", cls.Members[i])
		}

		if !prop.Auto {
			t.Errorf("Expected %s to be an auto-property", prop.Name.Name)
		}
	}
}

func TestParseStatements(t *testing.T) {
	t.Parallel()

	src := `Class C
    Private _i As Integer

    Function F(n As Integer) As Integer
        Dim x = _i
        If x = 0 Then
            _i = 1
        ElseIf x > 1 Then
            _i += n
        Else
            _i = n
        End If
        While _i < 10
            M(_i)
        End While
        If n > 0 Then Return n
        Return _i
    End Function

    Sub M(ByRef v As Integer)
        v = 0
    End Sub
End Class
`

	f := parseFile(t, src)
	cls := classByName(t, f, "C")

	method, ok := cls.Members[1].(*syntax.MethodDecl)
	if !ok {
		t.Fatalf("Expected method, got %T", cls.Members[1])
	}

	if method.ReturnType == nil {
		t.Error("Expected function return type")
	}

	stmts := method.Body.Stmts
	if got, want := len(stmts), 5; got != want {
		t.Fatalf("Expected %d statements, got %d", want, got)
	}

	if _, ok := stmts[0].(*syntax.LocalDecl); !ok {
		t.Errorf("Expected local declaration, got %T", stmts[0])
	}

	ifStmt, ok := stmts[1].(*syntax.IfStmt)
	if !ok {
		t.Fatalf("Expected if statement, got %T", stmts[1])
	}

	elseIf, ok := ifStmt.Else.(*syntax.IfStmt)
	if !ok {
		t.Fatalf("Expected else-if chain, got %T", ifStmt.Else)
	}

	if elseIf.Else == nil {
		t.Error("Expected final else block")
	}

	if _, ok := stmts[2].(*syntax.WhileStmt); !ok {
		t.Errorf("Expected while statement, got %T", stmts[2])
	}

	singleLine, ok := stmts[3].(*syntax.IfStmt)
	if !ok {
		t.Fatalf("Expected single-line if, got %T", stmts[3])
	}

	if _, ok := singleLine.Then.Stmts[0].(*syntax.ReturnStmt); !ok {
		t.Errorf("Expected return in single-line if, got %T", singleLine.Then.Stmts[0])
	}
}

func TestParseLineContinuation(t *testing.T) {
	t.Parallel()

	src := `Class C
    Private _i As _
        Integer
End Class
`

	f := parseFile(t, src)
	cls := classByName(t, f, "C")

	field, ok := cls.Members[0].(*syntax.FieldDecl)
	if !ok {
		t.Fatalf("Expected field, got %T", cls.Members[0])
	}

	if got, want := field.Type.Name, "Integer"; got != want {
		t.Errorf("Expected type %q, got %q", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
	}{
		{"unterminated_class", "Class C\n"},
		{"missing_as", "Class C\n Private _i\nEnd Class\n"},
		{"multi_init", "Class C\n Private _a, _b As Integer = 1\nEnd Class\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Adapter{}).Parse("test.vb", tt.src); err == nil {
				t.Errorf("Expected parse error for %q", tt.src)
			}
		})
	}
}
