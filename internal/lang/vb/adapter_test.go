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

	"fillmore-labs.com/autoprop/internal/lang"
	. "fillmore-labs.com/autoprop/internal/lang/vb"
	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/syntax"
	"fillmore-labs.com/autoprop/internal/textedit"
)

func propertyOf(t *testing.T, src string) *syntax.PropertyDecl {
	t.Helper()

	f := parseFile(t, src)

	var prop *syntax.PropertyDecl

	syntax.Inspect(f, func(n syntax.Node) bool {
		if p, ok := n.(*syntax.PropertyDecl); ok {
			prop = p
		}

		return true
	})

	if prop == nil {
		t.Fatalf("No property in %q", src)
	}

	return prop
}

func TestTrivialDelegation(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name      string
		src       string
		delegated bool
		hasSetter bool
	}{
		{
			name: "getter_only",
			src: `Class C
    Private _i As Integer
    Property P As Integer
        Get
            Return _i
        End Get
    End Property
End Class
`,
			delegated: true,
		},
		{
			name: "get_set",
			src: `Class C
    Private _i As Integer
    Property P As Integer
        Get
            Return _i
        End Get
        Set(value As Integer)
            _i = value
        End Set
    End Property
End Class
`,
			delegated: true,
			hasSetter: true,
		},
		{
			name: "qualified",
			src: `Class C
    Private _i As Integer
    Property P As Integer
        Get
            Return Me._i
        End Get
    End Property
End Class
`,
			delegated: true,
		},
		{
			name: "renamed_value",
			src: `Class C
    Private _i As Integer
    Property P As Integer
        Get
            Return _i
        End Get
        Set(v As Integer)
            _i = v
        End Set
    End Property
End Class
`,
			delegated: true,
			hasSetter: true,
		},
		{
			name: "auto",
			src: `Class C
    Property P As Integer
End Class
`,
			delegated: false,
		},
		{
			name: "computed",
			src: `Class C
    Private _i As Integer
    Property P As Integer
        Get
            Return _i + 1
        End Get
    End Property
End Class
`,
			delegated: false,
		},
		{
			name: "two_statements",
			src: `Class C
    Private _i As Integer
    Property P As Integer
        Get
            M()
            Return _i
        End Get
    End Property

    Sub M()
    End Sub
End Class
`,
			delegated: false,
		},
		{
			name: "setter_not_value",
			src: `Class C
    Private _i As Integer
    Property P As Integer
        Get
            Return _i
        End Get
        Set(value As Integer)
            _i = 0
        End Set
    End Property
End Class
`,
			delegated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prop := propertyOf(t, tt.src)

			d, ok := Adapter{}.TrivialDelegation(prop)
			if ok != tt.delegated {
				t.Fatalf("Expected delegated %t, got %t", tt.delegated, ok)
			}

			if !ok {
				return
			}

			if got := d.SetterRef != nil; got != tt.hasSetter {
				t.Errorf("Expected setter delegation %t, got %t", tt.hasSetter, got)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		version     string
		readOnly    bool
		initializer bool
	}{
		{"latest", true, true},
		{"16", true, true},
		{"14", true, true},
		{"12", false, true},
		{"10", false, true},
		{"9", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			v, err := lang.ParseVersion(tt.version)
			if err != nil {
				t.Fatalf("Failed to parse version %q: %v", tt.version, err)
			}

			if got := (Adapter{}).SupportsReadOnlyProperties(v); got != tt.readOnly {
				t.Errorf("Expected read-only support %t at %s, got %t", tt.readOnly, tt.version, got)
			}

			if got := (Adapter{}).SupportsPropertyInitializer(v); got != tt.initializer {
				t.Errorf("Expected initializer support %t at %s, got %t", tt.initializer, tt.version, got)
			}
		})
	}
}

func TestAutoPropertyEdit(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name        string
		src         string
		hasSetter   bool
		initializer string
		want        string
	}{
		{
			name: "getter_only",
			src: `Class C
    Private _i As Integer
    Public Property P As Integer
        Get
            Return _i
        End Get
    End Property
End Class
`,
			want: "Public ReadOnly Property P As Integer",
		},
		{
			name: "get_set",
			src: `Class C
    Private _i As Integer
    Public Property P As Integer
        Get
            Return _i
        End Get
        Set(value As Integer)
            _i = value
        End Set
    End Property
End Class
`,
			hasSetter: true,
			want:      "Public Property P As Integer",
		},
		{
			name: "initializer",
			src: `Class C
    Private _i As Integer = 42
    Public Property P As Integer
        Get
            Return _i
        End Get
        Set(value As Integer)
            _i = value
        End Set
    End Property
End Class
`,
			hasSetter:   true,
			initializer: "42",
			want:        "Public Property P As Integer = 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prop := propertyOf(t, tt.src)

			edit, err := (Adapter{}).AutoPropertyEdit(source.File{Name: "test.vb", Content: tt.src}, prop, tt.hasSetter, tt.initializer)
			if err != nil {
				t.Fatalf("Failed to build edit: %v", err)
			}

			if got, want := edit.Span, prop.Span(); got != want {
				t.Errorf("Expected edit span %v, got %v", want, got)
			}

			if got := edit.NewText; got != tt.want {
				t.Errorf("Expected replacement %q, got %q", tt.want, got)
			}

			if _, err := textedit.Apply(tt.src, []textedit.Edit{edit}); err != nil {
				t.Errorf("Failed to apply edit: %v", err)
			}
		})
	}
}
