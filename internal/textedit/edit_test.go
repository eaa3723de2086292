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

package textedit_test

import (
	"errors"
	"testing"

	"fillmore-labs.com/autoprop/internal/source"
	. "fillmore-labs.com/autoprop/internal/textedit"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name  string
		text  string
		edits []Edit
		want  string
	}{
		{
			name: "replace",
			text: "hello world",
			edits: []Edit{
				{Span: source.NewSpan(0, 5), NewText: "goodbye"},
			},
			want: "goodbye world",
		},
		{
			name: "delete",
			text: "hello world",
			edits: []Edit{
				{Span: source.NewSpan(5, 11)},
			},
			want: "hello",
		},
		{
			name: "insert",
			text: "hello world",
			edits: []Edit{
				{Span: source.NewSpan(5, 5), NewText: ","},
			},
			want: "hello, world",
		},
		{
			name: "unsorted",
			text: "a b c",
			edits: []Edit{
				{Span: source.NewSpan(4, 5), NewText: "z"},
				{Span: source.NewSpan(0, 1), NewText: "x"},
			},
			want: "x b z",
		},
		{
			name:  "empty",
			text:  "unchanged",
			edits: nil,
			want:  "unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Apply(tt.text, tt.edits)
			if err != nil {
				t.Fatalf("Failed to apply: %v", err)
			}

			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	t.Parallel()

	t.Run("overlap", func(t *testing.T) {
		t.Parallel()

		_, err := Apply("hello", []Edit{
			{Span: source.NewSpan(0, 3), NewText: "a"},
			{Span: source.NewSpan(2, 4), NewText: "b"},
		})
		if !errors.Is(err, ErrOverlap) {
			t.Errorf("Expected %v, got %v", ErrOverlap, err)
		}
	})

	t.Run("out_of_bounds", func(t *testing.T) {
		t.Parallel()

		if _, err := Apply("hello", []Edit{{Span: source.NewSpan(2, 9)}}); err == nil {
			t.Error("Expected an out-of-bounds error")
		}
	})
}

func TestApplyLeavesInputSorted(t *testing.T) {
	t.Parallel()

	edits := []Edit{
		{Span: source.NewSpan(4, 5)},
		{Span: source.NewSpan(0, 1)},
	}

	if _, err := Apply("a b c", edits); err != nil {
		t.Fatalf("Failed to apply: %v", err)
	}

	// Apply clones before validating
	if edits[0].Span.Start != 4 {
		t.Error("Expected the caller's edit slice untouched")
	}
}
