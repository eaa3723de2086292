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

// Package textedit applies span-based text edits to immutable snapshot text.
package textedit

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fillmore-labs.com/autoprop/internal/source"
)

// ErrOverlap is returned when two edits in the same file share bytes.
var ErrOverlap = errors.New("overlapping text edits")

// Edit replaces the text at Span with NewText. An empty NewText deletes the span.
type Edit struct {
	Span    source.Span
	NewText string
}

// Sort orders edits by start offset, then end offset, in place.
func Sort(edits []Edit) {
	slices.SortFunc(edits, func(a, b Edit) int {
		if a.Span.Start != b.Span.Start {
			return a.Span.Start - b.Span.Start
		}

		return a.Span.End - b.Span.End
	})
}

// Validate sorts the edits and reports whether any pair overlaps or lies
// outside the bounds of a text of length n.
func Validate(edits []Edit, n int) error {
	Sort(edits)

	prevEnd := 0

	for _, e := range edits {
		if !e.Span.Valid() || e.Span.End > n {
			return fmt.Errorf("edit %s out of bounds (len %d)", e.Span, n)
		}

		if e.Span.Start < prevEnd {
			return fmt.Errorf("%w at %s", ErrOverlap, e.Span)
		}

		prevEnd = e.Span.End
	}

	return nil
}

// Apply applies the edits to content, returning the new text.
// The edits are validated first; nothing is returned on overlap.
func Apply(content string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return content, nil
	}

	work := slices.Clone(edits)
	if err := Validate(work, len(content)); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(content))

	last := 0

	for _, e := range work {
		b.WriteString(content[last:e.Span.Start]) // ignore error
		b.WriteString(e.NewText)                  // ignore error
		last = e.Span.End
	}

	b.WriteString(content[last:]) // ignore error

	return b.String(), nil
}
