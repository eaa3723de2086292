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

package source

import (
	"fmt"
	"strings"
)

// File is one immutable source document of a snapshot.
type File struct {
	// Name identifies the file within its snapshot, typically a relative path.
	Name string

	// Content is the full file text.
	Content string
}

// Slice returns the text covered by the span.
// Spans outside the file bounds are clamped.
func (f File) Slice(s Span) string {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}

	if end > len(f.Content) {
		end = len(f.Content)
	}

	if start >= end {
		return ""
	}

	return f.Content[start:end]
}

// Position converts a byte offset into a 1-based line and column.
func (f File) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}

	if offset > len(f.Content) {
		offset = len(f.Content)
	}

	prefix := f.Content[:offset]
	line = strings.Count(prefix, "\n") + 1

	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		column = offset - i
	} else {
		column = offset + 1
	}

	return line, column
}

// FormatPosition renders "name:line:column" for the given offset.
func (f File) FormatPosition(offset int) string {
	line, column := f.Position(offset)

	return fmt.Sprintf("%s:%d:%d", f.Name, line, column)
}
