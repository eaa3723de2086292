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

// Package plan turns an eligible verdict into an atomic multi-file edit
// plan: demote the field, promote the property to an auto-property and
// rewrite every remaining usage site. Plans are pure values bound to the
// snapshot version they were computed from.
package plan

import (
	"errors"
	"fmt"
	"sort"

	"fillmore-labs.com/autoprop/internal/source"
	"fillmore-labs.com/autoprop/internal/textedit"
)

// View is the read surface of one immutable snapshot.
type View interface {
	// Version is the snapshot's commit sequence number.
	Version() int64

	// Content returns a document's text.
	Content(name string) (string, bool)
}

// Plan is one transaction's worth of edits, grouped per file.
type Plan struct {
	// BaseVersion is the snapshot version the plan was computed against.
	BaseVersion int64

	// Files maps document names to their edit batches.
	Files map[string][]textedit.Edit
}

// FileNames lists the touched documents in lexical order.
func (p *Plan) FileNames() []string {
	names := make([]string, 0, len(p.Files))
	for name := range p.Files {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ErrShapeChanged is returned when the snapshot no longer matches the
// verdict the plan is built from.
var ErrShapeChanged = errors.New("plan: syntax shape changed")

// ErrConflict is returned when merged plans edit overlapping regions.
var ErrConflict = errors.New("plan: edit conflict")

func (p *Plan) add(file string, edit textedit.Edit) {
	if p.Files == nil {
		p.Files = make(map[string][]textedit.Edit)
	}

	p.Files[file] = append(p.Files[file], edit)
}

// validate sorts every batch and rejects out-of-bounds or overlapping edits.
func (p *Plan) validate(view View) error {
	for name, edits := range p.Files {
		content, ok := view.Content(name)
		if !ok {
			return fmt.Errorf("%w: %s missing from snapshot", ErrShapeChanged, name)
		}

		textedit.Sort(edits)

		if err := textedit.Validate(edits, len(content)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrShapeChanged, name, err)
		}
	}

	return nil
}

// Merge combines per-field plans into one fix-all transaction. All plans
// must share a base version; batches touching the same file are composed
// and must not overlap.
func Merge(view View, plans []*Plan) (*Plan, error) {
	if len(plans) == 0 {
		return nil, ErrShapeChanged
	}

	merged := &Plan{BaseVersion: plans[0].BaseVersion}

	for _, p := range plans {
		if p.BaseVersion != merged.BaseVersion {
			return nil, fmt.Errorf("%w: mixed base versions %d and %d",
				ErrConflict, merged.BaseVersion, p.BaseVersion)
		}

		for name, edits := range p.Files {
			for _, e := range edits {
				merged.add(name, e)
			}
		}
	}

	for name, edits := range merged.Files {
		textedit.Sort(edits)

		for i := 1; i < len(edits); i++ {
			if edits[i-1].Span.Overlaps(edits[i].Span) {
				return nil, fmt.Errorf("%w: %s: %v overlaps %v",
					ErrConflict, name, edits[i-1].Span, edits[i].Span)
			}
		}
	}

	if err := merged.validate(view); err != nil {
		return nil, err
	}

	return merged, nil
}

// removalSpan widens a removed declaration's span to clean whitespace: a
// statement alone on its line takes the indentation, the line terminator
// and any following blank lines with it, otherwise only the trailing
// blank run is absorbed.
func removalSpan(content string, span source.Span) source.Span {
	lineStart := span.Start
	for lineStart > 0 && blank(content[lineStart-1]) {
		lineStart--
	}

	end := span.End
	for end < len(content) && blank(content[end]) {
		end++
	}

	soleOnLine := (lineStart == 0 || content[lineStart-1] == '\n') &&
		(end == len(content) || content[end] == '\n' || content[end] == '\r')

	if soleOnLine {
		end = consumeLineEnd(content, end)

		for end < len(content) {
			next := end
			for next < len(content) && blank(content[next]) {
				next++
			}

			if next == len(content) || (content[next] != '\n' && content[next] != '\r') {
				break
			}

			end = consumeLineEnd(content, next)
		}

		return source.NewSpan(lineStart, end)
	}

	return source.NewSpan(span.Start, end)
}

func consumeLineEnd(content string, end int) int {
	if end < len(content) && content[end] == '\r' {
		end++
	}
	if end < len(content) && content[end] == '\n' {
		end++
	}

	return end
}

func blank(c byte) bool { return c == ' ' || c == '\t' }
