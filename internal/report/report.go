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

// Package report renders analysis verdicts as user-facing diagnostics.
// Only eligible pairs produce a diagnostic; ineligibility is a suppressed
// negative, not an error.
package report

import (
	"fmt"
	"sort"

	"fillmore-labs.com/autoprop/internal/eligibility"
	"fillmore-labs.com/autoprop/internal/plan"
	"fillmore-labs.com/autoprop/internal/source"
)

// DiagnosticID identifies the promotion diagnostic.
const DiagnosticID = "use-auto-property"

// Severity grades a diagnostic.
type Severity uint8

const (
	// SeverityInfo marks an informational diagnostic.
	SeverityInfo Severity = iota
	// SeverityWarning marks a warning.
	SeverityWarning
)

// String renders the severity for output.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "info"
}

// Diagnostic is one reportable promotion opportunity, anchored at the
// field declaration site.
type Diagnostic struct {
	// ID is [DiagnosticID].
	ID string

	// File and Span locate the field's promotable unit.
	File string
	Span source.Span

	// Severity grades the diagnostic.
	Severity Severity

	// Message is the rendered description.
	Message string

	// Field and Property name the pair.
	Field, Property string
}

// Position renders the diagnostic's location as "file:line:col".
func (d Diagnostic) Position(view plan.View) string {
	content, ok := view.Content(d.File)
	if !ok {
		return d.File
	}

	return source.File{Name: d.File, Content: content}.FormatPosition(d.Span.Start)
}

// New builds the diagnostic for one eligible verdict. The span is the
// field's promotable unit, so multi-declarator statements point at the
// single demoted declarator.
func New(v eligibility.Verdict, unitSpan source.Span, severity Severity) Diagnostic {
	return Diagnostic{
		ID:       DiagnosticID,
		File:     v.Field.File,
		Span:     unitSpan,
		Severity: severity,
		Message: fmt.Sprintf("Field '%s' can be merged into auto-property '%s' (ap:%s)",
			v.Field.Name, v.Property.Name, v.Reason),
		Field:    v.Field.Name,
		Property: v.Property.Name,
	}
}

// Sort orders diagnostics by file and position for stable output.
func Sort(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].File != diags[j].File {
			return diags[i].File < diags[j].File
		}

		return diags[i].Span.Start < diags[j].Span.Start
	})
}
