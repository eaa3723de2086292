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

// Package testsource provides utilities for parsing and binding source
// fragments in tests.
//
// It is designed to simplify testing of the promotion engine by handling
// the boilerplate of parsing, binding and snapshot construction. Multi-file
// fixtures use the txtar archive format.
package testsource

import (
	"testing"

	"golang.org/x/tools/txtar"

	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/project"
	"fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/syntax"
)

// Parse parses one source document with the dialect adapter, failing the
// test on a syntax error.
func Parse(tb testing.TB, adapter lang.Adapter, name, src string) *syntax.File {
	tb.Helper()

	f, err := adapter.Parse(name, src)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", name, err)
	}

	return f
}

// Bind parses and binds the documents, returning the symbol table and the
// parsed trees in lexical file order.
func Bind(tb testing.TB, adapter lang.Adapter, docs map[string]string) (*symbols.Table, []*syntax.File) {
	tb.Helper()

	snap := Snapshot(tb, adapter, lang.Latest, docs)

	return snap.Symbols(), snap.Trees()
}

// Snapshot builds a fully parsed and bound snapshot from the documents.
func Snapshot(tb testing.TB, adapter lang.Adapter, version lang.Version, docs map[string]string) *project.Snapshot {
	tb.Helper()

	snap, err := project.NewSnapshot(project.Config{Adapter: adapter, Version: version}, docs)
	if err != nil {
		tb.Fatalf("Failed to build snapshot: %v", err)
	}

	return snap
}

// Archive builds a snapshot from a txtar archive, one document per file
// entry.
func Archive(tb testing.TB, adapter lang.Adapter, version lang.Version, archive string) *project.Snapshot {
	tb.Helper()

	ar := txtar.Parse([]byte(archive))

	docs := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		docs[f.Name] = string(f.Data)
	}

	return Snapshot(tb, adapter, version, docs)
}

// FieldByName looks up a declared field, failing the test when it is absent.
func FieldByName(tb testing.TB, table *symbols.Table, typeName, fieldName string) *symbols.Field {
	tb.Helper()

	ty, ok := table.Lookup(typeName)
	if !ok {
		tb.Fatalf("Type %s not bound", typeName)
	}

	for _, f := range ty.Fields {
		if f.Name == fieldName {
			return f
		}
	}

	tb.Fatalf("Field %s.%s not bound", typeName, fieldName)

	return nil
}

// PropertyByName looks up a declared property, failing the test when it is
// absent.
func PropertyByName(tb testing.TB, table *symbols.Table, typeName, propName string) *symbols.Property {
	tb.Helper()

	ty, ok := table.Lookup(typeName)
	if !ok {
		tb.Fatalf("Type %s not bound", typeName)
	}

	for _, p := range ty.Properties {
		if p.Name == propName {
			return p
		}
	}

	tb.Fatalf("Property %s.%s not bound", typeName, propName)

	return nil
}
