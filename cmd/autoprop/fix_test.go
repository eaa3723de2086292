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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const promotableSource = `class C {
	int i;

	int P { get { return i; } }
}
`

const promotedSource = `class C {
	int P { get; }
}
`

func writeSource(t *testing.T) (dir, path string) {
	t.Helper()

	dir = t.TempDir()
	path = filepath.Join(dir, "c.cs")

	if err := os.WriteFile(path, []byte(promotableSource), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	return dir, path
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(t.Context()); err != nil {
		t.Fatalf("Failed to run %v: %v", args, err)
	}

	return out.String()
}

func TestFixCommandDiffOnly(t *testing.T) {
	dir, path := writeSource(t)

	out := runCommand(t, "fix", "--no-color", dir)

	if !strings.Contains(out, "-\tint i;") {
		t.Errorf("Expected a removal line in the diff, got\n%s", out)
	}

	if !strings.Contains(out, "+\tint P { get; }") {
		t.Errorf("Expected an insertion line in the diff, got\n%s", out)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read source: %v", err)
	}

	// without --write the source stays untouched
	if got, want := string(content), promotableSource; got != want {
		t.Errorf("Expected\n%s\ngot\n%s", want, got)
	}
}

func TestFixCommandWriteWithDiff(t *testing.T) {
	dir, path := writeSource(t)

	out := runCommand(t, "fix", "--no-color", "--write", "--diff", dir)

	if !strings.Contains(out, "+\tint P { get; }") {
		t.Errorf("Expected the diff alongside the rewrite, got\n%s", out)
	}

	if !strings.Contains(out, "fixed ") {
		t.Errorf("Expected a rewrite notice, got\n%s", out)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read source: %v", err)
	}

	if got, want := string(content), promotedSource; got != want {
		t.Errorf("Expected\n%s\ngot\n%s", want, got)
	}
}

func TestFixCommandWriteQuiet(t *testing.T) {
	dir, path := writeSource(t)

	out := runCommand(t, "fix", "--no-color", "--write", dir)

	if strings.Contains(out, "+\tint P { get; }") {
		t.Errorf("Expected no diff without --diff, got\n%s", out)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read source: %v", err)
	}

	if got, want := string(content), promotedSource; got != want {
		t.Errorf("Expected\n%s\ngot\n%s", want, got)
	}
}
