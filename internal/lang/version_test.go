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

package lang_test

import (
	"testing"

	. "fillmore-labs.com/autoprop/internal/lang"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name    string
		version string
		minimum string
		want    bool
	}{
		{"latest", "latest", "14", true},
		{"empty", "", "99", true},
		{"equal", "6", "6", true},
		{"above", "7.3", "6", true},
		{"below", "5", "6", false},
		{"minor", "7.1", "7.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := ParseVersion(tt.version)
			if err != nil {
				t.Fatalf("Failed to parse %q: %v", tt.version, err)
			}

			if got := v.AtLeast(tt.minimum); got != tt.want {
				t.Errorf("Expected %q at least %q to be %t, got %t", tt.version, tt.minimum, tt.want, got)
			}
		})
	}
}

func TestParseVersionMalformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseVersion("not-a-version"); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	if got, want := Latest.String(), "latest"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got, want := MustVersion("7.3").String(), "7.3"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
