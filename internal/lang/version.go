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

package lang

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is one dialect's language version, e.g. "6", "7.3" or "latest".
// The zero value and "latest" mean the newest version the dialect knows.
type Version struct {
	v *goversion.Version
}

// Latest is the newest language version.
var Latest = Version{}

// ParseVersion parses a version string. Empty and "latest" yield [Latest].
func ParseVersion(s string) (Version, error) {
	if s == "" || s == "latest" {
		return Latest, nil
	}

	v, err := goversion.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("language version %q: %w", s, err)
	}

	return Version{v: v}, nil
}

// MustVersion parses a version string, panicking on malformed input.
// Intended for constants and tests.
func MustVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}

	return v
}

// AtLeast reports whether the version is at least the given minimum.
func (v Version) AtLeast(minimum string) bool {
	if v.v == nil {
		return true
	}

	m, err := goversion.NewVersion(minimum)
	if err != nil {
		return false
	}

	return v.v.GreaterThanOrEqual(m)
}

// String renders the version, "latest" for the zero value.
func (v Version) String() string {
	if v.v == nil {
		return "latest"
	}

	return v.v.Original()
}
