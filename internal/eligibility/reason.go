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

package eligibility

// Reason indicates whether a field/property pair can be promoted and why not.
type Reason uint8

//go:generate go tool stringer -type Reason -linecomment
const (
	// Promotable indicates the pair can be safely merged into an auto-property.
	Promotable Reason = iota // ok
	// NoTrivialDelegation indicates no unique property trivially delegates to the field.
	NoTrivialDelegation // del
	// UsedByReference indicates the field's storage location is observed somewhere.
	UsedByReference // ref
	// InitializerUnsupported indicates the field initializer cannot move to the property
	// under the active language version.
	InitializerUnsupported // ini
	// ReadOnlyPropertyUnsupported indicates the pair has no setter and the active
	// language version has no read-only auto-properties.
	ReadOnlyPropertyUnsupported // rop
	// NonTransferableDeclaration indicates the field declaration carries parts that
	// cannot be carried to a property, such as const or attributes.
	NonTransferableDeclaration // dec
)

// Eligible indicates the pair would be promoted.
func (r Reason) Eligible() bool { return r == Promotable }
