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

package analyzer

// State tracks one candidate through the pass. Ineligible and Committed
// are terminal.
type State uint8

//go:generate go tool stringer -type State -linecomment
const (
	// Discovered is the initial state of every enumerated field.
	Discovered State = iota // dis
	// AnalyzedEligible indicates a positive verdict awaiting rewrite.
	AnalyzedEligible // eli
	// AnalyzedIneligible indicates a classified negative verdict.
	AnalyzedIneligible // ine
	// Rewritten indicates an edit plan exists for the candidate.
	Rewritten // rew
	// Committed indicates the candidate's plan was applied.
	Committed // com
)
