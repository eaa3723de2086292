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

// Package analyzer coordinates the auto-property promotion pass.
//
// # Overview
//
// Autoprop detects backing fields whose property does nothing but delegate
// to them and merges the pair into a compiler-synthesized auto-property,
// rewriting every reference.
//
// # Example
//
// Before:
//
//	class C {
//	    int i;
//	    int P { get { return i; } set { i = value; } }
//	    void M() { i = 4; }
//	}
//
// After applying the fix:
//
//	class C {
//	    int P { get; set; }
//	    void M() { P = 4; }
//	}
//
// # Pipeline
//
// One pass runs against an immutable project snapshot:
//
//   - discover field declarations, including fragments of partial types
//   - collect every reference site concurrently and classify its usage
//   - classify each field/property pair, yielding a verdict with a reason
//   - on request, plan and commit the edits as one atomic transaction
//
// Ineligible fields are negative verdicts, not errors; per-field failures
// degrade to "no diagnostic" and never abort the pass.
package analyzer
