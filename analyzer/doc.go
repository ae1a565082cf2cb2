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

// Package analyzer implements the lanelift static analysis pass.
//
// # Overview
//
// LaneLift rewrites the if statements and while-form for loops of marked
// functions into closures dispatched through lane.IfStmt and lane.WhileLoop,
// so divergent per-lane control flow can be traced and blended at run time.
// The code generator in cmd/lanelift performs the rewrite at build time;
// this analyzer runs the same analysis without mutating any code and
// reports every construct the generator would refuse.
//
// A function is marked with a directive comment:
//
//	//lanelift:lower
//	func step(x Wide, n int) Wide {
//	    for lane.Hint(x.AnyLess(n)) {
//	        x = x.Add(1)
//	    }
//	    return x
//	}
//
// Reported problems include malformed lane.Hint annotations, state
// variables whose types cannot be resolved, and return, break, continue or
// goto statements that would jump out of a non-scalar lowered region.
//
// Escapes are only rejected inside lowered constructs. A condition that is
// uniform across lanes can opt out of lowering and keep ordinary control
// flow, early exits included:
//
//	for lane.Hint(retries < limit, lane.Mode("scalar")) {
//	    if lane.Hint(done, lane.Mode("scalar")) {
//	        break
//	    }
//	    retries++
//	}
//
// # Flags
//
//   - generated: validate marked functions in generated files
//   - recursive: validate nested function literals as independent roots
package analyzer
