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

package a

// Malformed annotations.

//lanelift:lower
func dynamicMode(active bool) {
	for Hint(active, Mode(mode())) { // want `Hint: Mode requires a single literal string argument`
		active = false
	}
}

//lanelift:lower
func unknownOption(active bool) {
	for Hint(active, Throttle(2)) { // want `Hint: unsupported option "Throttle"`
		active = false
	}
}

//lanelift:lower
func computedExclude(x int, active bool) {
	for Hint(active, Exclude(x+1)) { // want `Hint: Exclude accepts only a literal list of variable names`
		x++
		active = x < 5
	}
}

//lanelift:lower
func dynamicIterations(active bool, n int) {
	for Hint(active, MaxIterations(n)) { // want `Hint: MaxIterations requires a single positive integer literal`
		active = false
	}
}
