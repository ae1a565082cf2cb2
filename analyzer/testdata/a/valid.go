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

// Functions that lower cleanly. None of these produce diagnostics.

//lanelift:lower
func countdown(x int, active bool) int {
	for Hint(active) {
		x--
		active = x > 0
	}

	return x
}

//lanelift:lower
func clamp(x, limit int) int {
	if x > limit {
		x = limit
	} else {
		x++
	}

	return x
}

//lanelift:lower
func scalarLoop(n int) int {
	total := 0
	for Hint(n > 0, Mode("scalar")) {
		if Hint(n == 7, Mode("scalar")) {
			break
		}

		total += n
		n--
	}

	return total
}

//lanelift:lower
func annotated(x, y int, active bool) int {
	for Hint(active, Label("inner"), MaxIterations(64), Exclude(y)) {
		x += y
		active = x < 100
	}

	return x
}

// A break bound to a switch stays inside the lowered loop body.
//
//lanelift:lower
func switchBreak(x int, active bool) int {
	for Hint(active) {
		switch {
		case x > 5:
			break
		default:
			x++
		}

		active = x < 10
	}

	return x
}

// Unmarked functions are ignored entirely.
func ignored(x int) int {
	for x > 0 {
		if x == 3 {
			return x
		}

		x--
	}

	return x
}
