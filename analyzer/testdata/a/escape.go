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

// Control flow that cannot cross a closure boundary.

//lanelift:lower
func earlyReturn(x int, active bool) int {
	for Hint(active) {
		if x > 10 {
			return x // want `return would escape a lowered branch`
		}

		x++
		active = x < 20
	}

	return x
}

//lanelift:lower
func loopBreak(x int, active bool) int {
	for Hint(active) {
		x++

		break // want `break would escape a lowered loop`
	}

	return x
}

//lanelift:lower
func loopContinue(x int, active bool) int {
	for Hint(active) {
		continue // want `continue would escape a lowered loop`
	}

	return x
}

//lanelift:lower
func labeledBreak(x int, active bool) int {
outer:
	for {
		for Hint(active) {
			break outer // want `labeled break would escape a lowered loop`
		}
	}

	return x
}

//lanelift:lower
func branchReturn(x int) int {
	if x < 0 {
		return 0 // want `return would escape a lowered branch`
	}

	return x
}
