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

package recursive

type Option struct{}

func Hint[T any](cond T, _ ...Option) T { return cond }

// The recursive directive argument extends validation into nested function
// literals.
//
//lanelift:lower recursive
func spawn(active bool) func() int {
	return func() int {
		x := 0
		for Hint(active) {
			if x > 3 {
				return x // want `return would escape a lowered branch`
			}

			x++
		}

		return x
	}
}

// Without the argument, nested literals keep ordinary control flow.
//
//lanelift:lower
func opaque(active bool) func() int {
	return func() int {
		x := 0
		for Hint(active) {
			x++

			break
		}

		return x
	}
}
