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

// Package config holds the behavioral configuration of the lanelift pass.
package config

// Flags represents behavior options for the lowering pass.
type Flags uint8

const (
	// IncludeGenerated specifies whether generated files are analyzed.
	IncludeGenerated Flags = 1 << iota

	// Recursive specifies whether function literals nested inside a marked
	// function are lowered as independent roots.
	Recursive

	// PrintAST dumps the syntax tree of a function before and after the
	// transformation.
	PrintAST

	// PrintCode prints the formatted source of a function before and after
	// the transformation.
	PrintCode
)

// Behavior is the flag set consulted by the pass.
type Behavior = BitMask[Flags]

// DefaultBehavior returns the default configuration: nothing enabled.
func DefaultBehavior() Behavior {
	return NewBitMask[Flags]()
}
