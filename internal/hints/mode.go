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

package hints

import "fmt"

// Mode is the execution mode requested for a lowered construct.
type Mode int

//go:generate go tool stringer -type=Mode

const (
	// Unset lets the dispatcher decide.
	Unset Mode = iota

	// Scalar disables the transformation for this construct.
	Scalar

	// Evaluated forces evaluated execution and is forwarded to the dispatcher.
	Evaluated

	// Symbolic forces symbolic execution and is forwarded to the dispatcher.
	Symbolic
)

// ParseMode maps the literal mode strings accepted by the Mode hint option.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "scalar":
		return Scalar, nil
	case "evaluated":
		return Evaluated, nil
	case "symbolic":
		return Symbolic, nil
	default:
		return Unset, fmt.Errorf(`unknown mode %q, expected "scalar", "evaluated" or "symbolic"`, s)
	}
}
