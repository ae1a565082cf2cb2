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

// Package diag defines the structured errors raised while lowering control flow.
//
// All errors point at the original source position of the offending
// construct, never at synthesized code.
package diag

import (
	"fmt"
	"go/ast"
	"go/token"
)

// Kind classifies a lowering error.
type Kind int

const (
	// BadHint indicates a malformed lane.Hint annotation: wrong argument
	// count, an unknown option, or a non-literal include/exclude list.
	BadHint Kind = iota + 1

	// ForbiddenEscape indicates a return, break, continue or goto that
	// would jump out of a non-scalar lowered region.
	ForbiddenEscape

	// Reparse indicates that the rewritten source failed to parse again.
	// The message embeds the generated text, since the original source no
	// longer explains the failure.
	Reparse
)

// String returns a short name for the error kind.
func (k Kind) String() string {
	switch k {
	case BadHint:
		return "bad hint"
	case ForbiddenEscape:
		return "forbidden escape"
	case Reparse:
		return "reparse failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a lowering failure attributed to a source position.
type Error struct {
	Kind    Kind
	Message string

	// Pos is the resolved original position, used when rendering.
	Pos token.Position

	// At and End delimit the offending node for diagnostic reporting.
	At, End token.Pos
}

// Error implements the error interface, rendering "file:line:col: message".
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}

	return e.Message
}

// New creates an [*Error] of the given kind attributed to node.
func New(kind Kind, fset *token.FileSet, node ast.Node, format string, args ...any) *Error {
	e := &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		e.At, e.End = node.Pos(), node.End()
		if fset != nil {
			e.Pos = fset.Position(node.Pos())
		}
	}

	return e
}
