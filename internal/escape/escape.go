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

// Package escape rejects control flow that would jump out of a lowered
// region.
//
// A lowered branch or loop body becomes a plain closure returning updated
// state. That return channel has no way to represent an early non-local
// exit, so return, break, continue and goto must be provably confined to
// ordinary scalar control flow.
package escape

import (
	"go/ast"
	"go/token"

	"fillmore-labs.com/lanelift/internal/diag"
)

// Kind distinguishes the two lowered construct forms.
type Kind int

const (
	// Loop marks a for-while construct.
	Loop Kind = iota

	// Branch marks an if construct.
	Branch

	// Switch marks a switch or select statement. Never lowered, but a
	// break target.
	Switch
)

// String returns the construct name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case Loop:
		return "loop"
	case Branch:
		return "branch"
	default:
		return "switch"
	}
}

// Frame is one entry of the lowering-context stack.
type Frame struct {
	Kind Kind

	// Scalar is true for constructs left untransformed: scalar-mode hints,
	// three-clause and range loops. Escapes confined below a scalar frame
	// stay within ordinary control flow.
	Scalar bool
}

// Validator is a state machine over the lowering-context stack. The stack
// reflects the exact lexical nesting of constructs at the point any escape
// statement is visited.
type Validator struct {
	frames []Frame
}

// Push enters a construct.
func (v *Validator) Push(kind Kind, scalar bool) {
	v.frames = append(v.frames, Frame{Kind: kind, Scalar: scalar})
}

// Pop leaves the innermost construct.
func (v *Validator) Pop() {
	if len(v.frames) == 0 {
		panic("escape: Pop without matching Push")
	}

	v.frames = v.frames[:len(v.frames)-1]
}

// CheckReturn validates a return statement. A return escapes the entire
// function, so every frame on the stack must be scalar.
func (v *Validator) CheckReturn(fset *token.FileSet, node ast.Node) error {
	for i := len(v.frames) - 1; i >= 0; i-- {
		if f := v.frames[i]; !f.Scalar {
			return v.reject(fset, node, "return", f.Kind)
		}
	}

	return nil
}

// CheckBranch validates a break or continue statement. Frames are scanned
// innermost outward; the statement only needs to reach a loop (for break,
// a switch or select also suffices), so scanning stops at the first such
// frame regardless of its scalarity. A non-scalar frame encountered first
// rejects.
//
// A labeled break or continue may target any enclosing construct, so it is
// treated like a return: every frame must be scalar.
func (v *Validator) CheckBranch(fset *token.FileSet, stmt *ast.BranchStmt) error {
	name := stmt.Tok.String()

	if stmt.Label != nil {
		for i := len(v.frames) - 1; i >= 0; i-- {
			if f := v.frames[i]; !f.Scalar {
				return v.reject(fset, stmt, "labeled "+name, f.Kind)
			}
		}

		return nil
	}

	for i := len(v.frames) - 1; i >= 0; i-- {
		f := v.frames[i]
		if !f.Scalar {
			return v.reject(fset, stmt, name, f.Kind)
		}

		if f.Kind == Loop || (f.Kind == Switch && stmt.Tok == token.BREAK) {
			break
		}
	}

	return nil
}

// CheckGoto validates a goto statement. The jump target is not tracked, so
// any enclosing non-scalar frame rejects.
func (v *Validator) CheckGoto(fset *token.FileSet, stmt *ast.BranchStmt) error {
	for i := len(v.frames) - 1; i >= 0; i-- {
		if f := v.frames[i]; !f.Scalar {
			return v.reject(fset, stmt, "goto", f.Kind)
		}
	}

	return nil
}

func (v *Validator) reject(fset *token.FileSet, node ast.Node, stmt string, kind Kind) error {
	return diag.New(diag.ForbiddenEscape, fset, node,
		`%s would escape a lowered %s; the dispatch convention cannot represent an early exit. `+
			`If the condition is a plain bool, annotate it with Mode("scalar") to keep ordinary control flow`,
		stmt, kind)
}
