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

// Package hints recognizes the Hint marker wrapped around a condition
// expression and validates its annotation options.
//
// A hint has the form
//
//	lane.Hint(cond, lane.Mode("scalar"), lane.Exclude(a, b), …)
//
// where the first argument is the real condition and every following
// argument is a recognized option constructor. Evaluated as ordinary code,
// Hint returns the condition unchanged; the options only steer the
// transformation.
package hints

import (
	"go/ast"
	"go/token"
	"strconv"

	"fillmore-labs.com/lanelift/internal/diag"
)

// Option constructor names recognized inside a Hint call.
const (
	optMode          = "Mode"
	optLabel         = "Label"
	optMaxIterations = "MaxIterations"
	optInclude       = "Include"
	optExclude       = "Exclude"
)

// hintName is the callee base name identifying the marker. The package
// qualifier is irrelevant, so aliased imports and dot imports both work.
const hintName = "Hint"

// Bag holds the validated annotations of one Hint call.
type Bag struct {
	// Mode is the requested execution mode, [Unset] by default.
	Mode Mode

	// Label is a descriptive label, empty when unset.
	Label string

	// MaxIterations is the iteration bound for loops, zero when unset.
	MaxIterations int

	// Include and Exclude name variables forcibly added to or removed from
	// the state sets. They are local to the analysis and never forwarded.
	Include []string
	Exclude []string

	// IncludeIdents holds the identifier nodes of the Include option, so
	// the caller can resolve their types.
	IncludeIdents []*ast.Ident

	// Forward holds the original option call expressions that are passed
	// through to the dispatcher, in source order.
	Forward []ast.Expr
}

// IsScalar reports whether the construct opted out of the transformation.
func (b Bag) IsScalar() bool {
	return b.Mode == Scalar
}

// Extract detects whether the outermost form of cond is a Hint call.
//
// A plain expression is returned unchanged with a zero Bag. For a Hint call
// it validates the argument shape and every option, returning the wrapped
// condition and the annotation bag. Malformed hints produce a [*diag.Error]
// attributed to the offending expression; extraction is otherwise pure.
func Extract(fset *token.FileSet, cond ast.Expr) (ast.Expr, Bag, error) {
	var bag Bag

	call, ok := cond.(*ast.CallExpr)
	if !ok || calleeName(call.Fun) != hintName {
		return cond, bag, nil
	}

	if len(call.Args) == 0 || call.Ellipsis.IsValid() {
		return nil, bag, badHint(fset, call, "Hint: must have a single condition argument")
	}

	for _, arg := range call.Args[1:] {
		opt, ok := arg.(*ast.CallExpr)
		if !ok {
			return nil, bag, badHint(fset, arg, "Hint: options must be option constructor calls")
		}

		if err := bag.apply(fset, opt); err != nil {
			return nil, bag, err
		}
	}

	return call.Args[0], bag, nil
}

// apply validates a single option call and folds it into the bag.
// A repeated option overwrites the earlier value.
func (b *Bag) apply(fset *token.FileSet, opt *ast.CallExpr) error {
	name := calleeName(opt.Fun)

	switch name {
	case optMode:
		lit, ok := singleString(opt)
		if !ok {
			return badHint(fset, opt, "Hint: Mode requires a single literal string argument")
		}

		mode, err := ParseMode(lit)
		if err != nil {
			return badHint(fset, opt, "Hint: %s", err)
		}

		b.Mode = mode
		if mode != Scalar {
			b.Forward = append(b.Forward, opt)
		}

	case optLabel:
		lit, ok := singleString(opt)
		if !ok {
			return badHint(fset, opt, "Hint: Label requires a single literal string argument")
		}

		b.Label = lit
		b.Forward = append(b.Forward, opt)

	case optMaxIterations:
		n, ok := singleInt(opt)
		if !ok || n <= 0 {
			return badHint(fset, opt, "Hint: MaxIterations requires a single positive integer literal")
		}

		b.MaxIterations = n
		b.Forward = append(b.Forward, opt)

	case optInclude:
		names, idents, err := nameList(fset, opt)
		if err != nil {
			return err
		}

		b.Include = names
		b.IncludeIdents = idents

	case optExclude:
		names, _, err := nameList(fset, opt)
		if err != nil {
			return err
		}

		b.Exclude = names

	default:
		return badHint(fset, opt, "Hint: unsupported option %q", name)
	}

	return nil
}

// nameList validates that every argument of an Include/Exclude option is a
// bare identifier and returns the names.
func nameList(fset *token.FileSet, opt *ast.CallExpr) ([]string, []*ast.Ident, error) {
	names := make([]string, 0, len(opt.Args))
	idents := make([]*ast.Ident, 0, len(opt.Args))

	for _, arg := range opt.Args {
		id, ok := arg.(*ast.Ident)
		if !ok {
			return nil, nil, badHint(fset, arg,
				"Hint: %s accepts only a literal list of variable names (e.g. %s(a, b))",
				calleeName(opt.Fun), calleeName(opt.Fun))
		}

		names = append(names, id.Name)
		idents = append(idents, id)
	}

	return names, idents, nil
}

// calleeName returns the base name of a call target: the identifier itself,
// or the selector name for qualified calls.
func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	default:
		return ""
	}
}

func singleString(call *ast.CallExpr) (string, bool) {
	if len(call.Args) != 1 {
		return "", false
	}

	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}

	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}

	return s, true
}

func singleInt(call *ast.CallExpr) (int, bool) {
	if len(call.Args) != 1 {
		return 0, false
	}

	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return 0, false
	}

	n, err := strconv.Atoi(lit.Value)
	if err != nil {
		return 0, false
	}

	return n, true
}

func badHint(fset *token.FileSet, rng ast.Node, format string, args ...any) *diag.Error {
	return diag.New(diag.BadHint, fset, rng, format, args...)
}
