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

// Package run implements the analyzer pipeline: it walks the package for
// functions marked with a lanelift:lower directive and validates that each
// one can be lowered, without mutating the shared syntax tree.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/lanelift/internal/astutil"
	"fillmore-labs.com/lanelift/internal/config"
	"fillmore-labs.com/lanelift/internal/diag"
	"fillmore-labs.com/lanelift/internal/rewrite"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the lanelift analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("lanelift: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "LaneLift")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	// Remember the current file over all functions declared in it
	var currentFile astutil.CurrentFile

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile = astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if file.Doc != nil && astutil.CommentHasNoLint(file.Doc.List[len(file.Doc.List)-1]) {
			continue
		}

		// Loop over all function and method declarations in this file
		for c := range f.Preorder((*ast.FuncDecl)(nil)) {
			fun := c.Node().(*ast.FuncDecl)

			if fun.Body == nil {
				continue
			}

			// Skip functions with nolint comment
			if fun.Doc != nil && astutil.CommentHasNoLint(fun.Doc.List[len(fun.Doc.List)-1]) {
				continue
			}

			d, marked, err := astutil.FindDirective(fun.Doc)
			if err != nil {
				p.Report(analysis.Diagnostic{
					Pos:     fun.Pos(),
					End:     fun.Name.End(),
					Message: err.Error(),
				})

				continue
			}

			if !marked {
				continue
			}

			r.validate(ctx, p, fun, d)
		}
	}

	return nil, nil //nolint:nilnil
}

// validate runs the lowering analysis on fun without synthesizing code and
// reports the first failure that would abort the generator.
func (r *Options) validate(ctx context.Context, p *analysis.Pass, fun *ast.FuncDecl, d astutil.Directive) {
	defer trace.StartRegion(ctx, "validate").End()

	cfg := rewrite.Config{
		Fset:      p.Fset,
		Info:      p.TypesInfo,
		Pkg:       p.Pkg,
		Recursive: d.Recursive || r.Behavior.Enabled(config.Recursive),
		Validate:  true,
	}

	if _, err := rewrite.Function(cfg, fun); err != nil {
		var lerr *diag.Error
		if !errors.As(err, &lerr) {
			astutil.InternalError(p, fun, "Unexpected error lowering %s: %v", fun.Name.Name, err)

			return
		}

		p.Report(analysis.Diagnostic{
			Pos:      lerr.At,
			End:      lerr.End,
			Category: lerr.Kind.String(),
			Message:  lerr.Message,
		})
	}
}
