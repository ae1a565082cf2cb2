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

// Lanelift rewrites the control flow of functions marked with a
// lanelift:lower directive into closures dispatched through lane.IfStmt
// and lane.WhileLoop.
//
// Usage:
//
//	lanelift [flags] [packages]
//
// Without -w the transformed files are printed to standard output; with
// -w each rewritten file lands next to its source as <name>_lifted.go,
// marked as generated so later runs skip it. Signatures, parameter names
// and doc comments of rewritten functions are preserved verbatim.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
	goastutil "golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/lanelift/internal/astutil"
	"fillmore-labs.com/lanelift/internal/config"
	"fillmore-labs.com/lanelift/internal/diag"
	"fillmore-labs.com/lanelift/internal/rewrite"
)

// lanePath is the import path of the dispatcher package added to rewritten
// files.
const lanePath = "fillmore-labs.com/lanelift/lane"

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports |
	packages.NeedDeps | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax

func main() {
	os.Exit(run())
}

func run() int {
	write := flag.Bool("w", false, "write each result to a <name>_lifted.go sibling instead of stdout")
	recursive := flag.Bool("recursive", false, "lower function literals nested in marked functions")
	generated := flag.Bool("generated", false, "process marked functions in generated files")
	printAST := flag.Bool("print-ast", env.Bool("LANELIFT_PRINT_AST"),
		"dump the syntax tree of each marked function before and after lowering")
	printCode := flag.Bool("print-code", env.Bool("LANELIFT_PRINT_CODE"),
		"print the source of each marked function before and after lowering")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	behavior := config.DefaultBehavior()
	behavior.Set(config.Recursive, *recursive)
	behavior.Set(config.IncludeGenerated, *generated)
	behavior.Set(config.PrintAST, *printAST)
	behavior.Set(config.PrintCode, *printCode)

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	g := &generator{
		behavior: behavior,
		write:    *write,
		fset:     token.NewFileSet(),
	}

	pkgs, err := packages.Load(&packages.Config{Mode: loadMode, Fset: g.fset}, patterns...)
	if err != nil {
		slog.Error("Loading packages failed", "err", err)

		return 1
	}

	if packages.PrintErrors(pkgs) > 0 {
		return 1
	}

	exit := 0

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			if err := g.processFile(pkg, file); err != nil {
				fmt.Fprintln(os.Stderr, err)

				exit = 1
			}
		}
	}

	return exit
}

type generator struct {
	behavior config.Behavior
	write    bool
	fset     *token.FileSet
}

// marked pairs a function declaration with its parsed directive.
type marked struct {
	fn *ast.FuncDecl
	d  astutil.Directive
}

func (g *generator) processFile(pkg *packages.Package, file *ast.File) error {
	current := astutil.NewCurrentFile(g.fset, file)
	if current.Generated() && !g.behavior.Enabled(config.IncludeGenerated) {
		return nil
	}

	fns, err := g.markedFunctions(file)
	if err != nil {
		return err
	}

	if len(fns) == 0 {
		return nil
	}

	qualifier, imported := laneQualifier(file)

	lowered := false

	for _, m := range fns {
		g.introspect("before", m.fn)

		cfg := rewrite.Config{
			Fset:      g.fset,
			Info:      pkg.TypesInfo,
			Pkg:       pkg.Types,
			Qualifier: qualifier,
			Recursive: m.d.Recursive || g.behavior.Enabled(config.Recursive),
		}

		changed, err := rewrite.Function(cfg, m.fn)
		if err != nil {
			return err
		}

		if changed {
			lowered = true

			g.introspect("after", m.fn)
		}
	}

	if !lowered {
		return nil
	}

	if !imported {
		goastutil.AddImport(g.fset, file, lanePath)
	}

	return g.emit(file)
}

// markedFunctions collects the declarations carrying a lanelift:lower
// directive. A malformed directive aborts the whole file.
func (g *generator) markedFunctions(file *ast.File) ([]marked, error) {
	var fns []marked

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}

		d, found, err := astutil.FindDirective(fn.Doc)
		if err != nil {
			return nil, diag.New(diag.BadHint, g.fset, fn, "%v", err)
		}

		if found {
			fns = append(fns, marked{fn: fn, d: d})
		}
	}

	return fns, nil
}

// emit renders the rewritten file and writes it to a generated sibling or
// stdout.
func (g *generator) emit(file *ast.File) error {
	filename := g.fset.Position(file.Pos()).Filename

	src, err := g.render(file)
	if err != nil {
		return err
	}

	if !g.write {
		_, err := os.Stdout.Write(src)

		return err
	}

	target := liftedName(filename)
	slog.Info("Writing", "file", target)

	return os.WriteFile(target, src, 0o644)
}

// render formats the rewritten file and verifies that the result parses
// again. The header marks the output as generated, so subsequent runs skip
// it, and the line directive maps diagnostics of the emitted text back to
// the input.
func (g *generator) render(file *ast.File) ([]byte, error) {
	filename := g.fset.Position(file.Pos()).Filename

	var buf bytes.Buffer

	fmt.Fprintln(&buf, "// Code generated by lanelift. DO NOT EDIT.")
	fmt.Fprintf(&buf, "//line %s:1\n", filepath.Base(filename))

	if err := format.Node(&buf, g.fset, file); err != nil {
		return nil, fmt.Errorf("lanelift: formatting %s: %w", filename, err)
	}

	if _, err := parser.ParseFile(token.NewFileSet(), filename, buf.Bytes(), parser.SkipObjectResolution); err != nil {
		return nil, diag.New(diag.Reparse, nil, nil,
			"lowered code for %s does not parse: %v\n%s", filename, err, buf.String())
	}

	return buf.Bytes(), nil
}

// liftedName maps dir/file.go to dir/file_lifted.go.
func liftedName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), ".go")

	return filepath.Join(filepath.Dir(filename), base+"_lifted.go")
}

// introspect dumps a marked function when the print-ast or print-code
// flags are set.
func (g *generator) introspect(stage string, fn *ast.FuncDecl) {
	if g.behavior.Enabled(config.PrintAST) {
		fmt.Fprintf(os.Stderr, "--- %s: %s (syntax tree)\n", stage, fn.Name.Name)
		ast.Fprint(os.Stderr, g.fset, fn, ast.NotNilFilter) //nolint:errcheck
	}

	if g.behavior.Enabled(config.PrintCode) {
		fmt.Fprintf(os.Stderr, "--- %s: %s\n", stage, fn.Name.Name)

		if err := format.Node(os.Stderr, g.fset, fn); err == nil {
			fmt.Fprintln(os.Stderr)
		}
	}
}

// laneQualifier returns the local name under which the dispatcher package
// is available in file, and whether it is imported at all.
func laneQualifier(file *ast.File) (string, bool) {
	for _, imp := range file.Imports {
		if imp.Path.Value != `"`+lanePath+`"` {
			continue
		}

		if imp.Name != nil && imp.Name.Name != "_" && imp.Name.Name != "." {
			return imp.Name.Name, true
		}

		return "lane", true
	}

	return "lane", false
}
