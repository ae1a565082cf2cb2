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

package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func TestLiftedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{name: "Plain", in: "file.go", want: "file_lifted.go"},
		{name: "Directory", in: "pkg/sim/wave.go", want: "pkg/sim/wave_lifted.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := liftedName(tt.in); got != tt.want {
				t.Errorf("liftedName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderMarksGenerated(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "demo.go", "package demo\n\nfunc f() {}\n", parser.ParseComments)
	if err != nil {
		t.Fatalf("Parsing failed: %v", err)
	}

	g := &generator{fset: fset}

	src, err := g.render(file)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := "// Code generated by lanelift. DO NOT EDIT.\n//line demo.go:1\n"
	if !strings.HasPrefix(string(src), want) {
		t.Errorf("Output does not start with %q:\n%s", want, src)
	}

	// A later run must recognize the output as generated and skip it.
	out, err := parser.ParseFile(token.NewFileSet(), "demo_lifted.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Reparsing failed: %v", err)
	}

	if !ast.IsGenerated(out) {
		t.Error("Rendered file is not recognized as generated")
	}
}
