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

package synth_test

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"fillmore-labs.com/lanelift/internal/hints"
	"fillmore-labs.com/lanelift/internal/state"
	. "fillmore-labs.com/lanelift/internal/synth"
)

func typeNames(types map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		typ, ok := types[name]

		return typ, ok
	}
}

func condExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	expr, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("Parsing %q failed: %v", src, err)
	}

	return expr
}

func bodyStmts(t *testing.T, body string) []ast.Stmt {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "body.go",
		"package p\n\nfunc f() {\n"+body+"\n}\n", parser.SkipObjectResolution)
	if err != nil {
		t.Fatalf("Parsing body failed: %v", err)
	}

	return file.Decls[0].(*ast.FuncDecl).Body.List
}

func render(t *testing.T, node any) string {
	t.Helper()

	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), node); err != nil {
		t.Fatalf("Formatting failed: %v", err)
	}

	return buf.String()
}

// closureArg digs the i-th argument of the dispatcher call out of the
// replacement statements.
func closureArg(t *testing.T, stmts []ast.Stmt, i int) ast.Expr {
	t.Helper()

	assign, ok := stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("First statement is %T, want assignment", stmts[0])
	}

	call, ok := assign.Rhs[0].(*ast.CallExpr)
	if !ok {
		t.Fatalf("Bound value is %T, want call", assign.Rhs[0])
	}

	return call.Args[i]
}

// A field access like v.n must not unpack a state variable that happens to
// share the field's name; an unused unpack does not compile.
func TestLoopConditionFieldAccess(t *testing.T) {
	t.Parallel()

	s := &Synthesizer{
		Qualifier: "lane",
		TypeName:  typeNames(map[string]string{"active": "bool", "n": "int", "v": "vec"}),
	}

	sets := state.Sets{In: []string{"active", "n", "v"}, Out: []string{"active", "n"}}

	stmts, err := s.Loop(
		condExpr(t, "active && v.n > 0"),
		bodyStmts(t, "n = n + 1\nactive = n < v.n"),
		sets, hints.Bag{})
	if err != nil {
		t.Fatalf("Loop failed: %v", err)
	}

	cond := render(t, closureArg(t, stmts, 1))

	for _, want := range []string{"active := _state[0].(bool)", "v := _state[2].(vec)"} {
		if !strings.Contains(cond, want) {
			t.Errorf("Missing %q in condition closure:\n%s", want, cond)
		}
	}

	if strings.Contains(cond, "n := _state") {
		t.Errorf("Field name n unpacked in condition closure:\n%s", cond)
	}
}

func TestBranchFieldAccess(t *testing.T) {
	t.Parallel()

	s := &Synthesizer{
		Qualifier: "lane",
		TypeName:  typeNames(map[string]string{"n": "int", "v": "vec", "x": "int"}),
	}

	sets := state.Sets{In: []string{"n", "v", "x"}, Out: []string{"x"}}

	stmts, err := s.Branch(
		condExpr(t, "flag"),
		bodyStmts(t, "x = v.n"), nil,
		sets, hints.Bag{})
	if err != nil {
		t.Fatalf("Branch failed: %v", err)
	}

	branch := render(t, closureArg(t, stmts, 2))

	for _, want := range []string{"v := _state[1].(vec)", "x := _state[2].(int)"} {
		if !strings.Contains(branch, want) {
			t.Errorf("Missing %q in branch closure:\n%s", want, branch)
		}
	}

	if strings.Contains(branch, "n := _state") {
		t.Errorf("Field name n unpacked in branch closure:\n%s", branch)
	}
}
