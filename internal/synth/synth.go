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

// Package synth builds the replacement syntax for a lowered construct:
// closures threading the resolved state sets, the dispatcher call, and the
// rebinding of the results.
//
// State crosses the dispatcher boundary as []any. Each closure unpacks
// exactly the names it reads or returns with type assertions, so generated
// code never declares an unused variable. Names outside the state sets
// resolve lexically, as in the original code.
package synth

import (
	"fmt"
	"go/ast"
	"go/token"
	"slices"
	"strconv"

	"fillmore-labs.com/lanelift/internal/hints"
	"fillmore-labs.com/lanelift/internal/scope"
	"fillmore-labs.com/lanelift/internal/state"
)

// Dispatcher entry points generated into the rewritten code.
const (
	funcWhileLoop   = "WhileLoop"
	funcIfStmt      = "IfStmt"
	optStateLabels  = "StateLabels"
	optOutLabels    = "OutLabels"
	stateParam      = "_state"
	resultVarPrefix = "_lift"
)

// Synthesizer emits replacement statements for the constructs of one
// function. Result temporaries are numbered per function so sibling
// constructs in one block never collide.
type Synthesizer struct {
	// Qualifier is the local package name of the lane import, normally
	// "lane".
	Qualifier string

	// TypeName renders the declared type of a state variable, for the
	// type assertions of generated unpacking code.
	TypeName func(name string) (string, bool)

	next int
}

// Loop replaces a while-form for statement. The condition closure takes the
// state and returns the condition value; the body closure returns the
// updated state tuple in identical order.
//
//	_lift0 := lane.WhileLoop([]any{i, s}, condFn, bodyFn, lane.StateLabels("i", "s"), …)
//	i = _lift0[0].(uint32)
//	…
func (s *Synthesizer) Loop(cond ast.Expr, body []ast.Stmt, sets state.Sets, bag hints.Bag) ([]ast.Stmt, error) {
	condFn, err := s.condClosure(cond, sets.In)
	if err != nil {
		return nil, err
	}

	bodyFn, err := s.closure(body, exprReads(body), sets.In, sets.In)
	if err != nil {
		return nil, err
	}

	pack, err := s.packExpr(sets.In)
	if err != nil {
		return nil, err
	}

	args := []ast.Expr{pack, condFn, bodyFn, s.labelsOption(optStateLabels, sets.In)}
	args = append(args, bag.Forward...)

	call := s.dispatchCall(funcWhileLoop, args)

	// The loop result carries the full state; only the written names are
	// rebound.
	return s.bindResult(call, sets.In, sets.Out)
}

// Branch replaces an if statement. The condition is evaluated in the
// enclosing scope and passed by value; the branch closures take state-in
// and return state-out.
func (s *Synthesizer) Branch(cond ast.Expr, trueBody, falseBody []ast.Stmt, sets state.Sets, bag hints.Bag) ([]ast.Stmt, error) {
	trueFn, err := s.closure(trueBody, exprReads(trueBody), sets.In, sets.Out)
	if err != nil {
		return nil, err
	}

	falseFn, err := s.closure(falseBody, exprReads(falseBody), sets.In, sets.Out)
	if err != nil {
		return nil, err
	}

	pack, err := s.packExpr(sets.In)
	if err != nil {
		return nil, err
	}

	args := []ast.Expr{pack, cond, trueFn, falseFn, s.labelsOption(optOutLabels, sets.Out)}
	args = append(args, bag.Forward...)

	call := s.dispatchCall(funcIfStmt, args)

	return s.bindResult(call, sets.Out, sets.Out)
}

// condClosure wraps the condition expression: parameters are the state,
// the body returns the condition value.
func (s *Synthesizer) condClosure(cond ast.Expr, stateIn []string) (*ast.FuncLit, error) {
	reads := make(scope.Names)
	collectReads(reads, cond)

	prelude, err := s.unpack(stateParam, stateIn, reads)
	if err != nil {
		return nil, err
	}

	body := append(prelude, &ast.ReturnStmt{Results: []ast.Expr{cond}})

	return &ast.FuncLit{
		Type: closureType(anyType()),
		Body: &ast.BlockStmt{List: body},
	}, nil
}

// closure wraps a statement list: parameters are the state, the final
// statement returns the names of returns in order.
func (s *Synthesizer) closure(stmts []ast.Stmt, reads scope.Names, stateIn, returns []string) (*ast.FuncLit, error) {
	needed := reads.Clone()
	for _, name := range returns {
		needed.Add(name)
	}

	prelude, err := s.unpack(stateParam, stateIn, needed)
	if err != nil {
		return nil, err
	}

	pack := make([]ast.Expr, 0, len(returns))
	for _, name := range returns {
		pack = append(pack, ast.NewIdent(name))
	}

	body := append(prelude, stmts...)
	body = append(body, &ast.ReturnStmt{Results: []ast.Expr{
		&ast.CompositeLit{Type: anySlice(), Elts: pack},
	}})

	return &ast.FuncLit{
		Type: closureType(anySlice()),
		Body: &ast.BlockStmt{List: body},
	}, nil
}

// unpack emits `name := _state[i].(T)` for every state name the closure
// actually needs.
func (s *Synthesizer) unpack(param string, stateIn []string, needed scope.Names) ([]ast.Stmt, error) {
	var stmts []ast.Stmt

	for i, name := range stateIn {
		if !needed.Has(name) {
			continue
		}

		typ, err := s.typeExpr(name)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, &ast.AssignStmt{
			Lhs: []ast.Expr{ast.NewIdent(name)},
			Tok: token.DEFINE,
			Rhs: []ast.Expr{assertIndex(param, i, typ)},
		})
	}

	return stmts, nil
}

// bindResult assigns the dispatcher result and rebinds the written names:
//
//	_liftN := lane.…(…)
//	x = _liftN[i].(T)
//
// With nothing to rebind the call is emitted as a plain statement.
func (s *Synthesizer) bindResult(call *ast.CallExpr, labels, out []string) ([]ast.Stmt, error) {
	if len(out) == 0 {
		return []ast.Stmt{&ast.ExprStmt{X: call}}, nil
	}

	result := resultVarPrefix + strconv.Itoa(s.next)
	s.next++

	stmts := []ast.Stmt{&ast.AssignStmt{
		Lhs: []ast.Expr{ast.NewIdent(result)},
		Tok: token.DEFINE,
		Rhs: []ast.Expr{call},
	}}

	for _, name := range out {
		i := slices.Index(labels, name)
		if i < 0 {
			return nil, fmt.Errorf("synth: output %q missing from state labels", name)
		}

		typ, err := s.typeExpr(name)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, &ast.AssignStmt{
			Lhs: []ast.Expr{ast.NewIdent(name)},
			Tok: token.ASSIGN,
			Rhs: []ast.Expr{assertIndex(result, i, typ)},
		})
	}

	return stmts, nil
}

// packExpr builds the []any{…} state pack in label order.
func (s *Synthesizer) packExpr(stateIn []string) (ast.Expr, error) {
	elts := make([]ast.Expr, 0, len(stateIn))
	for _, name := range stateIn {
		elts = append(elts, ast.NewIdent(name))
	}

	return &ast.CompositeLit{Type: anySlice(), Elts: elts}, nil
}

// labelsOption builds lane.StateLabels("a", "b") or lane.OutLabels(…).
func (s *Synthesizer) labelsOption(option string, names []string) ast.Expr {
	args := make([]ast.Expr, 0, len(names))
	for _, name := range names {
		args = append(args, &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(name)})
	}

	return &ast.CallExpr{Fun: s.qualified(option), Args: args}
}

func (s *Synthesizer) dispatchCall(name string, args []ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Fun: s.qualified(name), Args: args}
}

func (s *Synthesizer) qualified(name string) ast.Expr {
	return &ast.SelectorExpr{X: ast.NewIdent(s.Qualifier), Sel: ast.NewIdent(name)}
}

// typeExpr renders the assertion type of a state variable. The rendered
// string is wrapped in an identifier node, which the printer emits
// verbatim.
func (s *Synthesizer) typeExpr(name string) (ast.Expr, error) {
	typ, ok := s.TypeName(name)
	if !ok {
		return nil, fmt.Errorf("synth: cannot determine the type of state variable %q", name)
	}

	return ast.NewIdent(typ), nil
}

// exprReads collects the identifiers occurring in a statement list. Only
// names present in the state set lead to unpack statements, but any name
// collected here that is not actually a variable use (a selector field, a
// literal key) would unpack unused and fail to compile, so those are
// skipped like genuine non-reads.
func exprReads(stmts []ast.Stmt) scope.Names {
	reads := make(scope.Names)

	for _, stmt := range stmts {
		collectReads(reads, stmt)
	}

	return reads
}

// collectReads gathers the identifiers of n into reads. Selector field
// names and composite-literal field keys are not variable reads.
func collectReads(reads scope.Names, n ast.Node) {
	ast.Inspect(n, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.Ident:
			reads.Add(e.Name)

		case *ast.SelectorExpr:
			collectReads(reads, e.X)

			return false

		case *ast.KeyValueExpr:
			if _, ok := e.Key.(*ast.Ident); !ok {
				collectReads(reads, e.Key)
			}

			collectReads(reads, e.Value)

			return false
		}

		return true
	})
}

func assertIndex(base string, i int, typ ast.Expr) ast.Expr {
	return &ast.TypeAssertExpr{
		X: &ast.IndexExpr{
			X:     ast.NewIdent(base),
			Index: &ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(i)},
		},
		Type: typ,
	}
}

func closureType(result ast.Expr) *ast.FuncType {
	return &ast.FuncType{
		Params: &ast.FieldList{List: []*ast.Field{{
			Names: []*ast.Ident{ast.NewIdent(stateParam)},
			Type:  anySlice(),
		}}},
		Results: &ast.FieldList{List: []*ast.Field{{Type: result}}},
	}
}

func anyType() ast.Expr { return ast.NewIdent("any") }

func anySlice() ast.Expr { return &ast.ArrayType{Elt: anyType()} }
