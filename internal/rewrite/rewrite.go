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

// Package rewrite lowers the structured if and while constructs of a
// function body into closures plus dispatcher calls.
//
// Analysis runs bottom-up: nested constructs are resolved and replaced
// before their parents, so an outer construct wraps the already-rewritten
// inner ones and sees their net state effect as plain reads and writes.
package rewrite

import (
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/lanelift/internal/escape"
	"fillmore-labs.com/lanelift/internal/hints"
	"fillmore-labs.com/lanelift/internal/scope"
	"fillmore-labs.com/lanelift/internal/state"
	"fillmore-labs.com/lanelift/internal/synth"
)

// Config parameterizes the rewrite of one function.
type Config struct {
	// Fset resolves positions for diagnostics.
	Fset *token.FileSet

	// Info supplies the types of state variables. Required for synthesis.
	Info *types.Info

	// Pkg is the package under rewrite, used to qualify rendered type
	// names relative to it.
	Pkg *types.Package

	// Qualifier is the local name of the lane package import.
	Qualifier string

	// Recursive lowers function literals nested in the marked function as
	// independent roots.
	Recursive bool

	// Validate runs the full analysis (hints, escapes, state resolution)
	// without synthesizing replacements or mutating the tree. Used by the
	// analyzer, which must leave the shared syntax tree untouched.
	Validate bool
}

// Function lowers all if and while-form for constructs of fn in place.
// It reports whether anything was lowered. On error the function body is
// left partially rewritten and must be discarded.
func Function(cfg Config, fn *ast.FuncDecl) (bool, error) {
	if !cfg.Validate {
		noteTransform()
	}

	r := newRewriter(cfg)
	r.enterParams(fn.Recv, fn.Type)

	if err := r.rewriteBlock(fn.Body); err != nil {
		return false, err
	}

	if r.nestedErr != nil {
		return false, r.nestedErr
	}

	return r.lowered, nil
}

type rewriter struct {
	cfg       Config
	tracker   *scope.Tracker
	validator *escape.Validator
	synth     *synth.Synthesizer
	lowered   bool
	nestedErr error
}

func newRewriter(cfg Config) *rewriter {
	if cfg.Qualifier == "" {
		cfg.Qualifier = "lane"
	}

	r := &rewriter{
		cfg:       cfg,
		tracker:   scope.NewTracker(),
		validator: &escape.Validator{},
	}
	r.synth = &synth.Synthesizer{
		Qualifier: cfg.Qualifier,
		TypeName:  r.typeName,
	}

	return r
}

// enterParams records receiver, parameters and named results as written at
// function entry, so they count as live before any construct.
func (r *rewriter) enterParams(recv *ast.FieldList, typ *ast.FuncType) {
	for _, fields := range []*ast.FieldList{recv, typ.Params, typ.Results} {
		if fields == nil {
			continue
		}

		for _, field := range fields.List {
			for _, name := range field.Names {
				r.tracker.Write(name.Name)
				r.recordType(name)
			}
		}
	}
}

// rewriteBlock rewrites the statements of a block in place, splicing in
// replacement statement lists.
func (r *rewriter) rewriteBlock(block *ast.BlockStmt) error {
	if block == nil {
		return nil
	}

	list, err := r.rewriteStmts(block.List)
	if err != nil {
		return err
	}

	block.List = list

	return nil
}

func (r *rewriter) rewriteStmts(stmts []ast.Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(stmts))

	for _, stmt := range stmts {
		repl, err := r.rewriteStmt(stmt)
		if err != nil {
			return nil, err
		}

		out = append(out, repl...)
	}

	return out, nil
}

// one wraps the common unchanged-statement result.
func one(stmt ast.Stmt) []ast.Stmt { return []ast.Stmt{stmt} }

func (r *rewriter) rewriteStmt(stmt ast.Stmt) ([]ast.Stmt, error) {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		return r.rewriteIf(s)

	case *ast.ForStmt:
		return r.rewriteFor(s)

	case *ast.RangeStmt:
		return one(s), r.rewriteRange(s)

	case *ast.ReturnStmt:
		if err := r.validator.CheckReturn(r.cfg.Fset, s); err != nil {
			return nil, err
		}

		for _, res := range s.Results {
			r.trackReads(res)
		}

		return one(s), nil

	case *ast.BranchStmt:
		return one(s), r.checkBranch(s)

	case *ast.AssignStmt:
		return one(s), r.trackAssign(s)

	case *ast.IncDecStmt:
		// i++ both reads and writes its operand.
		r.trackReads(s.X)
		r.trackWriteExpr(s.X, false)

		return one(s), nil

	case *ast.DeclStmt:
		return one(s), r.trackDecl(s)

	case *ast.BlockStmt:
		return one(s), r.rewriteBlock(s)

	case *ast.LabeledStmt:
		return r.rewriteLabeled(s)

	case *ast.ExprStmt:
		r.trackReads(s.X)

		return one(s), nil

	case *ast.SendStmt:
		r.trackReads(s.Chan)
		r.trackReads(s.Value)

		return one(s), nil

	case *ast.GoStmt:
		r.trackReads(s.Call)

		return one(s), nil

	case *ast.DeferStmt:
		r.trackReads(s.Call)

		return one(s), nil

	case *ast.SwitchStmt:
		return one(s), r.rewriteSwitch(s)

	case *ast.TypeSwitchStmt:
		return one(s), r.rewriteTypeSwitch(s)

	case *ast.SelectStmt:
		return one(s), r.rewriteSelect(s)

	default:
		// Empty statements and anything unanticipated pass through.
		return one(s), nil
	}
}

// rewriteLabeled preserves the label on the first replacement statement, so
// forward gotos keep their target.
func (r *rewriter) rewriteLabeled(s *ast.LabeledStmt) ([]ast.Stmt, error) {
	repl, err := r.rewriteStmt(s.Stmt)
	if err != nil {
		return nil, err
	}

	if len(repl) == 1 && repl[0] == s.Stmt {
		return one(s), nil
	}

	s.Stmt = repl[0]

	return append([]ast.Stmt{s}, repl[1:]...), nil
}

func (r *rewriter) checkBranch(s *ast.BranchStmt) error {
	switch s.Tok {
	case token.BREAK, token.CONTINUE:
		return r.validator.CheckBranch(r.cfg.Fset, s)
	case token.GOTO:
		return r.validator.CheckGoto(r.cfg.Fset, s)
	default: // fallthrough stays within its switch
		return nil
	}
}

// rewriteFor dispatches on the loop form. Only `for cond { … }` is a
// while-form candidate; three-clause loops keep ordinary scalar control
// flow, with their bodies still rewritten.
func (r *rewriter) rewriteFor(s *ast.ForStmt) ([]ast.Stmt, error) {
	if s.Init == nil && s.Post == nil && s.Cond != nil {
		return r.rewriteWhile(s)
	}

	if s.Init != nil {
		if err := r.trackSimpleStmt(s.Init); err != nil {
			return nil, err
		}
	}

	if s.Cond != nil {
		r.trackReads(s.Cond)
	}

	if s.Post != nil {
		if err := r.trackSimpleStmt(s.Post); err != nil {
			return nil, err
		}
	}

	return one(s), r.scalarRegion(escape.Loop, s.Body)
}

// rewriteRange tracks a range statement. Range loops are never lowered;
// their iteration space is data-dependent in a way the dispatch convention
// cannot express, so the body keeps ordinary scalar control flow.
func (r *rewriter) rewriteRange(s *ast.RangeStmt) error {
	r.trackReads(s.X)

	define := s.Tok == token.DEFINE
	if s.Key != nil {
		r.trackWriteExpr(s.Key, define)
	}

	if s.Value != nil {
		r.trackWriteExpr(s.Value, define)
	}

	return r.scalarRegion(escape.Loop, s.Body)
}

// rewriteWhile lowers `for cond { body }` into a WhileLoop dispatch.
func (r *rewriter) rewriteWhile(s *ast.ForStmt) ([]ast.Stmt, error) {
	cond, bag, err := hints.Extract(r.cfg.Fset, s.Cond)
	if err != nil {
		return nil, err
	}

	if bag.IsScalar() {
		// Emitted unchanged, hint included: Hint is a runtime identity.
		return one(s), r.scalarRegion(escape.Loop, s.Body)
	}

	r.tracker.Enter()
	r.validator.Push(escape.Loop, false)

	r.trackReads(cond)
	err = r.rewriteBlock(s.Body)

	r.validator.Pop()
	rec := r.tracker.Leave()

	if err != nil {
		return nil, err
	}

	r.recordIncludeTypes(bag)
	sets := state.ForLoop(rec, r.tracker.PriorWritten(), bag)

	// The replacement reads the input set and writes the output set.
	r.tracker.Merge(sets.Reads(), sets.Writes())
	r.lowered = true

	if r.cfg.Validate {
		return one(s), nil
	}

	repl, err := r.synth.Loop(cond, s.Body.List, sets, bag)
	if err != nil {
		return nil, err
	}

	return repl, nil
}

// rewriteIf lowers a conditional into an IfStmt dispatch. Conditionals
// with an init statement are never lowered: hoisting the init would leak
// its declarations into the enclosing scope.
func (r *rewriter) rewriteIf(s *ast.IfStmt) ([]ast.Stmt, error) {
	cond, bag, err := hints.Extract(r.cfg.Fset, s.Cond)
	if err != nil {
		return nil, err
	}

	if bag.IsScalar() || s.Init != nil {
		if s.Init != nil {
			if err := r.trackSimpleStmt(s.Init); err != nil {
				return nil, err
			}
		}

		r.trackReads(s.Cond)

		if err := r.scalarRegion(escape.Branch, s.Body); err != nil {
			return nil, err
		}

		return one(s), r.scalarElse(s.Else)
	}

	// The condition value is evaluated in place, so its reads belong to
	// the enclosing scope.
	r.trackReads(cond)

	r.validator.Push(escape.Branch, false)

	trueRec, trueBody, err := r.rewriteBranch(s.Body.List)
	if err != nil {
		r.validator.Pop()

		return nil, err
	}

	falseRec, falseBody, err := r.rewriteElseBranch(s.Else)
	r.validator.Pop()

	if err != nil {
		return nil, err
	}

	r.recordIncludeTypes(bag)
	sets := state.ForBranch(trueRec, falseRec, r.tracker.PriorWritten(), bag)

	r.tracker.Merge(sets.Reads(), sets.Writes())
	r.lowered = true

	if r.cfg.Validate {
		return one(s), nil
	}

	repl, err := r.synth.Branch(cond, trueBody, falseBody, sets, bag)
	if err != nil {
		return nil, err
	}

	return repl, nil
}

// rewriteBranch analyzes one branch in its own scope record.
func (r *rewriter) rewriteBranch(stmts []ast.Stmt) (scope.Record, []ast.Stmt, error) {
	r.tracker.Enter()
	body, err := r.rewriteStmts(stmts)
	rec := r.tracker.Leave()

	return rec, body, err
}

// rewriteElseBranch handles the three else forms: absent, block, and
// else-if. An else-if is processed as a construct nested in the false
// branch, so chains lower inside out.
func (r *rewriter) rewriteElseBranch(els ast.Stmt) (scope.Record, []ast.Stmt, error) {
	switch e := els.(type) {
	case nil:
		return scope.NewRecord(), nil, nil

	case *ast.BlockStmt:
		return r.rewriteBranch(e.List)

	default:
		return r.rewriteBranch([]ast.Stmt{e})
	}
}

// scalarRegion rewrites a body under a scalar frame: nested constructs are
// still lowered, escapes confined below the frame stay legal, and the raw
// usage lands in the enclosing record with block-local defines dropped.
func (r *rewriter) scalarRegion(kind escape.Kind, body *ast.BlockStmt) error {
	r.tracker.Enter()
	r.validator.Push(kind, true)

	err := r.rewriteBlock(body)

	r.validator.Pop()
	rec := r.tracker.Leave()

	if err != nil {
		return err
	}

	writes := rec.Writes.Clone()
	writes.Remove(rec.Defines)
	r.tracker.Merge(rec.Reads, writes)

	return nil
}

func (r *rewriter) scalarElse(els ast.Stmt) error {
	switch e := els.(type) {
	case nil:
		return nil

	case *ast.BlockStmt:
		return r.scalarRegion(escape.Branch, e)

	default:
		_, err := r.rewriteStmt(e)

		return err
	}
}

func (r *rewriter) rewriteSwitch(s *ast.SwitchStmt) error {
	if s.Init != nil {
		if err := r.trackSimpleStmt(s.Init); err != nil {
			return err
		}
	}

	if s.Tag != nil {
		r.trackReads(s.Tag)
	}

	return r.rewriteCaseBodies(s.Body)
}

func (r *rewriter) rewriteTypeSwitch(s *ast.TypeSwitchStmt) error {
	if s.Init != nil {
		if err := r.trackSimpleStmt(s.Init); err != nil {
			return err
		}
	}

	if err := r.trackSimpleStmt(s.Assign); err != nil {
		return err
	}

	return r.rewriteCaseBodies(s.Body)
}

func (r *rewriter) rewriteSelect(s *ast.SelectStmt) error {
	r.validator.Push(escape.Switch, true)
	defer r.validator.Pop()

	for _, clause := range s.Body.List {
		comm, ok := clause.(*ast.CommClause)
		if !ok {
			continue
		}

		if comm.Comm != nil {
			if err := r.trackSimpleStmt(comm.Comm); err != nil {
				return err
			}
		}

		body, err := r.rewriteStmts(comm.Body)
		if err != nil {
			return err
		}

		comm.Body = body
	}

	return nil
}

func (r *rewriter) rewriteCaseBodies(body *ast.BlockStmt) error {
	r.validator.Push(escape.Switch, true)
	defer r.validator.Pop()

	for _, clause := range body.List {
		cc, ok := clause.(*ast.CaseClause)
		if !ok {
			continue
		}

		for _, expr := range cc.List {
			r.trackReads(expr)
		}

		stmts, err := r.rewriteStmts(cc.Body)
		if err != nil {
			return err
		}

		cc.Body = stmts
	}

	return nil
}

// trackSimpleStmt tracks usage of init/post style statements without
// rewriting them.
func (r *rewriter) trackSimpleStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return r.trackAssign(s)

	case *ast.IncDecStmt:
		r.trackReads(s.X)
		r.trackWriteExpr(s.X, false)

		return nil

	case *ast.ExprStmt:
		r.trackReads(s.X)

		return nil

	case *ast.SendStmt:
		r.trackReads(s.Chan)
		r.trackReads(s.Value)

		return nil

	case *ast.DeclStmt:
		return r.trackDecl(s)

	default:
		return nil
	}
}

func (r *rewriter) trackAssign(s *ast.AssignStmt) error {
	for _, rhs := range s.Rhs {
		r.trackReads(rhs)
	}

	define := s.Tok == token.DEFINE

	// Compound assignments (+=, &^=, …) read their targets too.
	if !define && s.Tok != token.ASSIGN {
		for _, lhs := range s.Lhs {
			r.trackReads(lhs)
		}
	}

	for _, lhs := range s.Lhs {
		r.trackWriteExpr(lhs, define)
	}

	return nil
}

func (r *rewriter) trackDecl(s *ast.DeclStmt) error {
	gen, ok := s.Decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return nil
	}

	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		for _, value := range vs.Values {
			r.trackReads(value)
		}

		for _, name := range vs.Names {
			r.tracker.Define(name.Name)
			r.recordType(name)
		}
	}

	return nil
}

// trackWriteExpr records an assignment target. A bare identifier is a
// write (or define); mutation through an index, selector or dereference
// reads the base value instead of rebinding the name.
func (r *rewriter) trackWriteExpr(lhs ast.Expr, define bool) {
	switch e := lhs.(type) {
	case *ast.Ident:
		if e.Name == "_" {
			return
		}

		if define {
			r.tracker.Define(e.Name)
		} else {
			r.tracker.Write(e.Name)
		}

		r.recordType(e)

	default:
		r.trackReads(lhs)
	}
}

// trackReads records every value read in an expression. Selector names and
// composite-literal field keys are not variable reads; function literals
// are opaque unless the recursive option is set, in which case each one is
// lowered as an independent root.
func (r *rewriter) trackReads(expr ast.Expr) {
	if expr == nil {
		return
	}

	ast.Inspect(expr, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.Ident:
			if e.Name != "_" {
				r.tracker.Read(e.Name)
				r.recordType(e)
			}

		case *ast.SelectorExpr:
			r.trackReads(e.X)

			return false

		case *ast.KeyValueExpr:
			if _, ok := e.Key.(*ast.Ident); !ok {
				r.trackReads(e.Key)
			}

			r.trackReads(e.Value)

			return false

		case *ast.FuncLit:
			r.nestedFunc(e)

			return false
		}

		return true
	})
}

// nestedFunc lowers a function literal as an independent root when the
// recursive option is set. Its reads and writes are never merged into the
// enclosing analysis; the include/exclude hints cover captured state.
func (r *rewriter) nestedFunc(lit *ast.FuncLit) {
	if !r.cfg.Recursive {
		return
	}

	nested := newRewriter(r.cfg)
	nested.synth = r.synth // shared temporary numbering
	nested.enterParams(nil, lit.Type)

	// Keep the first error; it surfaces when the enclosing root finishes.
	err := nested.rewriteBlock(lit.Body)

	switch {
	case err != nil && r.nestedErr == nil:
		r.nestedErr = err
	case nested.nestedErr != nil && r.nestedErr == nil:
		r.nestedErr = nested.nestedErr
	}

	if nested.lowered {
		r.lowered = true
	}
}

func (r *rewriter) recordType(id *ast.Ident) {
	info := r.cfg.Info
	if info == nil {
		return
	}

	if obj := info.ObjectOf(id); obj != nil {
		if v, ok := obj.(*types.Var); ok {
			r.tracker.RecordType(id.Name, v.Type())
		}
	}
}

func (r *rewriter) recordIncludeTypes(bag hints.Bag) {
	for _, id := range bag.IncludeIdents {
		r.recordType(id)
	}
}

func (r *rewriter) typeName(name string) (string, bool) {
	typ := r.tracker.TypeOf(name)
	if typ == nil {
		return "", false
	}

	qualifier := (*types.Package).Name
	if r.cfg.Pkg != nil {
		qualifier = types.RelativeTo(r.cfg.Pkg)
	}

	return types.TypeString(typ, qualifier), true
}
