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

package lane

import "fmt"

// Mask is a vector of per-lane condition values.
type Mask []bool

// Any reports whether at least one lane is active.
func (m Mask) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}

	return false
}

// All reports whether every lane is active.
func (m Mask) All() bool {
	for _, b := range m {
		if !b {
			return false
		}
	}

	return true
}

// Selectable blends two values of the same shape lane by lane. State types
// beyond the built-in slice kinds implement it to participate in divergent
// dispatch.
type Selectable interface {
	// Select returns a value holding the receiver where the mask is true
	// and other where it is false.
	Select(mask Mask, other any) any
}

// IfStmt executes a lowered conditional.
//
// The branch closures accept the state pack positionally and return a
// tuple matching the OutLabels option in arity and order. A bool condition
// runs the matching branch directly; a [Mask] condition runs both branches
// and blends their outputs per lane.
func IfStmt(state []any, cond any, trueFn, falseFn func([]any) []any, opts ...Option) []any {
	o := collect(opts)

	switch c := cond.(type) {
	case bool:
		out := falseFn
		if c {
			out = trueFn
		}

		return checkArity("IfStmt", out(state), len(o.outLabels))

	case Mask:
		if c.All() {
			return checkArity("IfStmt", trueFn(state), len(o.outLabels))
		}

		if !c.Any() {
			return checkArity("IfStmt", falseFn(state), len(o.outLabels))
		}

		t := checkArity("IfStmt", trueFn(state), len(o.outLabels))
		f := checkArity("IfStmt", falseFn(state), len(o.outLabels))

		out := make([]any, len(t))
		for i := range t {
			out[i] = Select(c, t[i], f[i])
		}

		return out

	default:
		panic(fmt.Sprintf("lane.IfStmt: unsupported condition type %T (label %q)", cond, o.label))
	}
}

// WhileLoop executes a lowered loop.
//
// The condition closure returns a bool or a [Mask]; the body closure
// returns an updated state tuple of the same arity and order as its input.
// With a Mask condition the loop runs while any lane is active, retiring
// finished lanes by blending each updated value with its previous one.
func WhileLoop(state []any, cond func([]any) any, body func([]any) []any, opts ...Option) []any {
	o := collect(opts)

	for n := 0; ; n++ {
		if o.maxIterations > 0 && n >= o.maxIterations {
			panic(fmt.Sprintf("lane.WhileLoop: exceeded %d iterations (label %q)", o.maxIterations, o.label))
		}

		switch c := cond(state).(type) {
		case bool:
			if !c {
				return state
			}

			state = checkArity("WhileLoop", body(state), len(state))

		case Mask:
			if !c.Any() {
				return state
			}

			next := checkArity("WhileLoop", body(state), len(state))
			if c.All() {
				state = next

				continue
			}

			for i := range state {
				state[i] = Select(c, next[i], state[i])
			}

		default:
			panic(fmt.Sprintf("lane.WhileLoop: unsupported condition type %T (label %q)", c, o.label))
		}
	}
}

// Select blends two values lane by lane: t where the mask is true, f
// elsewhere. Built-in slice kinds are handled directly; other types must
// implement [Selectable].
func Select(mask Mask, t, f any) any {
	switch tv := t.(type) {
	case Selectable:
		return tv.Select(mask, f)
	case []float64:
		return selectSlice(mask, tv, f.([]float64))
	case []float32:
		return selectSlice(mask, tv, f.([]float32))
	case []int:
		return selectSlice(mask, tv, f.([]int))
	case []int32:
		return selectSlice(mask, tv, f.([]int32))
	case []int64:
		return selectSlice(mask, tv, f.([]int64))
	case []uint32:
		return selectSlice(mask, tv, f.([]uint32))
	case []uint64:
		return selectSlice(mask, tv, f.([]uint64))
	case []bool:
		return selectSlice(mask, tv, f.([]bool))
	default:
		panic(fmt.Sprintf("lane.Select: type %T cannot diverge; implement lane.Selectable", t))
	}
}

func selectSlice[T any](mask Mask, t, f []T) []T {
	if len(t) != len(mask) || len(f) != len(mask) {
		panic(fmt.Sprintf("lane.Select: lane count mismatch: mask %d, values %d/%d", len(mask), len(t), len(f)))
	}

	out := make([]T, len(mask))
	for i, active := range mask {
		if active {
			out[i] = t[i]
		} else {
			out[i] = f[i]
		}
	}

	return out
}

func checkArity(name string, values []any, want int) []any {
	if want > 0 && len(values) != want {
		panic(fmt.Sprintf("lane.%s: state arity mismatch: got %d values, expected %d", name, len(values), want))
	}

	return values
}
