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

// Package lane defines the protocol between code rewritten by the lanelift
// generator and the dispatchers executing it.
//
// [Hint] annotates a loop or branch condition for the generator. As
// ordinary code it returns its condition unchanged, so annotated functions
// behave identically whether or not they have been rewritten.
//
// [IfStmt] and [WhileLoop] are the dispatch entry points generated code
// calls. The implementations here execute plain bool conditions directly
// and [Mask] conditions in evaluated per-lane mode; a vectorizing runtime
// can substitute its own dispatchers as long as it keeps this calling
// convention.
package lane

// Hint wraps a condition expression with annotations for the lowering
// pass. Evaluated as ordinary code it returns cond while ignoring every
// option.
func Hint[T any](cond T, _ ...Option) T {
	return cond
}

// Option annotates a Hint call or a dispatch call.
type Option interface {
	apply(o *options)
}

// options is the merged view a dispatcher acts on.
type options struct {
	mode          string
	label         string
	maxIterations int
	stateLabels   []string
	outLabels     []string
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}

	return o
}

// Mode requests an execution mode: "scalar", "evaluated" or "symbolic".
// In a Hint, "scalar" disables the transformation of the construct
// entirely; the other modes are forwarded to the dispatcher.
func Mode(mode string) Option { return modeOption(mode) }

type modeOption string

func (m modeOption) apply(o *options) { o.mode = string(m) }

// Label attaches a descriptive label, carried into diagnostics and
// dispatcher traces of large programs.
func Label(label string) Option { return labelOption(label) }

type labelOption string

func (l labelOption) apply(o *options) { o.label = string(l) }

// MaxIterations bounds the iteration count of a lowered loop.
func MaxIterations(n int) Option { return maxIterationsOption(n) }

type maxIterationsOption int

func (m maxIterationsOption) apply(o *options) { o.maxIterations = int(m) }

// Include forces variables into the state sets of a construct. Only
// meaningful inside a Hint; a runtime no-op.
func Include(_ ...any) Option { return nopOption{} }

// Exclude removes variables from the state sets of a construct. Only
// meaningful inside a Hint; a runtime no-op.
func Exclude(_ ...any) Option { return nopOption{} }

type nopOption struct{}

func (nopOption) apply(*options) {}

// StateLabels names the state values of a WhileLoop call, in pack order.
func StateLabels(names ...string) Option { return stateLabelsOption(names) }

type stateLabelsOption []string

func (s stateLabelsOption) apply(o *options) { o.stateLabels = s }

// OutLabels names the values an IfStmt call returns, in pack order.
func OutLabels(names ...string) Option { return outLabelsOption(names) }

type outLabelsOption []string

func (s outLabelsOption) apply(o *options) { o.outLabels = s }
