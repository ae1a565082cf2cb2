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

// Package scope tracks variable reads and writes per lexically nested
// region of a function under lowering.
//
// One record is active per region (function body, loop body, each branch of
// a conditional). Records form a stack: pushing and popping is strictly
// paired with entering and leaving a construct, and a child record's net
// reads and writes are folded into its parent when the child closes.
package scope

import "go/types"

// Record is the read/write set of one lexical region.
type Record struct {
	// Reads holds the names read in the region.
	Reads Names

	// Writes holds the names assigned in the region, including defines.
	Writes Names

	// Defines holds the names declared in the region with := or var.
	// Go block scoping makes these construct-local, so they can never be
	// carried out of the construct.
	Defines Names
}

// NewRecord returns an empty read/write record.
func NewRecord() Record {
	return Record{Reads: make(Names), Writes: make(Names), Defines: make(Names)}
}

// Tracker maintains the stack of active records. The bottom record
// represents the function body; function parameters are recorded as written
// at entry.
type Tracker struct {
	stack []Record
	types map[string]types.Type
}

// NewTracker creates a tracker with the function-body record active.
func NewTracker() *Tracker {
	return &Tracker{
		stack: []Record{NewRecord()},
		types: make(map[string]types.Type),
	}
}

// Enter pushes a fresh record for a nested region.
func (t *Tracker) Enter() {
	t.stack = append(t.stack, NewRecord())
}

// Leave pops and returns the finished record so the caller can fold it into
// its decisions. Leaving does not merge; use [Tracker.Merge] once the
// caller has filtered the child's sets.
func (t *Tracker) Leave() Record {
	if len(t.stack) <= 1 {
		panic("scope: Leave without matching Enter")
	}

	rec := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]

	return rec
}

// Current returns the active record.
func (t *Tracker) Current() *Record {
	return &t.stack[len(t.stack)-1]
}

// Read records a read of name in the active region.
func (t *Tracker) Read(name string) {
	t.Current().Reads.Add(name)
}

// Write records an assignment to name in the active region.
func (t *Tracker) Write(name string) {
	t.Current().Writes.Add(name)
}

// Define records a declaration of name in the active region.
func (t *Tracker) Define(name string) {
	rec := t.Current()
	rec.Writes.Add(name)
	rec.Defines.Add(name)
}

// Merge folds filtered child sets into the active region.
func (t *Tracker) Merge(reads, writes Names) {
	rec := t.Current()
	rec.Reads.AddAll(reads)
	rec.Writes.AddAll(writes)
}

// PriorWritten returns the union of names written in the active region and
// all enclosing ones. Called after [Tracker.Leave] has popped a construct's
// record, before its effect is merged back, this is exactly the set of
// names written before the construct: anything here has a well-defined
// value when the construct's body does not run.
func (t *Tracker) PriorWritten() Names {
	prior := make(Names)
	for _, rec := range t.stack {
		prior.AddAll(rec.Writes)
	}

	return prior
}

// RecordType memoizes the first type observed for a name. The synthesizer
// uses it to derive the assertion types of generated state unpacking.
func (t *Tracker) RecordType(name string, typ types.Type) {
	if typ == nil {
		return
	}

	if _, ok := t.types[name]; !ok {
		t.types[name] = typ
	}
}

// TypeOf returns the memoized type of a name, or nil when unknown.
func (t *Tracker) TypeOf(name string) types.Type {
	return t.types[name]
}
