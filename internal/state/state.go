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

// Package state computes the minimal state-variable sets threaded into and
// out of a lowered construct.
package state

import (
	"fillmore-labs.com/lanelift/internal/hints"
	"fillmore-labs.com/lanelift/internal/scope"
)

// Sets is the resolved state of one construct, sorted lexicographically so
// generated closures have a reproducible parameter order.
type Sets struct {
	// In lists the variables passed into the closures.
	In []string

	// Out lists the variables the closures return.
	Out []string
}

// Reads returns the loop state reads that survive into the merged parent
// record: the resolved input set.
func (s Sets) Reads() scope.Names {
	return scope.NewNames(s.In...)
}

// Writes returns the construct writes that survive into the merged parent
// record: the resolved output set.
func (s Sets) Writes() scope.Names {
	return scope.NewNames(s.Out...)
}

// ForLoop resolves the state sets of a while-form loop from its body record
// (condition reads included) and the names written before the construct.
//
// A variable only persists across iterations if it was live before the
// loop; otherwise it is iteration-local and must not leak, since its value
// is undefined when the loop runs zero times. Names declared inside the
// body are construct-local by Go scoping and are treated the same way.
func ForLoop(body scope.Record, prior scope.Names, bag hints.Bag) Sets {
	reads := body.Reads.Clone()
	writes := body.Writes.Clone()

	// Free variables: read but written nowhere in the visible chain.
	// True external references are never threaded as state.
	dropFree(reads, writes, prior)

	// Iteration-locals: written here but not live beforehand.
	local := make(scope.Names)
	for name := range writes {
		if !prior.Has(name) {
			local.Add(name)
		}
	}

	local.AddAll(body.Defines)
	reads.Remove(local)
	writes.Remove(local)

	in := reads.Union(writes)
	out := writes

	return finish(in, out, bag)
}

// ForBranch resolves the state sets of a conditional from the records of
// its two branches (sharing one reads accumulator) and the names written
// before the construct. Condition reads belong to the enclosing scope: the
// condition value is evaluated in place, not inside a closure.
//
// A name is carried out if both branches write it, or if at least one
// branch writes it and it already existed beforehand, so its value on the
// untaken path is the pre-existing one.
func ForBranch(b1, b2 scope.Record, prior scope.Names, bag hints.Bag) Sets {
	reads := b1.Reads.Union(b2.Reads)
	both := b1.Writes.Intersect(b2.Writes)
	either := b1.Writes.Union(b2.Writes)

	dropFree(reads, either, prior)

	out := both.Union(either.Intersect(prior))

	// Names declared inside a branch are invisible after the statement,
	// even when they shadow an existing variable: the outer one is
	// untouched by a shadowing :=, so it must not be rebound.
	local := b1.Defines.Union(b2.Defines)
	out.Remove(local)
	reads.Remove(local)

	in := reads.Union(out.Intersect(prior))

	return finish(in, out, bag)
}

// dropFree removes names read but never written anywhere in scope.
func dropFree(reads, writes, prior scope.Names) {
	free := make(scope.Names)

	for name := range reads {
		if !writes.Has(name) && !prior.Has(name) {
			free.Add(name)
		}
	}

	reads.Remove(free)
}

// finish applies the include/exclude overrides and sorts both sets.
// Include forcibly adds names the analysis cannot see (e.g. captured via
// indirect aggregate access); Exclude forcibly removes names.
func finish(in, out scope.Names, bag hints.Bag) Sets {
	for _, name := range bag.Include {
		in.Add(name)
		out.Add(name)
	}

	excluded := scope.NewNames(bag.Exclude...)
	in.Remove(excluded)
	out.Remove(excluded)

	return Sets{In: in.Sorted(), Out: out.Sorted()}
}
