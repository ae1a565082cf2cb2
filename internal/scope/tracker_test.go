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

package scope_test

import (
	"go/types"
	"slices"
	"testing"

	. "fillmore-labs.com/lanelift/internal/scope"
)

func TestNames(t *testing.T) {
	t.Parallel()

	a := NewNames("x", "y")
	b := NewNames("y", "z")

	if got, want := a.Union(b).Sorted(), []string{"x", "y", "z"}; !slices.Equal(got, want) {
		t.Errorf("Union = %v, want %v", got, want)
	}

	if got, want := a.Intersect(b).Sorted(), []string{"y"}; !slices.Equal(got, want) {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	c := a.Clone()
	c.Remove(b)

	if got, want := c.Sorted(), []string{"x"}; !slices.Equal(got, want) {
		t.Errorf("Remove = %v, want %v", got, want)
	}

	if got, want := a.Sorted(), []string{"x", "y"}; !slices.Equal(got, want) {
		t.Errorf("Clone did not copy, original = %v, want %v", got, want)
	}
}

func TestTrackerNesting(t *testing.T) {
	t.Parallel()

	tr := NewTracker()

	tr.Enter() // function body
	tr.Write("x")
	tr.Write("y")

	tr.Enter() // loop body
	tr.Read("x")
	tr.Write("x")
	tr.Define("tmp")
	tr.Write("tmp")

	rec := tr.Leave()

	// After the construct record pops, the names written before the
	// construct are still visible, with the record's own writes gone.
	if got, want := tr.PriorWritten().Sorted(), []string{"x", "y"}; !slices.Equal(got, want) {
		t.Errorf("PriorWritten = %v, want %v", got, want)
	}

	if got, want := rec.Reads.Sorted(), []string{"x"}; !slices.Equal(got, want) {
		t.Errorf("Reads = %v, want %v", got, want)
	}

	if got, want := rec.Writes.Sorted(), []string{"tmp", "x"}; !slices.Equal(got, want) {
		t.Errorf("Writes = %v, want %v", got, want)
	}

	if got, want := rec.Defines.Sorted(), []string{"tmp"}; !slices.Equal(got, want) {
		t.Errorf("Defines = %v, want %v", got, want)
	}

	// The net effect of the inner scope lands in the enclosing record.
	tr.Merge(rec.Reads, NewNames("x"))

	outer := tr.Leave()

	if !outer.Reads.Has("x") || !outer.Writes.Has("x") {
		t.Errorf("Merged record = %+v, want x read and written", outer)
	}

	if outer.Writes.Has("tmp") {
		t.Error("Loop-local definition leaked into the enclosing scope")
	}
}

func TestTrackerTypes(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.Enter()

	intType := types.Typ[types.Int]
	boolType := types.Typ[types.Bool]

	tr.RecordType("x", intType)
	tr.RecordType("x", boolType) // first record wins

	if got := tr.TypeOf("x"); got != intType {
		t.Errorf("TypeOf(x) = %v, want %v", got, intType)
	}

	if got := tr.TypeOf("unknown"); got != nil {
		t.Errorf("TypeOf(unknown) = %v, want nil", got)
	}
}

func TestTrackerUnpairedLeave(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Leave without Enter did not panic")
		}
	}()

	NewTracker().Leave()
}
