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

package scope

import "slices"

// Names is a set of variable names.
type Names map[string]struct{}

// NewNames creates a set containing the given names.
func NewNames(names ...string) Names {
	s := make(Names, len(names))
	for _, name := range names {
		s.Add(name)
	}

	return s
}

// Add inserts a name into the set.
func (s Names) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether the set contains a name.
func (s Names) Has(name string) bool {
	_, ok := s[name]

	return ok
}

// AddAll inserts every name of other into the set.
func (s Names) AddAll(other Names) {
	for name := range other {
		s.Add(name)
	}
}

// Clone returns an independent copy of the set.
func (s Names) Clone() Names {
	c := make(Names, len(s))
	c.AddAll(s)

	return c
}

// Union returns a new set holding the names of both sets.
func (s Names) Union(other Names) Names {
	u := s.Clone()
	u.AddAll(other)

	return u
}

// Intersect returns a new set holding the names present in both sets.
func (s Names) Intersect(other Names) Names {
	i := make(Names)

	for name := range s {
		if other.Has(name) {
			i.Add(name)
		}
	}

	return i
}

// Remove deletes every name of other from the set.
func (s Names) Remove(other Names) {
	for name := range other {
		delete(s, name)
	}
}

// Sorted returns the names in lexicographic order, so that generated
// closures have a stable parameter order across runs.
func (s Names) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
