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

package lane_test

import (
	"testing"

	. "fillmore-labs.com/lanelift/lane"
)

func TestHintIdentity(t *testing.T) {
	t.Parallel()

	if !Hint(true) {
		t.Error("Hint(true) = false")
	}

	if got := Hint(42, Mode("scalar"), Label("x"), MaxIterations(10)); got != 42 {
		t.Errorf("Hint(42, …) = %d", got)
	}

	mask := Mask{true, false}
	if got := Hint(mask, Include(mask), Exclude(mask)); !got[0] || got[1] {
		t.Errorf("Hint(mask) = %v", got)
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mask Mask
		any  bool
		all  bool
	}{
		{name: "Empty", mask: Mask{}, any: false, all: true},
		{name: "Mixed", mask: Mask{true, false}, any: true, all: false},
		{name: "AllActive", mask: Mask{true, true}, any: true, all: true},
		{name: "NoneActive", mask: Mask{false}, any: false, all: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.mask.Any(); got != tt.any {
				t.Errorf("Any() = %v, want %v", got, tt.any)
			}

			if got := tt.mask.All(); got != tt.all {
				t.Errorf("All() = %v, want %v", got, tt.all)
			}
		})
	}
}
