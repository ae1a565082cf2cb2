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

package rewrite

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// advisoryThreshold is the number of function rewrites in one process past
// which a one-time advisory is logged. The analyze-and-synthesize sequence
// is meant for build time, not for hot paths.
const advisoryThreshold = 512

// transformCount is process-wide and advisory only; an imprecise count
// under concurrent rewrites is acceptable.
var (
	transformCount atomic.Int64
	advisoryOnce   sync.Once
)

func noteTransform() {
	if transformCount.Add(1) != advisoryThreshold {
		return
	}

	advisoryOnce.Do(func() {
		slog.Warn("lanelift: rewrite invoked unusually often in one process; "+
			"the transform is intended to run once per function at build time",
			slog.Int64("count", advisoryThreshold))
	})
}
