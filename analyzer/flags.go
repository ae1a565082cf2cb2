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

package analyzer

import (
	"flag"

	"fillmore-labs.com/lanelift/internal/config"
	"fillmore-labs.com/lanelift/internal/run"
)

// registerFlags binds the analyzer's configuration to command line flag values.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	flags.Var(boolValue{flags: &r.Behavior, value: config.IncludeGenerated},
		"generated", "validate generated files")
	flags.Var(boolValue{flags: &r.Behavior, value: config.Recursive},
		"recursive", "validate nested function literals as independent lowering roots")
}
