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

package gclplugin

import lanelift "fillmore-labs.com/lanelift/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Generated enables validation of marked functions in generated files.
	Generated *bool `json:"generated,omitzero"`
	// Recursive validates function literals nested in marked functions as
	// independent lowering roots.
	Recursive *bool `json:"recursive,omitzero"`
}

// Options converts [Settings] into a list of [lanelift.Option] for the lanelift analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []lanelift.Option {
	var opts []lanelift.Option

	opts = appendOption(opts, s.Generated, lanelift.WithGenerated)
	opts = appendOption(opts, s.Recursive, lanelift.WithRecursive)

	return opts
}

// appendOption appends a non-nil setting to a [lanelift.Option] list.
func appendOption[T any](opts []lanelift.Option, value *T, constructor func(T) lanelift.Option) []lanelift.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
