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

package astutil_test

import (
	"go/ast"
	"testing"

	. "fillmore-labs.com/lanelift/internal/astutil"
)

func doc(lines ...string) *ast.CommentGroup {
	comments := make([]*ast.Comment, 0, len(lines))
	for _, line := range lines {
		comments = append(comments, &ast.Comment{Text: line})
	}

	return &ast.CommentGroup{List: comments}
}

func TestFindDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       *ast.CommentGroup
		found     bool
		recursive bool
		wantErr   bool
	}{
		{
			name: "NoDoc",
		},
		{
			name: "Unmarked",
			doc:  doc("// step advances the simulation."),
		},
		{
			name:  "Marked",
			doc:   doc("// step advances the simulation.", "//lanelift:lower"),
			found: true,
		},
		{
			name:      "Recursive",
			doc:       doc("//lanelift:lower recursive"),
			found:     true,
			recursive: true,
		},
		{
			name: "SimilarPrefixIgnored",
			doc:  doc("//lanelift:lowercase"),
		},
		{
			name:    "UnknownArgument",
			doc:     doc("//lanelift:lower fast"),
			found:   true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, found, err := FindDirective(tt.doc)

			if (err != nil) != tt.wantErr {
				t.Fatalf("FindDirective error = %v, wantErr %v", err, tt.wantErr)
			}

			if found != tt.found {
				t.Errorf("Found = %v, want %v", found, tt.found)
			}

			if d.Recursive != tt.recursive {
				t.Errorf("Recursive = %v, want %v", d.Recursive, tt.recursive)
			}
		})
	}
}
