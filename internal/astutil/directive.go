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

package astutil

import (
	"fmt"
	"go/ast"
	"strings"
)

// directivePrefix marks a function for lowering, in the style of go:generate.
const directivePrefix = "//lanelift:lower"

// Directive holds the parsed arguments of a //lanelift:lower comment.
type Directive struct {
	// Recursive requests lowering of function literals nested inside the
	// marked function.
	Recursive bool
}

// FindDirective scans a function's doc comment for a //lanelift:lower
// directive. The second result is false when the function is not marked.
// Unknown directive arguments are reported as an error.
func FindDirective(doc *ast.CommentGroup) (Directive, bool, error) {
	var d Directive

	if doc == nil {
		return d, false, nil
	}

	for _, comment := range doc.List {
		text := comment.Text
		if text != directivePrefix && !strings.HasPrefix(text, directivePrefix+" ") {
			continue
		}

		for arg := range strings.FieldsSeq(text[len(directivePrefix):]) {
			switch arg {
			case "recursive":
				d.Recursive = true
			default:
				return d, true, fmt.Errorf("unknown lanelift:lower argument %q", arg)
			}
		}

		return d, true, nil
	}

	return d, false, nil
}
