// Copyright 2026 EngFlow Inc. All rights reserved.
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

// Package lexer tokenizes the fragments of dialogue-script source that carry
// embedded expressions: text-template interpolations, command bodies, and
// if-condition arguments.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Cursor is a 1-based line/column position within a source fragment.
type Cursor struct {
	Line, Column int
}

var (
	// CursorInit is the position at the start of a fragment.
	CursorInit = Cursor{Line: 1, Column: 1}
	// CursorEOF is a sentinel cursor used once the input is exhausted.
	CursorEOF = Cursor{}
)

func (c Cursor) String() string {
	if c == CursorEOF {
		return "EOF"
	}
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}

// AdvancedBy returns the cursor after consuming lookAhead, which is assumed to
// begin at c. Newlines increment Line and reset Column; other runes advance
// Column.
func (c Cursor) AdvancedBy(lookAhead string) Cursor {
	newlines := strings.Count(lookAhead, "\n")
	tailBegin := 1 + strings.LastIndex(lookAhead, "\n")
	tailLen := utf8.RuneCountInString(lookAhead[tailBegin:])

	if newlines == 0 {
		c.Column += tailLen
	} else {
		c.Line += newlines
		c.Column = 1 + tailLen
	}
	return c
}
