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

package source

import (
	"fmt"
	"strings"

	"github.com/dialogscript/yarnc/internal/diag"
)

// Split strips comments, trims and drops empty lines, and partitions the
// result into nodes, per spec §4.7/§6: a run of "key: value" header lines,
// a "---" line starting the node body, body lines, and a "===" line ending
// the node. Orphan text that accumulates as a pending header but never
// reaches a "---" is a fatal file-level error, as is a node body that never
// reaches its "===".
func Split(file, content string) ([]NodeSource, error) {
	var nodes []NodeSource
	var pendingHeader []Line
	var current *NodeSource

	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		stripped := stripComment(raw)
		trimmed := strings.TrimRight(stripped, " \t\r")
		text := strings.TrimSpace(trimmed)

		switch text {
		case "---":
			if current != nil {
				return nil, diag.At(file, lineNo, fmt.Errorf("node started with '---' before the previous node's '==='"))
			}
			current = &NodeSource{File: file, Header: pendingHeader}
			pendingHeader = nil
			continue
		case "===":
			if current == nil {
				return nil, diag.At(file, lineNo, fmt.Errorf("'===' with no preceding '---'"))
			}
			nodes = append(nodes, *current)
			current = nil
			continue
		}

		if trimmed == "" {
			continue
		}

		// Preserve original indentation for scope grouping; only the
		// trailing-comment text (if any) and trailing whitespace are
		// stripped ahead of this point.
		line := Line{LineNo: lineNo, Text: strings.TrimRight(stripped, " \t\r")}
		if current == nil {
			pendingHeader = append(pendingHeader, line)
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	if len(pendingHeader) > 0 {
		return nil, diag.At(file, pendingHeader[0].LineNo, fmt.Errorf("text before the next node's '---' never reached one (orphan header)"))
	}
	if current != nil {
		line := 0
		if n := len(current.Lines); n > 0 {
			line = current.Lines[n-1].LineNo + 1
		}
		return nil, diag.At(file, line, fmt.Errorf("unterminated node: missing '==='"))
	}

	return nodes, nil
}

// stripComment removes a trailing "//…" comment from raw, tracking
// double-quoted string-literal state (with backslash escaping) so a "//"
// inside a quoted string in a text template is never mistaken for a
// comment start. Mirrors the nested-delimiter/string-literal scan of
// internal/rawline.ParseTemplate's scanBalanced.
func stripComment(raw string) string {
	inString := false
	afterBackslash := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case afterBackslash:
				afterBackslash = false
			case c == '\\':
				afterBackslash = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '/':
			if i+1 < len(raw) && raw[i+1] == '/' {
				return raw[:i]
			}
		}
	}
	return raw
}
