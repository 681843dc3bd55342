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

// Package rawline classifies trimmed source lines into the flat-line forms
// of spec §4.2 (Speech, Command, Option-line, EndOptions, Branch), sharing a
// nested-delimiter/string-literal state machine between text-template
// interpolations and command arguments, grounded in
// language/internal/cc/parser's token_reader.go scanning approach.
package rawline

import (
	"fmt"
	"strings"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/exprparse"
)

// ParseTemplate scans src for brace-delimited interpolations, parsing each as
// an embedded expression, and returns a text template whose Literal has each
// interpolation collapsed to an empty placeholder "{}".
func ParseTemplate(src string) (ast.TextTemplate, error) {
	var lit strings.Builder
	var args []ast.Expr
	i := 0
	for i < len(src) {
		if src[i] == '{' {
			frag, next, err := scanBalanced(src, i+1, '}')
			if err != nil {
				return ast.TextTemplate{}, err
			}
			expr, err := exprparse.Parse(frag)
			if err != nil {
				return ast.TextTemplate{}, fmt.Errorf("interpolation %q: %w", frag, err)
			}
			args = append(args, expr)
			lit.WriteString("{}")
			i = next
			continue
		}
		lit.WriteByte(src[i])
		i++
	}
	return ast.TextTemplate{Literal: lit.String(), Args: args}, nil
}

// scanBalanced scans forward from start (just past an opening delimiter)
// honoring nested (), {}, [] and string-literal escaping, returning the
// fragment up to (but not including) the close that brings nesting back to
// zero, and the index just past that close.
func scanBalanced(s string, start int, outerClose byte) (frag string, next int, err error) {
	depth := 1
	inString := false
	afterBackslash := false
	j := start
	for j < len(s) {
		c := s[j]
		if inString {
			switch {
			case afterBackslash:
				afterBackslash = false
			case c == '\\':
				afterBackslash = true
			case c == '"':
				inString = false
			}
			j++
			continue
		}
		switch c {
		case '"':
			inString = true
			j++
		case '(', '{', '[':
			depth++
			j++
		case ')', '}', ']':
			depth--
			if depth == 0 {
				if c != outerClose {
					return "", 0, fmt.Errorf("mismatched delimiter %q, expected %q", c, outerClose)
				}
				return s[start:j], j + 1, nil
			}
			j++
		default:
			j++
		}
	}
	return "", 0, fmt.Errorf("unterminated '%c...%c'", s[start-1], outerClose)
}

// splitArgs splits a whitespace-separated argument list honoring nested
// delimiters, string literals, and operator-continuation, per spec §4.2:
// "Whitespace outside nesting separates arguments except when the previous
// non-space character is one of + - / * % > < ! = (continuation of an
// operator)".
func splitArgs(s string) ([]string, error) {
	var args []string
	var cur strings.Builder
	depth := 0
	inString := false
	afterBackslash := false
	var lastNonSpace byte

	flush := func() {
		if trimmed := strings.TrimSpace(cur.String()); trimmed != "" {
			args = append(args, trimmed)
		}
		cur.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			cur.WriteByte(c)
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
		switch {
		case c == '"':
			inString = true
			cur.WriteByte(c)
		case c == '(' || c == '{' || c == '[':
			depth++
			cur.WriteByte(c)
		case c == ')' || c == '}' || c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unmatched closing delimiter %q", c)
			}
			cur.WriteByte(c)
		case c == ' ' || c == '\t':
			if depth > 0 || isOperatorContinuation(lastNonSpace) {
				cur.WriteByte(c)
				continue
			}
			flush()
			continue
		default:
			cur.WriteByte(c)
		}
		lastNonSpace = c
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced delimiters in argument list %q", s)
	}
	if inString {
		return nil, fmt.Errorf("unterminated string literal in argument list %q", s)
	}
	flush()
	return args, nil
}

// splitTrailingTags splits s into a body and a trailing "#tag #tag:value …"
// metadata part, honoring nested delimiters and string-literal state the
// same way splitArgs does, so a '#' inside a placeholder's string literal
// does not end the body early. Per spec §3, '#' outside a placeholder
// starts metadata.
func splitTrailingTags(s string) (body, tagsPart string, err error) {
	depth := 0
	inString := false
	afterBackslash := false

	for i := 0; i < len(s); i++ {
		c := s[i]
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
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
			if depth < 0 {
				return "", "", fmt.Errorf("unmatched closing delimiter %q before tags", c)
			}
		case '#':
			if depth == 0 {
				return s[:i], s[i:], nil
			}
		}
	}
	if depth != 0 || inString {
		return "", "", fmt.Errorf("unbalanced delimiters in %q", s)
	}
	return s, "", nil
}

func isOperatorContinuation(c byte) bool {
	switch c {
	case '+', '-', '/', '*', '%', '>', '<', '!', '=':
		return true
	default:
		return false
	}
}
