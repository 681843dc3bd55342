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

// Package metadata parses a node's pre-"---" header into a NodeMetadata
// record (title/tags/tracking/customs) and runs the <<declare>> pre-pass
// that spec §4.2 item 6 carves out of the raw line stream before scope
// grouping ever sees it.
package metadata

import (
	"fmt"
	"strings"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/diag"
	"github.com/dialogscript/yarnc/internal/rawline"
)

// TrackingMode is a node's visit-tracking disposition, per spec §3/§4.5.
type TrackingMode int

const (
	TrackingUnspecified TrackingMode = iota
	TrackingAlways
	TrackingNever
)

func (t TrackingMode) String() string {
	switch t {
	case TrackingAlways:
		return "always"
	case TrackingNever:
		return "never"
	default:
		return "unspecified"
	}
}

// NodeMetadata is the parsed header of one node: title, tags, tracking mode,
// and any custom key:value entries, per spec §3.
type NodeMetadata struct {
	Title    string
	Tags     []string
	Tracking TrackingMode
	Customs  map[string]string
}

// HeaderLine is one pre-"---" source line, with its 1-based line number.
type HeaderLine struct {
	LineNo int
	Text   string
}

// ParseHeader parses a node's header lines into a NodeMetadata record. Every
// non-blank line must be a "key: value" pair; title must appear exactly
// once and satisfy the identifier-shaped constraints of spec §3; tags
// accumulate across repeated "tags:" lines; tracking may appear at most
// once with value "always" or "never" (case-insensitive).
func ParseHeader(file string, lines []HeaderLine) (NodeMetadata, error) {
	meta := NodeMetadata{Customs: map[string]string{}}
	haveTitle := false
	haveTracking := false

	for _, hl := range lines {
		text := strings.TrimSpace(hl.Text)
		if text == "" {
			continue
		}
		idx := strings.IndexByte(text, ':')
		if idx < 0 {
			return NodeMetadata{}, diag.At(file, hl.LineNo, fmt.Errorf("node header line %q is not a key: value pair", text))
		}
		key := strings.TrimSpace(text[:idx])
		value := strings.TrimSpace(text[idx+1:])

		switch strings.ToLower(key) {
		case "title":
			if haveTitle {
				return NodeMetadata{}, diag.At(file, hl.LineNo, fmt.Errorf("duplicate title declaration"))
			}
			if err := validateTitle(value); err != nil {
				return NodeMetadata{}, diag.At(file, hl.LineNo, err)
			}
			meta.Title = value
			haveTitle = true
		case "tags":
			for _, tag := range strings.Split(value, ",") {
				tag = strings.TrimSpace(tag)
				if tag != "" {
					meta.Tags = append(meta.Tags, tag)
				}
			}
		case "tracking":
			if haveTracking {
				return NodeMetadata{}, diag.At(file, hl.LineNo, fmt.Errorf("duplicate tracking declaration"))
			}
			mode, err := parseTracking(value)
			if err != nil {
				return NodeMetadata{}, diag.At(file, hl.LineNo, err)
			}
			meta.Tracking = mode
			haveTracking = true
		default:
			meta.Customs[key] = value
		}
	}

	if !haveTitle {
		return NodeMetadata{}, diag.At(file, 0, fmt.Errorf("node is missing a title: declaration"))
	}
	return meta, nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}
	first := title[0]
	if !(first == '_' || (first >= 'A' && first <= 'Z') || (first >= 'a' && first <= 'z')) {
		return fmt.Errorf("title %q must start with an ASCII letter or '_'", title)
	}
	for i := 1; i < len(title); i++ {
		c := title[i]
		isAlnum := c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		if !isAlnum {
			return fmt.Errorf("title %q contains invalid character %q", title, string(c))
		}
	}
	return nil
}

func parseTracking(value string) (TrackingMode, error) {
	switch strings.ToLower(value) {
	case "always":
		return TrackingAlways, nil
	case "never":
		return TrackingNever, nil
	default:
		return TrackingUnspecified, fmt.Errorf("invalid tracking value %q, expected \"always\" or \"never\"", value)
	}
}

// Declaration is a parsed <<declare>> statement, per spec §3 "Variable
// declaration": a name, a default-value expression with no variable
// references, and an optional declared type.
type Declaration struct {
	Name    string
	Default ast.Expr
	Type    ast.DeclarationType
	HasType bool
	LineNo  int
}

// ExtractDeclares runs the <<declare>> pre-pass over lines: every declare
// line is removed from the stream and turned into a Declaration, validated
// to ensure its default expression contains no $variable references (spec
// §3: "Default-value expressions may not reference other variables").
// Non-declare lines are returned untouched, in their original order.
func ExtractDeclares(file string, lines []rawline.Line) (rest []rawline.Line, decls []Declaration, err error) {
	rest = make([]rawline.Line, 0, len(lines))
	for _, l := range lines {
		if l.Kind != rawline.KindDeclare {
			rest = append(rest, l)
			continue
		}
		if refersToVariable(l.DeclareDefault) {
			return nil, nil, diag.At(file, l.LineNo, fmt.Errorf("<<declare>> $%s: default value may not reference a variable", l.DeclareVar))
		}
		decls = append(decls, Declaration{
			Name:    l.DeclareVar,
			Default: l.DeclareDefault,
			Type:    l.DeclareType,
			HasType: l.HasDeclareType,
			LineNo:  l.LineNo,
		})
	}
	return rest, decls, nil
}

// refersToVariable reports whether expr's tree contains any GetVar node.
func refersToVariable(expr ast.Expr) bool {
	switch e := expr.(type) {
	case ast.GetVar:
		return true
	case ast.Paren:
		return refersToVariable(e.X)
	case ast.UnaryOp:
		return refersToVariable(e.X)
	case ast.BinaryOp:
		return refersToVariable(e.L) || refersToVariable(e.R)
	case ast.Cast:
		return refersToVariable(e.X)
	case ast.Call:
		return anyRefersToVariable(e.Args)
	case ast.BuiltinCall:
		return anyRefersToVariable(e.Args)
	default:
		return false
	}
}

func anyRefersToVariable(args []ast.Expr) bool {
	for _, a := range args {
		if refersToVariable(a) {
			return true
		}
	}
	return false
}
