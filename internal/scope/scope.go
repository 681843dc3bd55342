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

// Package scope builds the indentation-defined tree of flows (flat runs,
// options-forks, if-branches) described in spec §4.3, grounded in
// the teacher's directive-tree builder shape (read directives until a stop
// predicate, one nested branch per elif/else up to endif) with indentation
// substituted for directive keywords as the scope-closing signal.
package scope

import (
	"fmt"
	"strings"

	"github.com/dialogscript/yarnc/internal/diag"
	"github.com/dialogscript/yarnc/internal/rawline"
)

// FlowKind discriminates the three shapes a Flow can take.
type FlowKind int

const (
	FlowFlatRun FlowKind = iota
	FlowOptionsFork
	FlowIfBranch
)

// Flow is one unit inside a Scope: a flat run of lines, an options-fork, or
// an if-branch, per spec §3.
type Flow struct {
	Kind FlowKind

	FlatRun []rawline.Line // FlowFlatRun

	// ForkID is the options-fork's own line ID (an options-fork has no
	// source line of its own to carry an authored id, so it is always
	// minted by internal/ids; spec §4.4).
	ForkID  string         // FlowOptionsFork
	Options []OptionBranch // FlowOptionsFork

	If      Clause   // FlowIfBranch
	ElseIfs []Clause // FlowIfBranch
	Else    *Clause  // FlowIfBranch, optional
}

// OptionBranch is one option line of an options-fork paired with its
// optional consequence scope.
type OptionBranch struct {
	Line  rawline.Line
	Child *Scope
}

// Clause is one if/elseif/else header line paired with its optional body
// scope.
type Clause struct {
	Line  rawline.Line
	Child *Scope
}

// Scope is an indent-determined region of statements, per spec §3.
type Scope struct {
	Indent int
	Flows  []Flow
}

// Build groups a node's flat, ordered, declare-free line stream (see
// internal/metadata.ExtractDeclares) into a Scope tree. It returns a nil
// Scope, nil error for an empty line stream (spec §4.3: "no scope (None)").
func Build(file string, lines []rawline.Line) (*Scope, error) {
	b := &builder{file: file, lines: lines}
	sc, err := b.buildScope(-1)
	if err != nil {
		return nil, err
	}
	if b.pos != len(b.lines) {
		cur := b.lines[b.pos]
		return nil, diag.At(file, cur.LineNo, fmt.Errorf("indent jump: line at indent %d does not belong to any enclosing scope", cur.Indent))
	}
	return sc, nil
}

type builder struct {
	file  string
	lines []rawline.Line
	pos   int
}

// buildScope consumes lines at one self-indent level (the indent of the
// first unconsumed line, which must be strictly greater than parentIndent),
// per the peek-indent algorithm of spec §4.3.
func (b *builder) buildScope(parentIndent int) (*Scope, error) {
	if b.pos >= len(b.lines) {
		return nil, nil
	}
	self := b.lines[b.pos].Indent
	if self <= parentIndent {
		return nil, nil
	}

	sc := &Scope{Indent: self}
	var flatRun []rawline.Line
	flushFlat := func() {
		if len(flatRun) > 0 {
			sc.Flows = append(sc.Flows, Flow{Kind: FlowFlatRun, FlatRun: flatRun})
			flatRun = nil
		}
	}

	for b.pos < len(b.lines) {
		cur := b.lines[b.pos]
		if cur.Indent < self {
			break
		}
		if cur.Indent > self {
			return nil, diag.At(b.file, cur.LineNo, fmt.Errorf("indent jump: expected indent %d, found %d", self, cur.Indent))
		}

		switch cur.Kind {
		case rawline.KindSpeech, rawline.KindCommand:
			flatRun = append(flatRun, cur)
			b.pos++

		case rawline.KindOption:
			flushFlat()
			opts, err := b.buildOptionsFork(self)
			if err != nil {
				return nil, err
			}
			sc.Flows = append(sc.Flows, Flow{Kind: FlowOptionsFork, Options: opts})

		case rawline.KindIf:
			flushFlat()
			branch, err := b.buildIfBranch(self)
			if err != nil {
				return nil, err
			}
			sc.Flows = append(sc.Flows, Flow{Kind: FlowIfBranch, If: branch.If, ElseIfs: branch.ElseIfs, Else: branch.Else})

		case rawline.KindElseIf, rawline.KindElse, rawline.KindEndIf:
			return nil, diag.At(b.file, cur.LineNo, fmt.Errorf("orphan <<%s>> with no matching <<if>>", strings.ToLower(cur.Kind.String())))

		case rawline.KindEndOptions:
			return nil, diag.At(b.file, cur.LineNo, fmt.Errorf("orphan '<-' with no preceding option"))

		default:
			return nil, diag.At(b.file, cur.LineNo, fmt.Errorf("unexpected line kind %s in scope body", cur.Kind))
		}
	}
	flushFlat()

	if len(sc.Flows) == 0 {
		return nil, nil
	}
	return sc, nil
}

// buildOptionsFork reads sibling option lines at self-indent, each with its
// own consequence scope, until the next line is not an option line at
// self-indent. A trailing "<-" at self-indent, if present, is consumed as
// the fork's explicit terminator. Sibling consequence scopes must agree on
// indent (first binding is authoritative), per spec §4.3.
func (b *builder) buildOptionsFork(self int) ([]OptionBranch, error) {
	var out []OptionBranch
	childIndent := -1
	haveChildIndent := false

	for b.pos < len(b.lines) && b.lines[b.pos].Indent == self && b.lines[b.pos].Kind == rawline.KindOption {
		opt := b.lines[b.pos]
		b.pos++
		child, err := b.buildScope(self)
		if err != nil {
			return nil, err
		}
		if child != nil {
			if !haveChildIndent {
				childIndent, haveChildIndent = child.Indent, true
			} else if child.Indent != childIndent {
				return nil, diag.At(b.file, opt.LineNo, fmt.Errorf("option sibling indent mismatch: expected %d, found %d", childIndent, child.Indent))
			}
		}
		out = append(out, OptionBranch{Line: opt, Child: child})
	}

	if b.pos < len(b.lines) && b.lines[b.pos].Indent == self && b.lines[b.pos].Kind == rawline.KindEndOptions {
		b.pos++
	}
	return out, nil
}

type ifBranch struct {
	If      Clause
	ElseIfs []Clause
	Else    *Clause
}

// buildIfBranch reads the if-clause, zero or more elseif-clauses, an
// optional else-clause, and the mandatory matching endif, all at
// self-indent, per spec §4.3.
func (b *builder) buildIfBranch(self int) (ifBranch, error) {
	ifLine := b.lines[b.pos]
	b.pos++
	ifChild, err := b.buildScope(self)
	if err != nil {
		return ifBranch{}, err
	}

	branch := ifBranch{If: Clause{Line: ifLine, Child: ifChild}}
	childIndent, haveChildIndent := -1, false
	if ifChild != nil {
		childIndent, haveChildIndent = ifChild.Indent, true
	}
	checkIndent := func(lineNo int, child *Scope) error {
		if child == nil {
			return nil
		}
		if !haveChildIndent {
			childIndent, haveChildIndent = child.Indent, true
			return nil
		}
		if child.Indent != childIndent {
			return diag.At(b.file, lineNo, fmt.Errorf("if-branch clause indent mismatch: expected %d, found %d", childIndent, child.Indent))
		}
		return nil
	}

	for b.pos < len(b.lines) && b.lines[b.pos].Indent == self && b.lines[b.pos].Kind == rawline.KindElseIf {
		line := b.lines[b.pos]
		b.pos++
		child, err := b.buildScope(self)
		if err != nil {
			return ifBranch{}, err
		}
		if err := checkIndent(line.LineNo, child); err != nil {
			return ifBranch{}, err
		}
		branch.ElseIfs = append(branch.ElseIfs, Clause{Line: line, Child: child})
	}

	if b.pos < len(b.lines) && b.lines[b.pos].Indent == self && b.lines[b.pos].Kind == rawline.KindElse {
		line := b.lines[b.pos]
		b.pos++
		child, err := b.buildScope(self)
		if err != nil {
			return ifBranch{}, err
		}
		if err := checkIndent(line.LineNo, child); err != nil {
			return ifBranch{}, err
		}
		branch.Else = &Clause{Line: line, Child: child}
	}

	if b.pos >= len(b.lines) || b.lines[b.pos].Indent != self || b.lines[b.pos].Kind != rawline.KindEndIf {
		return ifBranch{}, diag.At(b.file, ifLine.LineNo, fmt.Errorf("<<if>> is missing its matching <<endif>>"))
	}
	b.pos++
	return branch, nil
}
