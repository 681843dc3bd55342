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

// Package ids implements the two-phase line-ID assignment of spec §4.4:
// collect every author-provided #line:<id> into a set, rejecting
// duplicates, then mint IDs for every remaining dispatchable line from a
// per-node prefix and a counter shared across the whole compilation unit.
package ids

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dialogscript/yarnc/internal/collections"
	"github.com/dialogscript/yarnc/internal/diag"
	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/rawline"
	"github.com/dialogscript/yarnc/internal/scope"
)

// Node is one compilation unit's grouped node: its source file, parsed
// header, and scope tree, as produced by internal/metadata + internal/scope.
type Node struct {
	File  string
	Meta  metadata.NodeMetadata
	Scope *scope.Scope
}

type location struct {
	file string
	line int
}

// Assign runs the two-phase assignment over every node of a compilation
// unit in place: it mutates each rawline.Line.ID and each options-fork
// Flow's ForkID. The taken_ids set and id_counter are local to this single
// call, matching the single-threaded, non-shared-state model of spec §5.
func Assign(nodes []Node) error {
	taken := make(collections.Set[string])
	firstSeen := make(map[string]location)

	authored := func(file string, id string, lineNo int) error {
		if id == "" {
			return nil
		}
		if taken.Contains(id) {
			prev := firstSeen[id]
			return diag.At(file, lineNo, fmt.Errorf(
				"duplicate line id %q: first used at %s:%d", id, prev.file, prev.line))
		}
		taken.Add(id)
		firstSeen[id] = location{file: file, line: lineNo}
		return nil
	}

	for _, n := range nodes {
		if err := collectScope(n.File, n.Scope, authored); err != nil {
			return err
		}
	}

	counter := 0
	for _, n := range nodes {
		prefix := prefixFor(n.Meta.Title)
		generateScope(n.Scope, prefix, taken, &counter)
	}
	return nil
}

// eligible reports whether a flat-run line is one of the kinds spec §4.4
// assigns an ID to: a speech line, or a custom (non-built-in) command.
// <<set>>/<<jump>>/<<stop>> never receive an ID.
func eligible(l rawline.Line) bool {
	return l.Kind == rawline.KindSpeech || (l.Kind == rawline.KindCommand && l.CommandForm == rawline.CommandCustom)
}

func collectScope(file string, sc *scope.Scope, visit func(file, id string, lineNo int) error) error {
	if sc == nil {
		return nil
	}
	for _, flow := range sc.Flows {
		switch flow.Kind {
		case scope.FlowFlatRun:
			for _, l := range flow.FlatRun {
				if !eligible(l) {
					continue
				}
				if err := visit(file, l.Tags.LineID, l.LineNo); err != nil {
					return err
				}
			}
		case scope.FlowOptionsFork:
			for _, opt := range flow.Options {
				if err := visit(file, opt.Line.OptionTags.LineID, opt.Line.LineNo); err != nil {
					return err
				}
				if err := collectScope(file, opt.Child, visit); err != nil {
					return err
				}
			}
		case scope.FlowIfBranch:
			if err := collectScope(file, flow.If.Child, visit); err != nil {
				return err
			}
			for _, ei := range flow.ElseIfs {
				if err := collectScope(file, ei.Child, visit); err != nil {
					return err
				}
			}
			if flow.Else != nil {
				if err := collectScope(file, flow.Else.Child, visit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func generateScope(sc *scope.Scope, prefix string, taken collections.Set[string], counter *int) {
	if sc == nil {
		return
	}
	mint := func() string {
		for {
			id := fmt.Sprintf("%s%d", prefix, *counter)
			*counter++
			if !taken.Contains(id) {
				taken.Add(id)
				return id
			}
		}
	}

	for fi := range sc.Flows {
		flow := &sc.Flows[fi]
		switch flow.Kind {
		case scope.FlowFlatRun:
			for li := range flow.FlatRun {
				l := &flow.FlatRun[li]
				if !eligible(*l) {
					continue
				}
				if l.Tags.HasLineID {
					l.ID = l.Tags.LineID
				} else {
					l.ID = mint()
				}
			}
		case scope.FlowOptionsFork:
			flow.ForkID = mint()
			for oi := range flow.Options {
				opt := &flow.Options[oi]
				if opt.Line.OptionTags.HasLineID {
					opt.Line.ID = opt.Line.OptionTags.LineID
				} else {
					opt.Line.ID = mint()
				}
				generateScope(opt.Child, prefix, taken, counter)
			}
		case scope.FlowIfBranch:
			generateScope(flow.If.Child, prefix, taken, counter)
			for ei := range flow.ElseIfs {
				generateScope(flow.ElseIfs[ei].Child, prefix, taken, counter)
			}
			if flow.Else != nil {
				generateScope(flow.Else.Child, prefix, taken, counter)
			}
		}
	}
}

// prefixFor derives a node's auto-generated-ID prefix from its title, per
// spec §3: first letter of the first two words (splitting on case-change
// and underscore/hyphen), falling back to the first two letters of a
// single word, ultimately to the title's first character alone.
func prefixFor(title string) string {
	words := splitWords(title)
	switch {
	case len(words) >= 2:
		return string(words[0][0]) + string(words[1][0])
	case len(words) == 1 && len(words[0]) >= 2:
		return words[0][:2]
	case len(words) == 1:
		return words[0]
	default:
		return "L"
	}
}

func splitWords(title string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(title)
	for i, r := range runes {
		if r == '_' || r == '-' {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
			continue
		}
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}
