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

package emit

import (
	"strconv"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/rawline"
	"github.com/dialogscript/yarnc/internal/scope"
)

// SpeechUnit is one generated Speech-implementing struct.
type SpeechUnit struct {
	ID          string
	TypeName    string
	Tags        []string
	Literal     string
	Args        []string // Go source, one per {expr} placeholder, in order
	HasSpeaker  bool
	SpeakerLit  string
	SpeakerExpr string // "" unless the speaker is a $variable
	AdvanceBody string
}

// CommandUnit is one generated Command-implementing struct.
type CommandUnit struct {
	ID          string
	TypeName    string
	Name        string
	Args        []string
	AdvanceBody string
}

// OptionUnit is one generated OptionLine-implementing struct.
type OptionUnit struct {
	ID          string
	TypeName    string
	Tags        []string
	Literal     string
	Args        []string
	HasCond     bool
	CondExpr    string
	ForkID      string
	ForkType    string
	Index       int
	AdvanceBody string
}

// ForkUnit is one generated OptionsFork-implementing struct.
type ForkUnit struct {
	ID       string
	TypeName string
	Options  []OptionUnit
}

// NodeUnit is everything templates.go's node-package template needs to
// render one node's generated file.
type NodeUnit struct {
	Title       string
	GoTitle     string
	PackageName string
	Tags        []string
	Tracking    string
	Customs     map[string]string
	Speeches    []SpeechUnit
	Commands    []CommandUnit
	Forks       []ForkUnit
	StartBody   string
}

// BuildNodeUnit assembles one node's template data: its header fields and
// every generated dispatch-target struct, each with its Advance-function
// body rendered by continuation-passing over the scope tree (spec §4.6).
func BuildNodeUnit(n CompiledNode, tracking map[string]metadata.TrackingMode) NodeUnit {
	r := &renderer{tracking: tracking}

	unit := NodeUnit{
		Title:       n.Meta.Title,
		GoTitle:     exportIdent(n.Meta.Title),
		PackageName: packageName(n.Meta.Title),
		Tags:        n.Meta.Tags,
		Customs:     n.Meta.Customs,
	}
	if tracking[n.Meta.Title] == metadata.TrackingAlways {
		unit.Tracking = "Always"
	} else {
		unit.Tracking = "Never"
	}

	var flows []scope.Flow
	if n.Scope != nil {
		flows = n.Scope.Flows
	}
	unit.StartBody = renderStmts(r.continuation([]frame{{flows: flows}}), "\t")

	var points []dispatchPoint
	collectPoints(nil, n.Scope, &points)
	for _, p := range points {
		body := renderStmts(r.continuation(p.stack), "\t")
		switch p.kind {
		case dpSpeech:
			unit.Speeches = append(unit.Speeches, speechUnitFrom(p.line, body))
		case dpCommand:
			unit.Commands = append(unit.Commands, commandUnitFrom(p.line, body))
		case dpOption:
			unit.Forks = appendOption(unit.Forks, p, body)
		}
	}
	return unit
}

func speechUnitFrom(l rawline.Line, body string) SpeechUnit {
	u := SpeechUnit{
		ID:          l.ID,
		TypeName:    speechTypeName(l.ID),
		Tags:        l.Tags.Values,
		Literal:     l.Text.Literal,
		AdvanceBody: body,
		HasSpeaker:  l.HasSpeaker,
	}
	for _, a := range l.Text.Args {
		u.Args = append(u.Args, exprToGo(a))
	}
	if l.HasSpeaker {
		if l.Speaker.IsVariable {
			u.SpeakerExpr = exprToGo(ast.GetVar{Name: l.Speaker.Var.Name})
		} else {
			u.SpeakerLit = l.Speaker.Literal
		}
	}
	return u
}

func commandUnitFrom(l rawline.Line, body string) CommandUnit {
	u := CommandUnit{
		ID:          l.ID,
		TypeName:    commandTypeName(l.ID),
		Name:        l.CommandName,
		AdvanceBody: body,
	}
	for _, a := range l.Args {
		u.Args = append(u.Args, exprToGo(a))
	}
	return u
}

func appendOption(forks []ForkUnit, p dispatchPoint, body string) []ForkUnit {
	opt := OptionUnit{
		ID:          p.line.ID,
		TypeName:    optionTypeName(p.line.ID),
		Tags:        p.line.OptionTags.Values,
		Literal:     p.line.OptionText.Literal,
		HasCond:     p.line.HasOptionCond,
		ForkID:      p.forkID,
		ForkType:    forkTypeName(p.forkID),
		Index:       p.index,
		AdvanceBody: body,
	}
	for _, a := range p.line.OptionText.Args {
		opt.Args = append(opt.Args, exprToGo(a))
	}
	if p.line.HasOptionCond {
		opt.CondExpr = exprToGo(p.line.OptionCond)
	}

	for i := range forks {
		if forks[i].ID == p.forkID {
			forks[i].Options = append(forks[i].Options, opt)
			return forks
		}
	}
	return append(forks, ForkUnit{ID: p.forkID, TypeName: forkTypeName(p.forkID), Options: []OptionUnit{opt}})
}

type dpKind int

const (
	dpSpeech dpKind = iota
	dpCommand
	dpOption
)

type dispatchPoint struct {
	kind   dpKind
	line   rawline.Line
	forkID string
	index  int
	stack  []frame
}

// collectPoints walks a node's whole scope tree, producing one
// dispatchPoint per speech line, custom command, and option — every line
// kind that spec §4.6 gives its own Advance function. ancestors is the
// continuation stack to resume in once the current scope's own flows run
// out (nil for the node's top-level scope).
func collectPoints(ancestors []frame, sc *scope.Scope, out *[]dispatchPoint) {
	if sc == nil {
		return
	}
	for fi, flow := range sc.Flows {
		switch flow.Kind {
		case scope.FlowFlatRun:
			for li, l := range flow.FlatRun {
				if l.Kind == rawline.KindSpeech {
					stack := withFrame(ancestors, frame{flows: sc.Flows, idx: fi, lineIdx: li})
					*out = append(*out, dispatchPoint{kind: dpSpeech, line: l, stack: stack})
				} else if l.Kind == rawline.KindCommand && l.CommandForm == rawline.CommandCustom {
					stack := withFrame(ancestors, frame{flows: sc.Flows, idx: fi, lineIdx: li})
					*out = append(*out, dispatchPoint{kind: dpCommand, line: l, stack: stack})
				}
			}

		case scope.FlowOptionsFork:
			after := withFrame(ancestors, frame{flows: sc.Flows, idx: fi + 1})
			for oi, opt := range flow.Options {
				optStack := after
				if opt.Child != nil {
					optStack = withFrame(after, frame{flows: opt.Child.Flows})
				}
				*out = append(*out, dispatchPoint{kind: dpOption, line: opt.Line, forkID: flow.ForkID, index: oi, stack: optStack})
				collectPoints(after, opt.Child, out)
			}

		case scope.FlowIfBranch:
			after := withFrame(ancestors, frame{flows: sc.Flows, idx: fi + 1})
			collectPoints(after, flow.If.Child, out)
			for _, ei := range flow.ElseIfs {
				collectPoints(after, ei.Child, out)
			}
			if flow.Else != nil {
				collectPoints(after, flow.Else.Child, out)
			}
		}
	}
}

func withFrame(stack []frame, f frame) []frame {
	out := make([]frame, len(stack), len(stack)+1)
	copy(out, stack)
	return append(out, f)
}

var _ = strconv.Quote // keep strconv import if future units need it directly
