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

// Package infer implements the semantic inference of spec §4.5: variable
// type inference over declarations and usages, and per-node visit-tracking
// inference driven by visited/visited_count references.
package infer

import (
	"fmt"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/collections"
	"github.com/dialogscript/yarnc/internal/diag"
	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/rawline"
	"github.com/dialogscript/yarnc/internal/scope"
)

// Node is the subset of a compiled node's data the inference pass needs:
// its header, its <<declare>> statements, and its grouped scope tree.
type Node struct {
	File  string
	Meta  metadata.NodeMetadata
	Decls []metadata.Declaration
	Scope *scope.Scope
}

// VarInfo is one variable's resolved inference result, per spec §3's
// "Inferred variable table".
type VarInfo struct {
	Declared   bool
	Default    ast.Expr
	HasDefault bool
	Type       ast.DeclarationType // TypeUnknown if unresolved
}

// Result is the whole-corpus inference output.
type Result struct {
	// Variables maps variable name to its resolved type information.
	Variables map[string]VarInfo
	// Tracking maps node title to its resolved tracking mode (never
	// TrackingUnspecified after Infer succeeds).
	Tracking map[string]metadata.TrackingMode
}

type varAccum struct {
	declared    bool
	declFile    string
	declLine    int
	declType    ast.DeclarationType
	hasDeclType bool
	default_    ast.Expr
	hasDefault  bool
	inferred    collections.Set[ast.DeclarationType]
}

// Infer runs the declarations pass, the usage pass, resolution, and
// per-node tracking inference over the whole compilation unit.
func Infer(nodes []Node) (Result, error) {
	vars := make(map[string]*varAccum)
	knownTitles := make(collections.Set[string], len(nodes))
	for _, n := range nodes {
		knownTitles.Add(n.Meta.Title)
	}

	// Declarations pass.
	for _, n := range nodes {
		for _, d := range n.Decls {
			if existing, ok := vars[d.Name]; ok && existing.declared {
				return Result{}, diag.At(n.File, d.LineNo, fmt.Errorf("duplicate declaration of variable $%s (first declared at %s:%d)", d.Name, existing.declFile, existing.declLine))
			}
			acc := accumFor(vars, d.Name)
			acc.declared = true
			acc.declFile, acc.declLine = n.File, d.LineNo
			acc.default_, acc.hasDefault = d.Default, true
			if d.HasType {
				acc.declType, acc.hasDeclType = d.Type, true
			} else if t, ok := literalType(d.Default); ok {
				acc.declType, acc.hasDeclType = t, true
			}
		}
	}

	// Usage pass.
	tracking := make(collections.Set[string]) // titles referenced by visited(...)
	for _, n := range nodes {
		u := &usageWalker{vars: vars, knownTitles: knownTitles, tracking: tracking}
		if err := u.walkScope(n.Scope); err != nil {
			return Result{}, diag.At(n.File, 0, err)
		}
	}

	// Resolution.
	result := Result{Variables: make(map[string]VarInfo, len(vars)), Tracking: make(map[string]metadata.TrackingMode, len(nodes))}
	for name, acc := range vars {
		info := VarInfo{Declared: acc.declared, Default: acc.default_, HasDefault: acc.hasDefault}
		switch {
		case acc.hasDeclType:
			info.Type = acc.declType
		case len(acc.inferred) == 1:
			for t := range acc.inferred.All() {
				info.Type = t
			}
		default:
			info.Type = ast.TypeUnknown
		}
		result.Variables[name] = info
	}

	// Tracking inference per node.
	for _, n := range nodes {
		switch n.Meta.Tracking {
		case metadata.TrackingAlways, metadata.TrackingNever:
			result.Tracking[n.Meta.Title] = n.Meta.Tracking
		default:
			if tracking.Contains(n.Meta.Title) {
				result.Tracking[n.Meta.Title] = metadata.TrackingAlways
			} else {
				result.Tracking[n.Meta.Title] = metadata.TrackingNever
			}
		}
	}

	return result, nil
}

func accumFor(vars map[string]*varAccum, name string) *varAccum {
	acc, ok := vars[name]
	if !ok {
		acc = &varAccum{inferred: make(collections.Set[ast.DeclarationType])}
		vars[name] = acc
	}
	return acc
}

// literalType determines an expression's type without resolving any
// variable reference, per the "type of E" rules of spec §4.5: literals carry
// their own type, an explicit cast carries its target type, and a
// parenthesized/unary/binary expression carries whichever inner type it can
// determine.
func literalType(e ast.Expr) (ast.DeclarationType, bool) {
	switch v := e.(type) {
	case ast.IntLit:
		return ast.TypeNumber, true
	case ast.FloatLit:
		return ast.TypeF64, true
	case ast.StringLit:
		return ast.TypeString, true
	case ast.BoolLit:
		return ast.TypeBool, true
	case ast.Cast:
		return v.Target, true
	case ast.Paren:
		return literalType(v.X)
	case ast.UnaryOp:
		return literalType(v.X)
	case ast.BinaryOp:
		if t, ok := literalType(v.L); ok {
			return t, true
		}
		return literalType(v.R)
	default:
		return ast.TypeUnknown, false
	}
}

type usageWalker struct {
	vars        map[string]*varAccum
	knownTitles collections.Set[string]
	tracking    collections.Set[string]
}

func (u *usageWalker) contribute(name string, t ast.DeclarationType) {
	accumFor(u.vars, name).inferred.Add(t)
}

func (u *usageWalker) walkScope(sc *scope.Scope) error {
	if sc == nil {
		return nil
	}
	for _, flow := range sc.Flows {
		switch flow.Kind {
		case scope.FlowFlatRun:
			for _, l := range flow.FlatRun {
				if err := u.walkLine(l); err != nil {
					return err
				}
			}
		case scope.FlowOptionsFork:
			for _, opt := range flow.Options {
				if opt.Line.HasOptionCond {
					if err := u.walkExpr(opt.Line.OptionCond); err != nil {
						return err
					}
				}
				for _, a := range opt.Line.OptionText.Args {
					if err := u.walkExpr(a); err != nil {
						return err
					}
				}
				if err := u.walkScope(opt.Child); err != nil {
					return err
				}
			}
		case scope.FlowIfBranch:
			if err := u.walkExpr(flow.If.Line.Cond); err != nil {
				return err
			}
			if err := u.walkScope(flow.If.Child); err != nil {
				return err
			}
			for _, ei := range flow.ElseIfs {
				if err := u.walkExpr(ei.Line.Cond); err != nil {
					return err
				}
				if err := u.walkScope(ei.Child); err != nil {
					return err
				}
			}
			if flow.Else != nil {
				if err := u.walkScope(flow.Else.Child); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (u *usageWalker) walkLine(l rawline.Line) error {
	switch l.Kind {
	case rawline.KindSpeech:
		if l.HasSpeaker && l.Speaker.IsVariable {
			u.contribute(l.Speaker.Var.Name, ast.TypeString)
		}
		for _, a := range l.Text.Args {
			if err := u.walkExpr(a); err != nil {
				return err
			}
		}
	case rawline.KindCommand:
		switch l.CommandForm {
		case rawline.CommandSet:
			if t, ok := literalType(l.SetExpr); ok {
				u.contribute(l.SetVar, t)
			}
			if err := u.walkExpr(l.SetExpr); err != nil {
				return err
			}
		case rawline.CommandCustom:
			for _, a := range l.Args {
				if err := u.walkExpr(a); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (u *usageWalker) walkExpr(e ast.Expr) error {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case ast.GetVar:
		accumFor(u.vars, v.Name)
	case ast.BinaryOp:
		u.contributeFromBinary(v)
		if err := u.walkExpr(v.L); err != nil {
			return err
		}
		return u.walkExpr(v.R)
	case ast.UnaryOp:
		return u.walkExpr(v.X)
	case ast.Paren:
		return u.walkExpr(v.X)
	case ast.Cast:
		return u.walkExpr(v.X)
	case ast.Call:
		for _, a := range v.Args {
			if err := u.walkExpr(a); err != nil {
				return err
			}
		}
	case ast.BuiltinCall:
		if v.Name == ast.Visited || v.Name == ast.VisitedCount {
			if name, ok := nodeNameArg(v.Args); ok {
				if !u.knownTitles.Contains(name) {
					return fmt.Errorf("%s(%s) references unknown node %q", v.Name, name, name)
				}
				u.tracking.Add(name)
			}
		}
		for _, a := range v.Args {
			if err := u.walkExpr(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func (u *usageWalker) contributeFromBinary(v ast.BinaryOp) {
	if g, ok := v.L.(ast.GetVar); ok {
		if t, ok2 := literalType(v.R); ok2 {
			u.contribute(g.Name, t)
		}
	}
	if g, ok := v.R.(ast.GetVar); ok {
		if t, ok2 := literalType(v.L); ok2 {
			u.contribute(g.Name, t)
		}
	}
}

func nodeNameArg(args []ast.Expr) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	switch v := args[0].(type) {
	case ast.StringLit:
		return string(v), true
	case ast.Ident:
		return string(v), true
	default:
		return "", false
	}
}
