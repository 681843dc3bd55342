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
	"fmt"
	"strconv"
	"strings"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/rawline"
	"github.com/dialogscript/yarnc/internal/scope"
)

// exprToGo renders an expression AST as a Go source fragment evaluated
// against a `s runtime.Storage` in scope, per spec §4.6's "storage
// mutation inline" / condition-emission rules. Variable reads go through
// the generated accessor marker type; built-ins go through the runtime
// package's implementations.
func exprToGo(e ast.Expr) string {
	switch v := e.(type) {
	case ast.IntLit:
		return strconv.FormatInt(int64(v), 10)
	case ast.FloatLit:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case ast.StringLit:
		return strconv.Quote(string(v))
	case ast.BoolLit:
		if v {
			return "true"
		}
		return "false"
	case ast.GetVar:
		return fmt.Sprintf("runtime.Var%s{}.Get(s)", exportIdent(v.Name))
	case ast.Ident:
		return strconv.Quote(string(v))
	case ast.Paren:
		return "(" + exprToGo(v.X) + ")"
	case ast.UnaryOp:
		return v.Op.String() + exprToGo(v.X)
	case ast.BinaryOp:
		return exprToGo(v.L) + " " + v.Op.String() + " " + exprToGo(v.R)
	case ast.Cast:
		return goType(v.Target) + "(" + exprToGo(v.X) + ")"
	case ast.Call:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprToGo(a)
		}
		// Custom (non-builtin) function calls are the author's own
		// script-level functions; the emitted code calls through to a
		// same-named Go function the project supplies alongside its
		// Storage implementation.
		return fmt.Sprintf("%s(s%s)", v.Name, prependComma(args))
	case ast.BuiltinCall:
		return builtinCallToGo(v)
	default:
		return "/* unsupported expression */ nil"
	}
}

func prependComma(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return ", " + strings.Join(args, ", ")
}

var builtinGoNames = map[ast.BuiltinFunc]string{
	ast.Visited:         "Visited",
	ast.VisitedCount:    "VisitedCount",
	ast.FormatInvariant: "FormatInvariant",
	ast.Random:          "Random",
	ast.RandomRange:     "RandomRange",
	ast.Dice:            "Dice",
	ast.Round:           "Round",
	ast.RoundPlaces:     "RoundPlaces",
	ast.Floor:           "Floor",
	ast.Ceil:            "Ceil",
	ast.Inc:             "Inc",
	ast.Dec:             "Dec",
	ast.Decimal:         "Decimal",
	ast.Int:             "Int",
}

func builtinCallToGo(v ast.BuiltinCall) string {
	name := builtinGoNames[v.Name]
	switch v.Name {
	case ast.Visited, ast.VisitedCount:
		node, _ := nodeNameArg(v.Args)
		return fmt.Sprintf("runtime.%s(s, %s)", name, strconv.Quote(node))
	default:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprToGo(a)
		}
		return fmt.Sprintf("runtime.%s(%s)", name, strings.Join(args, ", "))
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

// stmt is a fragment of a generated Advance function body.
type stmt interface {
	render(ind string) string
}

type lineStmt string

func (s lineStmt) render(ind string) string { return ind + string(s) + "\n" }

type ifStmt struct {
	clauses []condClause // first is the `if`, rest are `else if`
	els     []stmt       // nil if no else
}

type condClause struct {
	cond string
	body []stmt
}

func (s ifStmt) render(ind string) string {
	var b strings.Builder
	for i, c := range s.clauses {
		kw := "if "
		if i > 0 {
			kw = "} else if "
		}
		b.WriteString(ind + kw + c.cond + " {\n")
		for _, st := range c.body {
			b.WriteString(st.render(ind + "\t"))
		}
	}
	if s.els != nil {
		b.WriteString(ind + "} else {\n")
		for _, st := range s.els {
			b.WriteString(st.render(ind + "\t"))
		}
	}
	b.WriteString(ind + "}\n")
	return b.String()
}

func renderStmts(stmts []stmt, ind string) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(s.render(ind))
	}
	return b.String()
}

// frame is one level of a continuation stack: the flows of one Scope, and
// the index of the flow execution resumes at when this level is reached.
// lineIdx additionally resumes mid-flat-run, for the starting frame only.
type frame struct {
	flows   []scope.Flow
	idx     int
	lineIdx int
}

// renderer carries the whole-corpus tracking table needed to decide, at
// code-generation time rather than at runtime, whether a <<jump>>'s target
// increments its visit counter (spec §4.6: "a visited-counter increment
// conditioned on the node's tracking mode" — the mode is already resolved
// by internal/infer before the emitter ever runs, so the check belongs in
// the generator, not in the generated code).
type renderer struct {
	tracking map[string]metadata.TrackingMode
}

// continuation walks the scope tree forward from stack's top frame,
// producing the Go statements of spec §4.6's advance-function construction:
// a flat-run line emits inline or terminates; an options-fork or a
// terminal flat-run line ends the walk; an if-branch recurses into each
// clause with the remaining stack as its fallthrough continuation; running
// out of frames (the implicit scope end) yields Finished.
func (r *renderer) continuation(stack []frame) []stmt {
	if len(stack) == 0 {
		return []stmt{lineStmt("return runtime.Finished()")}
	}
	top := stack[len(stack)-1]
	if top.idx >= len(top.flows) {
		return r.continuation(stack[:len(stack)-1])
	}
	flow := top.flows[top.idx]

	switch flow.Kind {
	case scope.FlowFlatRun:
		return r.continueFlatRun(stack, flow.FlatRun, top.lineIdx)

	case scope.FlowOptionsFork:
		return []stmt{lineStmt(fmt.Sprintf("return runtime.OptionsYield(%s{})", forkTypeName(flow.ForkID)))}

	case scope.FlowIfBranch:
		return r.continueIfBranch(stack, flow)

	default:
		return []stmt{lineStmt("return runtime.Finished()")}
	}
}

func (r *renderer) continueFlatRun(stack []frame, lines []rawline.Line, from int) []stmt {
	var out []stmt
	for li := from; li < len(lines); li++ {
		l := lines[li]
		switch {
		case l.Kind == rawline.KindSpeech:
			return append(out, lineStmt(fmt.Sprintf("return runtime.SpeechYield(%s{})", speechTypeName(l.ID))))

		case l.Kind == rawline.KindCommand && l.CommandForm == rawline.CommandCustom:
			return append(out, lineStmt(fmt.Sprintf("return runtime.CommandYield(%s{})", commandTypeName(l.ID))))

		case l.Kind == rawline.KindCommand && l.CommandForm == rawline.CommandSet:
			out = append(out, lineStmt(setStmtSource(l)))

		case l.Kind == rawline.KindCommand && l.CommandForm == rawline.CommandJump:
			if r.tracking[l.JumpTarget] == metadata.TrackingAlways {
				out = append(out, lineStmt(fmt.Sprintf("runtime.RecordVisit(s, %s)", strconv.Quote(l.JumpTarget))))
			}
			out = append(out, lineStmt(fmt.Sprintf("return runtime.StartNode(s, %s)", strconv.Quote(l.JumpTarget))))
			return out

		case l.Kind == rawline.KindCommand && l.CommandForm == rawline.CommandStop:
			return append(out, lineStmt("return runtime.Finished()"))
		}
	}

	// Flat run exhausted without a terminal statement: resume at the next
	// flow of the same frame.
	top := stack[len(stack)-1]
	next := append([]frame{}, stack[:len(stack)-1]...)
	next = append(next, frame{flows: top.flows, idx: top.idx + 1})
	return append(out, r.continuation(next)...)
}

func (r *renderer) continueIfBranch(stack []frame, flow scope.Flow) []stmt {
	after := append([]frame{}, stack[:len(stack)-1]...)
	after = append(after, frame{flows: stack[len(stack)-1].flows, idx: stack[len(stack)-1].idx + 1})

	branchStmts := func(child *scope.Scope) []stmt {
		branchStack := append([]frame{}, after...)
		if child != nil {
			branchStack = append(branchStack, frame{flows: child.Flows})
		}
		return r.continuation(branchStack)
	}

	ifs := ifStmt{
		clauses: []condClause{{cond: exprToGo(flow.If.Line.Cond), body: branchStmts(flow.If.Child)}},
	}
	for _, ei := range flow.ElseIfs {
		ifs.clauses = append(ifs.clauses, condClause{cond: exprToGo(ei.Line.Cond), body: branchStmts(ei.Child)})
	}
	if flow.Else != nil {
		ifs.els = branchStmts(flow.Else.Child)
	} else {
		// No else clause: falling off every condition takes the same
		// fallthrough continuation as a branch that didn't terminate.
		ifs.els = r.continuation(after)
	}
	return []stmt{ifs}
}

func setStmtSource(l rawline.Line) string {
	varName := fmt.Sprintf("runtime.Var%s{}", exportIdent(l.SetVar))
	rhs := exprToGo(l.SetExpr)
	switch l.SetOp {
	case rawline.SetAssign:
		return fmt.Sprintf("%s.Set(s, %s)", varName, rhs)
	default:
		op := map[rawline.SetOp]string{
			rawline.SetAdd: "+", rawline.SetSub: "-", rawline.SetMul: "*",
			rawline.SetDiv: "/", rawline.SetRem: "%",
		}[l.SetOp]
		return fmt.Sprintf("%s.Set(s, %s.Get(s) %s %s)", varName, varName, op, rhs)
	}
}

func speechTypeName(id string) string  { return "Speech" + id }
func commandTypeName(id string) string { return "Command" + id }
func forkTypeName(id string) string    { return "Fork" + id }
func optionTypeName(id string) string  { return "Option" + id }
