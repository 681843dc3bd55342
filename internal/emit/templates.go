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

import "text/template"

// The four source templates below are rendered once per Artifact and then
// normalized with go/format.Source and golang.org/x/tools/imports (emit.go).
// Keeping them as standalone template text (rather than go/ast construction,
// which the teacher never uses for its generated-code paths) matches the
// teacher's own code-generation packages, which assemble source from
// text/template strings and let gofmt own layout.

var runtimeFuncs = template.FuncMap{}

var genFuncs = template.FuncMap{"tagsLit": tagsLit}

// runtimeTemplate renders the shared runtime package: the Storage interface,
// the four yield/instruction kinds, TrackingMode, every variable accessor
// marker type, the 14 built-in functions, and the node registry that lets
// <<jump>> resolve targets without importing any node package (spec §4.6;
// the registry is this repo's answer to the cross-node-cycle problem a
// direct node-to-node call would create).
var runtimeTemplate = template.Must(template.New("runtime").Funcs(runtimeFuncs).Parse(`// Code generated by yarnc. DO NOT EDIT.

package runtime

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// Storage is the mutable variable store a compiled dialogue runs against.
// The generated accessor marker types below are the only callers; an
// application wires its own implementation (or uses the generated default
// when generate_storage is set) and nothing else in this package reaches
// into it directly.
type Storage interface {
	GetString(name string) string
	SetString(name string, v string)
	GetBool(name string) bool
	SetBool(name string, v bool)
	GetInt64(name string) int64
	SetInt64(name string, v int64)
	GetFloat64(name string) float64
	SetFloat64(name string, v float64)

	// VisitCount returns how many times the named node has started.
	VisitCount(node string) int64
	// RecordVisit increments the named node's visit counter.
	RecordVisit(node string)
}

// TrackingMode is a node's resolved visited()-tracking mode (spec §4.5);
// always resolved to Always or Never by the time code is generated.
type TrackingMode int

const (
	TrackingNever TrackingMode = iota
	TrackingAlways
)

// Speech is one generated speech line.
type Speech interface {
	LineID() string
	Tags() []string
	Speaker() string
	Text() string
	Advance(s Storage) YarnYield
}

// Command is one generated custom-command line.
type Command interface {
	LineID() string
	Command() string
	Advance(s Storage) YarnYield
}

// OptionsFork is one generated options-fork.
type OptionsFork interface {
	Options() []OptionLine
}

// OptionLine is one generated option of an OptionsFork.
type OptionLine struct {
	Line        string
	Tags        []string
	Available   bool
	Fork        OptionsFork
	IndexOnFork int
	advance     func(s Storage) YarnYield
}

// Advance runs this option's own continuation — the first statement of the
// option's child scope, not the option line itself (spec §4.6).
func (o OptionLine) Advance(s Storage) YarnYield { return o.advance(s) }

// InstructionKind discriminates the three shapes an Instruction can take.
type InstructionKind int

const (
	SpeechInstr InstructionKind = iota
	CommandInstr
	OptionsInstr
)

// Instruction is the Go rendering of the source language's
// Instruction(Instruction) | Finished sum type: since Go has no closed sum
// types, Kind discriminates which of Speech/Command/Options is populated.
type Instruction struct {
	Kind    InstructionKind
	Speech  Speech
	Command Command
	Options OptionsFork
}

// YarnYield is what Advance returns: either a pending Instruction, or
// Finished set to report the node has nothing left to run.
type YarnYield struct {
	Instruction *Instruction
	Finished    bool
}

func SpeechYield(s Speech) YarnYield {
	return YarnYield{Instruction: &Instruction{Kind: SpeechInstr, Speech: s}}
}
func CommandYield(c Command) YarnYield {
	return YarnYield{Instruction: &Instruction{Kind: CommandInstr, Command: c}}
}
func OptionsYield(o OptionsFork) YarnYield {
	return YarnYield{Instruction: &Instruction{Kind: OptionsInstr, Options: o}}
}
func Finished() YarnYield { return YarnYield{Finished: true} }

// node registry: each nodes/<pkg> package calls Register from its own
// init(), so runtime never imports a node package and a <<jump>> cycle
// between nodes never becomes a Go import cycle.
var (
	registryMu sync.RWMutex
	registry   = map[string]func(s Storage) YarnYield{}
)

// Register associates a node title with its Start function. Called from
// each generated node package's init().
func Register(title string, start func(s Storage) YarnYield) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[title] = start
}

// StartNode resolves a <<jump>> target through the registry and starts it.
func StartNode(s Storage, title string) YarnYield {
	registryMu.RLock()
	start, ok := registry[title]
	registryMu.RUnlock()
	if !ok {
		panic("yarnc: jump to unregistered node " + title)
	}
	return start(s)
}

// RecordVisit increments a node's visit counter ahead of a <<jump>> into it,
// when that node's tracking mode resolved to Always (spec §4.5/§4.6).
func RecordVisit(s Storage, node string) { s.RecordVisit(node) }

// Visited reports whether the named node has ever started.
func Visited(s Storage, node string) bool { return s.VisitCount(node) > 0 }

// VisitedCount returns how many times the named node has started.
func VisitedCount(s Storage, node string) int64 { return s.VisitCount(node) }

// FormatInvariant renders v using Go's default, locale-invariant formatting.
func FormatInvariant(v any) string { return fmt.Sprintf("%v", v) }

// Random returns a pseudo-random float in [0, 1).
func Random() float64 { return rand.Float64() }

// RandomRange returns a pseudo-random float in [lo, hi).
func RandomRange(lo, hi float64) float64 { return lo + rand.Float64()*(hi-lo) }

// Dice rolls an n-sided die, returning a value in [1, n].
func Dice(sides int64) int64 { return rand.Int63n(sides) + 1 }

// Round rounds v to the nearest integer.
func Round(v float64) int64 { return int64(math.Round(v)) }

// RoundPlaces rounds v to the given number of decimal places.
func RoundPlaces(v float64, places int64) float64 {
	mult := math.Pow(10, float64(places))
	return math.Round(v*mult) / mult
}

// Floor rounds v down to the nearest integer.
func Floor(v float64) int64 { return int64(math.Floor(v)) }

// Ceil rounds v up to the nearest integer.
func Ceil(v float64) int64 { return int64(math.Ceil(v)) }

// Inc returns v + 1.
func Inc(v int64) int64 { return v + 1 }

// Dec returns v - 1.
func Dec(v int64) int64 { return v - 1 }

// Decimal converts an integer value to its float64 representation.
func Decimal(v int64) float64 { return float64(v) }

// Int converts a float value to its truncated int64 representation.
func Int(v float64) int64 { return int64(v) }

{{range .Vars}}
// {{.Go}} is the generated accessor for ${{.Name}}.
type {{.Go}} struct{}

func ({{.Go}}) Get(s Storage) {{.GoType}} { return {{.GoType}}(s.{{.Getter}}({{.Name | printf "%q"}})) }
func ({{.Go}}) Set(s Storage, v {{.GoType}}) { s.{{.Setter}}({{.Name | printf "%q"}}, {{if eq .Setter "SetInt64"}}int64(v){{else if eq .Setter "SetFloat64"}}float64(v){{else}}v{{end}}) }
{{end}}
`))

// nodeTemplate renders one node's package: its marker type, every
// speech/command/fork/option struct, and Start. It imports only runtime,
// never a sibling node package — jumps go through runtime.StartNode instead
// (see runtimeTemplate's registry).
var nodeTemplate = template.Must(template.New("node").Funcs(genFuncs).Parse(`// Code generated by yarnc. DO NOT EDIT.

package {{.PackageName}}

import "{{.RuntimePkg}}"

func init() {
	runtime.Register({{.Title | printf "%q"}}, Start)
}

// Start is the node's synthetic entry advance: the continuation before the
// first flow of its top-level scope (spec §4.6).
func Start(s runtime.Storage) runtime.YarnYield {
{{.StartBody}}}
{{range .Speeches}}
type {{.TypeName}} struct{}

func ({{.TypeName}}) LineID() string { return {{.ID | printf "%q"}} }
func ({{.TypeName}}) Tags() []string { return {{tagsLit .Tags}} }
func ({{.TypeName}}) Speaker() string {
{{if .SpeakerExpr}}	return {{.SpeakerExpr}}
{{else}}	return {{.SpeakerLit | printf "%q"}}
{{end}}}
func ({{.TypeName}}) Text() string { return {{.Literal | printf "%q"}} }
func (t {{.TypeName}}) Advance(s runtime.Storage) runtime.YarnYield {
{{.AdvanceBody}}}
{{end}}
{{range .Commands}}
type {{.TypeName}} struct{}

func ({{.TypeName}}) LineID() string { return {{.ID | printf "%q"}} }
func ({{.TypeName}}) Command() string { return {{.Name | printf "%q"}} }
func (t {{.TypeName}}) Advance(s runtime.Storage) runtime.YarnYield {
{{.AdvanceBody}}}
{{end}}
{{range .Forks}}
type {{.TypeName}} struct{}

func (f {{.TypeName}}) Options() []runtime.OptionLine {
	return []runtime.OptionLine{
{{range .Options}}		{
			Line:        {{.Literal | printf "%q"}},
			Tags:        {{tagsLit .Tags}},
			Available:   {{if .HasCond}}{{.CondExpr}}{{else}}true{{end}},
			Fork:        f,
			IndexOnFork: {{.Index}},
			advance: func(s runtime.Storage) runtime.YarnYield {
{{.AdvanceBody}}			},
		},
{{end}}	}
}
{{end}}
`))

// rootTemplate renders the root package: the NodeTitle dispatch enum over
// every node's Tags/Tracking/Customs/Start, importing every node package
// purely for its registration side effect.
var rootTemplate = template.Must(template.New("root").Funcs(genFuncs).Parse(`// Code generated by yarnc. DO NOT EDIT.

package {{.RootPackage}}

import (
	"{{.RuntimePkg}}"
{{range .Nodes}}	_ "{{.ImportPath}}"
{{end}})

// NodeTitle identifies one compiled dialogue node.
type NodeTitle int

const (
{{range $i, $n := .Nodes}}{{if eq $i 0}}	Node{{$n.GoTitle}} NodeTitle = iota
{{else}}	Node{{$n.GoTitle}}
{{end}}{{end}})

var nodeTitles = map[NodeTitle]string{
{{range .Nodes}}	Node{{.GoTitle}}: {{.Title | printf "%q"}},
{{end}}}

var nodeTags = map[NodeTitle][]string{
{{range .Nodes}}	Node{{.GoTitle}}: {{tagsLit .Tags}},
{{end}}}

var nodeTracking = map[NodeTitle]runtime.TrackingMode{
{{range .Nodes}}	Node{{.GoTitle}}: runtime.Tracking{{.Tracking}},
{{end}}}

var nodeCustoms = map[NodeTitle]map[string]string{
{{range .Nodes}}	Node{{.GoTitle}}: { {{range $k, $v := .Customs}}{{$k | printf "%q"}}: {{$v | printf "%q"}}, {{end}} },
{{end}}}

// Title returns the node's authored title.
func (n NodeTitle) Title() string { return nodeTitles[n] }

// Tags returns the node's header tags.
func (n NodeTitle) Tags() []string { return nodeTags[n] }

// Tracking returns the node's resolved visited()-tracking mode.
func (n NodeTitle) Tracking() runtime.TrackingMode { return nodeTracking[n] }

// Customs returns the node's header custom key/value metadata.
func (n NodeTitle) Customs() map[string]string { return nodeCustoms[n] }

// Start begins running this node from its synthetic entry point.
func (n NodeTitle) Start(s runtime.Storage) runtime.YarnYield {
	return runtime.StartNode(s, nodeTitles[n])
}
`))

// storageTemplate renders the optional default, map-backed Storage
// implementation emitted when generate_storage is set (spec §6).
var storageTemplate = template.Must(template.New("storage").Parse(`// Code generated by yarnc. DO NOT EDIT.

package {{.RootPackage}}

import "sync"

// DefaultStorage is a map-backed runtime.Storage, generated because
// generate_storage was set.
type DefaultStorage struct {
	mu      sync.RWMutex
	strs    map[string]string
	bools   map[string]bool
	ints    map[string]int64
	floats  map[string]float64
	visits  map[string]int64
}

// NewDefaultStorage returns a DefaultStorage seeded with every declared
// variable's default value.
func NewDefaultStorage() *DefaultStorage {
	s := &DefaultStorage{
		strs:   map[string]string{},
		bools:  map[string]bool{},
		ints:   map[string]int64{},
		floats: map[string]float64{},
		visits: map[string]int64{},
	}
{{range .Vars}}{{if .HasDefault}}	s.{{.Setter}}({{.Name | printf "%q"}}, {{.Default}})
{{end}}{{end}}	return s
}

func (s *DefaultStorage) GetString(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strs[name]
}
func (s *DefaultStorage) SetString(name string, v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strs[name] = v
}
func (s *DefaultStorage) GetBool(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bools[name]
}
func (s *DefaultStorage) SetBool(name string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bools[name] = v
}
func (s *DefaultStorage) GetInt64(name string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ints[name]
}
func (s *DefaultStorage) SetInt64(name string, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints[name] = v
}
func (s *DefaultStorage) GetFloat64(name string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.floats[name]
}
func (s *DefaultStorage) SetFloat64(name string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats[name] = v
}
func (s *DefaultStorage) VisitCount(node string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visits[node]
}
func (s *DefaultStorage) RecordVisit(node string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits[node]++
}
`))

func tagsLit(tags []string) string {
	if len(tags) == 0 {
		return "nil"
	}
	out := "[]string{"
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += quote(t)
	}
	return out + "}"
}

func quote(s string) string {
	q := []rune{'"'}
	for _, r := range s {
		if r == '"' || r == '\\' {
			q = append(q, '\\')
		}
		q = append(q, r)
	}
	q = append(q, '"')
	return string(q)
}
