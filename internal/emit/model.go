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

// Package emit builds the generated Go code surface of spec §4.6/§6: a
// shared runtime package, one package per node, and a root package holding
// the NodeTitle dispatch enum. Source text is assembled with text/template,
// then normalized with go/format and golang.org/x/tools/imports, and
// written through an afs.Service-backed, content-hash-deduped, atomic
// writer (see writer.go).
package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/infer"
	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/scope"
)

// CompiledNode is one fully-processed node handed to the emitter: its
// header, its id-assigned scope tree, and the file it came from (for
// diagnostics only — the emitter itself never fails on node content that
// survived internal/ids and internal/infer).
type CompiledNode struct {
	File  string
	Meta  metadata.NodeMetadata
	Scope *scope.Scope
}

// TypeRef is a fully-qualified target type, split into its import path and
// its unqualified type name, per spec §6's "split into (module-path,
// type-name)".
type TypeRef struct {
	ImportPath string
	Name       string
}

// ParseTypeRef splits a "github.com/example/game/dialogue.Storage"-shaped
// configuration value at its last '.', the boundary between the Go import
// path and the exported type name.
func ParseTypeRef(qualified string) (TypeRef, error) {
	idx := strings.LastIndexByte(qualified, '.')
	if idx < 0 || idx == len(qualified)-1 {
		return TypeRef{}, fmt.Errorf("%q is not a fully-qualified package.Type reference", qualified)
	}
	return TypeRef{ImportPath: qualified[:idx], Name: qualified[idx+1:]}, nil
}

// Config is the subset of internal/config.Config the emitter consumes.
type Config struct {
	StoragePath     TypeRef
	CommandPath     TypeRef
	DestModule      string // Go import path of the generated root package
	GenerateStorage bool
}

func (c Config) runtimePkg() string { return c.DestModule + "/runtime" }
func (c Config) nodesPkg(pkgName string) string {
	return c.DestModule + "/nodes/" + pkgName
}

// Artifact is one rendered, formatted output file, keyed by its import-path-
// relative slash path under destModule (e.g. "runtime/runtime.go").
type Artifact struct {
	Path    string
	Content []byte
}

// exportIdent turns a spec-validated identifier (starts with an ASCII
// letter or '_', continues with alnum/'_') into an exported Go identifier.
// Titles/variable names starting with '_' are prefixed rather than
// uppercased, since Go capitalization can't be forced onto '_'.
func exportIdent(name string) string {
	if name == "" {
		return "X"
	}
	if name[0] == '_' {
		return "X" + name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// packageName derives a short, lowercase, import-clean package name from a
// node title, per Go's "package names are lowercase, no underscores"
// convention (https://go.dev/blog/package-names).
func packageName(title string) string {
	lower := strings.ToLower(title)
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}
		return r
	}, lower)
}

// goType reports the Go type used to represent a declared/inferred
// variable, deferring to ast.DeclarationType.DefaultGoType for every
// resolved type and falling back to string for a variable whose type
// inference left it unresolved (spec §3: "a variable with no
// resolvable type" — the emitter must still produce working code, so it
// picks the most permissive concrete representation rather than `any`,
// keeping Storage's typed accessor surface uniform).
func goType(t ast.DeclarationType) string {
	if t == ast.TypeUnknown {
		return "string"
	}
	return t.DefaultGoType()
}

// storageAccessor returns the Storage getter/setter method pair used by a
// variable of Go type t, per the four-bucket Storage interface in
// templates.go (string/bool/int64/float64 — the narrower integer and float
// types are stored widened and narrowed back by the accessor's own Get/Set
// wrapper methods).
func storageAccessor(t ast.DeclarationType) (getter, setter string) {
	switch t {
	case ast.TypeString, ast.TypeUnknown:
		return "GetString", "SetString"
	case ast.TypeBool:
		return "GetBool", "SetBool"
	case ast.TypeF32, ast.TypeF64:
		return "GetFloat64", "SetFloat64"
	default:
		return "GetInt64", "SetInt64"
	}
}

// VarUnit is one rendered variable-accessor marker type.
type VarUnit struct {
	Name       string // raw $name
	Go         string // exported Go identifier, e.g. VarScore
	GoType     string
	Getter     string
	Setter     string
	HasDefault bool
	Default    string // Go literal source, "" if HasDefault is false
}

// BuildVarUnits renders the whole-corpus variable table from an
// internal/infer.Result into template-ready VarUnit values, sorted by name
// for deterministic output.
func BuildVarUnits(result infer.Result) []VarUnit {
	names := make([]string, 0, len(result.Variables))
	for name := range result.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]VarUnit, 0, len(names))
	for _, name := range names {
		info := result.Variables[name]
		getter, setter := storageAccessor(info.Type)
		u := VarUnit{
			Name:   name,
			Go:     "Var" + exportIdent(name),
			GoType: goType(info.Type),
			Getter: getter,
			Setter: setter,
		}
		if info.HasDefault {
			u.HasDefault = true
			u.Default = exprToGo(info.Default)
		}
		units = append(units, u)
	}
	return units
}
