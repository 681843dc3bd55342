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

package compiler

import (
	"context"
	"errors"
	"path/filepath"
	"sort"

	"github.com/dialogscript/yarnc/internal/config"
	"github.com/dialogscript/yarnc/internal/diag"
	"github.com/dialogscript/yarnc/internal/emit"
	"github.com/dialogscript/yarnc/internal/ids"
	"github.com/dialogscript/yarnc/internal/infer"
	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/rawline"
	"github.com/dialogscript/yarnc/internal/scope"
	"github.com/dialogscript/yarnc/internal/source"
)

// Unit is one parsed, scope-grouped node, carried through the synchronous
// half of the pipeline (metadata -> scope -> ids -> infer -> emit).
type Unit struct {
	File  string
	Meta  metadata.NodeMetadata
	Decls []metadata.Declaration
	Scope *scope.Scope
}

// Result is everything a successful Compile call produced: the resolved
// configuration, the variable/tracking inference, and the rendered
// artifacts, before they are written to disk.
type Result struct {
	Config    config.Config
	Inference infer.Result
	Artifacts []emit.Artifact
}

// Load runs configuration loading through semantic inference: every stage
// through internal/infer, stopping short of code generation and writing.
// `yarnc check` uses this to validate a tree without producing output.
func Load(ctx context.Context, configPath string) ([]Unit, infer.Result, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, infer.Result{}, config.Config{}, newError(KindConfiguration, "config", err)
	}

	yarnRoot := resolvePath(configPath, cfg.YarnFolder)
	walker := source.NewWalker()
	files, err := walker.Discover(ctx, yarnRoot, cfg.FoldersToExclude)
	if err != nil {
		kind := KindIO
		var loc *diag.Located
		if errors.As(err, &loc) {
			kind = KindFileStructure
		}
		return nil, infer.Result{}, config.Config{}, newError(kind, "source", err)
	}

	var units []Unit
	for _, f := range files {
		for _, ns := range f.Nodes {
			u, err := buildUnit(f.Path, ns)
			if err != nil {
				return nil, infer.Result{}, config.Config{}, err
			}
			units = append(units, u)
		}
	}
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].File != units[j].File {
			return units[i].File < units[j].File
		}
		return units[i].Meta.Title < units[j].Meta.Title
	})

	idNodes := make([]ids.Node, len(units))
	for i, u := range units {
		idNodes[i] = ids.Node{File: u.File, Meta: u.Meta, Scope: u.Scope}
	}
	if err := ids.Assign(idNodes); err != nil {
		return nil, infer.Result{}, config.Config{}, newError(KindStructural, "ids", err)
	}

	inferNodes := make([]infer.Node, len(units))
	for i, u := range units {
		inferNodes[i] = infer.Node{File: u.File, Meta: u.Meta, Decls: u.Decls, Scope: u.Scope}
	}
	result, err := infer.Infer(inferNodes)
	if err != nil {
		return nil, infer.Result{}, config.Config{}, newError(KindSemantic, "infer", err)
	}

	return units, result, cfg, nil
}

// Compile runs the full pipeline: Load, then code generation, returning the
// rendered artifacts without writing them (see Write for that step).
func Compile(ctx context.Context, configPath string) (Result, error) {
	units, result, cfg, err := Load(ctx, configPath)
	if err != nil {
		return Result{}, err
	}

	storageRef, err := emit.ParseTypeRef(cfg.StoragePath)
	if err != nil {
		return Result{}, newError(KindConfiguration, "config", err)
	}
	commandRef, err := emit.ParseTypeRef(cfg.CommandPath)
	if err != nil {
		return Result{}, newError(KindConfiguration, "config", err)
	}

	compiledNodes := make([]emit.CompiledNode, len(units))
	for i, u := range units {
		compiledNodes[i] = emit.CompiledNode{File: u.File, Meta: u.Meta, Scope: u.Scope}
	}

	artifacts, err := emit.Build(compiledNodes, result, emit.Config{
		StoragePath:     storageRef,
		CommandPath:     commandRef,
		DestModule:      cfg.DestinationModule,
		GenerateStorage: cfg.GenerateStorage,
	})
	if err != nil {
		return Result{}, newError(KindSemantic, "emit", err)
	}

	return Result{Config: cfg, Inference: result, Artifacts: artifacts}, nil
}

// Write writes a Compile result's artifacts under the destination
// directory resolved from its configuration, relative to configPath.
func Write(ctx context.Context, configPath string, res Result) (int, error) {
	destDir := resolvePath(configPath, res.Config.DestinationModule)
	if err := emit.EnsureDestDir(destDir); err != nil {
		return 0, newError(KindIO, "write", err)
	}
	return WriteWith(ctx, emit.NewWriter(destDir, res.Config.AllowOverwrite), res)
}

// WriteWith writes a Compile result's artifacts through an arbitrary
// emit.CodeWriter, letting tests substitute a mock (internal/mocks) for the
// real afs-backed Writer.
func WriteWith(ctx context.Context, w emit.CodeWriter, res Result) (int, error) {
	n, err := w.WriteAll(ctx, res.Artifacts)
	if err != nil {
		return 0, newError(KindIO, "write", err)
	}
	return n, nil
}

func buildUnit(file string, ns source.NodeSource) (Unit, error) {
	headerLines := make([]metadata.HeaderLine, len(ns.Header))
	for i, hl := range ns.Header {
		headerLines[i] = metadata.HeaderLine(hl)
	}
	meta, err := metadata.ParseHeader(file, headerLines)
	if err != nil {
		return Unit{}, newError(KindMetadata, "metadata", err)
	}

	lines := make([]rawline.Line, len(ns.Lines))
	for i, bl := range ns.Lines {
		l, err := rawline.Classify(bl.LineNo, bl.Text)
		if err != nil {
			return Unit{}, newError(KindLineClassification, "rawline", err)
		}
		lines[i] = l
	}

	rest, decls, err := metadata.ExtractDeclares(file, lines)
	if err != nil {
		return Unit{}, newError(KindExpression, "metadata", err)
	}

	sc, err := scope.Build(file, rest)
	if err != nil {
		return Unit{}, newError(KindStructural, "scope", err)
	}

	return Unit{File: file, Meta: meta, Decls: decls, Scope: sc}, nil
}

// resolvePath resolves a configuration-relative path (yarn_folder,
// destination_module) against the directory containing the config file
// itself, mirroring the teacher's own config-relative path handling.
func resolvePath(configPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
