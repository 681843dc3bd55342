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
	"bytes"
	"fmt"
	"go/format"
	"path"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/dialogscript/yarnc/internal/infer"
)

// nodeTemplateData is the per-node data nodeTemplate renders against.
type nodeTemplateData struct {
	NodeUnit
	RuntimePkg string
}

// nodeRef is one node's entry in the root package's dispatch table.
type nodeRef struct {
	GoTitle    string
	Title      string
	Tags       []string
	Tracking   string
	Customs    map[string]string
	ImportPath string
}

type rootTemplateData struct {
	RootPackage string
	RuntimePkg  string
	Nodes       []nodeRef
}

type runtimeTemplateData struct {
	Vars []VarUnit
}

type storageTemplateData struct {
	RootPackage string
	Vars        []VarUnit
}

// Build renders the whole generated-code surface for a compiled dialogue
// corpus: the shared runtime package, one package per node, the root
// dispatch package, and (when cfg.GenerateStorage) a default Storage
// implementation. Every Artifact's Content is gofmt-normalized and import-
// grouped before being returned (spec §4.6's "formatted with go/format and
// golang.org/x/tools/imports" requirement).
func Build(nodes []CompiledNode, result infer.Result, cfg Config) ([]Artifact, error) {
	vars := BuildVarUnits(result)
	rootPkg := path.Base(cfg.DestModule)

	var artifacts []Artifact

	runtimeSrc, err := renderTemplate(runtimeTemplate, runtimeTemplateData{Vars: vars})
	if err != nil {
		return nil, fmt.Errorf("rendering runtime package: %w", err)
	}
	runtimeArtifact, err := formatArtifact("runtime/runtime.go", runtimeSrc)
	if err != nil {
		return nil, fmt.Errorf("formatting runtime package: %w", err)
	}
	artifacts = append(artifacts, runtimeArtifact)

	refs := make([]nodeRef, 0, len(nodes))
	for _, n := range nodes {
		unit := BuildNodeUnit(n, result.Tracking)
		data := nodeTemplateData{NodeUnit: unit, RuntimePkg: cfg.runtimePkg()}
		src, err := renderTemplate(nodeTemplate, data)
		if err != nil {
			return nil, fmt.Errorf("rendering node %q: %w", n.Meta.Title, err)
		}
		nodePath := fmt.Sprintf("nodes/%s/%s.go", unit.PackageName, unit.PackageName)
		artifact, err := formatArtifact(nodePath, src)
		if err != nil {
			return nil, fmt.Errorf("formatting node %q: %w", n.Meta.Title, err)
		}
		artifacts = append(artifacts, artifact)

		refs = append(refs, nodeRef{
			GoTitle:    unit.GoTitle,
			Title:      unit.Title,
			Tags:       unit.Tags,
			Tracking:   unit.Tracking,
			Customs:    unit.Customs,
			ImportPath: cfg.nodesPkg(unit.PackageName),
		})
	}

	rootSrc, err := renderTemplate(rootTemplate, rootTemplateData{
		RootPackage: rootPkg,
		RuntimePkg:  cfg.runtimePkg(),
		Nodes:       refs,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering root package: %w", err)
	}
	rootArtifact, err := formatArtifact(rootPkg+".go", rootSrc)
	if err != nil {
		return nil, fmt.Errorf("formatting root package: %w", err)
	}
	artifacts = append(artifacts, rootArtifact)

	if cfg.GenerateStorage {
		storageSrc, err := renderTemplate(storageTemplate, storageTemplateData{RootPackage: rootPkg, Vars: vars})
		if err != nil {
			return nil, fmt.Errorf("rendering default storage: %w", err)
		}
		storageArtifact, err := formatArtifact(rootPkg+"_storage.go", storageSrc)
		if err != nil {
			return nil, fmt.Errorf("formatting default storage: %w", err)
		}
		artifacts = append(artifacts, storageArtifact)
	}

	return artifacts, nil
}

func renderTemplate(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatArtifact runs gofmt-equivalent normalization, then import grouping/
// pruning, on rendered template output — the same two-stage pipeline the
// teacher's own generator uses before writing a file to disk.
func formatArtifact(relPath string, src []byte) (Artifact, error) {
	formatted, err := format.Source(src)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", relPath, err)
	}
	withImports, err := imports.Process(relPath, formatted, nil)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", relPath, err)
	}
	return Artifact{Path: relPath, Content: withImports}, nil
}
