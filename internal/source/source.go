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

// Package source implements the concrete file-splitter collaborator of
// spec §4.7: it walks yarn_folder for *.yarn files (excluding
// folders_to_exclude), strips comments and blank lines, and delimits nodes
// by "---"/"===", handing every later stage a stable, file-ordered line
// stream.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"
)

// Line is one stripped, trimmed, non-empty source line, numbered from the
// original file (1-based) so later diagnostics point at the author's file.
type Line struct {
	LineNo int
	Text   string
}

// NodeSource is one node's worth of lines: its pre-"---" header (title/tags/
// tracking/custom key:value pairs, spec §6) and its "---"-to-"===" body.
type NodeSource struct {
	File   string
	Header []Line
	Lines  []Line
}

// File is one discovered *.yarn file, split into its nodes.
type File struct {
	Path  string
	Nodes []NodeSource
}

// Walker discovers and splits every *.yarn file under root.
type Walker struct {
	fs afs.Service
}

// NewWalker returns a Walker backed by afs.New(), the same construction the
// teacher pack's own afs.Service call sites use.
func NewWalker() *Walker { return &Walker{fs: afs.New()} }

// Discover walks root for *.yarn files, skipping any whose root-relative
// path matches an entry of exclude (doublestar patterns, per spec §4.7 and
// the teacher's own doublestar.MatchUnvalidated use in language/cc's
// exclude-pattern handling), reads and splits each file concurrently
// (bounded by GOMAXPROCS), then returns them sorted lexicographically by
// relative path — the order spec §5 requires the global ID counter to walk.
func (w *Walker) Discover(ctx context.Context, root string, exclude []string) ([]File, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("folders_to_exclude pattern %q is invalid", pattern)
		}
	}

	var paths []string
	err := w.fs.Walk(ctx, root, func(parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !strings.HasSuffix(info.Name(), ".yarn") {
			return true, nil
		}
		full := filepath.Join(parent, info.Name())
		rel, err := filepath.Rel(root, full)
		if err != nil {
			rel = full
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range exclude {
			if doublestar.MatchUnvalidated(pattern, rel) {
				return true, nil
			}
		}
		paths = append(paths, full)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)

	files := make([]File, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			content, err := w.fs.DownloadWithURL(gctx, p)
			if err != nil {
				return fmt.Errorf("reading %s: %w", p, err)
			}
			nodes, err := Split(p, string(content))
			if err != nil {
				return err
			}
			files[i] = File{Path: p, Nodes: nodes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
