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
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/highwayhash"
	"github.com/viant/afs"
)

// highwayhashKey is fixed and unkeyed-in-purpose: the writer only ever
// compares two hashes against each other to decide whether a file's content
// changed, never uses the digest outside this process (spec §6, grounded on
// the teacher pack's own highwayhash.New64 usage in
// viant-linager/inspector/graph/hash.go).
var highwayhashKey = []byte("yarnc-emit-dedup-0123456789ABCDE")

// CodeWriter is the narrow collaborator internal/compiler depends on,
// satisfied by *Writer; it exists so compiler tests can substitute a
// gomock-generated mock (internal/mocks) instead of touching a real
// filesystem.
type CodeWriter interface {
	WriteAll(ctx context.Context, artifacts []Artifact) (int, error)
}

// Writer writes Artifacts to destDir atomically, skipping any file whose
// content hash already matches what's on disk even when overwrite is
// allowed, per spec §6's "do not touch files whose content would not
// change".
type Writer struct {
	fs             afs.Service
	destDir        string
	allowOverwrite bool
}

// NewWriter returns a Writer rooted at destDir.
func NewWriter(destDir string, allowOverwrite bool) *Writer {
	return &Writer{fs: afs.New(), destDir: destDir, allowOverwrite: allowOverwrite}
}

// WriteAll writes every artifact, reporting how many were actually written
// (as opposed to skipped because their content was unchanged).
func (w *Writer) WriteAll(ctx context.Context, artifacts []Artifact) (written int, err error) {
	for _, a := range artifacts {
		wrote, err := w.writeOne(ctx, a)
		if err != nil {
			return written, fmt.Errorf("writing %s: %w", a.Path, err)
		}
		if wrote {
			written++
		}
	}
	return written, nil
}

func (w *Writer) writeOne(ctx context.Context, a Artifact) (bool, error) {
	destURL := filepath.Join(w.destDir, filepath.FromSlash(a.Path))

	exists, err := w.fs.Exists(ctx, destURL)
	if err != nil {
		return false, err
	}
	if exists {
		if !w.allowOverwrite {
			return false, fmt.Errorf("%s already exists and allow_overwrite is false", destURL)
		}
		unchanged, err := w.sameContent(ctx, destURL, a.Content)
		if err != nil {
			return false, err
		}
		if unchanged {
			return false, nil
		}
	}

	tmpURL := path.Join(filepath.Dir(destURL), fmt.Sprintf(".yarnc-tmp-%s", uuid.NewString()))
	if err := w.fs.Upload(ctx, tmpURL, 0o644, bytes.NewReader(a.Content)); err != nil {
		return false, fmt.Errorf("staging %s: %w", a.Path, err)
	}
	if err := w.fs.Move(ctx, tmpURL, destURL); err != nil {
		_ = w.fs.Delete(ctx, tmpURL)
		return false, fmt.Errorf("renaming into place %s: %w", a.Path, err)
	}
	return true, nil
}

func (w *Writer) sameContent(ctx context.Context, url string, content []byte) (bool, error) {
	existing, err := w.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return false, err
	}
	existingHash, err := hashBytes(existing)
	if err != nil {
		return false, err
	}
	newHash, err := hashBytes(content)
	if err != nil {
		return false, err
	}
	return existingHash == newHash, nil
}

func hashBytes(data []byte) (uint64, error) {
	h, err := highwayhash.New64(highwayhashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// EnsureDestDir creates destDir (and parents) when it does not yet exist.
func EnsureDestDir(destDir string) error {
	return os.MkdirAll(destDir, 0o755)
}
