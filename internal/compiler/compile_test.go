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
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogscript/yarnc/internal/mocks"
)

const sampleYarn = `title: Start
tracking: always
---
Welcome, {$name}!
<<set $visits += 1>>
-> Look around
    A quiet room.
-> Leave
    <<jump Outside>>
<-
===
title: Outside
---
The door closes behind you.
<<stop>>
===
`

const sampleConfig = `
storage_path: "github.com/example/game/dialogue.Storage"
command_path: "github.com/example/game/dialogue.Command"
yarn_folder: "./scripts"
destination_module: "github.com/example/game/internal/dialogue/generated"
allow_overwrite: true
generate_storage: true
`

func writeSampleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "start.yarn"), []byte(sampleYarn), 0o644))
	configPath := filepath.Join(dir, "yarnc.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(sampleConfig), 0o644))
	return configPath
}

func TestLoad_ParsesAndInfersSampleProject(t *testing.T) {
	configPath := writeSampleProject(t)

	units, result, cfg, err := Load(context.Background(), configPath)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "github.com/example/game/dialogue.Storage", cfg.StoragePath)

	titles := map[string]bool{}
	for _, u := range units {
		titles[u.Meta.Title] = true
	}
	assert.True(t, titles["Start"])
	assert.True(t, titles["Outside"])

	_, ok := result.Variables["name"]
	assert.True(t, ok)
	_, ok = result.Variables["visits"]
	assert.True(t, ok)
}

func TestCompile_ProducesArtifactsForSampleProject(t *testing.T) {
	configPath := writeSampleProject(t)

	res, err := Compile(context.Background(), configPath)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Artifacts)

	var sawRuntime bool
	var paths []string
	for _, a := range res.Artifacts {
		paths = append(paths, a.Path)
		if a.Path == "runtime/runtime.go" {
			sawRuntime = true
		}
	}
	assert.True(t, sawRuntime, "expected a runtime/runtime.go artifact, got %v", paths)
}

func TestCompileThenWrite_WritesFilesToDestDir(t *testing.T) {
	configPath := writeSampleProject(t)

	res, err := Compile(context.Background(), configPath)
	require.NoError(t, err)

	n, err := Write(context.Background(), configPath, res)
	require.NoError(t, err)
	assert.Equal(t, len(res.Artifacts), n)

	destDir := resolvePath(configPath, res.Config.DestinationModule)
	runtimePath := filepath.Join(destDir, "runtime", "runtime.go")
	_, statErr := os.Stat(runtimePath)
	assert.NoError(t, statErr)
}

func TestWriteWith_DelegatesToMockCodeWriterAndSurfacesIOError(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockCodeWriter(ctrl)

	res := Result{Artifacts: nil}
	w.EXPECT().WriteAll(gomock.Any(), res.Artifacts).Return(2, nil)
	n, err := WriteWith(context.Background(), w, res)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	w2 := mocks.NewMockCodeWriter(ctrl)
	w2.EXPECT().WriteAll(gomock.Any(), res.Artifacts).Return(0, errors.New("disk full"))
	_, err = WriteWith(context.Background(), w2, res)
	require.Error(t, err)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, KindIO, cerr.Kind)
}

func TestLoad_MissingConfigFieldIsConfigurationError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "yarnc.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("storage_path: \"a.B\"\n"), 0o644))

	_, _, _, err := Load(context.Background(), configPath)
	require.Error(t, err)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, KindConfiguration, cerr.Kind)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestLoad_UnterminatedNodeIsFileStructureError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "broken.yarn"), []byte("title: Start\n---\nHello there\n"), 0o644))
	configPath := filepath.Join(dir, "yarnc.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(sampleConfig), 0o644))

	_, _, _, err := Load(context.Background(), configPath)
	require.Error(t, err)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, KindFileStructure, cerr.Kind)
}

func TestError_FormatsFileLineMessageAndHelp(t *testing.T) {
	err := &Error{Kind: KindStructural, File: "a.yarn", Line: 12, Message: "boom", Help: "fix it"}
	assert.Equal(t, "a.yarn:12: boom\nHelp: fix it", err.Error())
}

func TestError_IsMatchesItsKindSentinel(t *testing.T) {
	err := &Error{Kind: KindSemantic, Message: "boom"}
	assert.True(t, errors.Is(err, ErrSemantic))
	assert.False(t, errors.Is(err, ErrIO))
}
