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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yarnc.yaml")
	body, err := yaml.Marshal(map[string]any{
		"storage_path":       "github.com/example/game/dialogue.Storage",
		"command_path":       "github.com/example/game/dialogue.Command",
		"yarn_folder":        "./dialogue",
		"destination_module": "github.com/example/game/internal/dialogue/generated",
		"allow_overwrite":    true,
		"folders_to_exclude": []string{"**/drafts/**"},
		"generate_storage":   true,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "github.com/example/game/dialogue.Storage", cfg.StoragePath)
	assert.True(t, cfg.AllowOverwrite)
	assert.Equal(t, []string{"**/drafts/**"}, cfg.FoldersToExclude)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := Config{CommandPath: "x.Y", YarnFolder: "a", DestinationModule: "b"}
	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_StoragePathMissingDot(t *testing.T) {
	cfg := Config{StoragePath: "notaqualifiedtype", CommandPath: "x.Y", YarnFolder: "a", DestinationModule: "b"}
	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_StoragePathInvalidImportPath(t *testing.T) {
	cfg := Config{StoragePath: "NOT VALID.Storage", CommandPath: "x.Y", YarnFolder: "a", DestinationModule: "b"}
	err := cfg.Validate()
	assert.Error(t, err)
}
