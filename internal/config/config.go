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

// Package config loads and validates the yarnc YAML configuration of
// spec §6.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config is the yarnc compile configuration, spec §6.
type Config struct {
	StoragePath       string   `yaml:"storage_path"`
	CommandPath       string   `yaml:"command_path"`
	YarnFolder        string   `yaml:"yarn_folder"`
	DestinationModule string   `yaml:"destination_module"`
	AllowOverwrite    bool     `yaml:"allow_overwrite"`
	FoldersToExclude  []string `yaml:"folders_to_exclude"`
	GenerateStorage   bool     `yaml:"generate_storage"`
}

// Load reads and parses a YAML configuration file, then validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every required field is present and that
// storage_path/command_path are syntactically valid fully-qualified
// package.Type references whose import path is a well-formed Go module
// path (spec §6: "storage_path/command_path syntactically valid via
// golang.org/x/mod/module").
func (c Config) Validate() error {
	if c.StoragePath == "" {
		return fmt.Errorf("storage_path is required")
	}
	if c.CommandPath == "" {
		return fmt.Errorf("command_path is required")
	}
	if c.YarnFolder == "" {
		return fmt.Errorf("yarn_folder is required")
	}
	if c.DestinationModule == "" {
		return fmt.Errorf("destination_module is required")
	}
	if err := validateTypeRef("storage_path", c.StoragePath); err != nil {
		return err
	}
	if err := validateTypeRef("command_path", c.CommandPath); err != nil {
		return err
	}
	return nil
}

func validateTypeRef(field, qualified string) error {
	idx := strings.LastIndexByte(qualified, '.')
	if idx <= 0 || idx == len(qualified)-1 {
		return fmt.Errorf("%s %q must be a fully-qualified package.Type reference", field, qualified)
	}
	importPath := qualified[:idx]
	if err := module.CheckImportPath(importPath); err != nil {
		return fmt.Errorf("%s %q has an invalid import path %q: %w", field, qualified, importPath, err)
	}
	return nil
}
