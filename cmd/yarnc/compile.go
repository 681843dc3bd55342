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

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/dialogscript/yarnc/internal/compiler"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Run the full pipeline and write the generated Go code model",
	Args:  cobra.NoArgs,
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	res, err := compiler.Compile(ctx, configPath)
	if err != nil {
		return err
	}

	written, err := compiler.Write(ctx, configPath, res)
	if err != nil {
		return err
	}

	log.Printf("yarnc: wrote %d file(s) to %s", written, res.Config.DestinationModule)
	return nil
}
