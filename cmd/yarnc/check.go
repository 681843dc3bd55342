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

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every stage through semantic inference without writing output",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	units, result, _, err := compiler.Load(cmd.Context(), configPath)
	if err != nil {
		return err
	}

	log.Printf("yarnc: %d node(s), %d variable(s) OK", len(units), len(result.Variables))
	return nil
}
