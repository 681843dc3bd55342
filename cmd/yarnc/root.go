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
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "yarnc",
	Short: "Compile .yarn dialogue scripts into a Go code model",
	Long: `yarnc compiles a tree of .yarn dialogue scripts into a generated Go
package: a per-node state machine with an Advance method, line IDs, and
inferred variable accessors, driven by a yarnc.yaml configuration file.`,
	SilenceUsage: true,
}

func init() {
	bindConfigFlag(rootCmd.PersistentFlags())
}

// bindConfigFlag registers the --config flag directly against the
// github.com/spf13/pflag.FlagSet cobra.Command.PersistentFlags() returns,
// the flag set cobra itself is built on.
func bindConfigFlag(fs *pflag.FlagSet) {
	fs.StringVarP(&configPath, "config", "c", "yarnc.yaml", "path to the yarnc configuration file")
}
