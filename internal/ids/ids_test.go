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

package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/rawline"
	"github.com/dialogscript/yarnc/internal/scope"
)

func buildNode(t *testing.T, file, title, src string) Node {
	t.Helper()
	var lines []rawline.Line
	for i, raw := range strings.Split(strings.Trim(src, "\n"), "\n") {
		line, err := rawline.Classify(i+1, raw)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	sc, err := scope.Build(file, lines)
	require.NoError(t, err)
	return Node{File: file, Meta: metadata.NodeMetadata{Title: title}, Scope: sc}
}

func TestAssign_MintsUniqueIDsAndHonorsAuthored(t *testing.T) {
	nodeA := buildNode(t, "a.yarn", "GreetingNode", "Hello: hi there #line:fixed1\nBye: bye there")
	nodeB := buildNode(t, "b.yarn", "FarewellNode", "See: you later")

	require.NoError(t, Assign([]Node{nodeA, nodeB}))

	first := nodeA.Scope.Flows[0].FlatRun[0]
	second := nodeA.Scope.Flows[0].FlatRun[1]
	third := nodeB.Scope.Flows[0].FlatRun[0]

	assert.Equal(t, "fixed1", first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEmpty(t, third.ID)
	assert.NotEqual(t, second.ID, third.ID)
}

func TestAssign_DuplicateAuthoredIDIsError(t *testing.T) {
	nodeA := buildNode(t, "a.yarn", "A", "Hello: hi #line:dup")
	nodeB := buildNode(t, "b.yarn", "B", "Bye: bye #line:dup")

	err := Assign([]Node{nodeA, nodeB})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")
}

func TestAssign_OptionsForkGetsID(t *testing.T) {
	src := "Narrator: pick\n-> One\n  A: one\n-> Two\n  A: two\n"
	node := buildNode(t, "a.yarn", "Pick", src)
	require.NoError(t, Assign([]Node{node}))

	fork := node.Scope.Flows[1]
	assert.Equal(t, scope.FlowOptionsFork, fork.Kind)
	assert.NotEmpty(t, fork.ForkID)
	assert.NotEmpty(t, fork.Options[0].Line.ID)
	assert.NotEmpty(t, fork.Options[1].Line.ID)
	assert.NotEqual(t, fork.Options[0].Line.ID, fork.Options[1].Line.ID)
}

func TestAssign_BuiltinCommandsGetNoID(t *testing.T) {
	node := buildNode(t, "a.yarn", "Node", "<<set $score = 1>>\n<<jump Elsewhere>>\n")
	require.NoError(t, Assign([]Node{node}))
	for _, l := range node.Scope.Flows[0].FlatRun {
		assert.Empty(t, l.ID)
	}
}

func TestPrefixFor(t *testing.T) {
	assert.Equal(t, "NG", prefixFor("Next_Greeting"))
	assert.Equal(t, "ab", prefixFor("abcdef"))
	assert.Equal(t, "x", prefixFor("x"))
}
