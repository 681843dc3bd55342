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

package scope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogscript/yarnc/internal/rawline"
)

func classifyAll(t *testing.T, src string) []rawline.Line {
	t.Helper()
	var lines []rawline.Line
	for i, raw := range strings.Split(strings.Trim(src, "\n"), "\n") {
		line, err := rawline.Classify(i+1, raw)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}

func TestBuild_EmptyIsNilScope(t *testing.T) {
	sc, err := Build("a.yarn", nil)
	require.NoError(t, err)
	assert.Nil(t, sc)
}

func TestBuild_FlatRun(t *testing.T) {
	sc, err := Build("a.yarn", classifyAll(t, "Hello: hi\nBye: bye"))
	require.NoError(t, err)
	require.NotNil(t, sc)
	require.Len(t, sc.Flows, 1)
	assert.Equal(t, FlowFlatRun, sc.Flows[0].Kind)
	assert.Len(t, sc.Flows[0].FlatRun, 2)
}

func TestBuild_OptionForkWithCondition(t *testing.T) {
	src := "Narrator: pick one\n" +
		"-> Jump <<if $parachute>>\n" +
		"    You jump.\n" +
		"-> Stay\n" +
		"    You stay.\n"
	sc, err := Build("a.yarn", classifyAll(t, src))
	require.NoError(t, err)
	require.Len(t, sc.Flows, 2)
	assert.Equal(t, FlowFlatRun, sc.Flows[0].Kind)
	fork := sc.Flows[1]
	assert.Equal(t, FlowOptionsFork, fork.Kind)
	require.Len(t, fork.Options, 2)
	assert.True(t, fork.Options[0].Line.HasOptionCond)
	require.NotNil(t, fork.Options[0].Child)
	assert.Equal(t, rawline.KindSpeech, fork.Options[0].Child.Flows[0].FlatRun[0].Kind)
	assert.False(t, fork.Options[1].Line.HasOptionCond)
}

func TestBuild_IfElseifElseEndif(t *testing.T) {
	src := "<<if $n > 100>>\n" +
		"  A: big\n" +
		"<<elseif $n > 10>>\n" +
		"  A: medium\n" +
		"<<else>>\n" +
		"  A: small\n" +
		"<<endif>>\n" +
		"A: done\n"
	sc, err := Build("a.yarn", classifyAll(t, src))
	require.NoError(t, err)
	require.Len(t, sc.Flows, 2)
	branch := sc.Flows[0]
	assert.Equal(t, FlowIfBranch, branch.Kind)
	require.NotNil(t, branch.If.Child)
	require.Len(t, branch.ElseIfs, 1)
	require.NotNil(t, branch.Else)
	assert.Equal(t, FlowFlatRun, sc.Flows[1].Kind)
}

func TestBuild_UnterminatedIfIsError(t *testing.T) {
	src := "<<if $x>>\n  A: hi\n"
	_, err := Build("a.yarn", classifyAll(t, src))
	assert.Error(t, err)
}

func TestBuild_OrphanElseIsError(t *testing.T) {
	_, err := Build("a.yarn", classifyAll(t, "<<else>>\n"))
	assert.Error(t, err)
}

func TestBuild_OrphanEndOptionsIsError(t *testing.T) {
	_, err := Build("a.yarn", classifyAll(t, "<-\n"))
	assert.Error(t, err)
}

func TestBuild_IndentJumpIsError(t *testing.T) {
	lines := []rawline.Line{
		{Kind: rawline.KindSpeech, Indent: 0, LineNo: 1},
		{Kind: rawline.KindSpeech, Indent: 4, LineNo: 2},
	}
	_, err := Build("a.yarn", lines)
	assert.Error(t, err)
}

func TestBuild_OptionSiblingIndentMismatchIsError(t *testing.T) {
	src := "-> First\n" +
		"  A: one\n" +
		"-> Second\n" +
		"    A: two\n"
	_, err := Build("a.yarn", classifyAll(t, src))
	assert.Error(t, err)
}
