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

package infer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/metadata"
	"github.com/dialogscript/yarnc/internal/rawline"
	"github.com/dialogscript/yarnc/internal/scope"
)

func buildNode(t *testing.T, file, title string, tracking metadata.TrackingMode, src string) Node {
	t.Helper()
	var lines []rawline.Line
	for i, raw := range strings.Split(strings.Trim(src, "\n"), "\n") {
		line, err := rawline.Classify(i+1, raw)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	rest, decls, err := metadata.ExtractDeclares(file, lines)
	require.NoError(t, err)
	sc, err := scope.Build(file, rest)
	require.NoError(t, err)
	return Node{File: file, Meta: metadata.NodeMetadata{Title: title, Tracking: tracking}, Decls: decls, Scope: sc}
}

func TestInfer_DeclaredTypeWins(t *testing.T) {
	node := buildNode(t, "a.yarn", "A", metadata.TrackingUnspecified,
		"<<declare $score = 0 as number>>\nHello: hi\n")
	result, err := Infer([]Node{node})
	require.NoError(t, err)
	info := result.Variables["score"]
	assert.True(t, info.Declared)
	assert.Equal(t, ast.TypeNumber, info.Type)
}

func TestInfer_UsageOnlyInfersTypeFromSet(t *testing.T) {
	node := buildNode(t, "a.yarn", "A", metadata.TrackingUnspecified,
		`<<set $mood = "happy">>`+"\n")
	result, err := Infer([]Node{node})
	require.NoError(t, err)
	info := result.Variables["mood"]
	assert.False(t, info.Declared)
	assert.Equal(t, ast.TypeString, info.Type)
}

func TestInfer_ConflictingUsageLeavesTypeUnknown(t *testing.T) {
	nodeA := buildNode(t, "a.yarn", "A", metadata.TrackingUnspecified, `<<set $x = "a">>`+"\n")
	nodeB := buildNode(t, "b.yarn", "B", metadata.TrackingUnspecified, "<<set $x = 1>>\n")
	result, err := Infer([]Node{nodeA, nodeB})
	require.NoError(t, err)
	assert.Equal(t, ast.TypeUnknown, result.Variables["x"].Type)
}

func TestInfer_SpeakerVariableContributesString(t *testing.T) {
	node := buildNode(t, "a.yarn", "A", metadata.TrackingUnspecified, "{$speaker}: hi\n")
	result, err := Infer([]Node{node})
	require.NoError(t, err)
	assert.Equal(t, ast.TypeString, result.Variables["speaker"].Type)
}

func TestInfer_BinaryOpContributesOppositeOperandType(t *testing.T) {
	src := "Hello: hi\n<<if $hp > 10>>\n  A: ok\n<<endif>>\n"
	node := buildNode(t, "a.yarn", "A", metadata.TrackingUnspecified, src)
	result, err := Infer([]Node{node})
	require.NoError(t, err)
	assert.Equal(t, ast.TypeNumber, result.Variables["hp"].Type)
}

func TestInfer_VisitedMarksReferencedNodeAlwaysTracked(t *testing.T) {
	nodeA := buildNode(t, "a.yarn", "NodeA", metadata.TrackingUnspecified,
		`<<if visited("NodeB")>>`+"\n  A: seen it\n<<endif>>\n")
	nodeB := buildNode(t, "b.yarn", "NodeB", metadata.TrackingUnspecified, "B: hi\n")

	result, err := Infer([]Node{nodeA, nodeB})
	require.NoError(t, err)
	assert.Equal(t, metadata.TrackingAlways, result.Tracking["NodeB"])
	assert.Equal(t, metadata.TrackingNever, result.Tracking["NodeA"])
}

func TestInfer_ExplicitTrackingOverridesInference(t *testing.T) {
	nodeA := buildNode(t, "a.yarn", "NodeA", metadata.TrackingUnspecified,
		`<<if visited("NodeB")>>`+"\n  A: seen it\n<<endif>>\n")
	nodeB := buildNode(t, "b.yarn", "NodeB", metadata.TrackingNever, "B: hi\n")

	result, err := Infer([]Node{nodeA, nodeB})
	require.NoError(t, err)
	assert.Equal(t, metadata.TrackingNever, result.Tracking["NodeB"])
}

func TestInfer_VisitedUnknownNodeIsError(t *testing.T) {
	node := buildNode(t, "a.yarn", "NodeA", metadata.TrackingUnspecified,
		`<<if visited("Ghost")>>`+"\n  A: seen it\n<<endif>>\n")
	_, err := Infer([]Node{node})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestInfer_DuplicateDeclarationIsError(t *testing.T) {
	nodeA := buildNode(t, "a.yarn", "A", metadata.TrackingUnspecified, "<<declare $score = 0>>\nHello: hi\n")
	nodeB := buildNode(t, "b.yarn", "B", metadata.TrackingUnspecified, "<<declare $score = 1>>\nBye: bye\n")
	_, err := Infer([]Node{nodeA, nodeB})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score")
}
