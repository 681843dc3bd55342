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

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_SingleNode(t *testing.T) {
	nodes, err := Split("a.yarn", "title: Start\n---\n\nHello: hi\n===\n")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Header, 1)
	assert.Equal(t, "title: Start", nodes[0].Header[0].Text)
	assert.Equal(t, 1, nodes[0].Header[0].LineNo)
	require.Len(t, nodes[0].Lines, 1)
	assert.Equal(t, "Hello: hi", nodes[0].Lines[0].Text)
}

func TestSplit_MultiLineHeader(t *testing.T) {
	nodes, err := Split("a.yarn", "title: Start\ntags: a, b\ntracking: always\n---\nHello: hi\n===\n")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Header, 3)
	assert.Equal(t, "title: Start", nodes[0].Header[0].Text)
	assert.Equal(t, "tags: a, b", nodes[0].Header[1].Text)
	assert.Equal(t, "tracking: always", nodes[0].Header[2].Text)
}

func TestSplit_StripsTrailingLineComment(t *testing.T) {
	nodes, err := Split("a.yarn", "title: Start\n---\nHello: hi // a comment\n===\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello: hi", nodes[0].Lines[0].Text)
}

func TestSplit_DoesNotStripSlashesInsideStringLiteral(t *testing.T) {
	nodes, err := Split("a.yarn", `title: Start`+"\n"+`---`+"\n"+`Hello: {"http://example.com"}`+"\n"+`===`+"\n")
	require.NoError(t, err)
	assert.Contains(t, nodes[0].Lines[0].Text, "http://example.com")
}

func TestSplit_MultipleNodes(t *testing.T) {
	nodes, err := Split("a.yarn", "title: First\n---\nA: one\n===\ntitle: Second\n---\nB: two\n===\n")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "title: First", nodes[0].Header[0].Text)
	assert.Equal(t, "title: Second", nodes[1].Header[0].Text)
}

func TestSplit_OrphanHeaderNeverReachingDashIsError(t *testing.T) {
	_, err := Split("a.yarn", "title: First\n---\nA: one\n===\nstray text\n")
	require.Error(t, err)
}

func TestSplit_UnterminatedNodeIsError(t *testing.T) {
	_, err := Split("a.yarn", "title: Start\n---\nA: one\n")
	require.Error(t, err)
}

func TestSplit_DropsBlankLines(t *testing.T) {
	nodes, err := Split("a.yarn", "title: Start\n---\nA: one\n\n\nB: two\n===\n")
	require.NoError(t, err)
	require.Len(t, nodes[0].Lines, 2)
}

func TestSplit_NoHeaderIsAllowed(t *testing.T) {
	nodes, err := Split("a.yarn", "---\nA: one\n===\n")
	require.NoError(t, err)
	require.Empty(t, nodes[0].Header)
}
