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

package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBytes_SameContentSameHash(t *testing.T) {
	a, err := hashBytes([]byte("package runtime\n"))
	require.NoError(t, err)
	b, err := hashBytes([]byte("package runtime\n"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHashBytes_DifferentContentDifferentHash(t *testing.T) {
	a, err := hashBytes([]byte("package runtime\n"))
	require.NoError(t, err)
	b, err := hashBytes([]byte("package node\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
