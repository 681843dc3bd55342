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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExprString(t *testing.T) {
	e := BinaryOp{
		Op: Add,
		L:  GetVar{Name: "score"},
		R:  Paren{X: BinaryOp{Op: Mul, L: IntLit(2), R: IntLit(3)}},
	}
	assert.Equal(t, "$score + (2 * 3)", e.String())
}

func TestNormalizeStripsParens(t *testing.T) {
	withParens := Paren{X: BinaryOp{Op: Add, L: IntLit(1), R: Paren{X: IntLit(2)}}}
	plain := BinaryOp{Op: Add, L: IntLit(1), R: IntLit(2)}
	assert.True(t, Equal(withParens, plain), Diff(withParens, plain))
}

func TestEqual_FloatTolerance(t *testing.T) {
	a := FloatLit(1.000000)
	b := FloatLit(1.0000009)
	assert.True(t, Equal(a, b))
}

func TestParseDeclarationType_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"String", "STRING", "string"} {
		dt, err := ParseDeclarationType(name)
		assert.NoError(t, err)
		assert.Equal(t, TypeString, dt)
	}
	_, err := ParseDeclarationType("not-a-type")
	assert.Error(t, err)
}
