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

package exprparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogscript/yarnc/internal/ast"
)

func TestParse_Literals(t *testing.T) {
	cases := []struct {
		src  string
		want ast.Expr
	}{
		{"42", ast.IntLit(42)},
		{"3.14", ast.FloatLit(3.14)},
		{`"hi there"`, ast.StringLit("hi there")},
		{"true", ast.BoolLit(true)},
		{"false", ast.BoolLit(false)},
		{"$score", ast.GetVar{Name: "score"}},
	}
	for _, c := range cases {
		got, err := Parse(c.src)
		require.NoError(t, err, c.src)
		assert.True(t, ast.Equal(c.want, got), "%s: %s", c.src, ast.Diff(c.want, got))
	}
}

func TestParse_UnaryNegFoldsNumericLiterals(t *testing.T) {
	got, err := Parse("-5")
	require.NoError(t, err)
	assert.Equal(t, ast.IntLit(-5), got)

	got, err = Parse("-(5)")
	require.NoError(t, err)
	assert.Equal(t, ast.IntLit(-5), got)

	got, err = Parse("-2.5")
	require.NoError(t, err)
	assert.Equal(t, ast.FloatLit(-2.5), got)

	got, err = Parse("-$score")
	require.NoError(t, err)
	want := ast.UnaryOp{Op: ast.UnaryNeg, X: ast.GetVar{Name: "score"}}
	assert.True(t, ast.Equal(want, got), ast.Diff(want, got))
}

func TestParse_Precedence(t *testing.T) {
	got, err := Parse("1 + 2 * 3")
	require.NoError(t, err)
	want := ast.BinaryOp{Op: ast.Add, L: ast.IntLit(1), R: ast.BinaryOp{Op: ast.Mul, L: ast.IntLit(2), R: ast.IntLit(3)}}
	assert.True(t, ast.Equal(want, got), ast.Diff(want, got))

	got, err = Parse("1 < 2 && 3 > 4")
	require.NoError(t, err)
	want = ast.BinaryOp{
		Op: ast.And,
		L:  ast.BinaryOp{Op: ast.Lt, L: ast.IntLit(1), R: ast.IntLit(2)},
		R:  ast.BinaryOp{Op: ast.Gt, L: ast.IntLit(3), R: ast.IntLit(4)},
	}
	assert.True(t, ast.Equal(want, got), ast.Diff(want, got))

	got, err = Parse("1 || 2 && 3")
	require.NoError(t, err)
	want = ast.BinaryOp{
		Op: ast.Or,
		L:  ast.IntLit(1),
		R:  ast.BinaryOp{Op: ast.And, L: ast.IntLit(2), R: ast.IntLit(3)},
	}
	assert.True(t, ast.Equal(want, got), ast.Diff(want, got))
}

func TestParse_LeftAssociative(t *testing.T) {
	got, err := Parse("10 - 2 - 3")
	require.NoError(t, err)
	want := ast.BinaryOp{
		Op: ast.Sub,
		L:  ast.BinaryOp{Op: ast.Sub, L: ast.IntLit(10), R: ast.IntLit(2)},
		R:  ast.IntLit(3),
	}
	assert.True(t, ast.Equal(want, got), ast.Diff(want, got))
}

func TestParse_ParenthesesPreserved(t *testing.T) {
	got, err := Parse("(1 + 2) * 3")
	require.NoError(t, err)
	want := ast.BinaryOp{
		Op: ast.Mul,
		L:  ast.Paren{X: ast.BinaryOp{Op: ast.Add, L: ast.IntLit(1), R: ast.IntLit(2)}},
		R:  ast.IntLit(3),
	}
	assert.Equal(t, want, got)
}

func TestParse_GetVarCall(t *testing.T) {
	got, err := Parse("get_var(score)")
	require.NoError(t, err)
	assert.Equal(t, ast.GetVar{Name: "score"}, got)
}

func TestParse_BuiltinVisited(t *testing.T) {
	got, err := Parse(`visited("Intro")`)
	require.NoError(t, err)
	assert.Equal(t, ast.BuiltinCall{Name: ast.Visited, Args: []ast.Expr{ast.StringLit("Intro")}}, got)

	got, err = Parse("visited(Intro)")
	require.NoError(t, err)
	assert.Equal(t, ast.BuiltinCall{Name: ast.Visited, Args: []ast.Expr{ast.Ident("Intro")}}, got)

	_, err = Parse("visited(1)")
	assert.Error(t, err)

	_, err = Parse("visited()")
	assert.Error(t, err)
}

func TestParse_CustomCall(t *testing.T) {
	got, err := Parse("play_sound(1, 2)")
	require.NoError(t, err)
	assert.Equal(t, ast.Call{Name: "play_sound", Args: []ast.Expr{ast.IntLit(1), ast.IntLit(2)}}, got)
}

func TestParse_Cast(t *testing.T) {
	got, err := Parse("5 as f64")
	require.NoError(t, err)
	assert.Equal(t, ast.Cast{Target: ast.TypeF64, X: ast.IntLit(5)}, got)
}

// TestParse_EnglishOperatorEquivalence verifies §8's English-operator
// equivalence property directly against its own example inputs.
func TestParse_EnglishOperatorEquivalence(t *testing.T) {
	english, err := Parse("$hp is greater than 10 and $awake is not false")
	require.NoError(t, err)
	symbolic, err := Parse("$hp > 10 && $awake != false")
	require.NoError(t, err)
	assert.True(t, ast.Equal(english, symbolic), ast.Diff(english, symbolic))
}

func TestParse_EnglishOperatorUnderscoredAlias(t *testing.T) {
	a, err := Parse("$a not_equal_to $b")
	require.NoError(t, err)
	b, err := Parse("$a != $b")
	require.NoError(t, err)
	assert.True(t, ast.Equal(a, b), ast.Diff(a, b))
}

func TestParse_BitwiseEnglishForms(t *testing.T) {
	got, err := Parse("$a bit and $b")
	require.NoError(t, err)
	want := ast.BinaryOp{Op: ast.BitAnd, L: ast.GetVar{Name: "a"}, R: ast.GetVar{Name: "b"}}
	assert.True(t, ast.Equal(want, got), ast.Diff(want, got))

	got, err = Parse("$a xor $b")
	require.NoError(t, err)
	want = ast.BinaryOp{Op: ast.BitXor, L: ast.GetVar{Name: "a"}, R: ast.GetVar{Name: "b"}}
	assert.True(t, ast.Equal(want, got), ast.Diff(want, got))
}

// TestParse_ReparseRoundTrip verifies §8's round-trip property: re-parsing
// the String() of a parsed expression yields an equal AST, up to parenthesis
// normalization.
func TestParse_ReparseRoundTrip(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"$hp > 10 && $awake != false",
		`visited("Intro") || visited_count(Intro) > 1`,
		"-5 + 3",
		"5 as f64",
		"play_sound(1, 2, 3)",
	}
	for _, src := range sources {
		first, err := Parse(src)
		require.NoError(t, err, src)
		second, err := Parse(first.String())
		require.NoError(t, err, first.String())
		assert.True(t, ast.Equal(first, second), "%s: %s", src, ast.Diff(first, second))
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"1 +",
		"(1 + 2",
		"$",
		"visited(1)",
		"get_var(1)",
		"5 as notatype",
	}
	for _, src := range cases {
		_, err := Parse(src)
		assert.Error(t, err, src)
	}
}
