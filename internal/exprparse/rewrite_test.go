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

	"github.com/dialogscript/yarnc/internal/lexer"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	lx := lexer.NewLexer([]byte(src))
	var toks []lexer.Token
	for {
		tok, err := lx.NextToken()
		require.NoError(t, err)
		if tok.Type == lexer.TokenType_EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func symbols(toks []lexer.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Content
	}
	return out
}

func TestRewriteEnglishOperators_LongestMatchFirst(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"a is not greater than or equal to b", []string{"a", "<", "b"}},
		{"a is not greater than b", []string{"a", "<=", "b"}},
		{"a is greater than b", []string{"a", ">", "b"}},
		{"a greater than b", []string{"a", ">", "b"}},
		{"a gt b", []string{"a", ">", "b"}},
		{"a is not b", []string{"a", "!=", "b"}},
		{"a is b", []string{"a", "==", "b"}},
		{"a and b or c", []string{"a", "&&", "b", "||", "c"}},
		{"not a", []string{"!", "a"}},
		{"a bit and b", []string{"a", "&", "b"}},
		{"a bit or b", []string{"a", "|", "b"}},
		{"a xor b", []string{"a", "^", "b"}},
	}
	for _, c := range cases {
		got := rewriteEnglishOperators(tokenize(t, c.src))
		assert.Equal(t, c.want, symbols(got), c.src)
	}
}

func TestRewriteEnglishOperators_UnderscoredAlias(t *testing.T) {
	got := rewriteEnglishOperators(tokenize(t, "a not_equal_to b"))
	assert.Equal(t, []string{"a", "!=", "b"}, symbols(got))
}

func TestRewriteEnglishOperators_LeavesNonOperatorWordsAlone(t *testing.T) {
	got := rewriteEnglishOperators(tokenize(t, "greatest lesser"))
	assert.Equal(t, []string{"greatest", "lesser"}, symbols(got))
}

func TestRewriteSigils(t *testing.T) {
	got, err := rewriteSigils(tokenize(t, "$score + 1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"get_var", "(", "score", ")", "+", "1"}, symbols(got))
}

func TestRewriteSigils_BareDollarIsError(t *testing.T) {
	_, err := rewriteSigils(tokenize(t, "$ + 1"))
	assert.Error(t, err)

	_, err = rewriteSigils(tokenize(t, "$"))
	assert.Error(t, err)
}
