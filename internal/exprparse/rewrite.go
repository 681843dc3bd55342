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

// Package exprparse implements the embedded-expression parser of spec §4.1: a
// token-level English-operator rewrite, a $sigil rewrite, and a
// precedence-climbing (Pratt) parser producing internal/ast.Expr trees,
// generalized from language/internal/cc/parser's #if-condition grammar.
package exprparse

import (
	"fmt"
	"strings"

	"github.com/dialogscript/yarnc/internal/lexer"
)

// englishPhrases maps a space-separated, case-sensitive English operator
// phrase to its symbolic spelling. Longer phrases are tried before the
// shorter subphrases they contain (enforced by matchPhraseAt scanning the
// phrasesByWordCount buckets from the longest down, not by table order).
var englishPhrases = map[string]string{
	"is not greater than or equal to": "<",
	"is not less than or equal to":    ">",
	"is greater than or equal to":     ">=",
	"greater than or equal to":        ">=",
	"gte":                             ">=",
	"is less than or equal to":        "<=",
	"less than or equal to":           "<=",
	"lte":                             "<=",
	"is not greater than":             "<=",
	"is not less than":                ">=",
	"is greater than":                 ">",
	"greater than":                    ">",
	"gt":                              ">",
	"is less than":                    "<",
	"less than":                       "<",
	"lt":                              "<",
	"not equal to":                    "!=",
	"is not":                          "!=",
	"neq":                             "!=",
	"equal to":                        "==",
	"eq":                              "==",
	"is":                              "==",
	"bit xor":                         "^",
	"xor":                             "^",
	"bit and":                         "&",
	"bit or":                          "|",
	"or":                              "||",
	"and":                             "&&",
	"not":                             "!",
}

// phrasesByWordCount groups phrases by token length, longest first, so
// rewriteEnglishOperators can match greedily.
var phrasesByWordCount = buildPhraseIndex()

func buildPhraseIndex() [][]phraseEntry {
	maxWords := 0
	type raw struct {
		words []string
		sym   string
	}
	var all []raw
	for phrase, sym := range englishPhrases {
		words := strings.Fields(phrase)
		all = append(all, raw{words: words, sym: sym})
		if len(words) > maxWords {
			maxWords = len(words)
		}
	}
	buckets := make([][]phraseEntry, maxWords+1)
	for _, r := range all {
		n := len(r.words)
		buckets[n] = append(buckets[n], phraseEntry{words: r.words, symbol: r.sym})
	}
	return buckets
}

type phraseEntry struct {
	words  []string
	symbol string
}

// underscoredAliases are single-identifier aliases of the multi-word phrases,
// e.g. "not_equal_to" meaning the same as "not equal to".
var underscoredAliases = buildUnderscoredAliases()

func buildUnderscoredAliases() map[string]string {
	out := map[string]string{}
	for phrase, sym := range englishPhrases {
		out[strings.ReplaceAll(phrase, " ", "_")] = sym
	}
	return out
}

// rewriteEnglishOperators rewrites runs of Word tokens that spell an English
// operator phrase into a single synthetic Symbol token, longest phrase first,
// per spec §4.1 step 1.
func rewriteEnglishOperators(tokens []lexer.Token) []lexer.Token {
	var out []lexer.Token
	for i := 0; i < len(tokens); {
		if tokens[i].Type == lexer.TokenType_Word {
			if sym, n, ok := matchPhraseAt(tokens, i); ok {
				out = append(out, synthSymbol(sym, tokens[i]))
				i += n
				continue
			}
			if sym, ok := underscoredAliases[tokens[i].Content]; ok {
				out = append(out, synthSymbol(sym, tokens[i]))
				i++
				continue
			}
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

// matchPhraseAt tries to match the longest English operator phrase starting
// at tokens[i], case-sensitive and identifier-bounded (each phrase word must
// be an entire Word token, not a substring).
func matchPhraseAt(tokens []lexer.Token, i int) (symbol string, consumed int, ok bool) {
	for n := len(phrasesByWordCount) - 1; n >= 1; n-- {
		if i+n > len(tokens) {
			continue
		}
		for _, entry := range phrasesByWordCount[n] {
			if matchesWords(tokens[i:i+n], entry.words) {
				return entry.symbol, n, true
			}
		}
	}
	return "", 0, false
}

func matchesWords(toks []lexer.Token, words []string) bool {
	for i, w := range words {
		if toks[i].Type != lexer.TokenType_Word || toks[i].Content != w {
			return false
		}
	}
	return true
}

func synthSymbol(symbol string, at lexer.Token) lexer.Token {
	return lexer.Token{Type: lexer.TokenType_Symbol, Location: at.Location, Content: symbol}
}

// rewriteSigils rewrites a Sigil token immediately followed by a Word token
// into the function-call-shaped sequence `get_var ( name )`, per spec §4.1
// step 2. Returns an error if '$' is not followed by an identifier.
func rewriteSigils(tokens []lexer.Token) ([]lexer.Token, error) {
	var out []lexer.Token
	for i := 0; i < len(tokens); i++ {
		if tokens[i].Type != lexer.TokenType_Sigil {
			out = append(out, tokens[i])
			continue
		}
		if i+1 >= len(tokens) || tokens[i+1].Type != lexer.TokenType_Word {
			return nil, fmt.Errorf("%s: '$' must be followed by an identifier", tokens[i].Location)
		}
		name := tokens[i+1]
		out = append(out,
			lexer.Token{Type: lexer.TokenType_Word, Location: tokens[i].Location, Content: "get_var"},
			lexer.Token{Type: lexer.TokenType_Symbol, Location: tokens[i].Location, Content: "("},
			name,
			lexer.Token{Type: lexer.TokenType_Symbol, Location: tokens[i].Location, Content: ")"},
		)
		i++
	}
	return out, nil
}
