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

package lexer

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrStringLiteralUnterminated = errors.New("unterminated string literal")
	ErrInvalidCharacter          = errors.New("invalid character")

	reLiteralFloat  = regexp.MustCompile(`^[0-9]+\.[0-9]+`)
	reLiteralInt    = regexp.MustCompile(`^[0-9]+`)
	reIdentifier    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	reWhitespace    = regexp.MustCompile(`^[ \t\r\n]+`)
	symbolsByLength = [][]string{
		3: {},
		2: {"==", "!=", "<=", ">=", "&&", "||", "+=", "-=", "*=", "/=", "%="},
		1: {"(", ")", ",", "+", "-", "*", "/", "%", "<", ">", "!", "=", "{", "}", "[", "]"},
	}
)

type lexeme struct {
	tokenType TokenType
	length    int
}

// Lexer scans an expression fragment into a sequence of Tokens.
type Lexer struct {
	dataLeft []byte
	cursor   Cursor
}

// NewLexer constructs a Lexer over the given fragment of source text.
func NewLexer(fragment []byte) *Lexer {
	return &Lexer{dataLeft: fragment, cursor: CursorInit}
}

func (lx *Lexer) consume(lxm lexeme) Token {
	tok := Token{
		Type:     lxm.tokenType,
		Location: lx.cursor,
		Content:  string(lx.dataLeft[:lxm.length]),
	}
	lx.dataLeft = lx.dataLeft[lxm.length:]
	lx.cursor = lx.cursor.AdvancedBy(tok.Content)
	return tok
}

// NextToken returns the next significant token (whitespace is skipped
// automatically), or TokenEOF once the fragment is exhausted. It returns an
// error for malformed input (unterminated string, unrecognized character).
func (lx *Lexer) NextToken() (Token, error) {
	for {
		if len(lx.dataLeft) == 0 {
			return TokenEOF, nil
		}
		if m := reWhitespace.Find(lx.dataLeft); m != nil {
			lx.consume(lexeme{tokenType: TokenType_Word, length: len(m)})
			continue
		}
		break
	}

	switch c := lx.dataLeft[0]; {
	case c == '"':
		return lx.consumeString()
	case c == '$':
		return lx.consume(lexeme{tokenType: TokenType_Sigil, length: 1}), nil
	case c >= '0' && c <= '9':
		if m := reLiteralFloat.Find(lx.dataLeft); m != nil {
			return lx.consume(lexeme{tokenType: TokenType_Float, length: len(m)}), nil
		}
		m := reLiteralInt.Find(lx.dataLeft)
		return lx.consume(lexeme{tokenType: TokenType_Int, length: len(m)}), nil
	case isIdentStart(c):
		m := reIdentifier.Find(lx.dataLeft)
		return lx.consume(lexeme{tokenType: TokenType_Word, length: len(m)}), nil
	default:
		if sym := lx.matchSymbol(); sym != "" {
			return lx.consume(lexeme{tokenType: TokenType_Symbol, length: len(sym)}), nil
		}
		return Token{}, errorAt(lx.cursor, ErrInvalidCharacter)
	}
}

func (lx *Lexer) matchSymbol() string {
	for length := 2; length >= 1; length-- {
		if len(lx.dataLeft) < length {
			continue
		}
		candidate := string(lx.dataLeft[:length])
		for _, sym := range symbolsByLength[length] {
			if sym == candidate {
				return sym
			}
		}
	}
	return ""
}

func (lx *Lexer) consumeString() (Token, error) {
	i := 1
	for i < len(lx.dataLeft) {
		switch lx.dataLeft[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return lx.consume(lexeme{tokenType: TokenType_String, length: i + 1}), nil
		case '\n':
			return Token{}, errorAt(lx.cursor, ErrStringLiteralUnterminated)
		}
		i++
	}
	return Token{}, errorAt(lx.cursor, ErrStringLiteralUnterminated)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// LexError carries the Cursor at which a lexical error was detected.
type LexError struct {
	At  Cursor
	Err error
}

func (e *LexError) Error() string { return e.At.String() + ": " + e.Err.Error() }
func (e *LexError) Unwrap() error { return e.Err }

func errorAt(at Cursor, err error) error { return &LexError{At: at, Err: err} }

// Unquote strips the surrounding quotes from a TokenType_String's Content and
// resolves backslash escapes, mirroring the text-template escaping rules of
// the raw line classifier.
func Unquote(content string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(content, `"`), `"`)
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
