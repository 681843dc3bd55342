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

type TokenType int

const (
	// TokenType_Word is an identifier, keyword, or bare English-operator word
	// (e.g. "and", "visited", "myVar").
	TokenType_Word TokenType = iota
	// TokenType_Int is an integer literal.
	TokenType_Int
	// TokenType_Float is a floating point literal.
	TokenType_Float
	// TokenType_String is a double-quoted string literal, with surrounding
	// quotes retained in Content.
	TokenType_String
	// TokenType_Sigil is the '$' variable sigil.
	TokenType_Sigil
	// TokenType_Symbol is one of the fixed operator/punctuation sequences,
	// e.g. "(", "==", "&&", "+=".
	TokenType_Symbol
	// TokenType_EOF marks the end of input.
	TokenType_EOF
)

func (t TokenType) String() string {
	switch t {
	case TokenType_Word:
		return "Word"
	case TokenType_Int:
		return "Int"
	case TokenType_Float:
		return "Float"
	case TokenType_String:
		return "String"
	case TokenType_Sigil:
		return "Sigil"
	case TokenType_Symbol:
		return "Symbol"
	case TokenType_EOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

type Token struct {
	Type     TokenType
	Location Cursor
	Content  string
}

var TokenEOF = Token{Type: TokenType_EOF}
