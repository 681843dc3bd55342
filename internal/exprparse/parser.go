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
	"fmt"
	"strconv"

	"github.com/dialogscript/yarnc/internal/ast"
	"github.com/dialogscript/yarnc/internal/lexer"
)

// Parse tokenizes and parses a single embedded-expression fragment (the body
// of an interpolation, a command argument, or an `if` condition) into an
// internal/ast.Expr, per spec §4.1's four-stage pipeline.
func Parse(fragment string) (ast.Expr, error) {
	lx := lexer.NewLexer([]byte(fragment))
	var toks []lexer.Token
	for {
		tok, err := lx.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.TokenType_EOF {
			break
		}
		toks = append(toks, tok)
	}

	toks = rewriteEnglishOperators(toks)
	toks, err := rewriteSigils(toks)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	expr, err := p.parseExprPrecedence(precLowest)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("%s: unexpected trailing token %q", p.peek().Location, p.peek().Content)
	}
	return expr, nil
}

type precedence int

const (
	precLowest precedence = iota
	precOr                // ||
	precAnd               // &&
	precBitOr             // |
	precBitXor            // ^
	precBitAnd            // &
	precCompare           // == != < <= > >=
	precAdd               // + -
	precMul               // * / %
	precUnary             // unary ! -
	precCall              // ( ) and primaries
)

type (
	prefixParseFn func(p *parser, tok lexer.Token) (ast.Expr, error)
	infixParseFn  func(p *parser, tok lexer.Token, left ast.Expr) (ast.Expr, error)
	parseRule     struct {
		precedence precedence
		prefix     prefixParseFn
		infix      infixParseFn
	}
)

var rules map[string]parseRule

func init() {
	rules = map[string]parseRule{
		"!": {precedence: precUnary, prefix: parsePrefixNot},
		"-": {precedence: precAdd, prefix: parsePrefixNeg, infix: infixBinary(ast.Sub, precAdd)},
		"(": {precedence: precCall, prefix: parseParenthesized},

		"||": {precedence: precOr, infix: infixBinary(ast.Or, precOr)},
		"&&": {precedence: precAnd, infix: infixBinary(ast.And, precAnd)},
		"|":  {precedence: precBitOr, infix: infixBinary(ast.BitOr, precBitOr)},
		"^":  {precedence: precBitXor, infix: infixBinary(ast.BitXor, precBitXor)},
		"&":  {precedence: precBitAnd, infix: infixBinary(ast.BitAnd, precBitAnd)},
		"==": {precedence: precCompare, infix: infixBinary(ast.Eq, precCompare)},
		"!=": {precedence: precCompare, infix: infixBinary(ast.Ne, precCompare)},
		"<":  {precedence: precCompare, infix: infixBinary(ast.Lt, precCompare)},
		"<=": {precedence: precCompare, infix: infixBinary(ast.Le, precCompare)},
		">":  {precedence: precCompare, infix: infixBinary(ast.Gt, precCompare)},
		">=": {precedence: precCompare, infix: infixBinary(ast.Ge, precCompare)},
		"+":  {precedence: precAdd, infix: infixBinary(ast.Add, precAdd)},
		"*":  {precedence: precMul, infix: infixBinary(ast.Mul, precMul)},
		"/":  {precedence: precMul, infix: infixBinary(ast.Div, precMul)},
		"%":  {precedence: precMul, infix: infixBinary(ast.Rem, precMul)},
	}
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) peek() lexer.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return lexer.TokenEOF
}

func (p *parser) next() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *parser) expectSymbol(content string) error {
	tok := p.next()
	if tok.Type != lexer.TokenType_Symbol || tok.Content != content {
		return fmt.Errorf("%s: expected %q, found %q", tok.Location, content, tok.Content)
	}
	return nil
}

func getPrefixParseFn(tok lexer.Token) prefixParseFn {
	if tok.Type == lexer.TokenType_Symbol {
		if rule, ok := rules[tok.Content]; ok && rule.prefix != nil {
			return rule.prefix
		}
	}
	return parsePrimary
}

// parseExprPrecedence implements Pratt (precedence-climbing) parsing, the
// same shape as language/internal/cc/parser.parser.parseExprPrecedence,
// generalized from a 6-operator #if grammar to the full expression grammar.
func (p *parser) parseExprPrecedence(minPrecedence precedence) (ast.Expr, error) {
	tok := p.next()
	if tok.Type == lexer.TokenType_EOF {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	result, err := getPrefixParseFn(tok)(p, tok)
	if err != nil {
		return nil, err
	}

	result, err = maybeParseCast(p, result)
	if err != nil {
		return nil, err
	}

	for {
		peeked := p.peek()
		if peeked.Type != lexer.TokenType_Symbol {
			return result, nil
		}
		rule, ok := rules[peeked.Content]
		if !ok || rule.infix == nil || rule.precedence < minPrecedence {
			return result, nil
		}
		p.next()
		result, err = rule.infix(p, peeked, result)
		if err != nil {
			return nil, err
		}
	}
}

func infixBinary(op ast.BinaryOperator, prec precedence) infixParseFn {
	return func(p *parser, _ lexer.Token, left ast.Expr) (ast.Expr, error) {
		right, err := p.parseExprPrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		return ast.BinaryOp{Op: op, L: left, R: right}, nil
	}
}

func parsePrefixNot(p *parser, _ lexer.Token) (ast.Expr, error) {
	inner, err := p.parseExprPrecedence(precUnary)
	if err != nil {
		return nil, err
	}
	return ast.UnaryOp{Op: ast.UnaryNot, X: inner}, nil
}

// parsePrefixNeg parses unary minus, folding the result into a signed literal
// when the operand is (modulo parentheses) a numeric literal, per §3's
// constant-folding invariant.
func parsePrefixNeg(p *parser, _ lexer.Token) (ast.Expr, error) {
	inner, err := p.parseExprPrecedence(precUnary)
	if err != nil {
		return nil, err
	}
	switch v := unwrapParen(inner).(type) {
	case ast.IntLit:
		return ast.IntLit(-v), nil
	case ast.FloatLit:
		return ast.FloatLit(-v), nil
	default:
		return ast.UnaryOp{Op: ast.UnaryNeg, X: inner}, nil
	}
}

func unwrapParen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(ast.Paren)
		if !ok {
			return e
		}
		e = p.X
	}
}

func parseParenthesized(p *parser, _ lexer.Token) (ast.Expr, error) {
	inner, err := p.parseExprPrecedence(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return ast.Paren{X: inner}, nil
}

// maybeParseCast consumes a trailing `as Type` cast, if present.
func maybeParseCast(p *parser, base ast.Expr) (ast.Expr, error) {
	for p.peek().Type == lexer.TokenType_Word && p.peek().Content == "as" {
		p.next()
		typeTok := p.next()
		if typeTok.Type != lexer.TokenType_Word {
			return nil, fmt.Errorf("%s: expected a type name after 'as'", typeTok.Location)
		}
		declType, err := ast.ParseDeclarationType(typeTok.Content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typeTok.Location, err)
		}
		base = ast.Cast{Target: declType, X: base}
	}
	return base, nil
}

// parsePrimary parses literals, identifiers, and (custom/builtin) function
// calls — the fallback prefix parser for any token with no dedicated entry in
// the operator table.
func parsePrimary(p *parser, tok lexer.Token) (ast.Expr, error) {
	switch tok.Type {
	case lexer.TokenType_Int:
		n, err := strconv.ParseInt(tok.Content, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer literal %q: %w", tok.Location, tok.Content, err)
		}
		return ast.IntLit(n), nil

	case lexer.TokenType_Float:
		f, err := strconv.ParseFloat(tok.Content, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid float literal %q: %w", tok.Location, tok.Content, err)
		}
		return ast.FloatLit(f), nil

	case lexer.TokenType_String:
		return ast.StringLit(lexer.Unquote(tok.Content)), nil

	case lexer.TokenType_Word:
		switch tok.Content {
		case "true":
			return ast.BoolLit(true), nil
		case "false":
			return ast.BoolLit(false), nil
		}
		if p.peek().Type == lexer.TokenType_Symbol && p.peek().Content == "(" {
			return parseCall(p, tok.Content)
		}
		return ast.Ident(tok.Content), nil

	default:
		return nil, fmt.Errorf("%s: unexpected token %q", tok.Location, tok.Content)
	}
}

func parseCall(p *parser, name string) (ast.Expr, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for {
		peeked := p.peek()
		if peeked.Type == lexer.TokenType_Symbol && peeked.Content == ")" {
			p.next()
			break
		}
		if peeked.Type == lexer.TokenType_EOF {
			return nil, fmt.Errorf("unterminated call to %q: missing ')'", name)
		}
		arg, err := p.parseExprPrecedence(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().Type == lexer.TokenType_Symbol && p.peek().Content == "," {
			p.next()
		}
	}
	return classifyCall(name, args)
}

// classifyCall performs the step-4 post-processing of spec §4.1: recognizing
// get_var, the built-in function set, and leaving unknown names as custom
// calls.
func classifyCall(name string, args []ast.Expr) (ast.Expr, error) {
	if name == "get_var" {
		if len(args) != 1 {
			return nil, fmt.Errorf("get_var expects exactly one argument, got %d", len(args))
		}
		ident, ok := args[0].(ast.Ident)
		if !ok {
			return nil, fmt.Errorf("get_var requires an identifier argument")
		}
		return ast.GetVar{Name: string(ident)}, nil
	}

	fn, isBuiltin := ast.BuiltinByName(name)
	if !isBuiltin {
		return ast.Call{Name: name, Args: args}, nil
	}

	wantArity := ast.BuiltinArity[fn]
	if len(args) != wantArity {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, wantArity, len(args))
	}
	if fn == ast.Visited || fn == ast.VisitedCount {
		switch args[0].(type) {
		case ast.StringLit, ast.Ident:
		default:
			return nil, fmt.Errorf("%s argument must be a string literal or a bare node name", name)
		}
	}
	return ast.BuiltinCall{Name: fn, Args: args}, nil
}
