// Copyright (c) 2025, The MathStaticCompiler Authors.  All rights reserved.
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

package parser

import (
	"fmt"
	"strconv"

	"github.com/mathstatic/msc/pkg/lexer"
)

const (
	msgExpectExpression   = "Expect expression"
	msgExpectCloseBracket = "Expect ')' after expression."
)

// ParseError reports a token stream that does not form an expression.
type ParseError struct {
	Pos     int
	Lexeme  string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at position %d)", e.Message, e.Pos)
}

// Parser is a recursive-descent parser over a token slice. A Parser is single use.
type Parser struct {
	tokens []lexer.Token
	index  int
}

// New creates a parser. A missing trailing EOF token is added.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		pos := 0
		if n := len(tokens); n > 0 {
			pos = tokens[n-1].Pos + len(tokens[n-1].Lexeme)
		}
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.NewToken(lexer.EOF, "", pos))
	}
	return &Parser{tokens: tokens}
}

// Parse is shorthand for New(tokens).Parse().
func Parse(tokens []lexer.Token) (Expression, error) {
	return New(tokens).Parse()
}

// Parse parses the whole stream. Tokens left after a complete expression are an error.
func (p *Parser) Parse() (Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		tok := p.peek()
		return nil, &ParseError{
			Pos:     tok.Pos,
			Lexeme:  tok.Lexeme,
			Message: fmt.Sprintf("Unexpected token '%s'", tok.Lexeme),
		}
	}
	return expr, nil
}

// term := factor (("-" | "+") factor)*
func (p *Parser) term() (Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Subtract, lexer.Add) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// factor := unary (("/" | "*") unary)*
func (p *Parser) factor() (Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Delimiter, lexer.Multiply) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// unary := "-" unary | primary
func (p *Parser) unary() (Expression, error) {
	if p.match(lexer.Subtract) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Expr: operand}, nil
	}
	return p.primary()
}

// primary := number | variable | "(" term ")"
func (p *Parser) primary() (Expression, error) {
	switch {
	case p.match(lexer.Number):
		tok := p.previous()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &ParseError{Pos: tok.Pos, Lexeme: tok.Lexeme, Message: fmt.Sprintf("Invalid number '%s'", tok.Lexeme)}
		}
		return &Number{Value: value}, nil
	case p.match(lexer.Variable):
		return &Variable{Name: p.previous()}, nil
	case p.match(lexer.OpenBracket):
		expr, err := p.term()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.CloseBracket, msgExpectCloseBracket); err != nil {
			return nil, err
		}
		return &Grouping{Expr: expr}, nil
	}
	tok := p.peek()
	return nil, &ParseError{Pos: tok.Pos, Lexeme: tok.Lexeme, Message: msgExpectExpression}
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == typ
}

func (p *Parser) consume(typ lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	tok := p.peek()
	return lexer.Token{}, &ParseError{Pos: tok.Pos, Lexeme: tok.Lexeme, Message: message}
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.index++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.index]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.index-1]
}
