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

package lexer

var singleCharOperators = map[byte]TokenType{
	'(': OpenBracket,
	')': CloseBracket,
	'*': Multiply,
	'/': Delimiter,
	'+': Add,
	'-': Subtract,
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Lexer turns an expression into tokens. A Lexer is single use.
type Lexer struct {
	source  string
	tokens  []Token
	start   int
	current int
}

// New creates a lexer over source.
func New(source string) *Lexer {
	return &Lexer{source: source}
}

// Scan is shorthand for New(source).ScanTokens().
func Scan(source string) ([]Token, error) {
	return New(source).ScanTokens()
}

// ScanTokens scans the whole source. The returned slice always ends with an
// EOF token positioned at len(source). Scanning stops at the first character
// outside the alphabet with an *UnknownLiteralError.
func (l *Lexer) ScanTokens() ([]Token, error) {
	for l.current < len(l.source) {
		if err := l.scanToken(); err != nil {
			return nil, err
		}
		l.start = l.current
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Lexeme: "", Pos: len(l.source)})
	return l.tokens, nil
}

// Tokens returns the tokens scanned so far.
func (l *Lexer) Tokens() []Token {
	return l.tokens
}

func (l *Lexer) scanToken() error {
	c := l.source[l.current]
	l.current++

	if typ, ok := singleCharOperators[c]; ok {
		l.addToken(typ)
		return nil
	}

	switch {
	case isWhitespace(c):
		return nil
	case isAlpha(c):
		l.variable()
		return nil
	case isDigit(c):
		l.number()
		return nil
	default:
		return &UnknownLiteralError{Source: l.source, Pos: l.start}
	}
}

func (l *Lexer) variable() {
	for l.current < len(l.source) && (isAlpha(l.source[l.current]) || isDigit(l.source[l.current])) {
		l.current++
	}
	l.addToken(Variable)
}

func (l *Lexer) number() {
	for l.current < len(l.source) && isDigit(l.source[l.current]) {
		l.current++
	}
	if l.current < len(l.source) && l.source[l.current] == '.' {
		l.current++
		for l.current < len(l.source) && isDigit(l.source[l.current]) {
			l.current++
		}
	}
	l.addToken(Number)
}

func (l *Lexer) addToken(typ TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   typ,
		Lexeme: l.source[l.start:l.current],
		Pos:    l.start,
	})
}
