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

import "fmt"

// TokenType classifies a lexeme.
type TokenType uint8

const (
	OpenBracket  TokenType = iota // (
	CloseBracket                  // )
	Multiply                      // *
	Add                           // +
	Subtract                      // -
	Delimiter                     // /
	Number                        // 0-9* | 0-9*.0-9*
	Variable                      // a-zA-Z[a-zA-Z0-9]*
	EOF                           // end of input
)

var tokenTypeNames = [...]string{
	OpenBracket:  "open_bracket",
	CloseBracket: "close_bracket",
	Multiply:     "multiply",
	Add:          "add",
	Subtract:     "subtract",
	Delimiter:    "delimiter",
	Number:       "number",
	Variable:     "variable",
	EOF:          "eof",
}

// String returns the wire name of the token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("token_type(%d)", uint8(t))
}

// ParseTokenType converts a wire name back to a TokenType.
func ParseTokenType(s string) (TokenType, error) {
	for i, name := range tokenTypeNames {
		if name == s {
			return TokenType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown token type %q", s)
}

// MarshalText implements encoding.TextMarshaler so token types serialize by name.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TokenType) UnmarshalText(b []byte) error {
	parsed, err := ParseTokenType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Token is a single lexeme with its position (byte offset) in the source.
type Token struct {
	Type   TokenType `json:"type" yaml:"type"`
	Lexeme string    `json:"lexeme" yaml:"lexeme"`
	Pos    int       `json:"pos" yaml:"pos"`
}

// NewToken is a convenience constructor used heavily in tests.
func NewToken(typ TokenType, lexeme string, pos int) Token {
	return Token{Type: typ, Lexeme: lexeme, Pos: pos}
}

// String renders the token for diagnostics.
func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d", t.Type, t.Lexeme, t.Pos)
}
