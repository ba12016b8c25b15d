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
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mathstatic/msc/pkg/lexer"
)

func parseString(t *testing.T, src string) (Expression, error) {
	t.Helper()
	tokens, err := lexer.Scan(src)
	if err != nil {
		t.Fatalf("Scan(%q) error = %v", src, err)
	}
	return Parse(tokens)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{"x", "x"},
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"-x", "(- x)"},
		{"--x", "(- (- x))"},
		{"2 * -x", "(* 2 (- x))"},
		{"1 - -2", "(- 1 (- 2))"},
		{"1 + 11.00 - 1000 / var123 * (5 - 2)", "(- (+ 1 11) (* (/ 1000 var123) (group (- 5 2))))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parseString(t, tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantPos int
		wantMsg string
	}{
		{name: "empty", input: "", wantPos: 0, wantMsg: msgExpectExpression},
		{name: "dangling operator", input: "1 +", wantPos: 3, wantMsg: msgExpectExpression},
		{name: "leading operator", input: "* 2", wantPos: 0, wantMsg: msgExpectExpression},
		{name: "unclosed bracket", input: "(1 + 2", wantPos: 6, wantMsg: msgExpectCloseBracket},
		{name: "empty brackets", input: "()", wantPos: 1, wantMsg: msgExpectExpression},
		{name: "trailing bracket", input: "1 + 2)", wantPos: 5, wantMsg: "Unexpected token ')'"},
		{name: "adjacent operands", input: "2 x", wantPos: 2, wantMsg: "Unexpected token 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseString(t, tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.input, err)
			}
			if perr.Pos != tt.wantPos {
				t.Errorf("Pos = %d, want %d", perr.Pos, tt.wantPos)
			}
			if perr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", perr.Message, tt.wantMsg)
			}
		})
	}
}

func TestParseAddsMissingEOF(t *testing.T) {
	tokens := []lexer.Token{
		lexer.NewToken(lexer.Number, "1", 0),
		lexer.NewToken(lexer.Add, "+", 1),
		lexer.NewToken(lexer.Number, "2", 2),
	}
	expr, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if expr.String() != "(+ 1 2)" {
		t.Errorf("Parse() = %s", expr)
	}
	if len(tokens) != 3 {
		t.Errorf("input slice modified: len = %d", len(tokens))
	}
}

func TestEqual(t *testing.T) {
	a, err := parseString(t, "(a + 2) * -b")
	if err != nil {
		t.Fatal(err)
	}
	b, err := parseString(t, "(a + 2) * -b")
	if err != nil {
		t.Fatal(err)
	}
	c, err := parseString(t, "(a + 2) * -c")
	if err != nil {
		t.Fatal(err)
	}

	if !a.Equal(b) {
		t.Error("identical trees are not equal")
	}
	if a.Equal(c) {
		t.Error("different variables compare equal")
	}
	if (&Number{Value: 1}).Equal(&Number{Value: 1.5}) {
		t.Error("different numbers compare equal")
	}
	if (&Number{Value: 1}).Equal(&Grouping{Expr: &Number{Value: 1}}) {
		t.Error("number equals grouping")
	}
}

func TestMarshalJSON(t *testing.T) {
	expr, err := parseString(t, "-(x + 2)")
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(expr)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"type":"unary","token_type":"subtract","expr":{"type":"grouping","expr":` +
		`{"type":"binary","left":{"type":"variable","lexeme":"x"},"token_type":"add",` +
		`"right":{"type":"number","value":"2.000000"}}}}`
	if string(b) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", b, want)
	}
}

func TestMarshalYAML(t *testing.T) {
	expr, err := parseString(t, "a * 3")
	if err != nil {
		t.Fatal(err)
	}
	b, err := yaml.Marshal(expr)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	out := string(b)
	for _, s := range []string{"type: binary", "token_type: multiply", "lexeme: a", "value: \"3.000000\""} {
		if !strings.Contains(out, s) {
			t.Errorf("yaml output missing %q:\n%s", s, out)
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(-1); got != "-1.000000" {
		t.Errorf("FormatValue(-1) = %s", got)
	}
	if got := FormatValue(0.1 + 0.2); got != "0.300000" {
		t.Errorf("FormatValue(0.3) = %s", got)
	}
}
