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
	"fmt"
	"math"
	"strconv"

	"github.com/mathstatic/msc/pkg/lexer"
)

// Expression is a node of the syntax tree.
type Expression interface {
	// String renders the node in prefix form, e.g. (+ 1 (group (* 2 x))).
	String() string
	// Equal reports structural equality. Numbers compare within float64 epsilon.
	Equal(other Expression) bool

	json.Marshaler
}

// Binary is `Left Op Right` for the four arithmetic operators.
type Binary struct {
	Left  Expression
	Op    lexer.Token
	Right Expression
}

// Grouping is a parenthesised expression.
type Grouping struct {
	Expr Expression
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Variable is a named input resolved at execution time.
type Variable struct {
	Name lexer.Token
}

// Unary is prefix negation.
type Unary struct {
	Op   lexer.Token
	Expr Expression
}

func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, e.Left, e.Right)
}

func (e *Grouping) String() string {
	return fmt.Sprintf("(group %s)", e.Expr)
}

func (e *Number) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

func (e *Variable) String() string {
	return e.Name.Lexeme
}

func (e *Unary) String() string {
	return fmt.Sprintf("(%s %s)", e.Op.Lexeme, e.Expr)
}

func (e *Binary) Equal(other Expression) bool {
	o, ok := other.(*Binary)
	return ok && e.Op == o.Op && e.Left.Equal(o.Left) && e.Right.Equal(o.Right)
}

func (e *Grouping) Equal(other Expression) bool {
	o, ok := other.(*Grouping)
	return ok && e.Expr.Equal(o.Expr)
}

func (e *Number) Equal(other Expression) bool {
	o, ok := other.(*Number)
	return ok && math.Abs(e.Value-o.Value) < epsilon
}

func (e *Variable) Equal(other Expression) bool {
	o, ok := other.(*Variable)
	return ok && e.Name == o.Name
}

func (e *Unary) Equal(other Expression) bool {
	o, ok := other.(*Unary)
	return ok && e.Op == o.Op && e.Expr.Equal(o.Expr)
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// FormatValue renders a float with six fixed decimals, the format used by the
// debug document for constants and results.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

type binaryView struct {
	Type      string          `json:"type" yaml:"type"`
	Left      Expression      `json:"left" yaml:"left"`
	TokenType lexer.TokenType `json:"token_type" yaml:"token_type"`
	Right     Expression      `json:"right" yaml:"right"`
}

type groupingView struct {
	Type string     `json:"type" yaml:"type"`
	Expr Expression `json:"expr" yaml:"expr"`
}

type numberView struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

type variableView struct {
	Type   string `json:"type" yaml:"type"`
	Lexeme string `json:"lexeme" yaml:"lexeme"`
}

type unaryView struct {
	Type      string          `json:"type" yaml:"type"`
	TokenType lexer.TokenType `json:"token_type" yaml:"token_type"`
	Expr      Expression      `json:"expr" yaml:"expr"`
}

func (e *Binary) view() any {
	return binaryView{Type: "binary", Left: e.Left, TokenType: e.Op.Type, Right: e.Right}
}

func (e *Grouping) view() any {
	return groupingView{Type: "grouping", Expr: e.Expr}
}

func (e *Number) view() any {
	return numberView{Type: "number", Value: FormatValue(e.Value)}
}

func (e *Variable) view() any {
	return variableView{Type: "variable", Lexeme: e.Name.Lexeme}
}

func (e *Unary) view() any {
	return unaryView{Type: "unary", TokenType: e.Op.Type, Expr: e.Expr}
}

func (e *Binary) MarshalJSON() ([]byte, error)   { return json.Marshal(e.view()) }
func (e *Grouping) MarshalJSON() ([]byte, error) { return json.Marshal(e.view()) }
func (e *Number) MarshalJSON() ([]byte, error)   { return json.Marshal(e.view()) }
func (e *Variable) MarshalJSON() ([]byte, error) { return json.Marshal(e.view()) }
func (e *Unary) MarshalJSON() ([]byte, error)    { return json.Marshal(e.view()) }

func (e *Binary) MarshalYAML() (any, error)   { return e.view(), nil }
func (e *Grouping) MarshalYAML() (any, error) { return e.view(), nil }
func (e *Number) MarshalYAML() (any, error)   { return e.view(), nil }
func (e *Variable) MarshalYAML() (any, error) { return e.view(), nil }
func (e *Unary) MarshalYAML() (any, error)    { return e.view(), nil }
