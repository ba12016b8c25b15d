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

package ir

import (
	"fmt"

	"github.com/mathstatic/msc/pkg/lexer"
	"github.com/mathstatic/msc/pkg/parser"
)

// ControlFlowError reports a tree or program the backend cannot handle.
type ControlFlowError struct {
	Message string
}

func (e *ControlFlowError) Error() string {
	return "control flow: " + e.Message
}

var binaryOps = map[lexer.TokenType]Op{
	lexer.Multiply:  Multiply,
	lexer.Add:       Add,
	lexer.Subtract:  Subtract,
	lexer.Delimiter: Divide,
}

// Builder lowers a syntax tree into a Program.
type Builder struct {
	prog      *Program
	variables map[string]Position
}

// NewBuilder returns a builder over a fresh program.
func NewBuilder() *Builder {
	return &Builder{
		prog:      NewProgram(),
		variables: map[string]Position{},
	}
}

// Build lowers expr into a new Program whose Out is the root slot.
func Build(expr parser.Expression) (*Program, error) {
	b := NewBuilder()
	if _, err := b.Add(expr); err != nil {
		return nil, err
	}
	return b.Program(), nil
}

// Program returns the program built so far.
func (b *Builder) Program() *Program {
	return b.prog
}

// Add lowers expr and sets Out to its slot.
func (b *Builder) Add(expr parser.Expression) (Position, error) {
	pos, err := b.add(expr)
	if err != nil {
		return 0, err
	}
	b.prog.Out = pos
	return pos, nil
}

func (b *Builder) add(expr parser.Expression) (Position, error) {
	switch e := expr.(type) {
	case *parser.Number:
		return b.number(e.Value), nil
	case *parser.Variable:
		return b.variable(e.Name.Lexeme), nil
	case *parser.Grouping:
		return b.add(e.Expr)
	case *parser.Binary:
		return b.binary(e)
	case *parser.Unary:
		return b.unary(e)
	case nil:
		return 0, &ControlFlowError{Message: "empty expression"}
	default:
		return 0, &ControlFlowError{Message: fmt.Sprintf("unsupported expression %T", expr)}
	}
}

func (b *Builder) number(v float64) Position {
	if pos, ok := b.prog.constant(v); ok {
		return pos
	}
	pos := b.prog.alloc()
	b.prog.Defines[pos] = v
	return pos
}

func (b *Builder) variable(name string) Position {
	if pos, ok := b.variables[name]; ok {
		return pos
	}
	pos := b.prog.alloc()
	b.prog.Variables[pos] = name
	b.variables[name] = pos
	return pos
}

func (b *Builder) binary(e *parser.Binary) (Position, error) {
	left, err := b.add(e.Left)
	if err != nil {
		return 0, err
	}
	right, err := b.add(e.Right)
	if err != nil {
		return 0, err
	}
	op, ok := binaryOps[e.Op.Type]
	if !ok {
		return 0, &ControlFlowError{Message: fmt.Sprintf("unsupported binary operator %s", e.Op.Type)}
	}
	return b.instruction(left, op, right), nil
}

// unary lowers -x to x * -1.
func (b *Builder) unary(e *parser.Unary) (Position, error) {
	operand, err := b.add(e.Expr)
	if err != nil {
		return 0, err
	}
	if e.Op.Type != lexer.Subtract {
		return 0, &ControlFlowError{Message: fmt.Sprintf("unsupported unary operator %s", e.Op.Type)}
	}
	return b.instruction(operand, Multiply, b.minusOne()), nil
}

// minusOne returns the -1 slot, restoring it if an earlier pass dropped it.
func (b *Builder) minusOne() Position {
	if b.prog.IsConstant(MinusOne, -1) {
		return MinusOne
	}
	return b.number(-1)
}

func (b *Builder) instruction(left Position, op Op, right Position) Position {
	pos := b.prog.alloc()
	b.prog.Instructions[pos] = Instruction{Left: left, Op: op, Right: right}
	b.prog.addUse(left, pos)
	b.prog.addUse(right, pos)
	return pos
}
