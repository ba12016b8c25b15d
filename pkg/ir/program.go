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
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position is an SSA slot number, rendered as %N.
type Position uint

// MinusOne is the slot reserved for the constant -1 used to lower negation.
const MinusOne Position = 0

func (p Position) String() string {
	return "%" + strconv.FormatUint(uint64(p), 10)
}

// Op is a binary arithmetic operation.
type Op uint8

const (
	Add Op = iota
	Subtract
	Multiply
	Divide
)

var opSymbols = [...]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
}

var opNames = [...]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
}

// String returns the operator symbol.
func (o Op) String() string {
	if int(o) < len(opSymbols) {
		return opSymbols[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Name returns the operator name used in metrics and logs.
func (o Op) Name() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return o.String()
}

// Apply evaluates the operation with IEEE-754 semantics.
func (o Op) Apply(left, right float64) float64 {
	switch o {
	case Add:
		return left + right
	case Subtract:
		return left - right
	case Multiply:
		return left * right
	case Divide:
		return left / right
	default:
		panic(fmt.Sprintf("ir: unknown op %d", uint8(o)))
	}
}

// Instruction is `Left Op Right`.
type Instruction struct {
	Left  Position `json:"left" yaml:"left"`
	Op    Op       `json:"op" yaml:"op"`
	Right Position `json:"right" yaml:"right"`
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %s %s", i.Left, i.Op, i.Right)
}

// operands returns both operand slots.
func (i Instruction) operands() [2]Position {
	return [2]Position{i.Left, i.Right}
}

// Program is the control-flow data of one expression. Every live slot holds
// exactly one of a constant, a variable or an instruction.
type Program struct {
	Defines      map[Position]float64
	Variables    map[Position]string
	Instructions map[Position]Instruction
	// Uses maps a slot to the instructions reading it.
	Uses map[Position]map[Position]struct{}
	Out  Position

	next Position
}

// NewProgram returns an empty program holding only the -1 constant.
func NewProgram() *Program {
	return &Program{
		Defines:      map[Position]float64{MinusOne: -1},
		Variables:    map[Position]string{},
		Instructions: map[Position]Instruction{},
		Uses:         map[Position]map[Position]struct{}{MinusOne: {}},
		next:         MinusOne + 1,
	}
}

// Clone returns a deep copy.
func (p *Program) Clone() *Program {
	c := &Program{
		Defines:      maps.Clone(p.Defines),
		Variables:    maps.Clone(p.Variables),
		Instructions: maps.Clone(p.Instructions),
		Uses:         make(map[Position]map[Position]struct{}, len(p.Uses)),
		Out:          p.Out,
		next:         p.next,
	}
	for pos, users := range p.Uses {
		c.Uses[pos] = maps.Clone(users)
	}
	return c
}

// Len is the number of live slots.
func (p *Program) Len() int {
	return len(p.Defines) + len(p.Variables) + len(p.Instructions)
}

// Positions returns every live slot in ascending order.
func (p *Program) Positions() []Position {
	out := make([]Position, 0, p.Len())
	out = slices.AppendSeq(out, maps.Keys(p.Defines))
	out = slices.AppendSeq(out, maps.Keys(p.Variables))
	out = slices.AppendSeq(out, maps.Keys(p.Instructions))
	slices.Sort(out)
	return out
}

// IsConstant reports whether pos holds the constant v.
func (p *Program) IsConstant(pos Position, v float64) bool {
	c, ok := p.Defines[pos]
	return ok && c == v
}

// Users returns the instructions reading pos in ascending order.
func (p *Program) Users(pos Position) []Position {
	return slices.Sorted(maps.Keys(p.Uses[pos]))
}

// Describe renders the right-hand side of a slot: a constant, a variable name or
// an instruction.
func (p *Program) Describe(pos Position) string {
	if v, ok := p.Defines[pos]; ok {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
	if name, ok := p.Variables[pos]; ok {
		return name
	}
	if instr, ok := p.Instructions[pos]; ok {
		return instr.String()
	}
	return ""
}

// String lists the program one slot per line followed by the output slot.
func (p *Program) String() string {
	var b strings.Builder
	for _, pos := range p.Positions() {
		fmt.Fprintf(&b, "%s = %s\n", pos, p.Describe(pos))
	}
	fmt.Fprintf(&b, "out %s\n", p.Out)
	return b.String()
}

// TableRows returns slots in document order: constants, variables,
// instructions, each ascending.
func (p *Program) TableRows() [][2]string {
	out := make([][2]string, 0, p.Len())
	for _, pos := range slices.Sorted(maps.Keys(p.Defines)) {
		out = append(out, [2]string{pos.String(), p.Describe(pos)})
	}
	for _, pos := range slices.Sorted(maps.Keys(p.Variables)) {
		out = append(out, [2]string{pos.String(), p.Describe(pos)})
	}
	for _, pos := range slices.Sorted(maps.Keys(p.Instructions)) {
		out = append(out, [2]string{pos.String(), p.Describe(pos)})
	}
	return out
}

// MarshalJSON renders the program as an object keyed by slot.
func (p *Program) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.TableRows() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e[0])
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e[1])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalText renders the program as String does. Encoders without a JSON or
// YAML hook, such as TOML, use it.
func (p *Program) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// MarshalYAML renders the same mapping as MarshalJSON, keeping slot order.
func (p *Program) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range p.TableRows() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e[0]},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e[1]},
		)
	}
	return node, nil
}

func (p *Program) alloc() Position {
	pos := p.next
	p.next++
	p.Uses[pos] = map[Position]struct{}{}
	return pos
}

func (p *Program) constant(v float64) (Position, bool) {
	for _, pos := range slices.Sorted(maps.Keys(p.Defines)) {
		if p.Defines[pos] == v {
			return pos, true
		}
	}
	return 0, false
}

func (p *Program) addUse(operand, user Position) {
	users, ok := p.Uses[operand]
	if !ok {
		users = map[Position]struct{}{}
		p.Uses[operand] = users
	}
	users[user] = struct{}{}
}

// detach removes the instruction at pos and its use edges.
func (p *Program) detach(pos Position) {
	instr, ok := p.Instructions[pos]
	if !ok {
		return
	}
	for _, operand := range instr.operands() {
		delete(p.Uses[operand], pos)
	}
	delete(p.Instructions, pos)
}

// replace rewrites every reader of old to read repl instead, then drops old.
func (p *Program) replace(old, repl Position) {
	if old == repl {
		return
	}
	for user := range p.Uses[old] {
		instr := p.Instructions[user]
		if instr.Left == old {
			instr.Left = repl
		}
		if instr.Right == old {
			instr.Right = repl
		}
		p.Instructions[user] = instr
		p.addUse(repl, user)
	}
	p.detach(old)
	delete(p.Uses, old)
	delete(p.Defines, old)
	delete(p.Variables, old)
	if p.Out == old {
		p.Out = repl
	}
}

// setConstant turns pos into the constant v, reusing an existing slot with the
// same value when there is one.
func (p *Program) setConstant(pos Position, v float64) {
	if existing, ok := p.constant(v); ok && existing != pos {
		p.replace(pos, existing)
		return
	}
	p.detach(pos)
	delete(p.Variables, pos)
	p.Defines[pos] = v
}
