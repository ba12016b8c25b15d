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
	"maps"
	"slices"
)

// MaxOptimizeRounds bounds the fixpoint loop in Optimize.
const MaxOptimizeRounds = 32

// Pass rewrites a program in place and reports whether anything changed.
type Pass struct {
	Name string
	Run  func(*Program) bool
}

// Passes is the order Optimize applies them in.
var Passes = []Pass{
	{Name: "constant_folding", Run: FoldConstants},
	{Name: "algebraic_simplification", Run: Simplify},
	{Name: "copy_propagation", Run: PropagateCopies},
	{Name: "dead_code_elimination", Run: EliminateDeadCode},
}

// OptimizeStats summarises an Optimize run.
type OptimizeStats struct {
	Rounds             int            `json:"rounds" yaml:"rounds"`
	InstructionsBefore int            `json:"instructionsBefore" yaml:"instructionsBefore"`
	InstructionsAfter  int            `json:"instructionsAfter" yaml:"instructionsAfter"`
	SlotsBefore        int            `json:"slotsBefore" yaml:"slotsBefore"`
	SlotsAfter         int            `json:"slotsAfter" yaml:"slotsAfter"`
	Changes            map[string]int `json:"changes" yaml:"changes"`
	ReachedRoundLimit  bool           `json:"reachedRoundLimit,omitempty" yaml:"reachedRoundLimit,omitempty"`
}

// RemovedInstructions is the number of instructions the run eliminated.
func (s OptimizeStats) RemovedInstructions() int {
	return s.InstructionsBefore - s.InstructionsAfter
}

// Optimize applies Passes until none of them changes the program or
// MaxOptimizeRounds is reached.
func Optimize(p *Program) OptimizeStats {
	stats := OptimizeStats{
		InstructionsBefore: len(p.Instructions),
		SlotsBefore:        p.Len(),
		Changes:            map[string]int{},
	}
	for stats.Rounds < MaxOptimizeRounds {
		stats.Rounds++
		changed := false
		for _, pass := range Passes {
			if pass.Run(p) {
				stats.Changes[pass.Name]++
				changed = true
			}
		}
		if !changed {
			break
		}
		if stats.Rounds == MaxOptimizeRounds {
			stats.ReachedRoundLimit = true
		}
	}
	stats.InstructionsAfter = len(p.Instructions)
	stats.SlotsAfter = p.Len()
	return stats
}

func (p *Program) instructionPositions() []Position {
	return slices.Sorted(maps.Keys(p.Instructions))
}

// FoldConstants replaces instructions whose operands are both constants with
// the computed constant.
func FoldConstants(p *Program) bool {
	changed := false
	for _, pos := range p.instructionPositions() {
		instr, ok := p.Instructions[pos]
		if !ok {
			continue
		}
		left, lok := p.Defines[instr.Left]
		right, rok := p.Defines[instr.Right]
		if !lok || !rok {
			continue
		}
		p.setConstant(pos, instr.Op.Apply(left, right))
		changed = true
	}
	return changed
}

// Simplify applies algebraic identities:
//
//	x*0, 0*x, x-x  -> 0
//	x*1, 1*x, x/1  -> x
//	x+0, 0+x, x-0  -> x
func Simplify(p *Program) bool {
	changed := false
	for _, pos := range p.instructionPositions() {
		instr, ok := p.Instructions[pos]
		if !ok {
			continue
		}
		l, r := instr.Left, instr.Right
		switch instr.Op {
		case Multiply:
			switch {
			case p.IsConstant(r, 0):
				p.replace(pos, r)
			case p.IsConstant(l, 0):
				p.replace(pos, l)
			case p.IsConstant(r, 1):
				p.replace(pos, l)
			case p.IsConstant(l, 1):
				p.replace(pos, r)
			default:
				continue
			}
		case Divide:
			if !p.IsConstant(r, 1) {
				continue
			}
			p.replace(pos, l)
		case Add:
			switch {
			case p.IsConstant(r, 0):
				p.replace(pos, l)
			case p.IsConstant(l, 0):
				p.replace(pos, r)
			default:
				continue
			}
		case Subtract:
			switch {
			case l == r:
				p.setConstant(pos, 0)
			case p.IsConstant(r, 0):
				p.replace(pos, l)
			default:
				continue
			}
		default:
			continue
		}
		changed = true
	}
	return changed
}

// PropagateCopies collapses identical instructions onto the lowest slot.
func PropagateCopies(p *Program) bool {
	changed := false
	seen := map[Instruction]Position{}
	for _, pos := range p.instructionPositions() {
		instr, ok := p.Instructions[pos]
		if !ok {
			continue
		}
		if first, dup := seen[instr]; dup {
			p.replace(pos, first)
			changed = true
			continue
		}
		seen[instr] = pos
	}
	return changed
}

// EliminateDeadCode drops every slot Out does not depend on.
func EliminateDeadCode(p *Program) bool {
	live := map[Position]bool{}
	work := []Position{p.Out}
	for len(work) > 0 {
		pos := work[len(work)-1]
		work = work[:len(work)-1]
		if live[pos] {
			continue
		}
		live[pos] = true
		if instr, ok := p.Instructions[pos]; ok {
			work = append(work, instr.Left, instr.Right)
		}
	}

	changed := false
	for _, pos := range p.Positions() {
		if live[pos] {
			continue
		}
		p.detach(pos)
		delete(p.Defines, pos)
		delete(p.Variables, pos)
		delete(p.Uses, pos)
		changed = true
	}
	return changed
}
