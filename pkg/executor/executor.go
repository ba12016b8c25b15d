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

package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/mathstatic/msc/pkg/ir"
)

// Result is the value of a program and the steps taken to compute it.
type Result struct {
	Value float64  `json:"value" yaml:"value"`
	Trace []string `json:"trace" yaml:"trace"`
}

// Option configures Execute.
type Option func(*executor)

// WithTraceWriter streams each trace line to w as it is produced, so prompts
// and trace interleave the way a user reads them.
func WithTraceWriter(w io.Writer) Option {
	return func(e *executor) {
		e.traceOut = w
	}
}

// FormatValue renders a value with six significant digits.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

type executor struct {
	memory   map[ir.Position]float64
	trace    []string
	traceOut io.Writer
}

// Execute evaluates prog. Constants are loaded first, then variables are
// resolved and instructions evaluated, each in ascending slot order.
func Execute(ctx context.Context, prog *ir.Program, resolver Resolver, opts ...Option) (*Result, error) {
	if prog == nil {
		return nil, &ir.ControlFlowError{Message: "nil program"}
	}
	e := &executor{memory: make(map[ir.Position]float64, prog.Len())}
	for _, opt := range opts {
		opt(e)
	}

	for _, pos := range slices.Sorted(maps.Keys(prog.Defines)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.store(pos, prog.Defines[pos], "%s = %s", pos, FormatValue(prog.Defines[pos]))
	}

	for _, pos := range slices.Sorted(maps.Keys(prog.Variables)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := prog.Variables[pos]
		if resolver == nil {
			return nil, &UnboundVariableError{Name: name}
		}
		value, err := resolver.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		slog.Debug("variable resolved", "name", name, "position", pos.String(), "value", FormatValue(value))
		e.store(pos, value, "%s = %s", pos, FormatValue(value))
	}

	if value, ok := e.memory[prog.Out]; ok && !isInstruction(prog, prog.Out) {
		return e.result(value), nil
	}

	for _, pos := range slices.Sorted(maps.Keys(prog.Instructions)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		instr := prog.Instructions[pos]
		left, lok := e.memory[instr.Left]
		right, rok := e.memory[instr.Right]
		if !lok || !rok {
			return nil, &ir.ControlFlowError{
				Message: fmt.Sprintf("%s reads a slot that has no value: %s", pos, instr),
			}
		}
		value := instr.Op.Apply(left, right)
		e.store(pos, value, "%s = %s = %s", pos, instr, FormatValue(value))
		if pos == prog.Out {
			return e.result(value), nil
		}
	}

	return nil, &ir.ControlFlowError{Message: fmt.Sprintf("output slot %s was never computed", prog.Out)}
}

func isInstruction(prog *ir.Program, pos ir.Position) bool {
	_, ok := prog.Instructions[pos]
	return ok
}

func (e *executor) store(pos ir.Position, value float64, format string, args ...any) {
	e.memory[pos] = value
	line := fmt.Sprintf(format, args...)
	e.trace = append(e.trace, line)
	if e.traceOut != nil {
		fmt.Fprintln(e.traceOut, line)
	}
}

func (e *executor) result(value float64) *Result {
	return &Result{Value: value, Trace: e.trace}
}
