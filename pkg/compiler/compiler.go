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

package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/mathstatic/msc/pkg/executor"
	"github.com/mathstatic/msc/pkg/ir"
	"github.com/mathstatic/msc/pkg/lexer"
	"github.com/mathstatic/msc/pkg/parser"
)

// Stage names a pipeline step. Used as the label of msc_compile_errors_total.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageBuild   Stage = "build"
	StageExecute Stage = "execute"
)

// Option configures Compile.
type Option func(*options)

type options struct {
	optimize bool
}

// WithOptimize turns the optimiser on or off. It is on by default.
func WithOptimize(optimize bool) Option {
	return func(o *options) {
		o.optimize = optimize
	}
}

// Result holds every intermediate form of one compilation.
type Result struct {
	Source      string
	Tokens      []lexer.Token
	Tree        parser.Expression
	Unoptimized *ir.Program
	Program     *ir.Program
	Optimized   bool
	Stats       ir.OptimizeStats
	Duration    time.Duration
}

// Compile scans, parses and lowers source, then optimises the program unless
// WithOptimize(false) is given. Errors are returned as
// *errors.StructuredError with the failing position in their context.
func Compile(ctx context.Context, source string, opts ...Option) (*Result, error) {
	o := options{optimize: true}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	res := &Result{Source: source}

	if err := ctx.Err(); err != nil {
		return nil, WrapError(err)
	}
	tokens, err := lexer.Scan(source)
	if err != nil {
		return nil, failed(StageLex, err)
	}
	res.Tokens = tokens

	if err := ctx.Err(); err != nil {
		return nil, WrapError(err)
	}
	tree, err := parser.Parse(tokens)
	if err != nil {
		return nil, failed(StageParse, err)
	}
	res.Tree = tree

	prog, err := ir.Build(tree)
	if err != nil {
		return nil, failed(StageBuild, err)
	}
	res.Unoptimized = prog.Clone()

	if o.optimize {
		if err := ctx.Err(); err != nil {
			return nil, WrapError(err)
		}
		res.Stats = ir.Optimize(prog)
		res.Optimized = true
		optimizerRemovedInstructions.Add(float64(res.Stats.RemovedInstructions()))
		if res.Stats.ReachedRoundLimit {
			slog.Warn("optimizer stopped at round limit",
				"rounds", res.Stats.Rounds,
				"instructions", res.Stats.InstructionsAfter)
		}
	}
	res.Program = prog

	res.Duration = time.Since(start)
	compileDuration.Observe(res.Duration.Seconds())

	slog.Debug("compiled expression",
		"tokens", len(tokens),
		"instructions", len(prog.Instructions),
		"optimized", res.Optimized,
		"removed", res.Stats.RemovedInstructions(),
		"duration", res.Duration.String())

	return res, nil
}

// Run executes the compiled program.
func (r *Result) Run(ctx context.Context, resolver executor.Resolver, opts ...executor.Option) (*executor.Result, error) {
	out, err := executor.Execute(ctx, r.Program, resolver, opts...)
	if err != nil {
		return nil, failed(StageExecute, err)
	}
	return out, nil
}

func failed(stage Stage, err error) error {
	compileErrors.WithLabelValues(string(stage)).Inc()
	slog.Debug("compilation failed", "stage", string(stage), "error", err)
	return WrapError(err)
}
