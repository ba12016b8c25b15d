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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/mathstatic/msc/pkg/compiler"
	"github.com/mathstatic/msc/pkg/executor"
)

func stageFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{inputFlag(), formatFlag(documentFormats), outputFlag()}, extra...)
}

func tokensCmd() *cli.Command {
	return &cli.Command{
		Name:                  "tokens",
		EnableShellCompletion: true,
		Usage:                 "Print the tokens of an expression.",
		Flags:                 stageFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			res, err := compileInput(ctx, cmd, stderrPrompt(cmd), false)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res.Tokens)
		},
	}
}

func astCmd() *cli.Command {
	return &cli.Command{
		Name:                  "ast",
		EnableShellCompletion: true,
		Usage:                 "Print the syntax tree of an expression.",
		Flags:                 stageFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			res, err := compileInput(ctx, cmd, stderrPrompt(cmd), false)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res.Tree)
		},
	}
}

func irCmd() *cli.Command {
	return &cli.Command{
		Name:                  "ir",
		EnableShellCompletion: true,
		Usage:                 "Print the SSA program of an expression.",
		Description: `Prints the control-flow data: constants, variables, instructions and the
output slot. The program is optimized unless --no-optimize is set.`,
		Flags: stageFlags(noOptimizeFlag(false)),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			res, err := compileInput(ctx, cmd, stderrPrompt(cmd), !cmd.Bool("no-optimize"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res.Program)
		},
	}
}

func compileCmd() *cli.Command {
	return &cli.Command{
		Name:                  "compile",
		EnableShellCompletion: true,
		Usage:                 "Compile and run an expression and print the full report.",
		Description: `Produces the same report as POST /v1/compile: tokens, tree, programs
before and after optimization, the execution trace and the result.

  msc compile -i "a * (b + 0)" -D a=2 -D b=3 -t json`,
		Flags: stageFlags(varFlag(false), noOptimizeFlag(false)),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			values, err := executor.ParseValues(cmd.StringSlice("var"))
			if err != nil {
				return compiler.WrapError(err)
			}
			prompt := stderrPrompt(cmd)
			res, err := compileInput(ctx, cmd, prompt, !cmd.Bool("no-optimize"))
			if err != nil {
				return err
			}
			out, err := res.Run(ctx, executor.Chain{values, prompt})
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, compiler.NewReport(res, out, version))
		},
	}
}

// compileInput reads the source with prompt so that later questions share its
// buffered input.
func compileInput(ctx context.Context, cmd *cli.Command, prompt *executor.PromptResolver, optimize bool) (*compiler.Result, error) {
	if _, err := parseOutputFormat(cmd); err != nil {
		return nil, err
	}
	source, err := readSource(ctx, cmd, prompt)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(ctx, source, compiler.WithOptimize(optimize))
}
