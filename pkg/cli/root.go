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
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/mathstatic/msc/pkg/compiler"
	"github.com/mathstatic/msc/pkg/executor"
	"github.com/mathstatic/msc/pkg/logging"
)

const (
	name           = "msc"
	versionDefault = "dev"
	homepage       = "https://github.com/mathstatic/msc"

	inputPrompt = "Input the source line:"

	categoryDebug = "Debug options"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

const banner = "     ▗ ▌       ▗   ▗ ▘             ▘▜     \n" +
	"▛▛▌▀▌▜▘▛▌▛▘  ▛▘▜▘▀▌▜▘▌▛▘  ▛▘▛▌▛▛▌▛▌▌▐ █▌▛▘\n" +
	"▌▌▌█▌▐▖▌▌▄▌▄▖▄▌▐▖█▌▐▖▌▙▖▄▖▙▖▙▌▌▌▌▙▌▌▐▖▙▖▌ \n" +
	"                                 ▌        \n"

// Execute runs msc with the process arguments and exits with its status.
// SIGINT and SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run executes msc with args and returns the process exit code: 0 on success,
// 1 on error and 2 when the run was canceled.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCmd(in, out, errOut)
	if err := cmd.Run(ctx, args); err != nil {
		return reportError(errOut, err)
	}
	return exitOK
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "A command-line utility for optimizing simple mathematical expressions",
		EnableShellCompletion: true,
		Reader:                in,
		Writer:                out,
		ErrWriter:             errOut,
		ExitErrHandler:        func(context.Context, *cli.Command, error) {},
		Description: `Compiles an expression of numbers, variables, + - * / and parentheses into
SSA form, optimizes it and evaluates it. Variables are bound with --var or
asked for on the terminal.

  msc -i "1 + 11.00 - 1000 / var123 * (5 - 2)" -D var123=10

The tokens, ast, ir and compile commands print a single pipeline stage.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "Produce version string",
				Local:   true,
			},
			&cli.StringFlag{
				Name:    "input-line",
				Aliases: []string{"i"},
				Usage:   "Entering a mathematical expression in a line, e.g. (1 + 2) * 3",
				Local:   true,
			},
			&cli.StringFlag{
				Name:      "json-debug-file",
				Aliases:   []string{"o"},
				Usage:     "Enter the name of the file to output, e.g. filename.json",
				Category:  categoryDebug,
				TakesFile: true,
				Local:     true,
			},
			varFlag(true),
			noOptimizeFlag(true),
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Print only the result, without the execution trace",
				Local:   true,
			},
			logLevelFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			tokensCmd(),
			astCmd(),
			irCmd(),
			compileCmd(),
			recipeCmd(),
		},
		Action: runAction,
	}
}

// runAction compiles and evaluates one expression, streaming the execution
// trace and printing `Result: <value>`.
func runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("version") {
		printVersion(cmd.Writer)
		return nil
	}

	prompt := executor.NewPromptResolver(executor.WithIO(cmd.Reader, cmd.Writer))

	source, err := readSource(ctx, cmd, prompt)
	if err != nil {
		return err
	}

	values, err := executor.ParseValues(cmd.StringSlice("var"))
	if err != nil {
		return compiler.WrapError(err)
	}

	res, err := compiler.Compile(ctx, source, compiler.WithOptimize(!cmd.Bool("no-optimize")))
	if err != nil {
		return err
	}

	var opts []executor.Option
	if !cmd.Bool("quiet") {
		opts = append(opts, executor.WithTraceWriter(cmd.Writer))
	}
	out, err := res.Run(ctx, executor.Chain{values, prompt}, opts...)
	if err != nil {
		return err
	}

	if path := cmd.String("json-debug-file"); path != "" {
		if err := compiler.WriteDebugFile(path, res.DebugDocument(out.Value)); err != nil {
			return err
		}
		slog.Info("debug file written", "path", path)
	}

	_, err = fmt.Fprintf(cmd.Writer, "Result: %s\n", executor.FormatValue(out.Value))
	return err
}

// readSource returns --input-line when given, otherwise asks for it.
func readSource(ctx context.Context, cmd *cli.Command, prompt *executor.PromptResolver) (string, error) {
	if cmd.IsSet("input-line") {
		return cmd.String("input-line"), nil
	}
	line, err := prompt.Ask(ctx, inputPrompt)
	if err != nil {
		return "", compiler.WrapError(fmt.Errorf("reading source line: %w", err))
	}
	return line, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%sVersion %s\n\nSource code of the program: %s\n", banner, version, homepage)
}
