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
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/executor"
	"github.com/mathstatic/msc/pkg/serializer"
)

const (
	envLogLevel   = "MSC_LOG_LEVEL"
	envRecipeFile = "MSC_RECIPE_FILE"

	defaultLogLevel = "warn"
)

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Value:   defaultLogLevel,
		Sources: cli.EnvVars(envLogLevel),
	}
}

func varFlag(local bool) cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "var",
		Aliases: []string{"D"},
		Usage:   "Bind a variable, e.g. --var x=2. Unbound variables are asked for",
		Local:   local,
	}
}

func noOptimizeFlag(local bool) cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-optimize",
		Usage: "Skip the optimizer and run the program as built",
		Local: local,
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input-line",
		Aliases: []string{"i"},
		Usage:   "Expression to compile; asked for when omitted",
	}
}

var (
	// documentFormats can render every pipeline document.
	documentFormats = []serializer.Format{serializer.FormatJSON, serializer.FormatYAML, serializer.FormatTable}

	// recipeFormats adds TOML, the format recipe files are written in.
	recipeFormats = []serializer.Format{serializer.FormatJSON, serializer.FormatYAML, serializer.FormatTOML, serializer.FormatTable}
)

func formatFlag(allowed []serializer.Format) cli.Flag {
	names := make([]string, 0, len(allowed))
	for _, f := range allowed {
		names = append(names, string(f))
	}
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(names, ", ")),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "output",
		Aliases:   []string{"o"},
		Usage:     "output file path (default: stdout)",
		TakesFile: true,
	}
}

func recipeFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "recipe",
		Usage:     "recipe file or URL (json, yaml or toml); the built-in recipe when omitted",
		Sources:   cli.EnvVars(envRecipeFile),
		TakesFile: true,
	}
}

// parseOutputFormat returns --format when it is one of allowed, which
// defaults to documentFormats.
func parseOutputFormat(cmd *cli.Command, allowed ...serializer.Format) (serializer.Format, error) {
	if len(allowed) == 0 {
		allowed = documentFormats
	}
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() || !slices.Contains(allowed, format) {
		return "", mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("Unknown output format %q", format),
			map[string]any{"allowed": allowed})
	}
	return format, nil
}

// writeOutput serializes data to --output, or to the command writer. A failed
// write leaves an existing output file untouched.
func writeOutput(ctx context.Context, cmd *cli.Command, data any, allowed ...serializer.Format) error {
	format, err := parseOutputFormat(cmd, allowed...)
	if err != nil {
		return err
	}

	var w *serializer.Writer
	if path := cmd.String("output"); path != "" {
		w = serializer.NewFileWriterOrStdout(format, path)
	} else {
		w = serializer.NewWriter(format, cmd.Root().Writer)
	}

	if err := w.Serialize(ctx, data); err != nil {
		_ = w.Abort()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return w.Close()
}

// stderrPrompt asks on the error stream so stdout carries only the document.
func stderrPrompt(cmd *cli.Command) *executor.PromptResolver {
	root := cmd.Root()
	return executor.NewPromptResolver(executor.WithIO(root.Reader, root.ErrWriter))
}
