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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mathstatic/msc/pkg/defaults"
	"github.com/mathstatic/msc/pkg/recipe"
)

func recipeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recipe",
		EnableShellCompletion: true,
		Usage:                 "Inspect the build recipe and generate build integration files.",
		Description: `The recipe lists the settings, generators and package requirements of the
compiler build. Without --recipe the built-in recipe is used.

  msc recipe show
  msc recipe resolve --os Macos --arch armv8 --test -t json
  msc recipe generate --build-type Debug --output-dir build`,
		Commands: []*cli.Command{
			recipeShowCmd(),
			recipeResolveCmd(),
			recipeGenerateCmd(),
		},
	}
}

func recipeShowCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the recipe after defaults are applied.",
		Flags: []cli.Flag{recipeFileFlag(), formatFlag(recipeFormats), outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd, recipeFormats...); err != nil {
				return err
			}
			rec, err := recipe.Load(ctx, cmd.String("recipe"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, rec, recipeFormats...)
		},
	}
}

func profileFlags() []cli.Flag {
	def := recipe.DefaultProfile()
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "os",
			Value:    def.OS,
			Usage:    fmt.Sprintf("target operating system (%s)", strings.Join(recipe.OSValues, ", ")),
			Category: "Profile",
		},
		&cli.StringFlag{
			Name:     "compiler",
			Value:    def.Compiler,
			Usage:    fmt.Sprintf("compiler (%s)", strings.Join(recipe.CompilerValues, ", ")),
			Category: "Profile",
		},
		&cli.StringFlag{
			Name:     "build-type",
			Value:    def.BuildType,
			Usage:    fmt.Sprintf("build type (%s)", strings.Join(recipe.BuildTypeValues, ", ")),
			Category: "Profile",
		},
		&cli.StringFlag{
			Name:     "arch",
			Value:    def.Arch,
			Usage:    fmt.Sprintf("target architecture (%s)", strings.Join(recipe.ArchValues, ", ")),
			Category: "Profile",
		},
		&cli.BoolFlag{
			Name:     "test",
			Usage:    "include test requirements",
			Category: "Profile",
		},
	}
}

func recipeResolveCmd() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve the recipe against a settings profile.",
		Flags: append([]cli.Flag{recipeFileFlag(), formatFlag(documentFormats), outputFlag()}, profileFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			res, err := resolveRecipe(ctx, cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}

func recipeGenerateCmd() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Write CMake and run environment files for a settings profile.",
		Description: `Writes the files of every generator in the recipe into the layout's
generators folder under --output-dir, plus a checksums.txt covering them.`,
		Flags: append([]cli.Flag{
			recipeFileFlag(),
			&cli.StringFlag{
				Name:      "output-dir",
				Value:     ".",
				Usage:     "directory the generators folder is created in",
				TakesFile: true,
			},
		}, profileFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.GenerateTimeout)
			defer cancel()

			res, err := resolveRecipe(ctx, cmd)
			if err != nil {
				return err
			}
			out, err := recipe.Generate(ctx, cmd.String("output-dir"), res)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, out.Summary())
			return err
		},
	}
}

func resolveRecipe(ctx context.Context, cmd *cli.Command) (*recipe.Resolution, error) {
	rec, err := recipe.Load(ctx, cmd.String("recipe"))
	if err != nil {
		return nil, err
	}
	profile, err := recipe.ParseProfile(map[string]string{
		string(recipe.SettingOS):        cmd.String("os"),
		string(recipe.SettingCompiler):  cmd.String("compiler"),
		string(recipe.SettingBuildType): cmd.String("build-type"),
		string(recipe.SettingArch):      cmd.String("arch"),
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("resolving recipe",
		"recipe", rec.Name,
		"os", profile.OS,
		"compiler", profile.Compiler,
		"buildType", profile.BuildType,
		"arch", profile.Arch)
	return rec.Resolve(profile, cmd.Bool("test"), recipe.WithVersion(version))
}
