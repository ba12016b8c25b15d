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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/mathstatic/msc/pkg/checksum"
	"github.com/mathstatic/msc/pkg/recipe"
	"github.com/mathstatic/msc/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		allowed    []serializer.Format
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "yaml", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "json", format: "json", wantFormat: serializer.FormatJSON},
		{name: "table", format: "table", wantFormat: serializer.FormatTable},
		{name: "toml rejected for documents", format: "toml", wantErr: true},
		{name: "toml allowed for recipes", format: "toml", allowed: recipeFormats, wantFormat: serializer.FormatTOML},
		{name: "invalid format xml", format: "xml", allowed: recipeFormats, wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c, tt.allowed...)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestTokensCommand(t *testing.T) {
	got := runCLI(t, context.Background(), "", "tokens", "-i", "(a + 1)", "-t", "json")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	var tokens []map[string]any
	if err := json.Unmarshal([]byte(got.stdout), &tokens); err != nil {
		t.Fatalf("output is not a JSON list: %v\n%s", err, got.stdout)
	}
	if len(tokens) < 5 {
		t.Errorf("got %d tokens, want at least 5", len(tokens))
	}
	if tokens[1]["lexeme"] != "a" {
		t.Errorf("second token = %v, want lexeme a", tokens[1])
	}
}

func TestTokensCommandPromptsOnStderr(t *testing.T) {
	got := runCLI(t, context.Background(), "1 + 2\n", "tokens", "-t", "json")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	if !strings.Contains(got.stderr, inputPrompt) {
		t.Errorf("prompt not on stderr: %q", got.stderr)
	}
	if strings.Contains(got.stdout, inputPrompt) {
		t.Errorf("prompt leaked into stdout: %q", got.stdout)
	}
}

func TestIRCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ir.yaml")
	got := runCLI(t, context.Background(), "", "ir", "-i", "x * 1 + 0", "-o", path)
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	if got.stdout != "" {
		t.Errorf("stdout = %q, want empty", got.stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("output file is empty")
	}
}

func TestCompileCommand(t *testing.T) {
	got := runCLI(t, context.Background(), "",
		"compile", "-i", "a * (b + 0)", "-D", "a=2", "-D", "b=3", "-t", "json")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	var report map[string]any
	if err := json.Unmarshal([]byte(got.stdout), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got.stdout)
	}
	if report["kind"] != "CompileReport" {
		t.Errorf("kind = %v", report["kind"])
	}
	if report["result"] != "6" {
		t.Errorf("result = %v, want 6", report["result"])
	}
	if _, ok := report["optimizedIr"]; !ok {
		t.Error("optimizedIr missing")
	}
}

func TestStageCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown format", args: []string{"tokens", "-i", "1", "-t", "xml"}, wantErr: `Unknown output format "xml"`},
		{name: "unbound variable", args: []string{"compile", "-i", "q"}, wantErr: `reading value of "q"`},
		{name: "unknown literal", args: []string{"ast", "-i", "1 # 2"}, wantErr: "Unknown literal at position 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runCLI(t, context.Background(), "", tt.args...)
			if got.code != exitError {
				t.Errorf("exit code = %d, want %d", got.code, exitError)
			}
			if !strings.Contains(got.stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", got.stderr, tt.wantErr)
			}
		})
	}
}

func TestRecipeShow(t *testing.T) {
	got := runCLI(t, context.Background(), "", "recipe", "show", "-t", "json")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(got.stdout), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["name"] != "MathStaticCompiler" {
		t.Errorf("name = %v", rec["name"])
	}
}

func TestRecipeResolve(t *testing.T) {
	got := runCLI(t, context.Background(), "",
		"recipe", "resolve", "--os", "macos", "--arch", "armv8", "--test", "-t", "json")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	var res struct {
		Kind     string         `json:"kind"`
		Profile  map[string]any `json:"profile"`
		Packages []any          `json:"packages"`
	}
	if err := json.Unmarshal([]byte(got.stdout), &res); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if res.Kind != "RecipeResolution" {
		t.Errorf("kind = %q", res.Kind)
	}
	if res.Profile["os"] != "Macos" {
		t.Errorf("os = %v, want Macos", res.Profile["os"])
	}
	if len(res.Packages) != 3 {
		t.Errorf("got %d packages, want 3", len(res.Packages))
	}
}

func TestRecipeResolveInvalidProfile(t *testing.T) {
	got := runCLI(t, context.Background(), "", "recipe", "resolve", "--os", "Solaris")
	if got.code != exitError {
		t.Errorf("exit code = %d, want %d", got.code, exitError)
	}
	if !strings.Contains(got.stderr, `Invalid value "Solaris" for setting OS`) {
		t.Errorf("stderr = %q", got.stderr)
	}
}

func TestRecipeGenerate(t *testing.T) {
	dir := t.TempDir()
	got := runCLI(t, context.Background(), "", "recipe", "generate", "--output-dir", dir)
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	if !strings.HasPrefix(got.stdout, "Generated ") {
		t.Errorf("stdout = %q", got.stdout)
	}

	folder := filepath.Join(dir, "conan")
	for _, f := range []string{"conan_toolchain.cmake", "conanrun.sh", checksum.FileName} {
		if _, err := os.Stat(filepath.Join(folder, f)); err != nil {
			t.Errorf("%s not generated: %v", f, err)
		}
	}
	bad, err := checksum.Verify(folder)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(bad) != 0 {
		t.Errorf("checksum mismatches: %v", bad)
	}
}

func TestRecipeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	content := "name: Custom\nrequires:\n  - zlib/1.3.1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got := runCLI(t, context.Background(), "", "recipe", "resolve", "--recipe", path, "-t", "json")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	if !strings.Contains(got.stdout, `"recipe": "Custom"`) && !strings.Contains(got.stdout, `"recipe":"Custom"`) {
		t.Errorf("resolution does not name the custom recipe:\n%s", got.stdout)
	}
	if !strings.Contains(got.stdout, "zlib") {
		t.Errorf("zlib not resolved:\n%s", got.stdout)
	}
}

func TestCompileCommandReadsSourceAndValuesFromStdin(t *testing.T) {
	got := runCLI(t, context.Background(), "x - 1\n5\n", "compile", "-t", "json")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	var report map[string]any
	if err := json.Unmarshal([]byte(got.stdout), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got.stdout)
	}
	if report["result"] != "4" {
		t.Errorf("result = %v, want 4", report["result"])
	}
	if !strings.Contains(got.stderr, `Give a value to the variable "x" =`) {
		t.Errorf("variable prompt not on stderr: %q", got.stderr)
	}
}

func TestStageCommandFormats(t *testing.T) {
	commands := map[string][]string{
		"tokens":  {"tokens", "-i", "a * (b + 1)"},
		"ast":     {"ast", "-i", "a * (b + 1)"},
		"ir":      {"ir", "-i", "a * (b + 1)"},
		"compile": {"compile", "-i", "a * (b + 1)", "-D", "a=2", "-D", "b=3"},
	}

	for name, args := range commands {
		for _, format := range documentFormats {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				got := runCLI(t, context.Background(), "", append(args, "-t", string(format))...)
				if got.code != exitOK {
					t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
				}
				switch format {
				case serializer.FormatJSON:
					if !json.Valid([]byte(got.stdout)) {
						t.Errorf("invalid JSON:\n%s", got.stdout)
					}
				case serializer.FormatYAML:
					var doc any
					if err := yaml.Unmarshal([]byte(got.stdout), &doc); err != nil || doc == nil {
						t.Errorf("invalid YAML (%v):\n%s", err, got.stdout)
					}
				case serializer.FormatTable:
					if !strings.HasPrefix(got.stdout, "FIELD") {
						t.Errorf("not a table:\n%s", got.stdout)
					}
				}
			})
		}

		t.Run(name+"/toml rejected", func(t *testing.T) {
			got := runCLI(t, context.Background(), "", append(args, "-t", "toml")...)
			if got.code != exitError {
				t.Errorf("exit code = %d, want %d", got.code, exitError)
			}
			if !strings.Contains(got.stderr, `Unknown output format "toml"`) {
				t.Errorf("stderr = %q", got.stderr)
			}
		})
	}
}

func TestRecipeShowTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.toml")
	got := runCLI(t, context.Background(), "", "recipe", "show", "-t", "toml", "-o", path)
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}

	rec, err := recipe.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("written recipe does not load: %v", err)
	}
	want := recipe.Default()
	if rec.Name != want.Name || len(rec.Requires) != len(want.Requires) || len(rec.TestRequires) != len(want.TestRequires) {
		t.Errorf("round trip = %+v, want %+v", rec, want)
	}
}

func TestWriteOutputKeepsExistingFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	const previous = "previous = true\n"
	if err := os.WriteFile(path, []byte(previous), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := &cli.Command{
		Flags: []cli.Flag{formatFlag(documentFormats), outputFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := writeOutput(ctx, c, make(chan int)); err == nil {
				t.Error("expected an encoding error")
			}
			return nil
		},
	}
	if err := cmd.Run(context.Background(), []string{"test", "-t", "json", "-o", path}); err != nil {
		t.Fatalf("failed to run command: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != previous {
		t.Errorf("output file = %q, want %q", data, previous)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}
