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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, ctx context.Context, stdin string, args ...string) runResult {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(ctx, append([]string{name}, args...), strings.NewReader(stdin), &out, &errOut)
	return runResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestRunExample(t *testing.T) {
	got := runCLI(t, context.Background(), "",
		"-i", "1 + 11.00 - 1000 / var123 * (5 - 2)", "-D", "var123=10")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	want := strings.Join([]string{
		"%3 = 12",
		"%4 = 1000",
		"%9 = 3",
		"%5 = 10",
		"%6 = %4 / %5 = 100",
		"%10 = %6 * %9 = 300",
		"%11 = %3 - %10 = -288",
		"Result: -288",
	}, "\n") + "\n"
	if got.stdout != want {
		t.Errorf("stdout:\n%s\nwant:\n%s", got.stdout, want)
	}
}

func TestRunPromptsForSourceAndVariables(t *testing.T) {
	got := runCLI(t, context.Background(), "1 + x\n2\n")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	if !strings.HasPrefix(got.stdout, inputPrompt+" ") {
		t.Errorf("stdout does not start with the source prompt: %q", got.stdout)
	}
	if !strings.Contains(got.stdout, `Give a value to the variable "x" = `) {
		t.Errorf("variable prompt missing: %q", got.stdout)
	}
	if !strings.HasSuffix(got.stdout, "Result: 3\n") {
		t.Errorf("unexpected result: %q", got.stdout)
	}
}

func TestRunQuiet(t *testing.T) {
	got := runCLI(t, context.Background(), "", "-q", "-i", "2 * 3")
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}
	if got.stdout != "Result: 6\n" {
		t.Errorf("stdout = %q", got.stdout)
	}
}

func TestRunVersion(t *testing.T) {
	got := runCLI(t, context.Background(), "", "-v")
	if got.code != exitOK {
		t.Fatalf("exit code = %d", got.code)
	}
	for _, want := range []string{banner, "Version " + version, "Source code of the program: " + homepage} {
		if !strings.Contains(got.stdout, want) {
			t.Errorf("version output missing %q:\n%s", want, got.stdout)
		}
	}
}

func TestRunDebugFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.json")
	got := runCLI(t, context.Background(), "", "-q", "-i", "x / 4", "-D", "x=1", "-o", path)
	if got.code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", got.code, got.stderr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("debug file not written: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("debug file is not JSON: %v", err)
	}
	for _, key := range []string{"tokens", "syntax_expression_tree", "cfd", "result"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("debug file missing %q", key)
		}
	}
	if doc["result"] != "0.250000" {
		t.Errorf("result = %v, want 0.250000", doc["result"])
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown literal",
			args:     []string{"-i", "1 ^ 2"},
			wantCode: exitError,
			wantErr:  "1 ^ 2\n--^\nUnknown literal at position 2\n",
		},
		{
			name:     "parse error",
			args:     []string{"-i", "1 + * 2"},
			wantCode: exitError,
			wantErr:  "Error: Expect expression (at position 4)\n",
		},
		{
			name:     "invalid binding",
			args:     []string{"-i", "x", "-D", "x"},
			wantCode: exitError,
			wantErr:  "Error: Invalid variable binding",
		},
		{
			name:     "no value on stdin",
			args:     []string{"-i", "x + 1"},
			wantCode: exitError,
			wantErr:  `reading value of "x"`,
		},
		{
			name:     "no source on stdin",
			wantCode: exitError,
			wantErr:  "reading source line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runCLI(t, context.Background(), tt.stdin, tt.args...)
			if got.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", got.code, tt.wantCode)
			}
			if !strings.Contains(got.stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", got.stderr, tt.wantErr)
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := runCLI(t, ctx, "", "-i", "1 + 2")
	if got.code != exitCanceled {
		t.Errorf("exit code = %d, want %d (stderr: %s)", got.code, exitCanceled, got.stderr)
	}
}
