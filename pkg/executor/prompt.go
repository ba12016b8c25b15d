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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

// PromptOption configures a PromptResolver.
type PromptOption func(*PromptResolver)

// WithIO sets the streams used for prompting. Interactive mode is enabled only
// when both are terminals.
func WithIO(in io.Reader, out io.Writer) PromptOption {
	return func(r *PromptResolver) {
		if in != nil {
			r.in = in
		}
		if out != nil {
			r.out = out
		}
		r.interactive = IsTerminal(r.in) && IsTerminal(r.out)
	}
}

// WithInteractive forces survey prompts on or off.
func WithInteractive(interactive bool) PromptOption {
	return func(r *PromptResolver) {
		r.interactive = interactive
	}
}

// PromptResolver asks the user for variable values. On a terminal it uses
// survey prompts with validation; otherwise it reads one line per question.
type PromptResolver struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	lines       *bufio.Reader
}

// NewPromptResolver prompts on stdin/stdout unless WithIO says otherwise.
func NewPromptResolver(opts ...PromptOption) *PromptResolver {
	r := &PromptResolver{in: os.Stdin, out: os.Stdout}
	r.interactive = IsTerminal(r.in) && IsTerminal(r.out)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsTerminal reports whether v is a file descriptor attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// VariablePrompt is the question asked for a variable.
func VariablePrompt(name string) string {
	return fmt.Sprintf("Give a value to the variable %q =", name)
}

// Resolve asks for the value of name.
func (r *PromptResolver) Resolve(ctx context.Context, name string) (float64, error) {
	answer, err := r.ask(ctx, VariablePrompt(name), validateNumber)
	if err != nil {
		return 0, fmt.Errorf("reading value of %q: %w", name, err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil {
		return 0, fmt.Errorf("value of %q: %w", name, err)
	}
	return value, nil
}

// Ask prompts with message and returns the trimmed answer.
func (r *PromptResolver) Ask(ctx context.Context, message string) (string, error) {
	answer, err := r.ask(ctx, message, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (r *PromptResolver) ask(ctx context.Context, message string, validate survey.Validator) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.interactive {
		return r.askSurvey(message, validate)
	}
	return r.askLine(message)
}

func (r *PromptResolver) askSurvey(message string, validate survey.Validator) (string, error) {
	in, inOK := r.in.(terminal.FileReader)
	out, outOK := r.out.(terminal.FileWriter)
	if !inOK || !outOK {
		return r.askLine(message)
	}

	opts := []survey.AskOpt{survey.WithStdio(in, out, out)}
	if validate != nil {
		opts = append(opts, survey.WithValidator(validate))
	}
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message}, &answer, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", err
	}
	return answer, nil
}

func (r *PromptResolver) askLine(message string) (string, error) {
	if r.lines == nil {
		r.lines = bufio.NewReader(r.in)
	}
	if _, err := fmt.Fprint(r.out, message+" "); err != nil {
		return "", err
	}
	line, err := r.lines.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func validateNumber(ans any) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected text answer, got %T", ans)
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}
