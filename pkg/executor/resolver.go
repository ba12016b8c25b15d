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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrAborted signals the user interrupted a prompt.
	ErrAborted = errors.New("executor: input aborted")
	// ErrInvalidAssignment is returned for a binding that is not name=value.
	ErrInvalidAssignment = errors.New("executor: invalid assignment")
)

// UnboundVariableError reports a variable no resolver could supply.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("variable %q has no value", e.Name)
}

// Resolver supplies values for variables at execution time.
type Resolver interface {
	Resolve(ctx context.Context, name string) (float64, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, name string) (float64, error)

func (f ResolverFunc) Resolve(ctx context.Context, name string) (float64, error) {
	return f(ctx, name)
}

// Values resolves variables from a fixed map.
type Values map[string]float64

func (v Values) Resolve(ctx context.Context, name string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	value, ok := v[name]
	if !ok {
		return 0, &UnboundVariableError{Name: name}
	}
	return value, nil
}

// ParseAssignment parses a `name=value` binding.
func ParseAssignment(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidAssignment, s)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q: %w", ErrInvalidAssignment, s, err)
	}
	return name, value, nil
}

// ParseValues builds Values from `name=value` bindings. Later bindings win.
func ParseValues(assignments []string) (Values, error) {
	values := make(Values, len(assignments))
	for _, a := range assignments {
		name, value, err := ParseAssignment(a)
		if err != nil {
			return nil, err
		}
		values[name] = value
	}
	return values, nil
}

// Chain tries each resolver in order, moving on only when a resolver reports
// the variable as unbound.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, name string) (float64, error) {
	for _, r := range c {
		if r == nil {
			continue
		}
		value, err := r.Resolve(ctx, name)
		if err == nil {
			return value, nil
		}
		var unbound *UnboundVariableError
		if !errors.As(err, &unbound) {
			return 0, err
		}
	}
	return 0, &UnboundVariableError{Name: name}
}
