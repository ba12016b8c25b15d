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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/mathstatic/msc/pkg/defaults"
	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/executor"
	"github.com/mathstatic/msc/pkg/serializer"
	"github.com/mathstatic/msc/pkg/server"
)

var variableName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// CompileRequest is the body of POST /v1/compile. The same fields are read
// from the query string on GET: expression, var (repeatable name=value) and
// optimize.
type CompileRequest struct {
	Expression string             `json:"expression" yaml:"expression"`
	Variables  map[string]float64 `json:"variables,omitempty" yaml:"variables,omitempty"`
	Optimize   *bool              `json:"optimize,omitempty" yaml:"optimize,omitempty"`
}

// ParseCompileRequest reads a CompileRequest from the query string.
func ParseCompileRequest(r *http.Request) (*CompileRequest, error) {
	q := r.URL.Query()
	req := &CompileRequest{Expression: q.Get("expression")}

	if bindings := q["var"]; len(bindings) > 0 {
		values, err := executor.ParseValues(bindings)
		if err != nil {
			return nil, err
		}
		req.Variables = values
	}

	if raw := q.Get("optimize"); raw != "" {
		optimize, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid optimize value %q: %w", raw, err)
		}
		req.Optimize = &optimize
	}
	return req, nil
}

// Validate checks request limits and variable names.
func (c *CompileRequest) Validate() error {
	if strings.TrimSpace(c.Expression) == "" {
		return errors.New("expression is required")
	}
	if len(c.Expression) > defaults.MaxExpressionLength {
		return fmt.Errorf("expression exceeds %d bytes", defaults.MaxExpressionLength)
	}
	if len(c.Variables) > defaults.MaxVariables {
		return fmt.Errorf("too many variables: %d (max %d)", len(c.Variables), defaults.MaxVariables)
	}
	for name := range c.Variables {
		if !variableName.MatchString(name) {
			return fmt.Errorf("invalid variable name %q", name)
		}
	}
	return nil
}

func (c *CompileRequest) optimize() bool {
	return c.Optimize == nil || *c.Optimize
}

// Handler serves /v1/compile.
type Handler struct {
	// Version is recorded in report metadata.
	Version string
}

// HandleCompile compiles and runs an expression and responds with a Report.
// Variables the request does not bind are an error; the server never prompts.
func (h *Handler) HandleCompile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.CompileHandlerTimeout)
	defer cancel()

	var req *CompileRequest
	var err error

	switch r.Method {
	case http.MethodGet:
		req, err = ParseCompileRequest(r)
	case http.MethodPost:
		req = &CompileRequest{}
		err = serializer.DecodeRequest(r, req, defaults.MaxRequestBodyBytes)
		defer r.Body.Close()
	default:
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, mscerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET", "POST"},
			})
		return
	}

	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, serializer.ErrUnsupportedMediaType):
			status = http.StatusUnsupportedMediaType
		case errors.Is(err, serializer.ErrRequestTooLarge):
			status = http.StatusRequestEntityTooLarge
		}
		server.WriteError(w, r, status, mscerrors.ErrCodeInvalidRequest,
			"Invalid compile request", false, map[string]any{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, mscerrors.ErrCodeInvalidRequest,
			"Invalid compile request", false, map[string]any{"error": err.Error()})
		return
	}

	compileCtx, compileCancel := context.WithTimeout(ctx, defaults.CompileTimeout)
	defer compileCancel()

	res, err := Compile(compileCtx, req.Expression, WithOptimize(req.optimize()))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Compilation failed", nil)
		return
	}

	out, err := res.Run(compileCtx, executor.Values(req.Variables))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Execution failed", nil)
		return
	}

	slog.Debug("compile request served",
		"requestID", server.RequestID(r.Context()),
		"instructions", len(res.Program.Instructions),
		"result", executor.FormatValue(out.Value))

	serializer.Respond(w, r, http.StatusOK, NewReport(res, out, h.Version))
}
