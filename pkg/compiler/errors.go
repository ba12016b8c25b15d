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

	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/executor"
	"github.com/mathstatic/msc/pkg/ir"
	"github.com/mathstatic/msc/pkg/lexer"
	"github.com/mathstatic/msc/pkg/parser"
)

// WrapError maps pipeline errors to structured errors. Errors that are
// already structured, and errors it does not recognise, are returned as is.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	var se *mscerrors.StructuredError
	if errors.As(err, &se) {
		return err
	}

	var (
		literal *lexer.UnknownLiteralError
		parse   *parser.ParseError
		flow    *ir.ControlFlowError
		unbound *executor.UnboundVariableError
	)
	switch {
	case errors.As(err, &literal):
		return mscerrors.WrapWithContext(mscerrors.ErrCodeUnknownLiteral,
			fmt.Sprintf("Unknown literal at position %d", literal.Pos), err,
			map[string]any{"position": literal.Pos})
	case errors.As(err, &parse):
		return mscerrors.WrapWithContext(mscerrors.ErrCodeParse, parse.Message, err,
			map[string]any{"position": parse.Pos, "lexeme": parse.Lexeme})
	case errors.As(err, &flow):
		return mscerrors.Wrap(mscerrors.ErrCodeControlFlow, "Invalid control flow", err)
	case errors.As(err, &unbound):
		return mscerrors.WrapWithContext(mscerrors.ErrCodeUnboundVariable,
			fmt.Sprintf("Variable %q has no value", unbound.Name), err,
			map[string]any{"variable": unbound.Name})
	case errors.Is(err, executor.ErrAborted), errors.Is(err, context.Canceled):
		return mscerrors.Wrap(mscerrors.ErrCodeCanceled, "Compilation canceled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return mscerrors.Wrap(mscerrors.ErrCodeTimeout, "Compilation timed out", err)
	case errors.Is(err, executor.ErrInvalidAssignment):
		return mscerrors.Wrap(mscerrors.ErrCodeInvalidRequest, "Invalid variable binding", err)
	default:
		return err
	}
}
