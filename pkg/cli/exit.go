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
	"errors"
	"fmt"
	"io"

	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/executor"
	"github.com/mathstatic/msc/pkg/lexer"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitCanceled = 2 // canceled, interrupted or timed out
)

// reportError prints err to w and returns the exit code for it. Unknown
// literals are shown with the offending character marked, in color when w is
// a terminal.
func reportError(w io.Writer, err error) int {
	if isCanceled(err) {
		fmt.Fprintf(w, "Canceled: %v\n", err)
		return exitCanceled
	}

	var literal *lexer.UnknownLiteralError
	if errors.As(err, &literal) {
		fmt.Fprint(w, literal.Highlight(executor.IsTerminal(w)))
		return exitError
	}

	var se *mscerrors.StructuredError
	if errors.As(err, &se) {
		pos, hasPos := se.Context["position"]
		switch {
		case hasPos:
			fmt.Fprintf(w, "Error: %s (at position %v)\n", se.Message, pos)
		case se.Cause != nil && len(se.Context) == 0:
			fmt.Fprintf(w, "Error: %s: %v\n", se.Message, se.Cause)
		default:
			fmt.Fprintf(w, "Error: %s\n", se.Message)
		}
		return exitError
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}

func isCanceled(err error) bool {
	switch mscerrors.CodeOf(err) {
	case mscerrors.ErrCodeCanceled, mscerrors.ErrCodeTimeout:
		return true
	}
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, executor.ErrAborted)
}
