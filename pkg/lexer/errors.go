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

package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	highlightStart = "\033[1;31m"
	highlightEnd   = "\033[0m"
)

// UnknownLiteralError reports a character the scanner does not recognise.
type UnknownLiteralError struct {
	Source string
	Pos    int
}

func (e *UnknownLiteralError) Error() string {
	return fmt.Sprintf("unknown literal %q at position %d", e.literal(), e.Pos)
}

// literal is the whole character at Pos, which may span several bytes.
func (e *UnknownLiteralError) literal() string {
	_, width := utf8.DecodeRuneInString(e.Source[e.Pos:])
	return e.Source[e.Pos : e.Pos+width]
}

// Highlight renders the source line with the offending character marked and a
// caret pointing at it. With color set the marks use ANSI bold red.
func (e *UnknownLiteralError) Highlight(color bool) string {
	start, end := "", ""
	if color {
		start, end = highlightStart, highlightEnd
	}

	var b strings.Builder
	b.WriteString(e.Source[:e.Pos])
	b.WriteString(start)
	lit := e.literal()
	b.WriteString(lit)
	b.WriteString(end)
	b.WriteString(e.Source[e.Pos+len(lit):])
	b.WriteByte('\n')
	b.WriteString(start)
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(e.Source[:e.Pos])))
	b.WriteString("^\n")
	fmt.Fprintf(&b, "Unknown literal at position %d", e.Pos)
	b.WriteString(end)
	b.WriteByte('\n')
	return b.String()
}
