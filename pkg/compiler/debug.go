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
	"fmt"

	"github.com/mathstatic/msc/pkg/ir"
	"github.com/mathstatic/msc/pkg/lexer"
	"github.com/mathstatic/msc/pkg/parser"
	"github.com/mathstatic/msc/pkg/serializer"
)

// DebugDocument is the content of the JSON debug file: the tokens, the
// syntax tree, the final control-flow data and the result printed with six
// decimals.
type DebugDocument struct {
	Tokens []lexer.Token     `json:"tokens"`
	Tree   parser.Expression `json:"syntax_expression_tree"`
	CFD    *ir.Program       `json:"cfd"`
	Result string            `json:"result"`
}

// DebugDocument builds the debug document for a run that produced value.
func (r *Result) DebugDocument(value float64) *DebugDocument {
	return &DebugDocument{
		Tokens: r.Tokens,
		Tree:   r.Tree,
		CFD:    r.Program,
		Result: parser.FormatValue(value),
	}
}

// WriteDebugFile writes doc to path as JSON. The file is replaced
// atomically, so readers never see a partial document.
func WriteDebugFile(path string, doc *DebugDocument) error {
	data, err := serializer.Marshal(serializer.FormatJSON, doc)
	if err != nil {
		return fmt.Errorf("failed to encode debug document: %w", err)
	}
	if err := serializer.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("unable to write debug file %s: %w", path, err)
	}
	return nil
}
