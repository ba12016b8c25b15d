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
	"strconv"

	"github.com/mathstatic/msc/pkg/executor"
	"github.com/mathstatic/msc/pkg/header"
	"github.com/mathstatic/msc/pkg/ir"
	"github.com/mathstatic/msc/pkg/lexer"
	"github.com/mathstatic/msc/pkg/parser"
)

// Report is the full record of one compilation and run, as returned by
// `msc compile` and POST /v1/compile.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Expression  string            `json:"expression" yaml:"expression"`
	Tokens      []lexer.Token     `json:"tokens" yaml:"tokens"`
	Tree        parser.Expression `json:"tree" yaml:"tree"`
	IR          *ir.Program       `json:"ir" yaml:"ir"`
	OptimizedIR *ir.Program       `json:"optimizedIr,omitempty" yaml:"optimizedIr,omitempty"`
	Result      string            `json:"result" yaml:"result"`
	Trace       []string          `json:"trace" yaml:"trace"`
	Stats       *ir.OptimizeStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// NewReport assembles a report from a compilation and its execution.
// Result is formatted with six significant digits so that infinities and NaN
// stay representable in every output format.
func NewReport(res *Result, out *executor.Result, version string) *Report {
	r := &Report{
		Expression: res.Source,
		Tokens:     res.Tokens,
		Tree:       res.Tree,
		IR:         res.Unoptimized,
		Result:     executor.FormatValue(out.Value),
		Trace:      out.Trace,
	}
	r.Init(header.KindCompileReport, version)
	if res.Optimized {
		r.OptimizedIR = res.Program
		stats := res.Stats
		r.Stats = &stats
	}
	return r
}

// TableRows lists the report for table output.
func (r *Report) TableRows() [][2]string {
	rows := [][2]string{
		{"kind", r.Kind.String()},
		{"apiVersion", r.APIVersion},
		{"expression", r.Expression},
		{"tokens", strconv.Itoa(len(r.Tokens))},
	}
	if r.Tree != nil {
		rows = append(rows, [2]string{"tree", r.Tree.String()})
	}
	rows = appendProgram(rows, "ir", r.IR)
	rows = appendProgram(rows, "optimizedIr", r.OptimizedIR)
	for i, line := range r.Trace {
		rows = append(rows, [2]string{fmt.Sprintf("trace[%d]", i), line})
	}
	if r.Stats != nil {
		rows = append(rows,
			[2]string{"stats.rounds", strconv.Itoa(r.Stats.Rounds)},
			[2]string{"stats.removedInstructions", strconv.Itoa(r.Stats.RemovedInstructions())},
		)
	}
	return append(rows, [2]string{"result", r.Result})
}

func appendProgram(rows [][2]string, prefix string, p *ir.Program) [][2]string {
	if p == nil {
		return rows
	}
	for _, row := range p.TableRows() {
		rows = append(rows, [2]string{prefix + "." + row[0], row[1]})
	}
	return append(rows, [2]string{prefix + ".out", p.Out.String()})
}
