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

// Package ir lowers syntax trees into static single assignment form and
// optimises them.
//
// A Program is a set of numbered slots. Each slot holds a constant, a named
// variable or an instruction reading two earlier slots:
//
//	%0 = -1.000000
//	%1 = x
//	%2 = 2.000000
//	%3 = %1 * %2
//
// Slot %0 always starts as -1 so negation can be lowered to a multiply.
// Constants are interned by value and variables by name, so `x * x` reads
// one slot twice.
//
// Optimize runs constant folding, algebraic simplification, copy propagation
// and dead code elimination until the program stops changing:
//
//	prog, err := ir.Build(tree)
//	if err != nil {
//		return err
//	}
//	stats := ir.Optimize(prog)
//
// Programs marshal to a JSON object keyed by slot (`{"%1":"x","%3":"%1 * %2"}`)
// and to the same ordered mapping in YAML.
package ir
