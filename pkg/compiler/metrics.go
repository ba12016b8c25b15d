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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	compileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "msc_compile_duration_seconds",
			Help:    "Duration of scanning, parsing, lowering and optimising one expression",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
	)

	compileErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msc_compile_errors_total",
			Help: "Total number of failed compilations by pipeline stage",
		},
		[]string{"stage"},
	)

	optimizerRemovedInstructions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "msc_optimizer_removed_instructions_total",
			Help: "Total number of instructions removed by the optimiser",
		},
	)
)
