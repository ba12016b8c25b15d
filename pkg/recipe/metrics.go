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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msc_recipe_resolutions_total",
			Help: "Total number of recipe resolutions by target OS and test scope",
		},
		[]string{"os", "test"},
	)

	generateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "msc_recipe_generate_duration_seconds",
			Help:    "Duration of generator runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)

	generatedFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msc_recipe_generated_files_total",
			Help: "Total number of files written by each generator",
		},
		[]string{"generator"},
	)
)
