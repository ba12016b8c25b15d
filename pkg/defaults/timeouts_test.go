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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Handler timeouts
		{"CompileHandlerTimeout", CompileHandlerTimeout, 5 * time.Second, 60 * time.Second},
		{"CompileTimeout", CompileTimeout, 1 * time.Second, 30 * time.Second},
		{"RecipeHandlerTimeout", RecipeHandlerTimeout, 5 * time.Second, 60 * time.Second},
		{"GenerateTimeout", GenerateTimeout, 10 * time.Second, 120 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerReadHeaderTimeout", ServerReadHeaderTimeout, 1 * time.Second, 10 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
		{"HTTPResponseHeaderTimeout", HTTPResponseHeaderTimeout, 1 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestCompileTimeoutLessThanHandler(t *testing.T) {
	if CompileTimeout >= CompileHandlerTimeout {
		t.Errorf("CompileTimeout (%v) should be less than CompileHandlerTimeout (%v)",
			CompileTimeout, CompileHandlerTimeout)
	}
}

func TestServerTimeoutOrdering(t *testing.T) {
	if ServerReadHeaderTimeout >= ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should be less than ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
	if CompileHandlerTimeout >= ServerWriteTimeout {
		t.Errorf("CompileHandlerTimeout (%v) should be less than ServerWriteTimeout (%v)",
			CompileHandlerTimeout, ServerWriteTimeout)
	}
}

func TestRequestLimits(t *testing.T) {
	if MaxExpressionLength <= 0 || MaxExpressionLength > MaxRequestBodyBytes {
		t.Errorf("MaxExpressionLength (%d) must be positive and fit in MaxRequestBodyBytes (%d)",
			MaxExpressionLength, MaxRequestBodyBytes)
	}
	if MaxVariables <= 0 {
		t.Errorf("MaxVariables = %d", MaxVariables)
	}
}
