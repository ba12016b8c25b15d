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

import "time"

// Handler timeouts for HTTP request processing.
const (
	// CompileHandlerTimeout is the timeout for a /v1/compile request.
	CompileHandlerTimeout = 10 * time.Second

	// CompileTimeout is the internal deadline for one pipeline run.
	// Should be less than CompileHandlerTimeout to allow error handling.
	CompileTimeout = 8 * time.Second

	// RecipeHandlerTimeout is the timeout for a /v1/recipe request.
	RecipeHandlerTimeout = 15 * time.Second

	// RecipeCacheTTL is the Cache-Control max-age for recipe responses.
	RecipeCacheTTL = 10 * time.Minute
)

// Generator timeouts for writing build integration files.
const (
	// GenerateTimeout bounds a full `recipe generate` run.
	GenerateTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading the entire request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for fetching remote recipe files.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Request limits.
const (
	// MaxExpressionLength is the longest source line the API accepts, in bytes.
	MaxExpressionLength = 4096

	// MaxRequestBodyBytes caps compile request bodies.
	MaxRequestBodyBytes = 1 << 20

	// MaxVariables caps the number of bindings in one compile request.
	MaxVariables = 256
)
