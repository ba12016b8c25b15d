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

// Package server is the reusable HTTP server behind mscd.
//
// # Architecture
//
// Every API handler registered with WithHandler runs inside one middleware
// chain, outermost first:
//
//   - metrics: msc_http_requests_total, msc_http_request_duration_seconds,
//     msc_http_requests_in_flight
//   - API version negotiation from Accept (application/vnd.mathstatic.msc.v1+json)
//   - request id: X-Request-Id is kept when it is a UUID, generated otherwise
//   - panic recovery
//   - rate limiting with a token bucket (golang.org/x/time/rate)
//   - request logging at debug level
//
// System endpoints bypass the chain:
//
//	GET /         service name, version, readiness and routes
//	GET /health   liveness
//	GET /ready    readiness, 503 while starting or shutting down
//	GET /metrics  Prometheus exposition
//
// # Usage
//
//	s := server.New(
//	    server.WithName("mscd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/compile": compiler.HandleCompile,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run stops on context cancellation, SIGINT or SIGTERM and drains in-flight
// requests for up to ShutdownTimeout.
//
// # Errors
//
// Failures are written as ErrorResponse:
//
//	{
//	  "code": "PARSE_ERROR",
//	  "message": "Expect expression",
//	  "details": {"position": 4, "error": "..."},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr derives the HTTP status from the error code with
// HTTPStatusFromCode.
//
// # Configuration
//
//   - PORT: listen port (default 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown budget (default 30)
package server
