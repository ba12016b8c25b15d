// Package api wires the compiler and recipe handlers into the HTTP server
// run by mscd.
//
// # Usage
//
//	import (
//	    "log"
//	    "github.com/mathstatic/msc/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET  /v1/compile - compile and run ?expression=...&var=x=1&optimize=false
//   - POST /v1/compile - same, from a JSON or YAML CompileRequest body
//   - GET  /v1/recipe  - resolve the build recipe for ?os=&compiler=&build_type=&arch=&test=
//
// System endpoints:
//   - GET /         - route listing
//   - GET /health   - liveness
//   - GET /ready    - readiness
//   - GET /metrics  - Prometheus metrics
//
// Example:
//
//	curl -s -X POST http://localhost:8080/v1/compile \
//	  -H "Content-Type: application/yaml" \
//	  --data-binary $'expression: (a + 2) * b\nvariables:\n  a: 1\n  b: 4\n'
//
// The server never prompts for input. A variable missing from the request is
// reported as UNBOUND_VARIABLE with status 422.
//
// # Configuration
//
// Environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: debug, info, warn or error (default: info)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown limit (default: 30)
//   - RECIPE_FILE: TOML, YAML or JSON recipe served by /v1/recipe
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mathstatic/msc/pkg/api.version=1.0.0'"
package api
