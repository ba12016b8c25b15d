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

// Package defaults provides centralized configuration constants for msc and mscd.
//
// Timeouts are organized by component:
//
//   - Handler timeouts: for HTTP request processing
//   - Generator timeouts: for writing build integration files
//   - Server timeouts: for HTTP server configuration
//   - HTTP client timeouts: for fetching remote recipe files
//
// Request limits bound what the API accepts in one call.
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.CompileHandlerTimeout)
//	defer cancel()
package defaults
