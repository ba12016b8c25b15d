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

// Package serializer provides utilities for serializing data to various formats.
//
// The package supports four output formats:
//   - JSON: Machine-readable structured data with proper indentation
//   - YAML: Human-readable configuration format
//   - TOML: Recipe files
//   - Table: Human-readable tabular output with flattened keys
//
// Usage:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer writer.Close() // commits the file
//	if err := writer.Serialize(ctx, data); err != nil {
//		return err
//	}
//
// File output goes through a pending temporary file that Close renames over
// the target, so readers never see a partially written document.
//
// For HTTP responses:
//
//	serializer.Respond(w, r, http.StatusOK, data)
//
// Respond negotiates JSON or YAML from the Accept header; DecodeRequest does
// the same for request bodies from Content-Type.
package serializer
