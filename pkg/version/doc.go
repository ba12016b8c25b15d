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

// Package version parses and compares dotted numeric versions.
//
// Versions have one to three components and remember how many were written,
// so comparisons can treat missing components as wildcards:
//
//	version.MustParseVersion("1.2").Compare(version.MustParseVersion("1.2.7")) // 0
//
// Anything after a '-' or '+' that follows a digit is kept in Extras. Versions
// marshal as text, so they can be used directly in recipe files.
package version
