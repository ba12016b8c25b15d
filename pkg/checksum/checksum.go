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

package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mathstatic/msc/pkg/serializer"
)

// FileName is the name of the checksum file written next to generated files.
const FileName = "checksums.txt"

// Sum returns the hex encoded SHA256 of data.
func Sum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Generate writes a checksums.txt into dir containing the SHA256 of every
// file in files, relative to dir and sorted by path. The format is the one
// `sha256sum -c` reads. Returns the path of the checksum file.
func Generate(ctx context.Context, dir string, files []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled: %w", err)
	}

	lines := make([]string, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s for checksum: %w", file, err)
		}

		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			relPath = file
		}
		lines = append(lines, fmt.Sprintf("%s  %s", Sum(data), filepath.ToSlash(relPath)))
	}
	slices.SortFunc(lines, func(a, b string) int {
		return strings.Compare(a[66:], b[66:])
	})

	path := Path(dir)
	if err := serializer.WriteFileAtomic(path, []byte(strings.Join(lines, "\n")+"\n")); err != nil {
		return "", fmt.Errorf("failed to write checksums: %w", err)
	}

	slog.Debug("checksums generated",
		"file_count", len(lines),
		"path", path,
	)
	return path, nil
}

// Verify re-reads the checksum file in dir and returns the relative paths
// whose content no longer matches.
func Verify(dir string) ([]string, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read checksums: %w", err)
	}

	var mismatched []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		want, rel, ok := strings.Cut(line, "  ")
		if !ok {
			return nil, fmt.Errorf("invalid checksum line %q", line)
		}
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil || Sum(content) != want {
			mismatched = append(mismatched, rel)
		}
	}
	return mismatched, nil
}

// Path returns the checksum file path for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}
