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

//go:build windows

package serializer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// tempFile stages writes next to the target and renames it into place on
// Close. os.Rename maps to MoveFileEx with MOVEFILE_REPLACE_EXISTING, which
// replaces the target in one step on NTFS but is not guaranteed atomic on
// every filesystem.
type tempFile struct {
	*os.File
	path string
	done bool
}

func createAtomic(path string) (atomicFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return nil, fmt.Errorf("create temporary file for %s: %w", path, err)
	}
	return &tempFile{File: f, path: path}, nil
}

func (f *tempFile) Close() error {
	if f.done {
		return nil
	}
	f.done = true
	if err := f.File.Close(); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("close %s: %w", f.Name(), err)
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("chmod %s: %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), f.path); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// Abort removes the temporary file and leaves the target untouched.
func (f *tempFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	closeErr := f.File.Close()
	if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("discard temporary file for %s: %w", f.path, err)
	}
	return closeErr
}

// WriteFileAtomic writes data to a temporary file and renames it over path.
// See tempFile for the guarantees the rename gives on Windows.
func WriteFileAtomic(path string, data []byte) error {
	f, err := createAtomic(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Abort()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
