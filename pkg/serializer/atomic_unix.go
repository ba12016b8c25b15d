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

//go:build !windows

package serializer

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// pendingFile buffers writes in a temporary file next to the target and
// renames it into place on Close.
type pendingFile struct {
	*renameio.PendingFile
	path string
}

func createAtomic(path string) (atomicFile, error) {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return nil, fmt.Errorf("create pending file %s: %w", path, err)
	}
	return &pendingFile{PendingFile: f, path: path}, nil
}

func (f *pendingFile) Close() error {
	defer func() {
		_ = f.Cleanup()
	}()
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// Abort removes the temporary file and leaves the target untouched.
func (f *pendingFile) Abort() error {
	if err := f.Cleanup(); err != nil {
		return fmt.Errorf("discard pending file for %s: %w", f.path, err)
	}
	return nil
}

// WriteFileAtomic writes data to path so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
