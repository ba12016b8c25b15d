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

package recipe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/serializer"
)

// LoadFile reads a recipe from a .toml, .yaml, .yml or .json file, or an
// http(s) URL with one of those extensions. Fields the file leaves out are
// taken from Default. The result is validated.
func LoadFile(ctx context.Context, path string) (*Recipe, error) {
	r, err := serializer.FromFile[Recipe](ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mscerrors.WrapWithContext(mscerrors.ErrCodeNotFound,
				"Recipe file not found", err, map[string]any{"path": path})
		}
		return nil, mscerrors.WrapWithContext(mscerrors.ErrCodeInvalidRecipe,
			fmt.Sprintf("Unable to read recipe %s", path), err, map[string]any{"path": path})
	}

	r.applyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("recipe loaded",
		"path", path,
		"name", r.Name,
		"requires", len(r.Requires),
		"testRequires", len(r.TestRequires),
	)
	return r, nil
}

// Load returns the recipe at path, or Default when path is empty.
func Load(ctx context.Context, path string) (*Recipe, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(ctx, path)
}
