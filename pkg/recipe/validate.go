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
	"fmt"
	"slices"
	"strings"

	mscerrors "github.com/mathstatic/msc/pkg/errors"
)

// Validate checks that the recipe declares exactly the four settings, only
// known generators, well formed references and a generators folder that stays
// inside the output directory. A package may not be both a runtime and a test
// requirement.
func (r *Recipe) Validate() error {
	if r == nil {
		return mscerrors.New(mscerrors.ErrCodeInvalidRecipe, "Recipe cannot be nil")
	}
	if strings.TrimSpace(r.Name) == "" {
		return mscerrors.New(mscerrors.ErrCodeInvalidRecipe, "Recipe name is required")
	}
	if err := r.Settings.Validate(); err != nil {
		return err
	}

	if len(r.Generators) == 0 {
		return mscerrors.New(mscerrors.ErrCodeInvalidRecipe, "At least one generator is required")
	}
	seen := make(map[Generator]bool, len(r.Generators))
	for _, g := range r.Generators {
		if !g.IsValid() {
			return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("Unknown generator %q", g), map[string]any{
					"generator": string(g),
					"allowed":   AllGenerators(),
				})
		}
		if seen[g] {
			return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("Duplicate generator %q", g), map[string]any{"generator": string(g)})
		}
		seen[g] = true
	}

	runtime := make(map[string]bool, len(r.Requires))
	for _, ref := range r.Requires {
		if err := validateReference(ref, "requires"); err != nil {
			return err
		}
		if runtime[ref.Name] {
			return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("Package %q is required twice", ref.Name), map[string]any{"package": ref.Name})
		}
		runtime[ref.Name] = true
	}
	for _, ref := range r.TestRequires {
		if err := validateReference(ref, "testRequires"); err != nil {
			return err
		}
		if runtime[ref.Name] {
			return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("Package %q is both a runtime and a test requirement", ref.Name),
				map[string]any{"package": ref.Name})
		}
	}

	return validateFolder(r.Layout.GeneratorsFolder)
}

// Validate checks that s holds each of the four settings exactly once, in
// any order.
func (s Settings) Validate() error {
	want := AllSettings()
	ctx := map[string]any{"settings": s, "required": want}
	if len(s) != len(want) {
		return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
			fmt.Sprintf("Recipe must declare %d settings, got %d", len(want), len(s)), ctx)
	}
	seen := make(map[Setting]bool, len(s))
	for _, setting := range s {
		if !slices.Contains(want, setting) {
			return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("Unknown setting %q", setting), ctx)
		}
		if seen[setting] {
			return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("Duplicate setting %q", setting), ctx)
		}
		seen[setting] = true
	}
	return nil
}

func validateReference(ref Reference, field string) error {
	if _, err := ParseReference(ref.String()); err != nil || !ref.Version.IsValid() {
		if err == nil {
			err = fmt.Errorf("%w %q", ErrInvalidReference, ref.String())
		}
		return mscerrors.WrapWithContext(mscerrors.ErrCodeInvalidRecipe,
			fmt.Sprintf("Invalid reference in %s", field), err,
			map[string]any{"reference": ref.String()})
	}
	return nil
}

func validateFolder(folder string) error {
	if folder == "" || folder == "." {
		return nil
	}
	clean := strings.ReplaceAll(folder, "\\", "/")
	if strings.HasPrefix(clean, "/") || slices.Contains(strings.Split(clean, "/"), "..") {
		return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
			fmt.Sprintf("Generators folder %q must be a relative path inside the output directory", folder),
			map[string]any{"generatorsFolder": folder})
	}
	return nil
}
