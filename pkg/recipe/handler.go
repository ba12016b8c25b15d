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
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mathstatic/msc/pkg/defaults"
	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/serializer"
	"github.com/mathstatic/msc/pkg/server"
)

var (
	// recipeCacheTTL can be overridden for testing or custom configurations
	recipeCacheTTL = defaults.RecipeCacheTTL
)

// Handler serves /v1/recipe.
type Handler struct {
	// Recipe is resolved on every request. Default is used when nil.
	Recipe *Recipe
	// Version is recorded in resolution metadata.
	Version string
}

// HandleRecipe resolves the recipe against the profile in the query string
// (os, compiler, build_type, arch) and responds with a Resolution. Test
// requirements are included when test is true.
func (h *Handler) HandleRecipe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecipeHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, mscerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodGet},
			})
		return
	}

	profile, err := ParseProfileFromRequest(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid profile", nil)
		return
	}

	includeTest := false
	if raw := r.URL.Query().Get("test"); raw != "" {
		includeTest, err = strconv.ParseBool(raw)
		if err != nil {
			server.WriteError(w, r, http.StatusBadRequest, mscerrors.ErrCodeInvalidRequest,
				"Invalid test parameter", false, map[string]any{"error": err.Error()})
			return
		}
	}

	slog.Debug("profile",
		"os", profile.OS,
		"compiler", profile.Compiler,
		"build_type", profile.BuildType,
		"arch", profile.Arch,
		"test", includeTest,
	)

	rec := h.Recipe
	if rec == nil {
		rec = Default()
	}
	if err := ctx.Err(); err != nil {
		server.WriteErrorFromErr(w, r, err, "Request canceled", nil)
		return
	}

	res, err := rec.Resolve(profile, includeTest, WithVersion(h.Version))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to resolve recipe", nil)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(recipeCacheTTL.Seconds())))
	serializer.Respond(w, r, http.StatusOK, res)
}
