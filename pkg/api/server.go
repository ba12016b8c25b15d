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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/mathstatic/msc/pkg/compiler"
	"github.com/mathstatic/msc/pkg/logging"
	"github.com/mathstatic/msc/pkg/recipe"
	"github.com/mathstatic/msc/pkg/server"
)

const (
	name           = "mscd"
	versionDefault = "dev"

	// recipeFileEnv names a recipe file served by /v1/recipe in place of the
	// built-in one.
	recipeFileEnv = "RECIPE_FILE"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/mathstatic/msc/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the application handlers keyed by path. A nil recipe serves
// recipe.Default.
func Routes(ver string, rec *recipe.Recipe) map[string]http.HandlerFunc {
	ch := &compiler.Handler{Version: ver}
	rh := &recipe.Handler{Recipe: rec, Version: ver}

	return map[string]http.HandlerFunc{
		"/v1/compile": ch.HandleCompile,
		"/v1/recipe":  rh.HandleRecipe,
	}
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	rec, err := loadRecipe(ctx)
	if err != nil {
		slog.Error("failed to load recipe", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(version, rec)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func loadRecipe(ctx context.Context) (*recipe.Recipe, error) {
	path := os.Getenv(recipeFileEnv)
	if path == "" {
		return nil, nil
	}
	rec, err := recipe.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	slog.Info("serving recipe from file", "path", path, "name", rec.Name)
	return rec, nil
}
