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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathstatic/msc/pkg/recipe"
	"github.com/mathstatic/msc/pkg/server"
)

// Serve blocks until a signal arrives, so these tests run the same routes
// through server.New and httptest instead.

func TestConstants(t *testing.T) {
	assert.Equal(t, "mscd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestRoutes(t *testing.T) {
	routes := Routes("test", nil)
	assert.Len(t, routes, 2)
	for _, path := range []string{"/v1/compile", "/v1/recipe"} {
		h, ok := routes[path]
		assert.True(t, ok, path)
		assert.NotNil(t, h, path)
	}
}

func newTestServer(t *testing.T, rec *recipe.Recipe) *httptest.Server {
	t.Helper()
	s := server.New(
		server.WithName(name),
		server.WithVersion("test"),
		server.WithHandler(Routes("test", rec)),
	)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, target string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(body, &doc), string(body))
	return resp, doc
}

func TestServer_Compile(t *testing.T) {
	ts := newTestServer(t, nil)

	q := url.Values{}
	q.Set("expression", "(a + 2) * b")
	q.Add("var", "a=1")
	q.Add("var", "b=4")
	resp, doc := get(t, ts.URL+"/v1/compile?"+q.Encode())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "12", doc["result"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.NotEmpty(t, resp.Header.Get("X-Api-Version"))
}

func TestServer_CompileUnbound(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, doc := get(t, ts.URL+"/v1/compile?expression=a%2Bb&var=a%3D1")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "UNBOUND_VARIABLE", doc["code"])
	assert.Equal(t, resp.Header.Get("X-Request-Id"), doc["requestId"])
}

func TestServer_CompilePOST(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/v1/compile", "application/json",
		strings.NewReader(`{"expression": "x * x", "variables": {"x": 3}, "optimize": false}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "9", doc["result"])
}

func TestServer_Recipe(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, doc := get(t, ts.URL+"/v1/recipe?os=Linux&arch=armv8&test=true")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "RecipeResolution", doc["kind"])
	assert.Len(t, doc["packages"], 3)
}

func TestServer_RootListsRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, doc := get(t, ts.URL+"/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "mscd", doc["name"])
	assert.Equal(t, []any{"/v1/compile", "/v1/recipe", "/health", "/ready", "/metrics"}, doc["routes"])
}

func TestLoadRecipe(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(recipeFileEnv, "")
		rec, err := loadRecipe(context.Background())
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recipe.toml")
		require.NoError(t, os.WriteFile(path, []byte(`name = "from-env"`), 0o600))
		t.Setenv(recipeFileEnv, path)

		rec, err := loadRecipe(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "from-env", rec.Name)

		ts := newTestServer(t, rec)
		_, doc := get(t, ts.URL+"/v1/recipe")
		assert.Equal(t, "from-env", doc["recipe"])
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Setenv(recipeFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := loadRecipe(context.Background())
		assert.Error(t, err)
	})
}
