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

	"github.com/mathstatic/msc/pkg/header"
	"github.com/mathstatic/msc/pkg/version"
)

// Scope tells whether a package is needed at run time or only by tests.
type Scope string

const (
	ScopeRuntime Scope = "runtime"
	ScopeTest    Scope = "test"
)

// Package is one resolved requirement.
type Package struct {
	Name    string          `json:"name" yaml:"name"`
	Version version.Version `json:"version" yaml:"version"`
	Scope   Scope           `json:"scope" yaml:"scope"`
}

// Reference returns the package as name/version.
func (p Package) Reference() Reference {
	return Reference{Name: p.Name, Version: p.Version}
}

// Resolution is a recipe applied to a profile: the packages to fetch and the
// generators to run, ready for Generate.
type Resolution struct {
	header.Header `json:",inline" yaml:",inline"`

	Recipe     string      `json:"recipe" yaml:"recipe"`
	Profile    Profile     `json:"profile" yaml:"profile"`
	Packages   []Package   `json:"packages" yaml:"packages"`
	Generators []Generator `json:"generators" yaml:"generators"`
	Layout     Layout      `json:"layout" yaml:"layout"`
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	version string
}

// WithVersion records the tool version in the resolution metadata.
func WithVersion(v string) ResolveOption {
	return func(o *resolveOptions) {
		o.version = v
	}
}

// Resolve validates the recipe and profile and lists the packages to fetch.
// Runtime requirements come first in declaration order, followed by the test
// requirements when includeTest is set.
func (r *Recipe) Resolve(profile Profile, includeTest bool, opts ...ResolveOption) (*Resolution, error) {
	o := &resolveOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	packages := make([]Package, 0, len(r.Requires)+len(r.TestRequires))
	for _, ref := range r.Requires {
		packages = append(packages, Package{Name: ref.Name, Version: ref.Version, Scope: ScopeRuntime})
	}
	if includeTest {
		for _, ref := range r.TestRequires {
			packages = append(packages, Package{Name: ref.Name, Version: ref.Version, Scope: ScopeTest})
		}
	}

	res := &Resolution{
		Recipe:     r.Name,
		Profile:    profile,
		Packages:   packages,
		Generators: append([]Generator(nil), r.Generators...),
		Layout:     r.Layout,
	}
	res.Init(header.KindRecipeResolution, o.version)
	resolutionCount.WithLabelValues(profile.OS, fmt.Sprint(includeTest)).Inc()
	return res, nil
}

// Runtime returns the runtime-scoped packages.
func (r *Resolution) Runtime() []Package {
	var out []Package
	for _, p := range r.Packages {
		if p.Scope == ScopeRuntime {
			out = append(out, p)
		}
	}
	return out
}

// TableRows implements the serializer table view.
func (r *Resolution) TableRows() [][2]string {
	rows := [][2]string{
		{"kind", r.Kind.String()},
		{"recipe", r.Recipe},
	}
	for _, s := range AllSettings() {
		rows = append(rows, [2]string{s.DisplayName(), r.Profile.Get(s)})
	}
	for _, p := range r.Packages {
		rows = append(rows, [2]string{string(p.Scope), p.Reference().String()})
	}
	for _, g := range r.Generators {
		rows = append(rows, [2]string{"generator", string(g)})
	}
	return append(rows, [2]string{"generatorsFolder", r.Layout.GeneratorsFolder})
}
