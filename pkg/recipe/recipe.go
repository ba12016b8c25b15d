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
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Setting is a settings category a build is configured by.
type Setting string

const (
	SettingOS        Setting = "os"
	SettingCompiler  Setting = "compiler"
	SettingBuildType Setting = "build_type"
	SettingArch      Setting = "arch"
)

var titleCaser = cases.Title(language.English)

// AllSettings returns the four settings categories in declaration order.
func AllSettings() []Setting {
	return []Setting{SettingOS, SettingCompiler, SettingBuildType, SettingArch}
}

// DisplayName renders the setting for people, "build_type" as "Build Type".
// The acronym "os" is rendered "OS".
func (s Setting) DisplayName() string {
	if s == SettingOS {
		return "OS"
	}
	return titleCaser.String(strings.ReplaceAll(string(s), "_", " "))
}

// Settings is the list of settings categories a recipe declares.
type Settings []Setting

// Generator names a build-system integration emitted by Generate.
type Generator string

const (
	GeneratorCMakeToolchain Generator = "CMakeToolchain"
	GeneratorCMakeDeps      Generator = "CMakeDeps"
	GeneratorVirtualRunEnv  Generator = "VirtualRunEnv"
)

// AllGenerators returns the supported generators.
func AllGenerators() []Generator {
	return []Generator{GeneratorCMakeToolchain, GeneratorCMakeDeps, GeneratorVirtualRunEnv}
}

// IsValid reports whether g is a supported generator.
func (g Generator) IsValid() bool {
	return slices.Contains(AllGenerators(), g)
}

// DefaultGeneratorsFolder is where generated files go, relative to the output
// directory.
const DefaultGeneratorsFolder = "conan"

// Layout controls where generated files are placed.
type Layout struct {
	GeneratorsFolder string `json:"generatorsFolder" yaml:"generatorsFolder" toml:"generators_folder"`
}

// Recipe declares how the compiler is built: its settings, the generators
// that integrate it with the build system and the packages it requires.
type Recipe struct {
	Name         string      `json:"name" yaml:"name" toml:"name"`
	Settings     Settings    `json:"settings" yaml:"settings" toml:"settings"`
	Generators   []Generator `json:"generators" yaml:"generators" toml:"generators"`
	Requires     []Reference `json:"requires" yaml:"requires" toml:"requires"`
	TestRequires []Reference `json:"testRequires" yaml:"testRequires" toml:"test_requires"`
	Layout       Layout      `json:"layout" yaml:"layout" toml:"layout"`
}

// Default returns the MathStaticCompiler recipe.
func Default() *Recipe {
	return &Recipe{
		Name:       "MathStaticCompiler",
		Settings:   AllSettings(),
		Generators: AllGenerators(),
		Requires: []Reference{
			MustParseReference("fmt/10.2.1"),
			MustParseReference("boost/1.87.0"),
		},
		TestRequires: []Reference{
			MustParseReference("catch2/3.8.1"),
		},
		Layout: Layout{GeneratorsFolder: DefaultGeneratorsFolder},
	}
}

// applyDefaults fills every field left empty from Default.
func (r *Recipe) applyDefaults() {
	d := Default()
	if r.Name == "" {
		r.Name = d.Name
	}
	if r.Settings == nil {
		r.Settings = d.Settings
	}
	if r.Generators == nil {
		r.Generators = d.Generators
	}
	if r.Requires == nil {
		r.Requires = d.Requires
	}
	if r.TestRequires == nil {
		r.TestRequires = d.TestRequires
	}
	if r.Layout.GeneratorsFolder == "" {
		r.Layout.GeneratorsFolder = d.Layout.GeneratorsFolder
	}
}

// TableRows implements the serializer table view.
func (r *Recipe) TableRows() [][2]string {
	rows := [][2]string{{"name", r.Name}}
	for _, s := range r.Settings {
		rows = append(rows, [2]string{"settings", s.DisplayName()})
	}
	for _, g := range r.Generators {
		rows = append(rows, [2]string{"generators", string(g)})
	}
	for _, ref := range r.Requires {
		rows = append(rows, [2]string{"requires", ref.String()})
	}
	for _, ref := range r.TestRequires {
		rows = append(rows, [2]string{"testRequires", ref.String()})
	}
	return append(rows, [2]string{"layout.generatorsFolder", r.Layout.GeneratorsFolder})
}
