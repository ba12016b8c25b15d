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
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	mscerrors "github.com/mathstatic/msc/pkg/errors"
)

// Allowed values per setting, in the order they are documented.
var (
	OSValues        = []string{"Linux", "Windows", "Macos", "FreeBSD"}
	CompilerValues  = []string{"gcc", "clang", "apple-clang", "msvc"}
	BuildTypeValues = []string{"Debug", "Release", "RelWithDebInfo", "MinSizeRel"}
	ArchValues      = []string{"x86", "x86_64", "armv7", "armv8"}
)

// Profile holds a concrete value for each setting.
type Profile struct {
	OS        string `json:"os" yaml:"os" toml:"os" validate:"required,oneof=Linux Windows Macos FreeBSD"`
	Compiler  string `json:"compiler" yaml:"compiler" toml:"compiler" validate:"required,oneof=gcc clang apple-clang msvc"`
	BuildType string `json:"build_type" yaml:"build_type" toml:"build_type" validate:"required,oneof=Debug Release RelWithDebInfo MinSizeRel"`
	Arch      string `json:"arch" yaml:"arch" toml:"arch" validate:"required,oneof=x86 x86_64 armv7 armv8"`
}

// DefaultProfile is used for every setting a caller leaves unset.
func DefaultProfile() Profile {
	return Profile{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}
}

// Get returns the profile value of a setting.
func (p Profile) Get(s Setting) string {
	switch s {
	case SettingOS:
		return p.OS
	case SettingCompiler:
		return p.Compiler
	case SettingBuildType:
		return p.BuildType
	case SettingArch:
		return p.Arch
	default:
		return ""
	}
}

func (p *Profile) set(s Setting, value string) error {
	var allowed []string
	var field *string
	switch s {
	case SettingOS:
		allowed, field = OSValues, &p.OS
	case SettingCompiler:
		allowed, field = CompilerValues, &p.Compiler
	case SettingBuildType:
		allowed, field = BuildTypeValues, &p.BuildType
	case SettingArch:
		allowed, field = ArchValues, &p.Arch
	default:
		return mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
			fmt.Sprintf("Unknown setting %q", s), map[string]any{
				"setting": string(s),
				"allowed": AllSettings(),
			})
	}
	*field = canonical(allowed, value)
	return nil
}

// canonical matches value case-insensitively against allowed and returns the
// declared spelling, or value unchanged when nothing matches.
func canonical(allowed []string, value string) string {
	value = strings.TrimSpace(value)
	if i := slices.IndexFunc(allowed, func(a string) bool { return strings.EqualFold(a, value) }); i >= 0 {
		return allowed[i]
	}
	return value
}

// Validate checks every setting against its allowed values.
func (p Profile) Validate() error {
	err := profileValidator().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return mscerrors.Wrap(mscerrors.ErrCodeInvalidRecipe, "Invalid profile", err)
	}
	first := verrs[0]
	setting := Setting(first.Field())
	return mscerrors.WrapWithContext(mscerrors.ErrCodeInvalidRecipe,
		fmt.Sprintf("Invalid value %q for setting %s", first.Value(), setting.DisplayName()), err,
		map[string]any{
			"setting": first.Field(),
			"value":   first.Value(),
			"allowed": strings.Fields(first.Param()),
		})
}

var profileValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
})

// ParseProfile builds a profile from setting name to value, starting from
// DefaultProfile. Values match case-insensitively. Keys may use '-' in place
// of '_' ("build-type").
func ParseProfile(values map[string]string) (Profile, error) {
	p := DefaultProfile()
	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		setting := Setting(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_"))
		if err := p.set(setting, value); err != nil {
			return Profile{}, err
		}
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ParseProfileFromRequest reads os, compiler, build_type and arch from the
// query string.
func ParseProfileFromRequest(r *http.Request) (Profile, error) {
	if r == nil {
		return Profile{}, mscerrors.New(mscerrors.ErrCodeInvalidRequest, "request cannot be nil")
	}
	q := r.URL.Query()
	values := make(map[string]string, len(AllSettings()))
	for _, s := range AllSettings() {
		if v := q.Get(string(s)); v != "" {
			values[string(s)] = v
		}
	}
	return ParseProfile(values)
}
