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
	"regexp"
	"strings"

	"github.com/mathstatic/msc/pkg/version"
)

var (
	// ErrInvalidReference is returned for a reference that is not name/version.
	ErrInvalidReference = errors.New("invalid reference")

	referenceName = regexp.MustCompile(`^[a-z0-9_][a-z0-9_+.-]{1,100}$`)
)

// Reference pins a package to a version, written `name/version`.
type Reference struct {
	Name    string
	Version version.Version
}

// ParseReference parses and validates `name/version`.
func ParseReference(s string) (Reference, error) {
	name, raw, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Reference{}, fmt.Errorf("%w %q: expected name/version", ErrInvalidReference, s)
	}
	if !referenceName.MatchString(name) {
		return Reference{}, fmt.Errorf("%w %q: bad package name %q", ErrInvalidReference, s, name)
	}
	v, err := version.ParseVersion(raw)
	if err != nil {
		return Reference{}, fmt.Errorf("%w %q: %w", ErrInvalidReference, s, err)
	}
	return Reference{Name: name, Version: v}, nil
}

// MustParseReference parses a reference and panics if parsing fails.
// Only use it for hardcoded strings.
func MustParseReference(s string) Reference {
	ref, err := ParseReference(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseReference: %v", err))
	}
	return ref
}

func (r Reference) String() string {
	return r.Name + "/" + r.Version.Full()
}

// MarshalText writes the reference as name/version.
func (r Reference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reference) UnmarshalText(b []byte) error {
	parsed, err := ParseReference(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
