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
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/mathstatic/msc/pkg/checksum"
	mscerrors "github.com/mathstatic/msc/pkg/errors"
	"github.com/mathstatic/msc/pkg/header"
	"github.com/mathstatic/msc/pkg/serializer"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

var templates = sync.OnceValues(func() (*template.Template, error) {
	return template.New("recipe").ParseFS(embeddedTemplates, "templates/*.tmpl")
})

// GeneratedFile is one file written by Generate.
type GeneratedFile struct {
	// Path is relative to the generators folder.
	Path      string    `json:"path" yaml:"path"`
	Generator Generator `json:"generator" yaml:"generator"`
	Size      int64     `json:"sizeBytes" yaml:"sizeBytes"`
	SHA256    string    `json:"sha256" yaml:"sha256"`
}

// GenerateResult lists what Generate wrote.
type GenerateResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// Dir is the generators folder inside the output directory.
	Dir          string          `json:"dir" yaml:"dir"`
	Files        []GeneratedFile `json:"files" yaml:"files"`
	ChecksumFile string          `json:"checksumFile" yaml:"checksumFile"`
	TotalSize    int64           `json:"totalSizeBytes" yaml:"totalSizeBytes"`
	Duration     time.Duration   `json:"duration" yaml:"duration"`
}

// Summary returns a human-readable summary of the run.
func (r *GenerateResult) Summary() string {
	return fmt.Sprintf("Generated %d files (%s) in %s in %v.",
		len(r.Files), formatBytes(r.TotalSize), r.Dir, r.Duration.Round(time.Millisecond))
}

// TableRows implements the serializer table view.
func (r *GenerateResult) TableRows() [][2]string {
	rows := make([][2]string, 0, len(r.Files)+2)
	for _, f := range r.Files {
		rows = append(rows, [2]string{f.Path, fmt.Sprintf("%s %s", f.Generator, formatBytes(f.Size))})
	}
	return append(rows,
		[2]string{checksum.FileName, r.ChecksumFile},
		[2]string{"summary", r.Summary()},
	)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// pending is a file to render.
type pending struct {
	name       string
	template   string
	generator  Generator
	executable bool
	data       any
}

type toolchainData struct {
	Recipe      string
	Profile     Profile
	SystemName  string
	Processor   string
	CCompiler   string
	CXXCompiler string
}

type packageData struct {
	Recipe  string
	Name    string
	Version string
	Triple  string
	Scope   Scope
	Target  string
	Folder  string
}

type runEnvData struct {
	Recipe   string
	Profile  Profile
	LibVar   string
	Packages []Package
}

// Generate renders the build-system files of every generator in res into
// outputDir/<generators folder> and writes a checksums.txt next to them.
// Files are replaced atomically so a failed run never leaves half a file.
func Generate(ctx context.Context, outputDir string, res *Resolution) (*GenerateResult, error) {
	start := time.Now()
	if res == nil {
		return nil, mscerrors.New(mscerrors.ErrCodeInvalidRecipe, "Resolution cannot be nil")
	}
	if err := validateFolder(res.Layout.GeneratorsFolder); err != nil {
		return nil, err
	}
	if outputDir == "" {
		outputDir = "."
	}
	dir := filepath.Join(outputDir, res.Layout.GeneratorsFolder)

	tmpl, err := templates()
	if err != nil {
		return nil, mscerrors.Wrap(mscerrors.ErrCodeInternal, "Unable to parse generator templates", err)
	}

	files, err := plan(res)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, mscerrors.WrapWithContext(mscerrors.ErrCodeInternal,
			"Unable to create generators folder", err, map[string]any{"dir": dir})
	}

	result := &GenerateResult{Dir: dir}
	result.Init(header.KindGenerateResult, res.Metadata["version"])
	written := make([]string, 0, len(files))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, mscerrors.Wrap(mscerrors.ErrCodeCanceled, "Generation canceled", err)
		}

		var buf strings.Builder
		if err := tmpl.ExecuteTemplate(&buf, f.template, f.data); err != nil {
			return nil, mscerrors.Wrap(mscerrors.ErrCodeInternal,
				fmt.Sprintf("Unable to render %s", f.name), err)
		}
		content := []byte(buf.String())

		path := filepath.Join(dir, f.name)
		if err := serializer.WriteFileAtomic(path, content); err != nil {
			return nil, mscerrors.Wrap(mscerrors.ErrCodeInternal,
				fmt.Sprintf("Unable to write %s", f.name), err)
		}
		if f.executable {
			if err := os.Chmod(path, 0o755); err != nil {
				return nil, mscerrors.Wrap(mscerrors.ErrCodeInternal,
					fmt.Sprintf("Unable to make %s executable", f.name), err)
			}
		}

		written = append(written, path)
		result.Files = append(result.Files, GeneratedFile{
			Path:      f.name,
			Generator: f.generator,
			Size:      int64(len(content)),
			SHA256:    checksum.Sum(content),
		})
		result.TotalSize += int64(len(content))
		generatedFiles.WithLabelValues(string(f.generator)).Inc()

		slog.Debug("file generated",
			"path", path,
			"generator", f.generator,
			"size_bytes", len(content),
		)
	}

	sumPath, err := checksum.Generate(ctx, dir, written)
	if err != nil {
		return nil, mscerrors.Wrap(mscerrors.ErrCodeInternal, "Unable to write checksums", err)
	}
	result.ChecksumFile = sumPath

	result.Duration = time.Since(start)
	generateDuration.Observe(result.Duration.Seconds())

	slog.Info("generation complete",
		"dir", dir,
		"files", len(result.Files),
		"size_bytes", result.TotalSize,
		"duration", result.Duration.Round(time.Millisecond),
	)
	return result, nil
}

// plan lists the files each generator produces, in generator order.
func plan(res *Resolution) ([]pending, error) {
	var files []pending
	windows := res.Profile.OS == "Windows"

	for _, g := range res.Generators {
		switch g {
		case GeneratorCMakeToolchain:
			cc, cxx := compilerCommands(res.Profile.Compiler)
			files = append(files, pending{
				name:      "conan_toolchain.cmake",
				template:  "conan_toolchain.cmake.tmpl",
				generator: g,
				data: toolchainData{
					Recipe:      res.Recipe,
					Profile:     res.Profile,
					SystemName:  systemName(res.Profile.OS),
					Processor:   processor(res.Profile.OS, res.Profile.Arch),
					CCompiler:   cc,
					CXXCompiler: cxx,
				},
			})

		case GeneratorCMakeDeps:
			for _, p := range res.Packages {
				data := packageData{
					Recipe:  res.Recipe,
					Name:    p.Name,
					Version: p.Version.Full(),
					Triple:  p.Version.Triple(),
					Scope:   p.Scope,
					Target:  p.Name + "::" + p.Name,
					Folder:  "$ENV{MSC_PACKAGES_ROOT}/" + p.Name + "/" + p.Version.Full(),
				}
				files = append(files,
					pending{name: p.Name + "-config.cmake", template: "package-config.cmake.tmpl", generator: g, data: data},
					pending{name: p.Name + "-config-version.cmake", template: "package-config-version.cmake.tmpl", generator: g, data: data},
				)
			}

		case GeneratorVirtualRunEnv:
			data := runEnvData{
				Recipe:   res.Recipe,
				Profile:  res.Profile,
				LibVar:   libraryPathVar(res.Profile.OS),
				Packages: res.Runtime(),
			}
			if windows {
				files = append(files,
					pending{name: "conanrun.bat", template: "conanrun.bat.tmpl", generator: g, data: data},
					pending{name: "deactivate_conanrun.bat", template: "deactivate_conanrun.bat.tmpl", generator: g, data: data},
				)
			} else {
				files = append(files,
					pending{name: "conanrun.sh", template: "conanrun.sh.tmpl", generator: g, data: data, executable: true},
					pending{name: "deactivate_conanrun.sh", template: "deactivate_conanrun.sh.tmpl", generator: g, data: data, executable: true},
				)
			}

		default:
			return nil, mscerrors.NewWithContext(mscerrors.ErrCodeInvalidRecipe,
				fmt.Sprintf("Unknown generator %q", g), map[string]any{"generator": string(g)})
		}
	}
	return files, nil
}

func systemName(targetOS string) string {
	if targetOS == "Macos" {
		return "Darwin"
	}
	return targetOS
}

func processor(targetOS, arch string) string {
	switch arch {
	case "armv8":
		if targetOS == "Linux" || targetOS == "FreeBSD" {
			return "aarch64"
		}
		return "arm64"
	case "x86_64":
		if targetOS == "Windows" {
			return "AMD64"
		}
		return "x86_64"
	default:
		return arch
	}
}

func compilerCommands(compiler string) (string, string) {
	switch compiler {
	case "clang", "apple-clang":
		return "clang", "clang++"
	case "msvc":
		return "cl", "cl"
	default:
		return "gcc", "g++"
	}
}

func libraryPathVar(targetOS string) string {
	if targetOS == "Macos" {
		return "DYLD_LIBRARY_PATH"
	}
	return "LD_LIBRARY_PATH"
}
