// Package checksum writes and verifies SHA256 checksum files for generated
// build files.
//
//	path, err := checksum.Generate(ctx, "/path/to/conan", files)
//
// The checksums.txt format is compatible with sha256sum:
//
//	sha256sum -c checksums.txt
package checksum
