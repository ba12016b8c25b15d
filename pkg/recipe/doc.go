// Package recipe describes how MathStaticCompiler is built and emits the
// build-system files for a target profile.
//
// # Recipe
//
// A Recipe declares the settings categories a build depends on (os,
// compiler, build_type, arch), the generators to run, the packages needed at
// run time and the packages needed only by tests:
//
//	r := recipe.Default()
//	// requires:      fmt/10.2.1, boost/1.87.0
//	// test requires: catch2/3.8.1
//	// generators:    CMakeToolchain, CMakeDeps, VirtualRunEnv
//	// layout:        generated files go to "conan"
//
// Recipes can also be loaded from TOML, YAML or JSON. Fields a file leaves
// out keep their Default values:
//
//	# recipe.toml
//	name = "msc"
//	requires = ["fmt/11.0.2", "boost/1.87.0"]
//	test_requires = ["catch2/3.8.1"]
//
//	[layout]
//	generators_folder = "build/conan"
//
//	r, err := recipe.LoadFile(ctx, "recipe.toml")
//
// # Profiles
//
// A Profile assigns a value to every setting:
//
//	os:         Linux, Windows, Macos, FreeBSD
//	compiler:   gcc, clang, apple-clang, msvc
//	build_type: Debug, Release, RelWithDebInfo, MinSizeRel
//	arch:       x86, x86_64, armv7, armv8
//
// ParseProfile starts from DefaultProfile (Linux, gcc, Release, x86_64) and
// matches values case-insensitively.
//
// # Resolve and Generate
//
//	res, err := r.Resolve(profile, includeTest)
//	out, err := recipe.Generate(ctx, ".", res)
//	fmt.Println(out.Summary())
//
// Generate writes into <outputDir>/<generators folder>:
//
//	CMakeToolchain  conan_toolchain.cmake
//	CMakeDeps       <name>-config.cmake, <name>-config-version.cmake
//	VirtualRunEnv   conanrun.sh, deactivate_conanrun.sh (.bat on Windows)
//
// plus a checksums.txt readable by `sha256sum -c`.
//
// # HTTP
//
//	GET /v1/recipe?os=Linux&compiler=clang&build_type=Debug&arch=armv8&test=true
//
// responds with a Resolution. Invalid values produce an INVALID_RECIPE error
// with status 400.
package recipe
