// Package cli implements the msc command-line interface.
//
// # Overview
//
// Without a subcommand msc compiles one expression, optimizes it, evaluates it
// and prints every step followed by the result:
//
//	$ msc -i "1 + 11.00 - 1000 / var123 * (5 - 2)"
//	%3 = 12
//	%4 = 1000
//	%9 = 3
//	Give a value to the variable "var123" = 10
//	%5 = 10
//	%6 = %4 / %5 = 100
//	%10 = %6 * %9 = 300
//	%11 = %3 - %10 = -288
//	Result: -288
//
// When --input-line is omitted the expression is read from stdin after the
// prompt "Input the source line:". Variables bound with --var are not asked
// for.
//
// # Root Flags
//
//	--input-line, -i       Expression to compile
//	--json-debug-file, -o  Write tokens, tree, program and result as JSON
//	--var, -D              Bind a variable, repeatable (name=value)
//	--no-optimize          Run the program as built
//	--quiet, -q            Print only the result
//	--version, -v          Print the banner and version
//	--help, -h             Show command help
//	--log-level            Logging verbosity (default: warn)
//
// # Commands
//
// tokens, ast, ir - Print one pipeline stage:
//
//	msc ir -i "a * 1 + 0" [--no-optimize] [--format yaml|json|table] [--output FILE]
//
// compile - Print the full compile report, the same document served by
// /v1/compile:
//
//	msc compile -i "a + b" -D a=1 -D b=2 --format json
//
// recipe - Work with the build recipe:
//
//	msc recipe show [--recipe FILE] [--format yaml|json|toml|table]
//	msc recipe resolve --os Windows --compiler msvc [--test]
//	msc recipe generate --build-type Debug --output-dir build
//
// Prompts of the stage commands are written to stderr so stdout carries only
// the document.
//
// # Environment Variables
//
//	MSC_LOG_LEVEL    Logging verbosity (debug, info, warn, error)
//	MSC_RECIPE_FILE  Recipe used by the recipe commands
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid input, compile or execution failure)
//	2  Input aborted, context canceled or timeout
package cli
