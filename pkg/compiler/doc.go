// Package compiler runs the msc pipeline end to end: lexing, parsing, IR
// construction, optimization and execution.
//
// Compile returns every intermediate form so callers can print tokens, the
// syntax tree or the IR before running it:
//
//	res, err := compiler.Compile(ctx, "1 + x * 2")
//	if err != nil {
//	    return err
//	}
//	out, err := res.Run(ctx, executor.Values{"x": 3})
//
// Errors returned by Compile and Run are mapped by WrapError onto the
// structured codes in pkg/errors, which the HTTP handler turns into status
// codes:
//
//	UNKNOWN_LITERAL, PARSE_ERROR  400
//	UNBOUND_VARIABLE              422
//	CONTROL_FLOW                  422
//
// Handler exposes the pipeline as GET/POST /v1/compile and responds with a
// Report in JSON, YAML or any format pkg/serializer negotiates.
//
// WriteDebugFile writes the tokens, tree, optimized IR and result of a run
// as a single JSON document.
package compiler
