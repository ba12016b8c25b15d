// Package executor evaluates ir programs.
//
// Variables are supplied by a Resolver: a fixed Values map, an interactive
// PromptResolver, or a Chain of both so that bound names are taken from the
// map and the rest are asked for.
//
//	values, _ := executor.ParseValues([]string{"x=2"})
//	res, err := executor.Execute(ctx, prog, executor.Chain{values, executor.NewPromptResolver()})
//
// Every load and instruction is recorded in Result.Trace as `%N = v` or
// `%N = %L op %R = v`.
package executor
