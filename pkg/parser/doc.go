// Package parser builds a syntax tree from lexer tokens.
//
// The grammar is the usual precedence ladder, all binary operators left
// associative:
//
//	term    := factor (("-" | "+") factor)*
//	factor  := unary (("/" | "*") unary)*
//	unary   := "-" unary | primary
//	primary := number | variable | "(" term ")"
//
// Nodes marshal to the JSON shape used by the debug document
// (`{"type":"binary","left":...,"token_type":"add","right":...}`), and to the
// same shape in YAML.
package parser
