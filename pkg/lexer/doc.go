// Package lexer scans arithmetic expressions into tokens.
//
// The alphabet is small: brackets, the four operators, unsigned decimal
// numbers (`1`, `11.`, `11.00`), variables (`x`, `var123`) and whitespace.
// Anything else stops the scan with an *UnknownLiteralError whose Highlight
// method renders a caret diagnostic for terminals.
//
//	tokens, err := lexer.Scan("1 + 11.00 - 1000 / var123 * (5 - 2)")
package lexer
