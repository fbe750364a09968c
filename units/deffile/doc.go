// Package deffile interprets unit definition files.
//
// A definition source is a sequence of statements, one per line:
//
//	symbol = expression[, True|False][; note]
//
// [Section] headers and ';'/'#' comment lines are skipped. A statement
// with a True/False flag defines a unit (the flag sets SI-prefixability);
// a statement without one defines a constant. Expressions are evaluated
// in a restricted sub-language (lexer.go, parser.go, eval.go) whose only
// callables are an allow-list of math functions and the Quantity, Affine,
// and LogScale constructors.
//
// Load (loader.go) replays the sources in order into a units.Registry and
// freezes it. Later statements see earlier bindings; redefinition is
// last-wins. Units derived purely from existing symbols contribute
// coherent relations used by the display simplifier.
package deffile
