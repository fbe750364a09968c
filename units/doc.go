// Package units provides the quantity algebra and unit-system registry for
// unitspace.
//
// # Reading Guide
//
// Start with these three files to understand the core:
//   - exponents.go: Exponents, the rational-exponent vector over named symbols
//   - quantity.go: Quantity arithmetic and the dimension-compatibility rules
//   - registry.go: the frozen symbol table, prefix-resolving lookup, and conversion
//
// # Architecture
//
// A quantity carries a float64 value, a dimension vector over the
// physical-dimension alphabet (angle, current, length, mass, amount, time,
// temperature), and a display-unit vector over unit symbols that only
// affects formatting. Unit systems are not hard-coded conversion tables:
// they are built by replaying ordered definition statements (package
// units/deffile) that assign values to a handful of adjustable physical
// constants and derive every unit from them. The result is a frozen
// Registry; different unit systems are simply different Registry instances.
//
// Everything in this package is an immutable value after construction, so
// a frozen registry and the quantities derived from it need no locking.
//
// # Key Types
//
//   - Ratio: exact rational exponents (ratio.go)
//   - Exponents: the factor-set algebra shared by dimensions and display units
//   - Quantity: value + dimension + display unit, purely functional arithmetic
//   - Symbol: tagged variants Constant, ScalarUnit, LambdaUnit (unit.go)
//   - Registry: ordered symbol table with SI-prefix synthesis (registry.go,
//     prefix.go), coherent simplification (simplify.go), and rendering in
//     plain/HTML/LaTeX/Modelica/Unicode styles (format.go, render.go)
package units
