package units

import "fmt"

// Error taxonomy of the engine. All errors are fail-fast: they signal
// programmer or configuration mistakes, never transient conditions, so
// nothing here is retried. Callers that need to branch on the failure kind
// use errors.As with the concrete types below.

// DimensionError reports an add, subtract, or compare across unequal
// dimension vectors.
type DimensionError struct {
	Op    string    // operation that failed ("add", "subtract", "compare", ...)
	Left  Exponents // dimension of the left operand
	Right Exponents // dimension of the right operand
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("cannot %s quantities of dimension %q and %q", e.Op, e.Left.String(), e.Right.String())
}

// IncompatibleUnitError reports a conversion to a unit of a different
// dimension.
type IncompatibleUnitError struct {
	Unit              string    // target unit symbol
	UnitDimension     Exponents // dimension of the target unit
	QuantityDimension Exponents // dimension of the quantity being converted
}

func (e *IncompatibleUnitError) Error() string {
	return fmt.Sprintf("cannot convert quantity of dimension %q to unit %q (dimension %q)",
		e.QuantityDimension.String(), e.Unit, e.UnitDimension.String())
}

// FractionalPowerError reports raising a negative value to a non-integer
// exponent.
type FractionalPowerError struct {
	Value    float64 // the negative base value
	Exponent Ratio   // the non-integer exponent
}

func (e *FractionalPowerError) Error() string {
	return fmt.Sprintf("cannot raise negative value %g to fractional power %s", e.Value, e.Exponent)
}

// UndefinedSymbolError reports a reference to a name that no prior
// definition statement has bound.
type UndefinedSymbolError struct {
	Symbol    string // the unbound name
	Statement string // symbol being defined by the offending statement
	File      string // definition source
	Line      int    // 1-based line within the source
}

func (e *UndefinedSymbolError) Error() string {
	if e.Statement == "" {
		return fmt.Sprintf("undefined symbol %q", e.Symbol)
	}
	return fmt.Sprintf("%s:%d: undefined symbol %q in definition of %q", e.File, e.Line, e.Symbol, e.Statement)
}

// ParseError reports a structurally malformed definition statement or
// factor expression.
type ParseError struct {
	File string // definition source ("" for in-memory expressions)
	Line int    // 1-based line within the source (0 if unknown)
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" && e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// LookupError reports a name that is neither defined nor prefix-resolvable.
type LookupError struct {
	Name   string
	Reason string // optional detail, e.g. "\"ft\" isn't prefixable"
}

func (e *LookupError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%q isn't a defined unit or constant", e.Name)
	}
	return fmt.Sprintf("%q isn't a defined unit or constant: %s", e.Name, e.Reason)
}
