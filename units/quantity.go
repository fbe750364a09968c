package units

import "math"

// === Quantity ===

// Quantity is a physical quantity: a numeric value, the dimension vector
// that fixes which operations are legal, and a display-unit vector used
// only for formatting. The value is independent of any unit; changing how
// a quantity displays never changes what it is.
//
// Quantities are immutable values. Every operation returns a new Quantity
// and leaves both operands intact, so shared quantities are safe for
// unlimited concurrent readers.
type Quantity struct {
	value   float64
	dim     Exponents // physical dimension, over the BaseDimensions alphabet
	display Exponents // display unit, over unit symbols; formatting only
}

// NewQuantity builds a quantity from a value, a dimension vector, and a
// display-unit vector. Either vector may be nil for dimensionless/unitless.
func NewQuantity(value float64, dim, display Exponents) Quantity {
	return Quantity{value: value, dim: dim.Copy(), display: display.Copy()}
}

// Dimensionless returns the quantity with an empty dimension and display,
// e.g. for plain numbers entering the algebra.
func Dimensionless(value float64) Quantity {
	return Quantity{value: value, dim: Exponents{}, display: Exponents{}}
}

// Value returns the raw numeric value.
func (q Quantity) Value() float64 { return q.value }

// Dimension returns a copy of the dimension vector.
func (q Quantity) Dimension() Exponents { return q.dim.Copy() }

// Display returns a copy of the display-unit vector.
func (q Quantity) Display() Exponents { return q.display.Copy() }

// IsDimensionless reports whether the dimension vector is empty.
func (q Quantity) IsDimensionless() bool { return q.dim.Empty() }

// WithDisplay returns the same quantity rendered in a different display
// unit. The display vector is not checked against the dimension here; the
// formatter falls back to a coherent search if they disagree.
func (q Quantity) WithDisplay(display Exponents) Quantity {
	return Quantity{value: q.value, dim: q.dim, display: display.Copy()}
}

// Add returns q + o. The operands must have equal dimension vectors; the
// result keeps q's display unit.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if !q.dim.Equal(o.dim) {
		return Quantity{}, &DimensionError{Op: "add", Left: q.dim, Right: o.dim}
	}
	return Quantity{value: q.value + o.value, dim: q.dim, display: q.display}, nil
}

// Sub returns q - o. The operands must have equal dimension vectors; the
// result keeps q's display unit.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	if !q.dim.Equal(o.dim) {
		return Quantity{}, &DimensionError{Op: "subtract", Left: q.dim, Right: o.dim}
	}
	return Quantity{value: q.value - o.value, dim: q.dim, display: q.display}, nil
}

// Neg returns -q.
func (q Quantity) Neg() Quantity {
	return Quantity{value: -q.value, dim: q.dim, display: q.display}
}

// Mul returns q * o. Dimension and display vectors combine multiplicatively.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{
		value:   q.value * o.value,
		dim:     q.dim.Mul(o.dim),
		display: q.display.Mul(o.display),
	}
}

// Div returns q / o.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{
		value:   q.value / o.value,
		dim:     q.dim.Div(o.dim),
		display: q.display.Div(o.display),
	}
}

// MulFloat scales the value; dimension and display are unchanged.
func (q Quantity) MulFloat(f float64) Quantity {
	return Quantity{value: q.value * f, dim: q.dim, display: q.display}
}

// DivFloat divides the value; dimension and display are unchanged.
func (q Quantity) DivFloat(f float64) Quantity {
	return Quantity{value: q.value / f, dim: q.dim, display: q.display}
}

// Pow returns q raised to the rational power p. Dimension and display
// vectors scale by p. Raising a negative value to a non-integer power
// fails rather than producing NaN.
func (q Quantity) Pow(p Ratio) (Quantity, error) {
	if q.value < 0 && !p.IsInt() {
		return Quantity{}, &FractionalPowerError{Value: q.value, Exponent: p}
	}
	if p.IsZero() {
		return Dimensionless(1), nil
	}
	return Quantity{
		value:   math.Pow(q.value, p.Float()),
		dim:     q.dim.Pow(p),
		display: q.display.Pow(p),
	}, nil
}

// Equal reports whether the quantities have the same value and dimension.
// Display units never affect equality.
func (q Quantity) Equal(o Quantity) bool {
	return q.dim.Equal(o.dim) && q.value == o.value
}

// Cmp orders two quantities of equal dimension, returning -1, 0, or +1.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if !q.dim.Equal(o.dim) {
		return 0, &DimensionError{Op: "compare", Left: q.dim, Right: o.dim}
	}
	switch {
	case q.value < o.value:
		return -1, nil
	case q.value > o.value:
		return 1, nil
	}
	return 0, nil
}

// ConvertTo expresses the quantity in the given scalar unit, returning the
// plain number value/unit.
func (q Quantity) ConvertTo(u *ScalarUnit) (float64, error) {
	if !q.dim.Equal(u.q.dim) {
		return 0, &IncompatibleUnitError{
			Unit:              u.name,
			UnitDimension:     u.q.dim,
			QuantityDimension: q.dim,
		}
	}
	return q.value / u.q.value, nil
}
