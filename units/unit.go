package units

// === Symbols ===

// SymbolKind tags the variants a registry lookup can return. Callers switch
// on the kind (or type-switch on the Symbol) instead of duck typing.
type SymbolKind int

const (
	// KindConstant is a named physical constant. Never prefixable.
	KindConstant SymbolKind = iota
	// KindUnit is a scalar unit: a pure scale factor with a dimension.
	KindUnit
	// KindLambdaUnit is a unit defined by a forward/inverse function pair.
	KindLambdaUnit
)

func (k SymbolKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindUnit:
		return "unit"
	case KindLambdaUnit:
		return "lambda unit"
	}
	return "unknown"
}

// Symbol is an entry of a frozen registry: a constant, a scalar unit, or a
// lambda unit.
type Symbol interface {
	Kind() SymbolKind
	SymbolName() string
	Dimension() Exponents
}

// === Constant ===

// Constant is a named quantity, e.g. the speed of light. Constants take no
// SI prefixes.
type Constant struct {
	name string
	q    Quantity
}

// NewConstant names a quantity.
func NewConstant(name string, q Quantity) *Constant {
	return &Constant{name: name, q: q}
}

func (c *Constant) Kind() SymbolKind     { return KindConstant }
func (c *Constant) SymbolName() string   { return c.name }
func (c *Constant) Dimension() Exponents { return c.q.Dimension() }

// Quantity returns the constant's value as a quantity.
func (c *Constant) Quantity() Quantity { return c.q }

// === ScalarUnit ===

// ScalarUnit is a unit that is just a scale factor: one metre is a fixed
// quantity of length. Whether the unit accepts SI prefixes is fixed when
// it is defined.
type ScalarUnit struct {
	name       string
	q          Quantity
	prefixable bool
}

// NewScalarUnit tags a quantity as a named unit. The unit's display vector
// becomes the symbol itself.
func NewScalarUnit(name string, q Quantity, prefixable bool) *ScalarUnit {
	return &ScalarUnit{
		name:       name,
		q:          q.WithDisplay(Exponents{name: RInt(1)}),
		prefixable: prefixable,
	}
}

func (u *ScalarUnit) Kind() SymbolKind     { return KindUnit }
func (u *ScalarUnit) SymbolName() string   { return u.name }
func (u *ScalarUnit) Dimension() Exponents { return u.q.Dimension() }

// Prefixable reports whether SI prefixes may be applied at lookup time.
func (u *ScalarUnit) Prefixable() bool { return u.prefixable }

// Quantity returns the unit's value as a quantity whose display vector is
// the unit symbol itself.
func (u *ScalarUnit) Quantity() Quantity { return u.q }

// Value returns the unit's raw scale factor.
func (u *ScalarUnit) Value() float64 { return u.q.Value() }

// FromNumber returns n of this unit, e.g. 5 * km.
func (u *ScalarUnit) FromNumber(n float64) Quantity { return u.q.MulFloat(n) }

// === LambdaUnit ===

// ForwardFunc maps a number to a quantity (e.g. 25 degC to a temperature).
type ForwardFunc func(float64) Quantity

// InverseFunc maps a quantity back to a number in the unit's scale.
type InverseFunc func(Quantity) (float64, error)

// LambdaUnit is a unit defined by an invertible function pair rather than
// a scale factor: offset scales such as degC, logarithmic scales such as
// dB. A lambda unit never participates in multiplicative unit algebra;
// FromNumber and ToNumber are its only entry points.
type LambdaUnit struct {
	name       string
	forward    ForwardFunc
	inverse    InverseFunc
	dim        Exponents // dimension of forward's codomain
	prefixable bool
}

// NewLambdaUnit builds a lambda unit from the function pair and the
// dimension implied by forward's output.
func NewLambdaUnit(name string, forward ForwardFunc, inverse InverseFunc, dim Exponents, prefixable bool) *LambdaUnit {
	return &LambdaUnit{
		name:       name,
		forward:    forward,
		inverse:    inverse,
		dim:        dim.Copy(),
		prefixable: prefixable,
	}
}

// WithName returns a copy of the lambda unit under a new symbol name and
// prefixable flag. The definition loader uses this to bind the anonymous
// function pair produced by an expression to its statement's symbol.
func (l *LambdaUnit) WithName(name string, prefixable bool) *LambdaUnit {
	return NewLambdaUnit(name, l.forward, l.inverse, l.dim, prefixable)
}

func (l *LambdaUnit) Kind() SymbolKind     { return KindLambdaUnit }
func (l *LambdaUnit) SymbolName() string   { return l.name }
func (l *LambdaUnit) Dimension() Exponents { return l.dim.Copy() }

// Prefixable reports whether SI prefixes may be applied at lookup time.
func (l *LambdaUnit) Prefixable() bool { return l.prefixable }

// FromNumber evaluates the forward function, producing a quantity that
// displays in this unit.
func (l *LambdaUnit) FromNumber(n float64) Quantity {
	return l.forward(n).WithDisplay(Exponents{l.name: RInt(1)})
}

// ToNumber evaluates the inverse function, producing the plain number that
// expresses q in this unit's scale.
func (l *LambdaUnit) ToNumber(q Quantity) (float64, error) {
	if !q.Dimension().Equal(l.dim) {
		return 0, &IncompatibleUnitError{
			Unit:              l.name,
			UnitDimension:     l.dim,
			QuantityDimension: q.Dimension(),
		}
	}
	return l.inverse(q)
}
