package units

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// === Registry ===

// DefaultSimplificationLevel is the number of non-minimizing substitutions
// the coherent simplifier may make while searching for a simpler display
// unit. Raising it finds more simplifications at a formatting cost.
const DefaultSimplificationLevel = 2

// Registry is the symbol table of one unit-system configuration: an
// ordered, append-only mapping from names to symbols, plus the coherent
// relations discovered while the definitions were loaded.
//
// A registry is built once (Define/AddCoherentRelation), then frozen.
// After Freeze it is immutable and safe for unlimited concurrent readers.
// Independent unit systems are independent Registry instances; there is no
// process-wide table.
type Registry struct {
	names         []string // definition order; a redefinition keeps its original slot
	symbols       map[string]Symbol
	coherent      []Exponents // relations among unit symbols that evaluate to unity
	simplifyLevel int
	frozen        bool
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{
		symbols:       make(map[string]Symbol),
		simplifyLevel: DefaultSimplificationLevel,
	}
}

// SetSimplificationLevel adjusts the simplifier's recursion budget.
// Level 0 disables simplification.
func (r *Registry) SetSimplificationLevel(level int) {
	r.simplifyLevel = level
}

// Define binds sym's name, replacing any earlier binding ("last wins").
// A replaced name keeps its original definition order. Defining on a
// frozen registry is an error.
func (r *Registry) Define(sym Symbol) error {
	if r.frozen {
		return fmt.Errorf("cannot define %q: registry is frozen", sym.SymbolName())
	}
	name := sym.SymbolName()
	if _, exists := r.symbols[name]; !exists {
		r.names = append(r.names, name)
	}
	r.symbols[name] = sym
	return nil
}

// AddCoherentRelation records a unit combination that evaluates to unity,
// e.g. kg*m2/(s2*J). The simplifier substitutes these to shorten display
// units.
func (r *Registry) AddCoherentRelation(rel Exponents) error {
	if r.frozen {
		return fmt.Errorf("cannot add coherent relation: registry is frozen")
	}
	r.coherent = append(r.coherent, rel.Copy())
	return nil
}

// Freeze makes the registry immutable. Required before it is shared.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool { return r.frozen }

// Len returns the number of defined symbols.
func (r *Registry) Len() int { return len(r.names) }

// Names returns the symbol names in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Lookup resolves a name to its symbol. An exactly defined name always
// wins; otherwise the resolver tries to read the name as an SI prefix on a
// prefixable unit, one-character prefixes before the two-character "deca".
// Synthesized units are never written back into the table.
func (r *Registry) Lookup(name string) (Symbol, error) {
	if sym, ok := r.symbols[name]; ok {
		return sym, nil
	}

	lookupErr := &LookupError{Name: name}
	for _, plen := range []int{1, 2} {
		if len(name) <= plen {
			break
		}
		prefix, base := name[:plen], name[plen:]
		baseSym, ok := r.symbols[base]
		if !ok {
			continue
		}

		var prefixable bool
		switch s := baseSym.(type) {
		case *ScalarUnit:
			prefixable = s.Prefixable()
		case *LambdaUnit:
			prefixable = s.Prefixable()
		}
		if !prefixable {
			lookupErr = &LookupError{Name: name, Reason: fmt.Sprintf("%q isn't prefixable", base)}
			continue
		}

		factor, ok := prefixFactor(prefix)
		if !ok {
			lookupErr = &LookupError{Name: name, Reason: fmt.Sprintf("%q isn't a valid prefix", prefix)}
			continue
		}

		logrus.Debugf("synthesized %q as prefix %q on unit %q", name, prefix, base)
		switch s := baseSym.(type) {
		case *ScalarUnit:
			q := NewQuantity(factor*s.Value(), s.Dimension(), nil)
			return NewScalarUnit(name, q, false), nil
		case *LambdaUnit:
			forward := func(n float64) Quantity { return s.forward(factor * n) }
			inverse := func(q Quantity) (float64, error) {
				n, err := s.inverse(q)
				return n / factor, err
			}
			return NewLambdaUnit(name, forward, inverse, s.dim, false), nil
		}
	}
	return nil, lookupErr
}

// Unit resolves a name that must be a scalar unit (possibly prefixed).
func (r *Registry) Unit(name string) (*ScalarUnit, error) {
	sym, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	u, ok := sym.(*ScalarUnit)
	if !ok {
		return nil, &LookupError{Name: name, Reason: fmt.Sprintf("%q is a %s, not a scalar unit", name, sym.Kind())}
	}
	return u, nil
}

// Evaluate computes the quantity of a compound unit given as a factor set
// over registered names, e.g. {kg:1, m:2, s:-2}. Lambda units cannot be
// combined multiplicatively and are rejected.
func (r *Registry) Evaluate(factors Exponents) (Quantity, error) {
	result := Dimensionless(1)
	for _, name := range factors.sortedSymbols() {
		sym, err := r.Lookup(name)
		if err != nil {
			return Quantity{}, err
		}
		var q Quantity
		switch s := sym.(type) {
		case *ScalarUnit:
			q = s.Quantity()
		case *Constant:
			q = s.Quantity()
		default:
			return Quantity{}, &LookupError{
				Name:   name,
				Reason: "lambda units cannot be combined multiplicatively",
			}
		}
		p, err := q.Pow(factors[name])
		if err != nil {
			return Quantity{}, err
		}
		result = result.Mul(p)
	}
	return result, nil
}

// Compound parses a compound unit string such as "kg*m2/s2" and evaluates
// it to a quantity.
func (r *Registry) Compound(expr string) (Quantity, error) {
	factors, err := ParseExponents(expr)
	if err != nil {
		return Quantity{}, err
	}
	return r.Evaluate(factors)
}

// Convert expresses q in the named unit, which may be a scalar unit
// (possibly prefixed), a lambda unit, a constant, or a compound unit
// string such as "km/hr".
func (r *Registry) Convert(q Quantity, unitName string) (float64, error) {
	sym, err := r.Lookup(unitName)
	if err != nil {
		// Not a single symbol; try a compound unit expression.
		unitQ, cerr := r.Compound(unitName)
		if cerr != nil {
			return 0, err
		}
		if !q.Dimension().Equal(unitQ.Dimension()) {
			return 0, &IncompatibleUnitError{
				Unit:              unitName,
				UnitDimension:     unitQ.Dimension(),
				QuantityDimension: q.Dimension(),
			}
		}
		return q.Value() / unitQ.Value(), nil
	}

	switch s := sym.(type) {
	case *ScalarUnit:
		return q.ConvertTo(s)
	case *LambdaUnit:
		return s.ToNumber(q)
	case *Constant:
		c := s.Quantity()
		if !q.Dimension().Equal(c.Dimension()) {
			return 0, &IncompatibleUnitError{
				Unit:              unitName,
				UnitDimension:     c.Dimension(),
				QuantityDimension: q.Dimension(),
			}
		}
		return q.Value() / c.Value(), nil
	}
	return 0, &LookupError{Name: unitName}
}
