package units

import (
	"sort"
	"strings"
)

// === Exponents ===

// Exponents is a product of named factors raised to rational exponents:
// the dimension vector of a quantity (over the physical-dimension alphabet)
// or its display unit (over unit symbols).
//
// The canonical form never stores a zero exponent. All operations return a
// fresh map; an Exponents value is never mutated after it escapes, so copies
// may be shared freely across goroutines.
type Exponents map[string]Ratio

// Dimension alphabet used by the bundled definition sources.
//
// A: angle, I: current, L: length, M: mass, N: amount, T: time,
// Theta: temperature. Angle is an explicit dimension, unlike in SI.
var BaseDimensions = []string{"A", "I", "L", "M", "N", "T", "Theta"}

// Copy returns an independent copy of e.
func (e Exponents) Copy() Exponents {
	c := make(Exponents, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// Mul returns the product of the two factor sets (exponents add).
func (e Exponents) Mul(o Exponents) Exponents {
	c := e.Copy()
	for k, v := range o {
		sum := c[k].Add(v)
		if sum.IsZero() {
			delete(c, k)
		} else {
			c[k] = sum
		}
	}
	return c
}

// Div returns the quotient of the two factor sets (exponents subtract).
func (e Exponents) Div(o Exponents) Exponents {
	c := e.Copy()
	for k, v := range o {
		diff := c[k].Sub(v)
		if diff.IsZero() {
			delete(c, k)
		} else {
			c[k] = diff
		}
	}
	return c
}

// Pow scales every exponent by p. Pow of zero yields the empty set.
func (e Exponents) Pow(p Ratio) Exponents {
	if p.IsZero() {
		return Exponents{}
	}
	c := make(Exponents, len(e))
	for k, v := range e {
		c[k] = v.Mul(p)
	}
	return c
}

// Neg returns the reciprocal factor set (all exponents negated).
func (e Exponents) Neg() Exponents {
	c := make(Exponents, len(e))
	for k, v := range e {
		c[k] = v.Neg()
	}
	return c
}

// Equal reports set-of-(symbol, exponent) equality.
func (e Exponents) Equal(o Exponents) bool {
	if len(e) != len(o) {
		return false
	}
	for k, v := range e {
		if o[k] != v {
			return false
		}
	}
	return true
}

// Empty reports whether no factors are present (the dimensionless vector).
func (e Exponents) Empty() bool { return len(e) == 0 }

// complexity is the L1 norm of the exponents, the objective minimized by
// the coherent simplifier.
func (e Exponents) complexity() float64 {
	var sum float64
	for _, v := range e {
		sum += v.Abs().Float()
	}
	return sum
}

// sortedSymbols returns the symbols ordered by descending exponent
// magnitude, then alphabetically. This is the deterministic rendering and
// hashing order.
func (e Exponents) sortedSymbols() []string {
	syms := make([]string, 0, len(e))
	for k := range e {
		syms = append(syms, k)
	}
	sort.Slice(syms, func(i, j int) bool {
		mi, mj := e[syms[i]].Abs(), e[syms[j]].Abs()
		if c := mi.Cmp(mj); c != 0 {
			return c > 0
		}
		return syms[i] < syms[j]
	})
	return syms
}

// Key returns the canonical string form, usable as a map key wherever a
// hashable identity for the vector is needed.
func (e Exponents) Key() string { return e.String() }

// String renders the vector in the plain style, e.g. "L2*M/T2".
func (e Exponents) String() string { return e.Format(StylePlain) }

// ParseExponents parses the compact factor syntax: each factor is a symbol
// optionally followed directly by an exponent (integer, decimal, or a
// parenthesized fraction such as "(1/2)"), factors joined by '*' or '/',
// with parenthesized groups, e.g. "L2*M/T2" or "a/b/(c*d2)" or "m(1/2)".
// "1" is accepted as a unity numerator, e.g. "1/s".
func ParseExponents(s string) (Exponents, error) {
	p := &expParser{src: strings.ReplaceAll(s, " ", "")}
	e, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, &ParseError{Msg: "trailing input in factor expression " + quote(s)}
	}
	return e, nil
}

// MustParseExponents is ParseExponents for literals known to be valid.
func MustParseExponents(s string) Exponents {
	e, err := ParseExponents(s)
	if err != nil {
		panic(err)
	}
	return e
}

type expParser struct {
	src string
	pos int
}

func (p *expParser) parse() (Exponents, error) {
	result := Exponents{}
	mul := true
	for p.pos < len(p.src) {
		var factor Exponents
		switch c := p.src[p.pos]; {
		case c == '(':
			sub, err := p.group()
			if err != nil {
				return nil, err
			}
			inner := &expParser{src: sub}
			factor, err = inner.parse()
			if err != nil {
				return nil, err
			}
			if inner.pos != len(inner.src) {
				return nil, &ParseError{Msg: "malformed factor group " + quote(sub)}
			}
		case c == '1':
			// Unity numerator, as in "1/s".
			p.pos++
			factor = Exponents{}
		case isSymbolStart(c):
			var err error
			factor, err = p.factor()
			if err != nil {
				return nil, err
			}
		default:
			return nil, &ParseError{Msg: "unexpected character " + quote(string(c)) + " in factor expression"}
		}

		if mul {
			result = result.Mul(factor)
		} else {
			result = result.Div(factor)
		}

		if p.pos >= len(p.src) {
			break
		}
		switch p.src[p.pos] {
		case '*':
			mul = true
		case '/':
			mul = false
		default:
			return nil, nil // unreachable for well-formed input; caller checks pos
		}
		p.pos++
		if p.pos == len(p.src) {
			return nil, &ParseError{Msg: "factor expression ends with an operator"}
		}
	}
	return result, nil
}

// group consumes a balanced parenthesized group and returns its contents.
func (p *expParser) group() (string, error) {
	depth := 0
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				sub := p.src[p.pos+1 : i]
				p.pos = i + 1
				return sub, nil
			}
		}
	}
	return "", &ParseError{Msg: "unbalanced parentheses in factor expression"}
}

// factor consumes one symbol with an optional exponent.
func (p *expParser) factor() (Exponents, error) {
	start := p.pos
	for p.pos < len(p.src) && isSymbolChar(p.src[p.pos]) {
		p.pos++
	}
	sym := p.src[start:p.pos]

	exp := RInt(1)
	if p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '(':
			// Parenthesized rational exponent, e.g. "m(1/2)".
			sub, err := p.group()
			if err != nil {
				return nil, err
			}
			exp, err = ParseRatio(sub)
			if err != nil {
				return nil, &ParseError{Msg: "invalid exponent " + quote(sub) + " on " + quote(sym)}
			}
		case c == '-' || c == '+' || isDigit(c):
			numStart := p.pos
			p.pos++
			for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
				p.pos++
			}
			var err error
			exp, err = ParseRatio(p.src[numStart:p.pos])
			if err != nil {
				return nil, &ParseError{Msg: "invalid exponent on " + quote(sym)}
			}
		}
	}
	if exp.IsZero() {
		return Exponents{}, nil
	}
	return Exponents{sym: exp}, nil
}

func isSymbolStart(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func isSymbolChar(c byte) bool {
	return isSymbolStart(c) || c == '_'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func quote(s string) string { return "'" + s + "'" }
