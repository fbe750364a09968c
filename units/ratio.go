package units

import (
	"fmt"
	"strconv"
	"strings"
)

// === Ratio ===

// Ratio is an exact rational number with value semantics.
//
// It is the exponent type of the algebra: dimension and display-unit vectors
// map symbols to Ratios. Ratios are normalized on construction (reduced
// fraction, positive denominator), so two equal values are also equal with
// ==, which keeps Exponents maps canonical and comparable entry-by-entry.
type Ratio struct {
	num int64 // numerator, carries the sign
	den int64 // denominator, always > 0
}

// R returns the normalized ratio n/d. A zero denominator panics; exponents
// are always constructed from parsed or literal values, never computed
// denominators.
func R(n, d int64) Ratio {
	if d == 0 {
		panic("units: zero denominator in ratio")
	}
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(n, d)
	return Ratio{num: n / g, den: d / g}
}

// RInt returns the ratio n/1.
func RInt(n int64) Ratio {
	return Ratio{num: n, den: 1}
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// IsZero reports whether the ratio is exactly zero.
func (r Ratio) IsZero() bool { return r.num == 0 }

// IsInt reports whether the ratio is a whole number.
func (r Ratio) IsInt() bool { return r.den == 1 || r.den == 0 }

// Int returns the ratio as an int64. Only meaningful when IsInt is true.
func (r Ratio) Int() int64 { return r.num }

// Float returns the ratio as a float64.
func (r Ratio) Float() float64 {
	if r.den == 0 {
		return float64(r.num)
	}
	return float64(r.num) / float64(r.den)
}

// Neg returns -r.
func (r Ratio) Neg() Ratio { return Ratio{num: -r.num, den: r.d()} }

// Abs returns |r|.
func (r Ratio) Abs() Ratio {
	if r.num < 0 {
		return Ratio{num: -r.num, den: r.d()}
	}
	return Ratio{num: r.num, den: r.d()}
}

// Add returns r + o.
func (r Ratio) Add(o Ratio) Ratio { return R(r.num*o.d()+o.num*r.d(), r.d()*o.d()) }

// Sub returns r - o.
func (r Ratio) Sub(o Ratio) Ratio { return R(r.num*o.d()-o.num*r.d(), r.d()*o.d()) }

// Mul returns r * o.
func (r Ratio) Mul(o Ratio) Ratio { return R(r.num*o.num, r.d()*o.d()) }

// Div returns r / o. Division by zero panics.
func (r Ratio) Div(o Ratio) Ratio {
	if o.num == 0 {
		panic("units: ratio division by zero")
	}
	return R(r.num*o.d(), r.d()*o.num)
}

// Cmp returns -1, 0, or +1 ordering r against o.
func (r Ratio) Cmp(o Ratio) int {
	l := r.num * o.d()
	rr := o.num * r.d()
	switch {
	case l < rr:
		return -1
	case l > rr:
		return 1
	}
	return 0
}

// d tolerates the zero value Ratio{} by treating its denominator as 1.
func (r Ratio) d() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

// String renders the ratio as "3", "-2", or "1/2".
func (r Ratio) String() string {
	if r.IsInt() {
		return strconv.FormatInt(r.num, 10)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// ParseRatio parses an exponent literal: an integer ("2", "-1"), a fraction
// ("1/2", "-3/2"), or a finite decimal ("0.5", "-1.5").
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return Ratio{}, fmt.Errorf("invalid fraction numerator %q", num)
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil || d == 0 {
			return Ratio{}, fmt.Errorf("invalid fraction denominator %q", den)
		}
		return R(n, d), nil
	}
	if intPart, fracPart, ok := strings.Cut(s, "."); ok {
		n, err := strconv.ParseInt(intPart+fracPart, 10, 64)
		if err != nil {
			return Ratio{}, fmt.Errorf("invalid decimal exponent %q", s)
		}
		den := int64(1)
		for range fracPart {
			den *= 10
		}
		return R(n, den), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid exponent %q", s)
	}
	return RInt(n), nil
}
