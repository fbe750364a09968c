package units

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExponents_MulCancelsToEmpty(t *testing.T) {
	e := Exponents{"L": RInt(1), "T": RInt(-1)}
	inv := e.Neg()
	assert.True(t, e.Mul(inv).Empty())
}

func TestExponents_DivSubtractsExponents(t *testing.T) {
	energy := MustParseExponents("L2*M/T2")
	length := MustParseExponents("L")
	force := energy.Div(length)
	assert.True(t, force.Equal(MustParseExponents("L*M/T2")))
}

func TestExponents_PowZero_IsEmpty(t *testing.T) {
	e := MustParseExponents("L2*M/T2")
	assert.True(t, e.Pow(RInt(0)).Empty())
}

func TestExponents_PowScalesRationally(t *testing.T) {
	area := MustParseExponents("L2")
	side := area.Pow(R(1, 2))
	assert.True(t, side.Equal(Exponents{"L": RInt(1)}))
}

func TestExponents_OperationsLeaveOperandsIntact(t *testing.T) {
	e := MustParseExponents("L2*M/T2")
	before := e.Copy()
	_ = e.Mul(MustParseExponents("T2"))
	_ = e.Div(MustParseExponents("M"))
	_ = e.Pow(RInt(3))
	assert.True(t, e.Equal(before))
}

func TestParseExponents(t *testing.T) {
	cases := []struct {
		in   string
		want Exponents
	}{
		{"", Exponents{}},
		{"m", Exponents{"m": RInt(1)}},
		{"L2*M/T2", Exponents{"L": RInt(2), "M": RInt(1), "T": RInt(-2)}},
		{"1/s", Exponents{"s": RInt(-1)}},
		{"a/b/(c*d2)", Exponents{"a": RInt(1), "b": RInt(-1), "c": RInt(-1), "d": RInt(-2)}},
		{"m(1/2)", Exponents{"m": R(1, 2)}},
		{"m0.5", Exponents{"m": R(1, 2)}},
		{"kg*m2/s2", Exponents{"kg": RInt(1), "m": RInt(2), "s": RInt(-2)}},
		{"J/(mol*K)", Exponents{"J": RInt(1), "mol": RInt(-1), "K": RInt(-1)}},
		{"cyc/(s*V)", Exponents{"cyc": RInt(1), "s": RInt(-1), "V": RInt(-1)}},
		{"m0", Exponents{}},
		{"s-1", Exponents{"s": RInt(-1)}},
		{"k_B", Exponents{"k_B": RInt(1)}},
	}
	// Ratio is an opaque value type; compare by ==.
	ratioCmp := cmp.Comparer(func(a, b Ratio) bool { return a == b })
	for _, c := range cases {
		got, err := ParseExponents(c.in)
		assert.NoError(t, err, c.in)
		if diff := cmp.Diff(c.want, got, ratioCmp); diff != "" {
			t.Errorf("ParseExponents(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParseExponents_Invalid(t *testing.T) {
	for _, in := range []string{"m*", "/s", "(m", "m)", "2m", "m^2", "m(1/0)"} {
		_, err := ParseExponents(in)
		assert.Error(t, err, in)
	}
}

func TestExponents_SortOrder_MagnitudeThenAlphabetical(t *testing.T) {
	e := Exponents{"kg": RInt(1), "m": RInt(2), "s": RInt(-2)}
	assert.Equal(t, "m2*kg/s2", e.String())
}

func TestExponents_KeyIsCanonical(t *testing.T) {
	a := MustParseExponents("L2*M/T2")
	b := MustParseExponents("M*L2/T2")
	assert.Equal(t, a.Key(), b.Key())
}
