package units

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testRegistry builds a small frozen system: metre, second, gram, foot,
// joule, pascal, annum, the speed of light, and Celsius.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()

	define := func(sym Symbol) {
		assert.NoError(t, r.Define(sym))
	}
	define(NewScalarUnit("m", NewQuantity(1, MustParseExponents("L"), nil), true))
	define(NewScalarUnit("s", NewQuantity(1, MustParseExponents("T"), nil), true))
	define(NewScalarUnit("g", NewQuantity(0.001, MustParseExponents("M"), nil), true))
	define(NewScalarUnit("ft", NewQuantity(0.3048, MustParseExponents("L"), nil), false))
	define(NewScalarUnit("J", NewQuantity(1, MustParseExponents("L2*M/T2"), nil), true))
	define(NewScalarUnit("Pa", NewQuantity(1, MustParseExponents("M/(L*T2)"), nil), true))
	define(NewScalarUnit("a", NewQuantity(31557600, MustParseExponents("T"), nil), false))
	define(NewConstant("c", NewQuantity(299792458, MustParseExponents("L/T"), MustParseExponents("m/s"))))

	kelvin := NewQuantity(1, MustParseExponents("Theta"), nil)
	define(NewLambdaUnit("degC",
		func(n float64) Quantity { return kelvin.MulFloat(n + 273.15) },
		func(q Quantity) (float64, error) { return q.Value() - 273.15, nil },
		MustParseExponents("Theta"), false))

	r.Freeze()
	return r
}

func TestRegistry_DefineAfterFreeze_Fails(t *testing.T) {
	r := testRegistry(t)
	err := r.Define(NewConstant("x", Dimensionless(1)))
	assert.Error(t, err)
	err = r.AddCoherentRelation(Exponents{"m": RInt(1)})
	assert.Error(t, err)
}

func TestRegistry_RedefinitionKeepsOriginalOrder(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Define(NewConstant("x", Dimensionless(1))))
	assert.NoError(t, r.Define(NewConstant("y", Dimensionless(2))))
	assert.NoError(t, r.Define(NewConstant("x", Dimensionless(3))))

	assert.Equal(t, []string{"x", "y"}, r.Names())
	sym, err := r.Lookup("x")
	assert.NoError(t, err)
	assert.Equal(t, 3.0, sym.(*Constant).Quantity().Value())
}

func TestLookup_ExactSymbol(t *testing.T) {
	r := testRegistry(t)
	sym, err := r.Lookup("m")
	assert.NoError(t, err)
	assert.Equal(t, KindUnit, sym.Kind())
}

func TestLookup_SinglePrefix(t *testing.T) {
	r := testRegistry(t)
	km, err := r.Unit("km")
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, km.Value())
	assert.False(t, km.Prefixable(), "synthesized units take no further prefixes")
}

func TestLookup_TwoCharPrefix_Deca(t *testing.T) {
	// "dam" fails as 'd'+'am' (no unit "am") and resolves as 'da'+'m'.
	r := testRegistry(t)
	dam, err := r.Unit("dam")
	assert.NoError(t, err)
	assert.InDelta(t, 10.0, dam.Value(), 1e-12)
}

func TestLookup_ExactDefinitionBeatsPrefix(t *testing.T) {
	// "Pa" is the pascal, never peta-annum, even though both parse.
	r := testRegistry(t)
	pa, err := r.Unit("Pa")
	assert.NoError(t, err)
	assert.True(t, pa.Dimension().Equal(MustParseExponents("M/(L*T2)")))
}

func TestLookup_MicroGram(t *testing.T) {
	r := testRegistry(t)
	ug, err := r.Unit("ug")
	assert.NoError(t, err)
	assert.InDelta(t, 1e-9, ug.Value(), 1e-21)
}

func TestLookup_NonPrefixableUnit_Fails(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Lookup("kft")
	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr))
	assert.Contains(t, err.Error(), "prefixable")
}

func TestLookup_UnknownPrefix_Fails(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Lookup("xm")
	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestLookup_UnknownSymbol_Fails(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Lookup("furlong")
	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "furlong", lookupErr.Name)
}

func TestLookup_PrefixedLambdaUnit(t *testing.T) {
	r := NewRegistry()
	// Bel with value scale 10**n; "dB" must synthesize via the 'd' prefix.
	assert.NoError(t, r.Define(NewLambdaUnit("B",
		func(n float64) Quantity { return Dimensionless(math.Pow(10, n)) },
		func(q Quantity) (float64, error) { return math.Log10(q.Value()), nil },
		Exponents{}, true)))
	r.Freeze()

	sym, err := r.Lookup("dB")
	assert.NoError(t, err)
	dB, ok := sym.(*LambdaUnit)
	assert.True(t, ok)

	q := dB.FromNumber(20)
	assert.InDelta(t, 100.0, q.Value(), 1e-9)
	n, err := dB.ToNumber(Dimensionless(1000))
	assert.NoError(t, err)
	assert.InDelta(t, 30.0, n, 1e-9)
}

func TestUnit_RejectsNonScalarSymbols(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Unit("degC")
	assert.Error(t, err)
	_, err = r.Unit("c")
	assert.Error(t, err)
}

func TestEvaluate_CompoundFactors(t *testing.T) {
	r := testRegistry(t)
	q, err := r.Evaluate(MustParseExponents("kg*m2/s2"))
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, q.Value(), 1e-12)
	assert.True(t, q.Dimension().Equal(MustParseExponents("L2*M/T2")))
}

func TestEvaluate_RejectsLambdaUnits(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Evaluate(Exponents{"degC": RInt(1)})
	assert.Error(t, err)
}

func TestCompound_ParsesAndEvaluates(t *testing.T) {
	r := testRegistry(t)
	q, err := r.Compound("km/s")
	assert.NoError(t, err)
	assert.InDelta(t, 1000.0, q.Value(), 1e-9)
}

func TestConvert_ScalarUnit(t *testing.T) {
	r := testRegistry(t)
	q := NewQuantity(2500, MustParseExponents("L"), nil)
	n, err := r.Convert(q, "km")
	assert.NoError(t, err)
	assert.InDelta(t, 2.5, n, 1e-12)
}

func TestConvert_CompoundExpression(t *testing.T) {
	r := testRegistry(t)
	speed := NewQuantity(10, MustParseExponents("L/T"), nil) // 10 m/s
	n, err := r.Convert(speed, "km/ks")
	assert.NoError(t, err)
	assert.InDelta(t, 10.0, n, 1e-9)
}

func TestConvert_LambdaUnit(t *testing.T) {
	r := testRegistry(t)
	boiling := NewQuantity(373.15, MustParseExponents("Theta"), nil)
	n, err := r.Convert(boiling, "degC")
	assert.NoError(t, err)
	assert.InDelta(t, 100.0, n, 1e-9)
}

func TestConvert_Constant(t *testing.T) {
	r := testRegistry(t)
	speed := NewQuantity(149896229, MustParseExponents("L/T"), nil)
	n, err := r.Convert(speed, "c")
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, n, 1e-12)
}

func TestConvert_IncompatibleDimension_Fails(t *testing.T) {
	r := testRegistry(t)
	q := NewQuantity(1, MustParseExponents("T"), nil)
	_, err := r.Convert(q, "km")
	var incErr *IncompatibleUnitError
	assert.True(t, errors.As(err, &incErr))
}
