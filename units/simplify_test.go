package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// energyRegistry defines the mechanical SI slice with the coherent
// relations the definition loader would have recorded.
func energyRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	define := func(sym Symbol) {
		assert.NoError(t, r.Define(sym))
	}
	define(NewScalarUnit("m", NewQuantity(1, MustParseExponents("L"), nil), true))
	define(NewScalarUnit("s", NewQuantity(1, MustParseExponents("T"), nil), true))
	define(NewScalarUnit("kg", NewQuantity(1, MustParseExponents("M"), nil), false))
	define(NewScalarUnit("N", NewQuantity(1, MustParseExponents("L*M/T2"), nil), true))
	define(NewScalarUnit("J", NewQuantity(1, MustParseExponents("L2*M/T2"), nil), true))
	define(NewScalarUnit("W", NewQuantity(1, MustParseExponents("L2*M/T3"), nil), true))

	for _, rel := range []string{
		"kg*m/(s2*N)", // N = kg*m/s2
		"N*m/J",       // J = N*m
		"J/(s*W)",     // W = J/s
	} {
		assert.NoError(t, r.AddCoherentRelation(MustParseExponents(rel)))
	}
	r.Freeze()
	return r
}

func TestSimplify_EnergyCollapsesToJoule(t *testing.T) {
	r := energyRegistry(t)
	got := r.Simplify(MustParseExponents("kg*m2/s2"))
	assert.True(t, got.Equal(Exponents{"J": RInt(1)}), "got %s", got)
}

func TestSimplify_PowerNeedsTwoSubstitutions(t *testing.T) {
	// kg*m2/s3 -> J/s -> W; requires the recursion level above 1.
	r := energyRegistry(t)
	got := r.Simplify(MustParseExponents("kg*m2/s3"))
	assert.True(t, got.Equal(Exponents{"W": RInt(1)}), "got %s", got)
}

func TestSimplify_NegativePower(t *testing.T) {
	r := energyRegistry(t)
	got := r.Simplify(MustParseExponents("s2/(kg*m2)"))
	assert.True(t, got.Equal(Exponents{"J": RInt(-1)}), "got %s", got)
}

func TestSimplify_AlreadyMinimal_Unchanged(t *testing.T) {
	r := energyRegistry(t)
	u := Exponents{"J": RInt(1)}
	assert.True(t, r.Simplify(u).Equal(u))
}

func TestSimplify_LevelZero_Disabled(t *testing.T) {
	r := energyRegistry(t)
	r.SetSimplificationLevel(0)
	u := MustParseExponents("kg*m2/s2")
	assert.True(t, r.Simplify(u).Equal(u))
}

func TestSimplify_NonIntegerRatio_Skipped(t *testing.T) {
	// m(1/2) shares "m" with the newton relation but the exponent ratio
	// is fractional, so no substitution applies.
	r := energyRegistry(t)
	u := MustParseExponents("m(1/2)")
	assert.True(t, r.Simplify(u).Equal(u))
}

func TestDisplayFor_SingleUnit(t *testing.T) {
	r := energyRegistry(t)
	combo, ok := r.DisplayFor(MustParseExponents("L2*M/T2"))
	assert.True(t, ok)
	assert.True(t, combo.Equal(Exponents{"J": RInt(1)}), "got %s", combo)
}

func TestDisplayFor_SingleUnitNegativePower(t *testing.T) {
	r := energyRegistry(t)
	combo, ok := r.DisplayFor(MustParseExponents("T2/(L2*M)"))
	assert.True(t, ok)
	assert.True(t, combo.Equal(Exponents{"J": RInt(-1)}), "got %s", combo)
}

func TestDisplayFor_PairOfUnits(t *testing.T) {
	// Speed has no single registered unit; m/s is the first matching pair.
	r := energyRegistry(t)
	combo, ok := r.DisplayFor(MustParseExponents("L/T"))
	assert.True(t, ok)
	assert.True(t, combo.Equal(MustParseExponents("m/s")), "got %s", combo)
}

func TestDisplayFor_EarlierDefinitionWinsTies(t *testing.T) {
	r := energyRegistry(t)
	combo, ok := r.DisplayFor(MustParseExponents("L"))
	assert.True(t, ok)
	assert.True(t, combo.Equal(Exponents{"m": RInt(1)}))
}

func TestDisplayFor_NoCombination_ReportsFalse(t *testing.T) {
	r := energyRegistry(t)
	_, ok := r.DisplayFor(MustParseExponents("Theta"))
	assert.False(t, ok)
}

func TestDisplayFor_Dimensionless_IsEmpty(t *testing.T) {
	r := energyRegistry(t)
	combo, ok := r.DisplayFor(Exponents{})
	assert.True(t, ok)
	assert.True(t, combo.Empty())
}
