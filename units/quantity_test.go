package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func length(v float64) Quantity {
	return NewQuantity(v, Exponents{"L": RInt(1)}, Exponents{"m": RInt(1)})
}

func duration(v float64) Quantity {
	return NewQuantity(v, Exponents{"T": RInt(1)}, Exponents{"s": RInt(1)})
}

func TestQuantity_AddSameDimension(t *testing.T) {
	sum, err := length(2).Add(length(3))
	assert.NoError(t, err)
	assert.Equal(t, 5.0, sum.Value())
	assert.True(t, sum.Dimension().Equal(Exponents{"L": RInt(1)}))
}

func TestQuantity_AddKeepsLeftDisplay(t *testing.T) {
	a := NewQuantity(1, Exponents{"L": RInt(1)}, Exponents{"ft": RInt(1)})
	sum, err := a.Add(length(1))
	assert.NoError(t, err)
	assert.True(t, sum.Display().Equal(Exponents{"ft": RInt(1)}))
}

func TestQuantity_AddDimensionMismatch_Fails(t *testing.T) {
	_, err := length(1).Add(duration(1))
	var dimErr *DimensionError
	assert.True(t, errors.As(err, &dimErr))
	assert.Equal(t, "add", dimErr.Op)
}

func TestQuantity_SubDimensionMismatch_Fails(t *testing.T) {
	_, err := length(1).Sub(Dimensionless(1))
	var dimErr *DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestQuantity_AddSubRoundTrip(t *testing.T) {
	a := length(2.5)
	b := length(7.25)
	sum, err := a.Add(b)
	assert.NoError(t, err)
	back, err := sum.Sub(b)
	assert.NoError(t, err)
	assert.InDelta(t, a.Value(), back.Value(), 1e-12)
	assert.True(t, back.Dimension().Equal(a.Dimension()))
	assert.True(t, back.Display().Equal(a.Display()))
}

func TestQuantity_MulCombinesVectors(t *testing.T) {
	speed := length(10).Div(duration(2))
	assert.Equal(t, 5.0, speed.Value())
	assert.True(t, speed.Dimension().Equal(MustParseExponents("L/T")))
	assert.True(t, speed.Display().Equal(MustParseExponents("m/s")))
}

func TestQuantity_MulCancelsToDimensionless(t *testing.T) {
	ratio := length(6).Div(length(3))
	assert.True(t, ratio.IsDimensionless())
	assert.Equal(t, 2.0, ratio.Value())
}

func TestQuantity_PowRationalExponent(t *testing.T) {
	area := NewQuantity(9, Exponents{"L": RInt(2)}, Exponents{"m": RInt(2)})
	side, err := area.Pow(R(1, 2))
	assert.NoError(t, err)
	assert.Equal(t, 3.0, side.Value())
	assert.True(t, side.Dimension().Equal(Exponents{"L": RInt(1)}))
	assert.True(t, side.Display().Equal(Exponents{"m": RInt(1)}))
}

func TestQuantity_PowComposes(t *testing.T) {
	// (a**p)**q agrees with a**(p*q) in value and dimension.
	area := NewQuantity(4, Exponents{"L": RInt(2)}, Exponents{"m": RInt(2)})
	side, err := area.Pow(R(1, 2))
	assert.NoError(t, err)
	cubed, err := side.Pow(RInt(3))
	assert.NoError(t, err)
	direct, err := area.Pow(R(3, 2))
	assert.NoError(t, err)
	assert.InDelta(t, direct.Value(), cubed.Value(), 1e-12)
	assert.True(t, cubed.Dimension().Equal(direct.Dimension()))
	assert.True(t, cubed.Dimension().Equal(Exponents{"L": RInt(3)}))
}

func TestQuantity_MulDimensionCommutes(t *testing.T) {
	force := NewQuantity(3, MustParseExponents("L*M/T2"), nil)
	dist := length(2)
	ab := force.Mul(dist)
	ba := dist.Mul(force)
	assert.True(t, ab.Dimension().Equal(ba.Dimension()))
	assert.Equal(t, ab.Value(), ba.Value())
}

func TestQuantity_PowZero_IsUnity(t *testing.T) {
	p, err := length(7).Pow(RInt(0))
	assert.NoError(t, err)
	assert.True(t, p.Equal(Dimensionless(1)))
}

func TestQuantity_PowNegativeBaseFractional_Fails(t *testing.T) {
	_, err := Dimensionless(-4).Pow(R(1, 2))
	var fpErr *FractionalPowerError
	assert.True(t, errors.As(err, &fpErr))
	assert.Equal(t, -4.0, fpErr.Value)
}

func TestQuantity_PowNegativeBaseInteger_Succeeds(t *testing.T) {
	p, err := Dimensionless(-2).Pow(RInt(3))
	assert.NoError(t, err)
	assert.Equal(t, -8.0, p.Value())
}

func TestQuantity_EqualIgnoresDisplay(t *testing.T) {
	a := NewQuantity(1, Exponents{"L": RInt(1)}, Exponents{"m": RInt(1)})
	b := NewQuantity(1, Exponents{"L": RInt(1)}, Exponents{"ft": RInt(1)})
	assert.True(t, a.Equal(b))
}

func TestQuantity_CmpOrders(t *testing.T) {
	c, err := length(1).Cmp(length(2))
	assert.NoError(t, err)
	assert.Equal(t, -1, c)

	_, err = length(1).Cmp(duration(1))
	var dimErr *DimensionError
	assert.True(t, errors.As(err, &dimErr))
	assert.Equal(t, "compare", dimErr.Op)
}

func TestQuantity_ConvertTo(t *testing.T) {
	km := NewScalarUnit("km", NewQuantity(1000, Exponents{"L": RInt(1)}, nil), false)
	n, err := length(2500).ConvertTo(km)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, n)
}

func TestQuantity_ConvertToIncompatible_Fails(t *testing.T) {
	km := NewScalarUnit("km", NewQuantity(1000, Exponents{"L": RInt(1)}, nil), false)
	_, err := duration(1).ConvertTo(km)
	var incErr *IncompatibleUnitError
	assert.True(t, errors.As(err, &incErr))
	assert.Equal(t, "km", incErr.Unit)
}

func TestQuantity_WithDisplayDoesNotChangeValue(t *testing.T) {
	q := length(3).WithDisplay(Exponents{"ft": RInt(1)})
	assert.Equal(t, 3.0, q.Value())
	assert.True(t, q.Display().Equal(Exponents{"ft": RInt(1)}))
}
