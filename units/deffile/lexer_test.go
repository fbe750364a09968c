package deffile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.kind
	}
	return out
}

func TestLex_OperatorsAndPower(t *testing.T) {
	toks, err := lex("a*b**2/(c-d)+e")
	assert.NoError(t, err)
	assert.Equal(t, []tokenKind{
		tokIdent, tokStar, tokIdent, tokPower, tokNumber, tokSlash,
		tokLParen, tokIdent, tokMinus, tokIdent, tokRParen, tokPlus, tokIdent, tokEOF,
	}, kinds(toks))
}

func TestLex_Numbers(t *testing.T) {
	cases := map[string]float64{
		"42":            42,
		"0.001":         0.001,
		"483597.870e9":  483597.870e9,
		"1e-10":         1e-10,
		"1E+3":          1000,
		".5":            0.5,
		"299792458":     299792458,
		"6.62606957e-34": 6.62606957e-34,
	}
	for src, want := range cases {
		toks, err := lex(src)
		assert.NoError(t, err, src)
		assert.Equal(t, tokNumber, toks[0].kind, src)
		assert.Equal(t, want, toks[0].num, src)
		assert.Equal(t, src, toks[0].text, src)
	}
}

func TestLex_ExponentBackoff(t *testing.T) {
	// "2e" is the number 2 followed by the identifier e, not a malformed
	// exponent; this is what makes "2*eV" and "12e" lex sensibly.
	toks, err := lex("12e")
	assert.NoError(t, err)
	assert.Equal(t, []tokenKind{tokNumber, tokIdent, tokEOF}, kinds(toks))
	assert.Equal(t, 12.0, toks[0].num)
	assert.Equal(t, "e", toks[1].text)
}

func TestLex_Strings(t *testing.T) {
	toks, err := lex(`'L2*M/T2' "cyc/m"`)
	assert.NoError(t, err)
	assert.Equal(t, []tokenKind{tokString, tokString, tokEOF}, kinds(toks))
	assert.Equal(t, "L2*M/T2", toks[0].text)
	assert.Equal(t, "cyc/m", toks[1].text)
}

func TestLex_UnterminatedString_Fails(t *testing.T) {
	_, err := lex("'abc")
	assert.Error(t, err)
}

func TestLex_Identifiers(t *testing.T) {
	toks, err := lex("k_B R_inf degC")
	assert.NoError(t, err)
	assert.Equal(t, "k_B", toks[0].text)
	assert.Equal(t, "R_inf", toks[1].text)
	assert.Equal(t, "degC", toks[2].text)
}

func TestLex_UnexpectedCharacter_Fails(t *testing.T) {
	_, err := lex("a @ b")
	assert.Error(t, err)
}

func TestValidSymbol(t *testing.T) {
	for _, ok := range []string{"m", "degC", "k_B", "R_inf", "_x", "B"} {
		assert.True(t, validSymbol(ok), ok)
	}
	for _, bad := range []string{"", "2m", "m-s", "a b", "°C"} {
		assert.False(t, validSymbol(bad), bad)
	}
}
