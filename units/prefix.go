package units

import "math"

// SI prefixes, BIPM SI brochure Table 5. Keys are the prefix symbols;
// values are the decimal exponents. "da" (deca) is the only two-character
// prefix, and a one-character reading of an ambiguous name wins over it.
var prefixes = map[string]int{
	"Y":  24,  // yotta
	"Z":  21,  // zetta
	"E":  18,  // exa
	"P":  15,  // peta
	"T":  12,  // tera
	"G":  9,   // giga
	"M":  6,   // mega
	"k":  3,   // kilo
	"h":  2,   // hecto
	"da": 1,   // deca
	"d":  -1,  // deci
	"c":  -2,  // centi
	"m":  -3,  // milli
	"u":  -6,  // micro
	"n":  -9,  // nano
	"p":  -12, // pico
	"f":  -15, // femto
	"a":  -18, // atto
	"z":  -21, // zepto
	"y":  -24, // yocto
}

// prefixFactor returns the scale factor 10^exponent for a registered
// prefix symbol.
func prefixFactor(symbol string) (float64, bool) {
	exp, ok := prefixes[symbol]
	if !ok {
		return 0, false
	}
	return math.Pow(10, float64(exp)), true
}
