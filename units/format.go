package units

import (
	"fmt"
	"strings"
)

// === Styles ===

// Style selects a rendering rule for unit and dimension strings.
type Style int

const (
	// StylePlain joins factors with '*' and '/', e.g. "kg*m2/s2".
	StylePlain Style = iota
	// StyleHTML uses non-breaking spaces and <sup> exponents.
	StyleHTML
	// StyleLaTeX wraps symbols in \mathrm and uses ^ exponents; the output
	// must be typeset in math mode.
	StyleLaTeX
	// StyleModelica is the plain style with '.' as the multiplication sign,
	// per the Modelica specification's unit syntax.
	StyleModelica
	// StyleUnicode uses spaces and Unicode superscript exponents.
	StyleUnicode
)

// ParseStyle maps a style token (long name or one-letter code) to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "", "plain", "p", "v":
		return StylePlain, nil
	case "html", "h":
		return StyleHTML, nil
	case "latex", "l":
		return StyleLaTeX, nil
	case "modelica", "m":
		return StyleModelica, nil
	case "unicode", "u":
		return StyleUnicode, nil
	}
	return StylePlain, fmt.Errorf("unknown format style %q", s)
}

func (s Style) String() string {
	switch s {
	case StyleHTML:
		return "html"
	case StyleLaTeX:
		return "latex"
	case StyleModelica:
		return "modelica"
	case StyleUnicode:
		return "unicode"
	}
	return "plain"
}

// styleSpec parameterizes factor rendering. An empty div means negative
// exponents are shown instead of a division sign.
type styleSpec struct {
	mul   string
	div   string
	group string // wrapper for a multi-factor denominator, contains %s
	base  func(string) string
	exp   func(Ratio) string
}

func plainBase(s string) string { return s }

func plainExp(r Ratio) string {
	if r.IsInt() {
		return r.String()
	}
	return "(" + r.String() + ")"
}

var styleSpecs = map[Style]styleSpec{
	StylePlain: {
		mul: "*", div: "/", group: "(%s)",
		base: plainBase, exp: plainExp,
	},
	StyleModelica: {
		mul: ".", div: "/", group: "(%s)",
		base: plainBase, exp: plainExp,
	},
	StyleHTML: {
		mul:  "&nbsp;",
		base: plainBase,
		exp:  func(r Ratio) string { return "<sup>" + r.String() + "</sup>" },
	},
	StyleLaTeX: {
		mul:  `\,`,
		base: func(s string) string { return `\mathrm{` + s + `}` },
		exp: func(r Ratio) string {
			if r.IsInt() && r.Int() >= 0 {
				return "^" + r.String()
			}
			return "^{" + r.String() + "}"
		},
	},
	StyleUnicode: {
		mul:  " ",
		base: plainBase,
		exp:  superscript,
	},
}

// Special symbol spellings in the marked-up styles.
var unitReplacements = map[Style]*strings.Replacer{
	StyleLaTeX:   strings.NewReplacer("deg", `^{\circ}`, "ohm", `\Omega`, "angstrom", `\AA`),
	StyleUnicode: strings.NewReplacer("deg", "°", "ohm", "Ω", "angstrom", "Å"),
}

// Format renders the factor set in the given style, symbols ordered by
// descending exponent magnitude then alphabetically. Exponent 1 is omitted.
func (e Exponents) Format(st Style) string {
	if len(e) == 0 {
		return ""
	}
	spec := styleSpecs[st]

	var num, den []string
	for _, sym := range e.sortedSymbols() {
		exp := e[sym]
		base := spec.base(sym)
		switch {
		case exp == RInt(1):
			num = append(num, base)
		case exp.Cmp(Ratio{}) > 0:
			num = append(num, base+spec.exp(exp))
		case exp == RInt(-1) && spec.div != "":
			den = append(den, base)
		case spec.div != "":
			den = append(den, base+spec.exp(exp.Abs()))
		default:
			// Negative exponent shown directly.
			num = append(num, base+spec.exp(exp))
		}
	}

	var out string
	switch {
	case spec.div == "" || len(den) == 0:
		all := append(num, den...)
		out = strings.Join(all, spec.mul)
	default:
		numStr := strings.Join(num, spec.mul)
		if numStr == "" {
			numStr = "1"
		}
		denStr := strings.Join(den, spec.mul)
		if len(den) > 1 {
			denStr = fmt.Sprintf(spec.group, denStr)
		}
		out = numStr + spec.div + denStr
	}

	if rpl, ok := unitReplacements[st]; ok {
		out = rpl.Replace(out)
	}
	return out
}

// superscript renders an exponent with Unicode superscript digits.
// Non-integer exponents have no Unicode spelling and fall back to "^(p/q)".
func superscript(r Ratio) string {
	if !r.IsInt() {
		return "^(" + r.String() + ")"
	}
	return str2super(r.String())
}

var superDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

func str2super(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c == '-':
			b.WriteRune('⁻')
		case c >= '0' && c <= '9':
			b.WriteRune(superDigits[c-'0'])
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// formatScientific rewrites Go's 'e' notation in a numeric string for the
// marked-up styles, e.g. "1.5e+06" becomes "1.5×10⁶" in Unicode.
func formatScientific(numStr string, st Style) string {
	base, exp, ok := strings.Cut(strings.ReplaceAll(numStr, "E", "e"), "e")
	if !ok {
		return numStr
	}
	exp = strings.TrimPrefix(exp, "+")
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(exp, "-"), "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	switch st {
	case StyleHTML:
		return base + "&times;10<sup>" + exp + "</sup>"
	case StyleLaTeX:
		return base + ` \times 10^{` + exp + `}`
	case StyleUnicode:
		return base + "×10" + str2super(exp)
	}
	return numStr
}

// times is the separator between a number and its unit string.
func times(st Style) string {
	switch st {
	case StyleHTML:
		return "&nbsp;"
	case StyleLaTeX:
		return `\,`
	}
	return " "
}
