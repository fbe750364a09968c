package units

import "strconv"

// Format renders q as a number times a unit string, e.g. "1 J" or
// "9.81 m/s2", using the default precision (shortest round-trip form).
func (r *Registry) Format(q Quantity, style Style) string {
	return r.FormatPrecision(q, style, -1)
}

// FormatPrecision renders q in the given style. prec is the number of
// significant digits handed to strconv ('g' format); -1 selects the
// shortest representation that round-trips. The display unit is chosen in
// this order:
//
//  1. q's own display vector, simplified, when its dimension matches
//  2. the coherent display-unit search over the registered units
//  3. the raw base-dimension symbols
func (r *Registry) FormatPrecision(q Quantity, style Style, prec int) string {
	display, unitValue := r.chooseDisplay(q)

	number := q.Value()
	if unitValue != 0 {
		number = q.Value() / unitValue
	}
	numStr := formatScientific(strconv.FormatFloat(number, 'g', prec, 64), style)

	unitStr := display.Format(style)
	if unitStr == "" {
		return numStr
	}
	return numStr + times(style) + unitStr
}

// chooseDisplay picks the display vector for q and the value of one of
// that display unit. A zero unit value tells the caller the display is the
// raw dimension vector (no registered combination reproduces it).
func (r *Registry) chooseDisplay(q Quantity) (Exponents, float64) {
	if disp := q.Display(); !disp.Empty() {
		if uq, err := r.Evaluate(disp); err == nil && uq.Dimension().Equal(q.Dimension()) {
			if simplified := r.Simplify(disp); !simplified.Equal(disp) {
				if sq, err := r.Evaluate(simplified); err == nil {
					return simplified, sq.Value()
				}
			}
			return disp, uq.Value()
		}
	}

	if q.IsDimensionless() {
		return Exponents{}, 1
	}

	if combo, ok := r.DisplayFor(q.Dimension()); ok {
		if uq, err := r.Evaluate(combo); err == nil {
			return combo, uq.Value()
		}
	}

	// Fall back to the base-dimension symbols; the value is already
	// expressed in them.
	return q.Dimension(), 0
}
