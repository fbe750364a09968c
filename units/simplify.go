package units

// Coherent simplification and the display-unit search.
//
// Simplify minimizes the L1 norm of a display-unit vector (the sum of the
// absolute exponents) by substituting coherent relations recorded during
// loading. This is L1 minimization without a closed form; like the search
// it replaces, it is a bounded greedy substitution that will miss
// simplifications requiring the representation to first grow beyond the
// recursion budget.

// Simplify returns a simpler representation of the display-unit vector u,
// or u itself when no substitution lowers its complexity.
func (r *Registry) Simplify(u Exponents) Exponents {
	return r.simplify(u, r.simplifyLevel)
}

func (r *Registry) simplify(u Exponents, level int) Exponents {
	if level == 0 || u.complexity() <= 1 {
		return u
	}

	for simpler := true; simpler; {
		simpler = false
		for _, identity := range r.coherent {
			common := commonSymbols(identity, u)
			if 2*len(common) < len(identity)-1 {
				// The relation shares too few factors to pay off.
				continue
			}
			for _, sym := range common {
				ratio := u[sym].Div(identity[sym])
				if !ratio.IsInt() || ratio.IsZero() {
					continue
				}
				n := ratio.Int()
				candidate := u.Div(identity.Pow(RInt(n)))
				if level > 1 {
					candidate = r.simplify(candidate, level-1)
				}
				if candidate.complexity() < u.complexity() {
					u = candidate
					simpler = true
					break
				}
			}
		}
	}
	return u
}

func commonSymbols(a, b Exponents) []string {
	var out []string
	for _, sym := range a.sortedSymbols() {
		if _, ok := b[sym]; ok {
			out = append(out, sym)
		}
	}
	return out
}

// displaySearchExponents is the exponent scan order of the display-unit
// search: small magnitudes first, positive before negative.
var displaySearchExponents = []int64{1, -1, 2, -2, 3, -3}

// DisplayFor searches the registered scalar units for a combination whose
// dimension vectors reconstruct dim exactly. Combinations with fewer
// distinct symbols win; ties go to earlier-defined units. Single units are
// tried with integer exponents up to ±3, then pairs. The second return is
// false when no combination reproduces the dimension, in which case the
// caller renders the raw base-dimension symbols.
func (r *Registry) DisplayFor(dim Exponents) (Exponents, bool) {
	if dim.Empty() {
		return Exponents{}, true
	}

	type candidate struct {
		name string
		dim  Exponents
	}
	var cands []candidate
	for _, name := range r.names {
		if u, ok := r.symbols[name].(*ScalarUnit); ok {
			d := u.Dimension()
			if !d.Empty() {
				cands = append(cands, candidate{name: name, dim: d})
			}
		}
	}

	// Single units.
	for _, c := range cands {
		for _, k := range displaySearchExponents {
			if c.dim.Pow(RInt(k)).Equal(dim) {
				return Exponents{c.name: RInt(k)}, true
			}
		}
	}

	// Pairs of distinct units.
	for i, ci := range cands {
		for _, a := range displaySearchExponents {
			partial := dim.Div(ci.dim.Pow(RInt(a)))
			for j, cj := range cands {
				if i == j {
					continue
				}
				for _, b := range displaySearchExponents {
					if cj.dim.Pow(RInt(b)).Equal(partial) {
						return Exponents{ci.name: RInt(a), cj.name: RInt(b)}, true
					}
				}
			}
		}
	}

	return nil, false
}
