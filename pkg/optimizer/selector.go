package optimizer

// Select picks the plan members for strategy s from candidates sorted
// descending by score. It never pads or duplicates: with fewer
// candidates than the limit it returns what exists.
func Select(sorted []ScoredTreatment, s Strategy, severity float64) []ScoredTreatment {
	p := policyFor(s)
	if p.Mode == selectEconomy {
		return pickEconomy(sorted, p, severity)
	}
	return pickSeeded(sorted, p)
}

// pickSeeded guarantees every non-empty category its best member before
// filling the remaining slots in global score order.
func pickSeeded(sorted []ScoredTreatment, p policy) []ScoredTreatment {
	out := make([]ScoredTreatment, 0, min(p.Limit, len(sorted)))
	taken := make([]bool, len(sorted))
	counts := make(map[Category]int, len(Categories))

	allowed := func(c Category) bool {
		limit, ok := p.Caps[c]
		return !ok || counts[c] < limit
	}
	take := func(i int) {
		taken[i] = true
		counts[sorted[i].Category]++
		out = append(out, sorted[i])
	}

	for _, c := range Categories {
		if len(out) >= p.Limit {
			break
		}
		if !allowed(c) {
			continue
		}
		for i := range sorted {
			if sorted[i].Category == c {
				take(i)
				break
			}
		}
	}

	for i := range sorted {
		if len(out) >= p.Limit {
			break
		}
		if taken[i] || !allowed(sorted[i].Category) {
			continue
		}
		take(i)
	}
	return out
}

// pickEconomy favours naturals and preventions; a single chemical joins
// only when severity passes the policy gate.
func pickEconomy(sorted []ScoredTreatment, p policy, severity float64) []ScoredTreatment {
	out := make([]ScoredTreatment, 0, min(p.Limit, len(sorted)))
	out = appendTop(out, sorted, Natural, p.Caps[Natural])
	out = appendTop(out, sorted, Prevention, p.Caps[Prevention])
	if severity > p.ChemicalAbove {
		out = appendTop(out, sorted, Chemical, p.Caps[Chemical])
	}
	if len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

// appendTop appends up to n best-scored members of category c.
func appendTop(dst, sorted []ScoredTreatment, c Category, n int) []ScoredTreatment {
	for i := range sorted {
		if n <= 0 {
			break
		}
		if sorted[i].Category == c {
			dst = append(dst, sorted[i])
			n--
		}
	}
	return dst
}
