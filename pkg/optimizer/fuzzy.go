package optimizer

import (
	"math"
	"sort"
)

// FuzzyHigh is a sigmoid membership favouring v above 0.5.
func FuzzyHigh(v float64) float64 {
	return 1 / (1 + math.Exp(-10*(v-0.5)))
}

// FuzzyLow is a sigmoid membership favouring v below 0.5.
func FuzzyLow(v float64) float64 {
	return 1 / (1 + math.Exp(10*(v-0.5)))
}

func Memberships(t Treatment) Membership {
	return Membership{
		EffectivenessHigh: FuzzyHigh(t.Effectiveness),
		CostLow:           FuzzyLow(t.Cost),
		SideEffectsLow:    FuzzyLow(t.SideEffects),
	}
}

// Score ranks t under strategy s; higher is preferred.
func Score(t Treatment, s Strategy, severity float64) float64 {
	p := policyFor(s)
	w := p.Weights

	eff := t.Effectiveness
	costScore := 1 - t.Cost
	safety := 1 - t.SideEffects

	score := w.Effectiveness*powUnit(eff, w.EffExponent) +
		w.Cost*powUnit(costScore, w.CostExponent) +
		w.Safety*safety

	if p.SeverityBonus != 0 && severity > p.BonusAbove {
		score += p.SeverityBonus
	}
	return score
}

// powUnit keeps exponent 1 exact instead of going through math.Pow.
func powUnit(v, exp float64) float64 {
	if exp == 1 {
		return v
	}
	return math.Pow(v, exp)
}

// Rank scores every treatment and sorts the result descending. Equal
// scores keep input order.
func Rank(ts []Treatment, s Strategy, severity float64) []ScoredTreatment {
	out := make([]ScoredTreatment, len(ts))
	for i, t := range ts {
		out[i] = ScoredTreatment{Treatment: t, Score: Score(t, s, severity), Membership: Memberships(t)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
