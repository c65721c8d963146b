package optimizer

// Aggregate averages the selected attributes. An empty selection yields
// explicit zeros rather than 0/0.
func Aggregate(selected []ScoredTreatment) Metrics {
	if len(selected) == 0 {
		return Metrics{}
	}
	var m Metrics
	for _, t := range selected {
		m.Effectiveness += t.Effectiveness
		m.Cost += t.Cost
		m.EnvironmentalImpact += t.SideEffects
	}
	n := float64(len(selected))
	m.Effectiveness /= n
	m.Cost /= n
	m.EnvironmentalImpact /= n
	return m
}
