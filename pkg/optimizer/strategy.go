package optimizer

import "fmt"

// Strategy is one of the fixed weighting-and-quota policies.
type Strategy int

const (
	Balanced Strategy = iota
	HighEffectiveness
	LowCost

	strategyCount
)

// AllStrategies is the order plans are computed in.
var AllStrategies = [strategyCount]Strategy{Balanced, HighEffectiveness, LowCost}

var strategyNames = [strategyCount]string{
	Balanced:          "balanced",
	HighEffectiveness: "high_effectiveness",
	LowCost:           "low_cost",
}

func (s Strategy) String() string {
	if s < 0 || s >= strategyCount {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

func (s Strategy) MarshalText() ([]byte, error) {
	if s < 0 || s >= strategyCount {
		return nil, fmt.Errorf("unknown strategy %d", int(s))
	}
	return []byte(strategyNames[s]), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// weights of the three objectives. Exponents below 1 pull a [0,1] value
// toward 1 and amplify that axis.
type weights struct {
	Effectiveness float64
	EffExponent   float64
	Cost          float64
	CostExponent  float64
	Safety        float64
}

type selectMode int

const (
	// seed one best member per category, then fill by global score.
	selectSeeded selectMode = iota
	// naturals and preventions first, one chemical only past the gate.
	selectEconomy
)

type policy struct {
	Weights weights

	// SeverityBonus is added when severity exceeds BonusAbove.
	SeverityBonus float64
	BonusAbove    float64

	Mode  selectMode
	Limit int
	// Caps bounds members per category; a missing entry means unbounded.
	Caps map[Category]int
	// ChemicalAbove gates the economy chemical on severity.
	ChemicalAbove float64
}

const (
	// Maximum-effectiveness plans are terser and chemical-forward.
	highEffectivenessLimit = 4
	balancedLimit          = 5
	lowCostLimit           = 5

	highEffectivenessBonus      = 0.2
	highEffectivenessBonusAbove = 0.7

	// low_cost keeps the 2+2 natural/prevention quota at any severity;
	// only the chemical slot reacts to severity.
	lowCostNaturalQuota    = 2
	lowCostPreventionQuota = 2
	lowCostChemicalAbove   = 0.6
)

var policies = [strategyCount]policy{
	Balanced: {
		Weights: weights{Effectiveness: 0.45, EffExponent: 1, Cost: 0.35, CostExponent: 1, Safety: 0.2},
		Mode:    selectSeeded,
		Limit:   balancedLimit,
	},
	HighEffectiveness: {
		Weights:       weights{Effectiveness: 0.7, EffExponent: 0.5, Cost: 0.2, CostExponent: 1, Safety: 0.1},
		SeverityBonus: highEffectivenessBonus,
		BonusAbove:    highEffectivenessBonusAbove,
		Mode:          selectSeeded,
		Limit:         highEffectivenessLimit,
		Caps:          map[Category]int{Chemical: 2, Natural: 1, Prevention: 1},
	},
	LowCost: {
		Weights:       weights{Effectiveness: 0.3, EffExponent: 1, Cost: 0.6, CostExponent: 0.3, Safety: 0.1},
		Mode:          selectEconomy,
		Limit:         lowCostLimit,
		Caps:          map[Category]int{Natural: lowCostNaturalQuota, Prevention: lowCostPreventionQuota, Chemical: 1},
		ChemicalAbove: lowCostChemicalAbove,
	},
}

func policyFor(s Strategy) policy {
	if s < 0 || s >= strategyCount {
		return policies[Balanced]
	}
	return policies[s]
}
