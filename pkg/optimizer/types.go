package optimizer

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the treatment family a selector balances across.
type Category string

const (
	Chemical   Category = "chemical"
	Natural    Category = "natural"
	Prevention Category = "prevention"
)

// Categories lists every category in seeding order.
var Categories = []Category{Chemical, Natural, Prevention}

// ParseCategory accepts any casing and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Chemical, Natural, Prevention:
		return c, nil
	case "":
		return "", errors.New("missing category")
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// ErrInvalidInput is returned when the treatment list is structurally unusable.
var ErrInvalidInput = errors.New("invalid optimizer input")

// ValidationError points at the offending element.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("treatment[%d]: %s", e.Index, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Input is a treatment as supplied by the caller. Nil attributes take the
// configured defaults.
type Input struct {
	ID              string
	Name            string
	Category        string
	Effectiveness   *float64
	Cost            *float64
	SideEffects     *float64
	PreventionValue *float64
}

// Treatment is a normalized copy of an Input; every number lies in [0,1].
type Treatment struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	Effectiveness   float64  `json:"effectiveness"`
	Cost            float64  `json:"cost"`
	SideEffects     float64  `json:"side_effects"`
	PreventionValue float64  `json:"prevention_value"`
}

// Membership holds the fuzzy degrees of a treatment. Informational only.
type Membership struct {
	EffectivenessHigh float64 `json:"effectiveness_high"`
	CostLow           float64 `json:"cost_low"`
	SideEffectsLow    float64 `json:"side_effects_low"`
}

// ScoredTreatment is a Treatment ranked under one strategy. Scores are not
// comparable across strategies.
type ScoredTreatment struct {
	Treatment
	Score      float64    `json:"score"`
	Membership Membership `json:"membership"`
}

type Metrics struct {
	Effectiveness       float64 `json:"effectiveness"`
	Cost                float64 `json:"cost"`
	EnvironmentalImpact float64 `json:"environmental_impact"`
}

type Plan struct {
	Strategy   Strategy          `json:"strategy"`
	Treatments []string          `json:"treatments"`
	Details    []ScoredTreatment `json:"details"`
	Metrics    Metrics           `json:"metrics"`
}

type Strategies struct {
	Balanced          Plan `json:"balanced"`
	HighEffectiveness Plan `json:"high_effectiveness"`
	LowCost           Plan `json:"low_cost"`
}

// Get returns the plan produced for s.
func (ss *Strategies) Get(s Strategy) *Plan {
	switch s {
	case HighEffectiveness:
		return &ss.HighEffectiveness
	case LowCost:
		return &ss.LowCost
	default:
		return &ss.Balanced
	}
}

type Meta struct {
	Engine    string `json:"engine"`
	Timestamp string `json:"timestamp"`
}

// Result is the three-strategy comparison bundle.
type Result struct {
	Status      string     `json:"status"`
	OptimalPlan []string   `json:"optimal_plan"`
	Strategies  Strategies `json:"strategies"`
	Meta        Meta       `json:"meta"`
}
