package optimizer

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Defaults are substituted for missing or non-finite attributes.
type Defaults struct {
	Effectiveness   float64 `json:"effectiveness" yaml:"effectiveness"`
	Cost            float64 `json:"cost" yaml:"cost"`
	SideEffects     float64 `json:"side_effects" yaml:"side_effects"`
	PreventionValue float64 `json:"prevention_value" yaml:"prevention_value"`
}

func DefaultDefaults() Defaults {
	return Defaults{Effectiveness: 0.5, Cost: 0.5, SideEffects: 0.1, PreventionValue: 0.0}
}

// Validate reports the first attribute outside [0,1] or not finite.
func (d Defaults) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"effectiveness", d.Effectiveness},
		{"cost", d.Cost},
		{"side_effects", d.SideEffects},
		{"prevention_value", d.PreventionValue},
	} {
		if !unitValue(f.v) {
			return fmt.Errorf("default %s must be within [0,1], got %v", f.name, f.v)
		}
	}
	return nil
}

// clamped forces every attribute into [0,1]; non-finite ones take fb.
func (d Defaults) clamped(fb Defaults) Defaults {
	return Defaults{
		Effectiveness:   clampOr(d.Effectiveness, fb.Effectiveness),
		Cost:            clampOr(d.Cost, fb.Cost),
		SideEffects:     clampOr(d.SideEffects, fb.SideEffects),
		PreventionValue: clampOr(d.PreventionValue, fb.PreventionValue),
	}
}

func unitValue(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func clampOr(v, fb float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fb
	}
	return math.Max(0, math.Min(1, v))
}

// idSpace seeds the name-based ids handed to anonymous treatments.
var idSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("agrieye/optimizer/treatment"))

// Normalizer turns caller inputs into range-checked Treatments.
type Normalizer struct {
	Base            Defaults
	PerCategory     map[Category]Defaults
	DefaultSeverity float64
}

func (n Normalizer) defaultsFor(c Category) Defaults {
	if d, ok := n.PerCategory[c]; ok {
		return d
	}
	return n.Base
}

// Normalize clamps v into [0,1]; NaN and ±Inf become def.
func (n Normalizer) Normalize(v, def float64) float64 {
	return clampOr(v, def)
}

func (n Normalizer) attr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return n.Normalize(*v, def)
}

// Severity normalizes the severity scalar the same way as attributes.
func (n Normalizer) Severity(v float64) float64 {
	return n.Normalize(v, n.DefaultSeverity)
}

// Treatments validates and normalizes inputs into a fresh slice. The
// caller's slice is never written to.
func (n Normalizer) Treatments(inputs []Input) ([]Treatment, error) {
	out := make([]Treatment, 0, len(inputs))
	taken := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != "" {
			taken[in.ID] = true
		}
	}
	for i, in := range inputs {
		cat, err := ParseCategory(in.Category)
		if err != nil {
			return nil, &ValidationError{Index: i, Reason: err.Error()}
		}
		d := n.defaultsFor(cat)
		id := in.ID
		if id == "" {
			id = fallbackID(in.Name, i, cat, taken)
			taken[id] = true
		}
		out = append(out, Treatment{
			ID:              id,
			Name:            in.Name,
			Category:        cat,
			Effectiveness:   n.attr(in.Effectiveness, d.Effectiveness),
			Cost:            n.attr(in.Cost, d.Cost),
			SideEffects:     n.attr(in.SideEffects, d.SideEffects),
			PreventionValue: n.attr(in.PreventionValue, d.PreventionValue),
		})
	}
	return out, nil
}

// fallbackID derives an id for an input without one: the name, then
// name#index when the name is taken, then a uuid v5 of index and category.
func fallbackID(name string, i int, cat Category, taken map[string]bool) string {
	if name != "" {
		if !taken[name] {
			return name
		}
		if id := fmt.Sprintf("%s#%d", name, i); !taken[id] {
			return id
		}
	}
	return uuid.NewSHA1(idSpace, []byte(fmt.Sprintf("%d/%s", i, cat))).String()
}
