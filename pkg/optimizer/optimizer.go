// Package optimizer ranks crop treatments under three fixed strategies and
// bundles the winners into comparable plans.
//
// Everything here is a pure function of its inputs apart from the
// timestamp in Result.Meta, so an *Optimizer may be shared freely across
// goroutines.
package optimizer

import (
	"time"
)

const Engine = "Fuzzy Logic Multi-Objective Optimizer"

type Config struct {
	Defaults        Defaults
	CategoryDefault map[Category]Defaults
	DefaultSeverity float64
	// Now stamps Result.Meta; it never feeds a decision.
	Now func() time.Time
}

func DefaultConfig() Config {
	return Config{
		Defaults:        DefaultDefaults(),
		DefaultSeverity: 0.5,
		Now:             time.Now,
	}
}

type Optimizer struct {
	norm Normalizer
	now  func() time.Time
}

func New(cfg Config) *Optimizer {
	builtin := DefaultConfig()
	base := cfg.Defaults.clamped(builtin.Defaults)
	per := make(map[Category]Defaults, len(cfg.CategoryDefault))
	for c, d := range cfg.CategoryDefault {
		per[c] = d.clamped(base)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Optimizer{
		norm: Normalizer{Base: base, PerCategory: per, DefaultSeverity: clampOr(cfg.DefaultSeverity, builtin.DefaultSeverity)},
		now:  now,
	}
}

var defaultOptimizer = New(DefaultConfig())

// OptimizeAll runs the package default optimizer.
func OptimizeAll(inputs []Input, severity float64) (*Result, error) {
	return defaultOptimizer.OptimizeAll(inputs, severity)
}

// Normalizer exposes the configured normalizer.
func (o *Optimizer) Normalizer() Normalizer { return o.norm }

// OptimizeAll normalizes inputs once and builds one plan per strategy.
// The only error is a wrapped ErrInvalidInput.
func (o *Optimizer) OptimizeAll(inputs []Input, severity float64) (*Result, error) {
	treatments, err := o.norm.Treatments(inputs)
	if err != nil {
		return nil, err
	}
	sev := o.norm.Severity(severity)

	res := &Result{
		Status: "success",
		Meta:   Meta{Engine: Engine, Timestamp: o.now().UTC().Format(time.RFC3339Nano)},
	}
	for _, s := range AllStrategies {
		*res.Strategies.Get(s) = o.plan(treatments, s, sev)
	}
	res.OptimalPlan = append([]string{}, res.Strategies.Balanced.Treatments...)
	return res, nil
}

// Optimize builds the plan for a single strategy.
func (o *Optimizer) Optimize(inputs []Input, s Strategy, severity float64) (Plan, error) {
	treatments, err := o.norm.Treatments(inputs)
	if err != nil {
		return Plan{}, err
	}
	return o.plan(treatments, s, o.norm.Severity(severity)), nil
}

func (o *Optimizer) plan(ts []Treatment, s Strategy, severity float64) Plan {
	selected := Select(Rank(ts, s, severity), s, severity)
	ids := make([]string, len(selected))
	for i, t := range selected {
		ids[i] = t.ID
	}
	return Plan{
		Strategy:   s,
		Treatments: ids,
		Details:    selected,
		Metrics:    Aggregate(selected),
	}
}
