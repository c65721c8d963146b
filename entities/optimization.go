package entities

import "time"

// OptimizationRun is one stored optimizer response.
type OptimizationRun struct {
	RunID       uint      `gorm:"primaryKey" json:"run_id"`
	UserID      string    `gorm:"index" json:"user_id"`
	Disease     string    `gorm:"index" json:"disease,omitempty"`
	Severity    float64   `json:"severity"`
	Candidates  int       `json:"candidates"`
	Engine      string    `json:"engine"`
	OptimalPlan []string  `gorm:"serializer:json" json:"optimal_plan"`
	ResultJSON  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
