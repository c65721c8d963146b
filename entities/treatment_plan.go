package entities

import (
	"encoding/json"
	"time"
)

// TreatmentPlan is a plan the user chose to follow. Schedule is the
// generator's day-by-day JSON, stored opaque.
type TreatmentPlan struct {
	PlanID             uint            `gorm:"primaryKey" json:"id"`
	UserID             string          `gorm:"index" json:"user_id"`
	Disease            string          `json:"disease"`
	Severity           string          `json:"severity"`
	TreatmentType      string          `json:"treatment_type"` // medicine|organic
	Strategy           string          `json:"strategy,omitempty"`
	RunID              *uint           `gorm:"index" json:"run_id,omitempty"`
	Duration           int             `json:"duration"`
	Schedule           json.RawMessage `gorm:"type:text" json:"schedule"`
	Medicines          json.RawMessage `gorm:"type:text" json:"medicines"`
	NaturalTreatments  json.RawMessage `gorm:"type:text" json:"natural_treatments"`
	PreventiveMeasures json.RawMessage `gorm:"type:text" json:"preventive_measures"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type TreatmentTask struct {
	TaskID      uint       `gorm:"primaryKey" json:"task_id"`
	PlanID      uint       `gorm:"uniqueIndex:idx_task_slot" json:"plan_id"`
	DayNumber   int        `gorm:"uniqueIndex:idx_task_slot" json:"day_number"`
	TaskIndex   int        `gorm:"uniqueIndex:idx_task_slot" json:"task_index"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}
