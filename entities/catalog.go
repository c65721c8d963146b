package entities

import "time"

// CatalogTreatment is an upstream attribute estimate for one treatment of
// one disease. Nil attributes are left for the optimizer to default.
type CatalogTreatment struct {
	EntryID         uint      `gorm:"primaryKey" json:"entry_id"`
	Disease         string    `gorm:"index;uniqueIndex:idx_catalog_disease_name" json:"disease"`
	Name            string    `gorm:"uniqueIndex:idx_catalog_disease_name" json:"name"`
	Category        string    `json:"category"`
	Effectiveness   *float64  `json:"effectiveness"`
	Cost            *float64  `json:"cost"`
	SideEffects     *float64  `json:"side_effects"`
	PreventionValue *float64  `json:"prevention_value"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
