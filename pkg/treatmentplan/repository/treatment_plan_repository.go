package repository

import "agrieye/entities"

type TreatmentPlanRepository interface {
	Create(p *entities.TreatmentPlan) error
	ListByUser(uid string) ([]entities.TreatmentPlan, error)
	FindByID(id uint, uid string) (*entities.TreatmentPlan, error)
	// Delete removes the plan and its task marks; 0 rows means not found.
	Delete(id uint, uid string) (int64, error)
	Tasks(planID uint) ([]entities.TreatmentTask, error)
	SetTask(planID uint, day, index int, completed bool) error
}
