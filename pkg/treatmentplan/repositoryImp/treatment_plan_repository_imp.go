package repositoryImp

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agrieye/entities"
	"agrieye/pkg/treatmentplan/repository"
)

type planRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) repository.TreatmentPlanRepository { return &planRepo{db: db, now: time.Now} }

func (r *planRepo) Create(p *entities.TreatmentPlan) error { return r.db.Create(p).Error }

func (r *planRepo) ListByUser(uid string) ([]entities.TreatmentPlan, error) {
	var ps []entities.TreatmentPlan
	if err := r.db.Where("user_id = ?", uid).Order("created_at DESC, plan_id DESC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *planRepo) FindByID(id uint, uid string) (*entities.TreatmentPlan, error) {
	var p entities.TreatmentPlan
	if err := r.db.Where("plan_id = ? AND user_id = ?", id, uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) Delete(id uint, uid string) (int64, error) {
	var n int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("plan_id = ? AND user_id = ?", id, uid).Delete(&entities.TreatmentPlan{})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		if n == 0 {
			return nil
		}
		return tx.Where("plan_id = ?", id).Delete(&entities.TreatmentTask{}).Error
	})
	return n, err
}

func (r *planRepo) Tasks(planID uint) ([]entities.TreatmentTask, error) {
	var ts []entities.TreatmentTask
	if err := r.db.Where("plan_id = ?", planID).Order("day_number ASC, task_index ASC").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *planRepo) SetTask(planID uint, day, index int, completed bool) error {
	t := entities.TreatmentTask{PlanID: planID, DayNumber: day, TaskIndex: index, Completed: completed}
	if completed {
		at := r.now().UTC()
		t.CompletedAt = &at
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plan_id"}, {Name: "day_number"}, {Name: "task_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at"}),
	}).Create(&t).Error
}
