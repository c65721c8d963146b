package repositoryImp

import (
	"gorm.io/gorm"

	"agrieye/entities"
	"agrieye/pkg/optimize/repository"
)

type runRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RunRepository { return &runRepo{db} }

func (r *runRepo) Create(run *entities.OptimizationRun) error { return r.db.Create(run).Error }

func (r *runRepo) ListByUser(uid string, limit int) ([]entities.OptimizationRun, error) {
	var out []entities.OptimizationRun
	q := r.db.Where("user_id = ?", uid).Order("created_at DESC, run_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *runRepo) FindByID(id uint, uid string) (*entities.OptimizationRun, error) {
	var run entities.OptimizationRun
	if err := r.db.Where("run_id = ? AND user_id = ?", id, uid).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
