package repositoryImp

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agrieye/entities"
	"agrieye/pkg/catalog/repository"
)

type catalogRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CatalogRepository { return &catalogRepo{db} }

func (r *catalogRepo) Upsert(rows []entities.CatalogTreatment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "disease"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"category", "effectiveness", "cost", "side_effects", "prevention_value", "source", "updated_at",
		}),
	}).Create(&rows).Error
}

func (r *catalogRepo) ListByDisease(disease string) ([]entities.CatalogTreatment, error) {
	var out []entities.CatalogTreatment
	if err := r.db.Where("disease = ?", disease).Order("entry_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) Diseases() ([]string, error) {
	var out []string
	err := r.db.Model(&entities.CatalogTreatment{}).Distinct("disease").Order("disease ASC").Pluck("disease", &out).Error
	return out, err
}

func (r *catalogRepo) DeleteDisease(disease string) (int64, error) {
	res := r.db.Where("disease = ?", disease).Delete(&entities.CatalogTreatment{})
	return res.RowsAffected, res.Error
}
