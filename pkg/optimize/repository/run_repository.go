package repository

import "agrieye/entities"

type RunRepository interface {
	Create(r *entities.OptimizationRun) error
	ListByUser(uid string, limit int) ([]entities.OptimizationRun, error)
	FindByID(id uint, uid string) (*entities.OptimizationRun, error)
}
