package service

import (
	"agrieye/entities"
	"agrieye/pkg/optimize/types"
	"agrieye/pkg/optimizer"
)

type OptimizeService interface {
	// Optimize runs the optimizer; run is nil when persistence is off.
	Optimize(req types.OptimizeRequest) (res *optimizer.Result, run *entities.OptimizationRun, err error)
	Runs(uid string, limit int) ([]entities.OptimizationRun, error)
	Run(id uint, uid string) (*entities.OptimizationRun, *optimizer.Result, error)
}
