package service

import (
	"context"
	"io"

	"agrieye/entities"
	"agrieye/pkg/catalog"
	"agrieye/pkg/optimize/types"
	"agrieye/pkg/optimizer"
)

type ImportReport struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
}

type CatalogService interface {
	Import(disease string, f catalog.Format, r io.Reader, source string) (*ImportReport, error)
	ImportURL(ctx context.Context, disease, url string) (*ImportReport, error)
	List(disease string) ([]entities.CatalogTreatment, error)
	Diseases() ([]string, error)
	Delete(disease string) (int64, error)
	Optimize(uid, disease string, severity types.Severity) (*optimizer.Result, *entities.OptimizationRun, error)
}
