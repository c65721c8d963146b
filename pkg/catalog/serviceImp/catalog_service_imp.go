package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"agrieye/entities"
	"agrieye/pkg/catalog"
	"agrieye/pkg/catalog/repository"
	"agrieye/pkg/catalog/service"
	"agrieye/pkg/metrics"
	optsvc "agrieye/pkg/optimize/service"
	"agrieye/pkg/optimize/types"
	"agrieye/pkg/optimizer"
)

var ErrEmptyCatalog = errors.New("no catalog entries for disease")

type CatalogSvc struct {
	repo    repository.CatalogRepository
	fetch   *catalog.Fetcher
	opt     optsvc.OptimizeService
	log     *zap.Logger
	metrics *metrics.Recorder
}

func New(repo repository.CatalogRepository, fetch *catalog.Fetcher, opt optsvc.OptimizeService, log *zap.Logger, m *metrics.Recorder) *CatalogSvc {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogSvc{repo: repo, fetch: fetch, opt: opt, log: log.Named("catalog"), metrics: m}
}

var _ service.CatalogService = (*CatalogSvc)(nil)

// DiseaseKey folds case and spacing so "Late Blight" and "late_blight" match.
func DiseaseKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

func (s *CatalogSvc) Import(disease string, f catalog.Format, r io.Reader, source string) (*service.ImportReport, error) {
	rows, err := catalog.Parse(f, r)
	if err != nil {
		return nil, err
	}
	fallback := DiseaseKey(disease)
	rep := &service.ImportReport{}
	keep := make([]entities.CatalogTreatment, 0, len(rows))
	// a later row for the same disease and name wins
	seen := map[[2]string]int{}
	for _, row := range rows {
		row.Disease = DiseaseKey(row.Disease)
		if row.Disease == "" {
			row.Disease = fallback
		}
		if row.Disease == "" {
			rep.Skipped = append(rep.Skipped, row.Name+": no disease")
			continue
		}
		cat, err := optimizer.ParseCategory(row.Category)
		if err != nil {
			rep.Skipped = append(rep.Skipped, row.Name+": "+err.Error())
			continue
		}
		row.Category = string(cat)
		row.Source = source
		k := [2]string{row.Disease, row.Name}
		if i, ok := seen[k]; ok {
			keep[i] = row
			continue
		}
		seen[k] = len(keep)
		keep = append(keep, row)
	}
	if err := s.repo.Upsert(keep); err != nil {
		return nil, fmt.Errorf("store catalog: %w", err)
	}
	rep.Imported = len(keep)
	s.metrics.ObserveImport(string(f), rep.Imported)
	s.log.Info("catalog import",
		zap.String("disease", fallback),
		zap.String("format", string(f)),
		zap.String("source", source),
		zap.Int("imported", rep.Imported),
		zap.Int("skipped", len(rep.Skipped)),
	)
	return rep, nil
}

func (s *CatalogSvc) ImportURL(ctx context.Context, disease, url string) (*service.ImportReport, error) {
	if s.fetch == nil {
		return nil, catalog.ErrDomainNotAllowed
	}
	f, body, err := s.fetch.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.Import(disease, f, body, url)
}

func (s *CatalogSvc) List(disease string) ([]entities.CatalogTreatment, error) {
	return s.repo.ListByDisease(DiseaseKey(disease))
}

func (s *CatalogSvc) Diseases() ([]string, error) { return s.repo.Diseases() }

func (s *CatalogSvc) Delete(disease string) (int64, error) {
	return s.repo.DeleteDisease(DiseaseKey(disease))
}

// Optimize hands the stored estimates to the optimizer as-is; the
// optimizer does its own defaulting and clamping.
func (s *CatalogSvc) Optimize(uid, disease string, severity types.Severity) (*optimizer.Result, *entities.OptimizationRun, error) {
	key := DiseaseKey(disease)
	rows, err := s.repo.ListByDisease(key)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, key)
	}
	inputs := make([]optimizer.Input, len(rows))
	for i, r := range rows {
		inputs[i] = optimizer.Input{
			ID:              fmt.Sprintf("CAT_%d", r.EntryID),
			Name:            r.Name,
			Category:        r.Category,
			Effectiveness:   r.Effectiveness,
			Cost:            r.Cost,
			SideEffects:     r.SideEffects,
			PreventionValue: r.PreventionValue,
		}
	}
	return s.opt.Optimize(types.OptimizeRequest{
		UserID:     uid,
		Disease:    key,
		Severity:   severity,
		Treatments: inputs,
	})
}
