package serviceImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"agrieye/entities"
	"agrieye/pkg/metrics"
	"agrieye/pkg/optimize/repository"
	"agrieye/pkg/optimize/types"
	"agrieye/pkg/optimizer"
)

// ErrHistoryDisabled is returned by run lookups when no repository is wired.
var ErrHistoryDisabled = errors.New("optimization history is disabled")

type OptimizeSvc struct {
	opt     *optimizer.Optimizer
	runs    repository.RunRepository
	log     *zap.Logger
	metrics *metrics.Recorder
}

// NewOptimizeService wires the optimizer. runs may be nil to skip history.
func NewOptimizeService(opt *optimizer.Optimizer, runs repository.RunRepository, log *zap.Logger, m *metrics.Recorder) *OptimizeSvc {
	if log == nil {
		log = zap.NewNop()
	}
	return &OptimizeSvc{opt: opt, runs: runs, log: log.Named("optimize"), metrics: m}
}

func (s *OptimizeSvc) Optimize(req types.OptimizeRequest) (*optimizer.Result, *entities.OptimizationRun, error) {
	sev := math.NaN()
	if req.Severity.Valid {
		sev = req.Severity.Value
	}

	start := time.Now()
	res, err := s.opt.OptimizeAll(req.Treatments, sev)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveRun("invalid", elapsed, nil)
		s.log.Warn("rejected optimization input", zap.String("uid", req.UserID), zap.Error(err))
		return nil, nil, err
	}
	s.metrics.ObserveRun("ok", elapsed, res)
	s.log.Info("optimization complete",
		zap.String("uid", req.UserID),
		zap.String("disease", req.Disease),
		zap.Int("candidates", len(req.Treatments)),
		zap.Float64("severity", s.opt.Normalizer().Severity(sev)),
		zap.Strings("optimal_plan", res.OptimalPlan),
		zap.Duration("took", elapsed),
	)

	if s.runs == nil {
		return res, nil, nil
	}
	body, err := json.Marshal(res)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	run := &entities.OptimizationRun{
		UserID:      req.UserID,
		Disease:     req.Disease,
		Severity:    s.opt.Normalizer().Severity(sev),
		Candidates:  len(req.Treatments),
		Engine:      res.Meta.Engine,
		OptimalPlan: res.OptimalPlan,
		ResultJSON:  string(body),
	}
	if err := s.runs.Create(run); err != nil {
		// the result is still good; history is best effort
		s.log.Error("store optimization run", zap.Error(err))
		return res, nil, nil
	}
	return res, run, nil
}

func (s *OptimizeSvc) Runs(uid string, limit int) ([]entities.OptimizationRun, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.ListByUser(uid, limit)
}

func (s *OptimizeSvc) Run(id uint, uid string) (*entities.OptimizationRun, *optimizer.Result, error) {
	if s.runs == nil {
		return nil, nil, ErrHistoryDisabled
	}
	run, err := s.runs.FindByID(id, uid)
	if err != nil {
		return nil, nil, err
	}
	var res optimizer.Result
	if err := json.Unmarshal([]byte(run.ResultJSON), &res); err != nil {
		return nil, nil, fmt.Errorf("decode run %d: %w", id, err)
	}
	return run, &res, nil
}
