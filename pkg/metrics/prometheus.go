package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agrieye/pkg/optimizer"
)

// Recorder holds the optimizer service metrics. A nil *Recorder is a no-op.
type Recorder struct {
	reg *prometheus.Registry

	RunsTotal       *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	PlanSize        *prometheus.HistogramVec
	CatalogImported *prometheus.CounterVec
}

// New registers the metrics on a private registry so tests can build as
// many recorders as they like.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		RunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optimizer_runs_total",
				Help: "Optimizer invocations by outcome",
			},
			[]string{"status"},
		),
		RunDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "optimizer_run_duration_seconds",
				Help:    "Wall time of one three-strategy optimization",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
		PlanSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "optimizer_plan_size",
				Help:    "Treatments selected per plan",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
			[]string{"strategy"},
		),
		CatalogImported: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_rows_imported_total",
				Help: "Catalog rows imported by source format",
			},
			[]string{"format"},
		),
	}
}

func (r *Recorder) ObserveRun(status string, d time.Duration, res *optimizer.Result) {
	if r == nil {
		return
	}
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(d.Seconds())
	if res == nil {
		return
	}
	for _, s := range optimizer.AllStrategies {
		r.PlanSize.WithLabelValues(s.String()).Observe(float64(len(res.Strategies.Get(s).Details)))
	}
}

func (r *Recorder) ObserveImport(format string, rows int) {
	if r == nil {
		return
	}
	r.CatalogImported.WithLabelValues(format).Add(float64(rows))
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
