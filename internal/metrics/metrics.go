// Package metrics exposes Prometheus counters for sync, sweep and classification runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"creatorcore/internal/domain"
)

const namespace = "creatorcore"

// Recorder is safe to use as a nil pointer; every method is then a no-op.
type Recorder struct {
	runsTotal       *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
	recordsTotal    *prometheus.CounterVec
	sourceErrors    *prometheus.CounterVec
	cursorPosition  *prometheus.GaugeVec
	sweepTotal      *prometheus.CounterVec
	newCreators     prometheus.Counter
	classifications *prometheus.CounterVec
	searchCalls     prometheus.Counter
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Completed job runs by outcome",
			},
			[]string{"job", "outcome"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Job run duration in seconds",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"job"},
		),
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_records_total",
				Help:      "Upstream records written by sync passes",
			},
			[]string{"entity", "source", "result"},
		),
		sourceErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_source_errors_total",
				Help:      "Sync passes aborted by an upstream failure",
			},
			[]string{"entity", "source"},
		),
		cursorPosition: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sync_cursor",
				Help:      "Last persisted cursor per entity and source",
			},
			[]string{"entity", "source"},
		),
		sweepTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_items_total",
				Help:      "Items handled by pending and discovery sweeps",
			},
			[]string{"sweep", "result"},
		),
		newCreators: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "new_creators_total",
				Help:      "Creator identities seen for the first time",
			},
		),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "genre_classifications_total",
				Help:      "Campaign genre classifications by label source",
			},
			[]string{"source"},
		),
		searchCalls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "genre_search_calls_total",
				Help:      "External search calls spent by classification runs",
			},
		),
	}

	reg.MustRegister(
		r.runsTotal,
		r.runDuration,
		r.recordsTotal,
		r.sourceErrors,
		r.cursorPosition,
		r.sweepTotal,
		r.newCreators,
		r.classifications,
		r.searchCalls,
	)
	return r
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveRun(job string, d time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.runsTotal.WithLabelValues(job, outcome).Inc()
	r.runDuration.WithLabelValues(job).Observe(d.Seconds())
}

func (r *Recorder) ObserveSync(entity domain.EntityType, res *domain.SourceSyncResult) {
	if r == nil || res == nil {
		return
	}
	e := string(entity)
	r.recordsTotal.WithLabelValues(e, res.SourceKey, "inserted").Add(float64(res.Inserted))
	r.recordsTotal.WithLabelValues(e, res.SourceKey, "updated").Add(float64(res.Updated))
	r.recordsTotal.WithLabelValues(e, res.SourceKey, "skipped").Add(float64(res.Skipped))
	r.cursorPosition.WithLabelValues(e, res.SourceKey).Set(float64(res.Cursor))
	if res.Error != "" {
		r.sourceErrors.WithLabelValues(e, res.SourceKey).Inc()
	}
}

func (r *Recorder) ObserveSweep(sweep string, res domain.SweepResult) {
	if r == nil {
		return
	}
	for result, n := range map[string]int{
		"eligible":      res.Eligible,
		"inserted":      res.Inserted,
		"updated":       res.Updated,
		"skipped":       res.Skipped,
		"failed":        res.Failed,
		"post_inserted": res.PostInserted,
		"post_updated":  res.PostUpdated,
		"post_failed":   res.PostFailed,
	} {
		r.sweepTotal.WithLabelValues(sweep, result).Add(float64(n))
	}
	r.newCreators.Add(float64(res.NewCreators))
}

func (r *Recorder) ObserveClassification(res *domain.ClassificationResult) {
	if r == nil || res == nil {
		return
	}
	for source, n := range res.BySource {
		r.classifications.WithLabelValues(source).Add(float64(n))
	}
	r.searchCalls.Add(float64(res.SearchCalls))
}
