package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorcore/internal/domain"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObserveRun("full_sync", 2*time.Second, nil)
	r.ObserveRun("full_sync", time.Second, errors.New("db down"))
	r.ObserveSync(domain.EntityPost, &domain.SourceSyncResult{SourceKey: "a", Cursor: 120, Inserted: 3, Updated: 2, Error: "boom"})
	r.ObserveSweep("pending", domain.SweepResult{Eligible: 4, Failed: 1, NewCreators: 2})
	r.ObserveClassification(&domain.ClassificationResult{SearchCalls: 3, BySource: map[string]int{"heuristic": 5}})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runsTotal.WithLabelValues("full_sync", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.recordsTotal.WithLabelValues("post", "a", "inserted")))
	assert.Equal(t, 120.0, testutil.ToFloat64(r.cursorPosition.WithLabelValues("post", "a")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sourceErrors.WithLabelValues("post", "a")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.sweepTotal.WithLabelValues("pending", "eligible")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.newCreators))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.classifications.WithLabelValues("heuristic")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.searchCalls))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "creatorcore_sync_records_total")
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRun("x", time.Second, nil)
		r.ObserveSync(domain.EntityCampaign, &domain.SourceSyncResult{})
		r.ObserveSweep("x", domain.SweepResult{})
		r.ObserveClassification(&domain.ClassificationResult{})
	})
}
