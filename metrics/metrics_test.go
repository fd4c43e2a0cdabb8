package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGeneration(OutcomeSuccess)
	c.RecordGeneration(OutcomeSuccess)
	c.RecordGeneration(OutcomeUpstreamError)
	c.RecordUpstreamStatus(200)
	c.RecordUpstreamStatus(502)
	c.RecordDeletion(true)
	c.RecordDeletion(false)
	c.RecordDeletion(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.generations.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.generations.WithLabelValues(OutcomeUpstreamError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstreamStatus.WithLabelValues("502")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.deletions.WithLabelValues("false")))
}

func TestCollector_Latency(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamLatency(300 * time.Millisecond)
	c.RecordUpstreamLatency(2 * time.Second)

	assert.Equal(t, 1, testutil.CollectAndCount(c.upstreamLatency))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordGeneration(OutcomeSuccess)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tweetgen_generations_total{outcome="success"} 1`)
}

func TestNop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordGeneration(OutcomeSuccess)
	r.RecordUpstreamStatus(0)
	r.RecordUpstreamLatency(time.Second)
	r.RecordDeletion(true)
}
