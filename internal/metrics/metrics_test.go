package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordsOutcomes(t *testing.T) {
	c := New("siphon")

	c.JobStarted()
	c.JobStarted()
	assert.Equal(t, 2.0, testutil.ToFloat64(c.inProgress))

	c.JobFinished("success", 2*time.Second, 4096)
	c.JobFinished("extraction", time.Second, 0)
	c.JobRejected()

	assert.Equal(t, 0.0, testutil.ToFloat64(c.inProgress))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.downloadsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.downloadsTotal.WithLabelValues("extraction")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.downloadsTotal.WithLabelValues("validation")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.fileSizeBytes))
}

func TestCollector_Handler(t *testing.T) {
	c := New("siphon")
	c.JobStarted()
	c.JobFinished("success", time.Second, 1024)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `siphon_downloads_total{outcome="success"} 1`)
	assert.Contains(t, body, "siphon_download_duration_seconds_count 1")
	assert.Contains(t, body, "siphon_download_file_size_bytes_sum 1024")
}

// Separate collectors must not collide, as each owns its own registry.
func TestCollector_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("siphon")
		New("siphon")
	})
}
