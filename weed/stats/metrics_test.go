package stats

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	DigestBytesCounter.Add(3)
	DigestCounter.WithLabelValues(DigestSuccess).Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "md5stream_digest_bytes_total")
	assert.Contains(t, body, `md5stream_digest_sources_total{result="success"}`)
}

func TestDigestCounter(t *testing.T) {
	before := testutil.ToFloat64(DigestCounter.WithLabelValues(DigestReadError))
	DigestCounter.WithLabelValues(DigestReadError).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(DigestCounter.WithLabelValues(DigestReadError)))
}
