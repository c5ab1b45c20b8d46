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
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordProviderCall("signup", nil)
	c.RecordProviderCall("signup", errors.New("boom"))
	c.RecordProviderCall("signup", errors.New("boom"))
	c.RecordPartialFailure("delete_user")
	c.RecordHTTPRequest(http.MethodGet, "/profile", http.StatusUnauthorized, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.providerCalls.WithLabelValues("signup", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.providerCalls.WithLabelValues("signup", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.partialFailures.WithLabelValues("delete_user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/profile", "401")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordPartialFailure("signup")

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `eventos_saga_partial_failures_total{operation="signup"} 1`)
}
