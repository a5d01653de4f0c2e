package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	m := NewMetrics()

	m.ObserveAnalysis("ok", 2*time.Second)
	m.ObserveAnalysis("ok", time.Second)
	m.ObserveAnalysis("not_found", time.Millisecond)
	m.ObserveSeriesSkipped("90d")
	m.ObserveIntent("tokenomics")
	m.ObserveIntent("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeriesSkipped.WithLabelValues("90d")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntentsTotal.WithLabelValues("tokenomics")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntentsTotal.WithLabelValues("generic")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("ok", time.Second)
		m.ObserveSeriesSkipped("7d")
		m.ObserveIntent("news")
	})
	assert.NotNil(t, m.Handler())
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/tokenomics/:coin", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/tokenomics/bitcoin", "/api/tokenomics/ethereum", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/tokenomics/:coin", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "trading_assistant_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
