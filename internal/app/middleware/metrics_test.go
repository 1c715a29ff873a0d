package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/r/:code", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "https://example.com")
	})

	for _, path := range []string{"/api/r/aaaaaa", "/api/r/bbbbbb", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/r/:code", "302")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestNewHTTPMetrics_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewHTTPMetrics(reg)
	require.NoError(t, err)
	second, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	assert.Same(t, first.requests, second.requests)
	assert.Same(t, first.duration, second.duration)
}
