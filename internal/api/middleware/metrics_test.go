package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/restockly/restock-dashboard/internal/api/middleware"
	"github.com/restockly/restock-dashboard/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name:   "records 200 response",
			method: http.MethodGet,
			path:   "/api/v1/products",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "records 404 response",
			method: http.MethodGet,
			path:   "/notfound",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "records POST request",
			method: http.MethodPost,
			path:   "/api/v1/products/refresh",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.Add(tt.method, tt.path, tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			// Verify the counter was incremented.
			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)

			m := &io_prometheus_client.Metric{}
			require.NoError(t, counter.Write(m))
			assert.Greater(t, m.GetCounter().GetValue(), float64(0))

			// Verify histogram was observed.
			observer, err := metrics.HTTPRequestDuration.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)

			hm := &io_prometheus_client.Metric{}
			require.NoError(t, observer.(prometheus.Metric).Write(hm))
			assert.Positive(t, hm.GetHistogram().GetSampleCount())
		})
	}
}

func TestMetricsMiddleware_SkipsOperationalPaths(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		return c.NoContent(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	e.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	e.ServeHTTP(httptest.NewRecorder(), req)

	// Probes update gauges instead of request counters.
	m := &io_prometheus_client.Metric{}
	require.NoError(t, metrics.HealthzUp.Write(m))
	assert.Equal(t, float64(1), m.GetGauge().GetValue())

	m = &io_prometheus_client.Metric{}
	require.NoError(t, metrics.ReadyzUp.Write(m))
	assert.Equal(t, float64(0), m.GetGauge().GetValue())

	counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
		http.MethodGet, "/healthz", "200",
	)
	require.NoError(t, err)

	cm := &io_prometheus_client.Metric{}
	require.NoError(t, counter.Write(cm))
	assert.Zero(t, cm.GetCounter().GetValue(),
		"probe paths should not be counted as requests")
}
