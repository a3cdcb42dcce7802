package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crm/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func setupTestMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) *metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func metricsRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handler)
	r.GET("/crm-api/partners/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	return r
}

func TestHTTPMetrics_DisabledProviderPassesThrough(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)

	for _, handler := range []gin.HandlerFunc{HTTPMetrics(nil), HTTPMetrics(mp)} {
		w := httptest.NewRecorder()
		metricsRouter(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/crm-api/partners/42", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestHTTPMetricsWithMeter(t *testing.T) {
	mp, reader := setupTestMeter(t)
	r := metricsRouter(HTTPMetricsWithMeter(mp.Meter("test")))

	for _, path := range []string{"/crm-api/partners/1", "/crm-api/partners/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	t.Run("counts requests by route pattern and status", func(t *testing.T) {
		m := findMetric(t, reader, "http_server_request_total")
		require.NotNil(t, m)
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)

		counts := map[string]int64{}
		for _, dp := range sum.DataPoints {
			route, _ := dp.Attributes.Value(attribute.Key("http.route"))
			status, _ := dp.Attributes.Value(attribute.Key("http.status_code"))
			counts[route.AsString()+" "+status.Emit()] += dp.Value
		}
		assert.Equal(t, map[string]int64{
			"/crm-api/partners/:id 200": 2,
			"unknown 404":               1,
		}, counts)
	})

	t.Run("records latency and leaves no request in flight", func(t *testing.T) {
		m := findMetric(t, reader, "http_server_request_duration_seconds")
		require.NotNil(t, m)
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		var total uint64
		for _, dp := range hist.DataPoints {
			total += dp.Count
		}
		assert.Equal(t, uint64(3), total)

		active := findMetric(t, reader, "http_server_active_requests")
		require.NotNil(t, active)
		for _, dp := range active.Data.(metricdata.Sum[int64]).DataPoints {
			assert.Zero(t, dp.Value)
		}
	})

	t.Run("records response size", func(t *testing.T) {
		m := findMetric(t, reader, "http_server_response_size_bytes")
		require.NotNil(t, m)
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		assert.NotEmpty(t, hist.DataPoints)
	})
}
