package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/four-factors/internal/metrics"
)

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(Config{ServiceName: "four-factors", Version: "test", Port: "0"})
	server.SetRunID("run-123")

	rec := get(t, server.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "four-factors", resp.Service)
	assert.Equal(t, "run-123", resp.RunID)
}

func TestReadyEndpoint(t *testing.T) {
	failing := true
	server := NewServer(Config{
		ServiceName: "four-factors",
		Port:        "0",
		Checks: map[string]Checker{
			"team_directory": CheckerFunc(func(ctx context.Context) error { return nil }),
			"stats_provider": CheckerFunc(func(ctx context.Context) error {
				if failing {
					return errors.New("unreachable")
				}
				return nil
			}),
		},
	})

	rec := get(t, server.Handler(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	server.SetReady(true)
	rec = get(t, server.Handler(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error: unreachable", resp.Checks["stats_provider"])
	assert.Equal(t, "ok", resp.Checks["team_directory"])

	failing = false
	rec = get(t, server.Handler(), "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.InitRegistry()
	metrics.RecordCacheHit()

	server := NewServer(Config{ServiceName: "four-factors", Port: "0"})
	rec := get(t, server.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "four_factors_stats_cache_hits_total")
}

func TestNewServerDefaultPort(t *testing.T) {
	t.Setenv("HEALTH_PORT", "")
	server := NewServer(Config{})
	assert.Equal(t, "9090", server.port)
}
