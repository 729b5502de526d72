package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordScheduleFetch(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(ScheduleFetchesTotal.WithLabelValues("error"))
	RecordScheduleFetch(false, 0.2)
	RecordScheduleFetch(true, 0.1)

	assert.Equal(t, before+1, testutil.ToFloat64(ScheduleFetchesTotal.WithLabelValues("error")))
}

func TestRecordPrediction(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name     string
		produced bool
		label    string
	}{
		{name: "produced", produced: true, label: "produced"},
		{name: "unavailable", produced: false, label: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(PredictionsTotal.WithLabelValues(tt.label))
			RecordPrediction(tt.produced, 0.01)
			assert.Equal(t, before+1, testutil.ToFloat64(PredictionsTotal.WithLabelValues(tt.label)))
		})
	}
}

func TestRecordPass(t *testing.T) {
	InitRegistry()

	RecordPass(15, 86.7, 1.2)

	assert.Equal(t, 15.0, testutil.ToFloat64(LastPassGames))
	assert.Equal(t, 86.7, testutil.ToFloat64(LastPassYieldRate))
}

func TestRecordSyncRun(t *testing.T) {
	InitRegistry()

	synced := testutil.ToFloat64(GamesSyncedTotal)
	rejected := testutil.ToFloat64(GamesRejectedTotal)

	RecordSyncRun(true, 12, 1)

	assert.Equal(t, synced+12, testutil.ToFloat64(GamesSyncedTotal))
	assert.Equal(t, rejected+1, testutil.ToFloat64(GamesRejectedTotal))
}

func TestHandler(t *testing.T) {
	InitRegistry()
	RecordHTTPRequest("/", "200")
	RecordCircuitBreakerTrip()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mlb_dashboard_http_requests_total")
	assert.Contains(t, rec.Body.String(), "mlb_dashboard_circuit_breaker_trips_total")
}
