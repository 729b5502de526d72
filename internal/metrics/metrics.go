// Package metrics provides centralized Prometheus metrics registry for the dashboard.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mlb_dashboard"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ScheduleFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedule_fetches_total",
		Help:      "Total number of schedule requests by result",
	}, []string{"result"})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of matchups scored by result",
	}, []string{"result"})
	PassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passes_total",
		Help:      "Total number of fetch-and-score passes",
	})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of schedule client circuit breaker trips",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of dashboard HTTP requests",
	}, []string{"route", "status"})
)

// Gauge metrics
var (
	LastPassGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_pass_games",
		Help:      "Number of games in the most recent pass",
	})
	LastPassYieldRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_pass_yield_rate",
		Help:      "Percentage of games that received a prediction in the most recent pass",
	})
)

// Histogram metrics
var (
	ScheduleFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "schedule_fetch_duration_seconds",
		Help:      "Duration of schedule requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	ScoringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scoring_duration_seconds",
		Help:      "Duration of a single matchup scoring in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5},
	})
	PassDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pass_duration_seconds",
		Help:      "Duration of a full fetch-and-score pass in seconds",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(ScheduleFetchesTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PassesTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(HTTPRequestsTotal)

		// Register gauge metrics
		registry.MustRegister(LastPassGames)
		registry.MustRegister(LastPassYieldRate)

		// Register histogram metrics
		registry.MustRegister(ScheduleFetchDuration)
		registry.MustRegister(ScoringDuration)
		registry.MustRegister(PassDuration)

		// Register sync metrics
		registry.MustRegister(GamesSyncedTotal)
		registry.MustRegister(GamesRejectedTotal)
		registry.MustRegister(SyncRunsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

func resultLabel(ok bool, success, failure string) string {
	if ok {
		return success
	}
	return failure
}

// RecordScheduleFetch records a schedule request and its latency.
func RecordScheduleFetch(ok bool, durationSeconds float64) {
	ScheduleFetchesTotal.WithLabelValues(resultLabel(ok, "success", "error")).Inc()
	ScheduleFetchDuration.Observe(durationSeconds)
}

// RecordPrediction records the outcome of scoring one matchup.
func RecordPrediction(produced bool, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(resultLabel(produced, "produced", "unavailable")).Inc()
	ScoringDuration.Observe(durationSeconds)
}

// RecordPass records a completed fetch-and-score pass.
func RecordPass(games int, yieldRate, durationSeconds float64) {
	PassesTotal.Inc()
	LastPassGames.Set(float64(games))
	LastPassYieldRate.Set(yieldRate)
	PassDuration.Observe(durationSeconds)
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordHTTPRequest records a served dashboard request.
func RecordHTTPRequest(route, status string) {
	HTTPRequestsTotal.WithLabelValues(route, status).Inc()
}
