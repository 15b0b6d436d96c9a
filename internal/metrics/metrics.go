// Package metrics provides centralized Prometheus metrics registry for the forecaster.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name
const Namespace = "clever_forecast"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	FixturesAnalysedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "fixtures_analysed_total",
		Help:      "Total number of fixtures analysed by signal class",
	}, []string{"signal"})
	FixturesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "fixtures_skipped_total",
		Help:      "Total number of fixtures excluded from analysis",
	}, []string{"reason"})
	TeamResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "team_resolutions_total",
		Help:      "Total number of team name resolutions by outcome",
	}, []string{"outcome"})
	SourceFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "source_failures_total",
		Help:      "Total number of fixture source failures",
	}, []string{"source"})
)

// Gauge metrics
var (
	AnalysisCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "analysis_cache_hit_ratio",
		Help:      "Analysis result cache hit ratio",
	})
	OddsAPIRequestsRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "odds_api_requests_remaining",
		Help:      "Requests remaining on the odds API quota",
	})
)

// Histogram metrics
var (
	BatchAnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "batch_analysis_duration_seconds",
		Help:      "Duration of batch analysis runs in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(FixturesAnalysedTotal)
		registry.MustRegister(FixturesSkippedTotal)
		registry.MustRegister(TeamResolutionsTotal)
		registry.MustRegister(SourceFailuresTotal)

		// Register gauge metrics
		registry.MustRegister(AnalysisCacheHitRatio)
		registry.MustRegister(OddsAPIRequestsRemaining)

		// Register histogram metrics
		registry.MustRegister(BatchAnalysisDuration)

		// Register value metrics
		registry.MustRegister(ValueSignalsTotal)
		registry.MustRegister(AnalysisEdgePercent)
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

// RecordFixtureAnalysed records a completed fixture analysis.
func RecordFixtureAnalysed(signal string) {
	FixturesAnalysedTotal.WithLabelValues(signal).Inc()
}

// RecordFixtureSkipped records a fixture excluded from output.
func RecordFixtureSkipped(reason string) {
	FixturesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordTeamResolution records whether a team came from the catalogue or was synthesized.
func RecordTeamResolution(outcome string) {
	TeamResolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordSourceFailure records a failed fixture source.
func RecordSourceFailure(source string) {
	SourceFailuresTotal.WithLabelValues(source).Inc()
}

// UpdateCacheHitRatio updates the cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	AnalysisCacheHitRatio.Set(ratio)
}

// UpdateRequestsRemaining updates the odds API quota gauge.
func UpdateRequestsRemaining(remaining float64) {
	OddsAPIRequestsRemaining.Set(remaining)
}

// RecordBatchDuration records batch analysis duration.
func RecordBatchDuration(durationSeconds float64) {
	BatchAnalysisDuration.Observe(durationSeconds)
}
