package metrics

import "github.com/prometheus/client_golang/prometheus"

// Value-detection counter vectors
var (
	ValueSignalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "value_signals_total",
		Help:      "Total number of value signals by market and confidence",
	}, []string{"market", "confidence"})
)

// Value-detection histograms
var (
	AnalysisEdgePercent = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "analysis_edge_percent",
		Help:      "Headline edge percentage of analysed fixtures",
		Buckets:   []float64{0, 2, 3, 5, 8, 10, 15, 20, 30},
	})
)

// RecordValueSignal records a detected value signal.
func RecordValueSignal(market, confidence string) {
	ValueSignalsTotal.WithLabelValues(market, confidence).Inc()
}

// RecordEdge records a fixture's headline edge.
func RecordEdge(edge float64) {
	AnalysisEdgePercent.Observe(edge)
}
