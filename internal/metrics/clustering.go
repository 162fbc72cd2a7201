package metrics

import "github.com/prometheus/client_golang/prometheus"

// Run status label values.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Clustering Prometheus metrics.
var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clustex",
			Name:      "runs_total",
			Help:      "Total number of clustering runs by outcome",
		},
		[]string{"status"},
	)

	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clustex",
			Name:      "run_duration_seconds",
			Help:      "End-to-end clustering run duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CorpusDocuments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clustex",
			Name:      "corpus_documents",
			Help:      "Corpus size per clustering run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ClustersFound = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clustex",
			Name:      "clusters_found",
			Help:      "Clusters discovered per run, excluding the noise bucket",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	NoiseDocuments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clustex",
			Name:      "noise_documents",
			Help:      "Documents labeled noise per run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

var runMetricsRegistered bool

// RegisterRunMetrics registers clustering metrics. Must be called once from main.
func RegisterRunMetrics() {
	if runMetricsRegistered {
		return
	}
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(CorpusDocuments)
	prometheus.MustRegister(ClustersFound)
	prometheus.MustRegister(NoiseDocuments)
	runMetricsRegistered = true
}
