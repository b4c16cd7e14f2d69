package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values.
const (
	EndpointAnalyzeText = "analyze_text"
	EndpointAnalyzeFile = "analyze_file"

	FailureTransport = "transport"
	FailureStatus    = "status"
	FailureDecode    = "decode"
	FailureBackend   = "backend_reported"
	FailureCircuit   = "circuit_open"

	SummaryStatusOK    = "ok"
	SummaryStatusError = "error"
)

var (
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sentiment_backend_request_duration_seconds",
		Help:    "Duration of requests to the analysis backend",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"endpoint"})

	BackendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentiment_backend_failures_total",
		Help: "Failed analysis backend requests by endpoint and failure kind",
	}, []string{"endpoint", "kind"})

	ResultsInstalled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentiment_results_installed_total",
		Help: "Number of analysis results installed as the current result set",
	})

	CurrentResultTopics = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentiment_current_result_topics",
		Help: "Number of topics in the currently installed result",
	})

	CurrentResultDocuments = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sentiment_current_result_documents",
		Help: "Overall sentiment counts of the currently installed result",
	}, []string{"sentiment"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sentiment_llm_request_duration_seconds",
		Help:    "Duration of executive summary LLM requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	SummariesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentiment_summaries_generated_total",
		Help: "Executive summaries generated by status",
	}, []string{"status"})

	AggregatedDocuments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentiment_aggregated_documents_total",
		Help: "Labelled documents aggregated locally, by outcome",
	}, []string{"outcome"})
)
