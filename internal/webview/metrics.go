package webview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values.
const (
	RoutePage         = "page"
	RouteAnalyzeText  = "analyze_text"
	RouteAnalyzeFile  = "analyze_file"
	RouteResult       = "api_result"
	RouteTopicComment = "api_topic_comments"
	RoutePreflight    = "preflight"

	ErrorTypeBackend  = "backend_error"
	ErrorTypeRender   = "render_error"
	ErrorTypeRequest  = "bad_request"
	ErrorTypeInstall  = "install_error"
	ErrorTypeLimited  = "rate_limited"
	ErrorTypeTooLarge = "too_large"
)

var (
	// HitsTotal counts requests by route and HTTP status code.
	HitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "Total number of dashboard HTTP requests",
	}, []string{"route", "status"})

	// ErrorsTotal counts failed requests by type.
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_errors_total",
		Help: "Total number of failed dashboard requests",
	}, []string{"type"})

	// LatencyHistogram measures request latency by route.
	LatencyHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_latency_seconds",
		Help:    "Latency of dashboard HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
