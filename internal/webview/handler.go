// Package webview serves the sentiment dashboard over HTTP.
//
// Routes:
//   - GET  /                                dashboard page
//   - POST /analyze-text                    single-text sentiment
//   - POST /analyze-file                    batch upload, installs the result
//   - GET  /api/result                      dashboard view of the current result
//   - GET  /api/topics/{index}/comments     drilldown of one topic-series row
//
// Every series is derived from the current snapshot on each request; the
// handler keeps no view state of its own.
package webview

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/config"
	"github.com/Am1anB/Sentiment-analysis-project/internal/storage"
)

// Rate limiting defaults.
const (
	defaultRateLimitRPM = 60
	defaultRateBurst    = 20
	rateLimitWindow     = time.Minute
)

// HTTP header constants.
const (
	headerContentType  = "Content-Type"
	headerAccept       = "Accept"
	headerOrigin       = "Origin"
	headerAllowOrigin  = "Access-Control-Allow-Origin"
	headerAllowMethods = "Access-Control-Allow-Methods"
	headerAllowHeaders = "Access-Control-Allow-Headers"
	headerVary         = "Vary"
	contentTypeHTML    = "text/html; charset=utf-8"
	contentTypeJSON    = "application/json"
	contentTypeForm    = "application/x-www-form-urlencoded"
)

// Log field constants.
const (
	logFieldRoute    = "route"
	logFieldFilename = "filename"
	logFieldClientIP = "client_ip"
)

// Analyzer is the analysis backend as seen by the dashboard.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (domain.SentimentLabel, error)
	AnalyzeFile(ctx context.Context, filename string, file io.Reader) (*domain.AnalysisResult, error)
}

// Handler serves the dashboard routes.
type Handler struct {
	cfg      config.DashboardConfig
	analyzer Analyzer
	store    *storage.ResultStore
	renderer *Renderer
	logger   *zerolog.Logger

	// IP-based rate limiting
	limiters   map[string]*clientLimiter
	limitersMu sync.Mutex
	now        func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewHandler creates the dashboard handler.
func NewHandler(cfg config.DashboardConfig, analyzer Analyzer, store *storage.ResultStore, logger *zerolog.Logger) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	if cfg.RateLimitRPM <= 0 {
		cfg.RateLimitRPM = defaultRateLimitRPM
	}

	if cfg.RateBurst <= 0 {
		cfg.RateBurst = defaultRateBurst
	}

	return &Handler{
		cfg:      cfg,
		analyzer: analyzer,
		store:    store,
		renderer: renderer,
		logger:   logger,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}, nil
}

// Routes returns the dashboard mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", h.wrap(RoutePage, false, h.servePage))
	mux.Handle("POST /analyze-text", h.wrap(RouteAnalyzeText, true, h.serveAnalyzeText))
	mux.Handle("POST /analyze-file", h.wrap(RouteAnalyzeFile, true, h.serveAnalyzeFile))
	mux.Handle("GET /api/result", h.wrap(RouteResult, true, h.serveResult))
	mux.Handle("GET /api/topics/{index}/comments", h.wrap(RouteTopicComment, true, h.serveTopicComments))
	mux.Handle("OPTIONS /", h.wrap(RoutePreflight, true, h.servePreflight))

	return mux
}

// wrap applies headers, CORS, rate limiting and metrics to one route.
func (h *Handler) wrap(route string, api bool, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			LatencyHistogram.WithLabelValues(route).Observe(time.Since(start).Seconds())
			HitsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		}()

		setSecurityHeaders(rec)
		h.setCORSHeaders(rec, r)

		clientIP := getClientIP(r)

		if !h.allowRequest(clientIP) {
			ErrorsTotal.WithLabelValues(ErrorTypeLimited).Inc()
			h.logger.Debug().Str(logFieldRoute, route).Str(logFieldClientIP, clientIP).Msg("dashboard request rate limited")

			if api {
				writeJSONError(rec, http.StatusTooManyRequests, "Too many requests, please wait before trying again.")
			} else {
				h.renderError(rec, http.StatusTooManyRequests, "Too Many Requests", "Please wait before trying again.")
			}

			return
		}

		next(rec, r)
	})
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "private, no-store")
}

func (h *Handler) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	allowed := h.cfg.CORSAllowedOrigin
	if allowed == "" {
		return
	}

	origin := r.Header.Get(headerOrigin)
	if origin == "" || (allowed != "*" && origin != allowed) {
		return
	}

	w.Header().Set(headerAllowOrigin, origin)
	w.Header().Set(headerAllowMethods, "GET, POST, OPTIONS")
	w.Header().Set(headerAllowHeaders, headerContentType)
	w.Header().Add(headerVary, headerOrigin)
}

func (h *Handler) servePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) allowRequest(ip string) bool {
	h.limitersMu.Lock()

	entry, ok := h.limiters[ip]
	if !ok {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(rateLimitWindow/time.Duration(h.cfg.RateLimitRPM)), h.cfg.RateBurst),
		}
		h.limiters[ip] = entry
	}

	entry.lastSeen = h.now()

	h.limitersMu.Unlock()

	return entry.limiter.Allow()
}

// PruneLimiters drops the rate limiters of clients idle for longer than idle
// and returns how many were removed.
func (h *Handler) PruneLimiters(idle time.Duration) int {
	h.limitersMu.Lock()
	defer h.limitersMu.Unlock()

	cutoff := h.now().Add(-idle)
	removed := 0

	for ip, entry := range h.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(h.limiters, ip)

			removed++
		}
	}

	return removed
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

// wantsHTML reports whether the request came from a plain browser form.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get(headerAccept), "text/html")
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}

	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true

	return s.ResponseWriter.Write(b)
}
