package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	bodyOK            = "OK"
)

// Check is one named readiness probe. Probe returns nil when the dependency
// can take traffic.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Server exposes liveness, readiness and Prometheus metrics on its own port.
type Server struct {
	port   int
	checks []Check
	logger *zerolog.Logger
}

func NewServer(port int, logger *zerolog.Logger, checks ...Check) *Server {
	return &Server{
		port:   port,
		checks: checks,
		logger: logger,
	}
}

// Handler returns the health, readiness and metrics routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, bodyOK)
	})
	mux.HandleFunc("GET /readyz", s.serveReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// serveReady runs every check and lists the failing ones.
func (s *Server) serveReady(w http.ResponseWriter, r *http.Request) {
	var failures []string

	for _, check := range s.checks {
		if check.Probe == nil {
			continue
		}

		if err := check.Probe(r.Context()); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", check.Name, err))
		}
	}

	if len(failures) > 0 {
		s.logger.Debug().Strs("failures", failures).Msg("readiness check failed")
		writeText(w, http.StatusServiceUnavailable, "not ready\n"+strings.Join(failures, "\n"))

		return
	}

	writeText(w, http.StatusOK, bodyOK)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, body)
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		//nolint:contextcheck // the parent context is already canceled here
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("health server shutdown")
		}
	}()

	s.logger.Info().Int("port", s.port).Msg("Health check server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server: %w", err)
	}

	return nil
}
