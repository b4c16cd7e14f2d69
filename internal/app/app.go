// Package app provides the application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - Server mode: dashboard HTTP server plus health and metrics server
//   - Analyze mode: send one file to the analysis backend and print the view
//   - Aggregate mode: aggregate an already-labelled CSV locally, optionally
//     with an executive summary
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/analysis"
	"github.com/Am1anB/Sentiment-analysis-project/internal/core/llm"
	"github.com/Am1anB/Sentiment-analysis-project/internal/output/dashboard"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/config"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/observability"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/worker"
	"github.com/Am1anB/Sentiment-analysis-project/internal/process/aggregate"
	"github.com/Am1anB/Sentiment-analysis-project/internal/storage"
	"github.com/Am1anB/Sentiment-analysis-project/internal/webview"
)

const (
	shutdownTimeout   = 10 * time.Second
	limiterPruneEvery = 10 * time.Minute
	limiterIdleTTL    = 30 * time.Minute
	readHeaderTimeout = 10 * time.Second
	jsonIndent        = "  "
	logFieldPort      = "port"
	logFieldFile      = "file"
	logFieldDocuments = "documents"
	logFieldTopics    = "topics"
	logFieldProvider  = "provider"
	logFieldRemoved   = "removed"
)

// App holds the application dependencies and provides methods to run different modes.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger
	out    io.Writer
}

// New creates a new App instance. Command output is written to stdout.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		out:    os.Stdout,
	}
}

// WithOutput redirects command output.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w

	return a
}

// RunServer serves the dashboard and the health server until ctx is done.
func (a *App) RunServer(ctx context.Context) error {
	client := analysis.New(a.cfg.AnalysisCfg(), a.logger)
	store := storage.NewResultStore(a.logger)

	handler, err := webview.NewHandler(a.cfg.DashboardCfg(), client, store, a.logger)
	if err != nil {
		return fmt.Errorf("dashboard handler init: %w", err)
	}

	health := observability.NewServer(a.cfg.HealthPort, a.logger, observability.Check{Name: "analysis", Probe: client.Ready})

	go func() {
		if err := health.Start(ctx); err != nil {
			a.logger.Error().Err(err).Msg("health check server error")
		}
	}()

	go func() {
		_ = worker.Periodic(ctx, worker.PeriodicConfig{
			Name:     "limiter-prune",
			Interval: limiterPruneEvery,
			Logger:   a.logger,
			OnTick: func(context.Context) {
				if n := handler.PruneLimiters(limiterIdleTTL); n > 0 {
					a.logger.Debug().Int(logFieldRemoved, n).Msg("pruned idle rate limiters")
				}
			},
		})
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTPPort),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		//nolint:contextcheck // shutdown must outlive the cancelled parent context
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn().Err(err).Msg("dashboard server shutdown")
		}
	}()

	a.logger.Info().Int(logFieldPort, a.cfg.HTTPPort).Msg("Dashboard server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dashboard server error: %w", err)
	}

	return ctx.Err()
}

// RunAnalyze uploads path to the analysis backend and prints the dashboard view.
func (a *App) RunAnalyze(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	client := analysis.New(a.cfg.AnalysisCfg(), a.logger)
	store := storage.NewResultStore(a.logger)
	upload := store.BeginUpload()

	result, err := client.AnalyzeFile(ctx, filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}

	snap, err := store.Install(upload, result, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("install result: %w", err)
	}

	return a.writeJSON(dashboard.BuildView(snap))
}

// RunAggregate aggregates a labelled CSV and prints the result in the
// backend's response shape. With summarize set, the executive summary is
// generated first.
func (a *App) RunAggregate(ctx context.Context, path string, summarize bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	docs, err := aggregate.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	result := aggregate.Aggregate(docs)
	stats := aggregate.Stats(docs)

	a.logger.Info().
		Str(logFieldFile, path).
		Int(logFieldDocuments, len(docs)).
		Int(logFieldTopics, len(result.Topic)).
		Msg("documents aggregated")

	if summarize {
		summarizer := llm.New(a.cfg.LLMCfg(), a.logger)

		summary, err := summarizer.Summarize(ctx, llm.SummaryRequest{
			Stats:  stats,
			Topics: aggregate.TopicTexts(docs),
		})
		if err != nil {
			return fmt.Errorf("executive summary: %w", err)
		}

		a.logger.Info().Str(logFieldProvider, summarizer.Name()).Msg("executive summary generated")

		result.Summarize = summary
	}

	return a.writeJSON(result)
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
