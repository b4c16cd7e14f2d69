package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Am1anB/Sentiment-analysis-project/internal/app"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/config"
)

func main() {
	mode := flag.String("mode", "server", "Run mode (server, analyze, aggregate)")
	file := flag.String("file", "", "Input file for analyze and aggregate modes")
	summarize := flag.Bool("summarize", false, "Generate the executive summary (aggregate mode)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, &logger)

	if err := runMode(ctx, application, *mode, *file, *summarize); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode, file string, summarize bool) error {
	switch mode {
	case "server":
		return application.RunServer(ctx)
	case "analyze":
		requireFile(mode, file)

		return application.RunAnalyze(ctx, file)
	case "aggregate":
		requireFile(mode, file)

		return application.RunAggregate(ctx, file, summarize)
	default:
		log.Fatalf("Usage: %s --mode=[server|analyze|aggregate] [--file=path.csv] [--summarize]", os.Args[0])

		return nil
	}
}

func requireFile(mode, file string) {
	if file == "" {
		log.Fatalf("--file is required in %s mode", mode)
	}
}
