// Package worker provides the periodic background loop used for housekeeping
// tasks such as pruning idle per-client rate limiters.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const logFieldWorker = "worker"

// PeriodicConfig configures a single-ticker loop.
type PeriodicConfig struct {
	// Name identifies the worker for logging.
	Name string

	// Interval is the ticker interval. It must be positive.
	Interval time.Duration

	// OnTick is called each time the ticker fires.
	OnTick func(ctx context.Context)

	// RunOnStart runs OnTick immediately when starting.
	RunOnStart bool

	// Logger for the worker.
	Logger *zerolog.Logger
}

// Periodic runs cfg.OnTick every cfg.Interval until ctx is canceled.
// Returns a wrapped context error when the context is canceled.
func Periodic(ctx context.Context, cfg PeriodicConfig) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("periodic loop %s: interval must be positive, got %v", cfg.Name, cfg.Interval)
	}

	logger := getLogger(cfg.Logger)
	logger.Info().Str(logFieldWorker, cfg.Name).Dur("interval", cfg.Interval).Msg("starting periodic loop")

	defer logger.Info().Str(logFieldWorker, cfg.Name).Msg("periodic loop stopped")

	if cfg.RunOnStart && cfg.OnTick != nil {
		cfg.OnTick(ctx)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("periodic loop %s: %w", cfg.Name, ctx.Err())
		case <-ticker.C:
			if cfg.OnTick != nil {
				cfg.OnTick(ctx)
			}
		}
	}
}

// getLogger returns the provided logger or a nop logger if nil.
func getLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()

		return &nop
	}

	return logger
}
