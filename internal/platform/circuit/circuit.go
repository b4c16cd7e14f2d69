// Package circuit provides a consecutive-failure circuit breaker shared by the
// outbound clients (analysis backend and LLM provider).
package circuit

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
)

const (
	defaultThreshold  = 5
	defaultResetAfter = time.Minute
)

// Config controls when the breaker opens and for how long.
type Config struct {
	Threshold  int
	ResetAfter time.Duration
}

// Breaker opens after Threshold consecutive failures and rejects attempts
// until ResetAfter has elapsed.
type Breaker struct {
	name                string
	threshold           int
	resetAfter          time.Duration
	consecutiveFailures int
	openUntil           time.Time
	now                 func() time.Time
	mu                  sync.Mutex
	logger              *zerolog.Logger
}

// New creates a breaker. Zero config values fall back to defaults.
func New(name string, cfg Config, logger *zerolog.Logger) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = defaultThreshold
	}

	if cfg.ResetAfter <= 0 {
		cfg.ResetAfter = defaultResetAfter
	}

	return &Breaker{
		name:       name,
		threshold:  cfg.Threshold,
		resetAfter: cfg.ResetAfter,
		now:        time.Now,
		logger:     logger,
	}
}

// Check returns an error wrapping ErrCircuitBreakerOpen while the circuit is open.
func (b *Breaker) Check() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.now().Before(b.openUntil) {
		return fmt.Errorf("%s: %w until %v", b.name, apperrors.ErrCircuitBreakerOpen, b.openUntil)
	}

	return nil
}

// RecordSuccess resets the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures = 0
}

// RecordFailure counts a failure and opens the circuit at the threshold.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures++

	if b.consecutiveFailures < b.threshold {
		return
	}

	b.openUntil = b.now().Add(b.resetAfter)

	if b.logger != nil {
		b.logger.Warn().
			Str("breaker", b.name).
			Int("consecutive_failures", b.consecutiveFailures).
			Time("open_until", b.openUntil).
			Msg("circuit breaker opened")
	}
}

// IsOpen reports whether attempts are currently rejected.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.now().Before(b.openUntil)
}

// Reset closes the circuit and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures = 0
	b.openUntil = time.Time{}
}
