package circuit

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
)

func newTestBreaker(threshold int, clock *time.Time) *Breaker {
	logger := zerolog.Nop()

	b := New("test", Config{Threshold: threshold, ResetAfter: time.Minute}, &logger)
	b.now = func() time.Time { return *clock }

	return b
}

func TestBreaker_OpensAtThreshold(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(3, &clock)

	b.RecordFailure()
	b.RecordFailure()
	require.NoError(t, b.Check())
	assert.False(t, b.IsOpen())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
	assert.ErrorIs(t, b.Check(), apperrors.ErrCircuitBreakerOpen)
}

func TestBreaker_ClosesAfterResetWindow(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(1, &clock)

	b.RecordFailure()
	require.True(t, b.IsOpen())

	clock = clock.Add(time.Minute + time.Second)
	assert.False(t, b.IsOpen())
	assert.NoError(t, b.Check())
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(2, &clock)

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
}

func TestNew_Defaults(t *testing.T) {
	b := New("defaults", Config{}, nil)

	assert.Equal(t, defaultThreshold, b.threshold)
	assert.Equal(t, defaultResetAfter, b.resetAfter)

	for range defaultThreshold {
		b.RecordFailure()
	}

	assert.True(t, b.IsOpen())
}
