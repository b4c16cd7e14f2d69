// Package storage holds the current analysis result set in process memory.
//
// There is at most one installed result at a time. Installing a new result
// replaces the previous one wholesale under a new snapshot ID, and starting a
// new upload discards the displayed one. Nothing is written to disk.
package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/observability"
)

// Log field constants.
const (
	logFieldResultID = "result_id"
	logFieldSource   = "source"
	logFieldUpload   = "upload"
)

// Snapshot is one installed result. The result it points to must not be
// modified after installation.
type Snapshot struct {
	ID          uuid.UUID
	Result      *domain.AnalysisResult
	Source      string
	InstalledAt time.Time
}

// Empty reports whether the snapshot holds no result.
func (s Snapshot) Empty() bool {
	return s.Result == nil
}

// Upload identifies an upload started with BeginUpload.
type Upload struct {
	generation uint64
}

// ResultStore owns the current snapshot.
type ResultStore struct {
	mu         sync.RWMutex
	current    Snapshot
	generation uint64
	now        func() time.Time
	logger     *zerolog.Logger
}

// NewResultStore creates an empty store.
func NewResultStore(logger *zerolog.Logger) *ResultStore {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &ResultStore{
		now:    time.Now,
		logger: logger,
	}
}

// BeginUpload discards the current result and returns a handle that must be
// passed to Install. Only the most recently started upload may install.
func (s *ResultStore) BeginUpload() Upload {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Empty() {
		s.logger.Debug().Str(logFieldResultID, s.current.ID.String()).Msg("discarding result for new upload")
	}

	s.generation++
	s.current = Snapshot{}
	recordCurrent(nil)

	return Upload{generation: s.generation}
}

// Install replaces the current result with result under a fresh ID.
func (s *ResultStore) Install(upload Upload, result *domain.AnalysisResult, source string) (Snapshot, error) {
	if result == nil {
		return Snapshot{}, fmt.Errorf("install nil result: %w", apperrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if upload.generation != s.generation {
		return Snapshot{}, fmt.Errorf("install %s: %w", source, apperrors.ErrUploadSuperseded)
	}

	s.current = Snapshot{
		ID:          uuid.New(),
		Result:      result,
		Source:      source,
		InstalledAt: s.now(),
	}

	observability.ResultsInstalled.Inc()
	recordCurrent(result)

	s.logger.Info().
		Str(logFieldResultID, s.current.ID.String()).
		Str(logFieldSource, source).
		Uint64(logFieldUpload, upload.generation).
		Int("topics", len(result.Topic)).
		Msg("analysis result installed")

	return s.current, nil
}

// Current returns the installed snapshot, if any.
func (s *ResultStore) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current, !s.current.Empty()
}

// Clear discards the current result without starting an upload.
func (s *ResultStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.current = Snapshot{}
	recordCurrent(nil)
}

func recordCurrent(result *domain.AnalysisResult) {
	topics := 0
	if result != nil {
		topics = len(result.Topic)
	}

	observability.CurrentResultTopics.Set(float64(topics))

	for _, label := range domain.Labels {
		observability.CurrentResultDocuments.WithLabelValues(label.Key()).Set(float64(result.Bucket(label).Count))
	}
}
