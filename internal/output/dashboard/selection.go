package dashboard

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
	"github.com/Am1anB/Sentiment-analysis-project/internal/storage"
)

// SelectionState is the drilldown state of a dashboard view.
type SelectionState int

const (
	SelectionIdle SelectionState = iota
	SelectionSelected
)

func (s SelectionState) String() string {
	if s == SelectionSelected {
		return "selected"
	}

	return "idle"
}

// Selection is the caller-owned drilldown state. It records which snapshot
// and which topic-series row were selected, never the derived comments, so
// a selection can only render against the result it was made on.
type Selection struct {
	state    SelectionState
	resultID uuid.UUID
	index    int
}

// Idle returns the empty selection.
func Idle() Selection {
	return Selection{}
}

// Select selects row index of the snapshot's topic series.
func Select(snap storage.Snapshot, index int) (Selection, error) {
	if snap.Empty() {
		return Idle(), apperrors.ErrNoResult
	}

	rows := BuildTopicSeries(snap.Result)
	if index < 0 || index >= len(rows) {
		return Idle(), fmt.Errorf("select row %d of %d: %w", index, len(rows), apperrors.ErrTopicOutOfRange)
	}

	return Selection{state: SelectionSelected, resultID: snap.ID, index: index}, nil
}

// Restore rebuilds a selection from identifiers a client sent back. It is
// not validated until Resolve.
func Restore(resultID uuid.UUID, index int) Selection {
	if resultID == uuid.Nil || index < 0 {
		return Idle()
	}

	return Selection{state: SelectionSelected, resultID: resultID, index: index}
}

// Clear returns to Idle.
func (s Selection) Clear() Selection {
	return Idle()
}

// State reports Idle or Selected.
func (s Selection) State() SelectionState {
	return s.state
}

// ResultID is the snapshot the selection was made on.
func (s Selection) ResultID() uuid.UUID {
	return s.resultID
}

// Index is the selected row of the topic series.
func (s Selection) Index() int {
	return s.index
}

// Resolve derives the selected topic from snap. It reports false when the
// selection is idle, was made on a different snapshot, or points past the
// end of the series; callers then render the Idle state.
func (s Selection) Resolve(snap storage.Snapshot) (domain.SelectedTopic, bool) {
	if s.state != SelectionSelected || snap.Empty() || snap.ID != s.resultID {
		return domain.SelectedTopic{}, false
	}

	rows := BuildTopicSeries(snap.Result)
	if s.index >= len(rows) {
		return domain.SelectedTopic{}, false
	}

	row := rows[s.index]

	return domain.SelectedTopic{
		Name:     row.Name,
		Comments: ProjectComments(row),
	}, true
}
