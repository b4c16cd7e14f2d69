package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	"github.com/Am1anB/Sentiment-analysis-project/internal/storage"
)

// View bundles every series derived from one snapshot.
type View struct {
	ResultID    uuid.UUID               `json:"result_id"`
	Source      string                  `json:"source,omitempty"`
	InstalledAt time.Time               `json:"installed_at"`
	Tally       Tally                   `json:"tally"`
	Total       int                     `json:"total"`
	Pie         []PieSlice              `json:"pie"`
	Topics      []domain.TopicSeriesRow `json:"topics"`
	Summarize   string                  `json:"summarize"`
}

// BuildView derives the view of snap. It is recomputed on every call.
func BuildView(snap storage.Snapshot) View {
	tally := ReadTally(snap.Result)

	view := View{
		ResultID:    snap.ID,
		Source:      snap.Source,
		InstalledAt: snap.InstalledAt,
		Tally:       tally,
		Total:       tally.Total(),
		Pie:         BuildPieSeries(snap.Result),
		Topics:      BuildTopicSeries(snap.Result),
	}

	if snap.Result != nil {
		view.Summarize = snap.Result.Summarize
	}

	return view
}
