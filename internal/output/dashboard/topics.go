package dashboard

import (
	"sort"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
)

// BuildTopicSeries returns one row per topic entry, ordered by total
// descending. Equal totals keep their input order. Topics with a zero total
// are kept.
func BuildTopicSeries(result *domain.AnalysisResult) []domain.TopicSeriesRow {
	if result == nil {
		return []domain.TopicSeriesRow{}
	}

	rows := make([]domain.TopicSeriesRow, 0, len(result.Topic))

	for _, entry := range result.Topic {
		rows = append(rows, domain.TopicSeriesRow{
			Name:    entry.Name,
			Total:   entry.Breakdown.Total(),
			Details: entry.Breakdown,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	return rows
}
