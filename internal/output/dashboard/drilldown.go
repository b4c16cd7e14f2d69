package dashboard

import "github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"

// ProjectComments flattens a row's buckets into one comment list: all
// Positive documents, then Neutral, then Negative, each group in the order
// the backend sent them. A row without stored documents yields an empty list.
func ProjectComments(row domain.TopicSeriesRow) []domain.Comment {
	comments := make([]domain.Comment, 0, len(row.Details.Positive.Docs)+len(row.Details.Neutral.Docs)+len(row.Details.Negative.Docs))

	for _, label := range domain.Labels {
		for _, doc := range row.Details.Bucket(label).Docs {
			comments = append(comments, domain.Comment{
				Text:      doc,
				Sentiment: domain.NormalizeLabel(label.Key()),
			})
		}
	}

	return comments
}
