package dashboard

import "github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"

// PieSlice is one entry of the proportion series.
type PieSlice struct {
	Label domain.SentimentLabel `json:"label"`
	Value int                   `json:"value"`
}

// BuildPieSeries returns the overall counts in Positive, Neutral, Negative
// order, leaving out every label whose count is zero.
func BuildPieSeries(result *domain.AnalysisResult) []PieSlice {
	tally := ReadTally(result)
	series := make([]PieSlice, 0, len(domain.Labels))

	for _, label := range domain.Labels {
		value := tally.Count(label)
		if value == 0 {
			continue
		}

		series = append(series, PieSlice{Label: label, Value: value})
	}

	return series
}
