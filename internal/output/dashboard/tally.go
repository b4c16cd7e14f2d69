package dashboard

import "github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"

// Tally is the three top-level sentiment counts of a batch.
type Tally struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total sums the three counts.
func (t Tally) Total() int {
	return t.Positive + t.Neutral + t.Negative
}

// Count returns the tally for label, or zero for labels outside the vocabulary.
func (t Tally) Count(label domain.SentimentLabel) int {
	switch label {
	case domain.Positive:
		return t.Positive
	case domain.Neutral:
		return t.Neutral
	case domain.Negative:
		return t.Negative
	default:
		return 0
	}
}

// ReadTally returns the overall bucket counts verbatim. A nil result reads as zero.
func ReadTally(result *domain.AnalysisResult) Tally {
	if result == nil {
		return Tally{}
	}

	return Tally{
		Positive: result.Positive.Count,
		Neutral:  result.Neutral.Count,
		Negative: result.Negative.Count,
	}
}
