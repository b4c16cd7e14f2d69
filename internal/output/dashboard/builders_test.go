package dashboard

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
)

func bucket(count int, docs ...string) domain.Bucket {
	return domain.Bucket{Count: count, Docs: docs}
}

func topic(name string, pos, neu, neg domain.Bucket) domain.TopicEntry {
	return domain.TopicEntry{
		Name:      name,
		Breakdown: domain.Breakdown{Positive: pos, Neutral: neu, Negative: neg},
	}
}

func pricingResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Positive: bucket(2, "good value", "cheap"),
		Negative: bucket(1, "too expensive"),
		Topic: []domain.TopicEntry{
			topic("pricing", bucket(2, "good value", "cheap"), bucket(0), bucket(1, "too expensive")),
		},
	}
}

// randomResult builds a result whose overall tally and topic buckets are
// drawn independently, the way the backend reports them.
func randomResult(rng *rand.Rand) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		Positive: bucket(rng.Intn(4)),
		Neutral:  bucket(rng.Intn(4)),
		Negative: bucket(rng.Intn(4)),
	}

	for i := range rng.Intn(8) {
		result.Topic = append(result.Topic, topic(
			fmt.Sprintf("t%d", i),
			bucket(rng.Intn(5), "p"),
			bucket(rng.Intn(5)),
			bucket(rng.Intn(5), "n1", "n2"),
		))
	}

	return result
}

func TestReadTally(t *testing.T) {
	tally := ReadTally(&domain.AnalysisResult{
		Positive: bucket(3),
		Neutral:  bucket(0, "doc without count"),
		Negative: bucket(7),
	})

	assert.Equal(t, Tally{Positive: 3, Neutral: 0, Negative: 7}, tally)
	assert.Equal(t, 10, tally.Total())
	assert.Equal(t, Tally{}, ReadTally(nil))
	assert.Equal(t, 0, tally.Count("Unknown"))
}

func TestBuildPieSeries(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.AnalysisResult
		want   []PieSlice
	}{
		{
			name:   "nil result draws nothing",
			result: nil,
			want:   []PieSlice{},
		},
		{
			name:   "all zero",
			result: &domain.AnalysisResult{},
			want:   []PieSlice{},
		},
		{
			name:   "neutral only",
			result: &domain.AnalysisResult{Neutral: bucket(5)},
			want:   []PieSlice{{Label: domain.Neutral, Value: 5}},
		},
		{
			name: "fixed order",
			result: &domain.AnalysisResult{
				Positive: bucket(1),
				Neutral:  bucket(2),
				Negative: bucket(3),
			},
			want: []PieSlice{
				{Label: domain.Positive, Value: 1},
				{Label: domain.Neutral, Value: 2},
				{Label: domain.Negative, Value: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPieSeries(tt.result)

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPieSeries_NeverEmitsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for range 200 {
		for _, slice := range BuildPieSeries(randomResult(rng)) {
			assert.NotZero(t, slice.Value)
		}
	}
}

func TestBuildTopicSeries_Pricing(t *testing.T) {
	rows := BuildTopicSeries(pricingResult())

	require.Len(t, rows, 1)
	assert.Equal(t, "pricing", rows[0].Name)
	assert.Equal(t, 3, rows[0].Total)
	assert.Equal(t, []string{"good value", "cheap"}, rows[0].Details.Positive.Docs)
}

func TestBuildTopicSeries_Empty(t *testing.T) {
	assert.Equal(t, []domain.TopicSeriesRow{}, BuildTopicSeries(nil))

	rows := BuildTopicSeries(&domain.AnalysisResult{
		Neutral: bucket(5),
		Topic:   []domain.TopicEntry{},
	})
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestBuildTopicSeries_StableOnTies(t *testing.T) {
	result := &domain.AnalysisResult{
		Topic: []domain.TopicEntry{
			topic("b", bucket(4), bucket(0), bucket(0)),
			topic("a", bucket(1), bucket(1), bucket(2)),
		},
	}

	rows := BuildTopicSeries(result)

	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Name)
	assert.Equal(t, "a", rows[1].Name)
}

func TestBuildTopicSeries_SortsAndKeepsZeroTotals(t *testing.T) {
	result := &domain.AnalysisResult{
		Topic: []domain.TopicEntry{
			topic("quiet", bucket(0), bucket(0), bucket(0)),
			topic("small", bucket(1), bucket(0), bucket(0)),
			topic("big", bucket(3), bucket(2), bucket(1)),
			topic("quiet", bucket(0), bucket(0), bucket(0)),
		},
	}

	rows := BuildTopicSeries(result)

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}

	assert.Equal(t, []string{"big", "small", "quiet", "quiet"}, names)
	assert.Equal(t, 0, rows[3].Total)
}

func TestBuildTopicSeries_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 200 {
		result := randomResult(rng)
		rows := BuildTopicSeries(result)

		require.Len(t, rows, len(result.Topic))

		wantSum := 0
		for _, entry := range result.Topic {
			wantSum += entry.Breakdown.Positive.Count + entry.Breakdown.Neutral.Count + entry.Breakdown.Negative.Count
		}

		gotSum := 0
		for _, row := range rows {
			gotSum += row.Total
		}

		assert.Equal(t, wantSum, gotSum, "topic totals come from topic buckets only")

		position := make(map[string]int, len(result.Topic))
		for i, entry := range result.Topic {
			position[entry.Name] = i
		}

		for i := 1; i < len(rows); i++ {
			require.GreaterOrEqual(t, rows[i-1].Total, rows[i].Total)

			if rows[i-1].Total == rows[i].Total {
				assert.Less(t, position[rows[i-1].Name], position[rows[i].Name], "ties keep input order")
			}
		}
	}
}

func TestTopicTotalsIndependentOfTally(t *testing.T) {
	result := &domain.AnalysisResult{
		Positive: bucket(100),
		Neutral:  bucket(100),
		Negative: bucket(100),
		Topic: []domain.TopicEntry{
			topic("only", bucket(1), bucket(0), bucket(0)),
		},
	}

	rows := BuildTopicSeries(result)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Total)
	assert.Equal(t, 300, ReadTally(result).Total())
}

func TestProjectComments_Pricing(t *testing.T) {
	rows := BuildTopicSeries(pricingResult())
	require.Len(t, rows, 1)

	comments := ProjectComments(rows[0])

	assert.Equal(t, []domain.Comment{
		{Text: "good value", Sentiment: domain.Positive},
		{Text: "cheap", Sentiment: domain.Positive},
		{Text: "too expensive", Sentiment: domain.Negative},
	}, comments)
}

func TestProjectComments_GroupOrder(t *testing.T) {
	row := domain.TopicSeriesRow{
		Name: "service",
		Details: domain.Breakdown{
			Negative: bucket(1, "slow"),
			Neutral:  bucket(2, "ok", "fine"),
			Positive: bucket(1, "friendly"),
		},
	}

	comments := ProjectComments(row)

	require.Len(t, comments, 4)
	assert.Equal(t, "friendly", comments[0].Text)
	assert.Equal(t, domain.Neutral, comments[1].Sentiment)
	assert.Equal(t, "fine", comments[2].Text)
	assert.Equal(t, domain.Negative, comments[3].Sentiment)
}

func TestProjectComments_NoDocs(t *testing.T) {
	row := domain.TopicSeriesRow{
		Name:    "counts only",
		Total:   9,
		Details: domain.Breakdown{Positive: bucket(9)},
	}

	comments := ProjectComments(row)

	require.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestProjectComments_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, row := range BuildTopicSeries(randomResult(rng)) {
		assert.Equal(t, ProjectComments(row), ProjectComments(row))
	}
}

func TestBuildersDoNotMutateResult(t *testing.T) {
	result := &domain.AnalysisResult{
		Topic: []domain.TopicEntry{
			topic("low", bucket(1), bucket(0), bucket(0)),
			topic("high", bucket(5), bucket(0), bucket(0)),
		},
	}

	_ = BuildTopicSeries(result)

	assert.Equal(t, "low", result.Topic[0].Name)
	assert.Equal(t, "high", result.Topic[1].Name)
}
