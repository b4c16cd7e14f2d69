// Package aggregate groups documents that already carry a sentiment and a
// topic label into an analysis result.
//
// It produces the same shape the analysis backend returns:
//   - overall positive/neutral/negative buckets
//   - one single-key topic entry per topic, in first-appearance order
//   - a statistics block and per-topic comment lines for the executive summary
//
// No classification happens here. Sentiments outside the three known labels
// are counted in the statistics block but never bucketed.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/observability"
)

// OtherTopic is assigned to documents without a topic label.
const OtherTopic = "อื่นๆ"

const (
	outcomeBucketed   = "bucketed"
	outcomeUnbucketed = "unbucketed"
	noDataStats       = "No data"
	statsHeaderFmt    = "Total Responses: %d\n"
	statsLineFmt      = "- %s: %d (%.1f%%)\n"
	topicLineFmt      = "[%s] %s"
)

// Document is one labelled comment.
type Document struct {
	Text      string
	Sentiment domain.SentimentLabel
	Topic     string
}

// Aggregate builds an analysis result from docs. Summarize is left empty.
func Aggregate(docs []Document) *domain.AnalysisResult {
	result := &domain.AnalysisResult{Topic: []domain.TopicEntry{}}

	topicIndex := make(map[string]int)

	for _, doc := range docs {
		topic := topicName(doc.Topic)

		idx, ok := topicIndex[topic]
		if !ok {
			idx = len(result.Topic)
			topicIndex[topic] = idx
			result.Topic = append(result.Topic, domain.TopicEntry{Name: topic})
		}

		overall := overallBucket(result, doc.Sentiment)
		if overall == nil {
			observability.AggregatedDocuments.WithLabelValues(outcomeUnbucketed).Inc()

			continue
		}

		addDoc(overall, doc.Text)
		addDoc(breakdownBucket(&result.Topic[idx].Breakdown, doc.Sentiment), doc.Text)
		observability.AggregatedDocuments.WithLabelValues(outcomeBucketed).Inc()
	}

	return result
}

// Stats renders the statistics block: a total line followed by one line per
// sentiment in first-appearance order.
func Stats(docs []Document) string {
	if len(docs) == 0 {
		return noDataStats
	}

	var order []domain.SentimentLabel

	counts := make(map[domain.SentimentLabel]int)

	for _, doc := range docs {
		if _, ok := counts[doc.Sentiment]; !ok {
			order = append(order, doc.Sentiment)
		}

		counts[doc.Sentiment]++
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, statsHeaderFmt, len(docs))

	for _, label := range order {
		count := counts[label]
		fmt.Fprintf(&sb, statsLineFmt, label, count, float64(count)/float64(len(docs))*100)
	}

	return sb.String()
}

// TopicTexts returns the "[Sentiment] text" lines per topic, in
// first-appearance topic order.
func TopicTexts(docs []Document) []domain.TopicTexts {
	out := []domain.TopicTexts{}
	index := make(map[string]int)

	for _, doc := range docs {
		topic := topicName(doc.Topic)

		idx, ok := index[topic]
		if !ok {
			idx = len(out)
			index[topic] = idx
			out = append(out, domain.TopicTexts{Topic: topic})
		}

		out[idx].Lines = append(out[idx].Lines, fmt.Sprintf(topicLineFmt, doc.Sentiment, doc.Text))
	}

	return out
}

func topicName(raw string) string {
	if name := strings.TrimSpace(raw); name != "" {
		return name
	}

	return OtherTopic
}

func overallBucket(result *domain.AnalysisResult, label domain.SentimentLabel) *domain.Bucket {
	switch domain.NormalizeLabel(string(label)) {
	case domain.Positive:
		return &result.Positive
	case domain.Neutral:
		return &result.Neutral
	case domain.Negative:
		return &result.Negative
	default:
		return nil
	}
}

func breakdownBucket(b *domain.Breakdown, label domain.SentimentLabel) *domain.Bucket {
	switch domain.NormalizeLabel(string(label)) {
	case domain.Positive:
		return &b.Positive
	case domain.Neutral:
		return &b.Neutral
	default:
		return &b.Negative
	}
}

func addDoc(bucket *domain.Bucket, text string) {
	bucket.Count++
	bucket.Docs = append(bucket.Docs, text)
}
