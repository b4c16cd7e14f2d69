package domain

import (
	"encoding/json"
	"fmt"
)

// Bucket is a sentiment count plus whatever supporting documents the backend
// chose to send. Count and len(Docs) are sourced independently and are not
// expected to agree.
type Bucket struct {
	Count int      `json:"count"`
	Docs  []string `json:"docs"`
}

// MarshalJSON always writes docs as an array so consumers never see null.
func (b Bucket) MarshalJSON() ([]byte, error) {
	type wireBucket Bucket

	out := wireBucket(b)
	if out.Docs == nil {
		out.Docs = []string{}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal bucket: %w", err)
	}

	return data, nil
}

// UnmarshalJSON decodes a bucket leniently; see decodeBucket.
func (b *Bucket) UnmarshalJSON(data []byte) error {
	root, err := parseObject(data, "bucket")
	if err != nil {
		return err
	}

	*b = decodeBucket(root)

	return nil
}

// Breakdown holds the three sentiment buckets of one topic.
type Breakdown struct {
	Positive Bucket `json:"positive"`
	Neutral  Bucket `json:"neutral"`
	Negative Bucket `json:"negative"`
}

// Bucket returns the bucket for label. Unknown labels yield an empty bucket.
func (b Breakdown) Bucket(label SentimentLabel) Bucket {
	switch NormalizeLabel(string(label)) {
	case Positive:
		return b.Positive
	case Neutral:
		return b.Neutral
	case Negative:
		return b.Negative
	default:
		return Bucket{}
	}
}

// Total sums the three bucket counts.
func (b Breakdown) Total() int {
	return b.Positive.Count + b.Neutral.Count + b.Negative.Count
}

// UnmarshalJSON matches sentiment keys case-insensitively.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	root, err := parseObject(data, "breakdown")
	if err != nil {
		return err
	}

	*b = decodeBreakdown(root)

	return nil
}

// TopicEntry names one discovered topic and its sentiment breakdown. On the
// wire it is a single-key mapping from the topic name to the breakdown.
// Names are display keys only; two entries may share a name.
type TopicEntry struct {
	Name      string
	Breakdown Breakdown
}

// MarshalJSON writes the single-key wire form.
func (t TopicEntry) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(map[string]Breakdown{t.Name: t.Breakdown})
	if err != nil {
		return nil, fmt.Errorf("marshal topic %q: %w", t.Name, err)
	}

	return data, nil
}

// UnmarshalJSON reads the single-key wire form. When a malformed entry has
// several keys, the first one in document order wins.
func (t *TopicEntry) UnmarshalJSON(data []byte) error {
	root, err := parseObject(data, "topic entry")
	if err != nil {
		return err
	}

	entry, ok := decodeTopicEntry(root)
	if !ok {
		return fmt.Errorf("%w: topic entry has no name", ErrMalformedPayload)
	}

	*t = entry

	return nil
}

// AnalysisResult is one batch analysis as returned by the backend. It is
// treated as immutable once decoded and is replaced wholesale, never edited.
type AnalysisResult struct {
	Positive  Bucket       `json:"positive"`
	Neutral   Bucket       `json:"neutral"`
	Negative  Bucket       `json:"negative"`
	Summarize string       `json:"summarize"`
	Topic     []TopicEntry `json:"topic"`
}

// Bucket returns the overall bucket for label.
func (r *AnalysisResult) Bucket(label SentimentLabel) Bucket {
	if r == nil {
		return Bucket{}
	}

	return Breakdown{Positive: r.Positive, Neutral: r.Neutral, Negative: r.Negative}.Bucket(label)
}

// MarshalJSON keeps topic as an array even when there are no topics.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	type wireResult AnalysisResult

	out := wireResult(r)
	if out.Topic == nil {
		out.Topic = []TopicEntry{}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis result: %w", err)
	}

	return data, nil
}

// UnmarshalJSON decodes a result leniently: absent buckets, docs and topics
// default to empty. It does not look at an error field; use
// DecodeAnalysisResponse for raw backend responses.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	root, err := parseObject(data, "analysis result")
	if err != nil {
		return err
	}

	*r = decodeAnalysisResult(root)

	return nil
}

// TopicSeriesRow is one bar of the per-topic series. Details keeps the full
// breakdown so a drilldown can be projected from the row alone.
type TopicSeriesRow struct {
	Name    string    `json:"name"`
	Total   int       `json:"total"`
	Details Breakdown `json:"details"`
}

// Comment is one document of a drilldown together with its bucket label.
type Comment struct {
	Text      string         `json:"text"`
	Sentiment SentimentLabel `json:"sentiment"`
}

// SelectedTopic is the drilldown shown for a selected topic row.
type SelectedTopic struct {
	Name     string    `json:"name"`
	Comments []Comment `json:"comments"`
}

// TopicTexts holds the "[Sentiment] text" lines of one topic, as fed to the
// executive summary prompt.
type TopicTexts struct {
	Topic string
	Lines []string
}
