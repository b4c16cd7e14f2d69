package domain

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Backend payload field names.
const (
	fieldCount     = "count"
	fieldDocs      = "docs"
	fieldError     = "error"
	fieldSummarize = "summarize"
	fieldTopic     = "topic"
	fieldSentiment = "sentiment"
)

var (
	// ErrMalformedPayload indicates the backend sent something that is not the expected JSON shape.
	ErrMalformedPayload = errors.New("malformed analysis payload")

	// ErrBackendReported matches any *BackendError via errors.Is.
	ErrBackendReported = errors.New("analysis backend reported an error")
)

// BackendError carries an error message the backend put in its response body.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("analysis backend: %s", e.Message)
}

// Is lets errors.Is(err, ErrBackendReported) match.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendReported
}

// DecodeAnalysisResponse parses a batch analysis response body. A non-empty
// error field wins over any data sent next to it, so a partial result is
// never returned.
func DecodeAnalysisResponse(body []byte) (*AnalysisResult, error) {
	root, err := parseObject(body, "analysis response")
	if err != nil {
		return nil, err
	}

	if msg := backendErrorMessage(root); msg != "" {
		return nil, &BackendError{Message: msg}
	}

	result := decodeAnalysisResult(root)

	return &result, nil
}

// DecodeSentimentResponse parses a single-text analysis response.
func DecodeSentimentResponse(body []byte) (SentimentLabel, error) {
	root, err := parseObject(body, "sentiment response")
	if err != nil {
		return "", err
	}

	if msg := backendErrorMessage(root); msg != "" {
		return "", &BackendError{Message: msg}
	}

	sentiment := root.Get(fieldSentiment)
	if !sentiment.Exists() || sentiment.Type != gjson.String {
		return "", fmt.Errorf("%w: missing sentiment", ErrMalformedPayload)
	}

	return NormalizeLabel(sentiment.String()), nil
}

func parseObject(data []byte, what string) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: %s is not valid JSON", ErrMalformedPayload, what)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: %s is not an object", ErrMalformedPayload, what)
	}

	return root, nil
}

func backendErrorMessage(root gjson.Result) string {
	msg := root.Get(fieldError)
	if !msg.Exists() || msg.Type == gjson.Null {
		return ""
	}

	return msg.String()
}

func decodeAnalysisResult(root gjson.Result) AnalysisResult {
	var result AnalysisResult

	root.ForEach(func(key, value gjson.Result) bool {
		switch name := key.String(); name {
		case fieldSummarize:
			result.Summarize = value.String()
		case fieldTopic:
			result.Topic = decodeTopics(value)
		default:
			assignBucket(&result.Positive, &result.Neutral, &result.Negative, name, value)
		}

		return true
	})

	return result
}

func decodeTopics(value gjson.Result) []TopicEntry {
	if !value.IsArray() {
		return nil
	}

	var topics []TopicEntry

	value.ForEach(func(_, item gjson.Result) bool {
		if entry, ok := decodeTopicEntry(item); ok {
			topics = append(topics, entry)
		}

		return true
	})

	return topics
}

func decodeTopicEntry(item gjson.Result) (TopicEntry, bool) {
	var (
		entry TopicEntry
		found bool
	)

	if !item.IsObject() {
		return entry, false
	}

	item.ForEach(func(key, value gjson.Result) bool {
		entry.Name = key.String()
		entry.Breakdown = decodeBreakdown(value)
		found = true

		return false
	})

	return entry, found
}

func decodeBreakdown(value gjson.Result) Breakdown {
	var b Breakdown

	if !value.IsObject() {
		return b
	}

	value.ForEach(func(key, bucket gjson.Result) bool {
		assignBucket(&b.Positive, &b.Neutral, &b.Negative, key.String(), bucket)

		return true
	})

	return b
}

func assignBucket(positive, neutral, negative *Bucket, key string, value gjson.Result) {
	switch NormalizeLabel(key) {
	case Positive:
		*positive = decodeBucket(value)
	case Neutral:
		*neutral = decodeBucket(value)
	case Negative:
		*negative = decodeBucket(value)
	}
}

// decodeBucket reads count and docs. Negative counts clamp to zero and
// non-string docs are skipped.
func decodeBucket(value gjson.Result) Bucket {
	var b Bucket

	if !value.IsObject() {
		return b
	}

	if count := value.Get(fieldCount).Int(); count > 0 {
		b.Count = int(count)
	}

	docs := value.Get(fieldDocs)
	if !docs.IsArray() {
		return b
	}

	docs.ForEach(func(_, doc gjson.Result) bool {
		if doc.Type == gjson.String {
			b.Docs = append(b.Docs, doc.String())
		}

		return true
	})

	return b
}
