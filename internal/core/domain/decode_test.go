package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pricingPayload = `{
	"positive": {"count": 2, "docs": ["good value", "cheap"]},
	"negative": {"count": 1, "docs": ["too expensive"]},
	"neutral":  {"count": 0, "docs": []},
	"summarize": "## Overview",
	"topic": [
		{"pricing": {
			"positive": {"count": 2, "docs": ["good value", "cheap"]},
			"negative": {"count": 1, "docs": ["too expensive"]},
			"neutral":  {"count": 0, "docs": []}
		}}
	]
}`

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		raw       string
		want      SentimentLabel
		wantKnown bool
	}{
		{"positive", Positive, true},
		{"Positive", Positive, true},
		{"NEGATIVE", Negative, true},
		{" neutral ", Neutral, true},
		{"Unknown", "Unknown", false},
		{"System Error", "System Error", false},
		{"", "", false},
		{"mixed", "mixed", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeLabel(tt.raw)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKnown, got.Known())
		})
	}
}

func TestDecodeAnalysisResponse_Full(t *testing.T) {
	result, err := DecodeAnalysisResponse([]byte(pricingPayload))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Positive.Count)
	assert.Equal(t, []string{"good value", "cheap"}, result.Positive.Docs)
	assert.Equal(t, 1, result.Negative.Count)
	assert.Equal(t, "## Overview", result.Summarize)

	require.Len(t, result.Topic, 1)
	assert.Equal(t, "pricing", result.Topic[0].Name)
	assert.Equal(t, 3, result.Topic[0].Breakdown.Total())
	assert.Equal(t, []string{"too expensive"}, result.Topic[0].Breakdown.Negative.Docs)
}

func TestDecodeAnalysisResponse_BackendError(t *testing.T) {
	body := []byte(`{"error": "cannot read file", "topic": [{"x": {"positive": {"count": 1}}}]}`)

	result, err := DecodeAnalysisResponse(body)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrBackendReported))

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "cannot read file", backendErr.Message)
}

func TestDecodeAnalysisResponse_Malformed(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1,2]`, `"text"`} {
		_, err := DecodeAnalysisResponse([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedPayload, "body %q", body)
	}
}

func TestDecodeAnalysisResponse_MissingFieldsDefault(t *testing.T) {
	result, err := DecodeAnalysisResponse([]byte(`{"neutral": {"count": 5}, "error": null}`))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Positive.Count)
	assert.Equal(t, 5, result.Neutral.Count)
	assert.Empty(t, result.Neutral.Docs)
	assert.Empty(t, result.Topic)
	assert.Empty(t, result.Summarize)
}

func TestDecodeAnalysisResponse_LenientShapes(t *testing.T) {
	body := []byte(`{
		"Positive": {"count": -3, "docs": ["a", 7, null, "b"]},
		"negative": null,
		"topic": [
			{},
			"not an object",
			{"Service": {"POSITIVE": {"count": 1, "docs": ["fast"]}, "Negative": {"count": 2}}},
			{"first": {"neutral": {"count": 1}}, "second": {"neutral": {"count": 9}}}
		]
	}`)

	result, err := DecodeAnalysisResponse(body)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Positive.Count, "negative counts clamp to zero")
	assert.Equal(t, []string{"a", "b"}, result.Positive.Docs)

	require.Len(t, result.Topic, 2)
	assert.Equal(t, "Service", result.Topic[0].Name)
	assert.Equal(t, []string{"fast"}, result.Topic[0].Breakdown.Positive.Docs)
	assert.Equal(t, 2, result.Topic[0].Breakdown.Negative.Count)
	assert.Equal(t, "first", result.Topic[1].Name)
	assert.Equal(t, 1, result.Topic[1].Breakdown.Neutral.Count)
}

func TestDecodeSentimentResponse(t *testing.T) {
	label, err := DecodeSentimentResponse([]byte(`{"text": "ok", "sentiment": "negative"}`))
	require.NoError(t, err)
	assert.Equal(t, Negative, label)

	label, err = DecodeSentimentResponse([]byte(`{"sentiment": "System Error"}`))
	require.NoError(t, err)
	assert.False(t, label.Known())

	_, err = DecodeSentimentResponse([]byte(`{"text": "ok"}`))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestAnalysisResult_JSONRoundTripKeepsTopicShape(t *testing.T) {
	original, err := DecodeAnalysisResponse([]byte(pricingPayload))
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"topic":[{"pricing":{`)

	var decoded AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestBucket_MarshalNilDocs(t *testing.T) {
	data, err := json.Marshal(Bucket{Count: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 4, "docs": []}`, string(data))

	data, err = json.Marshal(AnalysisResult{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"topic":[]`)
}

func TestTopicEntry_UnmarshalEmpty(t *testing.T) {
	var entry TopicEntry
	assert.ErrorIs(t, json.Unmarshal([]byte(`{}`), &entry), ErrMalformedPayload)
}

func TestBreakdown_Bucket(t *testing.T) {
	b := Breakdown{
		Positive: Bucket{Count: 1},
		Neutral:  Bucket{Count: 2},
		Negative: Bucket{Count: 3},
	}

	assert.Equal(t, 1, b.Bucket(Positive).Count)
	assert.Equal(t, 2, b.Bucket("neutral").Count)
	assert.Equal(t, 3, b.Bucket(Negative).Count)
	assert.Equal(t, Bucket{}, b.Bucket("other"))
	assert.Equal(t, 6, b.Total())

	var nilResult *AnalysisResult
	assert.Equal(t, Bucket{}, nilResult.Bucket(Positive))
}
