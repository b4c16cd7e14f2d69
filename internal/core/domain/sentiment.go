package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SentimentLabel is the display vocabulary for document sentiment.
type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Neutral  SentimentLabel = "Neutral"
	Negative SentimentLabel = "Negative"
)

// Labels lists the sentiment vocabulary in display order.
var Labels = [...]SentimentLabel{Positive, Neutral, Negative}

// NormalizeLabel maps a raw label or bucket key onto the capitalized vocabulary.
// Matching is case-insensitive. Strings outside the vocabulary are returned
// trimmed but otherwise untouched, so callers can still show them.
func NormalizeLabel(raw string) SentimentLabel {
	trimmed := strings.TrimSpace(raw)

	candidate := SentimentLabel(cases.Title(language.English).String(strings.ToLower(trimmed)))
	if candidate.Known() {
		return candidate
	}

	return SentimentLabel(trimmed)
}

// Known reports whether the label is one of Positive, Neutral or Negative.
func (l SentimentLabel) Known() bool {
	switch l {
	case Positive, Neutral, Negative:
		return true
	default:
		return false
	}
}

// Key returns the lower-case form the analysis backend uses for bucket keys.
func (l SentimentLabel) Key() string {
	return strings.ToLower(string(l))
}

func (l SentimentLabel) String() string {
	return string(l)
}
