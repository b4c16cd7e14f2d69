// Package llm generates the executive summary shown above the dashboard.
//
// A Summarizer turns the statistics block and the per-topic comment lines
// into a markdown report. The OpenAI provider talks to any
// OpenAI-compatible chat endpoint; the mock provider is used when no API key
// is configured and returns deterministic markdown.
package llm

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	"github.com/Am1anB/Sentiment-analysis-project/internal/platform/config"
)

// SummaryRequest is the material for one executive summary.
type SummaryRequest struct {
	// Stats is the statistics block, e.g. "Total Responses: 3\n- Positive: 1 (33.3%)\n".
	Stats string
	// Topics lists the "[Sentiment] text" lines per topic, in topic order.
	Topics []domain.TopicTexts
	// Language overrides the configured output language when set.
	Language string
}

// Summarizer produces a markdown executive summary.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
	Name() string
}

// New returns the OpenAI provider, or the mock provider when the API key is
// empty or "mock".
func New(cfg config.LLMConfig, logger *zerolog.Logger) Summarizer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	key := strings.TrimSpace(cfg.APIKey)
	if key == "" || strings.EqualFold(key, llmAPIKeyMock) {
		logger.Info().Msg("LLM API key not set, using mock summarizer")

		return NewMock(cfg.Language)
	}

	return NewOpenAI(cfg, logger)
}

func resolveLanguage(req SummaryRequest, fallback string) string {
	if lang := strings.TrimSpace(req.Language); lang != "" {
		return lang
	}

	if lang := strings.TrimSpace(fallback); lang != "" {
		return lang
	}

	return defaultLanguage
}
